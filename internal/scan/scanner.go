// Package scan provides the terminator-aware line source for record
// processing. It yields each line together with the exact terminator
// bytes that ended it, so callers can reproduce input byte for byte.
package scan

import (
	"bufio"
	"io"
	"strings"
)

// Line is one record as read from the source: the text with its
// terminator removed, and the terminator itself. End is empty for a
// final line without a trailing separator.
type Line struct {
	Text string
	End  string
}

// Scanner reads lines from a reader. With an empty separator it splits
// on "\n" and recognizes "\r\n" as a single terminator; with a custom
// separator it splits on each occurrence of the exact string.
type Scanner struct {
	r   *bufio.Reader
	sep string
}

// New returns a Scanner over r. sep is the record separator; empty
// means newline mode.
func New(r io.Reader, sep string) *Scanner {
	return &Scanner{r: bufio.NewReader(r), sep: sep}
}

// Next returns the next line. It returns io.EOF when the input is
// exhausted, and any other read error as-is. A final unterminated line
// is returned with End == "" before io.EOF.
func (s *Scanner) Next() (Line, error) {
	if s.sep == "" {
		return s.nextNewline()
	}
	return s.nextSep()
}

func (s *Scanner) nextNewline() (Line, error) {
	str, err := s.r.ReadString('\n')
	if str == "" {
		if err == nil {
			err = io.EOF
		}
		return Line{}, err
	}
	if err != nil && err != io.EOF {
		return Line{}, err
	}
	if strings.HasSuffix(str, "\r\n") {
		return Line{Text: str[:len(str)-2], End: "\r\n"}, nil
	}
	if strings.HasSuffix(str, "\n") {
		return Line{Text: str[:len(str)-1], End: "\n"}, nil
	}
	// Final line without a terminator.
	return Line{Text: str}, nil
}

func (s *Scanner) nextSep() (Line, error) {
	last := s.sep[len(s.sep)-1]
	var b strings.Builder
	for {
		str, err := s.r.ReadString(last)
		b.WriteString(str)
		if err != nil {
			if b.Len() == 0 {
				if err == io.EOF {
					return Line{}, io.EOF
				}
				return Line{}, err
			}
			if err == io.EOF {
				return Line{Text: b.String()}, nil
			}
			return Line{}, err
		}
		if strings.HasSuffix(b.String(), s.sep) {
			text := b.String()
			return Line{Text: text[:len(text)-len(s.sep)], End: s.sep}, nil
		}
	}
}
