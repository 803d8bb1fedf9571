package awkish

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// Splitter derives the ordered field list from one line.
// Implementations must be stateless: no mutation of the input and no
// state carried between calls.
type Splitter interface {
	Split(line string) ([]string, error)
}

// SplitterFunc adapts a plain function to the Splitter interface.
type SplitterFunc func(line string) ([]string, error)

// Split calls f(line).
func (f SplitterFunc) Split(line string) ([]string, error) {
	return f(line)
}

type patternSplitter struct {
	re *coregex.Regexp
}

func (p *patternSplitter) Split(line string) ([]string, error) {
	return p.re.Split(line, -1), nil
}

// Pattern returns a Splitter that splits on every non-overlapping match
// of the regular expression. The empty pattern yields one field per
// character rather than being an error.
//
// Pattern panics if the expression does not compile, in the manner of
// regexp.MustCompile; splitters are built once at configuration time.
func Pattern(expr string) Splitter {
	if expr == "" {
		return Literal("")
	}
	re, err := coregex.Compile(expr)
	if err != nil {
		panic(&ConfigError{Message: fmt.Sprintf("pattern splitter %q: %v", expr, err)})
	}
	return &patternSplitter{re: re}
}

type literalSplitter struct {
	sep string
}

func (l *literalSplitter) Split(line string) ([]string, error) {
	// strings.Split with an empty separator is one field per rune,
	// which is exactly the carved-out edge case.
	return strings.Split(line, l.sep), nil
}

// Literal returns a Splitter that splits on each occurrence of the
// fixed substring sep. An empty sep yields one field per character.
func Literal(sep string) Splitter {
	return &literalSplitter{sep: sep}
}

// whitespace is the default splitter: runs of spaces are separators.
var whitespace = &patternSplitter{re: mustCompile(" +")}

// Whitespace returns the default field splitter, which treats each run
// of spaces as a single separator.
func Whitespace() Splitter {
	return whitespace
}

func mustCompile(expr string) *coregex.Regexp {
	re, err := coregex.Compile(expr)
	if err != nil {
		panic(err)
	}
	return re
}
