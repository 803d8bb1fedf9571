package awkish

import (
	"strings"
)

// csvSplitter decomposes one pre-terminator-stripped line under the
// RFC4180-style grammar: comma-separated fields, optionally wrapped in
// double quotes; inside a quoted field a doubled quote stands for one
// literal quote and commas are verbatim.
type csvSplitter struct {
	strict bool
}

// CSV returns a strict CSV field splitter. This is not the same as
// Literal(","): quoted fields may contain commas and escaped quotes.
// A line that does not decompose under the grammar yields a FormatError.
func CSV() Splitter {
	return &csvSplitter{strict: true}
}

// CSVLax returns a best-effort CSV field splitter. Text that does not
// decompose cleanly is swallowed into the adjacent field instead of
// failing.
func CSVLax() Splitter {
	return &csvSplitter{strict: false}
}

func (c *csvSplitter) Split(line string) ([]string, error) {
	var fields []string
	i := 0
	for {
		val, next, err := c.scanField(line, i)
		if err != nil {
			return nil, err
		}
		fields = append(fields, val)
		if next >= len(line) {
			return fields, nil
		}
		// next points at the comma that terminated the field
		i = next + 1
	}
}

// scanField reads one field starting at i. It returns the field value
// with quotes removed and doubled quotes collapsed, and the index of
// the comma ending the field (or len(line) at end of line).
func (c *csvSplitter) scanField(line string, i int) (string, int, error) {
	var val string
	if i < len(line) && line[i] == '"' {
		var b strings.Builder
		j := i + 1
		closed := false
		for j < len(line) {
			if line[j] != '"' {
				b.WriteByte(line[j])
				j++
				continue
			}
			if j+1 < len(line) && line[j+1] == '"' {
				b.WriteByte('"')
				j += 2
				continue
			}
			closed = true
			j++
			break
		}
		if !closed && c.strict {
			return "", 0, &FormatError{Line: line, Message: "unterminated quoted field"}
		}
		val = b.String()
		i = j
	} else {
		j := i
		for j < len(line) && line[j] != ',' && line[j] != '"' {
			j++
		}
		val = line[i:j]
		i = j
	}

	if i < len(line) && line[i] != ',' {
		// Leftover text the grammar does not account for: a bare quote
		// in an unquoted field, or trailing characters after a quoted one.
		gap := i
		for i < len(line) && line[i] != ',' {
			i++
		}
		if c.strict {
			return "", 0, &FormatError{Line: line, Message: "malformed field"}
		}
		val += line[gap:i]
	}
	return val, i, nil
}
