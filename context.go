package awkish

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Absent is the sentinel resolved for an indexed field reference beyond
// the current field count. It is distinct from the empty string and is
// falsy as a condition result.
var Absent = absent{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// Record is the per-line execution context. One Record is created for
// every line processed and discarded after all registered pairs have
// been evaluated for that line. Hooks outside record scope receive a
// Record too, with only the job- or file-level values populated.
type Record struct {
	// Line is the raw text of the current line, terminator removed.
	Line string
	// Ending is the exact terminator stripped from Line, or "" for a
	// final line without one.
	Ending string
	// Fields holds the splitter output for the current line.
	Fields []string
	// NR is the 1-based record index within the job; it is not reset
	// between files.
	NR int
	// FNR is the 1-based record index within the current file.
	FNR int
	// Filename names the file being processed.
	Filename string
	// Result carries the truthy condition value for the duration of the
	// paired action call, and is nil otherwise.
	Result any

	awk      *Awk
	out      *bufio.Writer
	hasLine  bool
	fileOpen bool
}

// NF returns the number of fields in the current record.
func (r *Record) NF() int {
	return len(r.Fields)
}

// Field returns the 1-based field n, or Absent when n is out of range.
// Field(0) is the whole line. Access beyond NF is never an error.
func (r *Record) Field(n int) any {
	if n == 0 {
		return r.Line
	}
	if n < 1 || n > len(r.Fields) {
		return Absent
	}
	return r.Fields[n-1]
}

// Set attaches or overwrites a job-scoped extension value. Values are
// visible by name to every subsequently invoked hook, condition and
// action, within the same line evaluation and beyond.
func (r *Record) Set(name string, value any) {
	r.awk.vars[name] = value
}

// Var returns the extension value attached under name, or nil.
func (r *Record) Var(name string) any {
	return r.awk.vars[name]
}

// Print writes the values joined with the configured output field
// separator, followed by the configured output record separator.
func (r *Record) Print(values ...any) {
	for i, v := range values {
		if i > 0 {
			r.out.WriteString(r.awk.config.OFS)
		}
		fmt.Fprint(r.out, v)
	}
	r.out.WriteString(r.awk.config.ORS)
}

// Printf writes formatted output to the run's sink.
func (r *Record) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Echo re-emits the current line with its original terminator, so an
// echo-only run reproduces its input byte for byte.
func (r *Record) Echo() {
	r.out.WriteString(r.Line)
	r.out.WriteString(r.Ending)
}

// Value looks up a named value on the record context. It is the lookup
// table behind Bind parameter resolution. Recognized names are line,
// f0, ending, fields, nf, nr, fnr, filename, result, the indexed fields
// f1..fN, and any extension value.
func (r *Record) Value(name string) (any, bool) {
	switch name {
	case "nr":
		return r.NR, true
	case "filename":
		if r.fileOpen {
			return r.Filename, true
		}
		return nil, false
	case "fnr":
		if r.fileOpen {
			return r.FNR, true
		}
		return nil, false
	case "line", "f0":
		if r.hasLine {
			return r.Line, true
		}
		return nil, false
	case "ending":
		if r.hasLine {
			return r.Ending, true
		}
		return nil, false
	case "fields":
		if r.hasLine {
			return r.Fields, true
		}
		return nil, false
	case "nf":
		if r.hasLine {
			return len(r.Fields), true
		}
		return nil, false
	case "result":
		if r.Result != nil {
			return r.Result, true
		}
		return nil, false
	}
	if n, ok := fieldIndex(name); ok {
		if r.hasLine && n <= len(r.Fields) {
			return r.Fields[n-1], true
		}
		return nil, false
	}
	if v, ok := r.awk.vars[name]; ok {
		return v, true
	}
	return nil, false
}

// fieldIndex reports whether name is an indexed field reference f1, f2,
// ... and returns the index.
func fieldIndex(name string) (int, bool) {
	if len(name) < 2 || name[0] != 'f' {
		return 0, false
	}
	digits := name[1:]
	if strings.IndexFunc(digits, func(c rune) bool { return c < '0' || c > '9' }) >= 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
