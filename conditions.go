package awkish

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
	ac "github.com/petar-dambovaliev/aho-corasick"
)

// Find returns a condition yielding the first index of substr in the
// current line, or false when absent. An index of 0 counts as a match.
func Find(substr string) Condition {
	return func(r *Record) (any, error) {
		if idx := strings.Index(r.Line, substr); idx >= 0 {
			return idx, nil
		}
		return false, nil
	}
}

// Match returns a condition yielding the text matched by pattern at the
// start of the current line, or false when the line does not begin with
// a match.
//
// Match panics on an invalid pattern, in the manner of regexp.MustCompile.
func Match(pattern string) Condition {
	re := compilePattern("^(?:" + pattern + ")")
	return func(r *Record) (any, error) {
		if loc := re.FindStringIndex(r.Line); loc != nil {
			return r.Line[loc[0]:loc[1]], nil
		}
		return false, nil
	}
}

// Search returns a condition yielding the text matched by pattern
// anywhere in the current line, or false when there is no match.
//
// Search panics on an invalid pattern, in the manner of regexp.MustCompile.
func Search(pattern string) Condition {
	re := compilePattern(pattern)
	return func(r *Record) (any, error) {
		if loc := re.FindStringIndex(r.Line); loc != nil {
			return r.Line[loc[0]:loc[1]], nil
		}
		return false, nil
	}
}

// FindAny returns a condition yielding the start index of the earliest
// occurrence of any of the given substrings in the current line, or
// false when none occur. The substrings are compiled into a single
// Aho-Corasick automaton at construction.
func FindAny(substrs ...string) Condition {
	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		MatchKind: ac.LeftMostLongestMatch,
	})
	built := builder.Build(substrs)
	automaton := &built
	return func(r *Record) (any, error) {
		matches := automaton.FindAll(r.Line)
		if len(matches) == 0 {
			return false, nil
		}
		return matches[0].Start(), nil
	}
}

func compilePattern(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(&ConfigError{Message: fmt.Sprintf("pattern %q: %v", pattern, err)})
	}
	return re
}
