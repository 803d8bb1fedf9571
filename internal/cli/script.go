// Package cli implements the awkish command line driver.
package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/awkish"
)

// Script is a YAML rule file: separator configuration plus an ordered
// list of pattern rules. It covers what can be expressed without Go
// callables; anything richer belongs in a program using the library.
type Script struct {
	// Exactly one of Separator, Pattern or CSV selects field splitting;
	// all unset means the whitespace default.
	Separator *string `yaml:"separator"`
	Pattern   *string `yaml:"pattern"`
	CSV       bool    `yaml:"csv"`
	// Lax disables strict CSV parsing.
	Lax bool `yaml:"lax"`

	RS  string `yaml:"rs"`
	OFS string `yaml:"ofs"`
	ORS string `yaml:"ors"`

	Vars map[string]any `yaml:"vars"`

	Rules []Rule `yaml:"rules"`
}

// Rule is one condition entry. Exactly one of the condition keys must
// be set. Without a print list the action echoes the matched line.
type Rule struct {
	Search  string   `yaml:"search"`
	Match   string   `yaml:"match"`
	Find    string   `yaml:"find"`
	Any     []string `yaml:"any"`
	All     bool     `yaml:"all"`
	Between *Range   `yaml:"between"`

	Print []string `yaml:"print"`
}

// Range is a between rule: both conditions are search patterns.
type Range struct {
	On  string `yaml:"on"`
	Off string `yaml:"off"`
}

// LoadScript reads and decodes a YAML rule file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return &s, nil
}

// Engine builds a configured awkish engine from the script.
func (s *Script) Engine() (*awkish.Awk, error) {
	fs, err := s.splitter()
	if err != nil {
		return nil, err
	}
	a := awkish.New(&awkish.Config{
		FS:   fs,
		RS:   s.RS,
		OFS:  s.OFS,
		ORS:  s.ORS,
		Vars: s.Vars,
	})
	for i, r := range s.Rules {
		if err := addRule(a, r); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return a, nil
}

func (s *Script) splitter() (awkish.Splitter, error) {
	n := 0
	if s.Separator != nil {
		n++
	}
	if s.Pattern != nil {
		n++
	}
	if s.CSV {
		n++
	}
	if n > 1 {
		return nil, fmt.Errorf("separator, pattern and csv are mutually exclusive")
	}
	switch {
	case s.Separator != nil:
		return awkish.Literal(*s.Separator), nil
	case s.Pattern != nil:
		return compilePattern(*s.Pattern, awkish.Pattern)
	case s.CSV && s.Lax:
		return awkish.CSVLax(), nil
	case s.CSV:
		return awkish.CSV(), nil
	}
	return nil, nil
}

func addRule(a *awkish.Awk, r Rule) error {
	n := 0
	for _, set := range []bool{r.Search != "", r.Match != "", r.Find != "", len(r.Any) > 0, r.All, r.Between != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("exactly one of search, match, find, any, all, between required")
	}
	if r.Between != nil {
		on, err := compilePattern(r.Between.On, awkish.Search)
		if err != nil {
			return err
		}
		off, err := compilePattern(r.Between.Off, awkish.Search)
		if err != nil {
			return err
		}
		return a.Between(on, off, r.action())
	}
	cond, err := r.condition()
	if err != nil {
		return err
	}
	return a.When(cond, r.action())
}

func (r Rule) condition() (any, error) {
	switch {
	case r.Search != "":
		return compilePattern(r.Search, awkish.Search)
	case r.Match != "":
		return compilePattern(r.Match, awkish.Match)
	case r.Find != "":
		return awkish.Find(r.Find), nil
	case len(r.Any) > 0:
		return awkish.FindAny(r.Any...), nil
	}
	return true, nil // all
}

func (r Rule) action() any {
	if len(r.Print) == 0 {
		return nil // default: echo
	}
	names := r.Print
	return func(rec *awkish.Record) error {
		vals := make([]any, len(names))
		for i, name := range names {
			v, ok := rec.Value(name)
			if !ok {
				// Unset field references print empty.
				v = ""
			}
			vals[i] = v
		}
		rec.Print(vals...)
		return nil
	}
}

// compilePattern validates pat before handing it to a builder that
// panics on bad input, turning the panic into a returned error.
func compilePattern[T any](pat string, build func(string) T) (out T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pattern %q: %v", pat, p)
		}
	}()
	out = build(pat)
	return out, nil
}
