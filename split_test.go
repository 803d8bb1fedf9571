package awkish_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/awkish"
)

func TestWhitespaceSplitter(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single spaces", "a b c", []string{"a", "b", "c"}},
		{"collapsed runs", "a   b  c", []string{"a", "b", "c"}},
		{"one field", "abc", []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := awkish.Whitespace().Split(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLiteralSplitter(t *testing.T) {
	tests := []struct {
		name string
		sep  string
		line string
		want []string
	}{
		{"colon", ":", "a:b:c", []string{"a", "b", "c"}},
		{"adjacent separators", ":", "a::b", []string{"a", "", "b"}},
		{"multi-char", "::", "a::b::c", []string{"a", "b", "c"}},
		{"empty separator is per-char", "", "abc", []string{"a", "b", "c"}},
		{"no separator present", ":", "abc", []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := awkish.Literal(tt.sep).Split(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternSplitter(t *testing.T) {
	tests := []struct {
		name string
		expr string
		line string
		want []string
	}{
		{"digit runs", "[0-9]+", "a12b345c", []string{"a", "b", "c"}},
		{"punctuation", "[,;]", "a,b;c", []string{"a", "b", "c"}},
		{"empty pattern is per-char", "", "abc", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := awkish.Pattern(tt.expr).Split(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternSplitterPanicsOnBadExpr(t *testing.T) {
	assert.Panics(t, func() { awkish.Pattern("[unclosed") })
}

func TestSplitterFunc(t *testing.T) {
	upper := awkish.SplitterFunc(func(line string) ([]string, error) {
		return []string{strings.ToUpper(line)}, nil
	})
	a := awkish.New(&awkish.Config{FS: upper})
	require.NoError(t, a.All(func(r *awkish.Record) {
		r.Print(r.Field(1))
	}))

	got := process(t, a, "in", "abc\n")
	assert.Equal(t, "ABC\n", got)
}
