package awkish_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/awkish"
)

func startsWith(prefix string) awkish.Condition {
	return func(r *awkish.Record) (any, error) {
		return strings.HasPrefix(r.Line, prefix), nil
	}
}

func TestBetweenInclusiveRanges(t *testing.T) {
	// Every line here is matched: A1 opens, B1 closes (both included),
	// then A2 independently reopens and B2 closes again.
	a := awkish.New(nil)
	require.NoError(t, a.Between(startsWith("A"), startsWith("B"), func(r *awkish.Record) {
		r.Print(r.Line)
	}))

	got := process(t, a, "in", "A1\nx\nB1\nA2\nB2\n")
	assert.Equal(t, "A1\nx\nB1\nA2\nB2\n", got)
}

func TestBetweenExcludesOutsideLines(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.Between(startsWith("on"), startsWith("off"), nil))

	got := process(t, a, "in", "skip\non\nin\noff\nskip\n")
	assert.Equal(t, "on\nin\noff\n", got)
}

func TestBetweenResultValues(t *testing.T) {
	// Boundary lines carry the boundary condition's value; interior
	// lines yield plain true.
	a := awkish.New(nil)
	var results []any
	require.NoError(t, a.Between(awkish.Find("("), awkish.Find(")"), func(r *awkish.Record) {
		results = append(results, r.Result)
	}))

	process(t, a, "in", "x(\nmid\n)y\n")
	assert.Equal(t, []any{1, true, 0}, results)
}

func TestBetweenSameConditionSpansToNextClose(t *testing.T) {
	// A line that opens a range can never close it on the same
	// evaluation, so fence pairs alternate open/close.
	a := awkish.New(nil)
	require.NoError(t, a.Between(awkish.Match("```"), awkish.Match("```"), func(r *awkish.Record) {
		if r.Result == true {
			r.Print(r.Line)
		}
	}))

	got := process(t, a, "in", "intro\n```\ncode1\ncode2\n```\noutro\n")
	assert.Equal(t, "code1\ncode2\n", got)
}

func TestBetweenStatePersistsAcrossFiles(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.Between(startsWith("on"), startsWith("off"), nil))

	var buf bytes.Buffer
	err := a.Process(&buf,
		awkish.Source{Name: "f1", Reader: strings.NewReader("on\na\n")},
		awkish.Source{Name: "f2", Reader: strings.NewReader("b\noff\nc\n")},
	)
	require.NoError(t, err)
	assert.Equal(t, "on\na\nb\noff\n", buf.String())
}

func TestBetweenUnclosedRangeRunsToEnd(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.Between(startsWith("on"), startsWith("never"), nil))

	got := process(t, a, "in", "x\non\na\nb\n")
	assert.Equal(t, "on\na\nb\n", got)
}
