package awkish_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/awkish"
)

func TestBindConditionSelectsRecords(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.When(
		awkish.Bind(func(nf int) bool { return nf > 2 }, awkish.P("nf")),
		nil,
	))

	got := process(t, a, "in", "a b\na b c\nx\np q r s\n")
	assert.Equal(t, "a b c\np q r s\n", got)
}

func TestBindParameterResolution(t *testing.T) {
	a := awkish.New(nil)
	var got []any
	require.NoError(t, a.All(awkish.Bind(func(line string, nf int, f1 any, f9 any) {
		got = append(got, line, nf, f1, f9)
	}, awkish.P("line"), awkish.P("nf"), awkish.P("f1"), awkish.P("f9"))))

	process(t, a, "in", "a b\n")
	assert.Equal(t, []any{"a b", 2, "a", awkish.Absent}, got)
}

func TestBindDefaults(t *testing.T) {
	a := awkish.New(nil)
	var got []any
	require.NoError(t, a.All(awkish.Bind(func(f3 string, threshold int) {
		got = append(got, f3, threshold)
	}, awkish.P("f3").Or("none"), awkish.P("threshold").Or(10))))

	process(t, a, "in", "a b\n")
	// f3 is beyond the field count, so the declared default applies.
	assert.Equal(t, []any{"none", 10}, got)
}

func TestBindDefaultIgnoredWhenValuePresent(t *testing.T) {
	a := awkish.New(nil)
	var got string
	require.NoError(t, a.All(awkish.Bind(func(f1 string) {
		got = f1
	}, awkish.P("f1").Or("fallback"))))

	process(t, a, "in", "hello world\n")
	assert.Equal(t, "hello", got)
}

func TestBindExtensionValues(t *testing.T) {
	a := awkish.New(&awkish.Config{Vars: map[string]any{"prefix": ">> "}})
	var got []string
	require.NoError(t, a.All(awkish.Bind(func(prefix, line string) {
		got = append(got, prefix+line)
	}, awkish.P("prefix"), awkish.P("line"))))

	process(t, a, "in", "a\nb\n")
	assert.Equal(t, []string{">> a", ">> b"}, got)
}

func TestBindMissingArgument(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.All(awkish.Bind(func(nope string) {}, awkish.P("nope"))))

	var buf bytes.Buffer
	err := a.Process(&buf, awkish.Source{Name: "in", Reader: strings.NewReader("x\n")})
	var ma *awkish.MissingArgumentError
	require.ErrorAs(t, err, &ma)
	assert.Equal(t, "nope", ma.Name)
}

func TestBindResultValue(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.When(
		awkish.Bind(func(nf int) any {
			if nf == 3 {
				return "triple"
			}
			return false
		}, awkish.P("nf")),
		awkish.Bind(func(result any) {
			assert.Equal(t, "triple", result)
		}, awkish.P("result")),
	))

	process(t, a, "in", "a b c\nx y\n")
}

func TestBindRejectsBadShapes(t *testing.T) {
	a := awkish.New(nil)
	var ce *awkish.ConfigError

	require.ErrorAs(t, a.All(awkish.Bind(42)), &ce)
	require.ErrorAs(t, a.All(awkish.Bind(func(a, b string) {}, awkish.P("line"))), &ce)
	require.ErrorAs(t, a.All(awkish.Bind(func() (int, string) { return 0, "" })), &ce)
	// A concrete-typed field parameter without a default cannot hold Absent.
	require.ErrorAs(t, a.All(awkish.Bind(func(f9 string) {}, awkish.P("f9"))), &ce)
	// Default of the wrong type.
	require.ErrorAs(t, a.All(awkish.Bind(func(n int) {}, awkish.P("n").Or("ten"))), &ce)
}

func TestBindErrorReturnPropagates(t *testing.T) {
	a := awkish.New(nil)
	require.NoError(t, a.All(awkish.Bind(func(line string) error {
		return &awkish.FormatError{Line: line, Message: "rejected"}
	}, awkish.P("line"))))

	var buf bytes.Buffer
	err := a.Process(&buf, awkish.Source{Name: "in", Reader: strings.NewReader("x\n")})
	var fe *awkish.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestBindNumericConversion(t *testing.T) {
	a := awkish.New(nil)
	var got float64
	require.NoError(t, a.All(awkish.Bind(func(nr float64) {
		got = nr
	}, awkish.P("nr"))))

	process(t, a, "in", "x\ny\n")
	assert.Equal(t, 2.0, got)
}
