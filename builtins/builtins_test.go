package builtins

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverr-lang/leverr/eval"
	"github.com/leverr-lang/leverr/parser"
)

func runWith(t *testing.T, out *bytes.Buffer, src string) eval.Value {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err)
	v, err := eval.Evaluate(expr, Environment(out))
	require.NoError(t, err)
	return v
}

func TestBuiltinMap(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "[1, 2, 3] |> map(fn(x) -> x * 2)")
	assert.Equal(t, "[2, 4, 6]", v.String())
}

func TestBuiltinFilter(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "[1, 2, 3, 4] |> filter(fn(x) -> x > 2)")
	assert.Equal(t, "[3, 4]", v.String())
}

func TestBuiltinFold(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "[1, 2, 3] |> fold(0, fn(acc, x) -> acc + x)")
	assert.Equal(t, eval.Int(6), v)
}

func TestBuiltinLengthOnList(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "length([1, 2, 3])")
	assert.Equal(t, eval.Int(3), v)
}

func TestBuiltinLengthOnString(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, `length("hello")`)
	assert.Equal(t, eval.Int(5), v)
}

func TestBuiltinHeadOnNonEmpty(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "head([1, 2, 3])?")
	assert.Equal(t, eval.Int(1), v)
}

func TestBuiltinHeadOnEmptyIsErr(t *testing.T) {
	expr, err := parser.Parse("head([])?")
	require.NoError(t, err)
	_, err = eval.Evaluate(expr, Environment(&bytes.Buffer{}))
	require.Error(t, err)
}

func TestBuiltinTail(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "tail([1, 2, 3])?")
	assert.Equal(t, "[2, 3]", v.String())
}

func TestBuiltinToString(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, "to_string(42)")
	assert.Equal(t, eval.String("42"), v)
}

func TestBuiltinToStringPrettyPrintsContainers(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, `to_string([1, "a"])`)
	assert.Equal(t, eval.String(`[1, "a"]`), v)
}

func TestBuiltinToStringOnStringIsIdentity(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, `to_string("hi")`)
	assert.Equal(t, eval.String("hi"), v)
}

func TestBuiltinPrintWritesToSink(t *testing.T) {
	var out bytes.Buffer
	runWith(t, &out, `print("hi")`)
	assert.Equal(t, "hi\n", out.String())
}

func TestBuiltinConcat(t *testing.T) {
	v := runWith(t, &bytes.Buffer{}, `concat("foo", "bar")`)
	assert.Equal(t, eval.String("foobar"), v)
}

func TestBuiltinEachRunsSideEffects(t *testing.T) {
	var out bytes.Buffer
	runWith(t, &out, "[1, 2, 3] |> each(fn(x) -> print(x))")
	assert.Equal(t, "1\n2\n3\n", out.String())
}

func TestDocsListsAllTenBuiltins(t *testing.T) {
	assert.Len(t, Docs(), 10)
}
