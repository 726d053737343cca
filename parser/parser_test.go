package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverr-lang/leverr/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := Parse(src)
	require.NoError(t, err)
	return expr
}

func TestParseLiterals(t *testing.T) {
	assert.Equal(t, "1", mustParse(t, "1").String())
	assert.Equal(t, "1.5", mustParse(t, "1.5").String())
	assert.Equal(t, `"hi"`, mustParse(t, `"hi"`).String())
	assert.Equal(t, "true", mustParse(t, "true").String())
	assert.Equal(t, "()", mustParse(t, "()").String())
}

func TestParseArithmeticPrecedence(t *testing.T) {
	expr := mustParse(t, "1 + 2 * 3")
	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	expr := mustParse(t, "-1 + 2")
	assert.Equal(t, "((-1) + 2)", expr.String())
}

func TestParsePipeIsLowestBindingPower(t *testing.T) {
	expr := mustParse(t, "1 + 2 |> f")
	pipe, ok := expr.(*ast.Pipe)
	require.True(t, ok)
	assert.Equal(t, "(1 + 2)", pipe.Left.String())
}

func TestParseLambdaBodyStopsBeforeTrailingPipe(t *testing.T) {
	// x |> fn n -> n * 2 |> g  must parse as  x |> (fn n -> n * 2) |> g
	expr := mustParse(t, "x |> fn(n) -> n * 2 |> g")
	outerPipe, ok := expr.(*ast.Pipe)
	require.True(t, ok)
	innerPipe, ok := outerPipe.Left.(*ast.Pipe)
	require.True(t, ok)
	lambda, ok := innerPipe.Right.(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, "(n * 2)", lambda.Body.String())
	assert.Equal(t, "g", outerPipe.Right.String())
}

func TestParseMultiParamLambdaDesugarsToNested(t *testing.T) {
	expr := mustParse(t, "fn(a, b) -> a + b")
	outer, ok := expr.(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Param)
	inner, ok := outer.Body.(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Param)
}

func TestParseMultiArgCallDesugarsLeftAssociative(t *testing.T) {
	expr := mustParse(t, "f(a, b, c)")
	outer, ok := expr.(*ast.Apply)
	require.True(t, ok)
	assert.Equal(t, "c", outer.Arg.String())
	mid, ok := outer.Func.(*ast.Apply)
	require.True(t, ok)
	assert.Equal(t, "b", mid.Arg.String())
	inner, ok := mid.Func.(*ast.Apply)
	require.True(t, ok)
	assert.Equal(t, "a", inner.Arg.String())
	assert.Equal(t, "f", inner.Func.String())
}

func TestParseParenGroupingVsTuple(t *testing.T) {
	grouped := mustParse(t, "(1 + 2)")
	assert.Equal(t, "(1 + 2)", grouped.String())

	tup := mustParse(t, "(1, 2, 3)")
	tuple, ok := tup.(*ast.Tuple)
	require.True(t, ok)
	assert.Len(t, tuple.Elements, 3)
}

func TestParseZeroArgTag(t *testing.T) {
	expr := mustParse(t, "None")
	tag, ok := expr.(*ast.Tag)
	require.True(t, ok)
	assert.Equal(t, "None", tag.Name)
	assert.Empty(t, tag.Args)
}

func TestParseTagWithArgs(t *testing.T) {
	expr := mustParse(t, "Rect(3, 4)")
	tag, ok := expr.(*ast.Tag)
	require.True(t, ok)
	assert.Equal(t, "Rect", tag.Name)
	require.Len(t, tag.Args, 2)
}

func TestParseLetRec(t *testing.T) {
	expr := mustParse(t, "let rec f = fn(n) -> n in f")
	let, ok := expr.(*ast.Let)
	require.True(t, ok)
	assert.True(t, let.Recursive)
	assert.Equal(t, "f", let.Name)
}

func TestParseMatchWithLiteralAndWildcard(t *testing.T) {
	expr := mustParse(t, `match n { 1 -> "one", _ -> "other" }`)
	m, ok := expr.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	_, isLit := m.Cases[0].Pattern.(*ast.LitPattern)
	assert.True(t, isLit)
	_, isWild := m.Cases[1].Pattern.(*ast.WildcardPattern)
	assert.True(t, isWild)
}

func TestParseFieldAccessAndUnwrapBindTight(t *testing.T) {
	expr := mustParse(t, "r.name?")
	unwrap, ok := expr.(*ast.Unwrap)
	require.True(t, ok)
	access, ok := unwrap.Inner.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "name", access.Field)
}

func TestParseBareCatchLeavesProtectedNil(t *testing.T) {
	expr := mustParse(t, "x |> catch e -> 0")
	pipe, ok := expr.(*ast.Pipe)
	require.True(t, ok)
	binder, ok := pipe.Right.(*ast.RecoveryBinder)
	require.True(t, ok)
	assert.Nil(t, binder.Protected)
	assert.Equal(t, "e", binder.ErrParam)
}

func TestParseListAndRecordLiterals(t *testing.T) {
	list := mustParse(t, "[1, 2, 3]")
	l, ok := list.(*ast.List)
	require.True(t, ok)
	assert.Len(t, l.Elements, 3)

	rec := mustParse(t, "{ x: 1, y: 2 }")
	r, ok := rec.(*ast.Record)
	require.True(t, ok)
	assert.Len(t, r.Fields, 2)
	assert.Equal(t, "x", r.Fields[0].Name)
}

func TestParseConcreteScenarioOne(t *testing.T) {
	src := `let rec fib = fn(n) -> match n <= 1 { true -> n, false -> fib(n-1) + fib(n-2) } in fib(10)`
	expr := mustParse(t, src)
	let, ok := expr.(*ast.Let)
	require.True(t, ok)
	assert.True(t, let.Recursive)
}

func TestParseConcreteScenarioTwo(t *testing.T) {
	src := `[1, 2, 3, 4, 5] |> filter(fn(x) -> x > 2) |> map(fn(x) -> x * 10) |> fold(0, fn(acc, x) -> acc + x)`
	expr := mustParse(t, src)
	_, ok := expr.(*ast.Pipe)
	require.True(t, ok)
}

func TestParseUnexpectedTokenIsError(t *testing.T) {
	_, err := Parse("let x = in x")
	require.Error(t, err)
}

func TestParseMissingClosingParenIsError(t *testing.T) {
	_, err := Parse("(1 + 2")
	require.Error(t, err)
}
