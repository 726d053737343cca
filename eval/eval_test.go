package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/internal/token"
	"github.com/leverr-lang/leverr/parser"
)

// testRuntimeEnv seeds a slice of the built-in library (language spec §4.6)
// as eval.Builtin values, just enough to exercise the pipeline tests below.
// The full library lives in package builtins; duplicating a slice of it
// here keeps this test free of a dependency on that higher-level package.
func testRuntimeEnv() Environment {
	env := Environment{}

	env = env.Extend("map", &Builtin{Name: "map", Arity: 2, Fn: func(args []Value) (Value, error) {
		fn, list := args[0], args[1].(*List)
		out := make([]Value, len(list.Elements))
		for i, e := range list.Elements {
			v, err := apply(fn, e, token.Span{})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &List{Elements: out}, nil
	}})

	env = env.Extend("filter", &Builtin{Name: "filter", Arity: 2, Fn: func(args []Value) (Value, error) {
		fn, list := args[0], args[1].(*List)
		var out []Value
		for _, e := range list.Elements {
			v, err := apply(fn, e, token.Span{})
			if err != nil {
				return nil, err
			}
			if b, ok := v.(Bool); ok && bool(b) {
				out = append(out, e)
			}
		}
		return &List{Elements: out}, nil
	}})

	env = env.Extend("fold", &Builtin{Name: "fold", Arity: 3, Fn: func(args []Value) (Value, error) {
		acc, fn, list := args[0], args[1], args[2].(*List)
		for _, e := range list.Elements {
			step, err := apply(fn, acc, token.Span{})
			if err != nil {
				return nil, err
			}
			next, err := apply(step, e, token.Span{})
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	}})

	return env
}

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.Parse(src)
	require.NoError(t, err)
	return e
}

func run(t *testing.T, src string) Value {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err)
	v, err := Evaluate(expr, testRuntimeEnv())
	require.NoError(t, err)
	return v
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err)
	_, err = Evaluate(expr, testRuntimeEnv())
	return err
}

func TestEvalArithmetic(t *testing.T) {
	assert.Equal(t, Int(7), run(t, "1 + 2 * 3"))
	assert.Equal(t, Int(-1), run(t, "-1"))
	assert.Equal(t, Float(1.5), run(t, "3.0 / 2.0"))
}

func TestEvalStringConcat(t *testing.T) {
	assert.Equal(t, String("ab"), run(t, `"a" ++ "b"`))
}

func TestEvalLetAndLambdaApplication(t *testing.T) {
	assert.Equal(t, Int(5), run(t, "let f = fn(x) -> x + 1 in f(4)"))
}

func TestEvalLetRecFactorial(t *testing.T) {
	src := `let rec fact = fn(n) -> match n { 0 -> 1, _ -> n * fact(n - 1) } in fact(5)`
	assert.Equal(t, Int(120), run(t, src))
}

func TestEvalFibonacciScenario(t *testing.T) {
	src := `let rec fib = fn(n) -> match n <= 1 { true -> n, false -> fib(n-1) + fib(n-2) } in fib(10)`
	assert.Equal(t, Int(55), run(t, src))
}

func TestEvalPipelineFilterMapFold(t *testing.T) {
	// Exercises the curried built-ins directly (spec §8's filter/map/fold
	// pipeline scenario) rather than through source text, to pin down the
	// exact currying order of each step.
	env := testRuntimeEnv()

	gtTwo := &Closure{Param: "x", Body: mustExpr(t, "x > 2"), Env: Environment{}}
	list := &List{Elements: []Value{Int(1), Int(2), Int(3), Int(4), Int(5)}}
	filtered, err := apply(env["filter"], gtTwo, token.Span{})
	require.NoError(t, err)
	filtered, err = apply(filtered, list, token.Span{})
	require.NoError(t, err)

	timesTen := &Closure{Param: "x", Body: mustExpr(t, "x * 10"), Env: Environment{}}
	mapped, err := apply(env["map"], timesTen, token.Span{})
	require.NoError(t, err)
	mapped, err = apply(mapped, filtered, token.Span{})
	require.NoError(t, err)

	addFn := &Builtin{Name: "add2", Arity: 2, Fn: func(args []Value) (Value, error) {
		return args[0].(Int) + args[1].(Int), nil
	}}
	// fold(seed, step, xs), matching language spec §4.6's table.
	folded, err := apply(env["fold"], Int(0), token.Span{})
	require.NoError(t, err)
	folded, err = apply(folded, addFn, token.Span{})
	require.NoError(t, err)
	result, err := apply(folded, mapped, token.Span{})
	require.NoError(t, err)
	assert.Equal(t, Int(120), result)
}

func TestEvalIfExpression(t *testing.T) {
	assert.Equal(t, String("yes"), run(t, `if 1 < 2 then "yes" else "no"`))
}

func TestEvalMatchOnTag(t *testing.T) {
	src := `match Ok(42) { Ok(v) -> v, Err(m) -> 0 }`
	assert.Equal(t, Int(42), run(t, src))
}

func TestEvalTuplePattern(t *testing.T) {
	src := `match (1, 2) { (a, b) -> a + b }`
	assert.Equal(t, Int(3), run(t, src))
}

func TestEvalRecordFieldAccess(t *testing.T) {
	src := `{ x: 1, y: 2 }.x`
	assert.Equal(t, Int(1), run(t, src))
}

func TestEvalRecordPattern(t *testing.T) {
	src := `match { x: 1, y: 2 } { { x: a } -> a }`
	assert.Equal(t, Int(1), run(t, src))
}

func TestEvalUnwrapOnOkExtractsPayload(t *testing.T) {
	src := `let safeDiv = fn(pair) -> match pair { (a, 0) -> Err("div by zero"), (a, b) -> Ok(a / b) } in safeDiv((10, 2))?`
	assert.Equal(t, Int(5), run(t, src))
}

func TestEvalUnwrapOnErrTransfersUnhandled(t *testing.T) {
	src := `let safeDiv = fn(pair) -> match pair { (a, 0) -> Err("div by zero"), (a, b) -> Ok(a / b) } in safeDiv((10, 0))?`
	err := runErr(t, src)
	require.Error(t, err)
}

func TestEvalBarePipeCatchRecoversFallback(t *testing.T) {
	src := `Err("boom") |> catch e -> 0`
	assert.Equal(t, Int(0), run(t, src))
}

func TestEvalBarePipeCatchPassesThroughOk(t *testing.T) {
	src := `Ok(7) |> catch e -> 0`
	assert.Equal(t, Int(7), run(t, src))
}

func TestEvalBarePipeUnwrapAppliesThenUnwraps(t *testing.T) {
	src := `let safe = fn(pair) -> match pair { (a, 0) -> Err("div by zero"), (a, b) -> Ok(a / b) } in (10, 2) |> safe?`
	assert.Equal(t, Int(5), run(t, src))
}

func TestEvalUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := Evaluate(mustExpr(t, "nope"), Environment{})
	require.Error(t, err)
}

func TestEvalFieldAccessOnNonRecordIsRuntimeError(t *testing.T) {
	_, err := Evaluate(mustExpr(t, "1.x"), Environment{})
	require.Error(t, err)
}

func TestEvalNoMatchingPatternIsRuntimeError(t *testing.T) {
	_, err := Evaluate(mustExpr(t, "match 1 { 2 -> 2 }"), Environment{})
	require.Error(t, err)
}

func TestEvalUnwrapOnNonResultIsRuntimeError(t *testing.T) {
	_, err := Evaluate(mustExpr(t, "1?"), Environment{})
	require.Error(t, err)
}
