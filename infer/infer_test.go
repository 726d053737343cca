package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/internal/token"
	"github.com/leverr-lang/leverr/types"
)

func sp() token.Span {
	return token.Span{Start: token.Position{Line: 1, Column: 1}, End: token.Position{Line: 1, Column: 2}}
}

func TestInferLiterals(t *testing.T) {
	ty, err := Infer(ast.NewInt(sp(), 1), BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "Int", ty.String())

	ty, err = Infer(ast.NewString(sp(), "hi"), BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "String", ty.String())
}

func TestInferIdentityLambdaIsPolymorphic(t *testing.T) {
	id := &ast.Lambda{Param: "x", Body: ast.NewIdent(sp(), "x")}
	ty, err := Infer(id, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "ta -> ta", ty.String())
}

func TestInferLetGeneralizesAcrossUses(t *testing.T) {
	// let id = fn(x) -> x in (id(1), id("s"))
	idLambda := &ast.Lambda{Param: "x", Body: ast.NewIdent(sp(), "x")}
	tup := &ast.Tuple{Elements: []ast.Expr{
		&ast.Apply{Func: ast.NewIdent(sp(), "id"), Arg: ast.NewInt(sp(), 1)},
		&ast.Apply{Func: ast.NewIdent(sp(), "id"), Arg: ast.NewString(sp(), "s")},
	}}
	let := &ast.Let{Name: "id", Value: idLambda, Body: tup}
	ty, err := Infer(let, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "(Int, String)", ty.String())
}

func TestInferLetRecursiveFactorial(t *testing.T) {
	// let rec fact = fn(n) -> if n == 0 then 1 else n * fact(n - 1) in fact(5)
	body := &ast.If{
		Cond: &ast.BinaryOp{Op: "==", Left: ast.NewIdent(sp(), "n"), Right: ast.NewInt(sp(), 0)},
		Then: ast.NewInt(sp(), 1),
		Else: &ast.BinaryOp{
			Op:   "*",
			Left: ast.NewIdent(sp(), "n"),
			Right: &ast.Apply{
				Func: ast.NewIdent(sp(), "fact"),
				Arg:  &ast.BinaryOp{Op: "-", Left: ast.NewIdent(sp(), "n"), Right: ast.NewInt(sp(), 1)},
			},
		},
	}
	fact := &ast.Lambda{Param: "n", Body: body}
	let := &ast.Let{
		Name:      "fact",
		Value:     fact,
		Recursive: true,
		Body:      &ast.Apply{Func: ast.NewIdent(sp(), "fact"), Arg: ast.NewInt(sp(), 5)},
	}
	ty, err := Infer(let, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "Int", ty.String())
}

func TestInferMismatchedBinaryOpIsTypeError(t *testing.T) {
	expr := &ast.BinaryOp{Op: "+", Left: ast.NewInt(sp(), 5), Right: ast.NewString(sp(), "hello")}
	_, err := Infer(expr, BuiltinEnv())
	require.Error(t, err)
}

func TestInferOccursCheckFails(t *testing.T) {
	// fn(x) -> x(x) should fail the occurs check.
	selfApply := &ast.Lambda{
		Param: "x",
		Body:  &ast.Apply{Func: ast.NewIdent(sp(), "x"), Arg: ast.NewIdent(sp(), "x")},
	}
	_, err := Infer(selfApply, BuiltinEnv())
	require.Error(t, err)
}

func TestInferUnwrapRequiresResult(t *testing.T) {
	expr := &ast.Unwrap{Inner: ast.NewString(sp(), "hello")}
	_, err := Infer(expr, BuiltinEnv())
	require.Error(t, err)
}

func TestInferUnwrapOnOkExtractsPayload(t *testing.T) {
	expr := &ast.Unwrap{Inner: &ast.Tag{Name: "Ok", Args: []ast.Expr{ast.NewInt(sp(), 1)}}}
	ty, err := Infer(expr, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "Int", ty.String())
}

func TestInferBarePipeCatchRecoversFallbackType(t *testing.T) {
	// (Err("boom")) |> catch e -> 0
	pipe := &ast.Pipe{
		Left: &ast.Tag{Name: "Err", Args: []ast.Expr{ast.NewString(sp(), "boom")}},
		Right: &ast.RecoveryBinder{
			ErrParam: "e",
			Fallback: ast.NewInt(sp(), 0),
		},
	}
	ty, err := Infer(pipe, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "Int", ty.String())
}

func TestInferBarePipeUnwrapAppliesThenUnwraps(t *testing.T) {
	// 1 |> (fn(x) -> Ok(x))?
	pipe := &ast.Pipe{
		Left: ast.NewInt(sp(), 1),
		Right: &ast.Unwrap{
			Inner: &ast.Lambda{
				Param: "x",
				Body:  &ast.Tag{Name: "Ok", Args: []ast.Expr{ast.NewIdent(sp(), "x")}},
			},
		},
	}
	ty, err := Infer(pipe, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "Int", ty.String())
}

func TestInferPlainPipeAppliesRightToLeft(t *testing.T) {
	// 1 |> fn(x) -> x + 1
	pipe := &ast.Pipe{
		Left: ast.NewInt(sp(), 1),
		Right: &ast.Lambda{
			Param: "x",
			Body:  &ast.BinaryOp{Op: "+", Left: ast.NewIdent(sp(), "x"), Right: ast.NewInt(sp(), 1)},
		},
	}
	ty, err := Infer(pipe, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "Int", ty.String())
}

func TestInferMatchUnifiesCaseBodies(t *testing.T) {
	match := &ast.Match{
		Subject: ast.NewInt(sp(), 1),
		Cases: []ast.MatchCase{
			{Pattern: &ast.LitPattern{Kind: ast.LitInt, Int: 1}, Body: ast.NewString(sp(), "one")},
			{Pattern: ast.NewWildcardPattern(sp()), Body: ast.NewString(sp(), "other")},
		},
	}
	ty, err := Infer(match, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "String", ty.String())
}

func TestInferMatchBranchMismatchIsError(t *testing.T) {
	match := &ast.Match{
		Subject: ast.NewInt(sp(), 1),
		Cases: []ast.MatchCase{
			{Pattern: &ast.LitPattern{Kind: ast.LitInt, Int: 1}, Body: ast.NewString(sp(), "one")},
			{Pattern: ast.NewWildcardPattern(sp()), Body: ast.NewInt(sp(), 2)},
		},
	}
	_, err := Infer(match, BuiltinEnv())
	require.Error(t, err)
}

func TestInferFieldAccessOnOpenRecordVar(t *testing.T) {
	// fn(r) -> r.name
	getName := &ast.Lambda{
		Param: "r",
		Body:  &ast.FieldAccess{Record: ast.NewIdent(sp(), "r"), Field: "name"},
	}
	ty, err := Infer(getName, BuiltinEnv())
	require.NoError(t, err)
	fn, ok := ty.(*types.Func)
	require.True(t, ok)
	_, isRecord := fn.Param.(*types.Record)
	assert.True(t, isRecord)
}

func TestInferUndefinedVariable(t *testing.T) {
	_, err := Infer(ast.NewIdent(sp(), "nope"), BuiltinEnv())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestInferBuiltinMapApplication(t *testing.T) {
	// map(fn(x) -> x + 1)([1, 2, 3])
	call := &ast.Apply{
		Func: &ast.Apply{
			Func: ast.NewIdent(sp(), "map"),
			Arg: &ast.Lambda{
				Param: "x",
				Body:  &ast.BinaryOp{Op: "+", Left: ast.NewIdent(sp(), "x"), Right: ast.NewInt(sp(), 1)},
			},
		},
		Arg: &ast.List{Elements: []ast.Expr{ast.NewInt(sp(), 1), ast.NewInt(sp(), 2), ast.NewInt(sp(), 3)}},
	}
	ty, err := Infer(call, BuiltinEnv())
	require.NoError(t, err)
	assert.Equal(t, "List(Int)", ty.String())
}
