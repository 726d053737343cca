package infer

import (
	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/errors"
	"github.com/leverr-lang/leverr/internal/token"
	"github.com/leverr-lang/leverr/types"
)

// Inferencer runs one Algorithm W pass. It owns the fresh-variable counter,
// which must be reset before each top-level inference run (language spec §3).
type Inferencer struct {
	next int
}

// Infer runs Algorithm W over expr starting from initialEnv and returns the
// inferred type with the final substitution applied, or a type-error
// Diagnostic carrying a source span (language spec §4.4).
func Infer(expr ast.Expr, initialEnv Env) (types.Type, error) {
	inf := &Inferencer{}
	t, s, err := inf.infer(expr, initialEnv, types.Empty())
	if err != nil {
		return nil, err
	}
	return s.Apply(t), nil
}

func diagAt(span token.Span, format string, args ...any) error {
	return errors.New(errors.Type, span, format, args...)
}

func (inf *Inferencer) unify(t1, t2 types.Type, s types.Subst, span token.Span, context string) (types.Subst, error) {
	s2, err := types.Unify(t1, t2, s)
	if err != nil {
		return nil, diagAt(span, "%s: %s", context, err.Error())
	}
	return s2, nil
}

// infer is the single recursive entry point implementing every expression
// shape of language spec §4.4. s is the substitution accumulated so far;
// the returned substitution is s extended by whatever this call learned.
func (inf *Inferencer) infer(expr ast.Expr, env Env, s types.Subst) (types.Type, types.Subst, error) {
	switch x := expr.(type) {

	case *ast.Int:
		return types.Int, s, nil
	case *ast.Float:
		return types.FloatT, s, nil
	case *ast.String:
		return types.Str, s, nil
	case *ast.Bool:
		return types.Bool, s, nil
	case *ast.Unit:
		return types.Unit, s, nil

	case *ast.Ident:
		sc, ok := env[x.Name]
		if !ok {
			return nil, nil, inf.undefinedVariable(x)
		}
		return inf.instantiate(sc), s, nil

	case *ast.Let:
		return inf.inferLet(x, env, s)

	case *ast.Lambda:
		param := inf.fresh()
		bodyEnv := env.ExtendMono(x.Param, param)
		bodyType, s1, err := inf.infer(x.Body, bodyEnv, s)
		if err != nil {
			return nil, nil, err
		}
		return &types.Func{Param: s1.Apply(param), Return: bodyType}, s1, nil

	case *ast.Apply:
		fnType, s1, err := inf.infer(x.Func, env, s)
		if err != nil {
			return nil, nil, err
		}
		argType, s2, err := inf.infer(x.Arg, env.ApplySubst(s1), s1)
		if err != nil {
			return nil, nil, err
		}
		ret := inf.fresh()
		s3, err := inf.unify(s2.Apply(fnType), &types.Func{Param: argType, Return: ret}, s2, x.Span(),
			"cannot apply a non-function")
		if err != nil {
			return nil, nil, err
		}
		return s3.Apply(ret), s3, nil

	case *ast.BinaryOp:
		return inf.inferBinary(x, env, s)

	case *ast.UnaryOp:
		return inf.inferUnary(x, env, s)

	case *ast.Pipe:
		return inf.inferPipe(x, env, s)

	case *ast.Unwrap:
		innerType, s1, err := inf.infer(x.Inner, env, s)
		if err != nil {
			return nil, nil, err
		}
		alpha := inf.fresh()
		s2, err := inf.unify(innerType, &types.Result{Ok: alpha}, s1, x.Span(),
			"the ? operator requires a Result type")
		if err != nil {
			return nil, nil, err
		}
		return s2.Apply(alpha), s2, nil

	case *ast.RecoveryBinder:
		return inf.inferRecoveryBinder(x, env, s)

	case *ast.Match:
		return inf.inferMatch(x, env, s)

	case *ast.If:
		return inf.inferIf(x, env, s)

	case *ast.List:
		return inf.inferList(x, env, s)

	case *ast.Tuple:
		elems := make([]types.Type, len(x.Elements))
		cur := s
		for i, el := range x.Elements {
			t, s2, err := inf.infer(el, env.ApplySubst(cur), cur)
			if err != nil {
				return nil, nil, err
			}
			elems[i] = t
			cur = s2
		}
		return &types.Tuple{Elements: elems}, cur, nil

	case *ast.Record:
		fields := map[string]types.Type{}
		cur := s
		for _, f := range x.Fields {
			t, s2, err := inf.infer(f.Value, env.ApplySubst(cur), cur)
			if err != nil {
				return nil, nil, err
			}
			fields[f.Name] = t
			cur = s2
		}
		return &types.Record{Fields: fields}, cur, nil

	case *ast.FieldAccess:
		return inf.inferFieldAccess(x, env, s)

	case *ast.Tag:
		return inf.inferTag(x, env, s)
	}

	return nil, nil, diagAt(expr.Span(), "unsupported expression")
}

func (inf *Inferencer) undefinedVariable(id *ast.Ident) error {
	names := make([]string, 0, len(builtinEnvNamesHint))
	names = append(names, builtinEnvNamesHint...)
	hint := errors.FormatSuggestions(errors.SuggestSimilar(id.Name, names))
	msg := "undefined variable " + quote(id.Name)
	if hint != "" {
		msg += ". " + hint
	}
	return diagAt(id.Span(), "%s", msg)
}

func quote(s string) string { return "\"" + s + "\"" }

func (inf *Inferencer) inferLet(x *ast.Let, env Env, s types.Subst) (types.Type, types.Subst, error) {
	if !x.Recursive {
		valType, s1, err := inf.infer(x.Value, env, s)
		if err != nil {
			return nil, nil, err
		}
		envSub := env.ApplySubst(s1)
		scheme := generalize(s1.Apply(valType), envSub)
		bodyEnv := envSub.Extend(x.Name, scheme)
		return inf.infer(x.Body, bodyEnv, s1)
	}

	placeholder := inf.fresh()
	valueEnv := env.ExtendMono(x.Name, placeholder)
	valType, s1, err := inf.infer(x.Value, valueEnv, s)
	if err != nil {
		return nil, nil, err
	}
	s2, err := inf.unify(s1.Apply(placeholder), valType, s1, x.Value.Span(),
		"recursive binding does not match its own use")
	if err != nil {
		return nil, nil, err
	}
	// Recursive definitions are not generalized at their own definition
	// site (language spec §4.4).
	bodyEnv := env.ApplySubst(s2).ExtendMono(x.Name, s2.Apply(placeholder))
	return inf.infer(x.Body, bodyEnv, s2)
}

func (inf *Inferencer) inferUnary(x *ast.UnaryOp, env Env, s types.Subst) (types.Type, types.Subst, error) {
	operandType, s1, err := inf.infer(x.Operand, env, s)
	if err != nil {
		return nil, nil, err
	}
	switch x.Op {
	case "!":
		s2, err := inf.unify(operandType, types.Bool, s1, x.Span(), "! requires a Bool operand")
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s2, nil
	case "-":
		if s2, err := inf.unify(operandType, types.Int, s1, x.Span(), "- requires a numeric operand"); err == nil {
			return types.Int, s2, nil
		}
		s2, err := inf.unify(operandType, types.FloatT, s1, x.Span(), "- requires a numeric operand")
		if err != nil {
			return nil, nil, err
		}
		return types.FloatT, s2, nil
	}
	return nil, nil, diagAt(x.Span(), "unknown unary operator %q", x.Op)
}

func (inf *Inferencer) inferBinary(x *ast.BinaryOp, env Env, s types.Subst) (types.Type, types.Subst, error) {
	leftType, s1, err := inf.infer(x.Left, env, s)
	if err != nil {
		return nil, nil, err
	}
	rightType, s2, err := inf.infer(x.Right, env.ApplySubst(s1), s1)
	if err != nil {
		return nil, nil, err
	}

	switch x.Op {
	case "+", "-", "*", "/", "%":
		s3, err := inf.unify(s2.Apply(leftType), rightType, s2, x.Span(), "operand types must match")
		if err != nil {
			return nil, nil, err
		}
		return s3.Apply(leftType), s3, nil
	case "<", ">", "<=", ">=", "==", "!=":
		s3, err := inf.unify(s2.Apply(leftType), rightType, s2, x.Span(), "operand types must match")
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s3, nil
	case "++":
		s3, err := inf.unify(s2.Apply(leftType), types.Str, s2, x.Left.Span(), "++ requires a String")
		if err != nil {
			return nil, nil, err
		}
		s4, err := inf.unify(rightType, types.Str, s3, x.Right.Span(), "++ requires a String")
		if err != nil {
			return nil, nil, err
		}
		return types.Str, s4, nil
	case "&&", "||":
		s3, err := inf.unify(s2.Apply(leftType), types.Bool, s2, x.Left.Span(), "logical operators require Bool")
		if err != nil {
			return nil, nil, err
		}
		s4, err := inf.unify(rightType, types.Bool, s3, x.Right.Span(), "logical operators require Bool")
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s4, nil
	}
	return nil, nil, diagAt(x.Span(), "unknown binary operator %q", x.Op)
}

func (inf *Inferencer) inferPipe(x *ast.Pipe, env Env, s types.Subst) (types.Type, types.Subst, error) {
	if rb, ok := x.Right.(*ast.RecoveryBinder); ok && rb.Protected == nil {
		leftType, s1, err := inf.infer(x.Left, env, s)
		if err != nil {
			return nil, nil, err
		}
		alpha := inf.fresh()
		s2, err := types.Unify(leftType, &types.Result{Ok: alpha}, s1)
		if err != nil {
			// A left side that is not a Result (one already unwrapped by ?,
			// say) is yielded by the binder unchanged, so alpha takes its type.
			s2, err = inf.unify(alpha, leftType, s1, x.Left.Span(), "catch's left side")
			if err != nil {
				return nil, nil, err
			}
		}
		fallbackEnv := env.ApplySubst(s2).ExtendMono(rb.ErrParam, types.Str)
		fallbackType, s3, err := inf.infer(rb.Fallback, fallbackEnv, s2)
		if err != nil {
			return nil, nil, err
		}
		s4, err := inf.unify(s3.Apply(alpha), fallbackType, s3, rb.Fallback.Span(),
			"catch's fallback must match the protected value's type")
		if err != nil {
			return nil, nil, err
		}
		return s4.Apply(alpha), s4, nil
	}

	if uw, ok := x.Right.(*ast.Unwrap); ok {
		leftType, s1, err := inf.infer(x.Left, env, s)
		if err != nil {
			return nil, nil, err
		}
		fnType, s2, err := inf.infer(uw.Inner, env.ApplySubst(s1), s1)
		if err != nil {
			return nil, nil, err
		}
		ret := inf.fresh()
		s3, err := inf.unify(s2.Apply(fnType), &types.Func{Param: leftType, Return: ret}, s2, x.Span(),
			"cannot apply a non-function")
		if err != nil {
			return nil, nil, err
		}
		alpha := inf.fresh()
		s4, err := inf.unify(s3.Apply(ret), &types.Result{Ok: alpha}, s3, x.Span(),
			"the ? operator requires a Result type")
		if err != nil {
			return nil, nil, err
		}
		return s4.Apply(alpha), s4, nil
	}

	leftType, s1, err := inf.infer(x.Left, env, s)
	if err != nil {
		return nil, nil, err
	}
	rightType, s2, err := inf.infer(x.Right, env.ApplySubst(s1), s1)
	if err != nil {
		return nil, nil, err
	}
	ret := inf.fresh()
	s3, err := inf.unify(s2.Apply(rightType), &types.Func{Param: leftType, Return: ret}, s2, x.Span(),
		"cannot pipe into a non-function")
	if err != nil {
		return nil, nil, err
	}
	return s3.Apply(ret), s3, nil
}

// inferRecoveryBinder handles a RecoveryBinder reached directly (not as the
// bare right side of a Pipe, which inferPipe handles itself).
func (inf *Inferencer) inferRecoveryBinder(x *ast.RecoveryBinder, env Env, s types.Subst) (types.Type, types.Subst, error) {
	cur := s
	if x.Protected != nil {
		_, s1, err := inf.infer(x.Protected, env, cur)
		if err != nil {
			return nil, nil, err
		}
		cur = s1
	}
	fallbackEnv := env.ApplySubst(cur).ExtendMono(x.ErrParam, types.Str)
	return inf.infer(x.Fallback, fallbackEnv, cur)
}

func (inf *Inferencer) inferIf(x *ast.If, env Env, s types.Subst) (types.Type, types.Subst, error) {
	condType, s1, err := inf.infer(x.Cond, env, s)
	if err != nil {
		return nil, nil, err
	}
	s2, err := inf.unify(condType, types.Bool, s1, x.Cond.Span(), "if condition must be Bool")
	if err != nil {
		return nil, nil, err
	}
	thenType, s3, err := inf.infer(x.Then, env.ApplySubst(s2), s2)
	if err != nil {
		return nil, nil, err
	}
	elseType, s4, err := inf.infer(x.Else, env.ApplySubst(s3), s3)
	if err != nil {
		return nil, nil, err
	}
	s5, err := inf.unify(s4.Apply(thenType), elseType, s4, x.Span(), "if branches must have the same type")
	if err != nil {
		return nil, nil, err
	}
	return s5.Apply(thenType), s5, nil
}

func (inf *Inferencer) inferList(x *ast.List, env Env, s types.Subst) (types.Type, types.Subst, error) {
	if len(x.Elements) == 0 {
		return &types.List{Elem: inf.fresh()}, s, nil
	}
	elemType, cur, err := inf.infer(x.Elements[0], env, s)
	if err != nil {
		return nil, nil, err
	}
	for _, el := range x.Elements[1:] {
		t, s2, err := inf.infer(el, env.ApplySubst(cur), cur)
		if err != nil {
			return nil, nil, err
		}
		s3, err := inf.unify(s2.Apply(elemType), t, s2, el.Span(), "list elements must share one type")
		if err != nil {
			return nil, nil, err
		}
		elemType = s3.Apply(elemType)
		cur = s3
	}
	return &types.List{Elem: elemType}, cur, nil
}

func (inf *Inferencer) inferFieldAccess(x *ast.FieldAccess, env Env, s types.Subst) (types.Type, types.Subst, error) {
	recType, s1, err := inf.infer(x.Record, env, s)
	if err != nil {
		return nil, nil, err
	}
	applied := s1.Apply(recType)
	switch rec := applied.(type) {
	case *types.Record:
		if t, ok := rec.Fields[x.Field]; ok {
			return t, s1, nil
		}
		if rec.Row == nil {
			return nil, nil, diagAt(x.Span(), "no field %q", x.Field)
		}
	case *types.Var:
		fieldType := inf.fresh()
		row := inf.fresh()
		s2, err := inf.unify(rec, &types.Record{Fields: map[string]types.Type{x.Field: fieldType}, Row: row}, s1,
			x.Span(), "field access requires a record")
		if err != nil {
			return nil, nil, err
		}
		return s2.Apply(fieldType), s2, nil
	default:
		return nil, nil, diagAt(x.Span(), "field access on non-record type %s", applied)
	}
	// Open record missing the field: extend its row with a fresh field type.
	rec := applied.(*types.Record)
	fieldType := inf.fresh()
	s2, err := inf.unify(rec.Row, &types.Record{Fields: map[string]types.Type{x.Field: fieldType}, Row: inf.fresh()}, s1,
		x.Span(), "field access requires a record")
	if err != nil {
		return nil, nil, err
	}
	return s2.Apply(fieldType), s2, nil
}

func (inf *Inferencer) inferTag(x *ast.Tag, env Env, s types.Subst) (types.Type, types.Subst, error) {
	switch x.Name {
	case "Ok":
		if len(x.Args) == 1 {
			t, s1, err := inf.infer(x.Args[0], env, s)
			if err != nil {
				return nil, nil, err
			}
			return &types.Result{Ok: t}, s1, nil
		}
		return &types.Result{Ok: inf.fresh()}, s, nil
	case "Err":
		alpha := inf.fresh()
		if len(x.Args) == 1 {
			t, s1, err := inf.infer(x.Args[0], env, s)
			if err != nil {
				return nil, nil, err
			}
			s2, err := inf.unify(t, types.Str, s1, x.Args[0].Span(), "Err carries a String message")
			if err != nil {
				return nil, nil, err
			}
			return &types.Result{Ok: alpha}, s2, nil
		}
		return &types.Result{Ok: alpha}, s, nil
	}

	args := make([]types.Type, len(x.Args))
	cur := s
	for i, a := range x.Args {
		t, s2, err := inf.infer(a, env.ApplySubst(cur), cur)
		if err != nil {
			return nil, nil, err
		}
		args[i] = t
		cur = s2
	}
	return &types.Tag{Name: x.Name, Args: args}, cur, nil
}

func (inf *Inferencer) inferMatch(x *ast.Match, env Env, s types.Subst) (types.Type, types.Subst, error) {
	subjectType, s1, err := inf.infer(x.Subject, env, s)
	if err != nil {
		return nil, nil, err
	}
	returnVar := inf.fresh()
	cur := s1

	for _, c := range x.Cases {
		patType, bindings, s2, err := inf.inferPattern(c.Pattern, cur)
		if err != nil {
			return nil, nil, err
		}
		cur = s2

		// Tag patterns are left opaque: the language has no declared sum
		// types, so the inferencer cannot check exhaustiveness or shape
		// against the subject (language spec §4.4, §9 "Open tag space").
		if _, isTag := c.Pattern.(*ast.TagPattern); !isTag {
			s3, err := inf.unify(cur.Apply(subjectType), patType, cur, c.Pattern.Span(),
				"pattern does not match the subject's type")
			if err != nil {
				return nil, nil, err
			}
			cur = s3
		}

		caseEnv := env.ApplySubst(cur)
		for name, t := range bindings {
			caseEnv = caseEnv.ExtendMono(name, t)
		}
		bodyType, s4, err := inf.infer(c.Body, caseEnv, cur)
		if err != nil {
			return nil, nil, err
		}
		cur = s4
		s5, err := inf.unify(cur.Apply(returnVar), bodyType, cur, c.Body.Span(), "match cases must return the same type")
		if err != nil {
			return nil, nil, err
		}
		cur = s5
	}
	return cur.Apply(returnVar), cur, nil
}
