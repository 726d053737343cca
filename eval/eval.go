package eval

import (
	"math"

	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/errors"
	"github.com/leverr-lang/leverr/internal/token"
)

// transfer is the early-return control transfer of language spec §5: a
// non-local event raised inside an Unwrap (or a pipe's bare-unwrap
// subcase) carrying the failing Err tag, unwound until the nearest
// enclosing recovery binder catches it.
type transfer struct {
	Err *Tag
}

func (t *transfer) Error() string { return "unhandled " + t.Err.String() }

func runtimeErr(span token.Span, format string, args ...any) error {
	return errors.New(errors.Runtime, span, format, args...)
}

// Evaluate walks expr under env and returns its runtime value, or a
// runtime-error Diagnostic. A transfer that escapes every recovery binder
// in the program is reported as an unhandled-error runtime error, since
// the top-level caller has no binder left to catch it.
func Evaluate(expr ast.Expr, env Environment) (Value, error) {
	v, err := eval(expr, env)
	if t, ok := err.(*transfer); ok {
		return nil, runtimeErr(expr.Span(), "unhandled error: %s", t.Err.String())
	}
	return v, err
}

func eval(expr ast.Expr, env Environment) (Value, error) {
	switch x := expr.(type) {
	case *ast.Int:
		return Int(x.Value), nil
	case *ast.Float:
		return Float(x.Value), nil
	case *ast.String:
		return String(x.Value), nil
	case *ast.Bool:
		return Bool(x.Value), nil
	case *ast.Unit:
		return Unit{}, nil

	case *ast.Ident:
		v, ok := env[x.Name]
		if !ok {
			return nil, runtimeErr(x.Span(), "undefined variable %q", x.Name)
		}
		return v, nil

	case *ast.Let:
		return evalLet(x, env)

	case *ast.Lambda:
		return &Closure{Param: x.Param, Body: x.Body, Env: env}, nil

	case *ast.Apply:
		fn, err := eval(x.Func, env)
		if err != nil {
			return nil, err
		}
		arg, err := eval(x.Arg, env)
		if err != nil {
			return nil, err
		}
		return apply(fn, arg, x.Span())

	case *ast.BinaryOp:
		return evalBinary(x, env)

	case *ast.UnaryOp:
		return evalUnary(x, env)

	case *ast.Pipe:
		return evalPipe(x, env)

	case *ast.Unwrap:
		return evalUnwrap(x, env)

	case *ast.RecoveryBinder:
		return evalRecoveryBinder(x, env)

	case *ast.Match:
		return evalMatch(x, env)

	case *ast.If:
		cond, err := eval(x.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(Bool)
		if !ok {
			return nil, runtimeErr(x.Cond.Span(), "if condition must be a boolean")
		}
		if b {
			return eval(x.Then, env)
		}
		return eval(x.Else, env)

	case *ast.List:
		elems := make([]Value, len(x.Elements))
		for i, e := range x.Elements {
			v, err := eval(e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &List{Elements: elems}, nil

	case *ast.Tuple:
		elems := make([]Value, len(x.Elements))
		for i, e := range x.Elements {
			v, err := eval(e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &Tuple{Elements: elems}, nil

	case *ast.Record:
		fields := make([]RecordField, len(x.Fields))
		for i, f := range x.Fields {
			v, err := eval(f.Value, env)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordField{Name: f.Name, Value: v}
		}
		return &Record{Fields: fields}, nil

	case *ast.FieldAccess:
		rec, err := eval(x.Record, env)
		if err != nil {
			return nil, err
		}
		r, ok := rec.(*Record)
		if !ok {
			return nil, runtimeErr(x.Span(), "field access on non-record value %s", rec)
		}
		v, ok := r.Get(x.Field)
		if !ok {
			return nil, runtimeErr(x.Span(), "no field %q", x.Field)
		}
		return v, nil

	case *ast.Tag:
		args := make([]Value, len(x.Args))
		for i, a := range x.Args {
			v, err := eval(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return &Tag{Name: x.Name, Args: args}, nil
	}

	return nil, runtimeErr(expr.Span(), "unsupported expression")
}

// evalLet handles both plain and recursive bindings. The recursive case
// extends env once into recEnv and evaluates the value expression against
// that exact map; if the result is a closure, recEnv is then mutated in
// place so the closure's captured environment contains its own binding
// (language spec §4.5, "Let").
func evalLet(x *ast.Let, env Environment) (Value, error) {
	if !x.Recursive {
		v, err := eval(x.Value, env)
		if err != nil {
			return nil, err
		}
		return eval(x.Body, env.Extend(x.Name, v))
	}

	recEnv := env.Extend(x.Name, Unit{})
	v, err := eval(x.Value, recEnv)
	if err != nil {
		return nil, err
	}
	recEnv[x.Name] = v
	return eval(x.Body, recEnv)
}

// Apply invokes fn with arg, honoring closure capture and builtin currying
// exactly as an in-language Apply node would (language spec §4.5). It is
// exported so higher-order built-ins (map, filter, fold, each) can call
// back into user-supplied functions without reaching into eval internals.
func Apply(fn, arg Value, span token.Span) (Value, error) {
	return apply(fn, arg, span)
}

// apply implements the application rule of language spec §4.5: a closure
// evaluates its body in its captured environment extended with the
// parameter; a builtin accumulates the argument and auto-curries, invoking
// its callable once arity is reached.
func apply(fn, arg Value, span token.Span) (Value, error) {
	switch f := fn.(type) {
	case *Closure:
		return eval(f.Body, f.Env.Extend(f.Param, arg))
	case *Builtin:
		args := append(append([]Value{}, f.Args...), arg)
		if len(args) < f.Arity {
			return &Builtin{Name: f.Name, Arity: f.Arity, Args: args, Fn: f.Fn}, nil
		}
		return f.Fn(args)
	}
	return nil, runtimeErr(span, "cannot call non-function value %s", fn)
}

func evalBinary(x *ast.BinaryOp, env Environment) (Value, error) {
	left, err := eval(x.Left, env)
	if err != nil {
		return nil, err
	}

	// Logical operators are strict but short-circuit-free per spec §4.5
	// ("both sides fully evaluated").
	right, err := eval(x.Right, env)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case "+", "-", "*", "/", "%":
		return evalArithmetic(x, left, right)
	case "<", ">", "<=", ">=":
		return evalRelational(x, left, right)
	case "==", "!=":
		return evalEquality(x, left, right)
	case "++":
		ls, lok := left.(String)
		rs, rok := right.(String)
		if !lok || !rok {
			return nil, runtimeErr(x.Span(), "++ requires two strings")
		}
		if x.Op == "++" {
			return ls + rs, nil
		}
	case "&&", "||":
		lb, lok := left.(Bool)
		rb, rok := right.(Bool)
		if !lok || !rok {
			return nil, runtimeErr(x.Span(), "logical operator requires two booleans")
		}
		if x.Op == "&&" {
			return Bool(bool(lb) && bool(rb)), nil
		}
		return Bool(bool(lb) || bool(rb)), nil
	}
	return nil, runtimeErr(x.Span(), "unknown binary operator %q", x.Op)
}

func evalArithmetic(x *ast.BinaryOp, left, right Value) (Value, error) {
	li, liok := left.(Int)
	ri, riok := right.(Int)
	if liok && riok {
		switch x.Op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "/":
			if ri == 0 {
				return nil, runtimeErr(x.Span(), "division by zero")
			}
			return li / ri, nil // Go integer division truncates toward zero
		case "%":
			if ri == 0 {
				return nil, runtimeErr(x.Span(), "division by zero")
			}
			return li % ri, nil
		}
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, runtimeErr(x.Span(), "arithmetic operator requires two numbers")
	}
	switch x.Op {
	case "+":
		return Float(lf + rf), nil
	case "-":
		return Float(lf - rf), nil
	case "*":
		return Float(lf * rf), nil
	case "/":
		return Float(lf / rf), nil
	case "%":
		return Float(math.Mod(lf, rf)), nil
	}
	return nil, runtimeErr(x.Span(), "unknown arithmetic operator %q", x.Op)
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	}
	return 0, false
}

func evalRelational(x *ast.BinaryOp, left, right Value) (Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, runtimeErr(x.Span(), "relational operator requires two numbers")
	}
	switch x.Op {
	case "<":
		return Bool(lf < rf), nil
	case ">":
		return Bool(lf > rf), nil
	case "<=":
		return Bool(lf <= rf), nil
	case ">=":
		return Bool(lf >= rf), nil
	}
	return nil, runtimeErr(x.Span(), "unknown relational operator %q", x.Op)
}

func evalEquality(x *ast.BinaryOp, left, right Value) (Value, error) {
	eq := valuesEqual(left, right)
	if x.Op == "!=" {
		eq = !eq
	}
	return Bool(eq), nil
}

func valuesEqual(a, b Value) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
	}
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *Tag:
		bv, ok := b.(*Tag)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !valuesEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func evalUnary(x *ast.UnaryOp, env Environment) (Value, error) {
	v, err := eval(x.Operand, env)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case "!":
		b, ok := v.(Bool)
		if !ok {
			return nil, runtimeErr(x.Span(), "! requires a boolean")
		}
		return !b, nil
	case "-":
		switch n := v.(type) {
		case Int:
			return -n, nil
		case Float:
			return -n, nil
		}
		return nil, runtimeErr(x.Span(), "- requires a number")
	}
	return nil, runtimeErr(x.Span(), "unknown unary operator %q", x.Op)
}

// evalPipe mirrors the inferencer's three subcases (language spec §4.5).
func evalPipe(x *ast.Pipe, env Environment) (Value, error) {
	if rb, ok := x.Right.(*ast.RecoveryBinder); ok && rb.Protected == nil {
		filled := ast.NewRecoveryBinder(rb.Span(), x.Left, rb.ErrParam, rb.Fallback)
		return evalRecoveryBinder(filled, env)
	}

	if uw, ok := x.Right.(*ast.Unwrap); ok {
		leftVal, err := eval(x.Left, env)
		if err != nil {
			return nil, err
		}
		fn, err := eval(uw.Inner, env)
		if err != nil {
			return nil, err
		}
		result, err := apply(fn, leftVal, x.Span())
		if err != nil {
			return nil, err
		}
		tag, ok := result.(*Tag)
		if !ok {
			return nil, runtimeErr(x.Span(), "? requires a Result value")
		}
		switch tag.Name {
		case "Ok":
			if len(tag.Args) == 1 {
				return tag.Args[0], nil
			}
			return Unit{}, nil
		case "Err":
			return nil, &transfer{Err: tag}
		}
		return nil, runtimeErr(x.Span(), "? requires a Result value")
	}

	leftVal, err := eval(x.Left, env)
	if err != nil {
		return nil, err
	}
	rightVal, err := eval(x.Right, env)
	if err != nil {
		return nil, err
	}
	return apply(rightVal, leftVal, x.Span())
}

func evalUnwrap(x *ast.Unwrap, env Environment) (Value, error) {
	v, err := eval(x.Inner, env)
	if err != nil {
		return nil, err
	}
	tag, ok := v.(*Tag)
	if !ok {
		return nil, runtimeErr(x.Span(), "? requires a Result value")
	}
	switch tag.Name {
	case "Ok":
		if len(tag.Args) == 1 {
			return tag.Args[0], nil
		}
		return Unit{}, nil
	case "Err":
		return nil, &transfer{Err: tag}
	}
	return nil, runtimeErr(x.Span(), "? requires a Result value")
}

// evalRecoveryBinder evaluates a recovery binder whose Protected slot has
// already been filled (either at parse time, or by evalPipe just above).
// It catches a transfer raised while evaluating Protected, as well as a
// directly-returned Err tag, and routes both to the fallback with the
// error parameter bound to the Err's text message.
func evalRecoveryBinder(x *ast.RecoveryBinder, env Environment) (Value, error) {
	if x.Protected == nil {
		return eval(x.Fallback, env.Extend(x.ErrParam, String("")))
	}

	v, err := eval(x.Protected, env)
	var errTag *Tag
	if t, ok := err.(*transfer); ok {
		errTag = t.Err
	} else if err != nil {
		return nil, err
	} else if tag, ok := v.(*Tag); ok && tag.Name == "Err" {
		errTag = tag
	}

	if errTag != nil {
		msg, _ := ErrMessage(errTag)
		return eval(x.Fallback, env.Extend(x.ErrParam, String(msg)))
	}

	if tag, ok := v.(*Tag); ok && tag.Name == "Ok" {
		if len(tag.Args) == 1 {
			return tag.Args[0], nil
		}
		return Unit{}, nil
	}
	return v, nil
}

func evalMatch(x *ast.Match, env Environment) (Value, error) {
	subject, err := eval(x.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, c := range x.Cases {
		bindings, ok := matchPattern(c.Pattern, subject)
		if !ok {
			continue
		}
		caseEnv := env
		for name, v := range bindings {
			caseEnv = caseEnv.Extend(name, v)
		}
		return eval(c.Body, caseEnv)
	}
	return nil, runtimeErr(x.Span(), "no matching pattern for %s", subject)
}
