// Package builtins seeds a runtime Environment with the ten curried
// built-in values of language spec §4.6: map, filter, fold, length, head,
// tail, to_string, print, concat, and each.
package builtins

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/leverr-lang/leverr/eval"
	"github.com/leverr-lang/leverr/internal/token"
)

// Environment builds the built-in runtime Environment. print writes to out
// (language spec §6, "stdout sink" collaborator interface) so a host
// embedding Leverr can capture or redirect program output instead of
// writing to the process's real stdout.
func Environment(out io.Writer) eval.Environment {
	env := eval.Environment{}
	for name, b := range values(out) {
		env = env.Extend(name, b)
	}
	return env
}

func call(fn, arg eval.Value) (eval.Value, error) {
	return eval.Apply(fn, arg, token.Span{})
}

func values(out io.Writer) map[string]*eval.Builtin {
	return map[string]*eval.Builtin{
		"map": {
			Name: "map", Arity: 2,
			Fn: func(args []eval.Value) (eval.Value, error) {
				fn, list, err := funcAndList("map", args)
				if err != nil {
					return nil, err
				}
				mapped := make([]eval.Value, len(list.Elements))
				for i, e := range list.Elements {
					v, err := call(fn, e)
					if err != nil {
						return nil, err
					}
					mapped[i] = v
				}
				return &eval.List{Elements: mapped}, nil
			},
		},
		"filter": {
			Name: "filter", Arity: 2,
			Fn: func(args []eval.Value) (eval.Value, error) {
				fn, list, err := funcAndList("filter", args)
				if err != nil {
					return nil, err
				}
				var kept []eval.Value
				for _, e := range list.Elements {
					v, err := call(fn, e)
					if err != nil {
						return nil, err
					}
					if b, ok := v.(eval.Bool); ok && bool(b) {
						kept = append(kept, e)
					}
				}
				return &eval.List{Elements: kept}, nil
			},
		},
		"fold": {
			// fold(seed, step, xs), matching language spec §4.6's table.
			Name: "fold", Arity: 3,
			Fn: func(args []eval.Value) (eval.Value, error) {
				acc := args[0]
				fn := args[1]
				list, ok := args[2].(*eval.List)
				if !ok {
					return nil, fmt.Errorf("fold: expected a list as the third argument, got %s", args[2])
				}
				for _, e := range list.Elements {
					step, err := call(fn, acc)
					if err != nil {
						return nil, err
					}
					next, err := call(step, e)
					if err != nil {
						return nil, err
					}
					acc = next
				}
				return acc, nil
			},
		},
		"length": {
			Name: "length", Arity: 1,
			Fn: func(args []eval.Value) (eval.Value, error) {
				switch v := args[0].(type) {
				case *eval.List:
					return eval.Int(len(v.Elements)), nil
				case eval.String:
					return eval.Int(utf8.RuneCountInString(string(v))), nil
				default:
					return nil, fmt.Errorf("length: expected a list or a string, got %s", args[0])
				}
			},
		},
		"head": {
			Name: "head", Arity: 1,
			Fn: func(args []eval.Value) (eval.Value, error) {
				list, ok := args[0].(*eval.List)
				if !ok {
					return nil, fmt.Errorf("head: expected a list, got %s", args[0])
				}
				if len(list.Elements) == 0 {
					return eval.Err("head: empty list"), nil
				}
				return eval.Ok(list.Elements[0]), nil
			},
		},
		"tail": {
			Name: "tail", Arity: 1,
			Fn: func(args []eval.Value) (eval.Value, error) {
				list, ok := args[0].(*eval.List)
				if !ok {
					return nil, fmt.Errorf("tail: expected a list, got %s", args[0])
				}
				if len(list.Elements) == 0 {
					return eval.Err("tail: empty list"), nil
				}
				rest := make([]eval.Value, len(list.Elements)-1)
				copy(rest, list.Elements[1:])
				return eval.Ok(&eval.List{Elements: rest}), nil
			},
		},
		"to_string": {
			Name: "to_string", Arity: 1,
			Fn: func(args []eval.Value) (eval.Value, error) {
				if s, ok := args[0].(eval.String); ok {
					return s, nil
				}
				return eval.String(eval.Render(args[0])), nil
			},
		},
		"print": {
			Name: "print", Arity: 1,
			Fn: func(args []eval.Value) (eval.Value, error) {
				if s, ok := args[0].(eval.String); ok {
					fmt.Fprintln(out, string(s))
				} else {
					fmt.Fprintln(out, eval.Render(args[0]))
				}
				return eval.Unit{}, nil
			},
		},
		"concat": {
			Name: "concat", Arity: 2,
			Fn: func(args []eval.Value) (eval.Value, error) {
				a, ok := args[0].(eval.String)
				if !ok {
					return nil, fmt.Errorf("concat: expected a string, got %s", args[0])
				}
				b, ok := args[1].(eval.String)
				if !ok {
					return nil, fmt.Errorf("concat: expected a string, got %s", args[1])
				}
				return a + b, nil
			},
		},
		"each": {
			Name: "each", Arity: 2,
			Fn: func(args []eval.Value) (eval.Value, error) {
				fn, list, err := funcAndList("each", args)
				if err != nil {
					return nil, err
				}
				for _, e := range list.Elements {
					if _, err := call(fn, e); err != nil {
						return nil, err
					}
				}
				return eval.Unit{}, nil
			},
		},
	}
}

func funcAndList(name string, args []eval.Value) (eval.Value, *eval.List, error) {
	list, ok := args[1].(*eval.List)
	if !ok {
		return nil, nil, fmt.Errorf("%s: expected a list as the second argument, got %s", name, args[1])
	}
	return args[0], list, nil
}
