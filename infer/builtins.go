package infer

import "github.com/leverr-lang/leverr/types"

// builtinEnvNamesHint lists the names known to BuiltinEnv, used only to
// build "did you mean" suggestions for an undefined variable (see
// undefinedVariable in infer.go).
var builtinEnvNamesHint = []string{
	"map", "filter", "fold", "length", "head", "tail",
	"to_string", "print", "concat", "each",
}

// BuiltinEnv returns the type environment seeding the ten built-in values
// of language spec §4.6. Each scheme quantifies over every type variable
// the builtin's signature mentions, so every call site instantiates its
// own fresh copy (language spec §4.4, "Identifier").
//
// The resolution taken here is the "stricter" design flagged as an open
// question in language spec §9: fold's combining function has type
// b -> a -> b rather than being left fully unconstrained, and map/filter
// are specialized to List rather than generalized over any foldable
// shape, since Leverr has no typeclass mechanism to express the latter.
func BuiltinEnv() Env {
	env := Env{}
	for name, sc := range builtinSchemes() {
		env = env.Extend(name, sc)
	}
	return env
}

func builtinSchemes() map[string]*types.Scheme {
	a := &types.Var{ID: -1}
	b := &types.Var{ID: -2}

	scheme1 := func(t types.Type) *types.Scheme {
		return &types.Scheme{Vars: []int{-1}, Type: t}
	}
	scheme2 := func(t types.Type) *types.Scheme {
		return &types.Scheme{Vars: []int{-1, -2}, Type: t}
	}

	listA := &types.List{Elem: a}
	listB := &types.List{Elem: b}

	return map[string]*types.Scheme{
		// map : (a -> b) -> List(a) -> List(b)
		"map": scheme2(&types.Func{
			Param:  &types.Func{Param: a, Return: b},
			Return: &types.Func{Param: listA, Return: listB},
		}),

		// filter : (a -> Bool) -> List(a) -> List(a)
		"filter": scheme1(&types.Func{
			Param:  &types.Func{Param: a, Return: types.Bool},
			Return: &types.Func{Param: listA, Return: listA},
		}),

		// fold : b -> (b -> a -> b) -> List(a) -> b
		// Argument order matches language spec §4.6's table exactly:
		// fold(seed, step, xs). step is curried (b -> a -> b), the same
		// shape every multi-parameter lambda desugars to, not a
		// tuple-taking function.
		"fold": scheme2(&types.Func{
			Param: b,
			Return: &types.Func{
				Param:  &types.Func{Param: b, Return: &types.Func{Param: a, Return: b}},
				Return: &types.Func{Param: listA, Return: b},
			},
		}),

		// length : a -> Int
		// Spec §4.6 gives length two shapes (List: element count, String:
		// character count) with a runtime error for anything else — no
		// single HM type expresses that union, so, following the same
		// treatment as to_string/print below, the parameter is left fully
		// unconstrained and the List-or-String shape check happens at
		// runtime (see builtins.values's "length" entry).
		"length": scheme1(&types.Func{Param: a, Return: types.Int}),

		// head : List(a) -> Result(a)
		"head": scheme1(&types.Func{Param: listA, Return: &types.Result{Ok: a}}),

		// tail : List(a) -> Result(List(a))
		"tail": scheme1(&types.Func{Param: listA, Return: &types.Result{Ok: listA}}),

		// to_string : a -> String
		"to_string": scheme1(&types.Func{Param: a, Return: types.Str}),

		// print : a -> Unit
		"print": scheme1(&types.Func{Param: a, Return: types.Unit}),

		// concat : String -> String -> String
		"concat": &types.Scheme{Vars: nil, Type: &types.Func{
			Param:  types.Str,
			Return: &types.Func{Param: types.Str, Return: types.Str},
		}},

		// each : (a -> Unit) -> List(a) -> Unit
		"each": scheme1(&types.Func{
			Param:  &types.Func{Param: a, Return: types.Unit},
			Return: &types.Func{Param: listA, Return: types.Unit},
		}),
	}
}
