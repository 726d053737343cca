// Package infer implements Hindley-Milner type inference (Algorithm W) with
// let-polymorphism over the Leverr expression tree: instantiation of
// identifier schemes, let-generalization, and propagation of a single
// substitution through every expression shape (see language spec §4.4).
package infer

import "github.com/leverr-lang/leverr/types"

// Env maps identifiers to type schemes. It is persistent by copy-on-bind:
// Extend and ApplySubst both return a fresh map, so no enclosing scope is
// ever mutated (language spec §3, "Environments").
type Env map[string]*types.Scheme

// Extend returns a new Env with name bound to sc, leaving e untouched.
func (e Env) Extend(name string, sc *types.Scheme) Env {
	out := make(Env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = sc
	return out
}

// ExtendMono is a shorthand for Extend with a non-generalized scheme, used
// for lambda parameters and pattern bindings (language spec §4.4).
func (e Env) ExtendMono(name string, t types.Type) Env {
	return e.Extend(name, types.Mono(t))
}

// ApplySubst returns a new Env with s applied to every scheme's type.
func (e Env) ApplySubst(s types.Subst) Env {
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = s.ApplyScheme(v)
	}
	return out
}

// FreeVars returns the free type variables across every scheme in e.
func (e Env) FreeVars() map[int]bool {
	return types.FreeVarsEnv(e)
}
