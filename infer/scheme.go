package infer

import (
	"sort"

	"github.com/leverr-lang/leverr/types"
)

// fresh returns a new, globally-unique (within this inference run) type
// variable. The counter is owned by the Inferencer and reset at the start
// of every top-level Infer call (language spec §3 invariant: "Type
// variable identifiers are globally unique within a single inference run").
func (inf *Inferencer) fresh() *types.Var {
	v := &types.Var{ID: inf.next}
	inf.next++
	return v
}

// instantiate replaces every quantified variable of sc with a fresh one, so
// that distinct uses of a polymorphic binding never accidentally unify with
// each other (language spec §4.4, "Identifier").
func (inf *Inferencer) instantiate(sc *types.Scheme) types.Type {
	if len(sc.Vars) == 0 {
		return sc.Type
	}
	s := types.Subst{}
	for _, id := range sc.Vars {
		s[id] = inf.fresh()
	}
	return s.Apply(sc.Type)
}

// generalize quantifies over the free variables of t that do not occur free
// in env, producing a reusable polymorphic scheme for a non-recursive let
// binding (language spec §4.4, "Let").
func generalize(t types.Type, env Env) *types.Scheme {
	free := types.FreeVars(t)
	envFree := env.FreeVars()
	var vars []int
	for id := range free {
		if !envFree[id] {
			vars = append(vars, id)
		}
	}
	sort.Ints(vars)
	return &types.Scheme{Vars: vars, Type: t}
}
