package infer

import (
	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/types"
)

// inferPattern returns the pattern's type, the bindings it introduces (each
// a monomorphic scheme, language spec §4.4), and the substitution produced
// while typing its sub-patterns.
func (inf *Inferencer) inferPattern(pat ast.Pattern, s types.Subst) (types.Type, map[string]types.Type, types.Subst, error) {
	switch p := pat.(type) {
	case *ast.LitPattern:
		return inf.litPatternType(p), nil, s, nil

	case *ast.WildcardPattern:
		return inf.fresh(), nil, s, nil

	case *ast.IdentPattern:
		v := inf.fresh()
		return v, map[string]types.Type{p.Name: v}, s, nil

	case *ast.TuplePattern:
		elems := make([]types.Type, len(p.Elements))
		bindings := map[string]types.Type{}
		cur := s
		for i, sub := range p.Elements {
			t, b, s2, err := inf.inferPattern(sub, cur)
			if err != nil {
				return nil, nil, nil, err
			}
			elems[i] = t
			for k, v := range b {
				bindings[k] = v
			}
			cur = s2
		}
		return &types.Tuple{Elements: elems}, bindings, cur, nil

	case *ast.RecordPattern:
		fields := map[string]types.Type{}
		bindings := map[string]types.Type{}
		cur := s
		for _, f := range p.Fields {
			t, b, s2, err := inf.inferPattern(f.Pattern, cur)
			if err != nil {
				return nil, nil, nil, err
			}
			fields[f.Name] = t
			for k, v := range b {
				bindings[k] = v
			}
			cur = s2
		}
		return &types.Record{Fields: fields}, bindings, cur, nil

	case *ast.TagPattern:
		return inf.inferTagPattern(p, s)
	}
	return nil, nil, nil, diagAt(pat.Span(), "unsupported pattern")
}

func (inf *Inferencer) litPatternType(p *ast.LitPattern) types.Type {
	switch p.Kind {
	case ast.LitInt:
		return types.Int
	case ast.LitFloat:
		return types.FloatT
	case ast.LitString:
		return types.Str
	case ast.LitBool:
		return types.Bool
	}
	return inf.fresh()
}

// inferTagPattern special-cases Ok/Err exactly as Tag expressions are
// special-cased during inference (language spec §4.4, "Pattern inference").
func (inf *Inferencer) inferTagPattern(p *ast.TagPattern, s types.Subst) (types.Type, map[string]types.Type, types.Subst, error) {
	bindings := map[string]types.Type{}
	cur := s

	switch p.Name {
	case "Ok":
		if len(p.Args) == 1 {
			t, b, s2, err := inf.inferPattern(p.Args[0], cur)
			if err != nil {
				return nil, nil, nil, err
			}
			for k, v := range b {
				bindings[k] = v
			}
			return &types.Result{Ok: t}, bindings, s2, nil
		}
		return &types.Result{Ok: inf.fresh()}, bindings, cur, nil
	case "Err":
		alpha := inf.fresh()
		if len(p.Args) == 1 {
			t, b, s2, err := inf.inferPattern(p.Args[0], cur)
			if err != nil {
				return nil, nil, nil, err
			}
			for k, v := range b {
				bindings[k] = v
			}
			s3, err := inf.unify(t, types.Str, s2, p.Args[0].Span(), "Err carries a String message")
			if err != nil {
				return nil, nil, nil, err
			}
			return &types.Result{Ok: alpha}, bindings, s3, nil
		}
		return &types.Result{Ok: alpha}, bindings, cur, nil
	}

	args := make([]types.Type, len(p.Args))
	for i, sub := range p.Args {
		t, b, s2, err := inf.inferPattern(sub, cur)
		if err != nil {
			return nil, nil, nil, err
		}
		args[i] = t
		for k, v := range b {
			bindings[k] = v
		}
		cur = s2
	}
	return &types.Tag{Name: p.Name, Args: args}, bindings, cur, nil
}
