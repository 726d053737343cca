package eval

import "github.com/leverr-lang/leverr/ast"

// matchPattern attempts to match pat against v bottom-up (language spec
// §4.5, "Pattern matching"). On success it returns the bindings introduced
// by identifier/record/tuple/tag sub-patterns; on failure ok is false and
// the returned map is nil.
func matchPattern(pat ast.Pattern, v Value) (map[string]Value, bool) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return map[string]Value{}, true

	case *ast.IdentPattern:
		return map[string]Value{p.Name: v}, true

	case *ast.LitPattern:
		return matchLitPattern(p, v)

	case *ast.TagPattern:
		tag, ok := v.(*Tag)
		if !ok || tag.Name != p.Name || len(tag.Args) != len(p.Args) {
			return nil, false
		}
		bindings := map[string]Value{}
		for i, sub := range p.Args {
			b, ok := matchPattern(sub, tag.Args[i])
			if !ok {
				return nil, false
			}
			for k, val := range b {
				bindings[k] = val
			}
		}
		return bindings, true

	case *ast.TuplePattern:
		t, ok := v.(*Tuple)
		if !ok || len(t.Elements) != len(p.Elements) {
			return nil, false
		}
		bindings := map[string]Value{}
		for i, sub := range p.Elements {
			b, ok := matchPattern(sub, t.Elements[i])
			if !ok {
				return nil, false
			}
			for k, val := range b {
				bindings[k] = val
			}
		}
		return bindings, true

	case *ast.RecordPattern:
		r, ok := v.(*Record)
		if !ok {
			return nil, false
		}
		bindings := map[string]Value{}
		for _, f := range p.Fields {
			fv, ok := r.Get(f.Name)
			if !ok {
				return nil, false
			}
			b, ok := matchPattern(f.Pattern, fv)
			if !ok {
				return nil, false
			}
			for k, val := range b {
				bindings[k] = val
			}
		}
		return bindings, true
	}
	return nil, false
}

func matchLitPattern(p *ast.LitPattern, v Value) (map[string]Value, bool) {
	switch p.Kind {
	case ast.LitInt:
		n, ok := v.(Int)
		return map[string]Value{}, ok && int64(n) == p.Int
	case ast.LitFloat:
		f, ok := v.(Float)
		return map[string]Value{}, ok && float64(f) == p.Float
	case ast.LitString:
		s, ok := v.(String)
		return map[string]Value{}, ok && string(s) == p.Str
	case ast.LitBool:
		b, ok := v.(Bool)
		return map[string]Value{}, ok && bool(b) == p.Bool
	}
	return nil, false
}
