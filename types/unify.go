package types

import "fmt"

// UnifyError reports a structural mismatch, an infinite type (occurs check
// failure), or any other unification failure. Callers that have a source
// span attach it separately (see the unify method in package infer); this type deliberately
// carries none, since unification has no notion of source position.
type UnifyError struct {
	Message string
}

func (e *UnifyError) Error() string { return e.Message }

func fail(format string, args ...any) error {
	return &UnifyError{Message: fmt.Sprintf(format, args...)}
}

// Occurs reports whether v appears anywhere in t once s has been applied.
// A positive result must abort a prospective binding of v (language spec
// §4.3, "Occurs check").
func Occurs(s Subst, v *Var, t Type) bool {
	t = s.Apply(t)
	if same, ok := t.(*Var); ok {
		return same.ID == v.ID
	}
	return FreeVars(t)[v.ID]
}

// Unify computes an extended substitution s' such that s'(t1) and s'(t2)
// are structurally identical, or returns an error. See language spec §4.3.
func Unify(t1, t2 Type, s Subst) (Subst, error) {
	t1 = s.Apply(t1)
	t2 = s.Apply(t2)

	if v1, ok := t1.(*Var); ok {
		if v2, ok := t2.(*Var); ok && v1.ID == v2.ID {
			return s, nil
		}
		if Occurs(s, v1, t2) {
			return nil, fail("infinite type: %s occurs in %s", v1, t2)
		}
		return Compose(Subst{v1.ID: t2}, s), nil
	}
	if v2, ok := t2.(*Var); ok {
		if Occurs(s, v2, t1) {
			return nil, fail("infinite type: %s occurs in %s", v2, t1)
		}
		return Compose(Subst{v2.ID: t1}, s), nil
	}

	switch a := t1.(type) {
	case *Con:
		b, ok := t2.(*Con)
		if !ok || a.Name != b.Name {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		return s, nil

	case *Func:
		b, ok := t2.(*Func)
		if !ok {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		s1, err := Unify(a.Param, b.Param, s)
		if err != nil {
			return nil, err
		}
		return Unify(a.Return, b.Return, s1)

	case *List:
		b, ok := t2.(*List)
		if !ok {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		return Unify(a.Elem, b.Elem, s)

	case *Tuple:
		b, ok := t2.(*Tuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		cur := s
		for i := range a.Elements {
			var err error
			cur, err = Unify(a.Elements[i], b.Elements[i], cur)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *Result:
		b, ok := t2.(*Result)
		if !ok {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		return Unify(a.Ok, b.Ok, s)

	case *Record:
		b, ok := t2.(*Record)
		if !ok {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		return unifyRecords(a, b, s)

	case *Tag:
		b, ok := t2.(*Tag)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, fail("cannot unify %s with %s", t1, t2)
		}
		cur := s
		for i := range a.Args {
			var err error
			cur, err = Unify(a.Args[i], b.Args[i], cur)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil
	}

	return nil, fail("cannot unify %s with %s", t1, t2)
}

// unifyRecords unifies structurally on the intersection of field names.
// Field-name mismatches across two concrete (closed) records are not an
// error, as long as the fields named on both sides unify; this is the
// deliberate row-unification looseness documented in language spec §4.3
// and §9 ("Row-open records").
func unifyRecords(a, b *Record, s Subst) (Subst, error) {
	cur := s
	for name, at := range a.Fields {
		if bt, ok := b.Fields[name]; ok {
			var err error
			cur, err = Unify(at, bt, cur)
			if err != nil {
				return nil, err
			}
		}
	}

	// An open row on either side absorbs the other side's extra fields,
	// which is what lets field access work on a record of unknown shape.
	switch {
	case a.Row != nil && b.Row != nil:
		merged := mergeFields(a.Fields, b.Fields)
		return Unify(a.Row, &Record{Fields: merged, Row: b.Row}, cur)
	case a.Row != nil:
		return Unify(a.Row, &Record{Fields: mergeFields(a.Fields, b.Fields)}, cur)
	case b.Row != nil:
		return Unify(b.Row, &Record{Fields: mergeFields(a.Fields, b.Fields)}, cur)
	}
	return cur, nil
}

func mergeFields(a, b map[string]Type) map[string]Type {
	out := make(map[string]Type, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}
