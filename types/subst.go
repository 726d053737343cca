package types

// Subst is a finite map from type variable id to the type it has been
// bound to. It is built up incrementally during unification.
type Subst map[int]Type

// Empty returns a fresh, empty substitution.
func Empty() Subst { return Subst{} }

// Apply rewrites t by replacing every type variable with its substituted
// form, applied transitively until stable. All other shapes are rewritten
// recursively. Termination is guaranteed by the occurs check forbidding
// cycles in s (see language spec §3 invariants).
func (s Subst) Apply(t Type) Type {
	switch t := t.(type) {
	case *Con:
		return t
	case *Var:
		if bound, ok := s[t.ID]; ok {
			return s.Apply(bound)
		}
		return t
	case *Func:
		return &Func{Param: s.Apply(t.Param), Return: s.Apply(t.Return)}
	case *List:
		return &List{Elem: s.Apply(t.Elem)}
	case *Tuple:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = s.Apply(e)
		}
		return &Tuple{Elements: elems}
	case *Record:
		fields := make(map[string]Type, len(t.Fields))
		for name, ft := range t.Fields {
			fields[name] = s.Apply(ft)
		}
		var row *Var
		if t.Row != nil {
			if applied, ok := s.Apply(t.Row).(*Var); ok {
				row = applied
			} else {
				// the row variable itself got unified away; fold its
				// fields into this record and drop the row.
				if rec, ok := s.Apply(t.Row).(*Record); ok {
					for name, ft := range rec.Fields {
						if _, exists := fields[name]; !exists {
							fields[name] = ft
						}
					}
				}
			}
		}
		return &Record{Fields: fields, Row: row}
	case *Result:
		return &Result{Ok: s.Apply(t.Ok)}
	case *Tag:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return &Tag{Name: t.Name, Args: args}
	default:
		return t
	}
}

// ApplyScheme applies s to a scheme's body without touching its quantified
// variables (it assumes s never binds a quantified variable id, which
// generalize/instantiate preserve by construction).
func (s Subst) ApplyScheme(sc *Scheme) *Scheme {
	return &Scheme{Vars: sc.Vars, Type: s.Apply(sc.Type)}
}

// Compose returns a substitution equivalent to applying s1 and then s2
// (s2 is applied to s1's bindings, and s2's own bindings are added).
func Compose(s2, s1 Subst) Subst {
	out := Subst{}
	for id, t := range s1 {
		out[id] = s2.Apply(t)
	}
	for id, t := range s2 {
		if _, exists := out[id]; !exists {
			out[id] = t
		}
	}
	return out
}

// FreeVars returns the set of free type variable ids mentioned in t.
func FreeVars(t Type) map[int]bool {
	out := map[int]bool{}
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[int]bool) {
	switch t := t.(type) {
	case *Con:
	case *Var:
		out[t.ID] = true
	case *Func:
		collectFreeVars(t.Param, out)
		collectFreeVars(t.Return, out)
	case *List:
		collectFreeVars(t.Elem, out)
	case *Tuple:
		for _, e := range t.Elements {
			collectFreeVars(e, out)
		}
	case *Record:
		for _, ft := range t.Fields {
			collectFreeVars(ft, out)
		}
		if t.Row != nil {
			out[t.Row.ID] = true
		}
	case *Result:
		collectFreeVars(t.Ok, out)
	case *Tag:
		for _, a := range t.Args {
			collectFreeVars(a, out)
		}
	}
}

// FreeVarsScheme returns the free variables of a scheme: the free variables
// of its type, minus the ones it quantifies over.
func FreeVarsScheme(sc *Scheme) map[int]bool {
	free := FreeVars(sc.Type)
	for _, v := range sc.Vars {
		delete(free, v)
	}
	return free
}

// FreeVarsEnv returns the union of the free variables of every scheme in an
// environment (identifier name -> scheme).
func FreeVarsEnv(env map[string]*Scheme) map[int]bool {
	out := map[int]bool{}
	for _, sc := range env {
		for v := range FreeVarsScheme(sc) {
			out[v] = true
		}
	}
	return out
}
