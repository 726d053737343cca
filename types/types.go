// Package types defines the Hindley-Milner type representation used by the
// inferencer: type constructors, type variables, function/list/tuple/
// record/result/tag shapes, type schemes, and substitutions.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is implemented by every type shape.
type Type interface {
	String() string
	typeNode()
}

// Con is a nullary type constructor: Int, Float, Bool, String, Unit.
type Con struct {
	Name string
}

func (t *Con) typeNode()      {}
func (t *Con) String() string { return t.Name }

var (
	Int    = &Con{Name: "Int"}
	FloatT = &Con{Name: "Float"}
	Bool   = &Con{Name: "Bool"}
	Str    = &Con{Name: "String"}
	Unit   = &Con{Name: "Unit"}
)

// Var is a type variable, identified by a globally unique (within one
// inference run) integer id.
type Var struct {
	ID int
}

func (t *Var) typeNode() {}
func (t *Var) String() string {
	return "t" + varName(t.ID)
}

// varName renders a variable id as a short letter-based glyph (a, b, ...,
// z, a1, b1, ...) so printed types stay readable. Spec §9 flags the
// reference implementation's modulo-26 glyph scheme as collision-prone
// past 26 variables; this scheme instead appends a generation suffix so
// distinct ids never collide.
func varName(id int) string {
	letter := string(rune('a' + id%26))
	gen := id / 26
	if gen == 0 {
		return letter
	}
	return fmt.Sprintf("%s%d", letter, gen)
}

// Func is a function type: Param -> Return.
type Func struct {
	Param  Type
	Return Type
}

func (t *Func) typeNode() {}
func (t *Func) String() string {
	paramStr := t.Param.String()
	if _, ok := t.Param.(*Func); ok {
		paramStr = "(" + paramStr + ")"
	}
	return paramStr + " -> " + t.Return.String()
}

// List is List(Elem).
type List struct {
	Elem Type
}

func (t *List) typeNode()      {}
func (t *List) String() string { return "List(" + t.Elem.String() + ")" }

// Tuple is an ordered product of element types.
type Tuple struct {
	Elements []Type
}

func (t *Tuple) typeNode() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Record is a mapping from field name to type. Row is non-nil for an open
// record (one whose full shape is not yet known); nil for a closed record.
type Record struct {
	Fields map[string]Type
	Row    *Var
}

func (t *Record) typeNode() {}
func (t *Record) String() string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + t.Fields[name].String()
	}
	body := strings.Join(parts, ", ")
	if t.Row != nil {
		if body != "" {
			body += ", "
		}
		body += "..." + t.Row.String()
	}
	return "{ " + body + " }"
}

// Result is the carrier of the "ok" type; the error side is implicitly a
// String (see language spec §3, "Non-goals: typed error payloads").
type Result struct {
	Ok Type
}

func (t *Result) typeNode()      {}
func (t *Result) String() string { return "Result(" + t.Ok.String() + ")" }

// Tag is an open, structural sum constructor: a name plus argument types.
type Tag struct {
	Name string
	Args []Type
}

func (t *Tag) typeNode() {}
func (t *Tag) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Scheme is a polymorphic type: a set of quantified variable ids, plus a
// type that may mention them.
type Scheme struct {
	Vars []int
	Type Type
}

// Mono wraps a type with no quantified variables (a monomorphic scheme).
func Mono(t Type) *Scheme {
	return &Scheme{Type: t}
}
