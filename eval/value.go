// Package eval implements the tree-walking evaluator of language spec §4.5:
// runtime values, persistent environments, closures, pattern matching, and
// the early-return control transfer that realizes the unwrap operator.
package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leverr-lang/leverr/ast"
)

// Value is implemented by every runtime value shape of language spec §3.
type Value interface {
	String() string
	valueNode()
}

// Int is a runtime integer.
type Int int64

func (v Int) valueNode()      {}
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

// Float is a runtime floating-point number.
type Float float64

func (v Float) valueNode()      {}
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// String is a runtime string.
type String string

func (v String) valueNode()      {}
func (v String) String() string { return string(v) }

// Bool is a runtime boolean.
type Bool bool

func (v Bool) valueNode() {}
func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

// Unit is the sole value of the "()" type.
type Unit struct{}

func (v Unit) valueNode()      {}
func (v Unit) String() string { return "()" }

// List is an ordered, logically-immutable sequence of values.
type List struct {
	Elements []Value
}

func (v *List) valueNode() {}
func (v *List) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is an ordered, fixed-length product of values.
type Tuple struct {
	Elements []Value
}

func (v *Tuple) valueNode() {}
func (v *Tuple) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordField is one (name, value) pair of a Record, in insertion order.
type RecordField struct {
	Name  string
	Value Value
}

// Record maps field names to values, preserving insertion order for
// rendering (language spec §3).
type Record struct {
	Fields []RecordField
}

func (v *Record) valueNode() {}
func (v *Record) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Get returns the named field's value, or (nil, false) if absent.
func (v *Record) Get(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Tag is a structural sum value: an uppercase constructor name plus zero or
// more argument values (language spec §3). Ok/Err tags carry Result values.
type Tag struct {
	Name string
	Args []Value
}

func (v *Tag) valueNode() {}
func (v *Tag) String() string {
	if len(v.Args) == 0 {
		return v.Name
	}
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.String()
	}
	return v.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Ok builds the "Ok" tag carrying a single payload value.
func Ok(payload Value) *Tag { return &Tag{Name: "Ok", Args: []Value{payload}} }

// Err builds the "Err" tag carrying a text message (language spec §1: "the
// error carrier is always a text string in this version").
func Err(message string) *Tag { return &Tag{Name: "Err", Args: []Value{String(message)}} }

// ErrMessage extracts the text message from an Err tag; ok is false if t is
// not an Err tag or carries no argument.
func ErrMessage(t *Tag) (string, bool) {
	if t == nil || t.Name != "Err" || len(t.Args) != 1 {
		return "", false
	}
	s, ok := t.Args[0].(String)
	return string(s), ok
}

// Closure is a function value capturing a snapshot of its defining
// environment (language spec §3).
type Closure struct {
	Param string
	Body  ast.Expr
	Env   Environment
}

func (v *Closure) valueNode()      {}
func (v *Closure) String() string { return "<function>" }

// BuiltinFunc is the underlying Go callable behind a Builtin value; it
// receives every accumulated argument at once (language spec §4.6).
type BuiltinFunc func(args []Value) (Value, error)

// Builtin is a curried built-in value: a name, a declared arity, the
// arguments accumulated so far, and the underlying callable invoked once
// the accumulation reaches that arity (language spec §3, §4.6).
type Builtin struct {
	Name  string
	Arity int
	Args  []Value
	Fn    BuiltinFunc
}

func (v *Builtin) valueNode()      {}
func (v *Builtin) String() string { return fmt.Sprintf("<builtin %s>", v.Name) }
