package ast

import (
	"strconv"
	"strings"

	"github.com/leverr-lang/leverr/internal/token"
)

// LitKind identifies which literal a LitPattern matches.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
)

// LitPattern matches an integer, float, string, or boolean literal.
type LitPattern struct {
	base
	Kind  LitKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func (p *LitPattern) patternNode() {}
func (p *LitPattern) String() string {
	switch p.Kind {
	case LitInt:
		return strconv.FormatInt(p.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(p.Float, 'g', -1, 64)
	case LitString:
		return strconv.Quote(p.Str)
	case LitBool:
		return strconv.FormatBool(p.Bool)
	}
	return "<lit>"
}

// WildcardPattern ("_") matches anything and binds nothing.
type WildcardPattern struct {
	base
}

func (p *WildcardPattern) patternNode()      {}
func (p *WildcardPattern) String() string { return "_" }

// IdentPattern binds the whole subject to a name; always succeeds.
type IdentPattern struct {
	base
	Name string
}

func (p *IdentPattern) patternNode()      {}
func (p *IdentPattern) String() string { return p.Name }

// TagPattern matches a tag value with the given constructor name and
// recurses into each argument sub-pattern.
type TagPattern struct {
	base
	Name string
	Args []Pattern
}

func (p *TagPattern) patternNode() {}
func (p *TagPattern) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return p.Name + "(" + strings.Join(parts, ", ") + ")"
}

// TuplePattern matches a tuple of the same length, recursing elementwise.
type TuplePattern struct {
	base
	Elements []Pattern
}

func (p *TuplePattern) patternNode() {}
func (p *TuplePattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordFieldPattern is one (field name, sub-pattern) pair.
type RecordFieldPattern struct {
	Name    string
	Pattern Pattern
}

// RecordPattern matches a record that has at least every named field; extra
// fields on the value are ignored.
type RecordPattern struct {
	base
	Fields []RecordFieldPattern
}

func (p *RecordPattern) patternNode() {}
func (p *RecordPattern) String() string {
	parts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		parts[i] = f.Name + ": " + f.Pattern.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// NewWildcardPattern, NewIdentPattern etc. are small constructors used by
// the parser to keep call sites terse.
func NewWildcardPattern(span token.Span) *WildcardPattern { return &WildcardPattern{base{span}} }
func NewIdentPattern(span token.Span, name string) *IdentPattern {
	return &IdentPattern{base{span}, name}
}

func NewIntPattern(span token.Span, v int64) *LitPattern {
	return &LitPattern{base{span}, LitInt, v, 0, "", false}
}

func NewFloatPattern(span token.Span, v float64) *LitPattern {
	return &LitPattern{base{span}, LitFloat, 0, v, "", false}
}

func NewStringPattern(span token.Span, v string) *LitPattern {
	return &LitPattern{base{span}, LitString, 0, 0, v, false}
}

func NewBoolPattern(span token.Span, v bool) *LitPattern {
	return &LitPattern{base{span}, LitBool, 0, 0, "", v}
}

func NewTagPattern(span token.Span, name string, args []Pattern) *TagPattern {
	return &TagPattern{base{span}, name, args}
}

func NewTuplePattern(span token.Span, elements []Pattern) *TuplePattern {
	return &TuplePattern{base{span}, elements}
}

func NewRecordPattern(span token.Span, fields []RecordFieldPattern) *RecordPattern {
	return &RecordPattern{base{span}, fields}
}
