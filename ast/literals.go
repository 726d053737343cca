package ast

import (
	"fmt"

	"github.com/leverr-lang/leverr/internal/token"
)

// Int is an integer literal.
type Int struct {
	base
	Value int64
}

func NewInt(span token.Span, value int64) *Int { return &Int{base{span}, value} }

func (x *Int) exprNode()      {}
func (x *Int) String() string { return fmt.Sprintf("%d", x.Value) }

// Float is a floating point literal.
type Float struct {
	base
	Value float64
}

func NewFloat(span token.Span, value float64) *Float { return &Float{base{span}, value} }

func (x *Float) exprNode()      {}
func (x *Float) String() string { return fmt.Sprintf("%g", x.Value) }

// String is a string literal. Value holds the text with surrounding quotes
// already stripped.
type String struct {
	base
	Value string
}

func NewString(span token.Span, value string) *String { return &String{base{span}, value} }

func (x *String) exprNode()      {}
func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }

// Bool is a boolean literal.
type Bool struct {
	base
	Value bool
}

func NewBool(span token.Span, value bool) *Bool { return &Bool{base{span}, value} }

func (x *Bool) exprNode() {}
func (x *Bool) String() string {
	if x.Value {
		return "true"
	}
	return "false"
}

// Unit is the "()" literal.
type Unit struct {
	base
}

func NewUnit(span token.Span) *Unit { return &Unit{base{span}} }

func (x *Unit) exprNode()      {}
func (x *Unit) String() string { return "()" }
