package ast

import (
	"strings"

	"github.com/leverr-lang/leverr/internal/token"
)

// Ident is an identifier reference.
type Ident struct {
	base
	Name string
}

func NewIdent(span token.Span, name string) *Ident { return &Ident{base{span}, name} }

func (x *Ident) exprNode()      {}
func (x *Ident) String() string { return x.Name }

// Let is a let binding: "let [rec] name = value in body".
type Let struct {
	base
	Name      string
	Value     Expr
	Body      Expr
	Recursive bool
}

func (x *Let) exprNode() {}
func (x *Let) String() string {
	kw := "let"
	if x.Recursive {
		kw = "let rec"
	}
	return kw + " " + x.Name + " = " + x.Value.String() + " in " + x.Body.String()
}

// Lambda is a single-parameter function literal. Multi-parameter source
// syntax is desugared into nested Lambdas during parsing.
type Lambda struct {
	base
	Param string
	Body  Expr
}

func (x *Lambda) exprNode()      {}
func (x *Lambda) String() string { return "fn(" + x.Param + ") -> " + x.Body.String() }

// Apply is a single-argument function application. Multi-argument source
// syntax is desugared into left-associative nested Applies during parsing.
type Apply struct {
	base
	Func Expr
	Arg  Expr
}

func (x *Apply) exprNode()      {}
func (x *Apply) String() string { return x.Func.String() + "(" + x.Arg.String() + ")" }

// BinaryOp is an infix binary operator expression.
type BinaryOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (x *BinaryOp) exprNode() {}
func (x *BinaryOp) String() string {
	return "(" + x.Left.String() + " " + x.Op + " " + x.Right.String() + ")"
}

// UnaryOp is a prefix unary operator expression ("-" or "!").
type UnaryOp struct {
	base
	Op      string
	Operand Expr
}

func (x *UnaryOp) exprNode()      {}
func (x *UnaryOp) String() string { return "(" + x.Op + x.Operand.String() + ")" }

// Pipe is the "|>" operator. It is a distinct node from BinaryOp because its
// right-hand side receives special treatment when it is a bare recovery
// binder or a bare unwrap postfix (see Unwrap and RecoveryBinder).
type Pipe struct {
	base
	Left  Expr
	Right Expr
}

func (x *Pipe) exprNode()      {}
func (x *Pipe) String() string { return x.Left.String() + " |> " + x.Right.String() }

// Unwrap is the postfix "?" operator.
type Unwrap struct {
	base
	Inner Expr
}

func (x *Unwrap) exprNode()      {}
func (x *Unwrap) String() string { return x.Inner.String() + "?" }

// RecoveryBinder is "catch e -> fallback". Protected is nil when the binder
// appears bare at the right of a pipe; the evaluator and inferencer fill it
// in from the pipe's left-hand side at that point (see §4.4/§4.5 of the
// language spec and the DESIGN.md note on the protected slot).
type RecoveryBinder struct {
	base
	Protected Expr // nil when bare (pipe fills it in)
	ErrParam  string
	Fallback  Expr
}

func (x *RecoveryBinder) exprNode() {}
func (x *RecoveryBinder) String() string {
	prefix := ""
	if x.Protected != nil {
		prefix = x.Protected.String() + " |> "
	}
	return prefix + "catch " + x.ErrParam + " -> " + x.Fallback.String()
}

// MatchCase is one (pattern, body) arm of a Match.
type MatchCase struct {
	Pattern Pattern
	Body    Expr
}

// Match is a pattern-matching expression.
type Match struct {
	base
	Subject Expr
	Cases   []MatchCase
}

func (x *Match) exprNode() {}
func (x *Match) String() string {
	var b strings.Builder
	b.WriteString("match ")
	b.WriteString(x.Subject.String())
	b.WriteString(" { ")
	for i, c := range x.Cases {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Pattern.String())
		b.WriteString(" -> ")
		b.WriteString(c.Body.String())
	}
	b.WriteString(" }")
	return b.String()
}

// If is a conditional expression.
type If struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

func (x *If) exprNode() {}
func (x *If) String() string {
	return "if " + x.Cond.String() + " then " + x.Then.String() + " else " + x.Else.String()
}

// List is a list literal.
type List struct {
	base
	Elements []Expr
}

func (x *List) exprNode() {}
func (x *List) String() string {
	parts := make([]string, len(x.Elements))
	for i, e := range x.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is a tuple literal.
type Tuple struct {
	base
	Elements []Expr
}

func (x *Tuple) exprNode() {}
func (x *Tuple) String() string {
	parts := make([]string, len(x.Elements))
	for i, e := range x.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordField is one (name, value) pair of a Record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// Record is a record literal.
type Record struct {
	base
	Fields []RecordField
}

func (x *Record) exprNode() {}
func (x *Record) String() string {
	parts := make([]string, len(x.Fields))
	for i, f := range x.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// FieldAccess is "record.field".
type FieldAccess struct {
	base
	Record Expr
	Field  string
}

func (x *FieldAccess) exprNode()      {}
func (x *FieldAccess) String() string { return x.Record.String() + "." + x.Field }

// Tag is a tag constructor application, e.g. "None" or "Circle(r)".
type Tag struct {
	base
	Name string
	Args []Expr
}

func (x *Tag) exprNode() {}
func (x *Tag) String() string {
	if len(x.Args) == 0 {
		return x.Name
	}
	parts := make([]string, len(x.Args))
	for i, a := range x.Args {
		parts[i] = a.String()
	}
	return x.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Constructors for the non-literal expression nodes above. base is
// unexported so the parser (and any other external package) needs these to
// attach a real span to each node.

func NewLet(span token.Span, name string, value, body Expr, recursive bool) *Let {
	return &Let{base{span}, name, value, body, recursive}
}

func NewLambda(span token.Span, param string, body Expr) *Lambda {
	return &Lambda{base{span}, param, body}
}

func NewApply(span token.Span, fn, arg Expr) *Apply {
	return &Apply{base{span}, fn, arg}
}

func NewBinaryOp(span token.Span, op string, left, right Expr) *BinaryOp {
	return &BinaryOp{base{span}, op, left, right}
}

func NewUnaryOp(span token.Span, op string, operand Expr) *UnaryOp {
	return &UnaryOp{base{span}, op, operand}
}

func NewPipe(span token.Span, left, right Expr) *Pipe {
	return &Pipe{base{span}, left, right}
}

func NewUnwrap(span token.Span, inner Expr) *Unwrap {
	return &Unwrap{base{span}, inner}
}

func NewRecoveryBinder(span token.Span, protected Expr, errParam string, fallback Expr) *RecoveryBinder {
	return &RecoveryBinder{base{span}, protected, errParam, fallback}
}

func NewMatch(span token.Span, subject Expr, cases []MatchCase) *Match {
	return &Match{base{span}, subject, cases}
}

func NewIf(span token.Span, cond, then, els Expr) *If {
	return &If{base{span}, cond, then, els}
}

func NewList(span token.Span, elements []Expr) *List {
	return &List{base{span}, elements}
}

func NewTuple(span token.Span, elements []Expr) *Tuple {
	return &Tuple{base{span}, elements}
}

func NewRecord(span token.Span, fields []RecordField) *Record {
	return &Record{base{span}, fields}
}

func NewFieldAccess(span token.Span, record Expr, field string) *FieldAccess {
	return &FieldAccess{base{span}, record, field}
}

func NewTag(span token.Span, name string, args []Expr) *Tag {
	return &Tag{base{span}, name, args}
}
