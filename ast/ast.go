// Package ast defines the expression tree and pattern tree produced by the
// parser. Leverr is expression-oriented: there is no separate statement
// hierarchy, only a single Expr tree rooted at the program's top-level
// expression.
package ast

import "github.com/leverr-lang/leverr/internal/token"

// Node is implemented by every expression and pattern node. All nodes carry
// the span of source they were parsed from.
type Node interface {
	Span() token.Span
	String() string
}

// Expr is an expression node: every case from §3 of the language spec.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a pattern node, used only inside match cases.
type Pattern interface {
	Node
	patternNode()
}

// base embeds a span and furnishes the Span() accessor for every node.
type base struct {
	span token.Span
}

func (b base) Span() token.Span { return b.span }
