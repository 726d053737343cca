// Package errors defines the diagnostic types raised by the language core:
// lexical errors (from the lexer), parse errors (from the parser), type
// errors (from the inferencer), and runtime errors (from the evaluator).
// Every Diagnostic carries an optional source span and knows how to render
// itself as the three-line block described in the language spec's
// "Diagnostics" section.
package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/leverr-lang/leverr/internal/token"
)

// Kind identifies which stage of the pipeline raised a Diagnostic.
type Kind string

const (
	Lexical Kind = "lexical error"
	Parse   Kind = "parse error"
	Type    Kind = "type error"
	Runtime Kind = "runtime error"
)

// Diagnostic is the error type shared by every stage of the pipeline. Span
// is nil when the error has no associated source position: the language
// spec permits this for type errors reached without source text ("when the
// inferencer is invoked with source text, these are rendered with a
// source-span block; otherwise they are plain messages").
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    *token.Span
}

// New builds a Diagnostic anchored to a source span.
func New(kind Kind, span token.Span, format string, args ...any) *Diagnostic {
	s := span
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: &s}
}

// NewWithoutSpan builds a Diagnostic with no source position.
func NewWithoutSpan(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) Error() string {
	if d.Span == nil {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Kind, d.Message, d.Span.Start)
}

// Render produces the three-line diagnostic block: a header naming the
// line and column, the indented source line the span starts on, and a
// caret underline indented to the start column with one caret per column
// the span covers (minimum one).
func (d *Diagnostic) Render(source string) string {
	if d.Span == nil {
		return fmt.Sprintf("Error: %s", d.Message)
	}
	start := d.Span.Start
	var b strings.Builder
	fmt.Fprintf(&b, "Error at line %d, col %d:\n", start.Line, start.Column)
	b.WriteString("  ")
	b.WriteString(sourceLine(source, start.Line))
	b.WriteString("\n")

	width := 1
	if d.Span.End.Line == start.Line && d.Span.End.Column-start.Column > 1 {
		width = d.Span.End.Column - start.Column
	}
	b.WriteString("  ")
	b.WriteString(strings.Repeat(" ", start.Column-1))
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}

// sourceLine returns the 1-based line of source text, without its
// trailing newline, or "" if the line is out of range.
func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// List aggregates multiple Diagnostics into one error, so callers can
// still inspect the individual failures via the standard
// multierror.Error.Errors field. The lexer and parser stop at their first
// error and do not call it.
func List(diags []*Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, d := range diags {
		merr = multierror.Append(merr, d)
	}
	merr.ErrorFormat = func(errs []error) string {
		if len(errs) == 1 {
			return errs[0].Error()
		}
		return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
	}
	return merr
}
