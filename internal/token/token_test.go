package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdentifier(t *testing.T) {
	assert.Equal(t, LET, LookupIdentifier("let"))
	assert.Equal(t, FN, LookupIdentifier("fn"))
	assert.Equal(t, CATCH, LookupIdentifier("catch"))
	assert.Equal(t, IDENT, LookupIdentifier("x"))
	assert.Equal(t, TAG, LookupIdentifier("Circle"))
}

func TestPositionAdvance(t *testing.T) {
	p := Position{Line: 2, Column: 3, Offset: 10}
	p2 := p.Advance(4)
	assert.Equal(t, Position{Line: 2, Column: 7, Offset: 14}, p2)
}

func TestMergeSpans(t *testing.T) {
	a := Span{Start: Position{Offset: 0}, End: Position{Offset: 5}}
	b := Span{Start: Position{Offset: 3}, End: Position{Offset: 8}}
	m := Merge(a, b)
	assert.Equal(t, 0, m.Start.Offset)
	assert.Equal(t, 8, m.End.Offset)
}
