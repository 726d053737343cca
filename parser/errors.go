package parser

import (
	"github.com/leverr-lang/leverr/errors"
	"github.com/leverr-lang/leverr/internal/token"
)

func (p *Parser) errorf(span token.Span, format string, args ...any) error {
	return errors.New(errors.Parse, span, format, args...)
}

func (p *Parser) unexpected(tok token.Token) error {
	return p.errorf(tok.Span, "unexpected token %s", tok.Type)
}
