package parser

import (
	"strconv"

	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/internal/token"
)

// parsePattern parses one match-case pattern (language spec §3, "Pattern
// tree"). Patterns have no operators of their own, so this is a plain
// recursive-descent dispatch on the current token, not a Pratt loop.
func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(tok.Span, "invalid integer literal %q", tok.Literal)
		}
		return ast.NewIntPattern(tok.Span, v), nil

	case token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf(tok.Span, "invalid float literal %q", tok.Literal)
		}
		return ast.NewFloatPattern(tok.Span, v), nil

	case token.STRING:
		p.advance()
		v := tok.Literal
		if len(v) >= 2 {
			v = v[1 : len(v)-1]
		}
		return ast.NewStringPattern(tok.Span, v), nil

	case token.TRUE:
		p.advance()
		return ast.NewBoolPattern(tok.Span, true), nil

	case token.FALSE:
		p.advance()
		return ast.NewBoolPattern(tok.Span, false), nil

	case token.WILDCARD:
		p.advance()
		return ast.NewWildcardPattern(tok.Span), nil

	case token.IDENT:
		p.advance()
		return ast.NewIdentPattern(tok.Span, tok.Literal), nil

	case token.TAG:
		return p.parseTagPattern()

	case token.LPAREN:
		return p.parseTuplePattern()

	case token.LBRACE:
		return p.parseRecordPattern()
	}
	return nil, p.unexpected(tok)
}

func (p *Parser) parseTagPattern() (ast.Pattern, error) {
	tok := p.advance()
	if p.cur().Type != token.LPAREN {
		return ast.NewTagPattern(tok.Span, tok.Literal, nil), nil
	}
	p.advance() // '('
	var args []ast.Pattern
	if p.cur().Type != token.RPAREN {
		for {
			sub, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			args = append(args, sub)
			if p.cur().Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewTagPattern(token.Merge(tok.Span, end.Span), tok.Literal, args), nil
}

// parseTuplePattern parses "(p1, p2, ...)"; a single pattern with no comma
// is just a parenthesized sub-pattern, returned unwrapped.
func (p *Parser) parseTuplePattern() (ast.Pattern, error) {
	start := p.advance().Span // '('
	first, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.COMMA {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}
	elements := []ast.Pattern{first}
	for p.cur().Type == token.COMMA {
		p.advance()
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		elements = append(elements, sub)
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewTuplePattern(token.Merge(start, end.Span), elements), nil
}

func (p *Parser) parseRecordPattern() (ast.Pattern, error) {
	start := p.advance().Span // '{'
	var fields []ast.RecordFieldPattern
	for p.cur().Type != token.RBRACE {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordFieldPattern{Name: nameTok.Literal, Pattern: sub})
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return ast.NewRecordPattern(token.Merge(start, end.Span), fields), nil
}
