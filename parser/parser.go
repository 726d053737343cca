// Package parser implements the Pratt-style precedence-climbing parser
// described in language spec §4.2: it turns a token stream into a single
// expression tree, desugaring multi-parameter lambdas, multi-argument
// calls, and tuple-vs-grouping parentheses as it goes.
package parser

import (
	"strconv"

	"github.com/leverr-lang/leverr/ast"
	"github.com/leverr-lang/leverr/errors"
	"github.com/leverr-lang/leverr/internal/lexer"
	"github.com/leverr-lang/leverr/internal/token"
)

// Parser consumes a fixed token slice and produces an expression tree.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes source and parses it into a single top-level expression,
// consuming every token up to and including the end-of-input sentinel.
func Parse(source string) (ast.Expr, error) {
	toks, err := lexer.New(source).Tokens()
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, errors.New(errors.Lexical, lexErr.Span, "%s", lexErr.Message)
		}
		return nil, err
	}
	p := New(toks)
	expr, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseProgram parses the whole token stream as one expression and
// requires it to be followed immediately by end-of-input.
func (p *Parser) ParseProgram() (ast.Expr, error) {
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.EOF {
		return nil, p.unexpected(p.cur())
	}
	return expr, nil
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt token.Type) (token.Token, error) {
	if p.cur().Type != tt {
		return token.Token{}, p.errorf(p.cur().Span, "expected %s but got %s", tt, p.cur().Type)
	}
	return p.advance(), nil
}

// parseExpr is the Pratt loop: parse a prefix form, then repeatedly fold in
// infix/postfix operators whose left binding power is at least minBP.
func (p *Parser) parseExpr(minBP int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tt := p.cur().Type

		if tt == token.QUESTION {
			if questionLeftBP < minBP {
				break
			}
			tok := p.advance()
			left = ast.NewUnwrap(token.Merge(left.Span(), tok.Span), left)
			continue
		}

		if tt == token.DOT {
			if dotLeftBP < minBP {
				break
			}
			p.advance()
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			left = ast.NewFieldAccess(token.Merge(left.Span(), nameTok.Span), left, nameTok.Literal)
			continue
		}

		bp, ok := infixBindingPowers[tt]
		if !ok || bp.left < minBP {
			break
		}
		p.advance()
		right, err := p.parseExpr(bp.right)
		if err != nil {
			return nil, err
		}
		span := token.Merge(left.Span(), right.Span())
		if tt == token.PIPE {
			left = ast.NewPipe(span, left, right)
		} else {
			left = ast.NewBinaryOp(span, string(tt), left, right)
		}
	}

	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.TRUE:
		p.advance()
		return ast.NewBool(tok.Span, true), nil
	case token.FALSE:
		p.advance()
		return ast.NewBool(tok.Span, false), nil
	case token.IDENT:
		return p.parseIdentOrCall()
	case token.TAG:
		return p.parseTag()
	case token.LET:
		return p.parseLet()
	case token.FN:
		return p.parseLambda()
	case token.MATCH:
		return p.parseMatch()
	case token.IF:
		return p.parseIf()
	case token.LBRACKET:
		return p.parseList()
	case token.LBRACE:
		return p.parseRecord()
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.CATCH:
		return p.parseRecoveryBinder()
	case token.MINUS, token.BANG:
		return p.parseUnary()
	}
	return nil, p.unexpected(tok)
}

func (p *Parser) parseIntLiteral() (ast.Expr, error) {
	tok := p.advance()
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.errorf(tok.Span, "invalid integer literal %q", tok.Literal)
	}
	return ast.NewInt(tok.Span, v), nil
}

func (p *Parser) parseFloatLiteral() (ast.Expr, error) {
	tok := p.advance()
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.errorf(tok.Span, "invalid float literal %q", tok.Literal)
	}
	return ast.NewFloat(tok.Span, v), nil
}

func (p *Parser) parseStringLiteral() (ast.Expr, error) {
	tok := p.advance()
	v := tok.Literal
	if len(v) >= 2 {
		v = v[1 : len(v)-1]
	}
	return ast.NewString(tok.Span, v), nil
}

// parseIdentOrCall parses a lowercase identifier, then folds in zero or
// more parenthesized argument lists, each desugared into a chain of
// single-argument Applies (language spec §4.2, "Desugarings").
func (p *Parser) parseIdentOrCall() (ast.Expr, error) {
	tok := p.advance()
	var expr ast.Expr = ast.NewIdent(tok.Span, tok.Literal)
	for p.cur().Type == token.LPAREN {
		args, endSpan, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			expr = ast.NewApply(token.Merge(expr.Span(), endSpan), expr, ast.NewUnit(endSpan))
			continue
		}
		for _, arg := range args {
			expr = ast.NewApply(token.Merge(expr.Span(), arg.Span()), expr, arg)
		}
	}
	return expr, nil
}

// parseArgList parses "(" expr ("," expr)* ")" (or an empty "()"),
// returning the arguments in source order and the span of the closing
// paren so callers can merge spans without re-reading tokens.
func (p *Parser) parseArgList() ([]ast.Expr, token.Span, error) {
	p.advance() // '('
	if p.cur().Type == token.RPAREN {
		end := p.advance().Span
		return nil, end, nil
	}
	var args []ast.Expr
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, token.Span{}, err
		}
		args = append(args, arg)
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	closeTok, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, token.Span{}, err
	}
	return args, closeTok.Span, nil
}

// parseTag parses an uppercase-leading constructor name, optionally
// followed by a single parenthesized, comma-separated argument list
// (language spec §4.2).
func (p *Parser) parseTag() (ast.Expr, error) {
	tok := p.advance()
	if p.cur().Type != token.LPAREN {
		return ast.NewTag(tok.Span, tok.Literal, nil), nil
	}
	args, endSpan, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return ast.NewTag(token.Merge(tok.Span, endSpan), tok.Literal, args), nil
}

// parseLet parses "let [rec] name = value in body".
func (p *Parser) parseLet() (ast.Expr, error) {
	start := p.advance().Span // 'let'
	recursive := false
	if p.cur().Type == token.REC {
		p.advance()
		recursive = true
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return ast.NewLet(token.Merge(start, body.Span()), nameTok.Literal, value, body, recursive), nil
}

// parseLambda parses "fn(p1, p2, ...) -> body" or the single-parameter
// bare form "fn p -> body", desugaring multiple parameters into
// right-associative nested single-parameter lambdas. The body is parsed at
// lambdaBodyMinBP so a trailing pipe binds outside the lambda (language
// spec §4.2, "Critical disambiguation").
func (p *Parser) parseLambda() (ast.Expr, error) {
	start := p.advance().Span // 'fn'
	var params []string
	bare := p.cur().Type == token.IDENT
	if bare {
		params = append(params, p.advance().Literal)
	} else if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	if !bare && p.cur().Type != token.RPAREN {
		for {
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, nameTok.Literal)
			if p.cur().Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	if !bare {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(lambdaBodyMinBP)
	if err != nil {
		return nil, err
	}
	span := token.Merge(start, body.Span())
	if len(params) == 0 {
		return ast.NewLambda(span, "_", body), nil
	}
	result := body
	for i := len(params) - 1; i >= 0; i-- {
		result = ast.NewLambda(span, params[i], result)
	}
	return result, nil
}

// parseMatch parses "match subject { pattern -> body, ... }".
func (p *Parser) parseMatch() (ast.Expr, error) {
	start := p.advance().Span // 'match'
	subject, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var cases []ast.MatchCase
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ARROW); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.MatchCase{Pattern: pat, Body: body})
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
	return ast.NewMatch(token.Merge(start, end.Span), subject, cases), nil
}

// parseIf parses "if cond then thenBranch else elseBranch".
func (p *Parser) parseIf() (ast.Expr, error) {
	start := p.advance().Span // 'if'
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return ast.NewIf(token.Merge(start, els.Span()), cond, then, els), nil
}

func (p *Parser) parseList() (ast.Expr, error) {
	start := p.advance().Span // '['
	if p.cur().Type == token.RBRACKET {
		end := p.advance().Span
		return ast.NewList(token.Merge(start, end), nil), nil
	}
	var elements []ast.Expr
	for {
		el, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return ast.NewList(token.Merge(start, end.Span), elements), nil
}

func (p *Parser) parseRecord() (ast.Expr, error) {
	start := p.advance().Span // '{'
	if p.cur().Type == token.RBRACE {
		end := p.advance().Span
		return ast.NewRecord(token.Merge(start, end), nil), nil
	}
	var fields []ast.RecordField
	for {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordField{Name: nameTok.Literal, Value: value})
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
	return ast.NewRecord(token.Merge(start, end.Span), fields), nil
}

// parseParenOrTuple parses "()" (unit), "(expr)" (grouping, returned
// unwrapped), or "(e1, e2, ...)" (a tuple — distinguished by a top-level
// comma, language spec §4.2).
func (p *Parser) parseParenOrTuple() (ast.Expr, error) {
	start := p.advance().Span // '('
	if p.cur().Type == token.RPAREN {
		end := p.advance().Span
		return ast.NewUnit(token.Merge(start, end)), nil
	}
	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.COMMA {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}
	elements := []ast.Expr{first}
	for p.cur().Type == token.COMMA {
		p.advance()
		el, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewTuple(token.Merge(start, end.Span), elements), nil
}

// parseRecoveryBinder parses a bare "catch e -> fallback"; its protected
// slot is left nil, to be filled by the pipe or the evaluator (language
// spec §4.4/§4.5, "Recovery binder").
func (p *Parser) parseRecoveryBinder() (ast.Expr, error) {
	start := p.advance().Span // 'catch'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	fallback, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return ast.NewRecoveryBinder(token.Merge(start, fallback.Span()), nil, nameTok.Literal, fallback), nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	opTok := p.advance()
	operand, err := p.parseExpr(unaryRightBP)
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryOp(token.Merge(opTok.Span, operand.Span()), string(opTok.Type), operand), nil
}
