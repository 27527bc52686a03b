package parser

import (
	"strconv"
	"strings"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/lexer"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

// Binary operator precedence levels, loosest first.
var precedence = [][]lexer.TokenKind{
	{lexer.OR},
	{lexer.AND},
	{lexer.DOUBLE_EQUAL, lexer.NOT_EQUAL},
	{lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL},
	{lexer.PLUS, lexer.MINUS},
	{lexer.STAR, lexer.SLASH},
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(precedence) {
		return p.parseElement()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.atAny(precedence[level]) {
		op := p.advance()
		p.skipNewlines()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(op.Literal, left, right)
	}
	return left, nil
}

func (p *Parser) parseElement() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.NUMBER:
		return p.parseNumber(false)
	case lexer.MINUS:
		if p.peek(1).Kind == lexer.NUMBER {
			p.advance()
			return p.parseNumber(true)
		}
		return nil, p.errorf("unexpected %s", tok)
	case lexer.IDENT:
		if p.peek(1).Kind == lexer.OPEN_PAREN {
			return p.parseCall()
		}
		p.advance()
		return ast.NewIdentifier(tok.Literal), nil
	case lexer.OPEN_PAREN:
		p.advance()
		p.skipNewlines()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if _, err := p.expect(lexer.CLOSE_PAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return ast.NewBooleanLiteral(tok.Kind == lexer.TRUE), nil
	case lexer.STRING:
		p.advance()
		return stringExpression(tok.Parts), nil
	default:
		return nil, p.errorf("expected expression, found %s", tok)
	}
}

func (p *Parser) parseNumber(negative bool) (ast.Expression, error) {
	tok := p.advance()
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.wrap(tok.Pos, err)
	}
	if negative {
		value = -value
	}
	unit := runtime.Scalar()
	if p.at(lexer.OPEN_BRACKET) {
		p.advance()
		unit, err = p.parseUnitExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CLOSE_BRACKET, "']'"); err != nil {
			return nil, err
		}
	}
	return ast.NewNumberLiteral(value, unit), nil
}

func (p *Parser) parseCall() (*ast.FunctionCall, error) {
	name := p.advance()
	p.advance()
	var args []ast.Expression
	p.skipNewlines()
	for !p.at(lexer.CLOSE_PAREN) {
		if len(args) > 0 {
			if _, err := p.expect(lexer.COMMA, "',' or ')'"); err != nil {
				return nil, err
			}
			p.skipNewlines()
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
	}
	p.advance()
	return ast.NewFunctionCall(name.Literal, args), nil
}

func stringExpression(parts []lexer.StringPart) ast.Expression {
	interpolated := false
	for _, part := range parts {
		if part.Variable {
			interpolated = true
			break
		}
	}
	if !interpolated {
		var sb strings.Builder
		for _, part := range parts {
			sb.WriteString(part.Text)
		}
		return ast.NewStringLiteral(sb.String())
	}
	exprs := make([]ast.Expression, len(parts))
	for i, part := range parts {
		if part.Variable {
			exprs[i] = ast.NewIdentifier(part.Text)
		} else {
			exprs[i] = ast.NewStringLiteral(part.Text)
		}
	}
	return ast.NewStringInterpolation(exprs)
}

func (p *Parser) atAny(kinds []lexer.TokenKind) bool {
	for _, kind := range kinds {
		if p.at(kind) {
			return true
		}
	}
	return false
}
