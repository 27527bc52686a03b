package parser

import (
	"github.com/Peperzastey/UnitsLang/pkg/lexer"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

// parseType reads "[bool]", "[str]", "[1]" or a bracketed unit expression.
func (p *Parser) parseType() (runtime.Type, error) {
	if _, err := p.expect(lexer.OPEN_BRACKET, "type"); err != nil {
		return runtime.Type{}, err
	}
	var t runtime.Type
	switch p.cur().Kind {
	case lexer.BOOL:
		p.advance()
		t = runtime.BoolType()
	case lexer.STR:
		p.advance()
		t = runtime.StringType()
	default:
		unit, err := p.parseUnitExpression()
		if err != nil {
			return runtime.Type{}, err
		}
		t = runtime.NumberType(unit)
	}
	if _, err := p.expect(lexer.CLOSE_BRACKET, "']'"); err != nil {
		return runtime.Type{}, err
	}
	return t, nil
}

func (p *Parser) parseUnitExpression() (runtime.Unit, error) {
	left, err := p.parseUnitElement()
	if err != nil {
		return runtime.Unit{}, err
	}
	for p.at(lexer.STAR) || p.at(lexer.SLASH) {
		op := p.advance()
		right, err := p.parseUnitElement()
		if err != nil {
			return runtime.Unit{}, err
		}
		left, err = left.Combine(op.Literal, right)
		if err != nil {
			return runtime.Unit{}, p.wrap(op.Pos, err)
		}
	}
	return left, nil
}

func (p *Parser) parseUnitElement() (runtime.Unit, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IDENT:
		p.advance()
		unit, err := runtime.ParseUnitSymbol(tok.Literal)
		if err != nil {
			return runtime.Unit{}, p.wrap(tok.Pos, err)
		}
		return unit, nil
	case lexer.NUMBER:
		if tok.Literal != "1" {
			return runtime.Unit{}, p.errorf("only 1 may appear as a number in a unit, found %s", tok.Literal)
		}
		p.advance()
		return runtime.Scalar(), nil
	case lexer.OPEN_PAREN:
		p.advance()
		unit, err := p.parseUnitExpression()
		if err != nil {
			return runtime.Unit{}, err
		}
		if _, err := p.expect(lexer.CLOSE_PAREN, "')'"); err != nil {
			return runtime.Unit{}, err
		}
		return unit, nil
	default:
		return runtime.Unit{}, p.errorf("expected unit, found %s", tok)
	}
}
