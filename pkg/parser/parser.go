package parser

import (
	"errors"
	"fmt"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/lexer"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

type Parser struct {
	path   string
	tokens []lexer.Token
	pos    int
}

// ParseModule parses one source file into unlinked function definitions and
// top-level instructions.
func ParseModule(path, source string) (*ast.Module, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &Error{Path: path, Pos: lexErr.Pos, Message: lexErr.Message, Err: err}
		}
		return nil, err
	}
	p := &Parser{path: path, tokens: tokens}
	return p.parseModule()
}

// ParseProgram parses and links a standalone program.
func ParseProgram(path, source string) (*ast.Program, error) {
	mod, err := ParseModule(path, source)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(mod.Functions, ast.NewBlock(mod.Body))
}

func (p *Parser) parseModule() (*ast.Module, error) {
	var functions []*ast.FunctionDefinition
	var body []ast.Statement
	for {
		p.skipNewlines()
		if p.at(lexer.EOF) {
			break
		}
		if p.at(lexer.FUNC) {
			fn, err := p.parseFunctionDefinition()
			if err != nil {
				return nil, err
			}
			functions = append(functions, fn)
		} else {
			stmt, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
		}
		if err := p.endInstruction(); err != nil {
			return nil, err
		}
	}
	return ast.NewModule(p.path, functions, body), nil
}

func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	p.advance()
	name, err := p.expect(lexer.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.OPEN_PAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.FunctionParameter
	p.skipNewlines()
	for !p.at(lexer.CLOSE_PAREN) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA, "',' or ')'"); err != nil {
				return nil, err
			}
			p.skipNewlines()
		}
		paramName, err := p.expect(lexer.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.NewFunctionParameter(paramName.Literal, paramType))
		p.skipNewlines()
	}
	p.advance()
	returnType := runtime.VoidType()
	if p.at(lexer.ARROW) {
		p.advance()
		returnType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn, err := ast.NewFunctionDefinition(name.Literal, params, returnType, body)
	if err != nil {
		return nil, p.wrap(name.Pos, err)
	}
	return fn, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.OPEN_CURLY, "'{'"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for {
		p.skipNewlines()
		if p.at(lexer.CLOSE_CURLY) {
			p.advance()
			return ast.NewBlock(body), nil
		}
		if p.at(lexer.FUNC) {
			return nil, p.errorf("function definitions are only allowed at top level")
		}
		stmt, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if err := p.endInstruction(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseInstruction() (ast.Statement, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IDENT:
		if p.peek(1).Kind == lexer.OPEN_PAREN {
			return p.parseCall()
		}
		return p.parseVariableDefinition()
	case lexer.RETURN:
		p.advance()
		if p.atInstructionEnd() {
			return ast.NewReturnStatement(nil), nil
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(arg), nil
	case lexer.BREAK:
		p.advance()
		return ast.NewBreakStatement(), nil
	case lexer.CONTINUE:
		p.advance()
		return ast.NewContinueStatement(), nil
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		p.advance()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewWhileLoop(cond, body), nil
	default:
		return nil, p.errorf("unexpected %s", tok)
	}
}

func (p *Parser) parseVariableDefinition() (ast.Statement, error) {
	name := p.advance()
	var declared *runtime.Type
	if p.at(lexer.OPEN_BRACKET) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		declared = &t
	}
	if _, err := p.expect(lexer.ASSIGN, "'=' or '('"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewVariableDefinition(name.Literal, declared, value), nil
}

// parseIf handles the whole if/elif/else chain. elif and else may start on
// the line after the closing brace.
func (p *Parser) parseIf() (*ast.IfStatement, error) {
	p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewIfStatement(cond, body, nil)
	next := p.nextSignificant()
	switch next.Kind {
	case lexer.ELIF:
		p.skipNewlines()
		elif, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = elif
	case lexer.ELSE:
		p.skipNewlines()
		p.advance()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = ast.NewIfStatement(nil, elseBody, nil)
	}
	return stmt, nil
}

func (p *Parser) endInstruction() error {
	switch p.cur().Kind {
	case lexer.NEWLINE:
		p.advance()
		return nil
	case lexer.EOF, lexer.CLOSE_CURLY:
		return nil
	default:
		return p.errorf("expected end of instruction, found %s", p.cur())
	}
}

func (p *Parser) atInstructionEnd() bool {
	switch p.cur().Kind {
	case lexer.NEWLINE, lexer.EOF, lexer.CLOSE_CURLY:
		return true
	}
	return false
}

// Token helpers

func (p *Parser) cur() lexer.Token {
	return p.peek(0)
}

func (p *Parser) peek(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) at(kind lexer.TokenKind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) skipNewlines() {
	for p.at(lexer.NEWLINE) {
		p.advance()
	}
}

// nextSignificant returns the first token that is not a newline without
// consuming anything.
func (p *Parser) nextSignificant() lexer.Token {
	for i := 0; ; i++ {
		tok := p.peek(i)
		if tok.Kind != lexer.NEWLINE {
			return tok
		}
	}
}

func (p *Parser) expect(kind lexer.TokenKind, what string) (lexer.Token, error) {
	if !p.at(kind) {
		return lexer.Token{}, p.errorf("expected %s, found %s", what, p.cur())
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	tok := p.cur()
	return &Error{
		Path:       p.path,
		Pos:        tok.Pos,
		Message:    fmt.Sprintf(format, args...),
		Incomplete: tok.Kind == lexer.EOF,
	}
}

func (p *Parser) wrap(pos lexer.Position, err error) error {
	return &Error{Path: p.path, Pos: pos, Message: err.Error(), Err: err}
}
