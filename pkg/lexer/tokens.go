package lexer

import "fmt"

type TokenKind string

const (
	EOF     TokenKind = "EOF"
	NEWLINE TokenKind = "NEWLINE"
	IDENT   TokenKind = "IDENT"
	NUMBER  TokenKind = "NUMBER"
	STRING  TokenKind = "STRING"

	FUNC     TokenKind = "func"
	RETURN   TokenKind = "return"
	BREAK    TokenKind = "break"
	CONTINUE TokenKind = "continue"
	IF       TokenKind = "if"
	ELIF     TokenKind = "elif"
	ELSE     TokenKind = "else"
	WHILE    TokenKind = "while"
	TRUE     TokenKind = "true"
	FALSE    TokenKind = "false"
	BOOL     TokenKind = "bool"
	STR      TokenKind = "str"

	PLUS          TokenKind = "+"
	MINUS         TokenKind = "-"
	STAR          TokenKind = "*"
	SLASH         TokenKind = "/"
	LESS          TokenKind = "<"
	LESS_EQUAL    TokenKind = "<="
	GREATER       TokenKind = ">"
	GREATER_EQUAL TokenKind = ">="
	DOUBLE_EQUAL  TokenKind = "=="
	NOT_EQUAL     TokenKind = "!="
	AND           TokenKind = "&&"
	OR            TokenKind = "||"
	ASSIGN        TokenKind = "="
	ARROW         TokenKind = "->"
	OPEN_PAREN    TokenKind = "("
	CLOSE_PAREN   TokenKind = ")"
	OPEN_CURLY    TokenKind = "{"
	CLOSE_CURLY   TokenKind = "}"
	OPEN_BRACKET  TokenKind = "["
	CLOSE_BRACKET TokenKind = "]"
	COMMA         TokenKind = ","
)

var keywords = map[string]TokenKind{
	"func":     FUNC,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"true":     TRUE,
	"false":    FALSE,
	"bool":     BOOL,
	"str":      STR,
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

type Position struct {
	Line   int
	Column int
	Index  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// advance moves the position over text.
func (p *Position) advance(text string) {
	p.Index += len(text)
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
			continue
		}
		p.Column++
	}
}

// StringPart is a piece of a string literal: either text or a variable name
// from a {name} placeholder.
type StringPart struct {
	Text     string
	Variable bool
}

type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
	Parts   []StringPart
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case NEWLINE:
		return "end of line"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s '%s'", t.Kind, t.Literal)
	case STRING:
		return "string literal"
	default:
		return fmt.Sprintf("'%s'", t.Literal)
	}
}
