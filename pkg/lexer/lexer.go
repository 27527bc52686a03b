package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// Error is a lexical error at a source position.
type Error struct {
	Pos     Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type regexHandler func(lex *Lexer, match string) error

type regexPattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

type Lexer struct {
	Tokens     []Token
	Position   Position
	sourceCode string
}

var patterns = []regexPattern{
	{regexp.MustCompile(`\A[ \t\r]+`), skipHandler},
	{regexp.MustCompile(`\A#[^\n]*`), skipHandler},
	{regexp.MustCompile(`\A[\n;]`), newlineHandler},
	{regexp.MustCompile(`\A"`), stringHandler},
	{regexp.MustCompile(`\A[0-9]+(\.[0-9]+)?`), numberHandler},
	{regexp.MustCompile(`\A[A-Za-z_][A-Za-z0-9_]*`), identifierHandler},
	{regexp.MustCompile(`\A->`), defaultHandler(ARROW)},
	{regexp.MustCompile(`\A<=`), defaultHandler(LESS_EQUAL)},
	{regexp.MustCompile(`\A>=`), defaultHandler(GREATER_EQUAL)},
	{regexp.MustCompile(`\A==`), defaultHandler(DOUBLE_EQUAL)},
	{regexp.MustCompile(`\A!=`), defaultHandler(NOT_EQUAL)},
	{regexp.MustCompile(`\A&&`), defaultHandler(AND)},
	{regexp.MustCompile(`\A\|\|`), defaultHandler(OR)},
	{regexp.MustCompile(`\A\+`), defaultHandler(PLUS)},
	{regexp.MustCompile(`\A-`), defaultHandler(MINUS)},
	{regexp.MustCompile(`\A\*`), defaultHandler(STAR)},
	{regexp.MustCompile(`\A/`), defaultHandler(SLASH)},
	{regexp.MustCompile(`\A<`), defaultHandler(LESS)},
	{regexp.MustCompile(`\A>`), defaultHandler(GREATER)},
	{regexp.MustCompile(`\A=`), defaultHandler(ASSIGN)},
	{regexp.MustCompile(`\A\(`), defaultHandler(OPEN_PAREN)},
	{regexp.MustCompile(`\A\)`), defaultHandler(CLOSE_PAREN)},
	{regexp.MustCompile(`\A\{`), defaultHandler(OPEN_CURLY)},
	{regexp.MustCompile(`\A\}`), defaultHandler(CLOSE_CURLY)},
	{regexp.MustCompile(`\A\[`), defaultHandler(OPEN_BRACKET)},
	{regexp.MustCompile(`\A\]`), defaultHandler(CLOSE_BRACKET)},
	{regexp.MustCompile(`\A,`), defaultHandler(COMMA)},
}

var identPattern = regexp.MustCompile(`\A[A-Za-z_][A-Za-z0-9_]*\z`)

func New(content string) *Lexer {
	return &Lexer{
		sourceCode: content,
		Position:   Position{Line: 1, Column: 1},
	}
}

// Tokenize lexes content; the last token is always EOF.
func Tokenize(content string) ([]Token, error) {
	return New(content).Tokenize()
}

func (lex *Lexer) Tokenize() ([]Token, error) {
	for !lex.atEOF() {
		matched := false
		for _, pattern := range patterns {
			match := pattern.regex.FindString(lex.remainder())
			if match == "" {
				continue
			}
			if err := pattern.handler(lex, match); err != nil {
				return nil, err
			}
			matched = true
			break
		}
		if !matched {
			return nil, &Error{Pos: lex.Position, Message: fmt.Sprintf("unrecognized character '%c'", []rune(lex.remainder())[0])}
		}
	}
	lex.push(Token{Kind: EOF, Pos: lex.Position})
	return lex.Tokens, nil
}

func (lex *Lexer) remainder() string {
	return lex.sourceCode[lex.Position.Index:]
}

func (lex *Lexer) atEOF() bool {
	return lex.Position.Index >= len(lex.sourceCode)
}

func (lex *Lexer) push(tok Token) {
	lex.Tokens = append(lex.Tokens, tok)
}

func defaultHandler(kind TokenKind) regexHandler {
	return func(lex *Lexer, match string) error {
		lex.push(Token{Kind: kind, Literal: match, Pos: lex.Position})
		lex.Position.advance(match)
		return nil
	}
}

func skipHandler(lex *Lexer, match string) error {
	lex.Position.advance(match)
	return nil
}

func newlineHandler(lex *Lexer, match string) error {
	lex.push(Token{Kind: NEWLINE, Literal: match, Pos: lex.Position})
	lex.Position.advance(match)
	return nil
}

func numberHandler(lex *Lexer, match string) error {
	lex.push(Token{Kind: NUMBER, Literal: match, Pos: lex.Position})
	lex.Position.advance(match)
	return nil
}

func identifierHandler(lex *Lexer, match string) error {
	kind := IDENT
	if kw, ok := keywords[match]; ok {
		kind = kw
	}
	lex.push(Token{Kind: kind, Literal: match, Pos: lex.Position})
	lex.Position.advance(match)
	return nil
}

// stringHandler scans a literal up to the closing quote, splitting it into
// text and {name} parts. Literals cannot span lines.
func stringHandler(lex *Lexer, _ string) error {
	start := lex.Position
	src := lex.remainder()
	var parts []StringPart
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, StringPart{Text: text.String()})
			text.Reset()
		}
	}
	i := 1
	for {
		if i >= len(src) || src[i] == '\n' {
			return &Error{Pos: start, Message: "unterminated string literal"}
		}
		c := src[i]
		switch c {
		case '"':
			flush()
			literal := src[:i+1]
			lex.push(Token{Kind: STRING, Literal: literal, Pos: start, Parts: parts})
			lex.Position.advance(literal)
			return nil
		case '\\':
			if i+1 >= len(src) {
				return &Error{Pos: start, Message: "unterminated string literal"}
			}
			esc, ok := escapes[src[i+1]]
			if !ok {
				return &Error{Pos: start, Message: fmt.Sprintf("unknown escape sequence '\\%c'", src[i+1])}
			}
			text.WriteByte(esc)
			i += 2
		case '{':
			end := strings.IndexAny(src[i+1:], "}\"\n")
			if end < 0 || src[i+1+end] != '}' {
				return &Error{Pos: start, Message: "unterminated '{' in string literal"}
			}
			name := strings.TrimSpace(src[i+1 : i+1+end])
			if !identPattern.MatchString(name) || IsKeyword(name) {
				return &Error{Pos: start, Message: fmt.Sprintf("invalid variable reference '{%s}' in string literal", name)}
			}
			flush()
			parts = append(parts, StringPart{Text: name, Variable: true})
			i += end + 2
		case '}':
			return &Error{Pos: start, Message: "unmatched '}' in string literal"}
		default:
			text.WriteByte(c)
			i++
		}
	}
}

var escapes = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'{':  '{',
	'}':  '}',
}
