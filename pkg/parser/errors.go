package parser

import (
	"errors"
	"fmt"

	"github.com/Peperzastey/UnitsLang/pkg/lexer"
)

// Error is a syntax error. Incomplete is set when parsing stopped at the end
// of input, so more text could still make the source valid.
type Error struct {
	Path       string
	Pos        lexer.Position
	Message    string
	Incomplete bool
	Err        error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsIncomplete reports whether err was caused by running out of input.
func IsIncomplete(err error) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Incomplete
}
