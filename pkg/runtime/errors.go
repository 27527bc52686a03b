package runtime

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised while loading or executing a program.
type ErrorKind int

const (
	ErrTypeMismatch ErrorKind = iota + 1
	ErrUnitMismatch
	ErrVariableAlreadyDefined
	ErrVariableNotDefined
	ErrFunctionNotDefined
	ErrFunctionCall
	ErrJumpOutsideLoop
	ErrArgument
	ErrFunctionRedefinition
	ErrDuplicateParameter
	ErrCallDepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrUnitMismatch:
		return "UnitMismatch"
	case ErrVariableAlreadyDefined:
		return "VariableAlreadyDefined"
	case ErrVariableNotDefined:
		return "VariableNotDefined"
	case ErrFunctionNotDefined:
		return "FunctionNotDefined"
	case ErrFunctionCall:
		return "FunctionCallError"
	case ErrJumpOutsideLoop:
		return "JumpInstructionOutsideLoop"
	case ErrArgument:
		return "ArgumentError"
	case ErrFunctionRedefinition:
		return "FunctionRedefinition"
	case ErrDuplicateParameter:
		return "DuplicateParameter"
	case ErrCallDepthExceeded:
		return "CallDepthExceeded"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

// ParseErrorKind maps a kind name (as produced by String) back to its value.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for k := ErrTypeMismatch; k <= ErrCallDepthExceeded; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Error is the single error type raised by the engine. Every failure is fatal
// to the current run.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError formats a message and tags it with kind.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err (or anything it wraps) is an engine error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var rtErr *Error
	if !errors.As(err, &rtErr) {
		return false
	}
	return rtErr.Kind == kind
}

// KindOf extracts the engine error kind from err.
func KindOf(err error) (ErrorKind, bool) {
	var rtErr *Error
	if !errors.As(err, &rtErr) {
		return 0, false
	}
	return rtErr.Kind, true
}
