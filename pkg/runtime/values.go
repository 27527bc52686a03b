package runtime

import (
	"math"
	"strconv"
)

// Value is a runtime value. Implementations are immutable.
type Value interface {
	Type() Type
	String() string
	isValue()
}

// NumberValue is a float64 tagged with a unit.
type NumberValue struct {
	Val  float64
	Unit Unit
}

func (v NumberValue) Type() Type { return NumberType(v.Unit) }
func (NumberValue) isValue() {}

// String renders the number with six significant digits, followed by the
// unit when it is not scalar.
func (v NumberValue) String() string {
	text := FormatNumber(v.Val)
	if v.Unit.IsScalar() {
		return text
	}
	return text + v.Unit.String()
}

type BoolValue struct {
	Val bool
}

func (BoolValue) Type() Type { return BoolType() }
func (BoolValue) isValue() {}

func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

type StringValue struct {
	Val string
}

func (StringValue) Type() Type { return StringType() }
func (StringValue) isValue() {}
func (v StringValue) String() string { return v.Val }

// NewScalar returns a dimensionless number.
func NewScalar(v float64) NumberValue {
	return NumberValue{Val: v}
}

// FormatNumber renders a float the way the language prints numbers: six
// significant digits, with inf, -inf and nan spelled in lower case.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// AsNumber narrows v to a number.
func AsNumber(v Value) (NumberValue, bool) {
	n, ok := v.(NumberValue)
	return n, ok
}

// AsBool narrows v to a boolean.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(BoolValue)
	return b.Val, ok
}

// AsString narrows v to a string.
func AsString(v Value) (string, bool) {
	s, ok := v.(StringValue)
	return s.Val, ok
}
