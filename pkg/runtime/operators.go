package runtime

// Binary operator symbols understood by ApplyBinary.
const (
	OpAdd          = "+"
	OpSub          = "-"
	OpMul          = "*"
	OpDiv          = "/"
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpAnd          = "&&"
	OpOr           = "||"
)

var operatorNames = map[string]string{
	OpAdd:          "Addition",
	OpSub:          "Subtraction",
	OpMul:          "Multiplication",
	OpDiv:          "Division",
	OpGreater:      "GreaterThan",
	OpGreaterEqual: "GreaterThanOrEqual",
	OpLess:         "LessThan",
	OpLessEqual:    "LessThanOrEqual",
	OpEqual:        "EqualTo",
	OpNotEqual:     "NotEqualTo",
	OpAnd:          "And",
	OpOr:           "Or",
}

// OperatorName returns the descriptive name used in error messages.
func OperatorName(op string) string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return op
}

// ApplyBinary evaluates left op right. Both operands are already evaluated;
// there is no short-circuiting.
func ApplyBinary(op string, left, right Value) (Value, error) {
	switch op {
	case OpAdd, OpSub:
		l, r, err := compatibleNumbers(op, left, right)
		if err != nil {
			return nil, err
		}
		if op == OpAdd {
			return NumberValue{Val: l.Val + r.Val, Unit: l.Unit}, nil
		}
		return NumberValue{Val: l.Val - r.Val, Unit: l.Unit}, nil
	case OpMul, OpDiv:
		l, r, err := numericOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		unit, err := l.Unit.Combine(op, r.Unit)
		if err != nil {
			return nil, err
		}
		if op == OpMul {
			return NumberValue{Val: l.Val * r.Val, Unit: unit}, nil
		}
		return NumberValue{Val: l.Val / r.Val, Unit: unit}, nil
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		l, r, err := compatibleNumbers(op, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue{Val: compareNumbers(op, l.Val, r.Val)}, nil
	case OpEqual, OpNotEqual:
		return applyEquality(op, left, right)
	case OpAnd, OpOr:
		l, lok := AsBool(left)
		r, rok := AsBool(right)
		if !lok || !rok {
			return nil, NewError(ErrTypeMismatch, "%s operands must be of bool type", OperatorName(op))
		}
		if op == OpAnd {
			return BoolValue{Val: l && r}, nil
		}
		return BoolValue{Val: l || r}, nil
	default:
		return nil, NewError(ErrArgument, "unsupported binary operator '%s'", op)
	}
}

func numericOperands(op string, left, right Value) (NumberValue, NumberValue, error) {
	l, lok := AsNumber(left)
	r, rok := AsNumber(right)
	if !lok || !rok {
		return NumberValue{}, NumberValue{}, NewError(ErrTypeMismatch, "%s operands must be of numeric type", OperatorName(op))
	}
	return l, r, nil
}

func compatibleNumbers(op string, left, right Value) (NumberValue, NumberValue, error) {
	l, r, err := numericOperands(op, left, right)
	if err != nil {
		return l, r, err
	}
	if !l.Type().Equal(r.Type()) {
		return l, r, NewError(ErrTypeMismatch, "%s operands are not type-compatible: %s and %s",
			OperatorName(op), l.Type(), r.Type())
	}
	return l, r, nil
}

func compareNumbers(op string, l, r float64) bool {
	switch op {
	case OpGreater:
		return l > r
	case OpGreaterEqual:
		return l >= r
	case OpLess:
		return l < r
	default:
		return l <= r
	}
}

func applyEquality(op string, left, right Value) (Value, error) {
	var equal bool
	switch l := left.(type) {
	case NumberValue:
		r, ok := right.(NumberValue)
		if !ok {
			return nil, NewError(ErrTypeMismatch, "%s operands must be of numeric or bool type", OperatorName(op))
		}
		if !l.Type().Equal(r.Type()) {
			return nil, NewError(ErrTypeMismatch, "%s operands are not type-compatible: %s and %s",
				OperatorName(op), l.Type(), r.Type())
		}
		equal = l.Val == r.Val
	case BoolValue:
		r, ok := right.(BoolValue)
		if !ok {
			return nil, NewError(ErrTypeMismatch, "%s operands must be of numeric or bool type", OperatorName(op))
		}
		equal = l.Val == r.Val
	default:
		return nil, NewError(ErrTypeMismatch, "%s operands must be of numeric or bool type", OperatorName(op))
	}
	if op == OpNotEqual {
		equal = !equal
	}
	return BoolValue{Val: equal}, nil
}
