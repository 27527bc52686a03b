package interpreter

import (
	"fmt"
	"strings"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value, Unit: n.Unit}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.StringInterpolation:
		return i.evaluateStringInterpolation(n)
	case *ast.Identifier:
		return i.GetVariableOrError(n.Name)
	case *ast.BinaryExpression:
		left, err := i.evaluateExpression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(n.Right)
		if err != nil {
			return nil, err
		}
		return runtime.ApplyBinary(n.Operator, left, right)
	case *ast.FunctionCall:
		value, err := i.callFunction(n)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "function call used as expression must return a value: '%s'", n.Callee)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateStringInterpolation(n *ast.StringInterpolation) (runtime.Value, error) {
	var sb strings.Builder
	for _, part := range n.Parts {
		value, err := i.evaluateExpression(part)
		if err != nil {
			return nil, err
		}
		sb.WriteString(value.String())
	}
	return runtime.StringValue{Val: sb.String()}, nil
}
