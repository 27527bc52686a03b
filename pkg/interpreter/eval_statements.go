package interpreter

import (
	"fmt"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement) (Result, error) {
	switch n := node.(type) {
	case *ast.Block:
		return i.executeBlock(n)
	case *ast.VariableDefinition:
		return normalResult, i.executeVariableDefinition(n)
	case *ast.IfStatement:
		return i.executeIf(n)
	case *ast.WhileLoop:
		return i.executeWhile(n)
	case *ast.BreakStatement:
		return Result{Kind: ResultBreak}, nil
	case *ast.ContinueStatement:
		return Result{Kind: ResultContinue}, nil
	case *ast.ReturnStatement:
		return i.executeReturn(n)
	case *ast.FunctionCall:
		if _, err := i.callFunction(n); err != nil {
			return Result{}, err
		}
		return normalResult, nil
	case *ast.PrintStatement:
		return normalResult, i.executePrint(n)
	default:
		return Result{}, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// executeStatements runs body in the current scope until the first
// non-normal result.
func (i *Interpreter) executeStatements(body []ast.Statement) (Result, error) {
	for _, stmt := range body {
		res, err := i.executeStatement(stmt)
		if err != nil {
			return Result{}, err
		}
		if res.Kind != ResultNormal {
			return res, nil
		}
	}
	return normalResult, nil
}

func (i *Interpreter) executeBlock(block *ast.Block) (Result, error) {
	i.NewScope()
	defer i.DeleteScope()
	return i.executeStatements(block.Body)
}

func (i *Interpreter) executeVariableDefinition(n *ast.VariableDefinition) error {
	value, err := i.evaluateExpression(n.Value)
	if err != nil {
		return err
	}
	if n.DeclaredType != nil {
		if !n.DeclaredType.Equal(value.Type()) {
			return runtime.NewError(runtime.ErrTypeMismatch, "cannot initialize variable '%s' of type %s with value of type %s",
				n.Name, n.DeclaredType, value.Type())
		}
		return i.AddVariable(n.Name, value)
	}
	existing, ok := i.GetVariable(n.Name)
	if !ok {
		return i.AddVariable(n.Name, value)
	}
	if !existing.Type().Equal(value.Type()) {
		return runtime.NewError(runtime.ErrTypeMismatch, "cannot assign value of type %s to variable '%s' of type %s",
			value.Type(), n.Name, existing.Type())
	}
	return i.AssignVariable(n.Name, value)
}

func (i *Interpreter) executeIf(n *ast.IfStatement) (Result, error) {
	for clause := n; clause != nil; clause = clause.Else {
		if clause.Condition == nil {
			return i.executeBlock(clause.Body)
		}
		ok, err := i.evaluateCondition(clause.Condition, "if")
		if err != nil {
			return Result{}, err
		}
		if ok {
			return i.executeBlock(clause.Body)
		}
	}
	return normalResult, nil
}

func (i *Interpreter) executeWhile(n *ast.WhileLoop) (Result, error) {
	res := normalResult
	for {
		ok, err := i.evaluateCondition(n.Condition, "while")
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		res, err = i.executeBlock(n.Body)
		if err != nil {
			return Result{}, err
		}
		if res.Kind == ResultBreak || res.Kind == ResultReturn {
			break
		}
	}
	if res.Kind == ResultBreak || res.Kind == ResultContinue {
		return normalResult, nil
	}
	return res, nil
}

func (i *Interpreter) executeReturn(n *ast.ReturnStatement) (Result, error) {
	if n.Argument == nil {
		return returnResult(nil), nil
	}
	value, err := i.evaluateExpression(n.Argument)
	if err != nil {
		return Result{}, err
	}
	return returnResult(value), nil
}

func (i *Interpreter) executePrint(n *ast.PrintStatement) error {
	value, err := i.GetVariableOrError(n.Param)
	if err != nil {
		return err
	}
	text, ok := runtime.AsString(value)
	if !ok {
		return runtime.NewError(runtime.ErrTypeMismatch, "print expects a string, got %s", value.Type())
	}
	return i.EmitLine(text)
}

func (i *Interpreter) evaluateCondition(expr ast.Expression, context string) (bool, error) {
	value, err := i.evaluateExpression(expr)
	if err != nil {
		return false, err
	}
	b, ok := runtime.AsBool(value)
	if !ok {
		return false, runtime.NewError(runtime.ErrTypeMismatch, "%s condition must be of bool type, got %s", context, value.Type())
	}
	return b, nil
}
