package ast

import "github.com/Peperzastey/UnitsLang/pkg/runtime"

// Short builders used by tests and hand-built programs.

func ID(name string) *Identifier { return NewIdentifier(name) }

func Num(value float64) *NumberLiteral { return NewNumberLiteral(value, runtime.Scalar()) }

func Qty(value float64, unit runtime.Unit) *NumberLiteral { return NewNumberLiteral(value, unit) }

func Bool(value bool) *BooleanLiteral { return NewBooleanLiteral(value) }

func Str(value string) *StringLiteral { return NewStringLiteral(value) }

func Interp(parts ...Expression) *StringInterpolation { return NewStringInterpolation(parts) }

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Call(callee string, args ...Expression) *FunctionCall { return NewFunctionCall(callee, args) }

func Blk(body ...Statement) *Block { return NewBlock(body) }

// Set is a definition or assignment without a declared type.
func Set(name string, value Expression) *VariableDefinition {
	return NewVariableDefinition(name, nil, value)
}

// Def is a definition with a declared type.
func Def(name string, declared runtime.Type, value Expression) *VariableDefinition {
	return NewVariableDefinition(name, &declared, value)
}

func If(cond Expression, body *Block, elseClause *IfStatement) *IfStatement {
	return NewIfStatement(cond, body, elseClause)
}

func Else(body *Block) *IfStatement { return NewIfStatement(nil, body, nil) }

func While(cond Expression, body *Block) *WhileLoop { return NewWhileLoop(cond, body) }

func Brk() *BreakStatement { return NewBreakStatement() }

func Cont() *ContinueStatement { return NewContinueStatement() }

func Ret(argument Expression) *ReturnStatement { return NewReturnStatement(argument) }

func Param(name string, paramType runtime.Type) *FunctionParameter {
	return NewFunctionParameter(name, paramType)
}

// Fn builds a function definition and panics on duplicate parameters.
func Fn(name string, params []*FunctionParameter, returnType runtime.Type, body ...Statement) *FunctionDefinition {
	fn, err := NewFunctionDefinition(name, params, returnType, NewBlock(body))
	if err != nil {
		panic(err)
	}
	return fn
}
