package ast

import "github.com/Peperzastey/UnitsLang/pkg/runtime"

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeStringInterpolation NodeType = "StringInterpolation"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeBlock               NodeType = "Block"
	NodeVariableDefinition  NodeType = "VariableDefinition"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeFunctionParameter   NodeType = "FunctionParameter"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeModule              NodeType = "Module"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Both sets are closed to this package.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Identifier reads a variable.

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64      `json:"value"`
	Unit  runtime.Unit `json:"-"`
}

func NewNumberLiteral(value float64, unit runtime.Unit) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value, Unit: unit}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// StringInterpolation concatenates the rendered text of its parts.
type StringInterpolation struct {
	nodeImpl
	expressionMarker

	Parts []Expression `json:"parts"`
}

func NewStringInterpolation(parts []Expression) *StringInterpolation {
	return &StringInterpolation{nodeImpl: newNodeImpl(NodeStringInterpolation), Parts: parts}
}

// Expressions

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// FunctionCall is usable both as an expression and as a statement.
type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    string       `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// Statements

// Block runs its body in a fresh scope.
type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// VariableDefinition defines a variable when DeclaredType is set or the name
// is unbound, and assigns to the existing binding otherwise.
type VariableDefinition struct {
	nodeImpl
	statementMarker

	Name         string        `json:"name"`
	DeclaredType *runtime.Type `json:"-"`
	Value        Expression    `json:"value"`
}

func NewVariableDefinition(name string, declared *runtime.Type, value Expression) *VariableDefinition {
	return &VariableDefinition{nodeImpl: newNodeImpl(NodeVariableDefinition), Name: name, DeclaredType: declared, Value: value}
}

// IfStatement is one link of an if/elif/else chain. A nil Condition marks a
// final else.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression   `json:"condition,omitempty"`
	Body      *Block       `json:"body"`
	Else      *IfStatement `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, body *Block, elseClause *IfStatement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Body: body, Else: elseClause}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileLoop(condition Expression, body *Block) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// PrintStatement writes the string bound to Param. It is the body of the
// built-in print function and is never produced by the parser.
type PrintStatement struct {
	nodeImpl
	statementMarker

	Param string `json:"param"`
}

func NewPrintStatement(param string) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Param: param}
}
