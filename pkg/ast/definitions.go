package ast

import (
	"strings"

	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

type FunctionParameter struct {
	nodeImpl

	Name string       `json:"name"`
	Type runtime.Type `json:"-"`
}

func NewFunctionParameter(name string, paramType runtime.Type) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name, Type: paramType}
}

// FunctionDefinition is a named function with typed parameters. A VOID
// return type means the function yields no value.
type FunctionDefinition struct {
	nodeImpl

	Name       string               `json:"name"`
	Params     []*FunctionParameter `json:"params"`
	ReturnType runtime.Type         `json:"-"`
	Body       *Block               `json:"body"`
}

// NewFunctionDefinition validates that parameter names are unique.
func NewFunctionDefinition(name string, params []*FunctionParameter, returnType runtime.Type, body *Block) (*FunctionDefinition, error) {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p.Name]; dup {
			return nil, runtime.NewError(runtime.ErrDuplicateParameter, "duplicate parameter '%s' in function '%s'", p.Name, name)
		}
		seen[p.Name] = struct{}{}
	}
	if body == nil {
		body = NewBlock(nil)
	}
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, ReturnType: returnType, Body: body}, nil
}

// String renders the signature, e.g. "area(w[(m)/()],h[(m)/()])->[(m2)/()]".
// Void functions have no arrow.
func (f *FunctionDefinition) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Name)
		sb.WriteString(p.Type.String())
	}
	sb.WriteByte(')')
	if !f.ReturnType.IsVoid() {
		sb.WriteString("->")
		sb.WriteString(f.ReturnType.String())
	}
	return sb.String()
}

// Module is the unlinked result of parsing one source file.
type Module struct {
	nodeImpl

	Path      string                `json:"path,omitempty"`
	Functions []*FunctionDefinition `json:"functions"`
	Body      []Statement           `json:"body"`
}

func NewModule(path string, functions []*FunctionDefinition, body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Path: path, Functions: functions, Body: body}
}
