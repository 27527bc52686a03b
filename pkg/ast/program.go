package ast

import (
	"sort"

	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

// PrintFunctionName is the built-in output primitive every program knows.
const PrintFunctionName = "print"

// Program is a linked, immutable function table plus the top-level block.
type Program struct {
	functions map[string]*FunctionDefinition
	Body      *Block
}

// NewProgram builds the function table. print is registered first, so a user
// definition named print is a redefinition like any other duplicate.
func NewProgram(functions []*FunctionDefinition, body *Block) (*Program, error) {
	if body == nil {
		body = NewBlock(nil)
	}
	table := map[string]*FunctionDefinition{PrintFunctionName: newPrintFunction()}
	if err := addFunctions(table, functions); err != nil {
		return nil, err
	}
	return &Program{functions: table, Body: body}, nil
}

// WithFunctions returns a new program sharing this one's table and body, with
// extra definitions added. The receiver is left unchanged.
func (p *Program) WithFunctions(functions []*FunctionDefinition) (*Program, error) {
	table := make(map[string]*FunctionDefinition, len(p.functions)+len(functions))
	for name, fn := range p.functions {
		table[name] = fn
	}
	if err := addFunctions(table, functions); err != nil {
		return nil, err
	}
	return &Program{functions: table, Body: p.Body}, nil
}

// Function looks up a definition by name.
func (p *Program) Function(name string) (*FunctionDefinition, bool) {
	fn, ok := p.functions[name]
	return fn, ok
}

// Functions lists every definition ordered by name.
func (p *Program) Functions() []*FunctionDefinition {
	out := make([]*FunctionDefinition, 0, len(p.functions))
	for _, fn := range p.functions {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func addFunctions(table map[string]*FunctionDefinition, functions []*FunctionDefinition) error {
	for _, fn := range functions {
		if _, exists := table[fn.Name]; exists {
			return runtime.NewError(runtime.ErrFunctionRedefinition, "Redefinition of function named '%s'", fn.Name)
		}
		table[fn.Name] = fn
	}
	return nil
}

func newPrintFunction() *FunctionDefinition {
	const param = "_"
	return &FunctionDefinition{
		nodeImpl:   newNodeImpl(NodeFunctionDefinition),
		Name:       PrintFunctionName,
		Params:     []*FunctionParameter{NewFunctionParameter(param, runtime.StringType())},
		ReturnType: runtime.VoidType(),
		Body:       NewBlock([]Statement{NewPrintStatement(param)}),
	}
}
