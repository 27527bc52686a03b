package interpreter

import (
	"bytes"
	"testing"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

func mustProgram(t *testing.T, functions []*ast.FunctionDefinition, body ...ast.Statement) *ast.Program {
	t.Helper()
	program, err := ast.NewProgram(functions, ast.Blk(body...))
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	return program
}

func runProgram(t *testing.T, program *ast.Program) (int, string, error) {
	t.Helper()
	var out bytes.Buffer
	code, err := New(program, Options{Stdout: &out}).Execute()
	return code, out.String(), err
}

func unitOf(t *testing.T, symbol string) runtime.Unit {
	t.Helper()
	u, err := runtime.ParseUnitSymbol(symbol)
	if err != nil {
		t.Fatalf("unit %q: %v", symbol, err)
	}
	return u
}
