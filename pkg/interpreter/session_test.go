package interpreter

import (
	"bytes"
	"testing"

	"github.com/Peperzastey/UnitsLang/pkg/parser"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

func evalChunk(t *testing.T, s *Session, src string) (ChunkResult, error) {
	t.Helper()
	mod, err := parser.ParseModule("<repl>", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return s.Eval(mod)
}

func TestSessionKeepsGlobals(t *testing.T) {
	var out bytes.Buffer
	s, err := NewSession(nil, Options{Stdout: &out})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := evalChunk(t, s, "a = 2[m]"); err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, err := evalChunk(t, s, "func double(x [m]) -> [m] { return x * 2 }"); err != nil {
		t.Fatalf("define function: %v", err)
	}
	if _, err := evalChunk(t, s, `b = double(a)
print("b = {b}")`); err != nil {
		t.Fatalf("call: %v", err)
	}
	if out.String() != "b = 4[(m)/()]\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	names, values := s.Globals()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" || values["b"].String() != "4[(m)/()]" {
		t.Fatalf("unexpected globals %v", names)
	}
	if len(s.Functions()) != 2 {
		t.Fatalf("expected print and double, got %d functions", len(s.Functions()))
	}
}

func TestSessionSurvivesErrors(t *testing.T) {
	s, err := NewSession(nil, Options{Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := evalChunk(t, s, "a = 1"); err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, err := evalChunk(t, s, "if true { b = a + true }"); !runtime.IsKind(err, runtime.ErrTypeMismatch) {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
	if _, err := evalChunk(t, s, "a = a + 1"); err != nil {
		t.Fatalf("session should continue after an error: %v", err)
	}
	if _, err := evalChunk(t, s, "func print(x [str]) {}"); !runtime.IsKind(err, runtime.ErrFunctionRedefinition) {
		t.Fatalf("expected FunctionRedefinition, got %v", err)
	}
	if _, err := evalChunk(t, s, "break"); !runtime.IsKind(err, runtime.ErrJumpOutsideLoop) {
		t.Fatalf("expected JumpInstructionOutsideLoop, got %v", err)
	}
	res, err := evalChunk(t, s, "return a")
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if !res.Exited || res.ExitCode != 2 || !s.Done() {
		t.Fatalf("expected exit 2, got %+v", res)
	}
}
