package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Peperzastey/UnitsLang/pkg/interpreter"
)

func newTestRepl(t *testing.T) (*replSession, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	repl, err := newReplSession(nil, interpreter.Options{Stdout: &out}, &errOut)
	if err != nil {
		t.Fatalf("newReplSession: %v", err)
	}
	return repl, &out, &errOut
}

func TestReplKeepsGlobalsBetweenInputs(t *testing.T) {
	repl, out, errOut := newTestRepl(t)
	inputs := []string{
		"d = 42[km]",
		"func twice(x [km]) -> [km] { return x * 2 }",
		"r = twice(d)",
		`print("{r}")`,
	}
	for _, input := range inputs {
		if done, _ := repl.handle(input); done {
			t.Fatalf("input %q ended the session", input)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors: %q", errOut.String())
	}
	if out.String() != "84[(km)/()]\n" {
		t.Fatalf("stdout = %q", out.String())
	}

	out.Reset()
	repl.handle(":vars")
	if out.String() != "d [(km)/()] = 42[(km)/()]\nr [(km)/()] = 84[(km)/()]\n" {
		t.Fatalf(":vars = %q", out.String())
	}
	out.Reset()
	repl.handle(":funcs")
	if !strings.Contains(out.String(), "twice(x[(km)/()])->[(km)/()]") || !strings.Contains(out.String(), "print(") {
		t.Fatalf(":funcs = %q", out.String())
	}
}

func TestReplErrorsDoNotEndSession(t *testing.T) {
	repl, _, errOut := newTestRepl(t)
	repl.handle("x = 1")
	if done, _ := repl.handle("x = y"); done {
		t.Fatalf("runtime error ended the session")
	}
	if !strings.Contains(errOut.String(), "VariableNotDefined") {
		t.Fatalf("expected VariableNotDefined, got %q", errOut.String())
	}
	errOut.Reset()
	repl.handle("x = (")
	if errOut.Len() == 0 {
		t.Fatalf("expected parse error")
	}
	repl.handle(":bogus")
	if !strings.Contains(errOut.String(), "unknown command") {
		t.Fatalf("expected unknown command message, got %q", errOut.String())
	}
}

func TestReplReturnEndsSession(t *testing.T) {
	repl, out, _ := newTestRepl(t)
	done, code := repl.handle("return 3")
	if !done || code != 3 {
		t.Fatalf("handle = %v, %d", done, code)
	}
	if out.String() != "exit code 3\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if done, code := repl.handle(":quit"); !done || code != 0 {
		t.Fatalf(":quit = %v, %d", done, code)
	}
}
