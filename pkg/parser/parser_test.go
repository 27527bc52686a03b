package parser

import (
	"testing"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := ParseModule("test.units", src)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	return mod
}

func TestParseFunctionDefinition(t *testing.T) {
	mod := mustParse(t, `
func area(w [m], h [m]) -> [m2] {
	return w * h
}
func log(msg [str]) {
	print(msg)
}
`)
	if len(mod.Functions) != 2 || len(mod.Body) != 0 {
		t.Fatalf("unexpected module shape: %d functions, %d statements", len(mod.Functions), len(mod.Body))
	}
	if got := mod.Functions[0].String(); got != "area(w[(m)/()],h[(m)/()])->[(m2)/()]" {
		t.Fatalf("unexpected signature %s", got)
	}
	if got := mod.Functions[1].String(); got != "log(msg[str])->[void]" {
		t.Fatalf("unexpected signature %s", got)
	}
	ret, ok := mod.Functions[0].Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected return statement, got %T", mod.Functions[0].Body.Body[0])
	}
	bin, ok := ret.Argument.(*ast.BinaryExpression)
	if !ok || bin.Operator != "*" {
		t.Fatalf("expected multiplication, got %#v", ret.Argument)
	}
}

func TestParseDefinitionsAndUnits(t *testing.T) {
	mod := mustParse(t, "a [kg/(m*s2)] = 3 [kg/m/s/s]; b = -1.5 [m]\nc [1] = 1 [1]\nok [bool] = true")
	if len(mod.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(mod.Body))
	}
	a := mod.Body[0].(*ast.VariableDefinition)
	if a.DeclaredType == nil || a.DeclaredType.String() != "[(kg)/(s2*m)]" {
		t.Fatalf("unexpected declared type %v", a.DeclaredType)
	}
	lit := a.Value.(*ast.NumberLiteral)
	if lit.Value != 3 || !lit.Unit.Equal(a.DeclaredType.Unit) {
		t.Fatalf("unexpected literal %v %s", lit.Value, lit.Unit)
	}
	b := mod.Body[1].(*ast.VariableDefinition)
	if b.DeclaredType != nil {
		t.Fatalf("b should have no declared type")
	}
	if n := b.Value.(*ast.NumberLiteral); n.Value != -1.5 || n.Unit.String() != "[(m)/()]" {
		t.Fatalf("unexpected literal %v %s", n.Value, n.Unit)
	}
	c := mod.Body[2].(*ast.VariableDefinition)
	if !c.DeclaredType.IsScalarNumber() {
		t.Fatalf("expected scalar type, got %s", c.DeclaredType)
	}
	ok := mod.Body[3].(*ast.VariableDefinition)
	if ok.DeclaredType.Class != runtime.TypeBool {
		t.Fatalf("expected bool type, got %s", ok.DeclaredType)
	}
}

func TestParsePrecedence(t *testing.T) {
	mod := mustParse(t, "x = 1 + 2 * 3 < 10 && true || false")
	def := mod.Body[0].(*ast.VariableDefinition)
	or, ok := def.Value.(*ast.BinaryExpression)
	if !ok || or.Operator != "||" {
		t.Fatalf("expected || at the root, got %#v", def.Value)
	}
	and := or.Left.(*ast.BinaryExpression)
	if and.Operator != "&&" {
		t.Fatalf("expected &&, got %s", and.Operator)
	}
	less := and.Left.(*ast.BinaryExpression)
	if less.Operator != "<" {
		t.Fatalf("expected <, got %s", less.Operator)
	}
	plus := less.Left.(*ast.BinaryExpression)
	if plus.Operator != "+" {
		t.Fatalf("expected +, got %s", plus.Operator)
	}
	if mul := plus.Right.(*ast.BinaryExpression); mul.Operator != "*" {
		t.Fatalf("expected *, got %s", mul.Operator)
	}
}

func TestParseControlFlow(t *testing.T) {
	mod := mustParse(t, `
a = 3
while a > 0 {
	a = a - 1
	if a == 1 {
		continue
	} elif a == 5 {
		break
	}
	else {
		print("a = {a}")
	}
}
return
`)
	if len(mod.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(mod.Body))
	}
	loop := mod.Body[1].(*ast.WhileLoop)
	chain := loop.Body.Body[1].(*ast.IfStatement)
	if chain.Else == nil || chain.Else.Condition == nil || chain.Else.Else == nil || chain.Else.Else.Condition != nil {
		t.Fatalf("expected if/elif/else chain, got %#v", chain)
	}
	call := chain.Else.Else.Body.Body[0].(*ast.FunctionCall)
	interp, ok := call.Arguments[0].(*ast.StringInterpolation)
	if !ok || len(interp.Parts) != 2 {
		t.Fatalf("expected interpolated string, got %#v", call.Arguments[0])
	}
	if ret := mod.Body[2].(*ast.ReturnStatement); ret.Argument != nil {
		t.Fatalf("bare return should have no argument")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"a = ",
		"x [2] = 1",
		"x [m] = 1 [q]",
		"x = 1 [km*m]",
		"if true { func f() {} }",
		"a b",
		"func f(a [1], a [1]) {}",
		"1 = a",
	}
	for _, src := range cases {
		if _, err := ParseModule("", src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}

func TestParseWrapsEngineErrors(t *testing.T) {
	_, err := ParseModule("", "x = 1 [km/m]")
	if !runtime.IsKind(err, runtime.ErrUnitMismatch) {
		t.Fatalf("expected UnitMismatch, got %v", err)
	}
	_, err = ParseModule("", "func f(a [1], a [bool]) {}")
	if !runtime.IsKind(err, runtime.ErrDuplicateParameter) {
		t.Fatalf("expected DuplicateParameter, got %v", err)
	}
	_, err = ParseProgram("", "func f() {}\nfunc f() {}")
	if !runtime.IsKind(err, runtime.ErrFunctionRedefinition) {
		t.Fatalf("expected FunctionRedefinition, got %v", err)
	}
}

func TestIsIncomplete(t *testing.T) {
	incomplete := []string{"func f() {", "while a < 3 {\n a = a + 1", "x = (1 +", "print("}
	for _, src := range incomplete {
		_, err := ParseModule("", src)
		if !IsIncomplete(err) {
			t.Fatalf("expected incomplete error for %q, got %v", src, err)
		}
	}
	_, err := ParseModule("", "x = )")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("expected a complete syntax error, got %v", err)
	}
}
