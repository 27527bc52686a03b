package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Peperzastey/UnitsLang/pkg/parser"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

type programFixture struct {
	Description  string `yaml:"description"`
	Source       string `yaml:"source"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Expect       struct {
		Stdout []string `yaml:"stdout"`
		Exit   int      `yaml:"exit"`
		Error  string   `yaml:"error"`
	} `yaml:"expect"`
}

func readFixture(t *testing.T, path string) programFixture {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture %s: %v", path, err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var fixture programFixture
	if err := dec.Decode(&fixture); err != nil {
		t.Fatalf("parse fixture %s: %v", path, err)
	}
	return fixture
}

func TestProgramFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "programs", "*.yml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		fixture := readFixture(t, path)
		name := strings.TrimSuffix(filepath.Base(path), ".yml")
		t.Run(name, func(t *testing.T) {
			runProgramFixture(t, fixture)
		})
	}
}

func runProgramFixture(t *testing.T, fixture programFixture) {
	t.Helper()
	program, err := parser.ParseProgram("fixture.units", fixture.Source)
	if err != nil {
		t.Fatalf("%s: parse: %v", fixture.Description, err)
	}
	var out bytes.Buffer
	interp := New(program, Options{Stdout: &out, MaxCallDepth: fixture.MaxCallDepth})
	code, err := interp.Execute()

	if fixture.Expect.Error != "" {
		want, ok := runtime.ParseErrorKind(fixture.Expect.Error)
		if !ok {
			t.Fatalf("%s: unknown error kind %q", fixture.Description, fixture.Expect.Error)
		}
		if got, ok := runtime.KindOf(err); !ok || got != want {
			t.Fatalf("%s: expected %s error, got %v", fixture.Description, want, err)
		}
	} else {
		if err != nil {
			t.Fatalf("%s: execution error: %v", fixture.Description, err)
		}
		if code != fixture.Expect.Exit {
			t.Fatalf("%s: expected exit code %d, got %d", fixture.Description, fixture.Expect.Exit, code)
		}
	}

	if fixture.Expect.Stdout != nil || fixture.Expect.Error == "" {
		got := splitLines(out.String())
		if !equalLines(got, fixture.Expect.Stdout) {
			t.Fatalf("%s: expected stdout %q, got %q", fixture.Description, fixture.Expect.Stdout, got)
		}
	}
	if depth := interp.stack.Depth(); depth != 0 {
		t.Fatalf("%s: call stack not unwound, depth %d", fixture.Description, depth)
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
