package driver

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
name: Demo-App
version: 0.1.0
main: src/main.units
interpreter:
  max_call_depth: 500
  trace: true
dependencies:
  geometry:
    git: https://example.com/geometry.git
    tag: v1.0.0
  local_lib:
    path: ../lib
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "demo_app" || manifest.Version != "0.1.0" {
		t.Fatalf("unexpected name/version %q %q", manifest.Name, manifest.Version)
	}
	if manifest.Interpreter.MaxCallDepth != 500 || !manifest.Interpreter.Trace {
		t.Fatalf("unexpected interpreter config %+v", manifest.Interpreter)
	}
	mainPath, err := manifest.MainPath()
	if err != nil || mainPath != filepath.Join(dir, "src", "main.units") {
		t.Fatalf("unexpected main path %q (%v)", mainPath, err)
	}
	names := manifest.DependencyNames()
	if len(names) != 2 || names[0] != "geometry" || names[1] != "local_lib" {
		t.Fatalf("unexpected dependencies %v", names)
	}
	if manifest.Dependencies["geometry"].Tag != "v1.0.0" {
		t.Fatalf("expected tag v1.0.0, got %+v", manifest.Dependencies["geometry"])
	}
	if manifest.LockfilePath() != filepath.Join(dir, LockfileFileName) {
		t.Fatalf("unexpected lockfile path %s", manifest.LockfilePath())
	}
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
version: 1.0.0
interpreter:
  max_call_depth: -1
dependencies:
  a:
    git: https://example.com/a.git
    tag: v1
    branch: main
  b:
    path: ../b
    rev: abc
  c:
    git: https://example.com/c.git
    path: ../c
  d: {}
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		"max_call_depth must not be negative",
		"dependencies.a: specify at most one of rev, tag, or branch",
		"dependencies.b: path dependencies cannot specify rev, tag, or branch",
		"dependencies.c: cannot specify both git and path",
		"dependencies.d: must specify git or path",
	}
	msg := verr.Error()
	for _, w := range want {
		if !strings.Contains(msg, w) {
			t.Fatalf("expected %q in %s", w, msg)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
name: demo
colour: blue
`)
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: demo")
	nested := filepath.Join(root, "src", "deep")
	writeFile(t, filepath.Join(nested, "main.units"), "return 0")
	found, err := FindManifest(filepath.Join(nested, "main.units"))
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != filepath.Join(root, ManifestFileName) {
		t.Fatalf("unexpected manifest %s", found)
	}
}
