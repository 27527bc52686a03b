package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLockfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileFileName)
	lock := NewLockfile("Demo")
	lock.Packages = append(lock.Packages,
		&LockedPackage{Name: "zeta", Version: "0.0.0", Source: "path:/tmp/zeta", Checksum: "abc"},
		&LockedPackage{Name: "alpha", Version: "v1@deadbeef", Source: "git+https://example.com/a.git@deadbeef", Checksum: "def"},
	)
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if loaded.Root != "demo" || loaded.Generated == "" {
		t.Fatalf("unexpected metadata %+v", loaded)
	}
	if len(loaded.Packages) != 2 || loaded.Packages[0].Name != "alpha" {
		t.Fatalf("packages should be sorted by name: %+v", loaded.Packages)
	}
	zeta, ok := loaded.Find("zeta")
	if !ok || !zeta.IsPath() {
		t.Fatalf("expected path package zeta, got %+v", zeta)
	}
	dir, err := zeta.Dir("")
	if err != nil || dir != "/tmp/zeta" {
		t.Fatalf("unexpected dir %q (%v)", dir, err)
	}
	alpha, _ := loaded.Find("alpha")
	dir, err = alpha.Dir("/cache")
	if err != nil || dir != filepath.Join("/cache", "pkg", "src", "alpha", "v1_deadbeef") {
		t.Fatalf("unexpected git dir %q (%v)", dir, err)
	}
	if _, err := alpha.Dir(""); err == nil {
		t.Fatalf("git packages need a cache directory")
	}
}

func TestLockfileOnDiskFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileFileName)
	lock := NewLockfile("demo")
	lock.Generated = "2024-01-02T03:04:05Z"
	lock.Packages = append(lock.Packages, &LockedPackage{Name: "geom", Version: "1.0.0", Source: "path:/src/geom", Checksum: "abc"})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read lockfile: %v", err)
	}
	text := string(data)
	for _, want := range []string{"root: demo\n", "name: geom\n", "source: path:/src/geom\n", "checksum: abc\n"} {
		if !strings.Contains(text, want) {
			t.Fatalf("lockfile missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "tool") {
		t.Fatalf("unexpected tool metadata:\n%s", text)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if loaded.Generated != "2024-01-02T03:04:05Z" {
		t.Fatalf("generated = %q", loaded.Generated)
	}
}

func TestLoadLockfileRejectsUnknownAndDuplicateEntries(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.lock")
	writeFile(t, stale, "root: demo\ntool: units-cli 0.1.0\npackages: []")
	if _, err := LoadLockfile(stale); err == nil || !strings.Contains(err.Error(), "tool") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	dup := filepath.Join(dir, "dup.lock")
	writeFile(t, dup, `
root: demo
packages:
  - name: geom
    version: 1.0.0
    source: path:/a
    checksum: x
  - name: geom
    version: 1.0.1
    source: path:/b
    checksum: y`)
	if _, err := LoadLockfile(dup); err == nil || !strings.Contains(err.Error(), "locked twice") {
		t.Fatalf("expected duplicate package error, got %v", err)
	}
	if _, err := LoadLockfile(filepath.Join(dir, "missing.lock")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
