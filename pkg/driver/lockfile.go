package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Lockfile is the decoded units.lock. Root is the sanitized manifest name
// the lock was resolved for.
type Lockfile struct {
	Path      string           `yaml:"-"`
	Root      string           `yaml:"root"`
	Generated string           `yaml:"generated,omitempty"`
	Packages  []*LockedPackage `yaml:"packages"`
}

// LockedPackage pins one dependency. Source is "path:<dir>" or
// "git+<url>@<commit>"; Checksum covers the package's source files.
type LockedPackage struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Source   string `yaml:"source"`
	Checksum string `yaml:"checksum"`
}

const (
	pathSourcePrefix = "path:"
	gitSourcePrefix  = "git+"
)

// IsPath reports whether the package was resolved from a local directory.
func (p *LockedPackage) IsPath() bool {
	return strings.HasPrefix(p.Source, pathSourcePrefix)
}

// Dir locates the package's files: the recorded directory for path packages,
// the checkout under cacheDir for git packages.
func (p *LockedPackage) Dir(cacheDir string) (string, error) {
	switch {
	case p.IsPath():
		return strings.TrimPrefix(p.Source, pathSourcePrefix), nil
	case strings.HasPrefix(p.Source, gitSourcePrefix):
		if cacheDir == "" {
			return "", fmt.Errorf("lockfile: package %s needs a cache directory", p.Name)
		}
		return gitCheckoutDir(cacheDir, p.Name, p.Version), nil
	default:
		return "", fmt.Errorf("lockfile: package %s has unsupported source %q", p.Name, p.Source)
	}
}

// NewLockfile starts an empty lock for the project named root.
func NewLockfile(root string) *Lockfile {
	return &Lockfile{
		Root:      sanitizeSegment(root),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Packages:  []*LockedPackage{},
	}
}

// Find returns the locked package called name.
func (l *Lockfile) Find(name string) (*LockedPackage, bool) {
	if l == nil {
		return nil, false
	}
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return nil, false
}

// LoadLockfile reads a lockfile. A missing file surfaces as an
// os.ErrNotExist error.
func LoadLockfile(path string) (*Lockfile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	var lock Lockfile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&lock); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}
	if err := lock.clean(); err != nil {
		return nil, fmt.Errorf("lockfile: %s: %w", abs, err)
	}
	lock.Path = abs
	return &lock, nil
}

// WriteLockfile stores lock at path, or at lock.Path when path is empty.
func WriteLockfile(lock *Lockfile, path string) error {
	if path == "" {
		path = lock.Path
	}
	if path == "" {
		return errors.New("lockfile: missing path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	if lock.Generated == "" {
		lock.Generated = time.Now().UTC().Format(time.RFC3339)
	}
	if err := lock.clean(); err != nil {
		return fmt.Errorf("lockfile: %s: %w", abs, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	lock.Path = abs
	return nil
}

// clean sanitizes names, drops empty entries and orders packages by name.
// Two entries for the same package are an error.
func (l *Lockfile) clean() error {
	l.Root = sanitizeSegment(l.Root)
	packages := make([]*LockedPackage, 0, len(l.Packages))
	seen := make(map[string]struct{}, len(l.Packages))
	for _, pkg := range l.Packages {
		if pkg == nil {
			continue
		}
		pkg.Name = sanitizeSegment(pkg.Name)
		if _, dup := seen[pkg.Name]; dup {
			return fmt.Errorf("package %s is locked twice", pkg.Name)
		}
		seen[pkg.Name] = struct{}{}
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
	l.Packages = packages
	return nil
}
