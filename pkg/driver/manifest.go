package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up by the CLI.
const ManifestFileName = "units.yml"

// LockfileFileName sits next to the manifest.
const LockfileFileName = "units.lock"

// Manifest represents the parsed contents of units.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Main         string
	Interpreter  InterpreterConfig
	Dependencies map[string]*DependencySpec
}

// InterpreterConfig carries execution settings for programs of the project.
type InterpreterConfig struct {
	MaxCallDepth int
	Trace        bool
}

// DependencySpec describes a library dependency: either a git repository
// pinned by rev, tag or branch, or a local path.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses units.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// ErrManifestNotFound is returned by FindManifest when no manifest exists
// in start or any of its parents.
var ErrManifestNotFound = errors.New("manifest not found")

// FindManifest walks up from start looking for units.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("manifest: no %s above %s: %w", ManifestFileName, start, ErrManifestNotFound)
		}
		dir = parent
	}
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// LockfilePath is where the lockfile for this manifest lives.
func (m *Manifest) LockfilePath() string {
	return filepath.Join(m.Dir(), LockfileFileName)
}

// MainPath resolves the main entry relative to the manifest.
func (m *Manifest) MainPath() (string, error) {
	if m.Main == "" {
		return "", fmt.Errorf("manifest: %s does not declare main", m.Path)
	}
	if filepath.IsAbs(m.Main) {
		return m.Main, nil
	}
	return filepath.Join(m.Dir(), m.Main), nil
}

// DependencyNames returns dependency names in sorted order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Interpreter.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "interpreter.max_call_depth must not be negative")
	}
	for _, name := range m.DependencyNames() {
		dep := m.Dependencies[name]
		if dep == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: must specify git or path", name))
			continue
		}
		for _, issue := range dep.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) validate() []string {
	var errs []string
	switch {
	case d.Git == "" && d.Path == "":
		errs = append(errs, "must specify git or path")
	case d.Git != "" && d.Path != "":
		errs = append(errs, "cannot specify both git and path")
	}
	pins := 0
	for _, pin := range []string{d.Rev, d.Tag, d.Branch} {
		if pin != "" {
			pins++
		}
	}
	if d.Path != "" && pins > 0 {
		errs = append(errs, "path dependencies cannot specify rev, tag, or branch")
	}
	if pins > 1 {
		errs = append(errs, "specify at most one of rev, tag, or branch")
	}
	return errs
}

type manifestFile struct {
	Name         string                     `yaml:"name"`
	Version      string                     `yaml:"version"`
	Main         string                     `yaml:"main"`
	Interpreter  interpreterYAML            `yaml:"interpreter"`
	Dependencies map[string]*dependencyYAML `yaml:"dependencies"`
}

type interpreterYAML struct {
	MaxCallDepth int  `yaml:"max_call_depth"`
	Trace        bool `yaml:"trace"`
}

type dependencyYAML struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:    path,
		Name:    sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version: strings.TrimSpace(mf.Version),
		Main:    strings.TrimSpace(mf.Main),
		Interpreter: InterpreterConfig{
			MaxCallDepth: mf.Interpreter.MaxCallDepth,
			Trace:        mf.Interpreter.Trace,
		},
		Dependencies: make(map[string]*DependencySpec, len(mf.Dependencies)),
	}
	for name, dep := range mf.Dependencies {
		key := sanitizeSegment(strings.TrimSpace(name))
		if dep == nil {
			result.Dependencies[key] = nil
			continue
		}
		result.Dependencies[key] = &DependencySpec{
			Git:    strings.TrimSpace(dep.Git),
			Rev:    strings.TrimSpace(dep.Rev),
			Tag:    strings.TrimSpace(dep.Tag),
			Branch: strings.TrimSpace(dep.Branch),
			Path:   strings.TrimSpace(dep.Path),
		}
	}
	return result
}

// sanitizeSegment maps a package name onto a safe identifier segment.
func sanitizeSegment(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// sanitizePathSegment keeps a version string usable as a directory name.
func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "head"
	}
	return b.String()
}
