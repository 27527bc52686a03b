package driver

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Installer resolves manifest dependencies into locked packages.
type Installer struct {
	manifest *Manifest
	git      *gitFetcher
	path     *pathFetcher
	log      zerolog.Logger
}

// NewInstaller prepares an installer that caches git checkouts below
// cacheDir.
func NewInstaller(manifest *Manifest, cacheDir string, logger *zerolog.Logger) *Installer {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &Installer{
		manifest: manifest,
		git:      &gitFetcher{cacheDir: cacheDir},
		path:     &pathFetcher{root: manifest.Dir()},
		log:      log,
	}
}

// Install resolves every dependency, reusing entries of existing that still
// satisfy the manifest. It returns the new lockfile and whether it differs
// from existing.
func (in *Installer) Install(existing *Lockfile) (*Lockfile, bool, error) {
	lock := NewLockfile(in.manifest.Name)
	if existing != nil {
		lock.Path = existing.Path
	}
	changed := existing == nil
	for _, name := range in.manifest.DependencyNames() {
		spec := in.manifest.Dependencies[name]
		if prev, ok := existing.Find(name); ok && in.satisfies(prev, spec) {
			in.log.Debug().Str("package", name).Str("version", prev.Version).Msg("dependency up to date")
			lock.Packages = append(lock.Packages, prev)
			continue
		}
		pkg, err := in.fetch(name, spec)
		if err != nil {
			return nil, false, err
		}
		in.log.Debug().Str("package", name).Str("source", pkg.Source).Msg("dependency resolved")
		lock.Packages = append(lock.Packages, pkg)
		changed = true
	}
	if existing != nil && len(existing.Packages) != len(lock.Packages) {
		changed = true
	}
	if !changed && existing != nil {
		lock.Generated = existing.Generated
	}
	return lock, changed, nil
}

// Update drops the named packages (all when names is empty) from existing
// and re-resolves them.
func (in *Installer) Update(existing *Lockfile, names ...string) (*Lockfile, bool, error) {
	if existing == nil {
		return in.Install(nil)
	}
	drop := make(map[string]struct{}, len(names))
	if len(names) == 0 {
		names = in.manifest.DependencyNames()
	}
	for _, name := range names {
		key := sanitizeSegment(name)
		if _, ok := in.manifest.Dependencies[key]; !ok {
			return nil, false, fmt.Errorf("deps: %s is not a dependency of %s", name, in.manifest.Name)
		}
		drop[key] = struct{}{}
	}
	kept := &Lockfile{Path: existing.Path, Root: existing.Root, Generated: existing.Generated}
	for _, pkg := range existing.Packages {
		if _, ok := drop[pkg.Name]; !ok {
			kept.Packages = append(kept.Packages, pkg)
		}
	}
	lock, _, err := in.Install(kept)
	if err != nil {
		return nil, false, err
	}
	return lock, !sameLockedPackages(existing, lock), nil
}

func (in *Installer) fetch(name string, spec *DependencySpec) (*LockedPackage, error) {
	if spec.Path != "" {
		return in.path.Fetch(name, spec)
	}
	return in.git.Fetch(name, spec)
}

// satisfies reports whether a locked package still matches spec and its
// files are present.
func (in *Installer) satisfies(pkg *LockedPackage, spec *DependencySpec) bool {
	if spec.Path != "" {
		want, err := in.path.Fetch(pkg.Name, spec)
		return err == nil && want.Source == pkg.Source && want.Checksum == pkg.Checksum
	}
	if !strings.HasPrefix(pkg.Source, gitSourcePrefix+spec.Git+"@") {
		return false
	}
	_, descriptor := gitRevisionFromSpec(spec)
	commit := strings.TrimPrefix(pkg.Source, gitSourcePrefix+spec.Git+"@")
	if pkg.Version != gitPinnedVersion(descriptor, commit) {
		return false
	}
	dir, err := pkg.Dir(in.git.cacheDir)
	if err != nil {
		return false
	}
	_, err = os.Stat(dir)
	return err == nil
}

func sameLockedPackages(a, b *Lockfile) bool {
	if len(a.Packages) != len(b.Packages) {
		return false
	}
	for _, pkg := range a.Packages {
		other, ok := b.Find(pkg.Name)
		if !ok || *other != *pkg {
			return false
		}
	}
	return true
}
