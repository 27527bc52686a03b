package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// SourceFileExt is the extension of language source files.
const SourceFileExt = ".units"

func gitCheckoutDir(cacheDir, name, version string) string {
	return filepath.Join(cacheDir, "pkg", "src", sanitizeSegment(name), sanitizePathSegment(version))
}

type gitFetcher struct {
	cacheDir string
}

func (g *gitFetcher) Fetch(name string, spec *DependencySpec) (*LockedPackage, error) {
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, fmt.Errorf("dependency %q: git URL required", name)
	}
	baseDir := filepath.Join(g.cacheDir, "pkg", "src", sanitizeSegment(name))
	version, commit, err := ensureGitCheckout(baseDir, url, spec)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: %w", name, err)
	}
	checksum, err := dirChecksum(filepath.Join(baseDir, sanitizePathSegment(version)))
	if err != nil {
		return nil, fmt.Errorf("dependency %q: checksum: %w", name, err)
	}
	return &LockedPackage{
		Name:     sanitizeSegment(name),
		Version:  version,
		Source:   fmt.Sprintf("%s%s@%s", gitSourcePrefix, url, commit),
		Checksum: checksum,
	}, nil
}

// ensureGitCheckout clones url, resolves the pinned revision and moves the
// checked-out tree to baseDir/<version>. An existing checkout is reused.
func ensureGitCheckout(baseDir, url string, spec *DependencySpec) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	revision, descriptor := gitRevisionFromSpec(spec)

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	version := gitPinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return version, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return version, hash.String(), nil
}

func gitPinnedVersion(descriptor, commit string) string {
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

// gitRevisionFromSpec picks rev, then tag, then branch; HEAD otherwise.
func gitRevisionFromSpec(spec *DependencySpec) (plumbing.Revision, string) {
	switch {
	case spec.Rev != "":
		return plumbing.Revision(spec.Rev), spec.Rev
	case spec.Tag != "":
		return plumbing.Revision("refs/tags/" + spec.Tag), spec.Tag
	case spec.Branch != "":
		return plumbing.Revision("refs/heads/" + spec.Branch), spec.Branch
	default:
		return plumbing.Revision(plumbing.HEAD), ""
	}
}

type pathFetcher struct {
	root string
}

func (p *pathFetcher) Fetch(name string, spec *DependencySpec) (*LockedPackage, error) {
	dir := spec.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.root, dir)
	}
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dependency %q: %s is not a directory", name, dir)
	}
	version := "0.0.0"
	if manifest, err := LoadManifest(filepath.Join(dir, ManifestFileName)); err == nil && manifest.Version != "" {
		version = manifest.Version
	}
	checksum, err := dirChecksum(dir)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: checksum: %w", name, err)
	}
	return &LockedPackage{
		Name:     sanitizeSegment(name),
		Version:  version,
		Source:   pathSourcePrefix + dir,
		Checksum: checksum,
	}, nil
}

// dirChecksum hashes the names and contents of the source files under path.
func dirChecksum(path string) (string, error) {
	files, err := sourceFiles(path)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(path, file)
		if err != nil {
			return "", err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// sourceFiles lists .units files under dir in lexical order, skipping
// hidden directories such as .git.
func sourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) == SourceFileExt {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}
