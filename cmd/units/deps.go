package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Peperzastey/UnitsLang/pkg/driver"
)

func runDeps(args []string, trace bool) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "units deps requires a subcommand (install, update)")
		return 1
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "units deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return 1
		}
		return runDepsCommand(nil, false, trace)
	case "update":
		return runDepsCommand(args[1:], true, trace)
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

func runDepsCommand(targets []string, update, trace bool) int {
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate %s: %v\n", driver.ManifestFileName, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return 1
	}
	cacheDir, err := resolveUnitsHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve UNITS_HOME: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Root package: %s\n", manifest.Name)
	fmt.Fprintf(os.Stdout, "Dependencies: %d\n", len(manifest.Dependencies))
	fmt.Fprintf(os.Stdout, "Cache directory: %s\n", cacheDir)

	lockPath := manifest.LockfilePath()
	existing, err := driver.LoadLockfile(lockPath)
	switch {
	case err == nil:
		if existing.Root != manifest.Name {
			fmt.Fprintf(os.Stderr, "lockfile root %q does not match manifest name %q\n", existing.Root, manifest.Name)
			return 1
		}
	case errors.Is(err, os.ErrNotExist):
		existing = nil
	default:
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return 1
	}

	logger := newLogger(trace, manifest)
	installer := driver.NewInstaller(manifest, cacheDir, &logger)
	var (
		lock    *driver.Lockfile
		changed bool
	)
	if update {
		lock, changed, err = installer.Update(existing, targets...)
	} else {
		lock, changed, err = installer.Install(existing)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve dependencies: %v\n", err)
		return 1
	}
	for _, pkg := range lock.Packages {
		fmt.Fprintf(os.Stdout, "  %s %s (%s)\n", pkg.Name, pkg.Version, pkg.Source)
	}

	if !changed && existing != nil {
		fmt.Fprintf(os.Stdout, "%s already up to date: %s\n", driver.LockfileFileName, lockPath)
		return 0
	}
	action := "Updated"
	if existing == nil {
		action = "Created"
	}
	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
		return 1
	}
	logger.Debug().Str("path", lock.Path).Int("packages", len(lock.Packages)).Msg("lockfile written")
	fmt.Fprintf(os.Stdout, "%s %s: %s\n", action, driver.LockfileFileName, lock.Path)
	return 0
}
