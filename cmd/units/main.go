package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Peperzastey/UnitsLang/pkg/driver"
	"github.com/Peperzastey/UnitsLang/pkg/interpreter"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

const cliToolVersion = "units-cli 0.1.0"

// defaultMaxCallDepth applies when the manifest does not set
// interpreter.max_call_depth.
const defaultMaxCallDepth = 10000

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	args, trace := extractFlag(args, "--trace")
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], trace)
	case "repl":
		return runRepl(args[1:], trace)
	case "deps":
		return runDeps(args[1:], trace)
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", args[0])
			printUsage()
			return 1
		}
		return runEntry(args, trace)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  units run [file.units]")
	fmt.Fprintln(os.Stderr, "  units <file.units>")
	fmt.Fprintln(os.Stderr, "  units repl")
	fmt.Fprintln(os.Stderr, "  units deps install")
	fmt.Fprintln(os.Stderr, "  units deps update [dependency ...]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  --trace    log interpreter events to stderr")
}

func runEntry(args []string, trace bool) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	var entry string
	start := "."
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve %s: %v\n", args[0], err)
			return 1
		}
		entry = abs
		start = filepath.Dir(abs)
	}

	manifest, err := loadManifestFrom(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	if entry == "" {
		if manifest == nil {
			fmt.Fprintf(os.Stderr, "units run requires a source file (%s not found)\n", driver.ManifestFileName)
			return 1
		}
		entry, err = manifest.MainPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
	}

	logger := newLogger(trace, manifest)
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	cacheDir, err := resolveUnitsHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve UNITS_HOME: %v\n", err)
		return 1
	}

	program, err := driver.NewLoader(cacheDir, &logger).Load(entry, lock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	interp := interpreter.New(program, interpreterOptions(manifest, &logger))
	code, err := interp.Execute()
	if err != nil {
		if kind, ok := runtime.KindOf(err); ok {
			logger.Debug().Str("kind", kind.String()).Str("entry", entry).Msg("program failed")
		}
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return code
}

func interpreterOptions(manifest *driver.Manifest, logger *zerolog.Logger) interpreter.Options {
	depth := defaultMaxCallDepth
	if manifest != nil && manifest.Interpreter.MaxCallDepth > 0 {
		depth = manifest.Interpreter.MaxCallDepth
	}
	return interpreter.Options{
		Stdout:       os.Stdout,
		Logger:       logger,
		MaxCallDepth: depth,
	}
}

// newLogger writes human-readable events to stderr. The level is warn unless
// --trace, the manifest or UNITS_LOG asks for more.
func newLogger(trace bool, manifest *driver.Manifest) zerolog.Logger {
	level := zerolog.WarnLevel
	if env := strings.TrimSpace(os.Getenv("UNITS_LOG")); env != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		}
	}
	if trace || (manifest != nil && manifest.Interpreter.Trace) {
		level = zerolog.TraceLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func extractFlag(args []string, flag string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, arg := range args {
		if arg == flag {
			found = true
			continue
		}
		out = append(out, arg)
	}
	return out, found
}

// loadManifestFrom returns nil without error when no manifest exists above
// start.
func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}

func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	if manifest == nil {
		return nil, nil
	}
	lock, err := driver.LoadLockfile(manifest.LockfilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if len(manifest.Dependencies) > 0 {
				return nil, fmt.Errorf("%s missing for %q; run `units deps install`", driver.LockfileFileName, manifest.Name)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	if lock.Root != manifest.Name {
		return nil, fmt.Errorf("lockfile root %q does not match manifest name %q", lock.Root, manifest.Name)
	}
	return lock, nil
}

func resolveUnitsHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("UNITS_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve UNITS_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".units"), nil
}
