package driver

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/parser"
)

// Loader parses an entry file together with the library files of every
// locked package and links them into one program.
type Loader struct {
	cacheDir string
	log      zerolog.Logger
}

func NewLoader(cacheDir string, logger *zerolog.Logger) *Loader {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &Loader{cacheDir: cacheDir, log: log}
}

// Load builds the program for entry. lock may be nil for projects without
// dependencies.
func (l *Loader) Load(entry string, lock *Lockfile) (*ast.Program, error) {
	functions, err := l.Libraries(lock)
	if err != nil {
		return nil, err
	}
	mod, err := parseFile(entry)
	if err != nil {
		return nil, err
	}
	functions = append(functions, mod.Functions...)
	program, err := ast.NewProgram(functions, ast.NewBlock(mod.Body))
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", entry, err)
	}
	return program, nil
}

// Libraries parses the function definitions of every locked package.
func (l *Loader) Libraries(lock *Lockfile) ([]*ast.FunctionDefinition, error) {
	if lock == nil {
		return nil, nil
	}
	var functions []*ast.FunctionDefinition
	for _, pkg := range lock.Packages {
		libFunctions, err := l.loadPackage(pkg)
		if err != nil {
			return nil, err
		}
		functions = append(functions, libFunctions...)
	}
	return functions, nil
}

func (l *Loader) loadPackage(pkg *LockedPackage) ([]*ast.FunctionDefinition, error) {
	dir, err := pkg.Dir(l.cacheDir)
	if err != nil {
		return nil, err
	}
	if !pkg.IsPath() && pkg.Checksum != "" {
		sum, err := dirChecksum(dir)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w (run 'units deps install')", pkg.Name, err)
		}
		if sum != pkg.Checksum {
			return nil, fmt.Errorf("package %s: checksum mismatch in %s (run 'units deps install')", pkg.Name, dir)
		}
	}
	files, err := sourceFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", pkg.Name, err)
	}
	var functions []*ast.FunctionDefinition
	for _, file := range files {
		mod, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		if len(mod.Body) > 0 {
			return nil, fmt.Errorf("package %s: library file %s contains top-level instructions", pkg.Name, file)
		}
		functions = append(functions, mod.Functions...)
	}
	l.log.Debug().Str("package", pkg.Name).Int("files", len(files)).Int("functions", len(functions)).Msg("package loaded")
	return functions, nil
}

func parseFile(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.ParseModule(path, string(data))
}
