package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/driver"
	"github.com/Peperzastey/UnitsLang/pkg/interpreter"
	"github.com/Peperzastey/UnitsLang/pkg/parser"
)

const (
	historyFile = "repl_history"
	promptMain  = "units> "
	promptCont  = "   ... "
	replSource  = "<repl>"
)

const replHelp = `REPL commands:
  :funcs   list known functions
  :vars    list global variables
  :help    show this help
  :quit    exit the REPL`

// replSession evaluates REPL input against one interpreter session.
type replSession struct {
	session *interpreter.Session
	out     io.Writer
	errOut  io.Writer
}

func newReplSession(base *ast.Program, opts interpreter.Options, errOut io.Writer) (*replSession, error) {
	session, err := interpreter.NewSession(base, opts)
	if err != nil {
		return nil, err
	}
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &replSession{session: session, out: out, errOut: errOut}, nil
}

// handle runs one complete input. done is set when the input ends the
// session, either by :quit or a top-level return.
func (r *replSession) handle(input string) (done bool, code int) {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return false, 0
	case strings.HasPrefix(trimmed, ":"):
		return r.command(trimmed)
	}

	mod, err := parser.ParseModule(replSource, input)
	if err != nil {
		fmt.Fprintln(r.errOut, err)
		return false, 0
	}
	res, err := r.session.Eval(mod)
	if err != nil {
		fmt.Fprintln(r.errOut, err)
		return false, 0
	}
	if res.Exited {
		fmt.Fprintf(r.out, "exit code %d\n", res.ExitCode)
		return true, res.ExitCode
	}
	return false, 0
}

func (r *replSession) command(cmd string) (bool, int) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true, 0
	case ":funcs":
		for _, fn := range r.session.Functions() {
			fmt.Fprintln(r.out, fn.String())
		}
	case ":vars":
		names, values := r.session.Globals()
		for _, name := range names {
			v := values[name]
			fmt.Fprintf(r.out, "%s %s = %s\n", name, v.Type(), v)
		}
	case ":help":
		fmt.Fprintln(r.out, replHelp)
	default:
		fmt.Fprintf(r.errOut, "unknown command %s; type :help\n", cmd)
	}
	return false, 0
}

func runRepl(args []string, trace bool) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "units repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	logger := newLogger(trace, manifest)
	home, err := resolveUnitsHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve UNITS_HOME: %v\n", err)
		return 1
	}
	base, err := replBaseProgram(manifest, home, &logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	repl, err := newReplSession(base, interpreterOptions(manifest, &logger), os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "%s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", cliToolVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if err := os.MkdirAll(home, 0o755); err != nil {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, ok := readChunk(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}
		if done, code := repl.handle(input); done {
			return code
		}
	}
}

// replBaseProgram links the locked dependencies of the surrounding project so
// their functions are callable from the prompt.
func replBaseProgram(manifest *driver.Manifest, cacheDir string, logger *zerolog.Logger) (*ast.Program, error) {
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		return nil, err
	}
	functions, err := driver.NewLoader(cacheDir, logger).Libraries(lock)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(functions, nil)
}

// readChunk keeps prompting while the accumulated input stops at an
// unexpected end of input, so blocks can span several lines.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := parser.ParseModule(replSource, src); err != nil && parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
