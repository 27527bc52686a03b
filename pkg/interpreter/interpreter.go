package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

// Options configures an Interpreter. The zero value writes to os.Stdout,
// logs nothing and does not limit call depth.
type Options struct {
	Stdout       io.Writer
	Logger       *zerolog.Logger
	MaxCallDepth int
}

// Interpreter executes a linked program. It is single-threaded; create one
// per run.
type Interpreter struct {
	program  *ast.Program
	stack    *runtime.CallStack
	out      io.Writer
	log      zerolog.Logger
	maxDepth int
}

// New returns an interpreter for program.
func New(program *ast.Program, opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Interpreter{
		program:  program,
		stack:    runtime.NewCallStack(),
		out:      out,
		log:      logger,
		maxDepth: opts.MaxCallDepth,
	}
}

// Execute runs the top-level block in the main call context and returns the
// process exit code.
func (i *Interpreter) Execute() (int, error) {
	i.stack = runtime.NewCallStack()
	i.NewCallContext()
	defer i.DeleteCallContext()

	res, err := i.executeBlock(i.program.Body)
	if err != nil {
		return 0, err
	}
	code, err := exitCode(res)
	if err != nil {
		return 0, err
	}
	i.log.Trace().Int("exit_code", code).Msg("program finished")
	return code, nil
}

// exitCode maps the top-level result to a process exit code.
func exitCode(res Result) (int, error) {
	switch res.Kind {
	case ResultNormal:
		return 0, nil
	case ResultBreak, ResultContinue:
		return 0, runtime.NewError(runtime.ErrJumpOutsideLoop, "%s outside of a loop", res.Kind)
	case ResultReturn:
		if res.Value == nil {
			return 0, nil
		}
		n, ok := runtime.AsNumber(res.Value)
		if !ok || !n.Unit.IsScalar() {
			return 0, runtime.NewError(runtime.ErrTypeMismatch, "program must return a scalar number, got %s", res.Value.Type())
		}
		return int(n.Val), nil
	default:
		return 0, fmt.Errorf("unknown result kind %d", res.Kind)
	}
}

// Program returns the program being executed.
func (i *Interpreter) Program() *ast.Program {
	return i.program
}

// NewCallContext pushes a call context. The first one is the main context.
func (i *Interpreter) NewCallContext() {
	i.stack.PushContext()
	i.log.Trace().Int("depth", i.stack.Depth()).Msg("push call context")
}

// DeleteCallContext pops the current call context.
func (i *Interpreter) DeleteCallContext() {
	i.log.Trace().Int("depth", i.stack.Depth()).Msg("pop call context")
	i.stack.PopContext()
}

// NewScope opens a scope in the current call context.
func (i *Interpreter) NewScope() {
	i.stack.PushScope()
}

// DeleteScope closes the innermost scope.
func (i *Interpreter) DeleteScope() {
	i.stack.PopScope()
}

// AddVariable binds name in the innermost scope.
func (i *Interpreter) AddVariable(name string, value runtime.Value) error {
	return i.stack.Define(name, value)
}

// AssignVariable updates the nearest binding of name, falling back to the
// global scope from inside a function.
func (i *Interpreter) AssignVariable(name string, value runtime.Value) error {
	return i.stack.Assign(name, value)
}

// GetVariable looks name up without failing.
func (i *Interpreter) GetVariable(name string) (runtime.Value, bool) {
	return i.stack.Lookup(name)
}

// GetVariableOrError looks name up and fails with VariableNotDefined.
func (i *Interpreter) GetVariableOrError(name string) (runtime.Value, error) {
	return i.stack.Get(name)
}

// LookupFunction resolves a function by name.
func (i *Interpreter) LookupFunction(name string) (*ast.FunctionDefinition, error) {
	fn, ok := i.program.Function(name)
	if !ok {
		return nil, runtime.NewError(runtime.ErrFunctionNotDefined, "function '%s' is not defined", name)
	}
	return fn, nil
}

// EmitLine writes text followed by a newline to the output sink.
func (i *Interpreter) EmitLine(text string) error {
	if _, err := io.WriteString(i.out, text+"\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
