package interpreter

import (
	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

// Session executes a program one chunk at a time, keeping the main context
// and its global scope open between chunks. Used by the REPL.
type Session struct {
	interp *Interpreter
	done   bool
}

// NewSession starts a session whose function table initially holds print and
// any functions of base (which may be nil).
func NewSession(base *ast.Program, opts Options) (*Session, error) {
	if base == nil {
		var err error
		base, err = ast.NewProgram(nil, nil)
		if err != nil {
			return nil, err
		}
	}
	interp := New(base, opts)
	interp.NewCallContext()
	interp.NewScope()
	return &Session{interp: interp}, nil
}

// ChunkResult describes the outcome of one Eval call.
type ChunkResult struct {
	// Exited is set when the chunk executed a top-level return.
	Exited   bool
	ExitCode int
}

// Eval links the module's functions into the session and runs its
// statements in the global scope. A failing chunk leaves earlier bindings in
// place.
func (s *Session) Eval(mod *ast.Module) (ChunkResult, error) {
	if len(mod.Functions) > 0 {
		program, err := s.interp.program.WithFunctions(mod.Functions)
		if err != nil {
			return ChunkResult{}, err
		}
		s.interp.program = program
	}
	res, err := s.interp.executeStatements(mod.Body)
	if err != nil {
		return ChunkResult{}, err
	}
	if res.Kind == ResultNormal {
		return ChunkResult{}, nil
	}
	code, err := exitCode(res)
	if err != nil {
		return ChunkResult{}, err
	}
	s.done = true
	return ChunkResult{Exited: true, ExitCode: code}, nil
}

// Done reports whether a top-level return ended the session.
func (s *Session) Done() bool {
	return s.done
}

// Functions lists the functions currently known to the session.
func (s *Session) Functions() []*ast.FunctionDefinition {
	return s.interp.program.Functions()
}

// Globals returns the global bindings ordered by name.
func (s *Session) Globals() ([]string, map[string]runtime.Value) {
	global, ok := s.interp.stack.Global()
	if !ok {
		return nil, nil
	}
	out := make(map[string]runtime.Value, len(global))
	for k, v := range global {
		out[k] = v
	}
	return global.Keys(), out
}
