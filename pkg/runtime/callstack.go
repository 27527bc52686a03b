package runtime

import (
	"sort"
)

// Scope maps variable names to values within one block.
type Scope map[string]Value

// Keys returns the bindings in sorted order.
func (s Scope) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CallContext is the scope stack of one function activation (innermost last).
type CallContext struct {
	scopes []Scope
}

// Depth is the number of open scopes.
func (c *CallContext) Depth() int {
	return len(c.scopes)
}

func (c *CallContext) lookup(name string) (Scope, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			return c.scopes[i], true
		}
	}
	return nil, false
}

// CallStack holds the call contexts of a run. The bottom context is main,
// and its first scope is the global scope.
type CallStack struct {
	contexts []*CallContext
}

func NewCallStack() *CallStack {
	return &CallStack{}
}

// PushContext opens a call context. The main context starts without scopes;
// every later context gets one scope for its parameters.
func (s *CallStack) PushContext() {
	ctx := &CallContext{}
	if len(s.contexts) > 0 {
		ctx.scopes = append(ctx.scopes, Scope{})
	}
	s.contexts = append(s.contexts, ctx)
}

// PopContext removes the innermost call context.
func (s *CallStack) PopContext() {
	if len(s.contexts) == 0 {
		panic("runtime: PopContext on empty call stack")
	}
	s.contexts[len(s.contexts)-1] = nil
	s.contexts = s.contexts[:len(s.contexts)-1]
}

// PushScope opens a scope in the current call context.
func (s *CallStack) PushScope() {
	ctx := s.current()
	ctx.scopes = append(ctx.scopes, Scope{})
}

// PopScope closes the innermost scope of the current call context.
func (s *CallStack) PopScope() {
	ctx := s.current()
	if len(ctx.scopes) == 0 {
		panic("runtime: PopScope with no open scope")
	}
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
}

// Depth counts open call contexts, main included.
func (s *CallStack) Depth() int {
	return len(s.contexts)
}

// IsMain reports whether the current context is the main one.
func (s *CallStack) IsMain() bool {
	return len(s.contexts) == 1
}

// ScopeDepth counts scopes open in the current call context.
func (s *CallStack) ScopeDepth() int {
	if len(s.contexts) == 0 {
		return 0
	}
	return s.current().Depth()
}

// Global returns the main context's first scope.
func (s *CallStack) Global() (Scope, bool) {
	if len(s.contexts) == 0 || len(s.contexts[0].scopes) == 0 {
		return nil, false
	}
	return s.contexts[0].scopes[0], true
}

// Define binds name in the innermost scope. Shadowing an outer binding is
// allowed; redefining within the same scope is not.
func (s *CallStack) Define(name string, value Value) error {
	ctx := s.current()
	if len(ctx.scopes) == 0 {
		return NewError(ErrArgument, "no scope open to define variable '%s'", name)
	}
	inner := ctx.scopes[len(ctx.scopes)-1]
	if _, exists := inner[name]; exists {
		return NewError(ErrVariableAlreadyDefined, "variable '%s' is already defined", name)
	}
	inner[name] = value
	return nil
}

// Assign updates the nearest existing binding of name.
func (s *CallStack) Assign(name string, value Value) error {
	scope, ok := s.resolve(name)
	if !ok {
		return NewError(ErrVariableNotDefined, "variable '%s' is not defined", name)
	}
	scope[name] = value
	return nil
}

// Lookup searches the current context innermost to outermost, then the
// global scope when the current context is not main.
func (s *CallStack) Lookup(name string) (Value, bool) {
	scope, ok := s.resolve(name)
	if !ok {
		return nil, false
	}
	return scope[name], true
}

// Get is Lookup that fails with VariableNotDefined.
func (s *CallStack) Get(name string) (Value, error) {
	if v, ok := s.Lookup(name); ok {
		return v, nil
	}
	return nil, NewError(ErrVariableNotDefined, "variable '%s' is not defined", name)
}

func (s *CallStack) resolve(name string) (Scope, bool) {
	if len(s.contexts) == 0 {
		return nil, false
	}
	if scope, ok := s.current().lookup(name); ok {
		return scope, true
	}
	if s.IsMain() {
		return nil, false
	}
	global, ok := s.Global()
	if !ok {
		return nil, false
	}
	if _, ok := global[name]; ok {
		return global, true
	}
	return nil, false
}

func (s *CallStack) current() *CallContext {
	if len(s.contexts) == 0 {
		panic("runtime: no call context")
	}
	return s.contexts[len(s.contexts)-1]
}
