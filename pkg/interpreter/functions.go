package interpreter

import (
	"github.com/Peperzastey/UnitsLang/pkg/ast"
	"github.com/Peperzastey/UnitsLang/pkg/runtime"
)

// callFunction resolves and invokes a call. The returned value is nil for
// functions that return nothing.
func (i *Interpreter) callFunction(call *ast.FunctionCall) (runtime.Value, error) {
	fn, err := i.LookupFunction(call.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := i.evaluateExpression(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return i.invokeFunction(fn, args)
}

func (i *Interpreter) invokeFunction(fn *ast.FunctionDefinition, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, runtime.NewError(runtime.ErrFunctionCall, "function '%s' expects %d arguments, got %d",
			fn.Name, len(fn.Params), len(args))
	}
	if i.maxDepth > 0 && i.stack.Depth() > i.maxDepth {
		return nil, runtime.NewError(runtime.ErrCallDepthExceeded, "call depth limit %d exceeded calling '%s'", i.maxDepth, fn.Name)
	}
	i.log.Trace().Str("function", fn.Name).Int("args", len(args)).Msg("invoke")

	i.NewCallContext()
	defer i.DeleteCallContext()

	for idx, param := range fn.Params {
		arg := args[idx]
		if !param.Type.Equal(arg.Type()) {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "argument '%s' of function '%s' expects %s, got %s",
				param.Name, fn.Name, param.Type, arg.Type())
		}
		if err := i.AddVariable(param.Name, arg); err != nil {
			return nil, err
		}
	}

	res, err := i.executeBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	switch res.Kind {
	case ResultBreak, ResultContinue:
		return nil, runtime.NewError(runtime.ErrJumpOutsideLoop, "%s outside of a loop in function '%s'", res.Kind, fn.Name)
	case ResultNormal:
		if !fn.ReturnType.IsVoid() {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "function '%s' must return a value of type %s", fn.Name, fn.ReturnType)
		}
		return nil, nil
	}
	if fn.ReturnType.IsVoid() {
		if res.Value != nil {
			return nil, runtime.NewError(runtime.ErrTypeMismatch, "function '%s' returns no value, got %s", fn.Name, res.Value.Type())
		}
		return nil, nil
	}
	if res.Value == nil {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "function '%s' must return a value of type %s", fn.Name, fn.ReturnType)
	}
	if !fn.ReturnType.Equal(res.Value.Type()) {
		return nil, runtime.NewError(runtime.ErrTypeMismatch, "function '%s' returns %s, got %s", fn.Name, fn.ReturnType, res.Value.Type())
	}
	return res.Value, nil
}
