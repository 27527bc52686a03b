package interpreter

import "github.com/Peperzastey/UnitsLang/pkg/runtime"

// ResultKind is the control-flow outcome of executing a statement.
type ResultKind int

const (
	ResultNormal ResultKind = iota
	ResultReturn
	ResultBreak
	ResultContinue
)

func (k ResultKind) String() string {
	switch k {
	case ResultNormal:
		return "normal"
	case ResultReturn:
		return "return"
	case ResultBreak:
		return "break"
	case ResultContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// Result carries the control-flow outcome and, for a return, the optional
// returned value.
type Result struct {
	Kind  ResultKind
	Value runtime.Value
}

var normalResult = Result{Kind: ResultNormal}

func returnResult(value runtime.Value) Result {
	return Result{Kind: ResultReturn, Value: value}
}
