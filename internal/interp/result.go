package interp

import "github.com/0cch/LJ/internal/runtime"

// Kind discriminates the variants of StatementResult.
type Kind int

const (
	Normal Kind = iota
	Return
	Break
	Continue
)

// StatementResult is the tagged continuation every statement hands
// back to its enclosing block, so return/break/continue propagate
// correctly through nested control flow.
type StatementResult struct {
	Kind Kind
	Value runtime.Value // only meaningful when Kind == Return
}

var normalResult = StatementResult{Kind: Normal}

func returnResult(v runtime.Value) StatementResult { return StatementResult{Kind: Return, Value: v} }

var breakResult = StatementResult{Kind: Break}
var continueResult = StatementResult{Kind: Continue}
