// Package interp implements LJ's statement interpreter and driver:
// the recursive statement executor that drives the evaluator and
// threads StatementResult through control flow.
package interp

import (
	"fmt"

	"github.com/0cch/LJ/internal/ast"
	lerrors "github.com/0cch/LJ/internal/errors"
	"github.com/0cch/LJ/internal/evaluator"
	"github.com/0cch/LJ/internal/runtime"
	"github.com/0cch/LJ/internal/token"
)

// Interpreter owns the function table, the environment, and the
// evaluator, and executes statements against them.
type Interpreter struct {
	env *runtime.Environment
	ev *evaluator.Evaluator
	functions map[string]*ast.FunctionDefinition
}

// New creates an Interpreter with a fresh global Environment.
func New() *Interpreter {
	env := runtime.New()
	it := &Interpreter{env: env, functions: make(map[string]*ast.FunctionDefinition)}
	it.ev = evaluator.New(env, it)
	return it
}

// Env exposes the Environment for diagnostics and tests (e.g.
// asserting final global values).
func (it *Interpreter) Env() *runtime.Environment { return it.env }

// AddFunction registers a function definition: the parser appends
// definitions in source order, but lookup picks the first match, so a
// later definition of an already-registered name is silently ignored.
func (it *Interpreter) AddFunction(def *ast.FunctionDefinition) {
	if _, exists := it.functions[def.Name]; exists {
		return
	}
	it.functions[def.Name] = def
}

// CallFunction implements evaluator.CallTarget's calling convention.
// It is the single re-entry point from expression
// evaluation back into statement execution.
func (it *Interpreter) CallFunction(pos token.Position, name string, args []runtime.Value) runtime.Value {
	fn, ok := it.functions[name]
	if !ok {
		panic(&evaluator.FatalError{Kind: lerrors.KindUnknownFunction, Pos: pos, Message: fmt.Sprintf("call to unknown function %q", name)})
	}
	if len(args) != len(fn.Params) {
		panic(&evaluator.FatalError{
			Kind: lerrors.KindArityMismatch,
			Pos: pos,
			Message: fmt.Sprintf("function %q expects %d argument(s), got %d", name, len(fn.Params), len(args)),
		})
	}

	it.env.PushFrame()
	defer it.env.PopFrame()

	for i, param := range fn.Params {
		it.env.DefineParam(param, args[i])
	}

	result := it.execList(fn.Body.List)
	switch result.Kind {
	case Return:
		return result.Value
	case Normal:
		return runtime.NullValue
	default:
		panic(&evaluator.FatalError{
			Kind: lerrors.KindMisplacedBreakContinue,
			Pos: fn.Body.Pos(),
			Message: fmt.Sprintf("%s escaped the body of function %q", controlFlowName(result.Kind), name),
		})
	}
}

func controlFlowName(k Kind) string {
	switch k {
	case Break:
		return "break"
	case Continue:
		return "continue"
	default:
		return "control flow"
	}
}

// Run executes stmts at top level, with an empty local-frame stack.
// A Return/Break/Continue escaping to top level is a program error.
func (it *Interpreter) Run(stmts ast.StatementList) {
	result := it.execList(stmts)
	if result.Kind != Normal {
		panic(&evaluator.FatalError{
			Kind: lerrors.KindMisplacedBreakContinue,
			Message: fmt.Sprintf("%s outside of any enclosing loop or function", controlFlowName(result.Kind)),
		})
	}
}

// execList executes a StatementList top to bottom, stopping at and
// propagating the first non-Normal result.
func (it *Interpreter) execList(stmts ast.StatementList) StatementResult {
	for _, s := range stmts {
		result := it.exec(s)
		if result.Kind != Normal {
			return result
		}
	}
	return normalResult
}

func (it *Interpreter) exec(stmt ast.Statement) StatementResult {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		it.ev.Eval(n.Expr)
		it.ev.DiscardTop()
		return normalResult
	case *ast.GlobalStmt:
		return it.execGlobal(n)
	case *ast.IfStmt:
		return it.execIf(n)
	case *ast.WhileStmt:
		return it.execWhile(n)
	case *ast.ForStmt:
		return it.execFor(n)
	case *ast.ReturnStmt:
		return it.execReturn(n)
	case *ast.BreakStmt:
		return breakResult
	case *ast.ContinueStmt:
		return continueResult
	default:
		panic(&evaluator.FatalError{Kind: lerrors.KindTypeMismatch, Pos: stmt.Pos(), Message: fmt.Sprintf("internal error: unhandled statement %T", stmt)})
	}
}

func (it *Interpreter) execGlobal(n *ast.GlobalStmt) StatementResult {
	if it.env.Depth() == 0 {
		panic(&evaluator.FatalError{Kind: lerrors.KindInvalidGlobal, Pos: n.Pos(), Message: "'global' is not valid at top level"})
	}
	for _, name := range n.Names {
		if !it.env.HasGlobal(name) {
			panic(&evaluator.FatalError{Kind: lerrors.KindInvalidGlobal, Pos: n.Pos(), Message: fmt.Sprintf("'global %s': no such global variable", name)})
		}
		it.env.DeclareGlobal(name)
	}
	return normalResult
}

func (it *Interpreter) mustBool(expr ast.Expression, what string) bool {
	v := it.ev.Eval(expr)
	it.ev.DiscardTop()
	b, ok := v.(runtime.Bool)
	if !ok {
		panic(&evaluator.FatalError{Kind: lerrors.KindNonBooleanCondition, Pos: expr.Pos(), Message: fmt.Sprintf("%s must evaluate to Bool, got %s", what, v.Tag())})
	}
	return bool(b)
}

func (it *Interpreter) execIf(n *ast.IfStmt) StatementResult {
	if it.mustBool(n.Cond, "if condition") {
		return it.execList(n.Then.List)
	}
	for _, ei := range n.ElseIfs {
		if it.mustBool(ei.Cond, "elseif condition") {
			return it.execList(ei.Block.List)
		}
	}
	if n.Else != nil {
		return it.execList(n.Else.List)
	}
	return normalResult
}

func (it *Interpreter) execWhile(n *ast.WhileStmt) StatementResult {
	for it.mustBool(n.Cond, "while condition") {
		result := it.execList(n.Body.List)
		switch result.Kind {
		case Return:
			return result
		case Break:
			return normalResult
		}
		// Normal or Continue: loop again.
	}
	return normalResult
}

func (it *Interpreter) execFor(n *ast.ForStmt) StatementResult {
	if n.Init != nil {
		it.ev.Eval(n.Init)
		it.ev.DiscardTop()
	}
	for {
		if n.Cond != nil && !it.mustBool(n.Cond, "for condition") {
			return normalResult
		}
		result := it.execList(n.Body.List)
		switch result.Kind {
		case Return:
			return result
		case Break:
			return normalResult
		}
		if n.Post != nil {
			it.ev.Eval(n.Post)
			it.ev.DiscardTop()
		}
	}
}

func (it *Interpreter) execReturn(n *ast.ReturnStmt) StatementResult {
	if n.Value == nil {
		return returnResult(runtime.NullValue)
	}
	v := it.ev.Eval(n.Value)
	it.ev.DiscardTop()
	return returnResult(v)
}
