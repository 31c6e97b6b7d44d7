// Package evaluator implements LJ's expression evaluator: a pure-recursive tree walk that pushes exactly one
// Value per expression onto a value stack, reading and writing the
// environment for identifier loads, assignments, and calls.
package evaluator

import (
	"fmt"

	"github.com/0cch/LJ/internal/ast"
	lerrors "github.com/0cch/LJ/internal/errors"
	"github.com/0cch/LJ/internal/runtime"
	"github.com/0cch/LJ/internal/token"
)

// FatalError is a located, fatal evaluation error: any
// occurrence aborts the program. It is carried as a Go error and
// expected to propagate via panic/recover between the evaluator,
// interpreter, and driver.
type FatalError struct {
	Kind lerrors.Kind
	Pos token.Position
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func fatalf(kind lerrors.Kind, pos token.Position, format string, args ...any) {
	panic(&FatalError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args ...)})
}

// CallTarget resolves and invokes a user function by name. The
// Interpreter implements this; Evaluator depends on the narrow
// interface rather than the concrete interpreter type to keep the
// expression/statement layers decoupled.
type CallTarget interface {
	CallFunction(pos token.Position, name string, args []runtime.Value) runtime.Value
}

// Evaluator walks Expression nodes against an Environment, pushing
// results onto an explicit value stack. The stack is
// scratch space only: Eval always leaves exactly one more Value on it
// than when it was called, and the stack must be empty again once the
// enclosing statement has consumed that Value.
type Evaluator struct {
	Env *runtime.Environment
	Calls CallTarget
	stack []runtime.Value
}

// New creates an Evaluator over env, dispatching Call expressions to calls.
func New(env *runtime.Environment, calls CallTarget) *Evaluator {
	return &Evaluator{Env: env, Calls: calls}
}

func (ev *Evaluator) push(v runtime.Value) { ev.stack = append(ev.stack, v) }

func (ev *Evaluator) pop() runtime.Value {
	n := len(ev.stack) - 1
	v := ev.stack[n]
	ev.stack = ev.stack[:n]
	return v
}

// StackLen reports the current depth of the value stack — used by
// tests asserting the stack is empty after every top-level statement.
func (ev *Evaluator) StackLen() int { return len(ev.stack) }

// DiscardTop pops and discards the Value a just-evaluated expression
// left on the stack. Statement execution calls this once per
// expression it evaluates for a side effect (ExprStmt, loop
// conditions, return values): the Interpreter never touches
// Evaluator.stack directly, keeping the stack private to this package.
func (ev *Evaluator) DiscardTop() { ev.pop() }

// Eval evaluates expr, pushes its single result Value onto the stack,
// and returns that same Value for convenience.
func (ev *Evaluator) Eval(expr ast.Expression) runtime.Value {
	switch n := expr.(type) {
	case *ast.BoolLit:
		return ev.pushed(runtime.Bool(n.Value))
	case *ast.IntLit:
		return ev.pushed(runtime.Int64(n.Value))
	case *ast.DoubleLit:
		return ev.pushed(runtime.Double(n.Value))
	case *ast.StringLit:
		return ev.pushed(runtime.String(n.Value))
	case *ast.NullLit:
		return ev.pushed(runtime.NullValue)
	case *ast.Ident:
		return ev.evalIdent(n)
	case *ast.Unary:
		return ev.evalUnary(n)
	case *ast.Binary:
		return ev.evalBinary(n)
	case *ast.Assign:
		return ev.evalAssign(n)
	case *ast.Call:
		return ev.evalCall(n)
	default:
		fatalf(lerrors.KindTypeMismatch, expr.Pos(), "internal error: unhandled expression %T", expr)
		panic("unreachable")
	}
}

func (ev *Evaluator) pushed(v runtime.Value) runtime.Value {
	ev.push(v)
	return v
}

func (ev *Evaluator) evalIdent(n *ast.Ident) runtime.Value {
	v, ok := ev.Env.Lookup(n.Name)
	if !ok {
		fatalf(lerrors.KindUndefinedIdentifier, n.Pos(), "undefined identifier %q", n.Name)
	}
	return ev.pushed(v)
}

func (ev *Evaluator) evalUnary(n *ast.Unary) runtime.Value {
	operand := ev.Eval(n.Expr)
	ev.pop() // consumed by this operator

	switch n.Op {
	case "-":
		switch v := operand.(type) {
		case runtime.Int64:
			return ev.pushed(runtime.Int64(-v))
		case runtime.Double:
			return ev.pushed(runtime.Double(-v))
		default:
			fatalf(lerrors.KindTypeMismatch, n.Pos(), "unary '-' requires Int64 or Double, got %s", operand.Tag())
		}
	case "!":
		if v, ok := operand.(runtime.Bool); ok {
			return ev.pushed(runtime.Bool(!v))
		}
		fatalf(lerrors.KindTypeMismatch, n.Pos(), "unary '!' requires Bool, got %s", operand.Tag())
	}
	panic("unreachable")
}

// evalAssign evaluates the right-hand side then resolves the
// left-hand side to a writable slot. Only
// *ast.Ident is a legal lvalue.
func (ev *Evaluator) evalAssign(n *ast.Assign) runtime.Value {
	ident, ok := n.Target.(*ast.Ident)
	if !ok {
		fatalf(lerrors.KindInvalidAssignmentTarget, n.Pos(), "invalid assignment target: left-hand side of '=' must be an identifier")
	}

	val := ev.Eval(n.Value)
	ev.pop() // consumed by the assignment; re-pushed below as the expression's value

	ev.Env.Assign(ident.Name, val)
	return ev.pushed(val)
}

// evalCall dispatches a user function call.
func (ev *Evaluator) evalCall(n *ast.Call) runtime.Value {
	args := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ev.Eval(a)
		ev.pop()
	}
	result := ev.Calls.CallFunction(n.Pos(), n.Function, args)
	return ev.pushed(result)
}
