package evaluator

import (
	"math"

	"github.com/0cch/LJ/internal/ast"
	lerrors "github.com/0cch/LJ/internal/errors"
	"github.com/0cch/LJ/internal/runtime"
)

// evalBinary implements the binary arithmetic/comparison table and
// logical short-circuit evaluation. Operands evaluate strictly
// left-to-right; for `&&`/`||` the right operand is skipped entirely
// when the left already determines the result.
func (ev *Evaluator) evalBinary(n *ast.Binary) runtime.Value {
	if n.Op == "&&" || n.Op == "||" {
		return ev.evalLogical(n)
	}

	left := ev.Eval(n.Left)
	ev.pop()
	right := ev.Eval(n.Right)
	ev.pop()

	return ev.pushed(applyBinary(n, left, right))
}

func (ev *Evaluator) evalLogical(n *ast.Binary) runtime.Value {
	left := ev.Eval(n.Left)
	ev.pop()
	lb, ok := left.(runtime.Bool)
	if !ok {
		fatalf(lerrors.KindTypeMismatch, n.Left.Pos(), "operand of %q must be Bool, got %s", n.Op, left.Tag())
	}

	if n.Op == "&&" && !bool(lb) {
		return ev.pushed(runtime.Bool(false))
	}
	if n.Op == "||" && bool(lb) {
		return ev.pushed(runtime.Bool(true))
	}

	right := ev.Eval(n.Right)
	ev.pop()
	rb, ok := right.(runtime.Bool)
	if !ok {
		fatalf(lerrors.KindTypeMismatch, n.Right.Pos(), "operand of %q must be Bool, got %s", n.Op, right.Tag())
	}
	return ev.pushed(rb)
}

// applyBinary implements the type-directed promotion table. left and
// right have already been evaluated and popped; this function only
// computes the result.
func applyBinary(n *ast.Binary, left, right runtime.Value) runtime.Value {
	switch l := left.(type) {
	case runtime.Int64:
		switch r := right.(type) {
		case runtime.Int64:
			return intOp(n, int64(l), int64(r))
		case runtime.Double:
			return doubleOp(n, float64(l), float64(r))
		case runtime.Null:
			return nullOp(n, false)
		default:
			typeMismatch(n, left, right)
		}
	case runtime.Double:
		switch r := right.(type) {
		case runtime.Int64:
			return doubleOp(n, float64(l), float64(r))
		case runtime.Double:
			return doubleOp(n, float64(l), float64(r))
		case runtime.Null:
			return nullOp(n, false)
		default:
			typeMismatch(n, left, right)
		}
	case runtime.Bool:
		if r, ok := right.(runtime.Bool); ok {
			return boolOp(n, bool(l), bool(r))
		}
		if _, ok := right.(runtime.Null); ok {
			return nullOp(n, false)
		}
		typeMismatch(n, left, right)
	case runtime.String:
		if r, ok := right.(runtime.String); ok {
			return stringOp(n, string(l), string(r))
		}
		if _, ok := right.(runtime.Null); ok {
			return nullOp(n, false)
		}
		typeMismatch(n, left, right)
	case runtime.Null:
		if _, ok := right.(runtime.Null); ok {
			return nullOp(n, true)
		}
		return nullOp(n, false)
	}
	typeMismatch(n, left, right)
	panic("unreachable")
}

func typeMismatch(n *ast.Binary, left, right runtime.Value) {
	fatalf(lerrors.KindTypeMismatch, n.Pos(), "type mismatch: cannot apply operator %q to %s and %s", n.Op, left.Tag(), right.Tag())
}

func intOp(n *ast.Binary, l, r int64) runtime.Value {
	switch n.Op {
	case "+":
		return runtime.Int64(l + r)
	case "-":
		return runtime.Int64(l - r)
	case "*":
		return runtime.Int64(l * r)
	case "/":
		if r == 0 {
			fatalf(lerrors.KindDivisionByZero, n.Pos(), "integer division by zero")
		}
		return runtime.Int64(l / r)
	case "%":
		if r == 0 {
			fatalf(lerrors.KindDivisionByZero, n.Pos(), "integer modulo by zero")
		}
		return runtime.Int64(l % r)
	case "==":
		return runtime.Bool(l == r)
	case "!=":
		return runtime.Bool(l != r)
	case "<":
		return runtime.Bool(l < r)
	case "<=":
		return runtime.Bool(l <= r)
	case ">":
		return runtime.Bool(l > r)
	case ">=":
		return runtime.Bool(l >= r)
	default:
		fatalf(lerrors.KindTypeMismatch, n.Pos(), "operator %q is not valid for Int64 operands", n.Op)
		panic("unreachable")
	}
}

// doubleOp computes the Double-promoted result: the result tag is
// Double iff either operand was Double. Division/modulo by zero
// follow IEEE-754 (inf/nan), never fatal.
func doubleOp(n *ast.Binary, l, r float64) runtime.Value {
	switch n.Op {
	case "+":
		return runtime.Double(l + r)
	case "-":
		return runtime.Double(l - r)
	case "*":
		return runtime.Double(l * r)
	case "/":
		return runtime.Double(l / r)
	case "%":
		return runtime.Double(math.Mod(l, r))
	case "==":
		return runtime.Bool(l == r)
	case "!=":
		return runtime.Bool(l != r)
	case "<":
		return runtime.Bool(l < r)
	case "<=":
		return runtime.Bool(l <= r)
	case ">":
		return runtime.Bool(l > r)
	case ">=":
		return runtime.Bool(l >= r)
	default:
		fatalf(lerrors.KindTypeMismatch, n.Pos(), "operator %q is not valid for Double operands", n.Op)
		panic("unreachable")
	}
}

func boolOp(n *ast.Binary, l, r bool) runtime.Value {
	switch n.Op {
	case "==":
		return runtime.Bool(l == r)
	case "!=":
		return runtime.Bool(l != r)
	default:
		fatalf(lerrors.KindTypeMismatch, n.Pos(), "operator %q is not valid for Bool operands (only == and != are)", n.Op)
		panic("unreachable")
	}
}

// stringOp: '+' concatenates;
// comparisons use lexicographic byte ordering.
func stringOp(n *ast.Binary, l, r string) runtime.Value {
	switch n.Op {
	case "+":
		return runtime.String(l + r)
	case "==":
		return runtime.Bool(l == r)
	case "!=":
		return runtime.Bool(l != r)
	case "<":
		return runtime.Bool(l < r)
	case "<=":
		return runtime.Bool(l <= r)
	case ">":
		return runtime.Bool(l > r)
	case ">=":
		return runtime.Bool(l >= r)
	default:
		fatalf(lerrors.KindTypeMismatch, n.Pos(), "operator %q is not valid for String operands", n.Op)
		panic("unreachable")
	}
}

// nullOp: only == and != are legal when either operand is Null.
// bothNull is true iff both operands were Null; == is true only then.
func nullOp(n *ast.Binary, bothNull bool) runtime.Value {
	switch n.Op {
	case "==":
		return runtime.Bool(bothNull)
	case "!=":
		return runtime.Bool(!bothNull)
	default:
		fatalf(lerrors.KindTypeMismatch, n.Pos(), "operator %q is not valid with a Null operand", n.Op)
		panic("unreachable")
	}
}
