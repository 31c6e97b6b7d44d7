package interp

import (
	"testing"

	lerrors "github.com/0cch/LJ/internal/errors"
	"github.com/0cch/LJ/internal/evaluator"
	"github.com/0cch/LJ/internal/lexer"
	"github.com/0cch/LJ/internal/parser"
	"github.com/0cch/LJ/internal/runtime"
)

// runSrc parses and runs src, returning the interpreter for inspecting
// final global state.
func runSrc(t *testing.T, src string) *Interpreter {
	t.Helper()
	p := parser.New(lexer.New(src))
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse error: %v", p.Errors())
	}
	it := New()
	for _, fn := range p.Functions() {
		it.AddFunction(fn)
	}
	it.Run(stmts)
	return it
}

func TestGlobalAssignmentSurvivesToTopLevel(t *testing.T) {
	it := runSrc(t, "x = 1; x = x + 1;")
	v, ok := it.Env().GetGlobal("x")
	if !ok || v != runtime.Int64(2) {
		t.Fatalf("global x = %v, %v; want 2, true", v, ok)
	}
}

func TestRecursiveFactorial(t *testing.T) {
	it := runSrc(t, `
function fact(n) {
  if (n <= 1) { return 1; }
  return n * fact(n - 1);
}
result = fact(5);
`)
	v, ok := it.Env().GetGlobal("result")
	if !ok || v != runtime.Int64(120) {
		t.Fatalf("global result = %v, %v; want 120, true", v, ok)
	}
}

func TestForLoopWithReturnInsideFunction(t *testing.T) {
	it := runSrc(t, `
function firstEven(n) {
  for (i = 0; i < n; i = i + 1) {
    if (i % 2 == 0) { return i; }
  }
  return -1;
}
result = firstEven(7);
`)
	v, _ := it.Env().GetGlobal("result")
	if v != runtime.Int64(0) {
		t.Fatalf("result = %v, want 0", v)
	}
}

func TestBreakExitsLoop(t *testing.T) {
	it := runSrc(t, `
count = 0;
for (i = 0; i < 10; i = i + 1) {
  if (i == 3) { break; }
  count = count + 1;
}
`)
	v, _ := it.Env().GetGlobal("count")
	if v != runtime.Int64(3) {
		t.Fatalf("count = %v, want 3", v)
	}
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	it := runSrc(t, `
sum = 0;
for (i = 0; i < 5; i = i + 1) {
  if (i == 2) { continue; }
  sum = sum + i;
}
`)
	v, _ := it.Env().GetGlobal("sum")
	if v != runtime.Int64(8) { // 0+1+3+4
		t.Fatalf("sum = %v, want 8", v)
	}
}

func TestGlobalDeclarationInsideFunction(t *testing.T) {
	it := runSrc(t, `
counter = 0;
function bump() {
  global counter;
  counter = counter + 1;
}
bump();
bump();
`)
	v, _ := it.Env().GetGlobal("counter")
	if v != runtime.Int64(2) {
		t.Fatalf("counter = %v, want 2", v)
	}
}

func TestFirstFunctionDefinitionWins(t *testing.T) {
	it := runSrc(t, `
function one() { return 1; }
function one() { return 2; }
result = one();
`)
	v, _ := it.Env().GetGlobal("result")
	if v != runtime.Int64(1) {
		t.Fatalf("result = %v, want 1 (first definition wins)", v)
	}
}

func expectFatalKind(t *testing.T, kind lerrors.Kind, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a fatal error, got none")
		}
		fe, ok := r.(*evaluator.FatalError)
		if !ok {
			t.Fatalf("expected *evaluator.FatalError, got %T: %v", r, r)
		}
		if fe.Kind != kind {
			t.Errorf("kind = %v, want %v", fe.Kind, kind)
		}
	}()
	fn()
}

func TestUnknownFunctionFatal(t *testing.T) {
	expectFatalKind(t, lerrors.KindUnknownFunction, func() {
		runSrc(t, "nope();")
	})
}

func TestArityMismatchFatal(t *testing.T) {
	expectFatalKind(t, lerrors.KindArityMismatch, func() {
		runSrc(t, "function f(a, b) { return a; } f(1);")
	})
}

func TestGlobalNotValidAtTopLevelFatal(t *testing.T) {
	expectFatalKind(t, lerrors.KindInvalidGlobal, func() {
		runSrc(t, "global x;")
	})
}

func TestGlobalOfUndeclaredNameFatal(t *testing.T) {
	expectFatalKind(t, lerrors.KindInvalidGlobal, func() {
		runSrc(t, `
function f() { global nope; }
f();
`)
	})
}

func TestNonBooleanConditionFatal(t *testing.T) {
	expectFatalKind(t, lerrors.KindNonBooleanCondition, func() {
		runSrc(t, "if (1) { x = 1; }")
	})
}
