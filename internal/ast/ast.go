// Package ast defines the LJ abstract syntax tree: the Expression and
// Statement node families plus the auxiliary Block, ElseIf, and
// FunctionDefinition types the parser builds and the evaluator walks.
package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/0cch/LJ/internal/token"
)

// Node is the common interface of every AST node: a source position
// and a debug/dump string.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// StatementList is a sequence of statements executed top to bottom.
type StatementList []Statement

func (sl StatementList) String() string {
	var out bytes.Buffer
	for _, s := range sl {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Block owns a StatementList; it is the body of an if/while/for/function.
type Block struct {
	Token token.Token // the '{' token
	List StatementList
}

func (b *Block) Pos() token.Position { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.List {
		out.WriteString(" " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ElseIf is one arm of an if-statement's elseif chain.
type ElseIf struct {
	Cond Expression
	Block *Block
}

// FunctionDefinition is a top-level function: name, formal parameter
// names, and a body Block. Functions live in the driver's function
// table indexed by name: redefinition is accepted by the parser but
// only the first definition of a given name is callable.
type FunctionDefinition struct {
	Token token.Token // the 'function' token
	Name string
	Params []string
	Body *Block
}

func (f *FunctionDefinition) Pos() token.Position { return f.Token.Pos }
func (f *FunctionDefinition) String() string {
	return fmt.Sprintf("function %s(%s) %s", f.Name, strings.Join(f.Params, ", "), f.Body.String())
}

// ---- Dump helpers -------------------------------------------------

// Dump renders a full program (functions + top-level statements) as an
// indented tree, one node per line with its kind and literal value —
// the driver's dump() operation.
func Dump(functions []*FunctionDefinition, stmts StatementList) string {
	var out bytes.Buffer
	for _, fn := range functions {
		dumpFunction(&out, fn)
	}
	for _, s := range stmts {
		dumpStatement(&out, s, 0)
	}
	return out.String()
}

func indent(out *bytes.Buffer, depth int) {
	out.WriteString(strings.Repeat(" ", depth))
}

func dumpFunction(out *bytes.Buffer, fn *FunctionDefinition) {
	fmt.Fprintf(out, "FunctionDefinition %s(%s)\n", fn.Name, strings.Join(fn.Params, ", "))
	for _, s := range fn.Body.List {
		dumpStatement(out, s, 1)
	}
}

func dumpStatement(out *bytes.Buffer, s Statement, depth int) {
	indent(out, depth)
	switch n := s.(type) {
	case *ExprStmt:
		out.WriteString("ExprStmt\n")
		dumpExpr(out, n.Expr, depth+1)
	case *GlobalStmt:
		fmt.Fprintf(out, "GlobalStmt %s\n", strings.Join(n.Names, ", "))
	case *IfStmt:
		out.WriteString("IfStmt\n")
		indent(out, depth+1)
		out.WriteString("cond:\n")
		dumpExpr(out, n.Cond, depth+2)
		indent(out, depth+1)
		out.WriteString("then:\n")
		for _, st := range n.Then.List {
			dumpStatement(out, st, depth+2)
		}
		for _, ei := range n.ElseIfs {
			indent(out, depth+1)
			out.WriteString("elseif:\n")
			dumpExpr(out, ei.Cond, depth+2)
			for _, st := range ei.Block.List {
				dumpStatement(out, st, depth+2)
			}
		}
		if n.Else != nil {
			indent(out, depth+1)
			out.WriteString("else:\n")
			for _, st := range n.Else.List {
				dumpStatement(out, st, depth+2)
			}
		}
	case *WhileStmt:
		out.WriteString("WhileStmt\n")
		dumpExpr(out, n.Cond, depth+1)
		for _, st := range n.Body.List {
			dumpStatement(out, st, depth+1)
		}
	case *ForStmt:
		out.WriteString("ForStmt\n")
		if n.Init != nil {
			dumpExpr(out, n.Init, depth+1)
		}
		if n.Cond != nil {
			dumpExpr(out, n.Cond, depth+1)
		}
		if n.Post != nil {
			dumpExpr(out, n.Post, depth+1)
		}
		for _, st := range n.Body.List {
			dumpStatement(out, st, depth+1)
		}
	case *ReturnStmt:
		out.WriteString("ReturnStmt\n")
		if n.Value != nil {
			dumpExpr(out, n.Value, depth+1)
		}
	case *BreakStmt:
		out.WriteString("BreakStmt\n")
	case *ContinueStmt:
		out.WriteString("ContinueStmt\n")
	default:
		fmt.Fprintf(out, "%T\n", n)
	}
}

func dumpExpr(out *bytes.Buffer, e Expression, depth int) {
	indent(out, depth)
	switch n := e.(type) {
	case *BoolLit:
		fmt.Fprintf(out, "BoolLit %v\n", n.Value)
	case *IntLit:
		fmt.Fprintf(out, "IntLit %d\n", n.Value)
	case *DoubleLit:
		fmt.Fprintf(out, "DoubleLit %s\n", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLit:
		fmt.Fprintf(out, "StringLit %q\n", n.Value)
	case *NullLit:
		out.WriteString("NullLit\n")
	case *Ident:
		fmt.Fprintf(out, "Ident %s\n", n.Name)
	case *Unary:
		fmt.Fprintf(out, "Unary %s\n", n.Op)
		dumpExpr(out, n.Expr, depth+1)
	case *Binary:
		fmt.Fprintf(out, "Binary %s\n", n.Op)
		dumpExpr(out, n.Left, depth+1)
		dumpExpr(out, n.Right, depth+1)
	case *Assign:
		out.WriteString("Assign\n")
		dumpExpr(out, n.Target, depth+1)
		dumpExpr(out, n.Value, depth+1)
	case *Call:
		fmt.Fprintf(out, "Call %s\n", n.Function)
		for _, a := range n.Args {
			dumpExpr(out, a, depth+1)
		}
	default:
		fmt.Fprintf(out, "%T\n", n)
	}
}
