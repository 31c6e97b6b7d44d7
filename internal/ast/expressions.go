package ast

import (
	"fmt"
	"strconv"

	"github.com/0cch/LJ/internal/token"
)

// Literals. TrueLit/FalseLit from the original grammar are unified
// into BoolLit here: the parser never produces a
// separate "bare" true/false node.

// BoolLit is a boolean literal.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (b *BoolLit) expressionNode() {}
func (b *BoolLit) Pos() token.Position { return b.Token.Pos }
func (b *BoolLit) String() string { return strconv.FormatBool(b.Value) }

// IntLit is a 64-bit signed integer literal.
type IntLit struct {
	Token token.Token
	Value int64
}

func (i *IntLit) expressionNode() {}
func (i *IntLit) Pos() token.Position { return i.Token.Pos }
func (i *IntLit) String() string { return strconv.FormatInt(i.Value, 10) }

// DoubleLit is a binary64 floating point literal.
type DoubleLit struct {
	Token token.Token
	Value float64
}

func (d *DoubleLit) expressionNode() {}
func (d *DoubleLit) Pos() token.Position { return d.Token.Pos }
func (d *DoubleLit) String() string { return strconv.FormatFloat(d.Value, 'g', -1, 64) }

// StringLit is a double-quoted string literal with escapes already resolved.
type StringLit struct {
	Token token.Token
	Value string
}

func (s *StringLit) expressionNode() {}
func (s *StringLit) Pos() token.Position { return s.Token.Pos }
func (s *StringLit) String() string { return strconv.Quote(s.Value) }

// NullLit is the null literal.
type NullLit struct {
	Token token.Token
}

func (n *NullLit) expressionNode() {}
func (n *NullLit) Pos() token.Position { return n.Token.Pos }
func (n *NullLit) String() string { return "null" }

// Ident is an identifier reference, used both as an rvalue (load) and,
// when it is the target of an Assign, as the sole lvalue form.
type Ident struct {
	Token token.Token
	Name string
}

func (i *Ident) expressionNode() {}
func (i *Ident) Pos() token.Position { return i.Token.Pos }
func (i *Ident) String() string { return i.Name }

// Unary is a prefix unary operator: Minus or Not.
type Unary struct {
	Token token.Token
	Op string // "-" or "!"
	Expr Expression
}

func (u *Unary) expressionNode() {}
func (u *Unary) Pos() token.Position { return u.Token.Pos }
func (u *Unary) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Expr.String()) }

// Binary is a binary operator application: arithmetic, comparison, or
// logical (And/Or). Logical operators short-circuit;
// the evaluator, not the AST, encodes that behavior.
type Binary struct {
	Token token.Token
	Op string
	Left Expression
	Right Expression
}

func (b *Binary) expressionNode() {}
func (b *Binary) Pos() token.Position { return b.Token.Pos }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// Assign is an assignment expression: target must be an *Ident, the
// only legal lvalue. Assignment is itself an expression whose value
// is the assigned value.
type Assign struct {
	Token token.Token
	Target Expression
	Value Expression
}

func (a *Assign) expressionNode() {}
func (a *Assign) Pos() token.Position { return a.Token.Pos }
func (a *Assign) String() string {
	return fmt.Sprintf("(%s = %s)", a.Target.String(), a.Value.String())
}

// Call invokes a named function with positional argument expressions.
type Call struct {
	Token token.Token
	Function string
	Args []Expression
}

func (c *Call) expressionNode() {}
func (c *Call) Pos() token.Position { return c.Token.Pos }
func (c *Call) String() string {
	out := c.Function + "("
	for i, a := range c.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}
