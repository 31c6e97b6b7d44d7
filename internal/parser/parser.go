// Package parser implements LJ's recursive-descent parser. Like the
// lexer, it is an external collaborator: its only
// contract with the core is handing back a StatementList and a set of
// FunctionDefinitions built from ast's node types.
//
// The original LALR grammar is replaced by a hand-written
// Pratt/precedence-climbing expression parser; what matters is the
// grammar shape, not a bit-exact parse tree.
package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/0cch/LJ/internal/ast"
	lerrors "github.com/0cch/LJ/internal/errors"
	"github.com/0cch/LJ/internal/lexer"
	"github.com/0cch/LJ/internal/token"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	precAssign
	precOr
	precAnd
	precEquality // == !=
	precComparison // < > <= >=
	precAdditive // + -
	precMultiplicative
	precUnary
	precCall
)

var precedences = map[token.Type]int{
	token.ASSIGN: precAssign,
	token.OR: precOr,
	token.AND: precAnd,
	token.EQ: precEquality,
	token.NOT_EQ: precEquality,
	token.LT: precComparison,
	token.GT: precComparison,
	token.LT_EQ: precComparison,
	token.GT_EQ: precComparison,
	token.PLUS: precAdditive,
	token.MINUS: precAdditive,
	token.STAR: precMultiplicative,
	token.SLASH: precMultiplicative,
	token.PERCENT: precMultiplicative,
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithTrace makes the parser write one line to w as it starts each
// function definition, global/if/while/for/return statement, and call.
func WithTrace(w io.Writer) Option {
	return func(p *Parser) { p.trace = w }
}

// WithSource records the full source text so parse-error diagnostics
// can render the offending source line and a caret.
func WithSource(src string) Option {
	return func(p *Parser) { p.source = src }
}

// Parser consumes a token stream and builds the AST.
type Parser struct {
	l *lexer.Lexer
	trace io.Writer
	source string

	cur token.Token
	peek token.Token

	errs []*lerrors.Diagnostic

	functions []*ast.FunctionDefinition
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l}
	for _, opt := range opts {
		opt(p)
	}
	p.next()
	p.next()
	return p
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []*lerrors.Diagnostic { return p.errs }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) traceProd(name string) {
	if p.trace == nil {
		return
	}
	fmt.Fprintf(p.trace, "parse: %s at %s\n", name, p.cur.Pos)
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, lerrors.New(pos, fmt.Sprintf(format, args...), p.source))
}

func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf(p.cur.Pos, "expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

// ParseProgram parses the whole source: a sequence of top-level
// statements and function definitions. It returns the
// top-level StatementList; function definitions parsed along the way
// are collected in Functions().
func (p *Parser) ParseProgram() ast.StatementList {
	var stmts ast.StatementList
	for p.cur.Type != token.EOF {
		if p.cur.Type == token.FUNCTION {
			p.functions = append(p.functions, p.parseFunctionDefinition())
			continue
		}
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}

// Functions returns the function definitions collected while parsing.
func (p *Parser) Functions() []*ast.FunctionDefinition { return p.functions }

func (p *Parser) parseFunctionDefinition() *ast.FunctionDefinition {
	p.traceProd("FunctionDefinition")
	tok := p.expect(token.FUNCTION)
	nameTok := p.expect(token.IDENT)
	p.expect(token.LPAREN)

	var params []string
	for p.cur.Type != token.RPAREN {
		params = append(params, p.expect(token.IDENT).Literal)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()
	return &ast.FunctionDefinition{Token: tok, Name: nameTok.Literal, Params: params, Body: body}
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(token.LBRACE)
	block := &ast.Block{Token: tok}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		block.List = append(block.List, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.GLOBAL:
		return p.parseGlobalStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		tok := p.cur
		p.next()
		p.expect(token.SEMI)
		return &ast.BreakStmt{Token: tok}
	case token.CONTINUE:
		tok := p.cur
		p.next()
		p.expect(token.SEMI)
		return &ast.ContinueStmt{Token: tok}
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseGlobalStmt() ast.Statement {
	p.traceProd("GlobalStmt")
	tok := p.expect(token.GLOBAL)
	var names []string
	names = append(names, p.expect(token.IDENT).Literal)
	for p.cur.Type == token.COMMA {
		p.next()
		names = append(names, p.expect(token.IDENT).Literal)
	}
	p.expect(token.SEMI)
	return &ast.GlobalStmt{Token: tok, Names: names}
}

func (p *Parser) parseIfStmt() ast.Statement {
	p.traceProd("IfStmt")
	tok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression(precAssign)
	p.expect(token.RPAREN)
	then := p.parseBlock()

	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	for p.cur.Type == token.ELSEIF {
		p.next()
		p.expect(token.LPAREN)
		c := p.parseExpression(precAssign)
		p.expect(token.RPAREN)
		b := p.parseBlock()
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{Cond: c, Block: b})
	}
	if p.cur.Type == token.ELSE {
		p.next()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	p.traceProd("WhileStmt")
	tok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression(precAssign)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseForStmt() ast.Statement {
	p.traceProd("ForStmt")
	tok := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init, cond, post ast.Expression
	if p.cur.Type != token.SEMI {
		init = p.parseExpression(precAssign)
	}
	p.expect(token.SEMI)
	if p.cur.Type != token.SEMI {
		cond = p.parseExpression(precAssign)
	}
	p.expect(token.SEMI)
	if p.cur.Type != token.RPAREN {
		post = p.parseExpression(precAssign)
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()
	return &ast.ForStmt{Token: tok, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	p.traceProd("ReturnStmt")
	tok := p.expect(token.RETURN)
	var val ast.Expression
	if p.cur.Type != token.SEMI {
		val = p.parseExpression(precAssign)
	}
	p.expect(token.SEMI)
	return &ast.ReturnStmt{Token: tok, Value: val}
}

func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(precAssign)
	p.expect(token.SEMI)
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

// parseExpression is precedence-climbing: it parses a prefix
// expression then repeatedly folds in infix/assignment operators
// whose precedence is at least minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()

	for {
		prec, ok := precedences[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}

		if p.cur.Type == token.ASSIGN {
			tok := p.cur
			p.next()
			value := p.parseExpression(precAssign)
			left = &ast.Assign{Token: tok, Target: left, Value: value}
			continue
		}

		tok := p.cur
		op := tok.Literal
		p.next()
		right := p.parseExpression(prec + 1)
		left = &ast.Binary{Token: tok, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Type {
	case token.MINUS:
		tok := p.cur
		p.next()
		return &ast.Unary{Token: tok, Op: "-", Expr: p.parseExpression(precUnary)}
	case token.NOT:
		tok := p.cur
		p.next()
		return &ast.Unary{Token: tok, Op: "!", Expr: p.parseExpression(precUnary)}
	case token.LPAREN:
		p.next()
		expr := p.parseExpression(precAssign)
		p.expect(token.RPAREN)
		return expr
	case token.INT:
		return p.parseIntLit()
	case token.FLOAT:
		return p.parseDoubleLit()
	case token.STRING:
		tok := p.cur
		p.next()
		return &ast.StringLit{Token: tok, Value: tok.Literal}
	case token.TRUE:
		tok := p.cur
		p.next()
		return &ast.BoolLit{Token: tok, Value: true}
	case token.FALSE:
		tok := p.cur
		p.next()
		return &ast.BoolLit{Token: tok, Value: false}
	case token.NULL:
		tok := p.cur
		p.next()
		return &ast.NullLit{Token: tok}
	case token.IDENT:
		return p.parseIdentOrCall()
	default:
		tok := p.cur
		p.errorf(tok.Pos, "unexpected token %s %q", tok.Type, tok.Literal)
		p.next()
		return &ast.NullLit{Token: tok}
	}
}

func (p *Parser) parseIntLit() ast.Expression {
	tok := p.cur
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid integer literal %q", tok.Literal)
	}
	p.next()
	return &ast.IntLit{Token: tok, Value: v}
}

func (p *Parser) parseDoubleLit() ast.Expression {
	tok := p.cur
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid float literal %q", tok.Literal)
	}
	p.next()
	return &ast.DoubleLit{Token: tok, Value: v}
}

func (p *Parser) parseIdentOrCall() ast.Expression {
	tok := p.cur
	p.next()
	if p.cur.Type != token.LPAREN {
		return &ast.Ident{Token: tok, Name: tok.Literal}
	}

	p.traceProd("Call")
	p.next() // consume '('
	var args []ast.Expression
	for p.cur.Type != token.RPAREN {
		args = append(args, p.parseExpression(precAssign+1))
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return &ast.Call{Token: tok, Function: tok.Literal, Args: args}
}
