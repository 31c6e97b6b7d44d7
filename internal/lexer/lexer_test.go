package lexer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/0cch/LJ/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	src := `function fact(n) {
  if (n <= 1) { return 1; }
  return n * fact(n - 1);
}
# a comment
x = 3.5 + "hi\n" != null && true || false;`

	want := []token.Type{
		token.FUNCTION, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.LBRACE,
		token.IF, token.LPAREN, token.IDENT, token.LT_EQ, token.INT, token.RPAREN,
		token.LBRACE, token.RETURN, token.INT, token.SEMI, token.RBRACE,
		token.RETURN, token.IDENT, token.STAR, token.IDENT, token.LPAREN, token.IDENT, token.MINUS, token.INT, token.RPAREN, token.SEMI,
		token.RBRACE,
		token.IDENT, token.ASSIGN, token.FLOAT, token.PLUS, token.STRING, token.NOT_EQ, token.NULL,
		token.AND, token.TRUE, token.OR, token.FALSE, token.SEMI,
		token.EOF,
	}

	l := New(src)
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Literal, wantType)
		}
	}
}

func TestReadStringEscapes(t *testing.T) {
	l := New(`"a\tb\nc\"d\\e"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if want := "a\tb\nc\"d\\e"; tok.Literal != want {
		t.Errorf("literal = %q, want %q", tok.Literal, want)
	}
}

func TestReadStringUnterminated(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("a\nbb", WithFilename("f.lj"))
	first := l.NextToken()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Errorf("first token pos = %+v, want line 1 col 1", first.Pos)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 {
		t.Errorf("second token line = %d, want 2", second.Pos.Line)
	}
	if second.Pos.File != "f.lj" {
		t.Errorf("second token file = %q, want f.lj", second.Pos.File)
	}
}

func TestWithTraceWritesOneLinePerToken(t *testing.T) {
	var buf bytes.Buffer
	l := New("x = 1;", WithTrace(&buf))
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 { // x, =, 1, ;
		t.Errorf("got %d trace lines, want 4: %v", len(lines), lines)
	}
}

func TestNonASCIIStringRoundTrip(t *testing.T) {
	// Guards against a rune-based cursor corrupting multi-byte UTF-8
	// content re-emitted from raw bytes.
	l := New("\"café\"")
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if tok.Literal != "café" {
		t.Errorf("literal = %q, want %q", tok.Literal, "café")
	}
}
