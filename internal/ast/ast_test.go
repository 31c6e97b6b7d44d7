package ast_test

import (
	"testing"

	"github.com/0cch/LJ/internal/ast"
	"github.com/0cch/LJ/internal/lexer"
	"github.com/0cch/LJ/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestDumpGoldenOutput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "factorial",
			src: `
function fact(n) {
  if (n <= 1) { return 1; }
  return n * fact(n - 1);
}
result = fact(5);
`,
		},
		{
			name: "control_flow",
			src: `
count = 0;
for (i = 0; i < 10; i = i + 1) {
  if (i == 3) { break; }
  elseif (i == 7) { continue; }
  count = count + 1;
}
while (count > 0) { count = count - 1; }
`,
		},
		{
			name: "global_and_logic",
			src: `
total = 0;
function bump() {
  global total;
  total = total + 1;
}
ready = true && (total == 0) || false;
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.New(lexer.New(tt.src))
			stmts := p.ParseProgram()
			if len(p.Errors()) > 0 {
				t.Fatalf("unexpected parse errors: %v", p.Errors())
			}
			snaps.MatchSnapshot(t, ast.Dump(p.Functions(), stmts))
		})
	}
}

func TestStatementListString(t *testing.T) {
	p := parser.New(lexer.New("x = 1; y = 2;"))
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	got := stmts.String()
	want := "(x = 1);\n(y = 2);\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
