package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"function", FUNCTION},
		{"if", IF},
		{"elseif", ELSEIF},
		{"global", GLOBAL},
		{"true", TRUE},
		{"false", FALSE},
		{"null", NULL},
		{"fact", IDENT},
		{"Global", IDENT}, // keywords are case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupIdent(tt.ident); got != tt.want {
				t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if got := PLUS.String(); got != "+" {
		t.Errorf("PLUS.String() = %q, want %q", got, "+")
	}
	if got := Type(9999).String(); got != "Type(9999)" {
		t.Errorf("unknown Type.String() = %q, want %q", got, "Type(9999)")
	}
}

func TestPositionString(t *testing.T) {
	p := Position{File: "main.lj", Line: 3, Column: 7}
	if got, want := p.String(), "main.lj:3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}
