// Package errors formats LJ diagnostics: parser errors and fatal
// evaluation errors rendered as "file:line.col-line.col: message"
// plus a source-line caret.
package errors

import (
	"fmt"
	"strings"

	"github.com/0cch/LJ/internal/token"
)

// Diagnostic is a single located error: a parser error or a fatal
// evaluator error.
type Diagnostic struct {
	Pos token.Position
	End token.Position // same as Pos when the error has no natural span
	Message string
	Source string // the full source text, for context-line rendering
}

// New creates a point diagnostic (End == Pos).
func New(pos token.Position, message, source string) *Diagnostic {
	return &Diagnostic{Pos: pos, End: pos, Message: message, Source: source}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic in the
// "file:line.col-line.col: message" shape, followed by the offending
// source line and a caret span. If color is true, ANSI codes
// highlight the caret — the caller decides based on whether stderr is
// a terminal (see cmd/lj/cmd, which uses mattn/go-isatty for that test).
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s:%d.%d-%d.%d: %s\n", d.Pos.File, d.Pos.Line, d.Pos.Column, d.End.Line, d.End.Column, d.Message)

	line := sourceLine(d.Source, d.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	caretLen := 1
	if d.End.Line == d.Pos.Line && d.End.Column > d.Pos.Column {
		caretLen = d.End.Column - d.Pos.Column
	}
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Pos.Column-1, 0)))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(strings.Repeat("^", caretLen))
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatAll renders each diagnostic separated by a blank line.
func FormatAll(diags []*Diagnostic, color bool) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = d.Format(color)
	}
	return strings.Join(parts, "\n\n")
}
