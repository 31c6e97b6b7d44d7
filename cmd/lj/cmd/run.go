package cmd

import (
	"fmt"
	"os"

	"github.com/0cch/LJ/internal/ast"
	lerrors "github.com/0cch/LJ/internal/errors"
	"github.com/0cch/LJ/internal/evaluator"
	"github.com/0cch/LJ/internal/interp"
	"github.com/0cch/LJ/internal/lexer"
	"github.com/0cch/LJ/internal/parser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	traceScanner bool
	traceParser  bool
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run one or more LJ scripts",
	Long: `Run parses and executes one or more LJ source files.

When multiple files are given, their function definitions and top-level
statements are merged into a single program, in argument order, as if
the files had been concatenated.

Examples:
  # Run a single script
  lj run main.lj

  # Run several files as one program
  lj run lib.lj main.lj

  # Trace the scanner and parser while running
  lj run -s -p main.lj`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScripts,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&traceScanner, "scanner-trace", "s", false, "trace tokens produced by the scanner")
	runCmd.Flags().BoolVarP(&traceParser, "parser-trace", "p", false, "trace productions recognized by the parser")
}

func runScripts(_ *cobra.Command, args []string) error {
	useColor := isatty.IsTerminal(os.Stderr.Fd())

	it := interp.New()
	var merged ast.StatementList

	for _, filename := range args {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source := string(content)

		var lexOpts []lexer.Option
		lexOpts = append(lexOpts, lexer.WithFilename(filename))
		if traceScanner {
			lexOpts = append(lexOpts, lexer.WithTrace(os.Stderr))
		}
		l := lexer.New(source, lexOpts...)

		var parseOpts []parser.Option
		parseOpts = append(parseOpts, parser.WithSource(source))
		if traceParser {
			parseOpts = append(parseOpts, parser.WithTrace(os.Stderr))
		}
		p := parser.New(l, parseOpts...)
		stmts := p.ParseProgram()

		if errs := p.Errors(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e.Format(useColor))
			}
			return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
		}

		for _, fn := range p.Functions() {
			it.AddFunction(fn)
		}
		merged = append(merged, stmts...)
	}

	return runProgram(it, merged, useColor)
}

// runProgram executes stmts against it, converting a fatal evaluator
// panic into a diagnostic printed to stderr and a non-nil error.
func runProgram(it *interp.Interpreter, stmts ast.StatementList, useColor bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*evaluator.FatalError)
			if !ok {
				panic(r)
			}
			diag := lerrors.New(fe.Pos, fe.Message, "")
			fmt.Fprintln(os.Stderr, diag.Format(useColor))
			err = fmt.Errorf("%s", fe.Kind)
		}
	}()

	it.Run(stmts)
	return nil
}
