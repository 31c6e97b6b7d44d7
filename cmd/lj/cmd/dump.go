package cmd

import (
	"fmt"
	"os"

	"github.com/0cch/LJ/internal/ast"
	"github.com/0cch/LJ/internal/lexer"
	"github.com/0cch/LJ/internal/parser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <files...>",
	Short: "Parse scripts and print their ASTs",
	Long: `Dump parses each LJ source file and prints a textual
representation of its function definitions and top-level statements,
without executing anything. Unlike run, each file is dumped on its own
- dump is a per-file diagnostic, not program assembly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: dumpScripts,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVarP(&traceScanner, "scanner-trace", "s", false, "trace tokens produced by the scanner")
	dumpCmd.Flags().BoolVarP(&traceParser, "parser-trace", "p", false, "trace productions recognized by the parser")
}

func dumpScripts(_ *cobra.Command, args []string) error {
	for _, filename := range args {
		if err := dumpScript(filename); err != nil {
			return err
		}
	}
	return nil
}

func dumpScript(filename string) error {
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
		useColor := isatty.IsTerminal(os.Stderr.Fd())
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(useColor))
		}
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
	}

	fmt.Printf("# %s\n", filename)
	fmt.Print(ast.Dump(p.Functions(), stmts))
	return nil
}
