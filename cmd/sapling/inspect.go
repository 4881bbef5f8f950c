package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"sapling/internal/ast"
	"sapling/internal/diagfmt"
	"sapling/internal/driver"
	"sapling/internal/token"
)

// tokenize и parse показывают промежуточные результаты фронтенда

var tokenFormats = map[string]func(io.Writer, []token.Token) error{
	"pretty": diagfmt.FormatTokensPretty,
	"json":   diagfmt.FormatTokensJSON,
}

var treeFormats = map[string]func(io.Writer, []ast.Node) error{
	"tree": diagfmt.FormatASTTree,
	"json": diagfmt.FormatASTJSON,
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.spl",
	Short: "Print the tokens of a sapling source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		write, err := pickFormat(cmd, tokenFormats)
		if err != nil {
			return err
		}
		return inspect(cmd, args[0], driver.Tokenize, func(u *driver.Unit) error {
			return write(os.Stdout, u.Tokens)
		})
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.spl",
	Short: "Parse a sapling source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		write, err := pickFormat(cmd, treeFormats)
		if err != nil {
			return err
		}
		return inspect(cmd, args[0], driver.Parse, func(u *driver.Unit) error {
			if u.Bag.HasErrors() {
				return diagnosticsError(u.Bag)
			}
			return write(os.Stdout, u.Nodes)
		})
	},
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format ("+formatList(tokenFormats)+")")
	parseCmd.Flags().String("format", "tree", "output format ("+formatList(treeFormats)+")")
}

func formatList[F any](formats map[string]F) string {
	return strings.Join(slices.Sorted(maps.Keys(formats)), "|")
}

func pickFormat[F any](cmd *cobra.Command, formats map[string]F) (F, error) {
	var zero F
	name, err := cmd.Flags().GetString("format")
	if err != nil {
		return zero, fmt.Errorf("failed to get format flag: %w", err)
	}
	f, ok := formats[name]
	if !ok {
		return zero, fmt.Errorf("unknown format %q (expected %s)", name, formatList(formats))
	}
	return f, nil
}

// inspect runs a front-end stage over path, prints its diagnostics to stderr
// and hands the unit to show for stdout.
func inspect(cmd *cobra.Command, path string, stage func(string, int) (*driver.Unit, error), show func(*driver.Unit) error) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	unit, err := stage(path, out.maxDiagnostics)
	if err != nil {
		return err
	}
	if err := printDiagnostics(unit.Bag, unit.FileSet, out); err != nil {
		return err
	}
	return show(unit)
}
