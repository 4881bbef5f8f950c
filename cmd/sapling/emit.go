package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sapling/internal/codegen"
	"sapling/internal/diagfmt"
	"sapling/internal/driver"
	"sapling/internal/project"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] file.spl",
	Short: "Compile one file and print the generated JavaScript",
	Long: `Emit compiles a single sapling file and writes the JavaScript to stdout.
Use "-" to read the source from stdin. Built-in mappings and emit_params are
taken from sapling.toml when one is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().Bool("emit-params", false, "render declared parameters in function signatures")
	emitCmd.Flags().StringP("output", "o", "", "write JavaScript to this file instead of stdout")
	emitCmd.Flags().Bool("debug", false, "dump tokens and the syntax tree to stderr before the output")
}

func runEmit(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	emitParams, err := cmd.Flags().GetBool("emit-params")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}

	cg, err := codegenOptions(".")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("emit-params") {
		cg.EmitParams = emitParams
	}

	opts := driver.CompileOptions{MaxDiagnostics: out.maxDiagnostics, Codegen: cg}
	var res *driver.CompileResult
	if args[0] == "-" {
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res, err = driver.CompileSource(cmd.Context(), "<stdin>", content, opts)
	} else {
		res, err = driver.Compile(cmd.Context(), args[0], opts)
	}
	if err != nil {
		return err
	}

	if debug {
		if err := diagfmt.FormatTokensPretty(os.Stderr, res.Tokens); err != nil {
			return err
		}
		if err := diagfmt.FormatASTTree(os.Stderr, res.Nodes); err != nil {
			return err
		}
	}
	if err := printDiagnostics(res.Bag, res.FileSet, out); err != nil {
		return err
	}
	if err := printTimings("emit", res.File.Path, res.Timing, res.FileSet, out); err != nil {
		return err
	}
	if !res.OK() {
		return diagnosticsError(res.Bag)
	}

	if outputPath == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), res.Output)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(res.Output), 0o600); err != nil {
		return fmt.Errorf("failed to write %q: %w", outputPath, err)
	}
	return nil
}

// codegenOptions reads [build] and [builtins] from the nearest manifest.
// Without a manifest the defaults apply.
func codegenOptions(startDir string) (codegen.Options, error) {
	manifest, ok, err := project.LoadManifest(startDir)
	if err != nil {
		return codegen.Options{}, err
	}
	if !ok {
		return codegen.Options{}, nil
	}
	return codegen.Options{
		Builtins:   manifest.Builtins(),
		EmitParams: manifest.Config.Build.EmitParams,
	}, nil
}
