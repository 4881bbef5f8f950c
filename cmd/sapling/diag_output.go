package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sapling/internal/diag"
	"sapling/internal/diagfmt"
	"sapling/internal/driver"
	"sapling/internal/observ"
	"sapling/internal/source"
)

// outputOptions are the persistent flags every command reads.
type outputOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
	diagFormat     string
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts outputOptions

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		opts.color = true
	case "off":
		opts.color = false
	case "auto", "":
		opts.color = isTerminal(os.Stderr)
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if opts.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return opts, fmt.Errorf("invalid --path-mode value %q", pathMode)
	}

	if opts.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return opts, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch opts.diagFormat {
	case "pretty", "json", "short":
	default:
		return opts, fmt.Errorf("invalid --diag-format value %q (expected pretty|json|short)", opts.diagFormat)
	}
	return opts, nil
}

// printDiagnostics writes bag to stderr. In quiet mode only errors are shown.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, opts outputOptions) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if opts.quiet {
		bag = bag.Filter(func(d diag.Diagnostic) bool { return d.Severity == diag.SevError })
		if bag.Len() == 0 {
			return nil
		}
	}
	bag.Sort()
	bag.Dedup()

	switch opts.diagFormat {
	case "json":
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     true,
		})
	case "short":
		return diagfmt.Short(os.Stderr, bag, fs, diagfmt.ShortOpts{PathMode: opts.pathMode, Notes: true})
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     opts.color,
		PathMode:  opts.pathMode,
		ShowNotes: true,
	})
	return nil
}

// printTimings shows per-phase timings: a summary for pretty output, an
// OBS diagnostic for JSON consumers.
func printTimings(kind, path string, timer *observ.Timer, fs *source.FileSet, opts outputOptions) error {
	if !opts.timings || timer == nil {
		return nil
	}
	if opts.diagFormat == "json" {
		bag := diag.NewBag(1)
		driver.AppendTimings(bag, kind, path, timer)
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{IncludeNotes: true})
	}
	_, err := fmt.Fprint(os.Stderr, timer.Summary())
	return err
}

// diagnosticsError turns an errored bag into the command's error.
func diagnosticsError(bag *diag.Bag) error {
	if bag == nil || !bag.HasErrors() {
		return nil
	}
	return fmt.Errorf("compilation failed with %d error(s)", bag.Count(diag.SevError))
}
