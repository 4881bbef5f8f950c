package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sapling/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sapling build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("full", false, "include commit, build date and Go version")
	f.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	info := version.Current()
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		if !full {
			info = version.Info{Version: info.Version, GoVersion: info.GoVersion}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tool string `json:"tool"`
			version.Info
		}{"sapling", info})
	case "pretty":
		printVersion(w, info, full, out.color)
		return nil
	}
	return fmt.Errorf("unknown format %q (expected pretty|json)", format)
}

func printVersion(w io.Writer, info version.Info, full, colored bool) {
	v := info.Version
	if colored {
		v = version.Colored()
	}
	fmt.Fprintf(w, "sapling %s\n", v)
	if !full {
		return
	}
	commit := orUnknown(info.ShortCommit())
	if info.Modified {
		commit += " (modified)"
	}
	fmt.Fprintf(w, "commit:  %s\n", commit)
	if info.GitMessage != "" {
		fmt.Fprintf(w, "message: %s\n", info.GitMessage)
	}
	fmt.Fprintf(w, "built:   %s\n", orUnknown(info.BuildDate))
	fmt.Fprintf(w, "go:      %s\n", info.GoVersion)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
