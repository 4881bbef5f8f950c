package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sapling/internal/buildpipeline"
	"sapling/internal/driver"
	"sapling/internal/project"
)

const noManifestMessage = "no sapling.toml found; pass a file or directory to build, or run `sapling init`"

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Compile sapling sources to JavaScript",
	Long: `Build compiles every .spl file under path (or the single file given) and
writes <out>/<name>.js for each. Without a path the [build] section of
sapling.toml decides what to compile and where to write it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default: [build].out_dir, $SAPLING_OUT_DIR or ./out)")
	buildCmd.Flags().Int("jobs", 0, "files compiled in parallel (default: $SAPLING_JOBS or GOMAXPROCS)")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the build cache")
	buildCmd.Flags().Bool("emit-params", false, "render declared parameters in function signatures")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	emitParams, err := cmd.Flags().GetBool("emit-params")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := parseProgressMode(uiValue)
	if err != nil {
		return err
	}

	settings := project.SettingsFromEnv()
	manifest, manifestFound, err := project.LoadManifest(".")
	if err != nil {
		return err
	}

	var target string
	switch {
	case len(args) == 1:
		target = args[0]
	case manifestFound:
		target = manifest.MainPath()
	default:
		return errors.New(noManifestMessage)
	}

	files, baseDir, err := buildpipeline.ResolveInputs(target)
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = settings.OutDir
	}
	if outDir == "" && manifestFound {
		outDir = manifest.OutDir()
	}
	if outDir == "" {
		outDir = "out"
	}
	if jobs <= 0 {
		jobs = settings.Jobs
	}

	req := &buildpipeline.BuildRequest{
		Files:          files,
		BaseDir:        baseDir,
		OutDir:         outDir,
		Jobs:           jobs,
		MaxDiagnostics: out.maxDiagnostics,
	}
	if manifestFound {
		req.Codegen.Builtins = manifest.Builtins()
		req.Codegen.EmitParams = manifest.Config.Build.EmitParams
	}
	if cmd.Flags().Changed("emit-params") {
		req.Codegen.EmitParams = emitParams
	}
	if !noCache {
		cache, cacheErr := driver.OpenDiskCache("sapling")
		if cacheErr != nil && !out.quiet {
			fmt.Fprintf(os.Stderr, "warning: build cache disabled: %v\n", cacheErr)
		}
		req.Cache = cache
	}

	var res buildpipeline.BuildResult
	if mode.enabled(out.quiet) {
		names, _ := buildpipeline.DisplayNames(files, baseDir)
		res, err = runBuildWithUI(cmd.Context(), "sapling build", names, req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}

	for _, fr := range res.Files {
		if fr.Compile == nil {
			continue
		}
		if printErr := printDiagnostics(fr.Compile.Bag, fr.Compile.FileSet, out); printErr != nil {
			return printErr
		}
	}
	for _, fr := range res.Files {
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fr.Name, fr.Err)
		}
	}
	if out.timings && res.Timings != nil {
		if terr := res.Timings.WriteTable(os.Stderr); terr != nil {
			return terr
		}
	}
	if err != nil {
		return err
	}
	if !out.quiet {
		printBuildSummary(cmd.OutOrStdout(), res, outDir)
	}
	return nil
}

func printBuildSummary(w io.Writer, res buildpipeline.BuildResult, outDir string) {
	rel := outDir
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, outDir); err == nil {
			rel = r
		}
	}
	fmt.Fprintf(w, "built %d file(s) into %s", len(res.Files), rel)
	if res.Cached > 0 {
		fmt.Fprintf(w, " (%d cached)", res.Cached)
	}
	fmt.Fprintln(w)
}
