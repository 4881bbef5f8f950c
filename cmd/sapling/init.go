package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sapling/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new sapling project",
	Long: `Initialize a new sapling project by creating a project manifest (sapling.toml)
and a hello-world entry point (src/main.spl). If [path|name] is omitted,
initializes the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMainSource = `# sapling hello world
fn main {
    print("Hello, sapling!")
}
`

// runInit writes sapling.toml and src/main.spl into the target directory,
// refusing to touch an already initialized project.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "sapling-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	manifest, err := project.Render(project.Config{
		Package: project.PackageConfig{Name: name},
		Build:   project.BuildConfig{Main: "src", OutDir: "out"},
	})
	if err != nil {
		return fmt.Errorf("failed to render manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, []byte("# sapling project manifest\n"+manifest), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "src", "main.spl")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(mainPath, []byte(defaultMainSource), 0o600); err != nil {
			return fmt.Errorf("failed to write main.spl: %w", err)
		}
		createdMain = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Initialized sapling project in %s\n", rel)
	fmt.Fprintf(w, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintln(w, "  - src/main.spl")
	} else {
		fmt.Fprintln(w, "  - src/main.spl (existing)")
	}
	return nil
}
