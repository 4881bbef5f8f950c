package buildpipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExt is the extension of sapling source files.
const SourceExt = ".spl"

// ErrNoSources is returned when a build target holds no .spl files.
var ErrNoSources = errors.New("no " + SourceExt + " files found")

// ListSources returns the .spl files under dir in lexical order. Hidden
// directories are skipped. A path to a single file is returned as is.
func ListSources(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{dir}, nil
	}
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// ResolveInputs turns a build target into a list of sources plus the base
// directory used for display names and output layout.
func ResolveInputs(target string) (files []string, baseDir string, err error) {
	files, err = ListSources(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list sources in %q: %w", target, err)
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("%s: %w", target, ErrNoSources)
	}
	baseDir = target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		baseDir = filepath.Dir(target)
	}
	return files, baseDir, nil
}
