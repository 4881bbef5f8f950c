package buildpipeline

import (
	"path/filepath"
	"strings"
)

// displayName returns the slash-separated path of file relative to baseDir,
// or the cleaned path itself when it lies outside baseDir.
func displayName(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// DisplayNames maps every file to its display name, dropping duplicates.
func DisplayNames(files []string, baseDir string) (names []string, unique []string) {
	names = make([]string, 0, len(files))
	unique = make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		name := displayName(file, baseDir)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
		unique = append(unique, file)
	}
	return names, unique
}

// outputPath places the generated file for display name under outDir,
// keeping subdirectories: src/app.spl -> <out>/src/app.js.
func outputPath(outDir, name string) string {
	rel := filepath.FromSlash(name)
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(rel)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".js"
	return filepath.Join(outDir, rel)
}
