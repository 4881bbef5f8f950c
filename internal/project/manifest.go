package project

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded sapling.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package  PackageConfig     `toml:"package"`
	Build    BuildConfig       `toml:"build"`
	Builtins map[string]string `toml:"builtins"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Main       string `toml:"main"`
	OutDir     string `toml:"out_dir"`
	EmitParams bool   `toml:"emit_params"`
}

const (
	defaultMain   = "src"
	defaultOutDir = "out"
)

// LoadManifest finds and loads sapling.toml starting from startDir.
// ok is false when no manifest exists.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates a manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if strings.TrimSpace(cfg.Build.Main) == "" {
		cfg.Build.Main = defaultMain
	}
	if strings.TrimSpace(cfg.Build.OutDir) == "" {
		cfg.Build.OutDir = defaultOutDir
	}
	return cfg, nil
}

// MainPath returns the absolute entry path ([build].main).
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Main))
}

// OutDir returns the absolute output directory ([build].out_dir).
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Build.OutDir) {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}

// Builtins returns a copy of the [builtins] table.
func (m *Manifest) Builtins() map[string]string {
	return maps.Clone(m.Config.Builtins)
}

// Render produces the text of a fresh manifest, used by `sapling init`.
func Render(cfg Config) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}
