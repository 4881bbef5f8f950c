package project

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[build]
main = "src/main.spl"
emit_params = true

[builtins]
log = "console.error"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest = %v, %v", ok, err)
	}
	if m.Config.Package.Name != "demo" || !m.Config.Build.EmitParams {
		t.Fatalf("unexpected config %+v", m.Config)
	}
	if m.MainPath() != filepath.Join(root, "src", "main.spl") {
		t.Fatalf("MainPath = %s", m.MainPath())
	}
	if m.OutDir() != filepath.Join(root, "out") {
		t.Fatalf("OutDir default = %s", m.OutDir())
	}
	if m.Builtins()["log"] != "console.error" {
		t.Fatalf("builtins = %v", m.Builtins())
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if ok || err != nil {
		t.Fatalf("expected no manifest, got ok=%v err=%v", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no package", "[build]\nmain = \"x\"\n", "missing [package]"},
		{"empty name", "[package]\nname = \"  \"\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"x\"\nversion = 2\n", "unknown key"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tc.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("LoadConfig error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	text, err := Render(Config{
		Package: PackageConfig{Name: "hello"},
		Build:   BuildConfig{Main: "src", OutDir: "out"},
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, text)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("rendered manifest does not load: %v\n%s", err, text)
	}
	if cfg.Package.Name != "hello" || cfg.Build.OutDir != "out" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv(EnvJobs, "3")
	t.Setenv(EnvCacheDir, "/tmp/sapling-cache")
	t.Setenv(EnvOutDir, "")
	s := SettingsFromEnv()
	if s.Jobs != 3 || s.CacheDir != "/tmp/sapling-cache" || s.OutDir != "" {
		t.Fatalf("unexpected settings %+v", s)
	}

	t.Setenv(EnvJobs, "nope")
	if got := SettingsFromEnv().Jobs; got != runtime.GOMAXPROCS(0) {
		t.Fatalf("invalid jobs fell back to %d", got)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b := HashString("a"), HashString("b")
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must depend on order")
	}
	if Combine(a, b).IsZero() || len(a.String()) != 64 {
		t.Fatal("unexpected digest")
	}
}
