package project

import (
	"runtime"

	"github.com/xyproto/env/v2"
)

// Environment variables that override manifest and flag defaults.
const (
	EnvJobs     = "SAPLING_JOBS"
	EnvCacheDir = "SAPLING_CACHE_DIR"
	EnvOutDir   = "SAPLING_OUT_DIR"
)

// Settings are the process-wide knobs read from the environment.
type Settings struct {
	Jobs     int
	CacheDir string // если пусто, выбирает driver.OpenDiskCache
	OutDir   string // если пусто, берётся из манифеста или флага
}

// SettingsFromEnv reads SAPLING_* variables. Non-positive job counts fall back
// to GOMAXPROCS.
func SettingsFromEnv() Settings {
	s := Settings{
		Jobs:     env.Int(EnvJobs, 0),
		CacheDir: env.Str(EnvCacheDir),
		OutDir:   env.Str(EnvOutDir),
	}
	if s.Jobs <= 0 {
		s.Jobs = runtime.GOMAXPROCS(0)
	}
	return s
}
