package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode chooses where events are kept.
type Mode uint8

const (
	ModeStream Mode = iota + 1
	ModeRing
	ModeBoth
)

// ParseMode accepts stream, ring and both.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stream", "":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return 0, fmt.Errorf("unknown trace mode %q (want stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level    Level
	Mode     Mode
	Output   io.Writer // takes precedence over Path
	Path     string    // "-" or empty means stderr
	Format   Format    // zero picks by Path extension
	RingSize int
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	switch cfg.Mode {
	case ModeRing:
		return NewRing(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown trace mode %d", cfg.Mode)
	}

	stream, err := openStream(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewTee(cfg.Level, stream, NewRing(cfg.RingSize, cfg.Level)), nil
}

func openStream(cfg Config) (*Stream, error) {
	format := cfg.Format
	if format == 0 {
		format = formatForPath(cfg.Path)
	}
	switch {
	case cfg.Output != nil:
		return NewStream(cfg.Output, cfg.Level, format), nil
	case cfg.Path == "" || cfg.Path == "-":
		return NewStream(os.Stderr, cfg.Level, format), nil
	}
	f, err := os.Create(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	s := NewStream(f, cfg.Level, format)
	s.owned = f
	return s, nil
}
