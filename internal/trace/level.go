package trace

import (
	"fmt"
	"strings"
)

// Scope is the depth class of a span. Smaller scopes enclose larger ones.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one cobra command, one build
	ScopeFile                     // one .spl file
	ScopePhase                    // lex, parse, codegen of one file
)

var scopeNames = [...]string{
	ScopeCommand: "command",
	ScopeFile:    "file",
	ScopePhase:   "phase",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return fmt.Sprintf("scope(%d)", uint8(s))
}

// Level is the deepest Scope that gets recorded. Its values line up with
// Scope so that LevelFile records ScopeCommand and ScopeFile spans.
type Level uint8

const (
	LevelOff Level = iota
	LevelCommand
	LevelFile
	LevelPhase
)

var levelNames = [...]string{
	LevelOff:     "off",
	LevelCommand: "command",
	LevelFile:    "file",
	LevelPhase:   "phase",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// Allows reports whether spans of scope s are recorded at this level.
func (l Level) Allows(s Scope) bool {
	return l != LevelOff && s != 0 && uint8(s) <= uint8(l)
}

// ParseLevel accepts off, command, file, phase and the alias "all".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "command":
		return LevelCommand, nil
	case "file":
		return LevelFile, nil
	case "phase", "all":
		return LevelPhase, nil
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want off|command|file|phase)", s)
}
