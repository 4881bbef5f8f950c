package codegen

import "maps"

// DefaultBuiltins maps sapling built-ins to their JavaScript counterparts.
var DefaultBuiltins = map[string]string{
	"print":    "console.log",
	"readfile": "readFileSync",
}

// builtinMap overlays extra on top of DefaultBuiltins.
func builtinMap(extra map[string]string) map[string]string {
	m := maps.Clone(DefaultBuiltins)
	maps.Copy(m, extra)
	return m
}
