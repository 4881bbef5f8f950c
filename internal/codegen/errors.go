package codegen

import (
	"fmt"

	"sapling/internal/ast"
	"sapling/internal/diag"
)

// UnhandledNodeError is returned when a node kind has no rendering rule.
type UnhandledNodeError struct {
	Node ast.Node
}

func (e *UnhandledNodeError) Error() string {
	return fmt.Sprintf("unhandled node type '%s' at %s", e.Node.Kind(), e.Node.Pos())
}

func (e *UnhandledNodeError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.GenUnhandledNode, e.Node.Span(), e.Error())
}
