// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sapling/internal/ast"
	"sapling/internal/source"
	"sapling/internal/token"
)

func contentLen(sf *source.File) (uint32, error) {
	n, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return 0, fmt.Errorf("len content overflow: %w", err)
	}
	return n, nil
}

// CheckTokenInvariants verifies a token stream against its file:
// 1) every span belongs to sf and lies within content bounds
// 2) spans are ordered and do not overlap
// 3) text is non-empty and locations are 1-based
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := contentLen(sf)
	if err != nil {
		return err
	}
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span points to file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.Start >= sp.End || sp.End > size {
			return fmt.Errorf("token %d: span %s out of bounds (len %d)", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %s overlaps previous end %d", i, sp, prevEnd)
		}
		if tok.Text == "" {
			return fmt.Errorf("token %d: empty text", i)
		}
		if tok.Loc.Line == 0 || tok.Loc.Col == 0 {
			return fmt.Errorf("token %d: location %s is not 1-based", i, tok.Loc)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckSpanInvariants verifies node spans of a parsed forest:
// 1) every span is non-empty and within content bounds
// 2) a node's span covers its parameters and children
// 3) roots follow each other without overlapping
func CheckSpanInvariants(forest []ast.Node, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := contentLen(sf)
	if err != nil {
		return err
	}

	var check func(n ast.Node, parent *source.Span) error
	check = func(n ast.Node, parent *source.Span) error {
		sp := n.Span()
		if sp.File != sf.ID || sp.Empty() || sp.End > size {
			return fmt.Errorf("%s at %s: bad span %s (len %d)", n.Kind(), n.Pos(), sp, size)
		}
		if parent != nil && !parent.Contains(sp) {
			return fmt.Errorf("%s at %s: span %s escapes parent %s", n.Kind(), n.Pos(), sp, *parent)
		}
		var kids []ast.Node
		if decl, ok := n.(*ast.FnDecl); ok {
			kids = append(kids, decl.Args...)
		}
		kids = append(kids, n.Children()...)
		for _, child := range kids {
			if err := check(child, &sp); err != nil {
				return err
			}
		}
		return nil
	}

	var prevEnd uint32
	for i, root := range forest {
		if err := check(root, nil); err != nil {
			return err
		}
		sp := root.Span()
		if sp.Start < prevEnd {
			return fmt.Errorf("root %d: span %s overlaps previous root", i, sp)
		}
		prevEnd = sp.End
	}
	return nil
}
