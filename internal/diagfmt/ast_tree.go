package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sapling/internal/ast"
)

// FormatASTTree prints the forest one node per line, each level of nesting
// marked with one '-'. Declared parameters are listed before the body.
func FormatASTTree(w io.Writer, forest []ast.Node) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# AST nodes (%d):\n", len(forest))
	for _, n := range forest {
		writeTreeNode(&b, n, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTreeNode(b *strings.Builder, n ast.Node, depth int) {
	b.WriteString(strings.Repeat("-", depth))
	switch n := n.(type) {
	case *ast.FnDecl:
		fmt.Fprintf(b, "FnDecl: '%s'\n", n.Name)
		for _, arg := range n.Args {
			b.WriteString(strings.Repeat("-", depth+1))
			if id, ok := arg.(*ast.Ident); ok {
				fmt.Fprintf(b, "Param: '%s'\n", id.Name)
				continue
			}
			fmt.Fprintf(b, "Param: <%s>\n", arg.Kind())
		}
	case *ast.FnCall:
		fmt.Fprintf(b, "FnCall: '%s'\n", n.Name)
	case *ast.Literal:
		fmt.Fprintf(b, "Literal (%s): %s\n", n.LitKind, n.Value)
	case *ast.Ident:
		fmt.Fprintf(b, "Ident: '%s'\n", n.Name)
	case *ast.Operator:
		fmt.Fprintf(b, "Operator: %s\n", n.Symbol)
	default:
		fmt.Fprintf(b, "%s\n", n.Kind())
	}
	for _, child := range n.Children() {
		writeTreeNode(b, child, depth+1)
	}
}

// NodeJSON is the serialised form of an ast.Node.
type NodeJSON struct {
	Kind     string     `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Literal  string     `json:"literal,omitempty"`
	Value    string     `json:"value,omitempty"`
	Loc      string     `json:"loc"`
	Args     []NodeJSON `json:"args,omitempty"`
	Children []NodeJSON `json:"children,omitempty"`
}

// BuildNodeJSON converts a node and its subtree.
func BuildNodeJSON(n ast.Node) NodeJSON {
	out := NodeJSON{Kind: n.Kind().String(), Loc: n.Pos().String()}
	switch n := n.(type) {
	case *ast.FnDecl:
		out.Name = n.Name
		for _, arg := range n.Args {
			out.Args = append(out.Args, BuildNodeJSON(arg))
		}
	case *ast.FnCall:
		out.Name = n.Name
	case *ast.Literal:
		out.Literal = n.LitKind.String()
		out.Value = n.Value
	case *ast.Ident:
		out.Name = n.Name
	case *ast.Operator:
		out.Value = n.Symbol
	}
	for _, child := range n.Children() {
		out.Children = append(out.Children, BuildNodeJSON(child))
	}
	return out
}

// FormatASTJSON writes the forest as an indented JSON array.
func FormatASTJSON(w io.Writer, forest []ast.Node) error {
	output := make([]NodeJSON, 0, len(forest))
	for _, n := range forest {
		output = append(output, BuildNodeJSON(n))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
