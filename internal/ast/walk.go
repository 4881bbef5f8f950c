package ast

// Walk visits n and its descendants in pre-order. If fn returns false the
// children of that node are skipped. Declared parameters of FnDecl are visited
// before the body.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

// WalkForest walks every root in order.
func WalkForest(forest []Node, fn func(n Node, depth int) bool) {
	for _, n := range forest {
		walk(n, 0, fn)
	}
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	if decl, ok := n.(*FnDecl); ok {
		for _, arg := range decl.Args {
			walk(arg, depth+1, fn)
		}
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the forest, parameters included.
func Count(forest []Node) int {
	total := 0
	WalkForest(forest, func(Node, int) bool {
		total++
		return true
	})
	return total
}
