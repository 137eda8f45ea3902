package promql

import (
	promParser "github.com/prometheus/prometheus/promql/parser"
)

// VectorSelectors returns every vector selector found in the tree, as
// tree nodes so that callers can walk up from each selector.
func VectorSelectors(node *Node) []*Node {
	return WalkDown[*promParser.VectorSelector](node)
}

// InsideCall reports whether the node lives inside a call to any of the
// named functions.
func InsideCall(node *Node, names ...string) bool {
	for _, parent := range WalkUp[*promParser.Call](node) {
		call := parent.Expr.(*promParser.Call)
		for _, name := range names {
			if call.Func.Name == name {
				return true
			}
		}
	}
	return false
}
