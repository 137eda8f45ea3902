package promql

import (
	"encoding/json"
	"errors"

	promParser "github.com/prometheus/prometheus/promql/parser"
)

// Node wraps a parsed PromQL expression in a tree with parent links.
// This allows us to walk the tree up & down and look for either parents
// or children of specific type. Which is useful if you, for example,
// want to check if a vector selector is wrapped inside a specific
// function call.
type Node struct {
	Parent   *Node
	Expr     promParser.Node
	Children []*Node
}

func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Expr.String())
}

func tree(expr promParser.Node, parent *Node) *Node {
	n := Node{
		Parent:   parent,
		Expr:     expr,
		Children: nil,
	}
	for _, child := range promParser.Children(expr) {
		n.Children = append(n.Children, tree(child, &n))
	}
	return &n
}

// Decode parses a PromQL expression and turns it into a Node
// instance with parent and children populated.
// Parser errors are unwrapped so the returned error carries only the
// problem description, without the position prefix, since the caller
// already knows which line the query sits on.
func Decode(expr string) (*Node, error) {
	node, err := promParser.ParseExpr(expr)
	if err != nil {
		var errs promParser.ParseErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return nil, errs[len(errs)-1].Err
		}
		return nil, err
	}
	return tree(node, nil), nil
}

// WalkUp iterates a Node looking for parents of specific type.
// Prometheus parser returns interfaces which makes it more difficult
// to figure out what kind of node we're dealing with, hence this
// helper takes a type parameter it tries to cast.
// It starts by checking the node passed to it and then walks
// up by visiting all parent nodes.
func WalkUp[T promParser.Node](node *Node) (nodes []*Node) {
	if node == nil {
		return nodes
	}
	if _, ok := node.Expr.(T); ok {
		nodes = append(nodes, node)
	}
	if node.Parent != nil {
		nodes = append(nodes, WalkUp[T](node.Parent)...)
	}
	return nodes
}

// WalkDown works just like WalkUp but it walks the tree
// down, visiting all children.
// It also starts by checking the node passed to it before walking
// down the tree.
func WalkDown[T promParser.Node](node *Node) (nodes []*Node) {
	if node == nil {
		return nodes
	}
	if _, ok := node.Expr.(T); ok {
		nodes = append(nodes, node)
	}
	for _, child := range node.Children {
		nodes = append(nodes, WalkDown[T](child)...)
	}
	return nodes
}
