package ast

// Visitor is called for each node during Walk. Returning a nil Visitor stops
// the descent into the node's children.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses nodes depth-first in order, calling v.Visit for each node.
func Walk(v Visitor, nodes ...Node) {
	for _, n := range nodes {
		walk(v, n)
	}
}

func walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	child := v.Visit(n)
	if child == nil {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			walk(child, c)
		}
	}
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses nodes depth-first, calling f for each node.
// If f returns false the children of that node are skipped.
func Inspect(nodes []Node, f func(Node) bool) {
	Walk(inspector(f), nodes...)
}

// Leaves returns every leaf in nodes, in order.
func Leaves(nodes []Node) []*Leaf {
	var leaves []*Leaf
	Inspect(nodes, func(n Node) bool {
		if l, ok := n.(*Leaf); ok {
			leaves = append(leaves, l)
		}
		return true
	})
	return leaves
}

// Depth returns the group nesting depth of nodes. A flat list of leaves has
// depth 0.
func Depth(nodes []Node) int {
	deepest := 0
	for _, n := range nodes {
		g, ok := n.(*Group)
		if !ok {
			continue
		}
		if d := 1 + Depth(g.Children); d > deepest {
			deepest = d
		}
	}
	return deepest
}
