// Package ast defines the condition tree produced by the filter parser.
//
// A condition tree is built from two node types:
//
//   - Leaf: a single comparison of the value at a document path against a
//     literal, using one of $eq, $ne, $gt, $gte, $lt, $lte.
//   - Group: a logic combinator ($and, $or, $not) over child nodes.
//
// A $not group negates the conjunction of its children, not each child.
//
// The parser returns a flat, ordered []Node whose elements are implicitly
// combined with AND. Node order is the order of the keys in the filter
// specification; it only affects short-circuiting, never the result.
//
// Trees are immutable once built and may be shared freely between goroutines.
//
// # Traversal
//
// Walk and Inspect visit nodes depth-first in order:
//
//	ast.Inspect(nodes, func(n ast.Node) bool {
//	    if leaf, ok := n.(*ast.Leaf); ok {
//	        fmt.Println(leaf.Field)
//	    }
//	    return true
//	})
//
// Format renders a compact text form, useful in logs and CLI output:
//
//	name $eq "Thomas" AND $or($and(age $eq 20), $and(age $eq 40))
package ast
