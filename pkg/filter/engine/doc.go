// Package engine evaluates condition trees against documents.
//
// Evaluation is a pure function of a tree and a document: it never fails,
// never mutates either input, and can run concurrently on a shared tree.
//
// # Leaf Semantics
//
// The leaf path is resolved against the document; an absent path compares as
// null.
//
//   - $eq, $ne use loose equality: numbers compare by value across Go numeric
//     types, a numeric string equals the number it spells ("20" == 20), null
//     equals only null, arrays and objects compare element by element.
//     Everything else must match in type and value.
//   - $gt, $gte, $lt, $lte order numbers (including a numeric string against a
//     number) and string pairs (byte-wise). Any other pairing does not match.
//
// # Group Semantics
//
//   - $and: true when every child is true; stops at the first false.
//   - $or: true when any child is true; stops at the first true.
//   - $not: negation of the conjunction of its children.
//
// A top-level list of nodes is an implicit $and; an empty list matches every
// document.
//
// # Basic Usage
//
//	nodes, _ := parser.Parse(spec)
//	if engine.EvaluateAll(nodes, doc) {
//	    // doc matches
//	}
//
// A Matcher adds debug logging of every leaf comparison; EvaluateTrace records
// the verdict of every evaluated node for explaining results.
package engine
