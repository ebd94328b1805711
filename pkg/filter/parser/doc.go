// Package parser compiles Mongo-style filter specifications into condition
// trees.
//
// A specification is a mapping. Each key is classified once as either a field
// key or a logic key ($or, $and, $not, matched by prefix):
//
//	{"age": 20}                                  age $eq 20
//	{"age": {"$gt": 20, "$lt": 40}}              age $gt 20 AND age $lt 40
//	{"$or": [{"age": 20}, {"age": 40}]}          $or($and(age $eq 20), $and(age $eq 40))
//	{"$not": {"age": {"$gt": 20}}}               $not(age $gt 20)
//
// Keys are processed in the order of the mapping; every key contributes zero
// or more sibling nodes to the returned list, which is implicitly combined by
// AND. An empty mapping yields an empty list that matches every document.
//
// Mappings decoded with document.Decode keep their source order. Plain Go maps
// have no order and are processed sorted by key.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	nodes, err := p.ParseBytes([]byte(`{"name": "Thomas", "$or": [{"age": 20}, {"age": 40}]}`))
//	if err != nil {
//	    var perr *errors.Error
//	    if stderrors.As(err, &perr) {
//	        fmt.Println(perr.Kind, perr.Location)
//	    }
//	}
//
// Parsing is terminal on the first error; no partial tree is returned.
package parser
