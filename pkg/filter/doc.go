// Package filter compiles Mongo-style filter specifications into reusable
// queries.
//
// A specification is compiled once and matched against any number of
// documents, possibly from many goroutines:
//
//	q, err := filter.CompileBytes([]byte(`{"age": {"$gte": 18}, "$or": [{"city": "Berlin"}, {"city": "Paris"}]}`))
//	if err != nil {
//		return err // *errors.Error with Kind, Location and Suggestion
//	}
//	for _, doc := range docs {
//		if q.Match(doc) {
//			...
//		}
//	}
//
// The grammar lives in the parser subpackage, the condition tree in ast,
// and the matching semantics in engine.
package filter
