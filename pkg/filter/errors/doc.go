// Package errors provides the typed parse errors returned by the filter parser.
//
// Every error has a Kind, the offending key, and the location of that key inside
// the filter specification, written as a path such as "$or[1].age.$gtt".
// Unknown operators carry a suggestion computed by edit distance.
//
// Kinds can be tested with the standard errors package:
//
//	_, err := parser.Parse(spec)
//	if errors.Is(err, filterErrors.ErrUnknownOperator) {
//	    ...
//	}
//
//	var perr *filterErrors.Error
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Location, perr.Suggestion)
//	}
//
// Errors are formatted as:
//
//	[unknown_operator] unknown operator "$gtt"
//	  --> age.$gtt
//	  = suggestion: Did you mean '$gt'?
package errors
