// Package document defines the dynamically shaped document model that filters
// are evaluated against, and the path resolver used to address values inside it.
//
// A document is a plain Go value:
//
//   - object: *Object (ordered keys) or map[string]any
//   - array: []any
//   - scalar: string, bool, nil, or any Go integer or float type
//
// Documents are never mutated by this package or by the filter engine.
//
// # Decoding
//
// Decode parses JSON or YAML text into the model while preserving the key order
// of every object. Key order matters for filter specifications, where it decides
// the order of the parsed conditions:
//
//	doc, err := document.Decode([]byte(`{"name": "Thomas", "age": 20}`))
//
// # Paths
//
// A Path is a dotted field name split into segments. Resolve walks a document
// one segment at a time and reports whether the value exists:
//
//	v, ok := document.Resolve(doc, document.ParsePath("address.lines.0"))
package document
