// Docfilter compiles Mongo-style document filters and runs them against
// collections of JSON/YAML documents.
//
// Usage:
//
//	# Print the documents of a directory that match a filter
//	docfilter query --filter thomas.yaml --path people/
//
//	# Query a SQLite table of JSON documents
//	docfilter query --filter adults.json --source sqlite --path people.db --table people
//
//	# Check filter files without running them
//	docfilter validate --dir filters/
//
//	# Show how a filter evaluates against one document
//	docfilter explain --filter thomas.yaml --doc people/1.json
//
//	# Re-run whenever the filter or documents change, and every five minutes
//	docfilter watch --filter thomas.yaml --path people/ --schedule "*/5 * * * *"
package main

func main() {
	Execute()
}
