// Package source provides the document sources a collection scan reads from:
// in-memory records, a directory of JSON/YAML files and a SQLite table.
package source
