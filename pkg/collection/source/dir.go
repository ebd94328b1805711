package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mercator-hq/docfilter/pkg/document"
)

// documentExtensions are the file extensions DirSource loads.
var documentExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// DirSource reads one document per file from a directory. The record ID is
// the file name without its extension. Subdirectories are not descended.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Name returns "dir:<path>".
func (s *DirSource) Name() string {
	return "dir:" + s.dir
}

// Records decodes every document file, ordered by file name.
func (s *DirSource) Records(ctx context.Context) ([]document.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var records []document.Record
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if entry.IsDir() || !documentExtensions[ext] || strings.HasPrefix(name, ".") {
			continue
		}

		doc, err := document.DecodeFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}

		records = append(records, document.Record{
			ID:  strings.TrimSuffix(name, filepath.Ext(name)),
			Doc: doc,
		})
	}

	return records, nil
}
