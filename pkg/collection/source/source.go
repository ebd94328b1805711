package source

import (
	"context"
	"fmt"

	"mercator-hq/docfilter/pkg/config"
	"mercator-hq/docfilter/pkg/document"
)

// Source supplies the documents a query is run against.
// Records returns them in the source's natural order.
type Source interface {
	// Name identifies the source in logs and metrics (e.g. "dir:./people").
	Name() string

	// Records loads every document of the source.
	Records(ctx context.Context) ([]document.Record, error)
}

// FromConfig opens the source described by the source configuration section.
// The returned closer releases any resources held by the source.
func FromConfig(cfg config.SourceConfig) (Source, func() error, error) {
	switch cfg.Type {
	case "dir", "":
		return NewDirSource(cfg.Path), func() error { return nil }, nil
	case "sqlite":
		s, err := OpenSQLite(SQLiteConfig{Path: cfg.Path, Table: cfg.Table})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}
