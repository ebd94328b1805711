package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"mercator-hq/docfilter/pkg/document"

	_ "modernc.org/sqlite" // SQLite driver
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads documents from a SQLite table with an "id" column and
// a "body" column holding JSON text. The database is opened read-only.
type SQLiteSource struct {
	db    *sql.DB
	path  string
	table string
}

// SQLiteConfig configures a SQLite source.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// Table is the table holding documents.
	// Default: "documents"
	Table string

	// BusyTimeout is how long to wait for locks held by writers.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// OpenSQLite opens the database and checks that the table exists.
func OpenSQLite(cfg SQLiteConfig) (*SQLiteSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.Table == "" {
		cfg.Table = "documents"
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if !identifierPattern.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid table name %q", cfg.Table)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=query_only(1)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, cfg.Table).Scan(&name)
	if err != nil {
		db.Close()
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("table %q not found in %s", cfg.Table, cfg.Path)
		}
		return nil, fmt.Errorf("failed to inspect database: %w", err)
	}

	return &SQLiteSource{db: db, path: cfg.Path, table: cfg.Table}, nil
}

// Name returns "sqlite:<path>/<table>".
func (s *SQLiteSource) Name() string {
	return fmt.Sprintf("sqlite:%s/%s", s.path, s.table)
}

// Records decodes every row in rowid order.
func (s *SQLiteSource) Records(ctx context.Context) ([]document.Record, error) {
	// table is validated as an identifier in OpenSQLite
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, body FROM %s ORDER BY rowid`, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var records []document.Record
	for rows.Next() {
		var (
			id   any
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		doc, err := document.Decode(body)
		if err != nil {
			return nil, fmt.Errorf("document %v: %w", id, err)
		}

		records = append(records, document.Record{ID: formatID(id), Doc: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return records, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func formatID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
