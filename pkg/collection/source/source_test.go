package source

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/docfilter/pkg/config"
	"mercator-hq/docfilter/pkg/document"

	"github.com/google/uuid"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func recordIDs(records []document.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestMemorySource(t *testing.T) {
	s := NewMemorySource("people",
		document.Record{ID: "thomas", Doc: map[string]any{"age": 20}},
		document.Record{Doc: map[string]any{"age": 40}},
	)
	id := s.Add(document.Record{Doc: map[string]any{"age": 30}})

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", id, err)
	}

	records, err := s.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != "thomas" || records[2].ID != id {
		t.Errorf("unexpected order: %v", recordIDs(records))
	}
	if records[1].ID == "" {
		t.Error("record without ID was not assigned one")
	}
	if s.Name() != "memory:people" {
		t.Errorf("Name() = %q", s.Name())
	}

	records[0].ID = "changed"
	again, _ := s.Records(context.Background())
	if again[0].ID != "thomas" {
		t.Error("Records() did not return a copy")
	}
}

func TestMemorySource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemorySource("x").Records(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"name": "Anna", "age": 40}`)
	writeFile(t, dir, "a.yaml", "name: Thomas\nage: 20\n")
	writeFile(t, dir, "c.YML", "name: Lena\n")
	writeFile(t, dir, "notes.txt", "not a document")
	writeFile(t, dir, ".hidden.json", `{}`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	records, err := NewDirSource(dir).Records(context.Background())
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}

	got := strings.Join(recordIDs(records), ",")
	if got != "a,b,c" {
		t.Fatalf("record IDs = %s, want a,b,c", got)
	}

	name, _ := document.Lookup(records[0].Doc, "name")
	if name != "Thomas" {
		t.Errorf("a.name = %v, want Thomas", name)
	}
	obj, ok := records[1].Doc.(*document.Object)
	if !ok || strings.Join(obj.Keys(), ",") != "name,age" {
		t.Errorf("b.json keys not in file order: %#v", records[1].Doc)
	}
}

func TestDirSource_Errors(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "missing")).Records(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}

	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{"name": `)
	_, err := NewDirSource(dir).Records(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("expected decode error naming the file, got %v", err)
	}
}

func createDatabase(t *testing.T, schema string, rows [][2]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	for _, row := range rows {
		if _, err := db.Exec(`INSERT INTO people (id, body) VALUES (?, ?)`, row[0], row[1]); err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := createDatabase(t, `CREATE TABLE people (id TEXT PRIMARY KEY, body TEXT NOT NULL)`, [][2]any{
		{"zoe", `{"name": "Zoe", "age": 31}`},
		{"adam", `{"name": "Adam", "address": {"city": "Berlin"}}`},
	})

	s, err := OpenSQLite(SQLiteConfig{Path: path, Table: "people"})
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer s.Close()

	records, err := s.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}

	if got := strings.Join(recordIDs(records), ","); got != "zoe,adam" {
		t.Errorf("record IDs = %s, want insertion order zoe,adam", got)
	}
	if city, _ := document.Lookup(records[1].Doc, "address.city"); city != "Berlin" {
		t.Errorf("address.city = %v, want Berlin", city)
	}
	if !strings.HasPrefix(s.Name(), "sqlite:") || !strings.HasSuffix(s.Name(), "/people") {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestSQLiteSource_IntegerIDs(t *testing.T) {
	path := createDatabase(t, `CREATE TABLE people (id INTEGER PRIMARY KEY, body TEXT)`, [][2]any{
		{7, `{"a": 1}`},
		{3, `{"a": 2}`},
	})

	s, err := OpenSQLite(SQLiteConfig{Path: path, Table: "people"})
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer s.Close()

	records, err := s.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}
	// an INTEGER PRIMARY KEY is the rowid
	if got := strings.Join(recordIDs(records), ","); got != "3,7" {
		t.Errorf("record IDs = %s, want 3,7", got)
	}
}

func TestOpenSQLite_Errors(t *testing.T) {
	path := createDatabase(t, `CREATE TABLE people (id TEXT, body TEXT)`, nil)

	tests := []struct {
		name string
		cfg  SQLiteConfig
		want string
	}{
		{name: "empty path", cfg: SQLiteConfig{}, want: "db path cannot be empty"},
		{name: "bad table name", cfg: SQLiteConfig{Path: path, Table: "people; --"}, want: "invalid table name"},
		{name: "missing table", cfg: SQLiteConfig{Path: path, Table: "documents"}, want: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenSQLite(tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("OpenSQLite() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.json", `{"x": 1}`)

	src, closeFn, err := FromConfig(config.SourceConfig{Type: "dir", Path: dir})
	if err != nil {
		t.Fatalf("FromConfig(dir) failed: %v", err)
	}
	defer closeFn()
	if _, ok := src.(*DirSource); !ok {
		t.Errorf("FromConfig(dir) returned %T", src)
	}

	dbPath := createDatabase(t, `CREATE TABLE people (id TEXT, body TEXT)`, nil)
	src, closeFn, err = FromConfig(config.SourceConfig{Type: "sqlite", Path: dbPath, Table: "people"})
	if err != nil {
		t.Fatalf("FromConfig(sqlite) failed: %v", err)
	}
	if _, ok := src.(*SQLiteSource); !ok {
		t.Errorf("FromConfig(sqlite) returned %T", src)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close failed: %v", err)
	}

	if _, _, err := FromConfig(config.SourceConfig{Type: "mongo"}); err == nil {
		t.Error("expected error for unsupported type")
	}
}
