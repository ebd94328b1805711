package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mercator-hq/docfilter/pkg/collection"
	"mercator-hq/docfilter/pkg/collection/source"
	"mercator-hq/docfilter/pkg/document"
	filtererrors "mercator-hq/docfilter/pkg/filter/errors"
)

func people() *source.MemorySource {
	return source.NewMemorySource("people",
		document.Record{ID: "1", Doc: map[string]any{"name": "Thomas", "age": 20}},
		document.Record{ID: "2", Doc: map[string]any{"name": "Andrew", "age": 40}},
		document.Record{ID: "3", Doc: map[string]any{"name": "Thomas", "age": 40}},
	)
}

type resultLog struct {
	mu      sync.Mutex
	results []*collection.Result
}

func (l *resultLog) add(r *collection.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, r)
}

func (l *resultLog) last() *collection.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.results) == 0 {
		return nil
	}
	return l.results[len(l.results)-1]
}

func matchedIDs(r *collection.Result) []string {
	ids := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		ids = append(ids, m.ID)
	}
	return ids
}

func newTestRunner(t *testing.T, filterPath string, src source.Source, log *resultLog) *Runner {
	t.Helper()

	scanner, err := collection.NewScanner(collection.WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = scanner.Close() })

	r, err := NewRunner(RunnerConfig{
		FilterPath: filterPath,
		Scanner:    scanner,
		Source:     src,
		OnResult:   log.add,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func writeFilter(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewRunner_Validation(t *testing.T) {
	scanner, err := collection.NewScanner()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = scanner.Close() }()

	tests := []struct {
		name string
		cfg  RunnerConfig
	}{
		{"missing filter path", RunnerConfig{Scanner: scanner, Source: people()}},
		{"missing scanner", RunnerConfig{FilterPath: "f.yaml", Source: people()}},
		{"missing source", RunnerConfig{FilterPath: "f.yaml", Scanner: scanner}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(tt.cfg); err == nil {
				t.Error("NewRunner() error = nil, want error")
			}
		})
	}
}

func TestRunner_ReloadAndRescan(t *testing.T) {
	filterPath := filepath.Join(t.TempDir(), "filter.yaml")
	writeFilter(t, filterPath, "name: Thomas\n")

	log := &resultLog{}
	r := newTestRunner(t, filterPath, people(), log)

	if err := r.Rescan(context.Background()); !errors.Is(err, ErrNoFilter) {
		t.Fatalf("Rescan() before Reload error = %v, want ErrNoFilter", err)
	}

	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := matchedIDs(log.last()); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("matches = %v, want [1 3]", got)
	}

	// A broken filter keeps the previous one active.
	writeFilter(t, filterPath, "name:\n  $regex: Tho\n")
	err := r.Reload(context.Background())
	if kind, ok := filtererrors.KindOf(err); !ok || kind != filtererrors.KindUnknownOperator {
		t.Fatalf("Reload() error = %v, want unknown operator", err)
	}
	if r.LastError() == nil {
		t.Error("LastError() = nil after failed reload")
	}
	if r.Query() == nil || r.Query().String() != `name $eq "Thomas"` {
		t.Errorf("active filter = %v, want previous filter", r.Query())
	}

	if err := r.Rescan(context.Background()); err != nil {
		t.Fatalf("Rescan() error = %v", err)
	}
	if r.LastError() != nil {
		t.Errorf("LastError() = %v after successful rescan", r.LastError())
	}
	if r.LastRun().IsZero() {
		t.Error("LastRun() is zero")
	}

	writeFilter(t, filterPath, "age:\n  $gt: 30\n")
	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := matchedIDs(r.LastResult()); len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Errorf("matches = %v, want [2 3]", got)
	}
}

func TestRunner_HandleChange(t *testing.T) {
	dir := t.TempDir()
	filterPath := filepath.Join(dir, "filter.yaml")
	writeFilter(t, filterPath, "name: Thomas\n")

	src := people()
	log := &resultLog{}
	r := newTestRunner(t, filterPath, src, log)
	if err := r.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	handle := r.HandleChange(context.Background())

	// A document change rescans with the current filter even if the file
	// on disk has changed.
	writeFilter(t, filterPath, "name: Andrew\n")
	src.Add(document.Record{ID: "4", Doc: map[string]any{"name": "Thomas"}})
	if err := handle([]Event{{Path: filepath.Join(dir, "docs", "4.json"), Op: "CREATE"}}); err != nil {
		t.Fatal(err)
	}
	if got := matchedIDs(log.last()); len(got) != 3 {
		t.Errorf("matches after document change = %v, want 3", got)
	}

	if err := handle([]Event{{Path: filterPath, Op: "WRITE"}}); err != nil {
		t.Fatal(err)
	}
	if got := matchedIDs(log.last()); len(got) != 1 || got[0] != "2" {
		t.Errorf("matches after filter change = %v, want [2]", got)
	}

	if err := handle(nil); err != nil {
		t.Errorf("empty burst error = %v", err)
	}
}

func TestRunner_HandleChange_MixedBurst(t *testing.T) {
	dir := t.TempDir()
	filterPath := filepath.Join(dir, "filter.yaml")
	writeFilter(t, filterPath, "age: 20\n")

	log := &resultLog{}
	r := newTestRunner(t, filterPath, people(), log)
	if err := r.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	// The filter edit comes first and a document edit closes the burst.
	writeFilter(t, filterPath, "age: 40\n")
	burst := []Event{
		{Path: filterPath, Op: "WRITE"},
		{Path: filepath.Join(dir, "docs", "1.json"), Op: "WRITE"},
	}
	if err := r.HandleChange(context.Background())(burst); err != nil {
		t.Fatal(err)
	}

	if got := r.Query().String(); got != "age $eq 40" {
		t.Errorf("active filter = %q, want %q", got, "age $eq 40")
	}
	if got := matchedIDs(log.last()); len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Errorf("matches = %v, want [2 3]", got)
	}
}

func TestRunner_Run(t *testing.T) {
	filterPath := filepath.Join(t.TempDir(), "filter.yaml")

	t.Run("initial load failure", func(t *testing.T) {
		r := newTestRunner(t, filterPath, people(), &resultLog{})
		if err := r.Run(context.Background(), nil, nil); err == nil {
			t.Error("Run() error = nil, want error for missing filter")
		}
	})

	t.Run("watches filter file", func(t *testing.T) {
		writeFilter(t, filterPath, "name: Thomas\n")

		log := &resultLog{}
		r := newTestRunner(t, filterPath, people(), log)

		fw, err := NewFileWatcher(&FileWatcherConfig{
			Paths:            []string{filterPath},
			DebounceInterval: 20 * time.Millisecond,
		}, nil)
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- r.Run(ctx, fw, nil) }()

		time.Sleep(150 * time.Millisecond)
		writeFilter(t, filterPath, "age:\n  $lt: 30\n")

		deadline := time.After(2 * time.Second)
		for {
			if res := log.last(); res != nil && len(res.Matches) == 1 && res.Matches[0].ID == "1" && r.Query().String() == "age $lt 30" {
				break
			}
			select {
			case <-deadline:
				t.Fatalf("filter change not picked up, last result %+v", log.last())
			case <-time.After(20 * time.Millisecond):
			}
		}

		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})
}
