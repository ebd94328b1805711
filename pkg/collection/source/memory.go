package source

import (
	"context"
	"sync"

	"mercator-hq/docfilter/pkg/document"

	"github.com/google/uuid"
)

// MemorySource holds documents in memory. Records without an ID are given a
// random UUID when added.
type MemorySource struct {
	name string

	mu      sync.RWMutex
	records []document.Record
}

// NewMemorySource creates a memory source holding records.
func NewMemorySource(name string, records ...document.Record) *MemorySource {
	s := &MemorySource{name: name}
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Name returns "memory:<name>".
func (s *MemorySource) Name() string {
	return "memory:" + s.name
}

// Add appends a record and returns its ID.
func (s *MemorySource) Add(r document.Record) string {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()

	return r.ID
}

// Records returns a snapshot of the records in insertion order.
func (s *MemorySource) Records(ctx context.Context) ([]document.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]document.Record(nil), s.records...), nil
}
