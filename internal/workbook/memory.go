package workbook

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps worksheets in memory. It backs tests and the seeded
// development workspace.
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string]Table
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]Table)}
}

// Seed installs a table without touching its revision, replacing any
// existing sheet of the same name.
func (s *MemoryStore) Seed(table Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[table.Sheet] = table.Clone()
}

// Load returns a copy of the named worksheet, or an empty table when absent.
func (s *MemoryStore) Load(ctx context.Context, sheet string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.sheets[sheet]
	if !ok {
		return Table{Sheet: sheet}, nil
	}
	return table.Clone(), nil
}

// Save replaces the worksheet contents, enforcing the revision guard.
func (s *MemoryStore) Save(ctx context.Context, table Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.sheets[table.Sheet].Revision
	if current != table.Revision {
		return fmt.Errorf("%w: sheet %s at %d, table loaded at %d", ErrStaleRevision, table.Sheet, current, table.Revision)
	}
	stored := table.Clone()
	stored.Revision = table.Revision + 1
	s.sheets[table.Sheet] = stored
	return nil
}
