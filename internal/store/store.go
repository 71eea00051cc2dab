// Package store persists analysis result tables keyed by ticker.
// Stores are injected; there is no process-wide singleton.
package store

import (
	"context"
	"errors"
	"sync"

	"gapscan/pkg/model"
)

// ErrNotFound is returned when no result table exists for a ticker.
var ErrNotFound = errors.New("no results for ticker")

// Store is a keyed result-table store. Put is last-write-wins per
// ticker; Get returns the most recent table.
type Store interface {
	Put(ctx context.Context, table *model.ResultTable) error
	Get(ctx context.Context, ticker string) (*model.ResultTable, error)
	Close() error
}

// MemoryStore keeps the latest result table per ticker in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*model.ResultTable
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*model.ResultTable)}
}

func (s *MemoryStore) Put(ctx context.Context, table *model.ResultTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.Ticker] = table
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, ticker string) (*model.ResultTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[ticker]
	if !ok {
		return nil, ErrNotFound
	}
	return table, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
