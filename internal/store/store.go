// Package store persists whole entity collections as snapshots. A
// repository loads its collection once at startup and writes the full
// snapshot back after every mutation; there is no incremental append
// log and no transaction spanning collections.
package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Collection names used by the repositories.
const (
	Recipes  = "recipes"
	Users    = "users"
	Comments = "comments"
)

// Store reads and writes one collection at a time. Load returns an
// empty slice when no snapshot exists yet. Save replaces the whole
// snapshot; callers must pass the complete collection.
type Store interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Save(ctx context.Context, collection string, docs []json.RawMessage) error
	Close() error
}

// Memory keeps snapshots in process memory. Used as the default
// backend and throughout the tests.
type Memory struct {
	mu   sync.Mutex
	data map[string][]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]json.RawMessage)}
}

func (m *Memory) Load(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]json.RawMessage, len(m.data[collection]))
	copy(docs, m.data[collection])
	return docs, nil
}

func (m *Memory) Save(_ context.Context, collection string, docs []json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]json.RawMessage, len(docs))
	copy(snapshot, docs)
	m.data[collection] = snapshot
	return nil
}

func (m *Memory) Close() error { return nil }
