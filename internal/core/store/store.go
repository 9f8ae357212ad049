// Package store provides the durable keyed snapshot store the grid reads
// and writes full JSON snapshots against: the rule collection, the column
// width map, and the column filter map each live under a fixed key.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/contentgrid/rulegrid/internal/core/db"
)

// Snapshot keys used by the grid.
const (
	KeyRules         = "rule-grid-rules"
	KeyColumnWidths  = "rule-grid-column-widths"
	KeyColumnFilters = "rule-grid-column-filters"
)

// Store is the record-store capability the grid consumes. Read unmarshals
// the snapshot under key into dest and reports whether the key existed;
// absence is not an error, the caller keeps its default. Write replaces
// the snapshot under key.
type Store interface {
	Read(key string, dest any) (bool, error)
	Write(key string, value any) error
}

// SQLStore persists snapshots through the named-query layer.
type SQLStore struct {
	queries *db.Queries
}

// NewSQLStore wraps a query layer as a Store.
func NewSQLStore(queries *db.Queries) *SQLStore {
	return &SQLStore{queries: queries}
}

// Read implements Store.
func (s *SQLStore) Read(key string, dest any) (bool, error) {
	var raw string
	err := s.queries.Get("snapshot-get", &raw, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// Write implements Store.
func (s *SQLStore) Write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.queries.Exec("snapshot-set", key, string(raw), updatedAt); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// Mem is an in-memory Store for tests and ephemeral sessions. Values are
// round-tripped through JSON so reads observe the same shapes as SQLStore.
type Mem struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{data: make(map[string]json.RawMessage)}
}

// Read implements Store.
func (m *Mem) Read(key string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Write implements Store.
func (m *Mem) Write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}
