// Package catalog implements the storage manager: a named-table registry.
// Unlike the original's process-wide singleton, Manager here is an
// ordinary value injected into whatever needs table lookup (a GetTable
// operator, a REPL, a test), so tests can each build a fresh instance
// instead of sharing global state.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

// Manager is a concurrency-safe registry of named tables.
type Manager struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{tables: make(map[string]*table.Table)}
}

// AddTable registers t under name. Fails with ErrDuplicateName if the name
// is already taken.
func (m *Manager) AddTable(name string, t *table.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tables[name]; exists {
		return fmt.Errorf("%w: %q", types.ErrDuplicateName, name)
	}
	m.tables[name] = t
	return nil
}

// DropTable removes name from the registry. Fails with ErrNoSuchTable if
// it isn't present.
func (m *Manager) DropTable(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tables[name]; !exists {
		return fmt.Errorf("%w: %q", types.ErrNoSuchTable, name)
	}
	delete(m.tables, name)
	return nil
}

// GetTable returns the table registered under name, failing with
// ErrNoSuchTable if none is.
func (m *Manager) GetTable(name string) (*table.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, exists := m.tables[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", types.ErrNoSuchTable, name)
	}
	return t, nil
}

// HasTable reports whether name is registered.
func (m *Manager) HasTable(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.tables[name]
	return exists
}

// TableNames returns every registered name, sorted for determinism.
func (m *Manager) TableNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops every registered table.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]*table.Table)
}
