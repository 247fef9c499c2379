package library

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory formula library.
// Data is lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	formulas map[string]storedFormula
	closed   bool
}

type storedFormula struct {
	source   string
	revision int
	updated  time.Time
}

// NewMemoryStore creates a new in-memory library.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		formulas: make(map[string]storedFormula),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(name, source string) error {
	if err := validName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.formulas[name] = storedFormula{
		source:   source,
		revision: m.formulas[name].revision + 1,
		updated:  time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	f, ok := m.formulas[name]
	if !ok {
		return "", ErrNotFound
	}
	return f.source, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.formulas))
	for name, f := range m.formulas {
		infos = append(infos, Info{
			Name:     name,
			Revision: f.revision,
			Updated:  f.updated,
			Size:     int64(len(f.source)),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.formulas, name)
	return nil
}

// Len returns the number of stored formulas.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.formulas)
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.formulas = nil
	return nil
}
