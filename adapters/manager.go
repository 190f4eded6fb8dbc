// manager.go - Registry fuer benannte Adapter
//
// Dieses Modul enthaelt:
// - Manager: explizite Map von Adapter-Namen auf ihre Parameter-Stores
// - Add/Remove/Get/Names: Registry-Operationen
package adapters

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrAdapterNotFound - Adapter-Name ist nicht registriert
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrAdapterExists - Adapter-Name ist bereits registriert
	ErrAdapterExists = errors.New("adapter already exists")
)

// Manager verwaltet die gleichzeitig geladenen Adapter eines Basis-Modells.
// Die Registry gehoert dem Manager; die Merge-Engine selbst haelt keinerlei
// Zustand zwischen Aufrufen.
type Manager struct {
	mu       sync.RWMutex
	adapters map[string]Store
}

// NewManager erstellt eine leere Adapter-Registry
func NewManager() *Manager {
	return &Manager{adapters: make(map[string]Store)}
}

// Add registriert einen Adapter unter einem neuen Namen
func (m *Manager) Add(name string, s Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.adapters[name]; ok {
		return fmt.Errorf("%w: %q", ErrAdapterExists, name)
	}

	m.adapters[name] = s
	return nil
}

// Remove entfernt einen registrierten Adapter
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.adapters[name]; !ok {
		return fmt.Errorf("%w: %q", ErrAdapterNotFound, name)
	}

	delete(m.adapters, name)
	return nil
}

// Get gibt den Parameter-Store eines Adapters zurueck
func (m *Manager) Get(name string) (Store, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.adapters[name]
	return s, ok
}

// Names gibt alle registrierten Adapter-Namen sortiert zurueck
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.adapters))
	for name := range m.adapters {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// Len gibt die Anzahl der registrierten Adapter zurueck
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.adapters)
}
