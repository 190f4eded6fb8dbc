// store.go - Parameter-Store fuer benannte Adapter-Tensoren
//
// Dieses Modul enthaelt:
// - Store: Faehigkeits-Schnittstelle ueber benannte Parameter-Slots
// - MemoryStore: Map-basierte In-Memory-Implementierung
package adapters

import (
	"slices"
	"sync"

	"github.com/lorakit/lorakit/tensor"
)

// Store ist die Sicht der Merge-Orchestrierung auf die Parameter eines
// Adapters: benannte Slots mit je einem Tensor. Die Engine haengt nur an
// dieser Schnittstelle, nie an einer konkreten Modell-Hierarchie.
type Store interface {
	// Get gibt den Tensor eines Slots zurueck, falls vorhanden
	Get(name string) (*tensor.Tensor, bool)

	// Set schreibt den Tensor eines Slots
	Set(name string, t *tensor.Tensor)

	// Keys gibt alle Slot-Namen zurueck
	Keys() []string
}

// MemoryStore haelt Adapter-Parameter in einer Map
type MemoryStore struct {
	mu     sync.RWMutex
	params map[string]*tensor.Tensor
}

// NewMemoryStore erstellt einen leeren MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{params: make(map[string]*tensor.Tensor)}
}

// Get gibt den Tensor eines Slots zurueck
func (s *MemoryStore) Get(name string) (*tensor.Tensor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.params[name]
	return t, ok
}

// Set schreibt den Tensor eines Slots
func (s *MemoryStore) Set(name string, t *tensor.Tensor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params[name] = t
}

// Keys gibt alle Slot-Namen sortiert zurueck
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.params))
	for k := range s.params {
		keys = append(keys, k)
	}

	slices.Sort(keys)
	return keys
}

// Len gibt die Anzahl der Slots zurueck
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.params)
}
