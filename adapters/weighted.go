// weighted.go - Gewichtetes Zusammenfuehren mehrerer Adapter
//
// Dieses Modul enthaelt:
// - WeightedAdapter/MergeOptions: Eingaben eines Merge-Laufs
// - Manager.AddWeightedAdapter: merged alle Parameter-Slots und registriert
//   das Ergebnis als neuen Adapter
package adapters

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lorakit/lorakit/envconfig"
	"github.com/lorakit/lorakit/merge"
	"github.com/lorakit/lorakit/tensor"
)

// WeightedAdapter benennt einen Quell-Adapter und seinen Beitrags-Koeffizienten.
// Gewichte duerfen negativ oder groesser als 1 sein.
type WeightedAdapter struct {
	Name   string
	Weight float32
}

// MergeOptions konfiguriert einen Merge-Lauf ueber alle Parameter-Slots
type MergeOptions struct {
	// Adapters sind die Quell-Adapter in Gewichts-Reihenfolge
	Adapters []WeightedAdapter

	// Spec waehlt Kombinationsmethode, Density und Sign-Methode
	Spec merge.Spec

	// Seed macht die stochastischen Methoden reproduzierbar. Jeder Slot
	// leitet daraus seine eigene Random-Quelle ab, das Ergebnis haengt
	// damit nicht vom Scheduling ab.
	Seed uint64

	// MaxParallel begrenzt die gleichzeitig gemergten Slots.
	// 0 verwendet LORAKIT_NUM_PARALLEL.
	MaxParallel int
}

// AddWeightedAdapter kombiniert die Parameter der Quell-Adapter Slot fuer
// Slot gemaess der Spec und registriert das Ergebnis unter name.
//
// Gemergt wird die Vereinigung aller Slot-Namen der Quellen. Fehlt ein Slot
// in einem Quell-Adapter, traegt dieser dort einen Null-Tensor bei:
// Nullen stimmen beim Vorzeichen-Konsens nicht ab und aendern keine Summe,
// und die 1:1-Zuordnung von Gewichten zu Adaptern bleibt erhalten.
//
// Der erste fehlgeschlagene Slot bricht den gesamten Lauf ab; der
// Ziel-Adapter wird erst registriert, wenn jeder Slot erfolgreich war.
// Es gibt keine partiellen Schreibvorgaenge.
func (m *Manager) AddWeightedAdapter(ctx context.Context, name string, opts MergeOptions) error {
	if len(opts.Adapters) == 0 {
		return merge.ErrEmptyStack
	}

	if err := opts.Spec.Validate(); err != nil {
		return err
	}

	m.mu.RLock()
	if _, ok := m.adapters[name]; ok {
		m.mu.RUnlock()
		return fmt.Errorf("%w: %q", ErrAdapterExists, name)
	}

	sources := make([]Store, len(opts.Adapters))
	weights := make([]float32, len(opts.Adapters))
	for i, wa := range opts.Adapters {
		s, ok := m.adapters[wa.Name]
		if !ok {
			m.mu.RUnlock()
			return fmt.Errorf("%w: %q", ErrAdapterNotFound, wa.Name)
		}

		sources[i] = s
		weights[i] = wa.Weight
	}
	m.mu.RUnlock()

	slots := slotUnion(sources)

	runID := uuid.New().String()
	slog.Info("merging adapters", "id", runID, "into", name, "method", opts.Spec.Method, "adapters", len(sources), "slots", len(slots))

	limit := opts.MaxParallel
	if limit <= 0 {
		limit = int(envconfig.NumParallel())
	}
	if limit <= 0 {
		limit = 1
	}

	merged := make([]*tensor.Tensor, len(slots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, slot := range slots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			stack, err := collectStack(sources, slot)
			if err != nil {
				return fmt.Errorf("slot %q: %w", slot, err)
			}

			rng := rand.New(rand.NewPCG(opts.Seed, slotSeed(slot)))
			t, err := merge.Combine(opts.Spec, stack, weights, rng)
			if err != nil {
				return fmt.Errorf("slot %q: %w", slot, err)
			}

			slog.Debug("merged slot", "id", runID, "slot", slot, "tensor", t)
			merged[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("adapter merge failed", "id", runID, "into", name, "error", err)
		return err
	}

	dest := NewMemoryStore()
	for i, slot := range slots {
		dest.Set(slot, merged[i])
	}

	return m.Add(name, dest)
}

// slotUnion gibt die Vereinigung aller Slot-Namen sortiert zurueck
func slotUnion(sources []Store) []string {
	seen := make(map[string]struct{})
	for _, s := range sources {
		for _, k := range s.Keys() {
			seen[k] = struct{}{}
		}
	}

	slots := make([]string, 0, len(seen))
	for k := range seen {
		slots = append(slots, k)
	}

	slices.Sort(slots)
	return slots
}

// collectStack sammelt die Tensoren eines Slots in Quell-Reihenfolge.
// Quellen ohne diesen Slot steuern einen Null-Tensor in der Shape der
// ersten vorhandenen Quelle bei.
func collectStack(sources []Store, slot string) ([]*tensor.Tensor, error) {
	stack := make([]*tensor.Tensor, len(sources))

	var ref *tensor.Tensor
	for i, s := range sources {
		if t, ok := s.Get(slot); ok {
			stack[i] = t
			if ref == nil {
				ref = t
			}
		}
	}

	// slot stammt aus der Key-Union, mindestens eine Quelle hat ihn
	for i := range stack {
		if stack[i] != nil {
			continue
		}

		z, err := tensor.Zeros(ref.DType(), ref.Shape())
		if err != nil {
			return nil, err
		}
		stack[i] = z
	}

	return stack, nil
}

// slotSeed leitet aus dem Slot-Namen einen stabilen Seed-Anteil ab
func slotSeed(slot string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(slot))
	return h.Sum64()
}
