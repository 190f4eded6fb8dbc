// prune.go - Magnitude- und Random-Pruning fuer Adapter-Tensoren
//
// Dieses Modul enthaelt:
// - PruneMethod: Auswahl zwischen Magnitude- und Random-Pruning
// - Prune: zeroisiert einen Anteil (1 - density) der Elemente
package merge

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lorakit/lorakit/tensor"
)

// PruneMethod bestimmt, wie die zu behaltenden Elemente ausgewaehlt werden
type PruneMethod string

const (
	// PruneMagnitude behaelt die Elemente mit den groessten Betraegen
	PruneMagnitude PruneMethod = "magnitude"

	// PruneRandom behaelt Elemente mit Wahrscheinlichkeit density (Bernoulli-Maske)
	PruneRandom PruneMethod = "random"
)

// Prune gibt eine Kopie von t zurueck, in der ein Anteil (1 - density) der
// Elemente auf null gesetzt ist. Bei PruneRandom werden ueberlebende Elemente
// optional mit 1/density reskaliert, damit der Erwartungswert erhalten bleibt.
// density >= 1 ist ein No-op; density <= 0 ist ein Konfigurationsfehler.
func Prune(t *tensor.Tensor, density float64, method PruneMethod, rescale bool, rng *rand.Rand) (*tensor.Tensor, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%w: density %v out of range (0, 1]", ErrInvalidConfig, density)
	}

	if density >= 1 {
		slog.Debug("density retains every element, skipping pruning", "density", density, "tensor", t)
		return t.Clone(), nil
	}

	switch method {
	case PruneMagnitude:
		return magnitudePrune(t, density), nil
	case PruneRandom:
		if rng == nil {
			return nil, fmt.Errorf("%w: random pruning requires an explicit random source", ErrInvalidConfig)
		}
		return randomPrune(t, density, rescale, rng), nil
	default:
		return nil, fmt.Errorf("%w: unknown prune method %q", ErrInvalidConfig, method)
	}
}

// magnitudePrune behaelt die round(density * n) Elemente mit den groessten
// Betraegen. Gleiche Betraege werden nach Index aufgeloest, damit das
// Ergebnis deterministisch ist.
func magnitudePrune(t *tensor.Tensor, density float64) *tensor.Tensor {
	out := t.Clone()
	data := out.Data()

	k := int(math.Round(density * float64(len(data))))
	if k >= len(data) {
		return out
	}

	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}

	slices.SortFunc(idx, func(a, b int) int {
		if d := cmp.Compare(math.Abs(float64(data[b])), math.Abs(float64(data[a]))); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})

	for _, i := range idx[k:] {
		data[i] = 0
	}

	return out
}

// randomPrune behaelt jedes Element unabhaengig mit Wahrscheinlichkeit density
func randomPrune(t *tensor.Tensor, density float64, rescale bool, rng *rand.Rand) *tensor.Tensor {
	out := t.Clone()
	data := out.Data()

	keep := distuv.Bernoulli{P: density, Src: rng}
	scale := float32(1 / density)
	for i := range data {
		switch {
		case keep.Rand() == 0:
			data[i] = 0
		case rescale:
			data[i] *= scale
		}
	}

	return out
}
