// dare.go - DARE-Merge: Drop And REscale
//
// Beide Varianten beschneiden jeden Adapter stochastisch (Bernoulli-Maske mit
// Keep-Wahrscheinlichkeit density) und reskalieren die Ueberlebenden mit
// 1/density, damit der Erwartungswert des Merges erhalten bleibt.
package merge

import (
	"fmt"
	"math/rand/v2"

	"github.com/lorakit/lorakit/tensor"
)

// DARELinear kombiniert die zufaellig beschnittenen, reskalierten Adapter per
// Task-Arithmetik. Kein Vorzeichen-Konsens.
func DARELinear(stack []*tensor.Tensor, weights []float32, density float64, rng *rand.Rand) (*tensor.Tensor, error) {
	pruned, err := darePrune(stack, weights, density, rng)
	if err != nil {
		return nil, err
	}

	return TaskArithmetic(pruned, weights)
}

// DARETIES kombiniert DARE-Pruning mit dem TIES-Konsens: nach Drop-und-Rescale
// wird mit den Gewichten skaliert, das Mehrheits-Vorzeichen bestimmt und
// disjoint gemergt.
func DARETIES(stack []*tensor.Tensor, weights []float32, density float64, method SignMethod, rng *rand.Rand) (*tensor.Tensor, error) {
	pruned, err := darePrune(stack, weights, density, rng)
	if err != nil {
		return nil, err
	}

	for i, t := range pruned {
		scale(t, weights[i])
	}

	mask, err := MajoritySignMask(pruned, method)
	if err != nil {
		return nil, err
	}

	return DisjointMerge(pruned, mask)
}

// darePrune validiert den Stack und beschneidet jeden Adapter zufaellig mit
// Rescale
func darePrune(stack []*tensor.Tensor, weights []float32, density float64, rng *rand.Rand) ([]*tensor.Tensor, error) {
	if err := validateStack(stack); err != nil {
		return nil, err
	}

	if err := validateWeights(stack, weights); err != nil {
		return nil, err
	}

	if rng == nil {
		return nil, fmt.Errorf("%w: DARE methods require an explicit random source", ErrInvalidConfig)
	}

	pruned := make([]*tensor.Tensor, len(stack))
	for i, t := range stack {
		p, err := Prune(t, density, PruneRandom, true, rng)
		if err != nil {
			return nil, err
		}
		pruned[i] = p
	}

	return pruned, nil
}
