// arithmetic.go - Task-Arithmetik: gewichtete Summe von Adapter-Tensoren
//
// Dieses Modul enthaelt:
// - TaskArithmetic: gewichtete Summe (linear-Methode und Baustein der Pipelines)
// - MagnitudePrune: Magnitude-Pruning gefolgt von Task-Arithmetik
// - vec/scale: BLAS-Hilfsfunktionen
package merge

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/lorakit/lorakit/tensor"
)

// TaskArithmetic multipliziert jeden Adapter-Tensor mit seinem Gewicht und
// summiert elementweise. Der Ergebnis-Tensor uebernimmt den DType des ersten
// Eintrags im Stack.
func TaskArithmetic(stack []*tensor.Tensor, weights []float32) (*tensor.Tensor, error) {
	if err := validateStack(stack); err != nil {
		return nil, err
	}

	if err := validateWeights(stack, weights); err != nil {
		return nil, err
	}

	merged, err := tensor.Zeros(stack[0].DType(), stack[0].Shape())
	if err != nil {
		return nil, err
	}

	acc := vec(merged)
	for i, t := range stack {
		blas32.Axpy(weights[i], vec(t), acc)
	}

	return merged, nil
}

// MagnitudePrune wendet Magnitude-Pruning auf jeden Adapter an und kombiniert
// die beschnittenen Tensoren per Task-Arithmetik
func MagnitudePrune(stack []*tensor.Tensor, weights []float32, density float64) (*tensor.Tensor, error) {
	if err := validateStack(stack); err != nil {
		return nil, err
	}

	if err := validateWeights(stack, weights); err != nil {
		return nil, err
	}

	pruned := make([]*tensor.Tensor, len(stack))
	for i, t := range stack {
		p, err := Prune(t, density, PruneMagnitude, false, nil)
		if err != nil {
			return nil, err
		}
		pruned[i] = p
	}

	return TaskArithmetic(pruned, weights)
}

// vec legt den Tensor-Puffer als BLAS-Vektor an
func vec(t *tensor.Tensor) blas32.Vector {
	return blas32.Vector{N: t.Elems(), Inc: 1, Data: t.Data()}
}

// scale skaliert den Tensor-Puffer in-place mit w
func scale(t *tensor.Tensor, w float32) {
	blas32.Scal(w, vec(t))
}

// validateStack prueft, dass der Stack nicht leer ist und alle Tensoren
// dieselbe Shape haben
func validateStack(stack []*tensor.Tensor) error {
	if len(stack) == 0 {
		return ErrEmptyStack
	}

	for _, t := range stack[1:] {
		if !stack[0].SameShape(t) {
			return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, stack[0].Shape(), t.Shape())
		}
	}

	return nil
}

// validateWeights prueft die 1:1-Zuordnung von Gewichten zu Adaptern
func validateWeights(stack []*tensor.Tensor, weights []float32) error {
	if len(weights) != len(stack) {
		return fmt.Errorf("%w: %d weights for %d adapter tensors", ErrInvalidConfig, len(weights), len(stack))
	}

	return nil
}
