// merge.go - Einstiegspunkt der Merge-Engine
//
// Dieses Modul enthaelt:
// - Method: unterstuetzte Kombinationsmethoden
// - Spec: Merge-Konfiguration (Methode, Density, Sign-Methode)
// - Combine: validiert und dispatcht auf die Methoden-Pipelines

// Package merge kombiniert die Delta-Tensoren mehrerer unabhaengig
// trainierter Adapter fuer denselben Parameter-Slot zu einem einzigen
// Tensor. Die Engine ist zustandslos: jeder Aufruf ist eine reine Funktion
// seiner Eingaben, Zufall kommt ausschliesslich aus der uebergebenen
// Random-Quelle.
package merge

import (
	"fmt"
	"math/rand/v2"

	"github.com/lorakit/lorakit/tensor"
)

// Method ist die Kombinationsmethode eines Merges
type Method string

const (
	// MethodLinear - gewichtete Summe ohne Pruning
	MethodLinear Method = "linear"

	// MethodTIES - Magnitude-Pruning plus Vorzeichen-Konsens
	MethodTIES Method = "ties"

	// MethodDARELinear - stochastisches Pruning mit Rescale, dann gewichtete Summe
	MethodDARELinear Method = "dare_linear"

	// MethodDARETIES - stochastisches Pruning mit Rescale plus Vorzeichen-Konsens
	MethodDARETIES Method = "dare_ties"

	// MethodMagnitudePrune - Magnitude-Pruning, dann gewichtete Summe
	MethodMagnitudePrune Method = "magnitude_prune"
)

// Spec konfiguriert einen Merge. Density wird von allen Methoden ausser
// linear benoetigt und muss in (0, 1] liegen. SignMethod gilt nur fuer
// ties und dare_ties; leer bedeutet total.
type Spec struct {
	Method     Method
	Density    float64
	SignMethod SignMethod
}

// Validate prueft die Spec unabhaengig von konkreten Tensoren
func (s Spec) Validate() error {
	switch s.Method {
	case MethodLinear:
		return nil
	case MethodTIES, MethodDARETIES:
		if _, err := s.SignMethod.resolve(); err != nil {
			return err
		}
		return s.validateDensity()
	case MethodDARELinear, MethodMagnitudePrune:
		return s.validateDensity()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, s.Method)
	}
}

func (s Spec) validateDensity() error {
	if s.Density <= 0 || s.Density > 1 {
		return fmt.Errorf("%w: method %q requires density in (0, 1], got %v", ErrInvalidConfig, s.Method, s.Density)
	}

	return nil
}

// Combine kombiniert einen Adapter-Stack gemaess der Spec zu einem neuen
// Tensor. Der Stack und die Gewichte sind 1:1 zugeordnet; alle Tensoren
// muessen dieselbe Shape haben. Die Random-Quelle wird nur von den
// DARE-Methoden verwendet und darf fuer die uebrigen nil sein.
func Combine(spec Spec, stack []*tensor.Tensor, weights []float32, rng *rand.Rand) (*tensor.Tensor, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if err := validateStack(stack); err != nil {
		return nil, err
	}

	if err := validateWeights(stack, weights); err != nil {
		return nil, err
	}

	switch spec.Method {
	case MethodLinear:
		return TaskArithmetic(stack, weights)
	case MethodTIES:
		return TIES(stack, weights, spec.Density, spec.SignMethod)
	case MethodDARELinear:
		return DARELinear(stack, weights, spec.Density, rng)
	case MethodDARETIES:
		return DARETIES(stack, weights, spec.Density, spec.SignMethod, rng)
	case MethodMagnitudePrune:
		return MagnitudePrune(stack, weights, spec.Density)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, spec.Method)
	}
}
