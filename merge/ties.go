// ties.go - TIES-Merge: Trim, Elect Sign, Merge
package merge

import (
	"github.com/lorakit/lorakit/tensor"
)

// TIES kombiniert die Adapter nach dem TIES-Verfahren: Magnitude-Pruning auf
// density, Skalierung mit den Gewichten, Mehrheits-Vorzeichen ueber den
// gewichteten Stack, dann Disjoint-Merge. Das Ergebnis wird nicht weiter
// skaliert.
func TIES(stack []*tensor.Tensor, weights []float32, density float64, method SignMethod) (*tensor.Tensor, error) {
	if err := validateStack(stack); err != nil {
		return nil, err
	}

	if err := validateWeights(stack, weights); err != nil {
		return nil, err
	}

	weighted := make([]*tensor.Tensor, len(stack))
	for i, t := range stack {
		p, err := Prune(t, density, PruneMagnitude, false, nil)
		if err != nil {
			return nil, err
		}

		scale(p, weights[i])
		weighted[i] = p
	}

	mask, err := MajoritySignMask(weighted, method)
	if err != nil {
		return nil, err
	}

	return DisjointMerge(weighted, mask)
}
