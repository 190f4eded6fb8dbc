// sign.go - Vorzeichen-Konsens und Disjoint-Merge
//
// Dieses Modul enthaelt:
// - SignMethod: Mehrheits-Auswertung (total oder frequency)
// - MajoritySignMask: Mehrheits-Vorzeichen pro Element
// - DisjointMerge: Mittelung nur ueber vorzeichen-konforme Beitraege
package merge

import (
	"fmt"

	"github.com/lorakit/lorakit/tensor"
)

// SignMethod bestimmt, wie das Mehrheits-Vorzeichen pro Element ermittelt wird
type SignMethod string

const (
	// SignTotal summiert die Rohwerte ueber alle Adapter; das Vorzeichen der
	// Summe gewinnt. Grosse Betraege wiegen damit schwerer als viele Stimmen.
	SignTotal SignMethod = "total"

	// SignFrequency zaehlt positive gegen negative Elemente; Nullen stimmen
	// nicht ab.
	SignFrequency SignMethod = "frequency"
)

// resolve bildet die leere Sign-Methode auf SignTotal ab und weist
// unbekannte Werte zurueck
func (m SignMethod) resolve() (SignMethod, error) {
	switch m {
	case "", SignTotal:
		return SignTotal, nil
	case SignFrequency:
		return SignFrequency, nil
	default:
		return "", fmt.Errorf("%w: unknown majority sign method %q", ErrInvalidConfig, m)
	}
}

// MajoritySignMask berechnet pro Element das Vorzeichen, auf das sich die
// Mehrheit der Adapter einigt. Das Ergebnis ist ein F32-Tensor mit Werten
// in {+1, -1}; ein Gleichstand wird zu +1 aufgeloest.
func MajoritySignMask(stack []*tensor.Tensor, method SignMethod) (*tensor.Tensor, error) {
	if err := validateStack(stack); err != nil {
		return nil, err
	}

	method, err := method.resolve()
	if err != nil {
		return nil, err
	}

	mask, err := tensor.Zeros(tensor.F32, stack[0].Shape())
	if err != nil {
		return nil, err
	}

	out := mask.Data()
	for j := range out {
		var vote float64
		for _, t := range stack {
			v := t.Data()[j]
			switch {
			case method == SignTotal:
				vote += float64(v)
			case v > 0:
				vote++
			case v < 0:
				vote--
			}
		}

		if vote >= 0 {
			out[j] = 1
		} else {
			out[j] = -1
		}
	}

	return mask, nil
}

// DisjointMerge summiert pro Element nur die Beitraege, deren Vorzeichen mit
// der Mehrheits-Maske uebereinstimmt, und teilt durch die Anzahl dieser
// Beitraege. Elemente ohne einen einzigen konformen Beitrag werden null.
func DisjointMerge(stack []*tensor.Tensor, mask *tensor.Tensor) (*tensor.Tensor, error) {
	if err := validateStack(stack); err != nil {
		return nil, err
	}

	if !stack[0].SameShape(mask) {
		return nil, fmt.Errorf("%w: mask %v vs stack %v", ErrShapeMismatch, mask.Shape(), stack[0].Shape())
	}

	merged, err := tensor.Zeros(stack[0].DType(), stack[0].Shape())
	if err != nil {
		return nil, err
	}

	out := merged.Data()
	signs := mask.Data()
	for j := range out {
		var sum float64
		var agreed int
		for _, t := range stack {
			v := t.Data()[j]
			if v == 0 {
				continue
			}

			if (v > 0) == (signs[j] > 0) {
				sum += float64(v)
				agreed++
			}
		}

		if agreed > 0 {
			out[j] = float32(sum / float64(agreed))
		}
	}

	return merged, nil
}
