// prune_test.go - Tests fuer Magnitude- und Random-Pruning
package merge

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lorakit/lorakit/tensor"
)

// newF32 erstellt einen F32-Tensor oder bricht den Test ab
func newF32(t *testing.T, shape []int, data []float32) *tensor.Tensor {
	t.Helper()

	tt, err := tensor.New(tensor.F32, shape, data)
	if err != nil {
		t.Fatalf("tensor.New: %v", err)
	}
	return tt
}

func TestPruneFullDensityIsIdentity(t *testing.T) {
	in := newF32(t, []int{2, 3}, []float32{1, -2, 0, 3.5, -0.25, 4})

	for _, method := range []PruneMethod{PruneMagnitude, PruneRandom} {
		out, err := Prune(in, 1, method, false, nil)
		if err != nil {
			t.Fatalf("Prune(%s): %v", method, err)
		}

		if diff := cmp.Diff(in.Data(), out.Data()); diff != "" {
			t.Errorf("Prune(%s) bei density=1 veraendert Werte (-want +got):\n%s", method, diff)
		}
	}
}

func TestPruneMagnitudeKeepsTopHalf(t *testing.T) {
	// 6 Elemente, density 0.5 -> genau die 3 betragsgroessten bleiben
	in := newF32(t, []int{6}, []float32{0.1, -5, 3, -0.2, 4, 2})

	out, err := Prune(in, 0.5, PruneMagnitude, false, nil)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}

	want := []float32{0, -5, 3, 0, 4, 0}
	if diff := cmp.Diff(want, out.Data()); diff != "" {
		t.Errorf("Top-Half Auswahl falsch (-want +got):\n%s", diff)
	}

	// Eingabe bleibt unveraendert
	if in.Data()[0] != 0.1 {
		t.Errorf("Prune hat die Eingabe mutiert: %v", in.Data())
	}
}

func TestPruneMagnitudeTieBreakByIndex(t *testing.T) {
	// Alle Betraege gleich: die niedrigsten Indizes gewinnen
	in := newF32(t, []int{4}, []float32{1, -1, 1, -1})

	out, err := Prune(in, 0.5, PruneMagnitude, false, nil)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}

	want := []float32{1, -1, 0, 0}
	if diff := cmp.Diff(want, out.Data()); diff != "" {
		t.Errorf("Tie-Break nicht deterministisch nach Index (-want +got):\n%s", diff)
	}
}

func TestPruneRandomRescaleAndDeterminism(t *testing.T) {
	in := newF32(t, []int{8}, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	rng := rand.New(rand.NewPCG(42, 0))
	out, err := Prune(in, 0.25, PruneRandom, true, rng)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}

	// Ueberlebende Elemente sind exakt mit 1/density reskaliert
	for i, v := range out.Data() {
		if v != 0 && v != in.Data()[i]*4 {
			t.Errorf("Element %d: %v ist weder 0 noch %v", i, v, in.Data()[i]*4)
		}
	}

	// Gleicher Seed, gleiche Maske
	rng2 := rand.New(rand.NewPCG(42, 0))
	out2, err := Prune(in, 0.25, PruneRandom, true, rng2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}

	if diff := cmp.Diff(out.Data(), out2.Data()); diff != "" {
		t.Errorf("Random-Pruning nicht reproduzierbar bei gleichem Seed (-want +got):\n%s", diff)
	}
}

func TestPruneInvalidConfig(t *testing.T) {
	in := newF32(t, []int{2}, []float32{1, 2})

	cases := []struct {
		name    string
		density float64
		method  PruneMethod
		rng     *rand.Rand
	}{
		{"density null", 0, PruneMagnitude, nil},
		{"density negativ", -0.5, PruneMagnitude, nil},
		{"unbekannte methode", 0.5, PruneMethod("topk"), nil},
		{"random ohne rng", 0.5, PruneRandom, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Prune(in, tc.density, tc.method, false, tc.rng); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Prune = %v, erwartet ErrInvalidConfig", err)
			}
		})
	}
}
