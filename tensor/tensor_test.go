// tensor_test.go - Tests fuer Tensor-Konstruktion und DType-Kodierung
package tensor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewValidatesShape(t *testing.T) {
	cases := []struct {
		name  string
		shape []int
		data  []float32
		want  error
	}{
		{"leere shape", nil, []float32{1}, ErrInvalidShape},
		{"nicht-positive dimension", []int{2, 0}, nil, ErrInvalidShape},
		{"zu wenig daten", []int{2, 2}, []float32{1, 2}, ErrInvalidPayload},
		{"zu viele daten", []int{2}, []float32{1, 2, 3}, ErrInvalidPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(F32, tc.shape, tc.data); !errors.Is(err, tc.want) {
				t.Errorf("New = %v, erwartet %v", err, tc.want)
			}
		})
	}
}

func TestZeros(t *testing.T) {
	z, err := Zeros(F16, []int{2, 3})
	if err != nil {
		t.Fatalf("Zeros: %v", err)
	}

	if z.Elems() != 6 {
		t.Errorf("Elems = %d, erwartet 6", z.Elems())
	}

	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Element %d = %v, erwartet 0", i, v)
		}
	}

	if z.String() != "F16[2 3]" {
		t.Errorf("String = %q, erwartet F16[2 3]", z.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig, err := New(F32, []int{2}, []float32{1, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	clone := orig.Clone()
	clone.Data()[0] = 99

	if orig.Data()[0] != 1 {
		t.Errorf("Clone teilt Speicher mit dem Original: %v", orig.Data())
	}
}

func TestSameShape(t *testing.T) {
	a, _ := Zeros(F32, []int{2, 3})
	b, _ := Zeros(BF16, []int{2, 3})
	c, _ := Zeros(F32, []int{3, 2})

	if !a.SameShape(b) {
		t.Error("gleiche Shape mit anderem DType sollte uebereinstimmen")
	}

	if a.SameShape(c) {
		t.Error("[2 3] und [3 2] duerfen nicht uebereinstimmen")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Werte sind in allen drei Typen exakt darstellbar
	vals := []float32{1.5, -2, 0.25, -0.75, 0, 8}

	for _, dtype := range []DType{F32, F16, BF16} {
		in, err := New(dtype, []int{2, 3}, vals)
		if err != nil {
			t.Fatalf("New(%s): %v", dtype, err)
		}

		bts, err := in.Encode()
		if err != nil {
			t.Fatalf("Encode(%s): %v", dtype, err)
		}

		if want := 6 * dtype.ElementSize(); len(bts) != want {
			t.Fatalf("Encode(%s) = %d bytes, erwartet %d", dtype, len(bts), want)
		}

		out, err := Decode(dtype, []int{2, 3}, bts)
		if err != nil {
			t.Fatalf("Decode(%s): %v", dtype, err)
		}

		if diff := cmp.Diff(in.Data(), out.Data()); diff != "" {
			t.Errorf("Round-Trip %s (-want +got):\n%s", dtype, diff)
		}
	}
}

func TestDecodeRejectsOddPayload(t *testing.T) {
	if _, err := Decode(F16, []int{1}, []byte{0x00}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Decode = %v, erwartet ErrInvalidPayload", err)
	}

	// Payload-Laenge passt zum DType, aber nicht zur Shape
	if _, err := Decode(F32, []int{3}, make([]byte, 8)); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Decode = %v, erwartet ErrInvalidPayload", err)
	}
}
