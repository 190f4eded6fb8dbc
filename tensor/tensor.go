// tensor.go - Dichte Tensor-Struktur fuer Adapter-Gewichte
//
// Dieses Modul enthaelt:
// - Tensor: dichter Float-Tensor mit Shape, DType und float32-Puffer
// - New/Zeros/Decode: Konstruktoren
// - Encode: Rohdaten-Export im Original-DType
// - Clone/SameShape/Elems: Hilfsmethoden
package tensor

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidShape - Shape ist leer oder enthaelt nicht-positive Dimensionen
	ErrInvalidShape = errors.New("invalid tensor shape")

	// ErrInvalidPayload - Rohdaten passen nicht zu DType oder Shape
	ErrInvalidPayload = errors.New("invalid tensor payload")
)

// Tensor repraesentiert einen dichten Float-Tensor.
// Die Daten liegen unabhaengig vom DType immer als float32 vor;
// der DType bestimmt nur die Kodierung von Encode/Decode.
type Tensor struct {
	shape []int
	dtype DType
	data  []float32
}

// New erstellt einen Tensor aus float32-Werten.
// len(data) muss dem Produkt der Shape-Dimensionen entsprechen.
func New(dtype DType, shape []int, data []float32) (*Tensor, error) {
	n, err := elems(shape)
	if err != nil {
		return nil, err
	}

	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v (want %d)", ErrInvalidPayload, len(data), shape, n)
	}

	return &Tensor{
		shape: slices.Clone(shape),
		dtype: dtype,
		data:  data,
	}, nil
}

// Zeros erstellt einen Null-Tensor der gegebenen Shape
func Zeros(dtype DType, shape []int) (*Tensor, error) {
	n, err := elems(shape)
	if err != nil {
		return nil, err
	}

	return &Tensor{
		shape: slices.Clone(shape),
		dtype: dtype,
		data:  make([]float32, n),
	}, nil
}

// Decode erstellt einen Tensor aus little-endian Rohdaten im gegebenen DType
func Decode(dtype DType, shape []int, bts []byte) (*Tensor, error) {
	f32s, err := dtype.decode(bts)
	if err != nil {
		return nil, err
	}

	return New(dtype, shape, f32s)
}

// Encode gibt die Tensor-Daten als little-endian Rohdaten im DType des Tensors zurueck
func (t *Tensor) Encode() ([]byte, error) {
	return t.dtype.encode(t.data)
}

// Shape gibt eine Kopie der Shape zurueck
func (t *Tensor) Shape() []int {
	return slices.Clone(t.shape)
}

// DType gibt den Element-Datentyp zurueck
func (t *Tensor) DType() DType {
	return t.dtype
}

// Elems gibt die Anzahl der Elemente zurueck
func (t *Tensor) Elems() int {
	return len(t.data)
}

// Data gibt den float32-Puffer des Tensors zurueck.
// Der Slice teilt den Speicher mit dem Tensor; Aufrufer, die den
// Tensor unveraendert brauchen, arbeiten auf einem Clone.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Clone erstellt eine tiefe Kopie des Tensors
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		shape: slices.Clone(t.shape),
		dtype: t.dtype,
		data:  slices.Clone(t.data),
	}
}

// SameShape prueft ob beide Tensoren dieselbe Shape haben
func (t *Tensor) SameShape(other *Tensor) bool {
	return slices.Equal(t.shape, other.shape)
}

// String beschreibt den Tensor kompakt, z.B. "F16[16 32]"
func (t *Tensor) String() string {
	return fmt.Sprintf("%s%v", t.dtype, t.shape)
}

// elems validiert die Shape und gibt die Elementanzahl zurueck
func elems(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: empty shape", ErrInvalidShape)
	}

	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("%w: dimension %d in %v", ErrInvalidShape, d, shape)
		}
		n *= d
	}

	return n, nil
}
