// dtype.go - Datentypen fuer Adapter-Tensoren
//
// Dieses Modul enthaelt:
// - DType: unterstuetzte Element-Datentypen (F32, F16, BF16)
// - Decode/Encode der Rohdaten pro DType
package tensor

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// DType ist der Element-Datentyp eines Tensors.
// Alle Typen gehoeren zur Float-Familie; gerechnet wird immer in float32.
type DType uint32

const (
	// F32 - 32-bit IEEE float
	F32 DType = iota
	// F16 - 16-bit IEEE half
	F16
	// BF16 - bfloat16 (truncated float32)
	BF16
)

// String gibt den Namen des Datentyps zurueck
func (dt DType) String() string {
	switch dt {
	case F32:
		return "F32"
	case F16:
		return "F16"
	case BF16:
		return "BF16"
	default:
		return fmt.Sprintf("DType(%d)", uint32(dt))
	}
}

// ElementSize gibt die Groesse eines Elements in Bytes zurueck
func (dt DType) ElementSize() int {
	switch dt {
	case F32:
		return 4
	case F16, BF16:
		return 2
	default:
		return 0
	}
}

// decode konvertiert Rohdaten (little-endian) in float32-Werte
func (dt DType) decode(bts []byte) ([]float32, error) {
	if es := dt.ElementSize(); es == 0 || len(bts)%es != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s element size", ErrInvalidPayload, len(bts), dt)
	}

	switch dt {
	case F32:
		f32s := make([]float32, len(bts)/4)
		for i := range f32s {
			f32s[i] = math.Float32frombits(binary.LittleEndian.Uint32(bts[i*4:]))
		}
		return f32s, nil
	case F16:
		f32s := make([]float32, len(bts)/2)
		for i := range f32s {
			f32s[i] = float16.Frombits(binary.LittleEndian.Uint16(bts[i*2:])).Float32()
		}
		return f32s, nil
	case BF16:
		return bfloat16.DecodeFloat32(bts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, dt)
	}
}

// encode konvertiert float32-Werte in Rohdaten (little-endian)
func (dt DType) encode(f32s []float32) ([]byte, error) {
	switch dt {
	case F32:
		bts := make([]byte, len(f32s)*4)
		for i, f := range f32s {
			binary.LittleEndian.PutUint32(bts[i*4:], math.Float32bits(f))
		}
		return bts, nil
	case F16:
		bts := make([]byte, len(f32s)*2)
		for i, f := range f32s {
			binary.LittleEndian.PutUint16(bts[i*2:], float16.Fromfloat32(f).Bits())
		}
		return bts, nil
	case BF16:
		return bfloat16.EncodeFloat32(f32s), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, dt)
	}
}
