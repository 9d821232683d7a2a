// Package vector provides a portable, fixed-width SIMD vector algebra.
//
// A Species pairs an element kind (int8 … float64) with a vector shape
// (64, 128, 256, 512 bits or the widest shape of the running CPU). Vectors,
// Masks and Shuffles are immutable lane sequences tagged with a Species;
// every operation returns a new value.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-vector/vector"
//
//	s := vector.SpeciesFor[int64](vector.Shape128)
//	a, _ := vector.FromArray(s, []int64{5, -3}, 0)
//	b, _ := vector.FromArray(s, []int64{2, 7}, 0)
//
//	sum, _ := a.Binary(vector.OpAdd, b)      // [7, 4]
//	gt, _ := a.Compare(vector.OpGt, b)       // [true, false]
//	total, _ := a.ReduceLanes(vector.OpAdd)  // 2
//
// Misuse (lane index out of range, operands of different species, an
// operator that does not apply to the element kind, a store into a
// read-only buffer) is reported through the error result; the sentinels
// in errors.go identify the failure with errors.Is.
package vector

import "fmt"

// Floats is a constraint for floating-point lane types.
type Floats interface {
	float32 | float64
}

// SignedInts is a constraint for integer lane types.
type SignedInts interface {
	int8 | int16 | int32 | int64
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | SignedInts
}

// ElementKind identifies the lane type of a Species.
type ElementKind uint8

const (
	Int8 ElementKind = iota
	Int16
	Int32
	Int64
	Float32
	Float64

	numKinds = int(Float64) + 1
)

// Size returns the lane size in bytes.
func (k ElementKind) Size() int {
	switch k {
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// Bits returns the lane size in bits.
func (k ElementKind) Bits() int {
	return k.Size() * 8
}

// IsFloat reports whether k is a floating-point kind.
func (k ElementKind) IsFloat() bool {
	return k == Float32 || k == Float64
}

func (k ElementKind) valid() bool {
	return int(k) < numKinds
}

// String returns the Go name of the lane type.
func (k ElementKind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("ElementKind(%d)", uint8(k))
	}
}

// letter is the one-letter code used in conversion names (B2I, L2D, ...).
func (k ElementKind) letter() byte {
	return "BSILFD"[k]
}

// KindOf returns the ElementKind of the lane type T.
func KindOf[T Lanes]() ElementKind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	default:
		return Float64
	}
}
