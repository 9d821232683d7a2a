// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vector

import (
	"fmt"
	"math"
	"strings"
)

// Mask is an immutable sequence of LaneCount booleans tagged with a
// Species. It selects the lanes that take part in masked operations.
type Mask[T Lanes] struct {
	species *Species
	bits    []bool
}

// newMask wraps bits, which the caller must not retain.
func newMask[T Lanes](s *Species, bits []bool) Mask[T] {
	return Mask[T]{species: s, bits: bits}
}

// MaskFromArray loads LaneCount booleans from a starting at offset.
func MaskFromArray[T Lanes](s *Species, a []bool, offset int) (Mask[T], error) {
	if err := checkKind[T](s); err != nil {
		return Mask[T]{}, err
	}
	if err := checkFromIndexSize(offset, s.laneCount, len(a)); err != nil {
		return Mask[T]{}, err
	}
	bits := make([]bool, s.laneCount)
	copy(bits, a[offset:])
	return newMask[T](s, bits), nil
}

// MaskFromValues returns a mask holding exactly the given lanes.
func MaskFromValues[T Lanes](s *Species, values ...bool) (Mask[T], error) {
	if err := checkKind[T](s); err != nil {
		return Mask[T]{}, err
	}
	if len(values) != s.laneCount {
		return Mask[T]{}, fmt.Errorf("%w: %d values for %v", ErrLengthMismatch, len(values), s)
	}
	return MaskFromArray[T](s, values, 0)
}

// MaskFromBits sets lane i from bit i of b. Lanes beyond the 64th are unset.
func MaskFromBits[T Lanes](s *Species, b uint64) (Mask[T], error) {
	if err := checkKind[T](s); err != nil {
		return Mask[T]{}, err
	}
	bits := make([]bool, s.laneCount)
	for i := range bits {
		if i < 64 {
			bits[i] = b&(1<<i) != 0
		}
	}
	return newMask[T](s, bits), nil
}

// IndexInRange returns the mask whose lane i is set when offset+i lies in
// [0, limit). It selects the valid lanes of a partial vector at the tail
// of an array.
func IndexInRange[T Lanes](s *Species, offset, limit int) (Mask[T], error) {
	if err := checkKind[T](s); err != nil {
		return Mask[T]{}, err
	}
	if limit < 0 {
		return Mask[T]{}, fmt.Errorf("%w: negative limit %d", ErrIndexOutOfRange, limit)
	}
	bits := make([]bool, s.laneCount)
	for i := range bits {
		j := offset + i
		bits[i] = j >= 0 && j < limit
	}
	return newMask[T](s, bits), nil
}

// Species returns the species of the mask.
func (m Mask[T]) Species() *Species { return m.species }

// Length returns the number of lanes.
func (m Mask[T]) Length() int { return len(m.bits) }

// Lane reports whether lane i is set.
func (m Mask[T]) Lane(i int) (bool, error) {
	if err := checkIndex(i, len(m.bits)); err != nil {
		return false, err
	}
	return m.bits[i], nil
}

// ToArray returns a copy of the lanes.
func (m Mask[T]) ToArray() []bool {
	out := make([]bool, len(m.bits))
	copy(out, m.bits)
	return out
}

// IntoArray stores the lanes into a starting at offset.
func (m Mask[T]) IntoArray(a []bool, offset int) error {
	if err := checkFromIndexSize(offset, len(m.bits), len(a)); err != nil {
		return err
	}
	copy(a[offset:], m.bits)
	return nil
}

// ToBits packs the lanes into a bit set, lane i at bit i. Masks with more
// than 64 lanes cannot be packed.
func (m Mask[T]) ToBits() (uint64, error) {
	if len(m.bits) > 64 {
		return 0, fmt.Errorf("%w: %d lanes do not fit in 64 bits", ErrUnsupportedOperation, len(m.bits))
	}
	var b uint64
	for i, set := range m.bits {
		if set {
			b |= 1 << i
		}
	}
	return b, nil
}

// Not returns the complement of m.
func (m Mask[T]) Not() Mask[T] {
	bits := make([]bool, len(m.bits))
	for i, set := range m.bits {
		bits[i] = !set
	}
	return newMask[T](m.species, bits)
}

// And returns the lanes set in both m and o.
func (m Mask[T]) And(o Mask[T]) (Mask[T], error) {
	return m.combine(o, func(a, b bool) bool { return a && b })
}

// Or returns the lanes set in either m or o.
func (m Mask[T]) Or(o Mask[T]) (Mask[T], error) {
	return m.combine(o, func(a, b bool) bool { return a || b })
}

// Xor returns the lanes set in exactly one of m and o.
func (m Mask[T]) Xor(o Mask[T]) (Mask[T], error) {
	return m.combine(o, func(a, b bool) bool { return a != b })
}

// AndNot returns the lanes set in m and unset in o.
func (m Mask[T]) AndNot(o Mask[T]) (Mask[T], error) {
	return m.combine(o, func(a, b bool) bool { return a && !b })
}

// Eq returns the lanes where m and o agree.
func (m Mask[T]) Eq(o Mask[T]) (Mask[T], error) {
	return m.combine(o, func(a, b bool) bool { return a == b })
}

func (m Mask[T]) combine(o Mask[T], f func(a, b bool) bool) (Mask[T], error) {
	if m.species == nil || m.species != o.species {
		return Mask[T]{}, shapeError(m.species, o.species)
	}
	bits := make([]bool, len(m.bits))
	for i := range bits {
		bits[i] = f(m.bits[i], o.bits[i])
	}
	return newMask[T](m.species, bits), nil
}

// AnyTrue reports whether at least one lane is set.
func (m Mask[T]) AnyTrue() bool {
	for _, set := range m.bits {
		if set {
			return true
		}
	}
	return false
}

// AllTrue reports whether every lane is set.
func (m Mask[T]) AllTrue() bool {
	for _, set := range m.bits {
		if !set {
			return false
		}
	}
	return true
}

// TrueCount returns the number of set lanes.
func (m Mask[T]) TrueCount() int {
	n := 0
	for _, set := range m.bits {
		if set {
			n++
		}
	}
	return n
}

// FirstTrue returns the index of the first set lane, or Length() if no
// lane is set.
func (m Mask[T]) FirstTrue() int {
	for i, set := range m.bits {
		if set {
			return i
		}
	}
	return len(m.bits)
}

// LastTrue returns the index of the last set lane, or -1 if no lane is set.
func (m Mask[T]) LastTrue() int {
	for i := len(m.bits) - 1; i >= 0; i-- {
		if m.bits[i] {
			return i
		}
	}
	return -1
}

// ToVector returns a vector whose set lanes have every bit set (-1 for
// integers, an all-ones NaN for floats) and whose unset lanes are zero.
func (m Mask[T]) ToVector() Vector[T] {
	ones := allOnes[T]()
	data := make([]T, len(m.bits))
	for i, set := range m.bits {
		if set {
			data[i] = ones
		}
	}
	return newVector(m.species, data)
}

// allOnes returns the value of T with every bit set.
func allOnes[T Lanes]() T {
	var v any
	switch KindOf[T]() {
	case Float32:
		v = math.Float32frombits(^uint32(0))
	case Float64:
		v = math.Float64frombits(^uint64(0))
	default:
		return T(0) - 1
	}
	return v.(T)
}

// Equal reports whether m and o have the same species and lanes.
func (m Mask[T]) Equal(o Mask[T]) bool {
	if m.species != o.species || len(m.bits) != len(o.bits) {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// String renders set lanes as 'T' and unset lanes as '.'.
func (m Mask[T]) String() string {
	var sb strings.Builder
	sb.WriteString("Mask[")
	for _, set := range m.bits {
		if set {
			sb.WriteByte('T')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// CastMask converts m to a species with the same lane count and another
// lane type. Lane i of the result is set exactly when lane i of m is.
func CastMask[F, T Lanes](m Mask[F], to *Species) (Mask[T], error) {
	if err := checkKind[T](to); err != nil {
		return Mask[T]{}, err
	}
	if m.species == nil {
		return Mask[T]{}, fmt.Errorf("%w: mask has no species", ErrShapeMismatch)
	}
	if m.species.laneCount != to.laneCount {
		return Mask[T]{}, fmt.Errorf("%w: cannot cast %v to %v", ErrLengthMismatch, m.species, to)
	}
	return newMask[T](to, m.ToArray()), nil
}
