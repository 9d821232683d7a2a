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
	"strings"
)

// Vector is an immutable sequence of LaneCount lanes of type T, tagged
// with its Species. The zero Vector has no species and is only useful as
// the value returned alongside an error.
type Vector[T Lanes] struct {
	species *Species
	data    []T
}

// newVector wraps data, which the caller must not retain.
func newVector[T Lanes](s *Species, data []T) Vector[T] {
	return Vector[T]{species: s, data: data}
}

// Broadcast returns a vector with every lane set to e.
func Broadcast[T Lanes](s *Species, e T) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	for i := range data {
		data[i] = e
	}
	return newVector(s, data), nil
}

// FromValues returns a vector holding exactly the given lanes.
// The number of values must equal the lane count of s.
func FromValues[T Lanes](s *Species, values ...T) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	if len(values) != s.laneCount {
		return Vector[T]{}, fmt.Errorf("%w: %d values for %v", ErrLengthMismatch, len(values), s)
	}
	data := make([]T, s.laneCount)
	copy(data, values)
	return newVector(s, data), nil
}

// FromFunc returns a vector whose lane i holds fn(i).
func FromFunc[T Lanes](s *Species, fn func(i int) T) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	for i := range data {
		data[i] = fn(i)
	}
	return newVector(s, data), nil
}

// Species returns the species of the vector.
func (v Vector[T]) Species() *Species { return v.species }

// Length returns the number of lanes.
func (v Vector[T]) Length() int { return len(v.data) }

// Lane returns the value of lane i.
func (v Vector[T]) Lane(i int) (T, error) {
	if err := checkIndex(i, len(v.data)); err != nil {
		return 0, err
	}
	return v.data[i], nil
}

// WithLane returns a copy of v with lane i replaced by e.
func (v Vector[T]) WithLane(i int, e T) (Vector[T], error) {
	if err := checkIndex(i, len(v.data)); err != nil {
		return Vector[T]{}, err
	}
	data := v.ToSlice()
	data[i] = e
	return newVector(v.species, data), nil
}

// BroadcastLane returns a vector with every lane set to lane i of v.
func (v Vector[T]) BroadcastLane(i int) (Vector[T], error) {
	e, err := v.Lane(i)
	if err != nil {
		return Vector[T]{}, err
	}
	return Broadcast(v.species, e)
}

// ToSlice returns a copy of the lanes.
func (v Vector[T]) ToSlice() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)
	return out
}

// Equal reports whether v and w have the same species and identical lanes.
// Floating-point lanes are compared by bit pattern, so NaN equals itself
// and -0 differs from +0.
func (v Vector[T]) Equal(w Vector[T]) bool {
	if v.species != w.species || len(v.data) != len(w.data) {
		return false
	}
	for i := range v.data {
		if !sameBits(v.data[i], w.data[i]) {
			return false
		}
	}
	return true
}

// sameBits reports whether a and b have the same bit pattern.
func sameBits[T Lanes](a, b T) bool {
	switch x := any(a).(type) {
	case float32:
		return toBitsF(x) == toBitsF(any(b).(float32))
	case float64:
		return toBitsF(x) == toBitsF(any(b).(float64))
	default:
		return a == b
	}
}

func (v Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range v.data {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, e)
	}
	sb.WriteByte(']')
	return sb.String()
}

// checkSpecies verifies that every operand shares the species of v.
func (v Vector[T]) checkSpecies(operands ...Vector[T]) error {
	if v.species == nil {
		return fmt.Errorf("%w: vector has no species", ErrShapeMismatch)
	}
	for _, w := range operands {
		if w.species != v.species {
			return shapeError(v.species, w.species)
		}
	}
	return nil
}

func (v Vector[T]) checkMask(m Mask[T]) error {
	if m.species != v.species {
		return shapeError(v.species, m.species)
	}
	return nil
}
