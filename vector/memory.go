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

import "fmt"

// FromArray loads LaneCount lanes from a starting at offset.
func FromArray[T Lanes](s *Species, a []T, offset int) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	if err := checkFromIndexSize(offset, s.laneCount, len(a)); err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	copy(data, a[offset:])
	return newVector(s, data), nil
}

// FromArrayMasked loads the lanes set in m from a starting at offset;
// unset lanes are zero. Only set lanes must lie inside a.
func FromArrayMasked[T Lanes](s *Species, a []T, offset int, m Mask[T]) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	if m.species != s {
		return Vector[T]{}, shapeError(s, m.species)
	}
	if err := checkMaskedRange(offset, len(a), m.bits); err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	for i, set := range m.bits {
		if set {
			data[i] = a[offset+i]
		}
	}
	return newVector(s, data), nil
}

// IntoArray stores the lanes of v into a starting at offset.
func (v Vector[T]) IntoArray(a []T, offset int) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	if err := checkFromIndexSize(offset, len(v.data), len(a)); err != nil {
		return err
	}
	copy(a[offset:], v.data)
	return nil
}

// IntoArrayMasked stores the lanes set in m into a starting at offset.
// Elements of a under unset lanes are left untouched.
func (v Vector[T]) IntoArrayMasked(a []T, offset int, m Mask[T]) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	if err := v.checkMask(m); err != nil {
		return err
	}
	if err := checkMaskedRange(offset, len(a), m.bits); err != nil {
		return err
	}
	for i, set := range m.bits {
		if set {
			a[offset+i] = v.data[i]
		}
	}
	return nil
}

// checkMaskedRange verifies that every set lane i maps to an element
// offset+i inside a buffer of the given length. The whole range is checked
// first as the common case.
func checkMaskedRange(offset, length int, bits []bool) error {
	if checkFromIndexSize(offset, len(bits), length) == nil {
		return nil
	}
	for i, set := range bits {
		if set {
			if j := offset + i; j < 0 || j >= length {
				return fmt.Errorf("%w: lane %d reads index %d, length %d", ErrIndexOutOfRange, i, j, length)
			}
		}
	}
	return nil
}
