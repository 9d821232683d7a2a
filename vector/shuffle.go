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
	"strconv"
	"strings"
)

// Shuffle is an immutable per-lane permutation: lane i names the source
// lane that lands in lane i. Valid indices lie in [0, LaneCount).
// An out-of-range source index i is stored partially wrapped, as
// floorMod(i, LaneCount) - LaneCount, which keeps the wrapped position
// recoverable while marking the lane as exceptional (negative).
type Shuffle[T Lanes] struct {
	species *Species
	indices []int16
}

// IndexPolicy decides how an exceptional index is treated when it is used
// to select a lane.
type IndexPolicy int

const (
	// IndexPolicyFail reports ErrIndexOutOfRange.
	IndexPolicyFail IndexPolicy = iota
	// IndexPolicyWrap uses the index wrapped into [0, LaneCount).
	IndexPolicyWrap
)

// partialWrap encodes a source index for an n-lane shuffle.
func partialWrap(i, n int) int16 {
	if i >= 0 && i < n {
		return int16(i)
	}
	r := i % n
	if r < 0 {
		r += n
	}
	return int16(r - n)
}

// fullWrap maps any index into [0, n).
func fullWrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// ShuffleFromArray loads LaneCount source indices from a starting at
// offset.
func ShuffleFromArray[T Lanes](s *Species, a []int, offset int) (Shuffle[T], error) {
	if err := checkKind[T](s); err != nil {
		return Shuffle[T]{}, err
	}
	if err := checkFromIndexSize(offset, s.laneCount, len(a)); err != nil {
		return Shuffle[T]{}, err
	}
	return ShuffleFromFunc[T](s, func(i int) int { return a[offset+i] })
}

// ShuffleFromValues returns a shuffle with exactly the given source
// indices.
func ShuffleFromValues[T Lanes](s *Species, indices ...int) (Shuffle[T], error) {
	if err := checkKind[T](s); err != nil {
		return Shuffle[T]{}, err
	}
	if len(indices) != s.laneCount {
		return Shuffle[T]{}, fmt.Errorf("%w: %d indices for %v", ErrLengthMismatch, len(indices), s)
	}
	return ShuffleFromArray[T](s, indices, 0)
}

// ShuffleFromFunc returns a shuffle whose lane i takes its source index
// from fn(i).
func ShuffleFromFunc[T Lanes](s *Species, fn func(i int) int) (Shuffle[T], error) {
	if err := checkKind[T](s); err != nil {
		return Shuffle[T]{}, err
	}
	n := s.laneCount
	idx := make([]int16, n)
	for i := range idx {
		idx[i] = partialWrap(fn(i), n)
	}
	return Shuffle[T]{species: s, indices: idx}, nil
}

// ShuffleIota returns the shuffle whose lane i selects start+i*step. With
// wrap set, the indices are reduced modulo the lane count; otherwise
// out-of-range indices become exceptional.
func ShuffleIota[T Lanes](s *Species, start, step int, wrap bool) (Shuffle[T], error) {
	if err := checkKind[T](s); err != nil {
		return Shuffle[T]{}, err
	}
	n := s.laneCount
	return ShuffleFromFunc[T](s, func(i int) int {
		j := start + i*step
		if wrap {
			return fullWrap(j, n)
		}
		return j
	})
}

// Species returns the species of the shuffle.
func (sh Shuffle[T]) Species() *Species { return sh.species }

// Length returns the number of lanes.
func (sh Shuffle[T]) Length() int { return len(sh.indices) }

// Lane returns the stored source index of lane i; exceptional indices are
// negative.
func (sh Shuffle[T]) Lane(i int) (int, error) {
	if err := checkIndex(i, len(sh.indices)); err != nil {
		return 0, err
	}
	return int(sh.indices[i]), nil
}

// ToArray returns the stored source indices.
func (sh Shuffle[T]) ToArray() []int {
	out := make([]int, len(sh.indices))
	for i, j := range sh.indices {
		out[i] = int(j)
	}
	return out
}

// ToVector returns the source indices as lane values.
func (sh Shuffle[T]) ToVector() Vector[T] {
	data := make([]T, len(sh.indices))
	for i, j := range sh.indices {
		data[i] = T(j)
	}
	return newVector(sh.species, data)
}

// WrapIndexes returns a copy of sh with exceptional indices wrapped into
// [0, LaneCount).
func (sh Shuffle[T]) WrapIndexes() Shuffle[T] {
	n := int16(len(sh.indices))
	idx := make([]int16, len(sh.indices))
	for i, j := range sh.indices {
		if j < 0 {
			j += n
		}
		idx[i] = j
	}
	return Shuffle[T]{species: sh.species, indices: idx}
}

// CheckIndexes returns sh unchanged, or ErrIndexOutOfRange if any index is
// exceptional.
func (sh Shuffle[T]) CheckIndexes() (Shuffle[T], error) {
	for i, j := range sh.indices {
		if j < 0 {
			return Shuffle[T]{}, sh.exceptionalError(i)
		}
	}
	return sh, nil
}

// LaneIsValid returns the mask of lanes holding a valid index.
func (sh Shuffle[T]) LaneIsValid() Mask[T] {
	bits := make([]bool, len(sh.indices))
	for i, j := range sh.indices {
		bits[i] = j >= 0
	}
	return newMask[T](sh.species, bits)
}

// Rearrange composes two shuffles: lane i of the result is
// sh[other[i]]. An exceptional index in other is handled per policy; the
// selected entries of sh are copied as they are, exceptional or not.
func (sh Shuffle[T]) Rearrange(other Shuffle[T], policy IndexPolicy) (Shuffle[T], error) {
	if sh.species == nil || sh.species != other.species {
		return Shuffle[T]{}, shapeError(sh.species, other.species)
	}
	n := int16(len(sh.indices))
	idx := make([]int16, len(sh.indices))
	for i, j := range other.indices {
		if j < 0 {
			if policy != IndexPolicyWrap {
				return Shuffle[T]{}, other.exceptionalError(i)
			}
			j += n
		}
		idx[i] = sh.indices[j]
	}
	return Shuffle[T]{species: sh.species, indices: idx}, nil
}

func (sh Shuffle[T]) exceptionalError(lane int) error {
	n := len(sh.indices)
	return fmt.Errorf("%w: shuffle lane %d holds source index %d, not in [0, %d)",
		ErrIndexOutOfRange, lane, int(sh.indices[lane])+n, n)
}

// Equal reports whether sh and o have the same species and indices.
func (sh Shuffle[T]) Equal(o Shuffle[T]) bool {
	if sh.species != o.species || len(sh.indices) != len(o.indices) {
		return false
	}
	for i := range sh.indices {
		if sh.indices[i] != o.indices[i] {
			return false
		}
	}
	return true
}

func (sh Shuffle[T]) String() string {
	parts := make([]string, len(sh.indices))
	for i, j := range sh.indices {
		parts[i] = strconv.Itoa(int(j))
	}
	return "Shuffle[" + strings.Join(parts, ", ") + "]"
}

// CastShuffle converts sh to a species with the same lane count and
// another lane type.
func CastShuffle[F, T Lanes](sh Shuffle[F], to *Species) (Shuffle[T], error) {
	if err := checkKind[T](to); err != nil {
		return Shuffle[T]{}, err
	}
	if sh.species == nil {
		return Shuffle[T]{}, fmt.Errorf("%w: shuffle has no species", ErrShapeMismatch)
	}
	if sh.species.laneCount != to.laneCount {
		return Shuffle[T]{}, fmt.Errorf("%w: cannot cast %v to %v", ErrLengthMismatch, sh.species, to)
	}
	idx := make([]int16, len(sh.indices))
	copy(idx, sh.indices)
	return Shuffle[T]{species: to, indices: idx}, nil
}
