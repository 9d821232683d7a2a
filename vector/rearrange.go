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

// Rearrange returns the vector whose lane i is v[sh[i]]. An exceptional
// index in sh is reported as ErrIndexOutOfRange.
func (v Vector[T]) Rearrange(sh Shuffle[T]) (Vector[T], error) {
	return v.rearrange(sh, nil, nil)
}

// RearrangeMasked is like Rearrange for the lanes set in m. Unset lanes
// keep the value of v, and their indices are not checked.
func (v Vector[T]) RearrangeMasked(sh Shuffle[T], m Mask[T]) (Vector[T], error) {
	if err := v.checkMask(m); err != nil {
		return Vector[T]{}, err
	}
	return v.rearrange(sh, m.bits, nil)
}

// RearrangeOr is like Rearrange, but a lane with an exceptional index
// takes the lane of fallback selected by the wrapped index.
func (v Vector[T]) RearrangeOr(sh Shuffle[T], fallback Vector[T]) (Vector[T], error) {
	if err := v.checkSpecies(fallback); err != nil {
		return Vector[T]{}, err
	}
	return v.rearrange(sh, nil, fallback.data)
}

func (v Vector[T]) rearrange(sh Shuffle[T], sel []bool, fallback []T) (Vector[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Vector[T]{}, err
	}
	if sh.species != v.species {
		return Vector[T]{}, shapeError(v.species, sh.species)
	}
	n := len(v.data)
	out := make([]T, n)
	for i, j := range sh.indices {
		switch {
		case sel != nil && !sel[i]:
			out[i] = v.data[i]
		case j >= 0:
			out[i] = v.data[j]
		case fallback != nil:
			out[i] = fallback[int(j)+n]
		default:
			return Vector[T]{}, sh.exceptionalError(i)
		}
	}
	return newVector(v.species, out), nil
}

// ToShuffle interprets the lanes of v as source indices. Floating-point
// lanes are truncated toward zero first. Out-of-range indices become
// exceptional.
func (v Vector[T]) ToShuffle() (Shuffle[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Shuffle[T]{}, err
	}
	n := len(v.data)
	idx := make([]int16, n)
	for i, e := range v.data {
		idx[i] = partialWrap(laneIndex(e), n)
	}
	return Shuffle[T]{species: v.species, indices: idx}, nil
}

// laneIndex converts a lane value to an index, saturating floats.
func laneIndex[T Lanes](e T) int {
	switch x := any(e).(type) {
	case float32:
		return int(saturateInt32(float64(x)))
	case float64:
		return int(saturateInt32(x))
	default:
		return int(e)
	}
}

// SelectFrom uses the lanes of v as indices into w: lane i of the result
// is w[v[i]]. An exceptional index is reported as ErrIndexOutOfRange.
func (v Vector[T]) SelectFrom(w Vector[T]) (Vector[T], error) {
	if err := v.checkSpecies(w); err != nil {
		return Vector[T]{}, err
	}
	sh, err := v.ToShuffle()
	if err != nil {
		return Vector[T]{}, err
	}
	return w.rearrange(sh, nil, nil)
}

// SelectFromMasked is like SelectFrom for the lanes set in m. Unset lanes
// keep the value of v.
func (v Vector[T]) SelectFromMasked(w Vector[T], m Mask[T]) (Vector[T], error) {
	if err := v.checkSpecies(w); err != nil {
		return Vector[T]{}, err
	}
	if err := v.checkMask(m); err != nil {
		return Vector[T]{}, err
	}
	sh, err := v.ToShuffle()
	if err != nil {
		return Vector[T]{}, err
	}
	sel, err := w.rearrange(sh.WrapIndexes(), nil, nil)
	if err != nil {
		return Vector[T]{}, err
	}
	for i, set := range m.bits {
		if set && sh.indices[i] < 0 {
			return Vector[T]{}, sh.exceptionalError(i)
		}
	}
	return v.Blend(sel, m)
}

// Slice returns LaneCount consecutive lanes of the concatenation of v and
// w, starting at lane origin of v. origin must be in [0, LaneCount].
func (v Vector[T]) Slice(origin int, w Vector[T]) (Vector[T], error) {
	if err := v.checkSpecies(w); err != nil {
		return Vector[T]{}, err
	}
	n := len(v.data)
	if origin < 0 || origin > n {
		return Vector[T]{}, fmt.Errorf("%w: slice origin %d, length %d", ErrIndexOutOfRange, origin, n)
	}
	// Indices past the end of v wrap into the fallback, which is w.
	sh, err := ShuffleIota[T](v.species, origin, 1, false)
	if err != nil {
		return Vector[T]{}, err
	}
	return v.rearrange(sh, nil, w.data)
}

// Unslice is the inverse of Slice. It inserts v at lane origin of the
// concatenation of two copies of w and returns half part (0 or 1) of it.
func (v Vector[T]) Unslice(origin int, w Vector[T], part int) (Vector[T], error) {
	return v.unslice(origin, w, part, nil)
}

// UnsliceMasked is like Unslice, but only the lanes of v set in m are
// inserted; the other positions keep the lanes of w.
func (v Vector[T]) UnsliceMasked(origin int, w Vector[T], part int, m Mask[T]) (Vector[T], error) {
	if err := v.checkMask(m); err != nil {
		return Vector[T]{}, err
	}
	return v.unslice(origin, w, part, m.bits)
}

func (v Vector[T]) unslice(origin int, w Vector[T], part int, sel []bool) (Vector[T], error) {
	if err := v.checkSpecies(w); err != nil {
		return Vector[T]{}, err
	}
	n := len(v.data)
	if origin < 0 || origin > n {
		return Vector[T]{}, fmt.Errorf("%w: unslice origin %d, length %d", ErrIndexOutOfRange, origin, n)
	}
	if part != 0 && part != 1 {
		return Vector[T]{}, partError(part, 0, 1)
	}
	// Lane j of the result comes from lane j+part*n-origin of v when that
	// index is valid.
	sh, err := ShuffleIota[T](v.species, part*n-origin, 1, false)
	if err != nil {
		return Vector[T]{}, err
	}
	moved, err := v.rearrange(sh.WrapIndexes(), nil, nil)
	if err != nil {
		return Vector[T]{}, err
	}
	take := sh.LaneIsValid()
	if sel != nil {
		for j, k := range sh.indices {
			if k >= 0 && !sel[k] {
				take.bits[j] = false
			}
		}
	}
	return w.Blend(moved, take)
}
