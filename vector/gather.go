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

// Indices is a constraint for the lane types of index vectors used by
// Gather and Scatter.
type Indices interface {
	int32 | int64
}

// FromArrayIndexed gathers lane i from a[offset+indexMap[mapOffset+i]].
// All indices are checked before any element is read.
func FromArrayIndexed[T Lanes](s *Species, a []T, offset int, indexMap []int, mapOffset int) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	pos, err := resolveIndexMap(len(a), offset, indexMap, mapOffset, s.laneCount, nil)
	if err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	for i, p := range pos {
		data[i] = a[p]
	}
	return newVector(s, data), nil
}

// FromArrayIndexedMasked is like FromArrayIndexed for the lanes set in m.
// Unset lanes are zero and their index map entries are not read.
func FromArrayIndexedMasked[T Lanes](s *Species, a []T, offset int, indexMap []int, mapOffset int, m Mask[T]) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	if m.species != s {
		return Vector[T]{}, shapeError(s, m.species)
	}
	pos, err := resolveIndexMap(len(a), offset, indexMap, mapOffset, s.laneCount, m.bits)
	if err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	for i, p := range pos {
		if m.bits[i] {
			data[i] = a[p]
		}
	}
	return newVector(s, data), nil
}

// IntoArrayIndexed scatters lane i to a[offset+indexMap[mapOffset+i]].
// Lanes are stored in ascending order, so when two lanes share a target
// the higher lane wins. Nothing is written if any index is out of range.
func (v Vector[T]) IntoArrayIndexed(a []T, offset int, indexMap []int, mapOffset int) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	pos, err := resolveIndexMap(len(a), offset, indexMap, mapOffset, len(v.data), nil)
	if err != nil {
		return err
	}
	for i, p := range pos {
		a[p] = v.data[i]
	}
	return nil
}

// IntoArrayIndexedMasked is like IntoArrayIndexed for the lanes set in m.
func (v Vector[T]) IntoArrayIndexedMasked(a []T, offset int, indexMap []int, mapOffset int, m Mask[T]) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	if err := v.checkMask(m); err != nil {
		return err
	}
	pos, err := resolveIndexMap(len(a), offset, indexMap, mapOffset, len(v.data), m.bits)
	if err != nil {
		return err
	}
	for i, p := range pos {
		if m.bits[i] {
			a[p] = v.data[i]
		}
	}
	return nil
}

// resolveIndexMap computes the element position of every participating
// lane, failing on the first index outside [0, length).
func resolveIndexMap(length, offset int, indexMap []int, mapOffset, n int, sel []bool) ([]int, error) {
	if sel == nil {
		if err := checkFromIndexSize(mapOffset, n, len(indexMap)); err != nil {
			return nil, err
		}
	}
	pos := make([]int, n)
	for i := range pos {
		if sel != nil && !sel[i] {
			continue
		}
		if err := checkIndex(mapOffset+i, len(indexMap)); err != nil {
			return nil, err
		}
		idx := indexMap[mapOffset+i]
		p, ok := addIndex(offset, idx)
		if !ok || p < 0 || p >= length {
			return nil, fmt.Errorf("%w: lane %d maps to index %d%+d, length %d", ErrIndexOutOfRange, i, offset, idx, length)
		}
		pos[i] = p
	}
	return pos, nil
}

// addIndex returns offset+idx, reporting false if the sum overflows int.
func addIndex(offset, idx int) (int, bool) {
	p := offset + idx
	if (idx > 0 && p < offset) || (idx < 0 && p > offset) {
		return 0, false
	}
	return p, true
}

// Gather loads lane i from a[base+idx[i]]. The index vector must have the
// same lane count as s.
func Gather[T Lanes, I Indices](s *Species, a []T, base int, idx Vector[I]) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	indexMap, err := indexSlice(idx, s.laneCount)
	if err != nil {
		return Vector[T]{}, err
	}
	return FromArrayIndexed(s, a, base, indexMap, 0)
}

// Scatter stores lane i of v to a[base+idx[i]].
func Scatter[T Lanes, I Indices](v Vector[T], a []T, base int, idx Vector[I]) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	indexMap, err := indexSlice(idx, len(v.data))
	if err != nil {
		return err
	}
	return v.IntoArrayIndexed(a, base, indexMap, 0)
}

func indexSlice[I Indices](idx Vector[I], n int) ([]int, error) {
	if idx.species == nil || len(idx.data) != n {
		return nil, fmt.Errorf("%w: %d indices for %d lanes", ErrLengthMismatch, len(idx.data), n)
	}
	out := make([]int, n)
	for i, j := range idx.data {
		out[i] = int(j)
	}
	return out, nil
}
