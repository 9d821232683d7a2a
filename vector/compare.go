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

// Compare tests op(v[i], w[i]) for every lane.
func (v Vector[T]) Compare(op *Comparison, w Vector[T]) (Mask[T], error) {
	return v.compare(op, w, nil)
}

// CompareScalar tests op(v[i], e) for every lane.
func (v Vector[T]) CompareScalar(op *Comparison, e T) (Mask[T], error) {
	w, err := Broadcast(v.species, e)
	if err != nil {
		return Mask[T]{}, err
	}
	return v.compare(op, w, nil)
}

// CompareMasked tests op(v[i], w[i]) for the lanes set in m. Unset lanes
// are false in the result.
func (v Vector[T]) CompareMasked(op *Comparison, w Vector[T], m Mask[T]) (Mask[T], error) {
	return v.compare(op, w, &m)
}

func (v Vector[T]) compare(op *Comparison, w Vector[T], m *Mask[T]) (Mask[T], error) {
	if err := v.checkSpecies(w); err != nil {
		return Mask[T]{}, err
	}
	if m != nil {
		if err := v.checkMask(*m); err != nil {
			return Mask[T]{}, err
		}
	}
	f, err := CompareFunc[T](op)
	if err != nil {
		return Mask[T]{}, err
	}
	bits := make([]bool, len(v.data))
	for i := range bits {
		if m == nil || m.bits[i] {
			bits[i] = f(v.data[i], w.data[i])
		}
	}
	return newMask[T](v.species, bits), nil
}

// Test evaluates the lane predicate op on every lane.
func (v Vector[T]) Test(op *TestOp) (Mask[T], error) {
	return v.test(op, nil)
}

// TestMasked evaluates op on the lanes set in m. Unset lanes are false.
func (v Vector[T]) TestMasked(op *TestOp, m Mask[T]) (Mask[T], error) {
	return v.test(op, &m)
}

func (v Vector[T]) test(op *TestOp, m *Mask[T]) (Mask[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Mask[T]{}, err
	}
	if m != nil {
		if err := v.checkMask(*m); err != nil {
			return Mask[T]{}, err
		}
	}
	f, err := TestFunc[T](op)
	if err != nil {
		return Mask[T]{}, err
	}
	bits := make([]bool, len(v.data))
	for i := range bits {
		if m == nil || m.bits[i] {
			bits[i] = f(v.data[i])
		}
	}
	return newMask[T](v.species, bits), nil
}

// Blend returns a vector whose lane i is w[i] where m is set and v[i]
// elsewhere.
func (v Vector[T]) Blend(w Vector[T], m Mask[T]) (Vector[T], error) {
	if err := v.checkSpecies(w); err != nil {
		return Vector[T]{}, err
	}
	if err := v.checkMask(m); err != nil {
		return Vector[T]{}, err
	}
	out := make([]T, len(v.data))
	for i := range out {
		if m.bits[i] {
			out[i] = w.data[i]
		} else {
			out[i] = v.data[i]
		}
	}
	return newVector(v.species, out), nil
}
