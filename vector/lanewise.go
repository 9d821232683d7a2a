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

// Lanewise applies op independently to each lane of v and the operands.
// The operator's arity must be 1+len(operands).
func (v Vector[T]) Lanewise(op *Operator, operands ...Vector[T]) (Vector[T], error) {
	return v.lanewise(op, nil, operands)
}

// LanewiseMasked is like Lanewise, but lanes unset in m keep the value of
// the corresponding lane of v.
func (v Vector[T]) LanewiseMasked(op *Operator, m Mask[T], operands ...Vector[T]) (Vector[T], error) {
	return v.lanewise(op, &m, operands)
}

// Unary applies a unary operator to every lane.
func (v Vector[T]) Unary(op *Operator) (Vector[T], error) {
	return v.lanewise(op, nil, nil)
}

// UnaryMasked applies a unary operator to the lanes set in m.
func (v Vector[T]) UnaryMasked(op *Operator, m Mask[T]) (Vector[T], error) {
	return v.lanewise(op, &m, nil)
}

// Binary computes op(v[i], w[i]) for every lane.
func (v Vector[T]) Binary(op *Operator, w Vector[T]) (Vector[T], error) {
	return v.lanewise(op, nil, []Vector[T]{w})
}

// BinaryMasked computes op(v[i], w[i]) for the lanes set in m.
func (v Vector[T]) BinaryMasked(op *Operator, w Vector[T], m Mask[T]) (Vector[T], error) {
	return v.lanewise(op, &m, []Vector[T]{w})
}

// BinaryScalar computes op(v[i], e) for every lane.
func (v Vector[T]) BinaryScalar(op *Operator, e T) (Vector[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Vector[T]{}, err
	}
	if op != nil && op.arity == 2 && KindOf[T]().IsFloat() {
		if out, ok := blockScalar(op.code, v.data, e); ok {
			return newVector(v.species, out), nil
		}
	}
	w, err := Broadcast(v.species, e)
	if err != nil {
		return Vector[T]{}, err
	}
	return v.Binary(op, w)
}

// BinaryScalarMasked computes op(v[i], e) for the lanes set in m.
func (v Vector[T]) BinaryScalarMasked(op *Operator, e T, m Mask[T]) (Vector[T], error) {
	w, err := Broadcast(v.species, e)
	if err != nil {
		return Vector[T]{}, err
	}
	return v.BinaryMasked(op, w, m)
}

// Ternary computes op(v[i], w[i], x[i]) for every lane.
func (v Vector[T]) Ternary(op *Operator, w, x Vector[T]) (Vector[T], error) {
	return v.lanewise(op, nil, []Vector[T]{w, x})
}

// TernaryMasked computes op(v[i], w[i], x[i]) for the lanes set in m.
func (v Vector[T]) TernaryMasked(op *Operator, w, x Vector[T], m Mask[T]) (Vector[T], error) {
	return v.lanewise(op, &m, []Vector[T]{w, x})
}

func (v Vector[T]) lanewise(op *Operator, m *Mask[T], operands []Vector[T]) (Vector[T], error) {
	if err := v.checkSpecies(operands...); err != nil {
		return Vector[T]{}, err
	}
	var sel []bool
	if m != nil {
		if err := v.checkMask(*m); err != nil {
			return Vector[T]{}, err
		}
		sel = m.bits
	}
	k := KindOf[T]()
	if err := op.check(1+len(operands), k); err != nil {
		return Vector[T]{}, err
	}

	a := v.data
	out := make([]T, len(a))
	switch len(operands) {
	case 0:
		f, err := UnaryFunc[T](op)
		if err != nil {
			return Vector[T]{}, err
		}
		for i := range out {
			if sel == nil || sel[i] {
				out[i] = f(a[i])
			} else {
				out[i] = a[i]
			}
		}

	case 1:
		b := operands[0].data
		if op.code == opDiv && !k.IsFloat() {
			if err := checkDivisors(b, sel); err != nil {
				return Vector[T]{}, err
			}
		}
		if sel == nil {
			if res, ok := blockBinary(op.code, a, b); ok {
				return newVector(v.species, res), nil
			}
		}
		f, err := BinaryFunc[T](op)
		if err != nil {
			return Vector[T]{}, err
		}
		for i := range out {
			if sel == nil || sel[i] {
				out[i] = f(a[i], b[i])
			} else {
				out[i] = a[i]
			}
		}

	case 2:
		b, c := operands[0].data, operands[1].data
		f, err := TernaryFunc[T](op)
		if err != nil {
			return Vector[T]{}, err
		}
		for i := range out {
			if sel == nil || sel[i] {
				out[i] = f(a[i], b[i], c[i])
			} else {
				out[i] = a[i]
			}
		}
	}
	return newVector(v.species, out), nil
}

// checkDivisors fails if any participating lane of an integer division
// has a zero divisor.
func checkDivisors[T Lanes](b []T, sel []bool) error {
	for i, d := range b {
		if d == 0 && (sel == nil || sel[i]) {
			return fmt.Errorf("%w: division by zero in lane %d", ErrArithmetic, i)
		}
	}
	return nil
}
