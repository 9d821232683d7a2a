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

// ReduceLanes folds all lanes with an associative operator. The fold starts
// from the operator's identity and visits lanes in ascending order, so
// floating-point sums are reproducible.
func (v Vector[T]) ReduceLanes(op *Operator) (T, error) {
	return v.reduce(op, nil)
}

// ReduceLanesMasked is like ReduceLanes, but lanes unset in m contribute
// the operator's identity.
func (v Vector[T]) ReduceLanesMasked(op *Operator, m Mask[T]) (T, error) {
	return v.reduce(op, &m)
}

// ReduceLanesToInt64 reduces the lanes and widens the result to int64.
// Floating-point results are truncated toward zero and saturated, and NaN
// becomes 0.
func (v Vector[T]) ReduceLanesToInt64(op *Operator) (int64, error) {
	return v.reduceToInt64(op, nil)
}

// ReduceLanesToInt64Masked is ReduceLanesMasked widened to int64 like
// ReduceLanesToInt64.
func (v Vector[T]) ReduceLanesToInt64Masked(op *Operator, m Mask[T]) (int64, error) {
	return v.reduceToInt64(op, &m)
}

func (v Vector[T]) reduceToInt64(op *Operator, m *Mask[T]) (int64, error) {
	r, err := v.reduce(op, m)
	if err != nil {
		return 0, err
	}
	switch x := any(r).(type) {
	case float32:
		return saturateInt64(float64(x)), nil
	case float64:
		return saturateInt64(x), nil
	default:
		return int64(r), nil
	}
}

func (v Vector[T]) reduce(op *Operator, m *Mask[T]) (T, error) {
	if err := v.checkSpecies(); err != nil {
		return 0, err
	}
	if m != nil {
		if err := v.checkMask(*m); err != nil {
			return 0, err
		}
	}
	id, err := Identity[T](op)
	if err != nil {
		return 0, err
	}
	f, err := BinaryFunc[T](op)
	if err != nil {
		return 0, err
	}
	acc := id
	for i, e := range v.data {
		if m != nil && !m.bits[i] {
			e = id
		}
		acc = f(acc, e)
	}
	return acc, nil
}
