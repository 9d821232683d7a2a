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
	"math"
	"testing"
)

// vec builds a vector from exactly LaneCount values.
func vec[T Lanes](t *testing.T, s *Species, values ...T) Vector[T] {
	t.Helper()
	v, err := FromValues(s, values...)
	if err != nil {
		t.Fatalf("FromValues(%v, %v): %v", s, values, err)
	}
	return v
}

// mask builds a mask from exactly LaneCount booleans.
func mask[T Lanes](t *testing.T, s *Species, bits ...bool) Mask[T] {
	t.Helper()
	m, err := MaskFromValues[T](s, bits...)
	if err != nil {
		t.Fatalf("MaskFromValues(%v, %v): %v", s, bits, err)
	}
	return m
}

// seq returns n values start, start+step, ...
func seq[T Lanes](n int, start, step T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = start + T(i)*step
	}
	return out
}

// sameLanes reports whether got and want are lane-for-lane identical,
// comparing floats by bit pattern.
func sameLanes[T Lanes](got, want []T) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !sameBits(got[i], want[i]) {
			return false
		}
	}
	return true
}

// fixedShapes lists the shapes whose width does not depend on the CPU.
var fixedShapes = []Shape{Shape64, Shape128, Shape256, Shape512}

// Values that stress floating-point lanes.
var (
	nan32     = float32(math.NaN())
	inf32     = float32(math.Inf(1))
	negZero   = math.Copysign(0, -1)
	negZero32 = float32(negZero)
)
