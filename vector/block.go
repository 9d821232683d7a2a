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

import vecmath "github.com/cwbudde/algo-vecmath"

// Unmasked float64 ADD and MUL are handed to the vecmath block kernels when
// a SIMD level is active. The kernels compute each lane with the same IEEE
// 754 operation as the scalar path, so results are bit-identical.

func useBlockKernels() bool {
	return dispatch.level != DispatchScalar
}

// blockBinary computes a op b lane by lane into a new slice. It reports
// false when no block kernel applies.
func blockBinary[T Lanes](code opcode, a, b []T) ([]T, bool) {
	if !useBlockKernels() {
		return nil, false
	}
	x, ok := any(a).([]float64)
	if !ok {
		return nil, false
	}
	y := any(b).([]float64)
	out := make([]float64, len(x))
	switch code {
	case opAdd:
		vecmath.AddBlock(out, x, y)
	case opMul:
		vecmath.MulBlock(out, x, y)
	default:
		return nil, false
	}
	return any(out).([]T), true
}

// blockScalar computes a op e lane by lane into a new slice.
func blockScalar[T Lanes](code opcode, a []T, e T) ([]T, bool) {
	if !useBlockKernels() || code != opMul {
		return nil, false
	}
	x, ok := any(a).([]float64)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, any(e).(float64))
	return any(out).([]T), true
}
