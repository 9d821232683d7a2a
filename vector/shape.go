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

// Shape identifies the total bit width of a vector.
type Shape uint8

const (
	// Shape64 is a 64-bit vector.
	Shape64 Shape = iota
	// Shape128 is a 128-bit vector (SSE, NEON).
	Shape128
	// Shape256 is a 256-bit vector (AVX2).
	Shape256
	// Shape512 is a 512-bit vector (AVX-512).
	Shape512
	// ShapeMax is the widest vector of the running platform; see MaxShapeBits.
	ShapeMax

	numShapes = int(ShapeMax) + 1
)

// minVectorBits and maxVectorBits bound the closed set of vector widths:
// every power of two in [64, 1024].
const (
	minVectorBits = 64
	maxVectorBits = 1024
)

func supportedBits(bits int) bool {
	return bits >= minVectorBits && bits <= maxVectorBits && bits&(bits-1) == 0
}

// Bits returns the vector width in bits.
func (s Shape) Bits() int {
	switch s {
	case Shape64:
		return 64
	case Shape128:
		return 128
	case Shape256:
		return 256
	case Shape512:
		return 512
	case ShapeMax:
		return MaxShapeBits()
	default:
		return 0
	}
}

// String returns the shape name, e.g. "S_128_BIT".
func (s Shape) String() string {
	switch s {
	case ShapeMax:
		return "S_Max_BIT"
	case Shape64, Shape128, Shape256, Shape512:
		return fmt.Sprintf("S_%d_BIT", s.Bits())
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// ShapeForBits returns the fixed shape with the given width. Widths only
// reachable through ShapeMax are reported as ShapeMax.
func ShapeForBits(bits int) (Shape, error) {
	for s := Shape64; s < ShapeMax; s++ {
		if s.Bits() == bits {
			return s, nil
		}
	}
	if bits == MaxShapeBits() {
		return ShapeMax, nil
	}
	return 0, fmt.Errorf("%w: no %d-bit shape", ErrUnsupportedOperation, bits)
}
