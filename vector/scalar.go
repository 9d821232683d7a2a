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
	"math"
	"unsafe"
)

// This file resolves operators into scalar kernels. A kernel is looked up
// once per vector operation and then applied in a tight loop over the
// lanes, so no per-lane dispatch happens on the hot path.

// UnaryFunc returns the scalar semantics of a unary operator for lane type T.
func UnaryFunc[T Lanes](op *Operator) (func(T) T, error) {
	k := KindOf[T]()
	if err := op.check(1, k); err != nil {
		return nil, err
	}
	var f any
	switch k {
	case Int8:
		f = intUnary[int8](op.code)
	case Int16:
		f = intUnary[int16](op.code)
	case Int32:
		f = intUnary[int32](op.code)
	case Int64:
		f = intUnary[int64](op.code)
	case Float32:
		f = floatUnary[float32](op.code)
	case Float64:
		f = floatUnary[float64](op.code)
	}
	return f.(func(T) T), nil
}

// BinaryFunc returns the scalar semantics of a binary operator for lane
// type T. The integer DIV kernel panics on a zero divisor like the Go
// operator; vector operations check divisors before applying it.
func BinaryFunc[T Lanes](op *Operator) (func(T, T) T, error) {
	k := KindOf[T]()
	if err := op.check(2, k); err != nil {
		return nil, err
	}
	var f any
	switch k {
	case Int8:
		f = intBinary[int8](op.code)
	case Int16:
		f = intBinary[int16](op.code)
	case Int32:
		f = intBinary[int32](op.code)
	case Int64:
		f = intBinary[int64](op.code)
	case Float32:
		f = floatBinary[float32](op.code)
	case Float64:
		f = floatBinary[float64](op.code)
	}
	return f.(func(T, T) T), nil
}

// TernaryFunc returns the scalar semantics of a ternary operator for lane
// type T.
func TernaryFunc[T Lanes](op *Operator) (func(T, T, T) T, error) {
	k := KindOf[T]()
	if err := op.check(3, k); err != nil {
		return nil, err
	}
	var f any
	switch k {
	case Int8:
		f = intTernary[int8](op.code)
	case Int16:
		f = intTernary[int16](op.code)
	case Int32:
		f = intTernary[int32](op.code)
	case Int64:
		f = intTernary[int64](op.code)
	case Float32:
		f = floatTernary[float32](op.code)
	case Float64:
		f = floatTernary[float64](op.code)
	}
	return f.(func(T, T, T) T), nil
}

// CompareFunc returns the scalar semantics of a comparison for lane type T.
func CompareFunc[T Lanes](c *Comparison) (func(T, T) bool, error) {
	k := KindOf[T]()
	if err := c.check(k); err != nil {
		return nil, err
	}
	var f any
	switch k {
	case Int8:
		f = intCompare[int8](c.code)
	case Int16:
		f = intCompare[int16](c.code)
	case Int32:
		f = intCompare[int32](c.code)
	case Int64:
		f = intCompare[int64](c.code)
	case Float32:
		f = floatCompare[float32](c.code)
	case Float64:
		f = floatCompare[float64](c.code)
	}
	return f.(func(T, T) bool), nil
}

// TestFunc returns the scalar semantics of a lane predicate for lane type T.
func TestFunc[T Lanes](t *TestOp) (func(T) bool, error) {
	k := KindOf[T]()
	if err := t.check(k); err != nil {
		return nil, err
	}
	var f any
	switch k {
	case Int8:
		f = intTest[int8](t.code)
	case Int16:
		f = intTest[int16](t.code)
	case Int32:
		f = intTest[int32](t.code)
	case Int64:
		f = intTest[int64](t.code)
	case Float32:
		f = floatTest[float32](t.code)
	case Float64:
		f = floatTest[float64](t.code)
	}
	return f.(func(T) bool), nil
}

// Identity returns the identity element of an associative operator for
// lane type T: the value folded in for masked-off lanes by ReduceLanes.
func Identity[T Lanes](op *Operator) (T, error) {
	if err := op.check(2, KindOf[T]()); err != nil {
		return 0, err
	}
	if !op.assoc {
		return 0, fmt.Errorf("%w: %s is not associative", ErrUnsupportedOperation, op.name)
	}
	switch op.code {
	case opMul:
		return 1, nil
	case opAnd:
		return -1, nil
	case opMin:
		return maxValue[T](), nil
	case opMax:
		return minValue[T](), nil
	default: // ADD, OR, XOR, FIRST_NONZERO
		return 0, nil
	}
}

// maxValue returns the largest value of T (+Inf for floats).
func maxValue[T Lanes]() T {
	var v any
	switch KindOf[T]() {
	case Int8:
		v = int8(math.MaxInt8)
	case Int16:
		v = int16(math.MaxInt16)
	case Int32:
		v = int32(math.MaxInt32)
	case Int64:
		v = int64(math.MaxInt64)
	case Float32:
		v = float32(math.Inf(1))
	case Float64:
		v = math.Inf(1)
	}
	return v.(T)
}

// minValue returns the smallest value of T (-Inf for floats).
func minValue[T Lanes]() T {
	var v any
	switch KindOf[T]() {
	case Int8:
		v = int8(math.MinInt8)
	case Int16:
		v = int16(math.MinInt16)
	case Int32:
		v = int32(math.MinInt32)
	case Int64:
		v = int64(math.MinInt64)
	case Float32:
		v = float32(math.Inf(-1))
	case Float64:
		v = math.Inf(-1)
	}
	return v.(T)
}

// intBits returns the width of I in bits.
func intBits[I SignedInts]() uint {
	var zero I
	return uint(unsafe.Sizeof(zero)) * 8
}

// lowMask returns a mask of the low n bits.
func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}

func intUnary[I SignedInts](code opcode) func(I) I {
	switch code {
	case opNeg:
		return func(a I) I { return -a }
	case opAbs:
		// MinValue stays MinValue, as two's complement negation does.
		return func(a I) I {
			if a < 0 {
				return -a
			}
			return a
		}
	case opNot:
		return func(a I) I { return ^a }
	case opZomo:
		return func(a I) I {
			if a == 0 {
				return 0
			}
			return -1
		}
	}
	return nil
}

func intBinary[I SignedInts](code opcode) func(I, I) I {
	bits := intBits[I]()
	mask := lowMask(bits)
	switch code {
	case opAdd:
		return func(a, b I) I { return a + b }
	case opSub:
		return func(a, b I) I { return a - b }
	case opMul:
		return func(a, b I) I { return a * b }
	case opDiv:
		return func(a, b I) I { return a / b }
	case opMin:
		return func(a, b I) I { return min(a, b) }
	case opMax:
		return func(a, b I) I { return max(a, b) }
	case opFirstNonzero:
		return func(a, b I) I {
			if a != 0 {
				return a
			}
			return b
		}
	case opAnd:
		return func(a, b I) I { return a & b }
	case opAndNot:
		return func(a, b I) I { return a &^ b }
	case opOr:
		return func(a, b I) I { return a | b }
	case opXor:
		return func(a, b I) I { return a ^ b }
	case opShl:
		return func(a, b I) I { return a << (uint(b) & (bits - 1)) }
	case opAshr:
		return func(a, b I) I { return a >> (uint(b) & (bits - 1)) }
	case opLshr:
		return func(a, b I) I { return I((uint64(a) & mask) >> (uint(b) & (bits - 1))) }
	case opRol:
		return func(a, b I) I {
			n := uint(b) & (bits - 1)
			u := uint64(a) & mask
			return I((u<<n | u>>(bits-n)) & mask)
		}
	case opRor:
		return func(a, b I) I {
			n := uint(b) & (bits - 1)
			u := uint64(a) & mask
			return I((u>>n | u<<(bits-n)) & mask)
		}
	}
	return nil
}

func intTernary[I SignedInts](code opcode) func(I, I, I) I {
	if code == opBitwiseBlend {
		return func(a, b, c I) I { return (a &^ c) | (b & c) }
	}
	return nil
}

func intCompare[I SignedInts](code cmpcode) func(I, I) bool {
	switch code {
	case cmpEq:
		return func(a, b I) bool { return a == b }
	case cmpNe:
		return func(a, b I) bool { return a != b }
	case cmpLt:
		return func(a, b I) bool { return a < b }
	case cmpLe:
		return func(a, b I) bool { return a <= b }
	case cmpGt:
		return func(a, b I) bool { return a > b }
	case cmpGe:
		return func(a, b I) bool { return a >= b }
	// Sign extension to uint64 keeps the unsigned order of the low bits.
	case cmpUnsignedLt:
		return func(a, b I) bool { return uint64(a) < uint64(b) }
	case cmpUnsignedLe:
		return func(a, b I) bool { return uint64(a) <= uint64(b) }
	case cmpUnsignedGt:
		return func(a, b I) bool { return uint64(a) > uint64(b) }
	case cmpUnsignedGe:
		return func(a, b I) bool { return uint64(a) >= uint64(b) }
	}
	return nil
}

func intTest[I SignedInts](code testcode) func(I) bool {
	switch code {
	case testIsDefault:
		return func(a I) bool { return a == 0 }
	case testIsNegative:
		return func(a I) bool { return a < 0 }
	}
	return nil
}
