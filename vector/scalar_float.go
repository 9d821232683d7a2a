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
	"math/big"
	"unsafe"
)

// toBitsF returns the raw IEEE 754 bits of a, zero-extended to 64 bits.
func toBitsF[F Floats](a F) uint64 {
	if unsafe.Sizeof(a) == 4 {
		return uint64(math.Float32bits(float32(a)))
	}
	return math.Float64bits(float64(a))
}

// fromBitsF is the inverse of toBitsF.
func fromBitsF[F Floats](b uint64) F {
	var zero F
	if unsafe.Sizeof(zero) == 4 {
		return F(math.Float32frombits(uint32(b)))
	}
	return F(math.Float64frombits(b))
}

func signMaskF[F Floats]() uint64 {
	var zero F
	return 1 << (unsafe.Sizeof(zero)*8 - 1)
}

// unaryMath lifts a float64 function to F.
func unaryMath[F Floats](f func(float64) float64) func(F) F {
	return func(a F) F { return F(f(float64(a))) }
}

func binaryMath[F Floats](f func(float64, float64) float64) func(F, F) F {
	return func(a, b F) F { return F(f(float64(a), float64(b))) }
}

func floatUnary[F Floats](code opcode) func(F) F {
	sign := signMaskF[F]()
	switch code {
	case opNeg:
		return func(a F) F { return fromBitsF[F](toBitsF(a) ^ sign) }
	case opAbs:
		return func(a F) F { return fromBitsF[F](toBitsF(a) &^ sign) }
	case opSqrt:
		return unaryMath[F](math.Sqrt)
	case opCbrt:
		return unaryMath[F](math.Cbrt)
	case opExp:
		return unaryMath[F](math.Exp)
	case opExpm1:
		return unaryMath[F](math.Expm1)
	case opLog:
		return unaryMath[F](math.Log)
	case opLog10:
		return unaryMath[F](math.Log10)
	case opLog1p:
		return unaryMath[F](math.Log1p)
	case opSin:
		return unaryMath[F](math.Sin)
	case opCos:
		return unaryMath[F](math.Cos)
	case opTan:
		return unaryMath[F](math.Tan)
	case opAsin:
		return unaryMath[F](math.Asin)
	case opAcos:
		return unaryMath[F](math.Acos)
	case opAtan:
		return unaryMath[F](math.Atan)
	case opSinh:
		return unaryMath[F](math.Sinh)
	case opCosh:
		return unaryMath[F](math.Cosh)
	case opTanh:
		return unaryMath[F](math.Tanh)
	}
	return nil
}

func floatBinary[F Floats](code opcode) func(F, F) F {
	switch code {
	case opAdd:
		return func(a, b F) F { return a + b }
	case opSub:
		return func(a, b F) F { return a - b }
	case opMul:
		return func(a, b F) F { return a * b }
	case opDiv:
		return func(a, b F) F { return a / b }
	case opMin:
		return minF[F]
	case opMax:
		return maxF[F]
	case opFirstNonzero:
		return func(a, b F) F {
			if toBitsF(a) != 0 {
				return a
			}
			return b
		}
	case opPow:
		return binaryMath[F](math.Pow)
	case opAtan2:
		return binaryMath[F](math.Atan2)
	case opHypot:
		return binaryMath[F](math.Hypot)
	}
	return nil
}

// minF returns the smaller of a and b. A NaN operand is returned as is,
// and -0 is smaller than +0.
func minF[F Floats](a, b F) F {
	switch {
	case a != a:
		return a
	case b != b:
		return b
	case a == 0 && b == 0:
		if toBitsF(a) != 0 {
			return a
		}
		return b
	case a <= b:
		return a
	default:
		return b
	}
}

// maxF returns the larger of a and b, with the same NaN and zero rules
// as minF.
func maxF[F Floats](a, b F) F {
	switch {
	case a != a:
		return a
	case b != b:
		return b
	case a == 0 && b == 0:
		if toBitsF(a) == 0 {
			return a
		}
		return b
	case a >= b:
		return a
	default:
		return b
	}
}

func floatTernary[F Floats](code opcode) func(F, F, F) F {
	if code != opFMA {
		return nil
	}
	var zero F
	if unsafe.Sizeof(zero) == 4 {
		return func(a, b, c F) F { return F(fma32(float32(a), float32(b), float32(c))) }
	}
	return func(a, b, c F) F { return F(math.FMA(float64(a), float64(b), float64(c))) }
}

// fma32 computes a*b+c with a single rounding to float32.
func fma32(a, b, c float32) float32 {
	// The product of two float32 values is exact in float64.
	p := float64(a) * float64(b)
	q := float64(c)
	if p == 0 || q == 0 || math.IsInf(p, 0) || math.IsNaN(p) || math.IsInf(q, 0) || math.IsNaN(q) {
		return float32(p + q)
	}
	// 1024 bits cover the exponent span of any float32 product and addend,
	// so the sum is exact before the final rounding.
	x := new(big.Float).SetPrec(1024).SetFloat64(p)
	x.Add(x, new(big.Float).SetFloat64(q))
	f, _ := x.Float32()
	return f
}

func floatCompare[F Floats](code cmpcode) func(F, F) bool {
	switch code {
	case cmpEq:
		return func(a, b F) bool { return a == b }
	case cmpNe:
		return func(a, b F) bool { return a != b }
	case cmpLt:
		return func(a, b F) bool { return a < b }
	case cmpLe:
		return func(a, b F) bool { return a <= b }
	case cmpGt:
		return func(a, b F) bool { return a > b }
	case cmpGe:
		return func(a, b F) bool { return a >= b }
	}
	return nil
}

func floatTest[F Floats](code testcode) func(F) bool {
	sign := signMaskF[F]()
	switch code {
	case testIsDefault:
		return func(a F) bool { return toBitsF(a) == 0 }
	case testIsNegative:
		return func(a F) bool { return toBitsF(a)&sign != 0 }
	case testIsFinite:
		return func(a F) bool { return !math.IsInf(float64(a), 0) && a == a }
	case testIsNaN:
		return func(a F) bool { return a != a }
	case testIsInfinite:
		return func(a F) bool { return math.IsInf(float64(a), 0) }
	}
	return nil
}
