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
	"errors"
	"fmt"
	"math"
	"testing"
)

// checkBinary applies op lanewise over every fixed shape of T and compares
// each lane with the scalar reference.
func checkBinary[T Lanes](t *testing.T, op *Operator, gen func(i int) (T, T), ref func(a, b T) T) {
	t.Helper()
	for _, sh := range fixedShapes {
		s := SpeciesFor[T](sh)
		n := s.LaneCount()
		a := make([]T, n)
		b := make([]T, n)
		want := make([]T, n)
		for i := range n {
			a[i], b[i] = gen(i)
			want[i] = ref(a[i], b[i])
		}
		va, _ := FromArray(s, a, 0)
		vb, _ := FromArray(s, b, 0)
		got, err := va.Binary(op, vb)
		if err != nil {
			t.Errorf("%v %v: %v", s, op, err)
			continue
		}
		if !sameLanes(got.ToSlice(), want) {
			t.Errorf("%v %v(%v, %v) = %v, want %v", s, op, a, b, got, want)
		}
	}
}

func TestLanewiseBinaryInts(t *testing.T) {
	gen8 := func(i int) (int8, int8) { return int8(i*37 - 100), int8(i%9 - 4) }
	gen32 := func(i int) (int32, int32) { return int32(i*123457 - 99), int32(i%40 - 3) }
	gen64 := func(i int) (int64, int64) { return int64(i)*0x123456789 - 7, int64(i%70 + 1) }

	checkBinary(t, OpAdd, gen8, func(a, b int8) int8 { return a + b })
	checkBinary(t, OpSub, gen32, func(a, b int32) int32 { return a - b })
	checkBinary(t, OpMul, gen64, func(a, b int64) int64 { return a * b })
	checkBinary(t, OpXor, gen32, func(a, b int32) int32 { return a ^ b })
	checkBinary(t, OpAndNot, gen8, func(a, b int8) int8 { return a & ^b })
	checkBinary(t, OpMin, gen8, func(a, b int8) int8 { return min(a, b) })
	checkBinary(t, OpShl, gen32, func(a, b int32) int32 { return a << (b & 31) })
	checkBinary(t, OpAshr, gen64, func(a, b int64) int64 { return a >> (b & 63) })
	checkBinary(t, OpLshr, gen32, func(a, b int32) int32 { return int32(uint32(a) >> (b & 31)) })
	checkBinary(t, OpDiv, gen64, func(a, b int64) int64 { return a / b })
}

func TestLanewiseBinaryFloats(t *testing.T) {
	corner := []float64{0, negZero, 1, -1, math.MaxFloat64, -math.MaxFloat64,
		math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1), 0.1, -3.75}
	gen64 := func(i int) (float64, float64) {
		return corner[i%len(corner)], corner[(i*5+3)%len(corner)]
	}
	gen32 := func(i int) (float32, float32) {
		return float32(i)*1.5 - 7, float32(i%5) - 2
	}

	checkBinary(t, OpAdd, gen64, func(a, b float64) float64 { return a + b })
	checkBinary(t, OpMul, gen64, func(a, b float64) float64 { return a * b })
	checkBinary(t, OpSub, gen64, func(a, b float64) float64 { return a - b })
	checkBinary(t, OpDiv, gen32, func(a, b float32) float32 { return a / b })
	checkBinary(t, OpMax, gen32, func(a, b float32) float32 { return max(a, b) })
	checkBinary(t, OpHypot, gen64, math.Hypot)
	checkBinary(t, OpAtan2, gen32, func(a, b float32) float32 { return float32(math.Atan2(float64(a), float64(b))) })
}

func TestLanewiseFloat64NaN(t *testing.T) {
	// ADD and MUL on float64 may run through block kernels; NaN must
	// propagate there as on the scalar path.
	s := SpeciesFor[float64](Shape256)
	a := vec(t, s, math.NaN(), 1, math.Inf(1), 2)
	b := vec(t, s, 1, math.NaN(), math.Inf(-1), 3)
	for _, op := range []*Operator{OpAdd, OpMul} {
		got, err := a.Binary(op, b)
		if err != nil {
			t.Fatalf("%v: %v", op, err)
		}
		for i := range 2 {
			if x, _ := got.Lane(i); !math.IsNaN(x) {
				t.Errorf("%v lane %d = %v, want NaN", op, i, x)
			}
		}
	}
}

func TestLanewiseUnary(t *testing.T) {
	s := SpeciesFor[float32](Shape128)
	v := vec[float32](t, s, 4, 2.25, 0, -1)
	got, err := v.Unary(OpSqrt)
	if err != nil {
		t.Fatalf("SQRT: %v", err)
	}
	want := []float32{2, 1.5, 0, nan32}
	for i, w := range want {
		g, _ := got.Lane(i)
		if g != w && !(math.IsNaN(float64(g)) && math.IsNaN(float64(w))) {
			t.Errorf("SQRT lane %d = %v, want %v", i, g, w)
		}
	}

	is := SpeciesFor[int16](Shape64)
	iv := vec[int16](t, is, 5, -5, 0, math.MinInt16)
	neg, err := iv.Unary(OpNeg)
	if err != nil {
		t.Fatalf("NEG: %v", err)
	}
	if !sameLanes(neg.ToSlice(), []int16{-5, 5, 0, math.MinInt16}) {
		t.Errorf("NEG = %v", neg)
	}
}

func TestLanewiseMasked(t *testing.T) {
	s := SpeciesFor[int32](Shape128)
	a := vec[int32](t, s, 1, 2, 3, 4)
	b := vec[int32](t, s, 10, 20, 30, 40)
	c := vec[int32](t, s, 0, 0, -1, -1)
	m := mask[int32](t, s, true, false, true, false)

	tests := []struct {
		name string
		run  func() (Vector[int32], error)
		want []int32
	}{
		{"unary", func() (Vector[int32], error) { return a.UnaryMasked(OpNeg, m) }, []int32{-1, 2, -3, 4}},
		{"binary", func() (Vector[int32], error) { return a.BinaryMasked(OpAdd, b, m) }, []int32{11, 2, 33, 4}},
		{"scalar", func() (Vector[int32], error) { return a.BinaryScalarMasked(OpMul, 100, m) }, []int32{100, 2, 300, 4}},
		{"ternary", func() (Vector[int32], error) { return a.TernaryMasked(OpBitwiseBlend, b, c, m) }, []int32{1, 2, 30, 4}},
		{"lanewise", func() (Vector[int32], error) { return a.LanewiseMasked(OpSub, m, b) }, []int32{-9, 2, -27, 4}},
		{"complement", func() (Vector[int32], error) { return a.BinaryMasked(OpAdd, b, m.Not()) }, []int32{1, 22, 3, 44}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if err != nil {
				t.Fatalf("%v", err)
			}
			if !sameLanes(got.ToSlice(), tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLanewiseErrors(t *testing.T) {
	s := SpeciesFor[int64](Shape128)
	other := SpeciesFor[int64](Shape256)
	a := vec[int64](t, s, 1, 2)
	b := vec[int64](t, s, 3, 0)
	wide, _ := Iota[int64](other)

	if _, err := a.Binary(OpAdd, wide); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("species mismatch: error = %v, want ErrShapeMismatch", err)
	}
	m, _ := AllTrue[int64](other)
	if _, err := a.UnaryMasked(OpNeg, m); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mask species mismatch: error = %v, want ErrShapeMismatch", err)
	}
	if _, err := a.Binary(OpDiv, b); !errors.Is(err, ErrArithmetic) {
		t.Errorf("division by zero: error = %v, want ErrArithmetic", err)
	}
	if _, err := a.Lanewise(OpAdd); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("ADD with one operand: error = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := a.Lanewise(OpFMA, b, b); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("FMA on int64: error = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := a.Binary(nil, b); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("nil operator: error = %v, want ErrUnsupportedOperation", err)
	}
	var zero Vector[int64]
	if _, err := zero.Unary(OpNeg); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("zero Vector: error = %v, want ErrShapeMismatch", err)
	}

	fs := SpeciesFor[float64](Shape128)
	f := vec[float64](t, fs, 1, 2)
	if _, err := f.Binary(OpShl, f); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("LSHL on float64: error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestIntDivMaskedZero(t *testing.T) {
	s := SpeciesFor[int32](Shape128)
	a := vec[int32](t, s, 10, 20, math.MinInt32, 40)
	b := vec[int32](t, s, 2, 0, -1, 0)
	m := mask[int32](t, s, true, false, true, false)

	got, err := a.BinaryMasked(OpDiv, b, m)
	if err != nil {
		t.Fatalf("DIV with zero divisors masked off: %v", err)
	}
	if want := []int32{5, 20, math.MinInt32, 40}; !sameLanes(got.ToSlice(), want) {
		t.Errorf("DIV = %v, want %v", got, want)
	}
}

func TestFloatDivByZero(t *testing.T) {
	s := SpeciesFor[float64](Shape128)
	a := vec[float64](t, s, 1, -1)
	z, _ := Zero[float64](s)
	got, err := a.Binary(OpDiv, z)
	if err != nil {
		t.Fatalf("float DIV by zero: %v", err)
	}
	if want := []float64{math.Inf(1), math.Inf(-1)}; !sameLanes(got.ToSlice(), want) {
		t.Errorf("DIV = %v, want %v", got, want)
	}
}

func TestBinaryScalar(t *testing.T) {
	for _, sh := range fixedShapes {
		s := SpeciesFor[float64](sh)
		t.Run(fmt.Sprint(s), func(t *testing.T) {
			v, _ := FromFunc(s, func(i int) float64 { return float64(i) - 0.5 })
			got, err := v.BinaryScalar(OpMul, 3)
			if err != nil {
				t.Fatalf("BinaryScalar(MUL): %v", err)
			}
			for i := range s.LaneCount() {
				g, _ := got.Lane(i)
				if want := (float64(i) - 0.5) * 3; g != want {
					t.Errorf("lane %d = %v, want %v", i, g, want)
				}
			}
			sub, err := v.BinaryScalar(OpSub, 1)
			if err != nil {
				t.Fatalf("BinaryScalar(SUB): %v", err)
			}
			if g, _ := sub.Lane(0); g != -1.5 {
				t.Errorf("SUB lane 0 = %v, want -1.5", g)
			}
		})
	}
}

func TestTernaryFMA(t *testing.T) {
	s := SpeciesFor[float64](Shape256)
	a := vec[float64](t, s, 2, 3, 4, 5)
	b := vec[float64](t, s, 10, 10, 10, 10)
	c := vec[float64](t, s, 1, 2, 3, 4)
	got, err := a.Ternary(OpFMA, b, c)
	if err != nil {
		t.Fatalf("FMA: %v", err)
	}
	if want := []float64{21, 32, 43, 54}; !sameLanes(got.ToSlice(), want) {
		t.Errorf("FMA = %v, want %v", got, want)
	}
}

func TestLaneAccess(t *testing.T) {
	s := SpeciesFor[float32](Shape128)
	v, _ := Iota[float32](s)
	payload := math.Float32frombits(0x7FA00001)

	w, err := v.WithLane(2, payload)
	if err != nil {
		t.Fatalf("WithLane: %v", err)
	}
	got, _ := w.Lane(2)
	if math.Float32bits(got) != 0x7FA00001 {
		t.Errorf("Lane(2) bits = %#x, want 0x7fa00001", math.Float32bits(got))
	}
	for _, j := range []int{0, 1, 3} {
		if a, _ := w.Lane(j); a != float32(j) {
			t.Errorf("Lane(%d) = %v, want %d", j, a, j)
		}
	}
	if orig, _ := v.Lane(2); orig != 2 {
		t.Errorf("WithLane mutated the original: %v", orig)
	}

	if _, err := v.Lane(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Lane(4) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := v.WithLane(-1, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("WithLane(-1) error = %v, want ErrIndexOutOfRange", err)
	}

	b, err := v.BroadcastLane(3)
	if err != nil {
		t.Fatalf("BroadcastLane: %v", err)
	}
	if !sameLanes(b.ToSlice(), []float32{3, 3, 3, 3}) {
		t.Errorf("BroadcastLane(3) = %v", b)
	}
}

func TestVectorConstruction(t *testing.T) {
	s := SpeciesFor[int8](Shape64)
	if _, err := FromValues[int8](s, 1, 2, 3); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("FromValues with 3 values: error = %v, want ErrLengthMismatch", err)
	}
	if _, err := Broadcast[int16](s, 1); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Broadcast[int16] of int8 species: error = %v, want ErrShapeMismatch", err)
	}
	v, _ := Broadcast[int8](s, -7)
	if v.Length() != 8 || v.Species() != s {
		t.Errorf("Broadcast: length %d species %v", v.Length(), v.Species())
	}
	if got := v.String(); got != "[-7, -7, -7, -7, -7, -7, -7, -7]" {
		t.Errorf("String() = %q", got)
	}

	f := SpeciesFor[float64](Shape128)
	x := vec(t, f, math.NaN(), negZero)
	y := vec(t, f, math.NaN(), 0)
	if !x.Equal(x) || x.Equal(y) {
		t.Errorf("Equal should compare bit patterns")
	}
}
