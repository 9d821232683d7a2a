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
	"math"
	"testing"
)

// cornerCaseValues holds extreme float64 values that make the fold order
// visible in the result.
var cornerCaseValues = []float64{
	math.MaxFloat64, -math.MaxFloat64, 1, math.SmallestNonzeroFloat64,
	-1e308, 1e-300, 3, math.MaxFloat64 / 3, 0.1, -0.7, 1e16, -1e16,
	2, 0.3, -math.SmallestNonzeroFloat64, 5,
}

func TestReduceLanesOrder(t *testing.T) {
	for _, sh := range fixedShapes {
		s := SpeciesFor[float64](sh)
		n := s.LaneCount()
		for off := 0; off+n <= len(cornerCaseValues); off += n {
			v, err := FromArray(s, cornerCaseValues, off)
			if err != nil {
				t.Fatalf("FromArray: %v", err)
			}
			for _, tt := range []struct {
				op   *Operator
				fold func(a, b float64) float64
				init float64
			}{
				{OpAdd, func(a, b float64) float64 { return a + b }, 0},
				{OpMul, func(a, b float64) float64 { return a * b }, 1},
				{OpMin, math.Min, math.Inf(1)},
				{OpMax, math.Max, math.Inf(-1)},
			} {
				want := tt.init
				for i := off; i < off+n; i++ {
					want = tt.fold(want, cornerCaseValues[i])
				}
				got, err := v.ReduceLanes(tt.op)
				if err != nil {
					t.Fatalf("ReduceLanes(%v): %v", tt.op, err)
				}
				if math.Float64bits(got) != math.Float64bits(want) {
					t.Errorf("%v offset %d: ReduceLanes(%v) = %v, want %v", s, off, tt.op, got, want)
				}
			}
		}
	}
}

func TestReduceLanesInts(t *testing.T) {
	s := SpeciesFor[int8](Shape64)
	lanes := []int8{-100, -80, -60, -40, -20, 0, 20, 40}
	v := vec(t, s, lanes...)

	tests := []struct {
		op   *Operator
		init int8
		fold func(a, b int8) int8
	}{
		{OpAdd, 0, func(a, b int8) int8 { return a + b }},
		{OpMul, 1, func(a, b int8) int8 { return a * b }},
		{OpMin, math.MaxInt8, func(a, b int8) int8 { return min(a, b) }},
		{OpMax, math.MinInt8, func(a, b int8) int8 { return max(a, b) }},
		{OpAnd, -1, func(a, b int8) int8 { return a & b }},
		{OpOr, 0, func(a, b int8) int8 { return a | b }},
		{OpXor, 0, func(a, b int8) int8 { return a ^ b }},
	}
	for _, tt := range tests {
		want := tt.init
		for _, x := range lanes {
			want = tt.fold(want, x)
		}
		got, err := v.ReduceLanes(tt.op)
		if err != nil {
			t.Fatalf("ReduceLanes(%v): %v", tt.op, err)
		}
		if got != want {
			t.Errorf("ReduceLanes(%v) = %d, want %d", tt.op, got, want)
		}
	}

	fnz, _ := v.ReduceLanes(OpFirstNonzero)
	if fnz != -100 {
		t.Errorf("ReduceLanes(FIRST_NONZERO) = %d, want -100", fnz)
	}
}

func TestReduceLanesMasked(t *testing.T) {
	s := SpeciesFor[int32](Shape128)
	v := vec[int32](t, s, 5, -3, 8, 2)
	m := mask[int32](t, s, true, false, false, true)

	for _, tt := range []struct {
		op   *Operator
		want int32
	}{
		{OpAdd, 7},
		{OpMul, 10},
		{OpMin, 2},
		{OpMax, 5},
	} {
		got, err := v.ReduceLanesMasked(tt.op, m)
		if err != nil {
			t.Fatalf("ReduceLanesMasked(%v): %v", tt.op, err)
		}
		if got != tt.want {
			t.Errorf("ReduceLanesMasked(%v) = %d, want %d", tt.op, got, tt.want)
		}
	}

	none, _ := AllFalse[int32](s)
	for _, op := range []*Operator{OpAdd, OpMul, OpMin, OpMax, OpAnd} {
		got, _ := v.ReduceLanesMasked(op, none)
		id, _ := Identity[int32](op)
		if got != id {
			t.Errorf("ReduceLanesMasked(%v, none) = %d, want identity %d", op, got, id)
		}
	}
}

func TestReduceLanesFloatSignedZero(t *testing.T) {
	// The fold starts from +0, so the sum of a single -0 lane is +0.
	s := SpeciesFor[float64](Shape64)
	v := vec(t, s, negZero)
	got, _ := v.ReduceLanes(OpAdd)
	if math.Signbit(got) {
		t.Errorf("ReduceLanes(ADD, [-0]) = -0, want +0")
	}
}

func TestReduceLanesErrors(t *testing.T) {
	s := SpeciesFor[float32](Shape128)
	v, _ := Iota[float32](s)
	if _, err := v.ReduceLanes(OpSub); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("ReduceLanes(SUB): error = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := v.ReduceLanes(OpXor); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("ReduceLanes(XOR) on float32: error = %v, want ErrUnsupportedOperation", err)
	}
	m, _ := AllTrue[float32](SpeciesFor[float32](Shape256))
	if _, err := v.ReduceLanesMasked(OpAdd, m); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mask species mismatch: error = %v, want ErrShapeMismatch", err)
	}
}

func TestReduceLanesToInt64(t *testing.T) {
	fs := SpeciesFor[float64](Shape128)
	tests := []struct {
		a, b float64
		want int64
	}{
		{1.5, 2.25, 3},
		{-1.5, -2.25, -3},
		{math.MaxFloat64, 1, math.MaxInt64},
		{-math.MaxFloat64, -1, math.MinInt64},
		{math.NaN(), 1, 0},
	}
	for _, tt := range tests {
		v := vec(t, fs, tt.a, tt.b)
		got, err := v.ReduceLanesToInt64(OpAdd)
		if err != nil {
			t.Fatalf("ReduceLanesToInt64: %v", err)
		}
		if got != tt.want {
			t.Errorf("ReduceLanesToInt64(ADD, [%v %v]) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}

	is := SpeciesFor[int16](Shape64)
	iv := vec[int16](t, is, math.MaxInt16, 1, 0, 0)
	got, _ := iv.ReduceLanesToInt64(OpAdd)
	if got != math.MinInt16 {
		t.Errorf("ReduceLanesToInt64 int16 overflow = %d, want %d", got, math.MinInt16)
	}
}

func TestReduceLanesToInt64Masked(t *testing.T) {
	fs := SpeciesFor[float32](Shape128)
	v := vec[float32](t, fs, 2.5, nan32, 1e20, -4.75)
	tests := []struct {
		name string
		bits []bool
		op   *Operator
		want int64
	}{
		{"skip nan and huge", []bool{true, false, false, true}, OpAdd, -2},
		{"none set", []bool{false, false, false, false}, OpAdd, 0},
		{"huge saturates", []bool{false, false, true, false}, OpAdd, math.MaxInt64},
		{"max of set", []bool{true, false, false, true}, OpMax, 2},
		{"nan wins", []bool{true, true, false, false}, OpMin, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ReduceLanesToInt64Masked(tt.op, mask[float32](t, fs, tt.bits...))
			if err != nil {
				t.Fatalf("ReduceLanesToInt64Masked: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReduceLanesToInt64Masked(%v, %v) = %d, want %d", tt.op, tt.bits, got, tt.want)
			}
		})
	}

	other := mask[float32](t, SpeciesFor[float32](Shape64), true, true)
	if _, err := v.ReduceLanesToInt64Masked(OpAdd, other); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ReduceLanesToInt64Masked with foreign mask: error = %v, want ErrShapeMismatch", err)
	}
}
