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

	"github.com/google/go-cmp/cmp"
)

func TestCompare(t *testing.T) {
	s := SpeciesFor[int32](Shape128)
	a := vec[int32](t, s, 1, 5, -3, 7)
	b := vec[int32](t, s, 2, 5, -4, 0)

	tests := []struct {
		op   *Comparison
		want []bool
	}{
		{OpEq, []bool{false, true, false, false}},
		{OpNe, []bool{true, false, true, true}},
		{OpLt, []bool{true, false, false, false}},
		{OpLe, []bool{true, true, false, false}},
		{OpGt, []bool{false, false, true, true}},
		{OpGe, []bool{false, true, true, true}},
		{OpUnsignedGt, []bool{false, false, true, true}},
		{OpUnsignedLt, []bool{true, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.op.Name(), func(t *testing.T) {
			m, err := a.Compare(tt.op, b)
			if err != nil {
				t.Fatalf("Compare: %v", err)
			}
			if diff := cmp.Diff(tt.want, m.ToArray()); diff != "" {
				t.Errorf("Compare(%v) mismatch (-want +got):\n%s", tt.op, diff)
			}
		})
	}
}

func TestCompareUnsignedNegative(t *testing.T) {
	s := SpeciesFor[int8](Shape64)
	a := vec[int8](t, s, -1, 0, 1, -128, 127, -2, 3, 4)
	m, err := a.CompareScalar(OpUnsignedGt, 127)
	if err != nil {
		t.Fatalf("CompareScalar: %v", err)
	}
	want := []bool{true, false, false, true, false, true, false, false}
	if diff := cmp.Diff(want, m.ToArray()); diff != "" {
		t.Errorf("UNSIGNED_GT 127 mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareNaN(t *testing.T) {
	s := SpeciesFor[float64](Shape128)
	a := vec(t, s, math.NaN(), negZero)
	b := vec(t, s, math.NaN(), 0)

	for _, tt := range []struct {
		op   *Comparison
		want []bool
	}{
		{OpEq, []bool{false, true}},
		{OpNe, []bool{true, false}},
		{OpLt, []bool{false, false}},
		{OpLe, []bool{false, true}},
		{OpGe, []bool{false, true}},
	} {
		m, err := a.Compare(tt.op, b)
		if err != nil {
			t.Fatalf("Compare(%v): %v", tt.op, err)
		}
		if diff := cmp.Diff(tt.want, m.ToArray()); diff != "" {
			t.Errorf("Compare(%v) mismatch (-want +got):\n%s", tt.op, diff)
		}
	}
}

func TestCompareMasked(t *testing.T) {
	s := SpeciesFor[int64](Shape256)
	a := vec[int64](t, s, 1, 2, 3, 4)
	b := vec[int64](t, s, 0, 0, 0, 0)
	m := mask[int64](t, s, true, false, true, false)

	got, err := a.CompareMasked(OpGt, b, m)
	if err != nil {
		t.Fatalf("CompareMasked: %v", err)
	}
	if diff := cmp.Diff([]bool{true, false, true, false}, got.ToArray()); diff != "" {
		t.Errorf("CompareMasked mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareErrors(t *testing.T) {
	s := SpeciesFor[float32](Shape128)
	a, _ := Iota[float32](s)
	if _, err := a.Compare(OpUnsignedLt, a); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("UNSIGNED_LT on float32: error = %v, want ErrUnsupportedOperation", err)
	}
	other, _ := Iota[float32](SpeciesFor[float32](Shape256))
	if _, err := a.Compare(OpEq, other); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("species mismatch: error = %v, want ErrShapeMismatch", err)
	}
}

func TestTest(t *testing.T) {
	s := SpeciesFor[float32](Shape128)
	v := vec(t, s, nan32, inf32, negZero32, 1)

	tests := []struct {
		op   *TestOp
		want []bool
	}{
		{OpIsNaN, []bool{true, false, false, false}},
		{OpIsInfinite, []bool{false, true, false, false}},
		{OpIsFinite, []bool{false, false, true, true}},
		{OpIsNegative, []bool{false, false, true, false}},
		{OpIsDefault, []bool{false, false, false, false}},
	}
	for _, tt := range tests {
		m, err := v.Test(tt.op)
		if err != nil {
			t.Fatalf("Test(%v): %v", tt.op, err)
		}
		if diff := cmp.Diff(tt.want, m.ToArray()); diff != "" {
			t.Errorf("Test(%v) mismatch (-want +got):\n%s", tt.op, diff)
		}
	}

	is := SpeciesFor[int16](Shape64)
	iv := vec[int16](t, is, 0, -1, 2, 0)
	m, err := iv.TestMasked(OpIsDefault, mask[int16](t, is, true, true, true, false))
	if err != nil {
		t.Fatalf("TestMasked: %v", err)
	}
	if diff := cmp.Diff([]bool{true, false, false, false}, m.ToArray()); diff != "" {
		t.Errorf("TestMasked(IS_DEFAULT) mismatch (-want +got):\n%s", diff)
	}
	if _, err := iv.Test(OpIsNaN); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("IS_NAN on int16: error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestBlend(t *testing.T) {
	s := SpeciesFor[int32](Shape128)
	a := vec[int32](t, s, 1, 2, 3, 4)
	b := vec[int32](t, s, 10, 20, 30, 40)
	m := mask[int32](t, s, false, true, true, false)

	got, err := a.Blend(b, m)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if diff := cmp.Diff([]int32{1, 20, 30, 4}, got.ToSlice()); diff != "" {
		t.Errorf("Blend mismatch (-want +got):\n%s", diff)
	}

	// Blending with a comparison of the same vectors selects the larger.
	gt, _ := b.Compare(OpGt, a)
	mx, _ := a.Blend(b, gt)
	want, _ := a.Binary(OpMax, b)
	if !mx.Equal(want) {
		t.Errorf("Blend(GT) = %v, MAX = %v", mx, want)
	}
}
