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
	"encoding/binary"
	"fmt"
	"math"
)

// Conversion describes a lane conversion between two element kinds:
// either a numeric cast or a reinterpretation of the lane bits.
type Conversion struct {
	name        string
	from, to    ElementKind
	reinterpret bool
}

// ConversionOf returns the numeric cast from one element kind to another.
// Its name follows the one-letter kind codes, e.g. "I2L" for int32 to
// int64 and "D2F" for float64 to float32.
func ConversionOf(from, to ElementKind) (Conversion, error) {
	if !from.valid() || !to.valid() {
		return Conversion{}, fmt.Errorf("%w: no conversion from %v to %v", ErrUnsupportedOperation, from, to)
	}
	name := string([]byte{from.letter(), '2', to.letter()})
	return Conversion{name: name, from: from, to: to}, nil
}

// ReinterpretConversion returns the bit-preserving conversion between two
// element kinds of the same size, e.g. "REINTERPRET_I2F".
func ReinterpretConversion(from, to ElementKind) (Conversion, error) {
	if !from.valid() || !to.valid() || from.Size() != to.Size() {
		return Conversion{}, fmt.Errorf("%w: cannot reinterpret %v as %v", ErrUnsupportedOperation, from, to)
	}
	name := "REINTERPRET_" + string([]byte{from.letter(), '2', to.letter()})
	return Conversion{name: name, from: from, to: to, reinterpret: true}, nil
}

// Name returns the conversion name.
func (c Conversion) Name() string { return c.name }

// From returns the source element kind.
func (c Conversion) From() ElementKind { return c.from }

// To returns the target element kind.
func (c Conversion) To() ElementKind { return c.to }

// IsReinterpret reports whether the conversion preserves lane bits.
func (c Conversion) IsReinterpret() bool { return c.reinterpret }

func (c Conversion) String() string { return c.name }

// ConvertShape converts every lane of v with conv and places the result
// in a vector of species to.
//
// The converted lanes form a logical vector of v.Length() lanes. When it
// has more lanes than to, part in [0, ratio) selects which slice of it is
// returned. When it has fewer, part in (-ratio, 0] places it at lane
// -part*v.Length() of the result and the other lanes are zero. When the
// lane counts are equal part must be 0.
func ConvertShape[F, T Lanes](v Vector[F], conv Conversion, to *Species, part int) (Vector[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Vector[T]{}, err
	}
	if err := checkKind[T](to); err != nil {
		return Vector[T]{}, err
	}
	if conv.name == "" || conv.from != KindOf[F]() || conv.to != KindOf[T]() {
		return Vector[T]{}, fmt.Errorf("%w: conversion %q does not map %v to %v",
			ErrShapeMismatch, conv.name, KindOf[F](), KindOf[T]())
	}
	var logical []T
	if conv.reinterpret {
		logical = decodeLanes[T](binary.LittleEndian, encodeLanes(binary.LittleEndian, v.data))
	} else {
		f := converter[F, T]()
		logical = make([]T, len(v.data))
		for i, e := range v.data {
			logical[i] = f(e)
		}
	}
	data, err := placePart(logical, to.laneCount, part)
	if err != nil {
		return Vector[T]{}, err
	}
	return newVector(to, data), nil
}

// Cast converts v to the lane type T keeping its shape. With a change in
// lane size, part selects the slice as in ConvertShape.
func Cast[F, T Lanes](v Vector[F], part int) (Vector[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Vector[T]{}, err
	}
	to, err := v.species.WithKind(KindOf[T]())
	if err != nil {
		return Vector[T]{}, err
	}
	conv, err := ConversionOf(KindOf[F](), KindOf[T]())
	if err != nil {
		return Vector[T]{}, err
	}
	return ConvertShape[F, T](v, conv, to, part)
}

// ReinterpretShape views the bytes of v, in little-endian lane order, as
// lanes of type T in species to. part selects a slice or a position as in
// ConvertShape, measured in vectors of to.
func ReinterpretShape[F, T Lanes](v Vector[F], to *Species, part int) (Vector[T], error) {
	if err := v.checkSpecies(); err != nil {
		return Vector[T]{}, err
	}
	if err := checkKind[T](to); err != nil {
		return Vector[T]{}, err
	}
	logical := decodeLanes[T](binary.LittleEndian, encodeLanes(binary.LittleEndian, v.data))
	data, err := placePart(logical, to.laneCount, part)
	if err != nil {
		return Vector[T]{}, err
	}
	return newVector(to, data), nil
}

// placePart fits a logical vector into m lanes following the part rules
// of ConvertShape.
func placePart[T Lanes](logical []T, m, part int) ([]T, error) {
	n := len(logical)
	out := make([]T, m)
	switch {
	case n == m:
		if part != 0 {
			return nil, partError(part, 0, 0)
		}
		copy(out, logical)
	case n > m:
		ratio := n / m
		if part < 0 || part >= ratio {
			return nil, partError(part, 0, ratio-1)
		}
		copy(out, logical[part*m:])
	default:
		ratio := m / n
		if part > 0 || part <= -ratio {
			return nil, partError(part, -(ratio - 1), 0)
		}
		copy(out[-part*n:], logical)
	}
	return out, nil
}

func partError(part, lo, hi int) error {
	return fmt.Errorf("%w: part %d not in [%d, %d]", ErrIndexOutOfRange, part, lo, hi)
}

// converter returns the numeric lane cast from F to T. Integer targets
// truncate, floating targets round to nearest even, and floating sources
// cast to integers truncate toward zero with saturation (NaN becomes 0).
// Narrow integer targets take the low bits of the 32-bit saturated value.
func converter[F, T Lanes]() func(F) T {
	fk, tk := KindOf[F](), KindOf[T]()
	switch {
	case fk.IsFloat() && tk == Int64:
		return func(x F) T { return T(saturateInt64(float64(x))) }
	case fk.IsFloat() && !tk.IsFloat():
		return func(x F) T { return T(saturateInt32(float64(x))) }
	default:
		return func(x F) T { return T(x) }
	}
}

// saturateInt64 truncates x toward zero, clamping to the int64 range.
func saturateInt64(x float64) int64 {
	switch {
	case x != x:
		return 0
	case x >= 0x1p63:
		return math.MaxInt64
	case x <= -0x1p63:
		return math.MinInt64
	default:
		return int64(x)
	}
}

// saturateInt32 truncates x toward zero, clamping to the int32 range.
func saturateInt32(x float64) int32 {
	switch {
	case x != x:
		return 0
	case x >= math.MaxInt32:
		return math.MaxInt32
	case x <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(x)
	}
}
