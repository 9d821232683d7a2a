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
	"os"
	"strconv"
)

// DispatchLevel represents the SIMD instruction set detected at startup.
// It decides the width of ShapeMax and whether block kernels are used.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// width returns the register width in bytes for the level.
func (d DispatchLevel) width() int {
	switch d {
	case DispatchAVX512:
		return 64
	case DispatchAVX2:
		return 32
	default:
		return 16
	}
}

type dispatchState struct {
	level DispatchLevel
	width int // bytes
}

// dispatch is resolved during package variable initialization, before the
// species registry is built from it.
var dispatch = detectDispatch()

func detectDispatch() dispatchState {
	level := DispatchScalar
	if !NoSimdEnv() {
		level = platformLevel()
	}
	st := dispatchState{level: level, width: level.width()}
	if bits, ok := maxBitsEnv(); ok {
		st.width = bits / 8
	}
	return st
}

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return dispatch.level
}

// CurrentWidth returns the width in bytes of ShapeMax.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return dispatch.width
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return dispatch.level.String()
}

// MaxShapeBits returns the bit width ShapeMax resolves to.
func MaxShapeBits() int {
	return dispatch.width * 8
}

// NoSimdEnv checks if the VECTOR_NO_SIMD environment variable is set.
// When set, the scalar level is used regardless of CPU capabilities and
// ShapeMax is 128 bits.
func NoSimdEnv() bool {
	val := os.Getenv("VECTOR_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// maxBitsEnv reads VECTOR_MAX_BITS. Values that are not a supported
// vector width are ignored.
func maxBitsEnv() (int, bool) {
	val := os.Getenv("VECTOR_MAX_BITS")
	if val == "" {
		return 0, false
	}
	bits, err := strconv.Atoi(val)
	if err != nil || !supportedBits(bits) {
		return 0, false
	}
	return bits, true
}
