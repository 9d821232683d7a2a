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
)

var (
	// ErrIndexOutOfRange reports a lane index, buffer offset, shuffle index
	// or conversion part outside its valid bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrShapeMismatch reports operands whose species differ where they
	// must be equal.
	ErrShapeMismatch = errors.New("species mismatch")

	// ErrLengthMismatch reports a cast between species of different lane
	// counts, or slices of different lengths.
	ErrLengthMismatch = errors.New("lane count mismatch")

	// ErrUnsupportedOperation reports an operator that does not apply to
	// the element kind, or is used with the wrong arity.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrReadOnlyTarget reports a store into a read-only buffer.
	ErrReadOnlyTarget = errors.New("read-only target")

	// ErrArithmetic reports an integer division by zero.
	ErrArithmetic = errors.New("arithmetic error")
)

func indexError(i, n int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
}

// checkIndex verifies 0 <= i < n.
func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return indexError(i, n)
	}
	return nil
}

// checkFromIndexSize verifies that [from, from+size) lies in [0, length).
func checkFromIndexSize(from, size, length int) error {
	if from < 0 || size < 0 || from > length-size {
		return fmt.Errorf("%w: range [%d, %d), length %d", ErrIndexOutOfRange, from, from+size, length)
	}
	return nil
}

func shapeError(want, got *Species) error {
	return fmt.Errorf("%w: %v and %v", ErrShapeMismatch, want, got)
}

func unsupportedError(op string, k ElementKind) error {
	return fmt.Errorf("%w: %s on %s lanes", ErrUnsupportedOperation, op, k)
}
