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
)

// ByteBuffer is a byte region that vectors can be loaded from and stored
// into. A read-only view rejects stores with ErrReadOnlyTarget.
type ByteBuffer struct {
	data     []byte
	readOnly bool
}

// errNilBuffer is returned when a load or store is given a nil buffer.
var errNilBuffer = fmt.Errorf("%w: nil byte buffer", ErrIndexOutOfRange)

// NewByteBuffer wraps b. Stores through the buffer write into b.
func NewByteBuffer(b []byte) *ByteBuffer {
	return &ByteBuffer{data: b}
}

// AllocateByteBuffer returns a zeroed buffer of n bytes.
func AllocateByteBuffer(n int) *ByteBuffer {
	return &ByteBuffer{data: make([]byte, n)}
}

// AsReadOnly returns a read-only view sharing the bytes of buf.
func (buf *ByteBuffer) AsReadOnly() *ByteBuffer {
	return &ByteBuffer{data: buf.data, readOnly: true}
}

// ReadOnly reports whether stores are rejected.
func (buf *ByteBuffer) ReadOnly() bool { return buf.readOnly }

// Len returns the buffer size in bytes.
func (buf *ByteBuffer) Len() int { return len(buf.data) }

// Bytes returns a copy of the buffer contents.
func (buf *ByteBuffer) Bytes() []byte {
	out := make([]byte, len(buf.data))
	copy(out, buf.data)
	return out
}

// FromByteBuffer loads LaneCount lanes from buf starting at byte offset,
// decoding each lane with order.
func FromByteBuffer[T Lanes](s *Species, buf *ByteBuffer, offset int, order binary.ByteOrder) (Vector[T], error) {
	if buf == nil {
		return Vector[T]{}, errNilBuffer
	}
	return FromByteArray[T](s, buf.data, offset, order)
}

// FromByteBufferMasked loads the lanes set in m; unset lanes are zero and
// only set lanes must lie inside the buffer.
func FromByteBufferMasked[T Lanes](s *Species, buf *ByteBuffer, offset int, order binary.ByteOrder, m Mask[T]) (Vector[T], error) {
	if buf == nil {
		return Vector[T]{}, errNilBuffer
	}
	return FromByteArrayMasked(s, buf.data, offset, order, m)
}

// IntoByteBuffer stores the lanes of v into buf starting at byte offset.
func (v Vector[T]) IntoByteBuffer(buf *ByteBuffer, offset int, order binary.ByteOrder) error {
	if buf == nil {
		return errNilBuffer
	}
	if buf.readOnly {
		return fmt.Errorf("%w: store of %v", ErrReadOnlyTarget, v.species)
	}
	return v.IntoByteArray(buf.data, offset, order)
}

// IntoByteBufferMasked stores the lanes set in m into buf.
func (v Vector[T]) IntoByteBufferMasked(buf *ByteBuffer, offset int, order binary.ByteOrder, m Mask[T]) error {
	if buf == nil {
		return errNilBuffer
	}
	if buf.readOnly {
		return fmt.Errorf("%w: store of %v", ErrReadOnlyTarget, v.species)
	}
	return v.IntoByteArrayMasked(buf.data, offset, order, m)
}

// FromByteArray loads LaneCount lanes from b starting at byte offset.
func FromByteArray[T Lanes](s *Species, b []byte, offset int, order binary.ByteOrder) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	if err := checkFromIndexSize(offset, s.VectorBytes(), len(b)); err != nil {
		return Vector[T]{}, err
	}
	return newVector(s, decodeLanes[T](order, b[offset:offset+s.VectorBytes()])), nil
}

// FromByteArrayMasked loads the lanes set in m from b.
func FromByteArrayMasked[T Lanes](s *Species, b []byte, offset int, order binary.ByteOrder, m Mask[T]) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	if m.species != s {
		return Vector[T]{}, shapeError(s, m.species)
	}
	c := codecFor[T]()
	if err := checkMaskedBytes(offset, c.size, len(b), m.bits); err != nil {
		return Vector[T]{}, err
	}
	data := make([]T, s.laneCount)
	for i, set := range m.bits {
		if set {
			data[i] = c.get(order, b[offset+i*c.size:])
		}
	}
	return newVector(s, data), nil
}

// IntoByteArray stores the lanes of v into b starting at byte offset.
func (v Vector[T]) IntoByteArray(b []byte, offset int, order binary.ByteOrder) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	if err := checkFromIndexSize(offset, v.species.VectorBytes(), len(b)); err != nil {
		return err
	}
	copy(b[offset:], encodeLanes(order, v.data))
	return nil
}

// IntoByteArrayMasked stores the lanes set in m into b. Bytes under unset
// lanes are left untouched.
func (v Vector[T]) IntoByteArrayMasked(b []byte, offset int, order binary.ByteOrder, m Mask[T]) error {
	if err := v.checkSpecies(); err != nil {
		return err
	}
	if err := v.checkMask(m); err != nil {
		return err
	}
	c := codecFor[T]()
	if err := checkMaskedBytes(offset, c.size, len(b), m.bits); err != nil {
		return err
	}
	for i, set := range m.bits {
		if set {
			c.put(order, b[offset+i*c.size:], v.data[i])
		}
	}
	return nil
}

// checkMaskedBytes verifies that every set lane's bytes lie inside a
// buffer of the given length.
func checkMaskedBytes(offset, size, length int, bits []bool) error {
	if checkFromIndexSize(offset, len(bits)*size, length) == nil {
		return nil
	}
	for i, set := range bits {
		if set {
			if err := checkFromIndexSize(offset+i*size, size, length); err != nil {
				return err
			}
		}
	}
	return nil
}
