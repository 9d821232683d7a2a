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
	"math"
)

// codec reads and writes single lanes of type T as bytes.
type codec[T Lanes] struct {
	size int
	get  func(order binary.ByteOrder, b []byte) T
	put  func(order binary.ByteOrder, b []byte, e T)
}

// codecFor returns the lane codec for T. It is resolved once per
// operation, outside the lane loop.
func codecFor[T Lanes]() codec[T] {
	var c any
	switch KindOf[T]() {
	case Int8:
		c = codec[int8]{
			size: 1,
			get:  func(_ binary.ByteOrder, b []byte) int8 { return int8(b[0]) },
			put:  func(_ binary.ByteOrder, b []byte, e int8) { b[0] = byte(e) },
		}
	case Int16:
		c = codec[int16]{
			size: 2,
			get:  func(o binary.ByteOrder, b []byte) int16 { return int16(o.Uint16(b)) },
			put:  func(o binary.ByteOrder, b []byte, e int16) { o.PutUint16(b, uint16(e)) },
		}
	case Int32:
		c = codec[int32]{
			size: 4,
			get:  func(o binary.ByteOrder, b []byte) int32 { return int32(o.Uint32(b)) },
			put:  func(o binary.ByteOrder, b []byte, e int32) { o.PutUint32(b, uint32(e)) },
		}
	case Int64:
		c = codec[int64]{
			size: 8,
			get:  func(o binary.ByteOrder, b []byte) int64 { return int64(o.Uint64(b)) },
			put:  func(o binary.ByteOrder, b []byte, e int64) { o.PutUint64(b, uint64(e)) },
		}
	case Float32:
		c = codec[float32]{
			size: 4,
			get:  func(o binary.ByteOrder, b []byte) float32 { return math.Float32frombits(o.Uint32(b)) },
			put:  func(o binary.ByteOrder, b []byte, e float32) { o.PutUint32(b, math.Float32bits(e)) },
		}
	case Float64:
		c = codec[float64]{
			size: 8,
			get:  func(o binary.ByteOrder, b []byte) float64 { return math.Float64frombits(o.Uint64(b)) },
			put:  func(o binary.ByteOrder, b []byte, e float64) { o.PutUint64(b, math.Float64bits(e)) },
		}
	}
	return c.(codec[T])
}

// encodeLanes serializes data into len(data)*size bytes.
func encodeLanes[T Lanes](order binary.ByteOrder, data []T) []byte {
	c := codecFor[T]()
	b := make([]byte, len(data)*c.size)
	for i, e := range data {
		c.put(order, b[i*c.size:], e)
	}
	return b
}

// decodeLanes reads len(b)/size lanes from b.
func decodeLanes[T Lanes](order binary.ByteOrder, b []byte) []T {
	c := codecFor[T]()
	data := make([]T, len(b)/c.size)
	for i := range data {
		data[i] = c.get(order, b[i*c.size:])
	}
	return data
}
