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

import "fmt"

// Species is an immutable (ElementKind, Shape) pair. There is exactly one
// Species per pair; all of them are built when the package is initialized,
// so a *Species may be compared with ==.
type Species struct {
	kind      ElementKind
	shape     Shape
	bits      int
	laneCount int

	// Cached constants, each holding the value for the species' lane type.
	zero        any // Vector[T]
	iota        any // Vector[T]
	allTrue     any // Mask[T]
	allFalse    any // Mask[T]
	iotaShuffle any // Shuffle[T]
}

// registry holds every supported species, indexed by kind and shape.
var registry = newRegistry()

func newRegistry() [numKinds][numShapes]*Species {
	var r [numKinds][numShapes]*Species
	for k := range numKinds {
		for sh := range numShapes {
			s := newSpecies(ElementKind(k), Shape(sh))
			r[k][sh] = s
		}
	}
	return r
}

func newSpecies(kind ElementKind, shape Shape) *Species {
	bits := shape.Bits()
	s := &Species{
		kind:      kind,
		shape:     shape,
		bits:      bits,
		laneCount: bits / kind.Bits(),
	}
	s.validate()
	switch kind {
	case Int8:
		initConstants[int8](s)
	case Int16:
		initConstants[int16](s)
	case Int32:
		initConstants[int32](s)
	case Int64:
		initConstants[int64](s)
	case Float32:
		initConstants[float32](s)
	case Float64:
		initConstants[float64](s)
	}
	return s
}

// validate panics when a species breaks the closed-set invariants. These
// are defects in the registry, never caller errors.
func (s *Species) validate() {
	if !supportedBits(s.bits) {
		panic(fmt.Sprintf("vector: %v has unsupported width %d", s.shape, s.bits))
	}
	if s.laneCount*s.kind.Bits() != s.bits {
		panic(fmt.Sprintf("vector: %d lanes of %v do not fill %d bits", s.laneCount, s.kind, s.bits))
	}
	// Shuffle indices materialize as lane values (ToVector), so the lane
	// type must hold both [0, n) and the exceptional range [-n, 0).
	if s.laneCount-1 > maxLaneIndex(s.kind) {
		panic(fmt.Sprintf("vector: %v lanes cannot encode %d shuffle indices", s.kind, s.laneCount))
	}
}

// maxLaneIndex is the largest lane count minus one whose shuffle indices,
// including exceptional ones, fit in a lane of kind k.
func maxLaneIndex(k ElementKind) int {
	if k == Int8 {
		return 127
	}
	return 1<<15 - 1 // shuffles store int16 indices
}

func initConstants[T Lanes](s *Species) {
	n := s.laneCount
	seq := make([]T, n)
	for i := range seq {
		seq[i] = T(i)
	}
	trues := make([]bool, n)
	for i := range trues {
		trues[i] = true
	}
	idx := make([]int16, n)
	for i := range idx {
		idx[i] = int16(i)
	}
	s.zero = Vector[T]{species: s, data: make([]T, n)}
	s.iota = Vector[T]{species: s, data: seq}
	s.allTrue = Mask[T]{species: s, bits: trues}
	s.allFalse = Mask[T]{species: s, bits: make([]bool, n)}
	s.iotaShuffle = Shuffle[T]{species: s, indices: idx}
}

// SpeciesOf returns the species for the given element kind and shape.
// Repeated calls return the same *Species.
func SpeciesOf(kind ElementKind, shape Shape) (*Species, error) {
	if !kind.valid() || int(shape) >= numShapes {
		return nil, fmt.Errorf("%w: no species for %v and %v", ErrUnsupportedOperation, kind, shape)
	}
	return registry[kind][shape], nil
}

// MustSpecies is like SpeciesOf but panics on an unsupported pair.
// It is intended for package-level tables.
func MustSpecies(kind ElementKind, shape Shape) *Species {
	s, err := SpeciesOf(kind, shape)
	if err != nil {
		panic(err)
	}
	return s
}

// SpeciesFor returns the species for lane type T and the given shape.
func SpeciesFor[T Lanes](shape Shape) *Species {
	return MustSpecies(KindOf[T](), shape)
}

// PreferredSpecies returns the ShapeMax species for lane type T.
func PreferredSpecies[T Lanes]() *Species {
	return SpeciesFor[T](ShapeMax)
}

// LaneCount returns the number of lanes.
func (s *Species) LaneCount() int { return s.laneCount }

// ElementKind returns the lane type.
func (s *Species) ElementKind() ElementKind { return s.kind }

// ElementSize returns the lane size in bits.
func (s *Species) ElementSize() int { return s.kind.Bits() }

// Shape returns the vector shape.
func (s *Species) Shape() Shape { return s.shape }

// VectorBits returns the total vector width in bits.
func (s *Species) VectorBits() int { return s.bits }

// VectorBytes returns the total vector width in bytes.
func (s *Species) VectorBytes() int { return s.bits / 8 }

// LoopBound returns the largest multiple of the lane count not greater
// than length.
func (s *Species) LoopBound(length int) int {
	return length - length%s.laneCount
}

// WithKind returns the species of the same shape for another lane type.
func (s *Species) WithKind(kind ElementKind) (*Species, error) {
	return SpeciesOf(kind, s.shape)
}

// WithShape returns the species of the same lane type for another shape.
func (s *Species) WithShape(shape Shape) (*Species, error) {
	return SpeciesOf(s.kind, shape)
}

func (s *Species) String() string {
	if s == nil {
		return "Species[nil]"
	}
	return fmt.Sprintf("Species[%v, %d, %v]", s.kind, s.laneCount, s.shape)
}

// checkKind verifies that the species holds lanes of type T.
func checkKind[T Lanes](s *Species) error {
	if s == nil {
		return fmt.Errorf("%w: nil species", ErrShapeMismatch)
	}
	if k := KindOf[T](); s.kind != k {
		return fmt.Errorf("%w: %v does not hold %v lanes", ErrShapeMismatch, s, k)
	}
	return nil
}

// Zero returns the all-zero vector of the species.
func Zero[T Lanes](s *Species) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	return s.zero.(Vector[T]), nil
}

// Iota returns the vector whose lane i holds i.
func Iota[T Lanes](s *Species) (Vector[T], error) {
	if err := checkKind[T](s); err != nil {
		return Vector[T]{}, err
	}
	return s.iota.(Vector[T]), nil
}

// AllTrue returns the mask with every lane set.
func AllTrue[T Lanes](s *Species) (Mask[T], error) {
	if err := checkKind[T](s); err != nil {
		return Mask[T]{}, err
	}
	return s.allTrue.(Mask[T]), nil
}

// AllFalse returns the mask with no lane set.
func AllFalse[T Lanes](s *Species) (Mask[T], error) {
	if err := checkKind[T](s); err != nil {
		return Mask[T]{}, err
	}
	return s.allFalse.(Mask[T]), nil
}

// IotaShuffle returns the identity permutation of the species.
func IotaShuffle[T Lanes](s *Species) (Shuffle[T], error) {
	if err := checkKind[T](s); err != nil {
		return Shuffle[T]{}, err
	}
	return s.iotaShuffle.(Shuffle[T]), nil
}
