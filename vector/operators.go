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

type opcode uint8

const (
	// unary
	opNeg opcode = iota
	opAbs
	opNot
	opZomo
	opSqrt
	opCbrt
	opExp
	opExpm1
	opLog
	opLog10
	opLog1p
	opSin
	opCos
	opTan
	opAsin
	opAcos
	opAtan
	opSinh
	opCosh
	opTanh

	// binary
	opAdd
	opSub
	opMul
	opDiv
	opMin
	opMax
	opFirstNonzero
	opAnd
	opAndNot
	opOr
	opXor
	opShl
	opAshr
	opLshr
	opRol
	opRor
	opPow
	opAtan2
	opHypot

	// ternary
	opFMA
	opBitwiseBlend
)

// kindSet is a bit set of ElementKinds.
type kindSet uint8

const (
	intKinds   kindSet = 1<<Int8 | 1<<Int16 | 1<<Int32 | 1<<Int64
	floatKinds kindSet = 1<<Float32 | 1<<Float64
	allKinds           = intKinds | floatKinds
)

func (ks kindSet) has(k ElementKind) bool {
	return k.valid() && ks&(1<<k) != 0
}

// Operator is a lanewise operation: its arity, the element kinds it applies
// to, and (for binary operators) whether it can drive a reduction.
// The scalar semantics of an operator for lane type T are available through
// UnaryFunc, BinaryFunc and TernaryFunc.
type Operator struct {
	name  string
	code  opcode
	arity int
	kinds kindSet
	assoc bool
}

// Name returns the operator name, e.g. "ADD".
func (op *Operator) Name() string { return op.name }

// Arity returns the number of lane operands (1, 2 or 3).
func (op *Operator) Arity() int { return op.arity }

// IsAssociative reports whether the operator can be used with ReduceLanes.
func (op *Operator) IsAssociative() bool { return op.assoc }

// Supports reports whether the operator applies to lanes of kind k.
func (op *Operator) Supports(k ElementKind) bool { return op.kinds.has(k) }

func (op *Operator) String() string { return op.name }

// check validates arity and element kind for a use of op.
func (op *Operator) check(arity int, k ElementKind) error {
	if op == nil {
		return fmt.Errorf("%w: nil operator", ErrUnsupportedOperation)
	}
	if op.arity != arity {
		return fmt.Errorf("%w: %s takes %d operands, got %d", ErrUnsupportedOperation, op.name, op.arity, arity)
	}
	if !op.kinds.has(k) {
		return unsupportedError(op.name, k)
	}
	return nil
}

func unaryOp(name string, code opcode, kinds kindSet) *Operator {
	return &Operator{name: name, code: code, arity: 1, kinds: kinds}
}

func binaryOp(name string, code opcode, kinds kindSet) *Operator {
	return &Operator{name: name, code: code, arity: 2, kinds: kinds}
}

func associativeOp(name string, code opcode, kinds kindSet) *Operator {
	return &Operator{name: name, code: code, arity: 2, kinds: kinds, assoc: true}
}

func ternaryOp(name string, code opcode, kinds kindSet) *Operator {
	return &Operator{name: name, code: code, arity: 3, kinds: kinds}
}

// Unary operators.
var (
	OpNeg  = unaryOp("NEG", opNeg, allKinds)
	OpAbs  = unaryOp("ABS", opAbs, allKinds)
	OpNot  = unaryOp("NOT", opNot, intKinds)
	OpZomo = unaryOp("ZOMO", opZomo, intKinds) // 0 stays 0, anything else becomes -1

	OpSqrt  = unaryOp("SQRT", opSqrt, floatKinds)
	OpCbrt  = unaryOp("CBRT", opCbrt, floatKinds)
	OpExp   = unaryOp("EXP", opExp, floatKinds)
	OpExpm1 = unaryOp("EXPM1", opExpm1, floatKinds)
	OpLog   = unaryOp("LOG", opLog, floatKinds)
	OpLog10 = unaryOp("LOG10", opLog10, floatKinds)
	OpLog1p = unaryOp("LOG1P", opLog1p, floatKinds)
	OpSin   = unaryOp("SIN", opSin, floatKinds)
	OpCos   = unaryOp("COS", opCos, floatKinds)
	OpTan   = unaryOp("TAN", opTan, floatKinds)
	OpAsin  = unaryOp("ASIN", opAsin, floatKinds)
	OpAcos  = unaryOp("ACOS", opAcos, floatKinds)
	OpAtan  = unaryOp("ATAN", opAtan, floatKinds)
	OpSinh  = unaryOp("SINH", opSinh, floatKinds)
	OpCosh  = unaryOp("COSH", opCosh, floatKinds)
	OpTanh  = unaryOp("TANH", opTanh, floatKinds)
)

// Binary operators. Shift and rotate counts are taken modulo the lane
// width.
var (
	OpAdd          = associativeOp("ADD", opAdd, allKinds)
	OpSub          = binaryOp("SUB", opSub, allKinds)
	OpMul          = associativeOp("MUL", opMul, allKinds)
	OpDiv          = binaryOp("DIV", opDiv, allKinds)
	OpMin          = associativeOp("MIN", opMin, allKinds)
	OpMax          = associativeOp("MAX", opMax, allKinds)
	OpFirstNonzero = associativeOp("FIRST_NONZERO", opFirstNonzero, allKinds)

	OpAnd    = associativeOp("AND", opAnd, intKinds)
	OpAndNot = binaryOp("AND_NOT", opAndNot, intKinds) // a &^ b
	OpOr     = associativeOp("OR", opOr, intKinds)
	OpXor    = associativeOp("XOR", opXor, intKinds)
	OpShl    = binaryOp("LSHL", opShl, intKinds)
	OpAshr   = binaryOp("ASHR", opAshr, intKinds)
	OpLshr   = binaryOp("LSHR", opLshr, intKinds)
	OpRol    = binaryOp("ROL", opRol, intKinds)
	OpRor    = binaryOp("ROR", opRor, intKinds)

	OpPow   = binaryOp("POW", opPow, floatKinds)
	OpAtan2 = binaryOp("ATAN2", opAtan2, floatKinds)
	OpHypot = binaryOp("HYPOT", opHypot, floatKinds)
)

// Ternary operators.
var (
	OpFMA          = ternaryOp("FMA", opFMA, floatKinds)
	OpBitwiseBlend = ternaryOp("BITWISE_BLEND", opBitwiseBlend, intKinds) // (a &^ c) | (b & c)
)

type cmpcode uint8

const (
	cmpEq cmpcode = iota
	cmpNe
	cmpLt
	cmpLe
	cmpGt
	cmpGe
	cmpUnsignedLt
	cmpUnsignedLe
	cmpUnsignedGt
	cmpUnsignedGe
)

// Comparison is a lanewise relational operator producing a Mask.
type Comparison struct {
	name  string
	code  cmpcode
	kinds kindSet
}

// Name returns the comparison name, e.g. "LT".
func (c *Comparison) Name() string { return c.name }

// Supports reports whether the comparison applies to lanes of kind k.
func (c *Comparison) Supports(k ElementKind) bool { return c.kinds.has(k) }

func (c *Comparison) String() string { return c.name }

func (c *Comparison) check(k ElementKind) error {
	if c == nil {
		return fmt.Errorf("%w: nil comparison", ErrUnsupportedOperation)
	}
	if !c.kinds.has(k) {
		return unsupportedError(c.name, k)
	}
	return nil
}

// Comparisons. Floating-point comparisons follow IEEE 754: every relation
// involving NaN is false except NE.
var (
	OpEq = &Comparison{name: "EQ", code: cmpEq, kinds: allKinds}
	OpNe = &Comparison{name: "NE", code: cmpNe, kinds: allKinds}
	OpLt = &Comparison{name: "LT", code: cmpLt, kinds: allKinds}
	OpLe = &Comparison{name: "LE", code: cmpLe, kinds: allKinds}
	OpGt = &Comparison{name: "GT", code: cmpGt, kinds: allKinds}
	OpGe = &Comparison{name: "GE", code: cmpGe, kinds: allKinds}

	OpUnsignedLt = &Comparison{name: "UNSIGNED_LT", code: cmpUnsignedLt, kinds: intKinds}
	OpUnsignedLe = &Comparison{name: "UNSIGNED_LE", code: cmpUnsignedLe, kinds: intKinds}
	OpUnsignedGt = &Comparison{name: "UNSIGNED_GT", code: cmpUnsignedGt, kinds: intKinds}
	OpUnsignedGe = &Comparison{name: "UNSIGNED_GE", code: cmpUnsignedGe, kinds: intKinds}
)

type testcode uint8

const (
	testIsDefault testcode = iota
	testIsNegative
	testIsFinite
	testIsNaN
	testIsInfinite
)

// TestOp is a lanewise predicate producing a Mask.
type TestOp struct {
	name  string
	code  testcode
	kinds kindSet
}

// Name returns the predicate name, e.g. "IS_NAN".
func (t *TestOp) Name() string { return t.name }

// Supports reports whether the predicate applies to lanes of kind k.
func (t *TestOp) Supports(k ElementKind) bool { return t.kinds.has(k) }

func (t *TestOp) String() string { return t.name }

func (t *TestOp) check(k ElementKind) error {
	if t == nil {
		return fmt.Errorf("%w: nil test", ErrUnsupportedOperation)
	}
	if !t.kinds.has(k) {
		return unsupportedError(t.name, k)
	}
	return nil
}

// Lane predicates. IS_DEFAULT and IS_NEGATIVE look at the raw bits of
// floating-point lanes, so -0.0 is negative and not default.
var (
	OpIsDefault  = &TestOp{name: "IS_DEFAULT", code: testIsDefault, kinds: allKinds}
	OpIsNegative = &TestOp{name: "IS_NEGATIVE", code: testIsNegative, kinds: allKinds}
	OpIsFinite   = &TestOp{name: "IS_FINITE", code: testIsFinite, kinds: floatKinds}
	OpIsNaN      = &TestOp{name: "IS_NAN", code: testIsNaN, kinds: floatKinds}
	OpIsInfinite = &TestOp{name: "IS_INFINITE", code: testIsInfinite, kinds: floatKinds}
)
