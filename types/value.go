/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types holds the core value representation shared by the heap, the
// class loader, and the interpreter: the tagged Value union, category-1/2
// slot-width rules, and the field/method descriptor grammar (JVMS §4.3).
package types

import "math"

// JavaByte is a signed 8-bit value, kept as its own type (rather than plain
// byte) because Java byte arrays are element-signed and Go's byte is not.
type JavaByte int8

// Tag discriminates the kind of value held in a Value.
type Tag uint8

const (
	Int Tag = iota
	Long
	Float
	Double
	Reference
	ReturnAddress
)

func (t Tag) String() string {
	switch t {
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Reference:
		return "Reference"
	case ReturnAddress:
		return "ReturnAddress"
	default:
		return "Unknown"
	}
}

// Value is a tagged union of {Int, Long, Float, Double, Reference,
// ReturnAddress}. It is kept as a flat struct with a raw-bits scalar rather
// than an interface{} so that pushing/popping it on the operand stack never
// allocates.
type Value struct {
	tag  Tag
	bits uint64 // raw bit pattern for Int/Long/Float/Double
	ref  uint32 // object/array reference, or return address, slot index
}

// NullReference is the canonical null value: Reference(0). It is never
// allocated in the heap and must never be dereferenced.
var NullReference = Value{tag: Reference, ref: 0}

func IntVal(i int32) Value    { return Value{tag: Int, bits: uint64(uint32(i))} }
func LongVal(i int64) Value   { return Value{tag: Long, bits: uint64(i)} }
func FloatVal(f float32) Value {
	return Value{tag: Float, bits: uint64(math.Float32bits(f))}
}
func DoubleVal(f float64) Value {
	return Value{tag: Double, bits: math.Float64bits(f)}
}
func RefVal(ref uint32) Value { return Value{tag: Reference, ref: ref} }
func ReturnAddressVal(pc uint32) Value {
	return Value{tag: ReturnAddress, ref: pc}
}

func (v Value) Tag() Tag { return v.tag }

func (v Value) Int() int32 {
	return int32(uint32(v.bits))
}

func (v Value) Long() int64 {
	return int64(v.bits)
}

func (v Value) Float() float32 {
	return math.Float32frombits(uint32(v.bits))
}

func (v Value) Double() float64 {
	return math.Float64frombits(v.bits)
}

func (v Value) Reference() uint32 {
	return v.ref
}

func (v Value) ReturnAddress() uint32 {
	return v.ref
}

func (v Value) IsNull() bool {
	return v.tag == Reference && v.ref == 0
}

// Category2 reports whether this value occupies two adjacent operand-stack
// slots / local-variable indices (Long, Double), per JVMS §2.6.1.
func (v Value) Category2() bool {
	return v.tag == Long || v.tag == Double
}

// Slots returns the number of operand-stack/local-variable slots this value
// occupies: 1 for category-1 values, 2 for category-2 values.
func (v Value) Slots() int {
	if v.Category2() {
		return 2
	}
	return 1
}
