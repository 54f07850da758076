/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/frames"
	"jacobin/types"
)

func isConvOp(op int) bool {
	return op >= I2L && op <= I2S
}

// execConvOp implements the numeric-conversion family, JVMS §6.5 i2l
// through i2s. Narrowing int conversions truncate per JVMS §2.8.3's
// sign-preserving truncation rule; narrowing float-to-int conversions
// saturate at the target range and map NaN to zero, per JVMS §2.8.3's
// value-set conversion.
func execConvOp(f *frames.Frame, op int) error {
	switch op {
	case I2L:
		f.Push(types.LongVal(int64(f.Pop().Int())))
	case I2F:
		f.Push(types.FloatVal(float32(f.Pop().Int())))
	case I2D:
		f.Push(types.DoubleVal(float64(f.Pop().Int())))
	case L2I:
		f.Push(types.IntVal(int32(f.Pop().Long())))
	case L2F:
		f.Push(types.FloatVal(float32(f.Pop().Long())))
	case L2D:
		f.Push(types.DoubleVal(float64(f.Pop().Long())))
	case F2I:
		f.Push(types.IntVal(float32ToInt32(f.Pop().Float())))
	case F2L:
		f.Push(types.LongVal(float32ToInt64(f.Pop().Float())))
	case F2D:
		f.Push(types.DoubleVal(float64(f.Pop().Float())))
	case D2I:
		f.Push(types.IntVal(float64ToInt32(f.Pop().Double())))
	case D2L:
		f.Push(types.LongVal(float64ToInt64(f.Pop().Double())))
	case D2F:
		f.Push(types.FloatVal(float32(f.Pop().Double())))
	case I2B:
		f.Push(types.IntVal(int32(int8(f.Pop().Int()))))
	case I2C:
		f.Push(types.IntVal(int32(uint16(f.Pop().Int()))))
	case I2S:
		f.Push(types.IntVal(int32(int16(f.Pop().Int()))))
	}
	return nil
}

func float32ToInt32(v float32) int32 {
	if v != v { // NaN
		return 0
	}
	if v >= float32(1<<31) {
		return 1<<31 - 1
	}
	if v <= -float32(1<<31) {
		return -(1 << 31)
	}
	return int32(v)
}

func float32ToInt64(v float32) int64 {
	if v != v {
		return 0
	}
	if v >= float32(1<<63) {
		return 1<<63 - 1
	}
	if v <= -float32(1<<63) {
		return -(1 << 63)
	}
	return int64(v)
}

func float64ToInt32(v float64) int32 {
	if v != v {
		return 0
	}
	if v >= float64(1<<31) {
		return 1<<31 - 1
	}
	if v <= -float64(1<<31) {
		return -(1 << 31)
	}
	return int32(v)
}

func float64ToInt64(v float64) int64 {
	if v != v {
		return 0
	}
	if v >= float64(1<<63) {
		return 1<<63 - 1
	}
	if v <= -float64(1<<63) {
		return -(1 << 63)
	}
	return int64(v)
}
