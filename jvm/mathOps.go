/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"math"

	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/types"
)

func isMathOp(op int) bool {
	return op >= IADD && op <= LXOR
}

// execMathOp implements the arithmetic/bitwise family, JVMS §6.5 iadd
// through lxor. Integer arithmetic wraps per Go's native two's-complement
// overflow, matching JVMS §2.4's silent-wraparound rule.
func execMathOp(f *frames.Frame, op int) error {
	switch op {
	case IADD:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() + b.Int()))
	case LADD:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() + b.Long()))
	case FADD:
		b, a := f.Pop(), f.Pop()
		f.Push(types.FloatVal(a.Float() + b.Float()))
	case DADD:
		b, a := f.Pop(), f.Pop()
		f.Push(types.DoubleVal(a.Double() + b.Double()))
	case ISUB:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() - b.Int()))
	case LSUB:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() - b.Long()))
	case FSUB:
		b, a := f.Pop(), f.Pop()
		f.Push(types.FloatVal(a.Float() - b.Float()))
	case DSUB:
		b, a := f.Pop(), f.Pop()
		f.Push(types.DoubleVal(a.Double() - b.Double()))
	case IMUL:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() * b.Int()))
	case LMUL:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() * b.Long()))
	case FMUL:
		b, a := f.Pop(), f.Pop()
		f.Push(types.FloatVal(a.Float() * b.Float()))
	case DMUL:
		b, a := f.Pop(), f.Pop()
		f.Push(types.DoubleVal(a.Double() * b.Double()))
	case IDIV:
		b, a := f.Pop(), f.Pop()
		if b.Int() == 0 {
			return throwBuiltin(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(types.IntVal(a.Int() / b.Int()))
	case LDIV:
		b, a := f.Pop(), f.Pop()
		if b.Long() == 0 {
			return throwBuiltin(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(types.LongVal(a.Long() / b.Long()))
	case FDIV:
		b, a := f.Pop(), f.Pop()
		f.Push(types.FloatVal(a.Float() / b.Float()))
	case DDIV:
		b, a := f.Pop(), f.Pop()
		f.Push(types.DoubleVal(a.Double() / b.Double()))
	case IREM:
		b, a := f.Pop(), f.Pop()
		if b.Int() == 0 {
			return throwBuiltin(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(types.IntVal(a.Int() % b.Int()))
	case LREM:
		b, a := f.Pop(), f.Pop()
		if b.Long() == 0 {
			return throwBuiltin(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(types.LongVal(a.Long() % b.Long()))
	case FREM:
		b, a := f.Pop(), f.Pop()
		f.Push(types.FloatVal(float32(math.Mod(float64(a.Float()), float64(b.Float())))))
	case DREM:
		b, a := f.Pop(), f.Pop()
		f.Push(types.DoubleVal(math.Mod(a.Double(), b.Double())))
	case INEG:
		f.Push(types.IntVal(-f.Pop().Int()))
	case LNEG:
		f.Push(types.LongVal(-f.Pop().Long()))
	case FNEG:
		f.Push(types.FloatVal(-f.Pop().Float()))
	case DNEG:
		f.Push(types.DoubleVal(-f.Pop().Double()))
	case ISHL:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() << (uint32(b.Int()) & 0x1f)))
	case LSHL:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() << (uint64(b.Int()) & 0x3f)))
	case ISHR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() >> (uint32(b.Int()) & 0x1f)))
	case LSHR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() >> (uint64(b.Int()) & 0x3f)))
	case IUSHR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(int32(uint32(a.Int()) >> (uint32(b.Int()) & 0x1f))))
	case LUSHR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(int64(uint64(a.Long()) >> (uint64(b.Int()) & 0x3f))))
	case IAND:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() & b.Int()))
	case LAND:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() & b.Long()))
	case IOR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() | b.Int()))
	case LOR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() | b.Long()))
	case IXOR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.IntVal(a.Int() ^ b.Int()))
	case LXOR:
		b, a := f.Pop(), f.Pop()
		f.Push(types.LongVal(a.Long() ^ b.Long()))
	}
	return nil
}
