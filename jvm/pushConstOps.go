/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/classloader"
	"jacobin/frames"
	"jacobin/types"
)

func isPushConstOp(op int) bool {
	switch op {
	case ACONST_NULL, ICONST_M1, ICONST_0, ICONST_1, ICONST_2, ICONST_3, ICONST_4, ICONST_5,
		LCONST_0, LCONST_1, FCONST_0, FCONST_1, FCONST_2, DCONST_0, DCONST_1,
		BIPUSH, SIPUSH, LDC, LDC_W, LDC2_W:
		return true
	}
	return false
}

// execPushConst implements the constant-pushing family, JVMS §6.5
// aconst_null through ldc2_w.
func execPushConst(f *frames.Frame, op int) error {
	switch op {
	case ACONST_NULL:
		f.Push(types.NullReference)
	case ICONST_M1:
		f.Push(types.IntVal(-1))
	case ICONST_0:
		f.Push(types.IntVal(0))
	case ICONST_1:
		f.Push(types.IntVal(1))
	case ICONST_2:
		f.Push(types.IntVal(2))
	case ICONST_3:
		f.Push(types.IntVal(3))
	case ICONST_4:
		f.Push(types.IntVal(4))
	case ICONST_5:
		f.Push(types.IntVal(5))
	case LCONST_0:
		f.Push(types.LongVal(0))
	case LCONST_1:
		f.Push(types.LongVal(1))
	case FCONST_0:
		f.Push(types.FloatVal(0))
	case FCONST_1:
		f.Push(types.FloatVal(1))
	case FCONST_2:
		f.Push(types.FloatVal(2))
	case DCONST_0:
		f.Push(types.DoubleVal(0))
	case DCONST_1:
		f.Push(types.DoubleVal(1))
	case BIPUSH:
		f.Push(types.IntVal(int32(readS8(f))))
	case SIPUSH:
		f.Push(types.IntVal(int32(readS16(f))))
	case LDC:
		return execLdc(f, readU8(f))
	case LDC_W:
		return execLdc(f, readU16(f))
	case LDC2_W:
		return execLdc(f, readU16(f))
	}
	return nil
}

// execLdc resolves a constant-pool entry and pushes its value, per JVMS
// §6.5 ldc/ldc_w/ldc2_w.
func execLdc(f *frames.Frame, index int) error {
	rc, err := classloader.ResolveConst(f.Method.Owner, uint16(index))
	if err != nil {
		return javaExceptionFor(err)
	}
	switch rc.Kind {
	case classloader.IntegerConst, classloader.FloatConst, classloader.LongConst,
		classloader.DoubleConst, classloader.StringConst:
		f.Push(rc.Value)
	case classloader.ClassRef:
		f.Push(classMirrorValue(rc.Class))
	default:
		return javaExceptionFor(err)
	}
	return nil
}
