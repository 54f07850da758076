/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/types"
)

// execWideOp implements the wide prefix, JVMS §6.5: the next instruction's
// local-variable index is read as an unsigned 16-bit value instead of 8-bit,
// extending *load/*store/ret to the full local-variable array, and
// widening iinc's constant operand to 16 bits too.
func execWideOp(f *frames.Frame) error {
	op := readU8(f)
	idx := readU16(f)

	switch op {
	case ILOAD, LLOAD, FLOAD, DLOAD, ALOAD:
		f.Push(f.Locals[idx])
	case ISTORE, LSTORE, FSTORE, DSTORE, ASTORE:
		f.Locals[idx] = f.Pop()
	case RET:
		f.PC = int(f.Locals[idx].ReturnAddress())
	case IINC:
		delta := readS16(f)
		v := f.Locals[idx]
		f.Locals[idx] = types.IntVal(v.Int() + int32(delta))
	default:
		return throwBuiltin(excNames.ClassFormatError, "invalid opcode after wide prefix")
	}
	return nil
}
