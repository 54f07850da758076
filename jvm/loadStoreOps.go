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

func isLoadStoreOp(op int) bool {
	switch {
	case op >= ILOAD && op <= ALOAD:
		return true
	case op >= ILOAD_0 && op <= ALOAD_3:
		return true
	case op >= ISTORE && op <= ASTORE:
		return true
	case op >= ISTORE_0 && op <= ASTORE_3:
		return true
	case op == IINC:
		return true
	}
	return false
}

// execLoadStore implements the local-variable load/store family, JVMS
// §6.5 iload through astore_3, plus iinc.
func execLoadStore(f *frames.Frame, op int) error {
	switch {
	case op >= ILOAD && op <= ALOAD:
		idx := readU8(f)
		f.Push(f.Locals[idx])
		return nil
	case op >= ILOAD_0 && op <= ALOAD_3:
		f.Push(f.Locals[loadNIndex(op)])
		return nil
	case op >= ISTORE && op <= ASTORE:
		idx := readU8(f)
		f.Locals[idx] = f.Pop()
		return nil
	case op >= ISTORE_0 && op <= ASTORE_3:
		f.Locals[storeNIndex(op)] = f.Pop()
		return nil
	case op == IINC:
		idx := readU8(f)
		delta := readS8(f)
		v := f.Locals[idx]
		f.Locals[idx] = types.IntVal(v.Int() + int32(delta))
		return nil
	}
	return nil
}

// loadNIndex maps an *load_N opcode to its local-variable index. The five
// families (iload_, lload_, fload_, dload_, aload_) are each four
// consecutive opcodes for indices 0-3.
func loadNIndex(op int) int {
	switch {
	case op >= ILOAD_0 && op <= ILOAD_3:
		return op - ILOAD_0
	case op >= LLOAD_0 && op <= LLOAD_3:
		return op - LLOAD_0
	case op >= FLOAD_0 && op <= FLOAD_3:
		return op - FLOAD_0
	case op >= DLOAD_0 && op <= DLOAD_3:
		return op - DLOAD_0
	case op >= ALOAD_0 && op <= ALOAD_3:
		return op - ALOAD_0
	}
	return 0
}

func storeNIndex(op int) int {
	switch {
	case op >= ISTORE_0 && op <= ISTORE_3:
		return op - ISTORE_0
	case op >= LSTORE_0 && op <= LSTORE_3:
		return op - LSTORE_0
	case op >= FSTORE_0 && op <= FSTORE_3:
		return op - FSTORE_0
	case op >= DSTORE_0 && op <= DSTORE_3:
		return op - DSTORE_0
	case op >= ASTORE_0 && op <= ASTORE_3:
		return op - ASTORE_0
	}
	return 0
}
