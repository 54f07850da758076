/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"jacobin/types"
)

func TestExecReturnOpVoid(t *testing.T) {
	f := newOpFrame() // empty operand stack
	_ = execReturnOp(f, RETURN)
	if !f.Empty() {
		t.Error("RETURN should not touch the operand stack")
	}
}

func TestExecReturnOpIreturn(t *testing.T) {
	f := newOpFrame()
	f.Push(types.IntVal(9))
	v := execReturnOp(f, IRETURN)
	if v.Int() != 9 {
		t.Errorf("IRETURN = %d, want 9", v.Int())
	}
}

func TestExecReturnOpAreturn(t *testing.T) {
	f := newOpFrame()
	f.Push(types.RefVal(3))
	v := execReturnOp(f, ARETURN)
	if v.Reference() != 3 {
		t.Errorf("ARETURN = %d, want 3", v.Reference())
	}
}

func TestIsReturnOp(t *testing.T) {
	if !isReturnOp(RETURN) || !isReturnOp(LRETURN) {
		t.Error("RETURN/LRETURN should be return ops")
	}
	if isReturnOp(GOTO) {
		t.Error("GOTO should not be a return op")
	}
}
