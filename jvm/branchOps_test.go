/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"math"
	"testing"

	"jacobin/classloader"
	"jacobin/frames"
	"jacobin/types"
)

// newBranchFrame builds a frame whose Method.Code holds the two-byte
// branch offset that follows op at pc 0, with f.PC positioned right after
// the opcode byte, mirroring runFrame's convention of advancing PC past
// the opcode before dispatch reads its operands.
func newBranchFrame(offsetHi, offsetLo byte) *frames.Frame {
	f := frames.CreateFrame(8)
	f.Method = &classloader.Method{Code: []byte{0x00, offsetHi, offsetLo}}
	f.PC = 1
	return f
}

func TestExecBranchOpGoto(t *testing.T) {
	f := newBranchFrame(0x00, 0x05)
	if err := execBranchOp(f, GOTO, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 5 {
		t.Errorf("GOTO target PC = %d, want 5", f.PC)
	}
}

func TestExecBranchOpIfIcmpTaken(t *testing.T) {
	f := newBranchFrame(0x00, 0x10)
	f.Push(types.IntVal(3))
	f.Push(types.IntVal(3))
	if err := execBranchOp(f, IF_ICMPEQ, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 0x10 {
		t.Errorf("IF_ICMPEQ (taken) PC = %#x, want 0x10", f.PC)
	}
}

func TestExecBranchOpIfIcmpNotTaken(t *testing.T) {
	f := newBranchFrame(0x00, 0x10)
	f.Push(types.IntVal(3))
	f.Push(types.IntVal(4))
	if err := execBranchOp(f, IF_ICMPEQ, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 3 {
		t.Errorf("IF_ICMPEQ (not taken) PC = %d, want 3 (fallthrough past operand)", f.PC)
	}
}

func TestExecBranchOpIfeqFamily(t *testing.T) {
	cases := []struct {
		op   int
		v    int32
		want bool
	}{
		{IFEQ, 0, true}, {IFEQ, 1, false},
		{IFNE, 1, true}, {IFNE, 0, false},
		{IFLT, -1, true}, {IFLT, 0, false},
		{IFGE, 0, true}, {IFGE, -1, false},
		{IFGT, 1, true}, {IFGT, 0, false},
		{IFLE, 0, true}, {IFLE, 1, false},
	}
	for _, c := range cases {
		f := newBranchFrame(0x00, 0x09)
		f.Push(types.IntVal(c.v))
		if err := execBranchOp(f, c.op, 0); err != nil {
			t.Fatal(err)
		}
		taken := f.PC == 9
		if taken != c.want {
			t.Errorf("op %d value %d: taken=%v, want %v", c.op, c.v, taken, c.want)
		}
	}
}

func TestExecBranchOpAcmp(t *testing.T) {
	f := newBranchFrame(0x00, 0x07)
	f.Push(types.RefVal(1))
	f.Push(types.RefVal(1))
	if err := execBranchOp(f, IF_ACMPEQ, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 7 {
		t.Errorf("IF_ACMPEQ same ref: PC = %d, want 7", f.PC)
	}

	f2 := newBranchFrame(0x00, 0x07)
	f2.Push(types.RefVal(1))
	f2.Push(types.RefVal(2))
	if err := execBranchOp(f2, IF_ACMPEQ, 0); err != nil {
		t.Fatal(err)
	}
	if f2.PC == 7 {
		t.Errorf("IF_ACMPEQ distinct refs should not branch")
	}
}

func TestExecBranchOpIfNullNonNull(t *testing.T) {
	f := newBranchFrame(0x00, 0x06)
	f.Push(types.NullReference)
	if err := execBranchOp(f, IFNULL, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 6 {
		t.Errorf("IFNULL on null ref should branch, PC = %d", f.PC)
	}

	f2 := newBranchFrame(0x00, 0x06)
	f2.Push(types.RefVal(1))
	if err := execBranchOp(f2, IFNONNULL, 0); err != nil {
		t.Fatal(err)
	}
	if f2.PC != 6 {
		t.Errorf("IFNONNULL on non-null ref should branch, PC = %d", f2.PC)
	}
}

func TestExecBranchOpLcmp(t *testing.T) {
	f := newOpFrame()
	f.Push(types.LongVal(5))
	f.Push(types.LongVal(3))
	if err := execBranchOp(f, LCMP, 0); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != 1 {
		t.Errorf("LCMP(5,3) = %d, want 1", got)
	}
}

func TestExecBranchOpFcmpgNaN(t *testing.T) {
	f := newOpFrame()
	f.Push(types.FloatVal(1))
	f.Push(types.FloatVal(float32(math.NaN())))
	if err := execBranchOp(f, FCMPG, 0); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != 1 {
		t.Errorf("FCMPG(1,NaN) = %d, want 1", got)
	}
}

func TestExecBranchOpFcmplNaN(t *testing.T) {
	f := newOpFrame()
	f.Push(types.FloatVal(1))
	f.Push(types.FloatVal(float32(math.NaN())))
	if err := execBranchOp(f, FCMPL, 0); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != -1 {
		t.Errorf("FCMPL(1,NaN) = %d, want -1", got)
	}
}

func TestExecBranchOpJsrRet(t *testing.T) {
	f := newBranchFrame(0x00, 0x08)
	f.Locals = make([]types.Value, 1)
	if err := execBranchOp(f, JSR, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 8 {
		t.Errorf("JSR target PC = %d, want 8", f.PC)
	}
	retAddr := f.Pop()
	if retAddr.ReturnAddress() != 3 {
		t.Errorf("JSR pushed return address %d, want 3 (PC after operand)", retAddr.ReturnAddress())
	}

	f.Locals[0] = retAddr
	f.Method.Code = []byte{RET, 0x00}
	f.PC = 1
	if err := execBranchOp(f, RET, 0); err != nil {
		t.Fatal(err)
	}
	if f.PC != 3 {
		t.Errorf("RET jumped to PC = %d, want 3", f.PC)
	}
}

func TestIsBranchOp(t *testing.T) {
	if !isBranchOp(GOTO) || !isBranchOp(IFNONNULL) || !isBranchOp(LCMP) {
		t.Error("expected GOTO/IFNONNULL/LCMP to be classified as branch ops")
	}
	if isBranchOp(IADD) {
		t.Error("IADD should not be a branch op")
	}
}
