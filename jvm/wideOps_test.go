/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"jacobin/classloader"
	"jacobin/frames"
	"jacobin/types"
)

func TestExecWideOpIload(t *testing.T) {
	f := frames.CreateFrame(4)
	f.Method = &classloader.Method{Code: []byte{WIDE, ILOAD, 0x01, 0x00}} // local #256
	f.PC = 1
	f.Locals = make([]types.Value, 300)
	f.Locals[256] = types.IntVal(77)

	if err := execWideOp(f); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != 77 {
		t.Errorf("wide iload local 256 = %d, want 77", got)
	}
}

func TestExecWideOpIstore(t *testing.T) {
	f := frames.CreateFrame(4)
	f.Method = &classloader.Method{Code: []byte{WIDE, ISTORE, 0x00, 0x05}} // local #5
	f.PC = 1
	f.Locals = make([]types.Value, 10)
	f.Push(types.IntVal(33))

	if err := execWideOp(f); err != nil {
		t.Fatal(err)
	}
	if got := f.Locals[5].Int(); got != 33 {
		t.Errorf("wide istore local 5 = %d, want 33", got)
	}
}

func TestExecWideOpIinc(t *testing.T) {
	f := frames.CreateFrame(4)
	f.Method = &classloader.Method{Code: []byte{WIDE, IINC, 0x00, 0x02, 0x00, 0x0A}} // local 2, +10
	f.PC = 1
	f.Locals = make([]types.Value, 4)
	f.Locals[2] = types.IntVal(5)

	if err := execWideOp(f); err != nil {
		t.Fatal(err)
	}
	if got := f.Locals[2].Int(); got != 15 {
		t.Errorf("wide iinc local 2 = %d, want 15", got)
	}
}

func TestExecWideOpRet(t *testing.T) {
	f := frames.CreateFrame(4)
	f.Method = &classloader.Method{Code: []byte{WIDE, RET, 0x00, 0x01}} // local #1
	f.PC = 1
	f.Locals = make([]types.Value, 4)
	f.Locals[1] = types.ReturnAddressVal(42)

	if err := execWideOp(f); err != nil {
		t.Fatal(err)
	}
	if f.PC != 42 {
		t.Errorf("wide ret jumped to PC = %d, want 42", f.PC)
	}
}

func TestExecWideOpInvalidOpcode(t *testing.T) {
	f := frames.CreateFrame(4)
	f.Method = &classloader.Method{Code: []byte{WIDE, NOP, 0x00, 0x00}}
	f.PC = 1
	f.Locals = make([]types.Value, 4)

	if err := execWideOp(f); err == nil {
		t.Error("expected an error for an opcode that cannot follow wide")
	}
}
