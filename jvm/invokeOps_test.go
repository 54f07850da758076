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
	"jacobin/heap"
	"jacobin/thread"
	"jacobin/types"
)

// newInvokeHolder registers a class declaring a static "add" method (II)I
// and an instance "getVal" ()I method returning a field, plus a CP with:
//
//	index 6:  MethodRef demo/Callee.add(II)I
//	index 10: MethodRef demo/Callee.getVal()I
//	index 14: FieldRef  demo/Callee.val:I
func newInvokeHolder(t *testing.T) (*classloader.Class, *classloader.Method) {
	t.Helper()
	classloader.ResetMethodArea()

	cls := &classloader.Class{Name: "demo/Callee", Methods: map[string]*classloader.Method{}}
	addBody := []byte{ILOAD_0, ILOAD_1, IADD, IRETURN}
	addMethod := &classloader.Method{Owner: cls, Name: "add", Desc: "(II)I",
		AccessFlags: 0x0008, // ACC_STATIC
		MaxStack:    2, MaxLocals: 2, Code: addBody}
	cls.Methods["add(II)I"] = addMethod

	instField := &classloader.Field{Name: "val", Desc: "I", FieldType: types.FieldType{Kind: types.KindInt}}
	cls.Fields = []*classloader.Field{instField}
	cls.FieldLayout = []*classloader.Field{instField}
	getValBody := []byte{ALOAD_0, GETFIELD, 0, 14, IRETURN}
	getValMethod := &classloader.Method{Owner: cls, Name: "getVal", Desc: "()I",
		MaxStack: 1, MaxLocals: 1, Code: getValBody}
	cls.Methods["getVal()I"] = getValMethod

	cp := classloader.NewCPoolForTest(16)
	cp.Utf8Refs = append(cp.Utf8Refs, "demo/Callee", "add", "(II)I", "getVal", "()I", "val", "I")
	cp.CpIndex[1] = classloader.CpEntry{Type: classloader.Utf8, Slot: 0} // demo/Callee
	cp.CpIndex[2] = classloader.CpEntry{Type: classloader.Utf8, Slot: 1} // add
	cp.CpIndex[3] = classloader.CpEntry{Type: classloader.Utf8, Slot: 2} // (II)I
	cp.CpIndex[7] = classloader.CpEntry{Type: classloader.Utf8, Slot: 3} // getVal
	cp.CpIndex[8] = classloader.CpEntry{Type: classloader.Utf8, Slot: 4} // ()I
	cp.CpIndex[11] = classloader.CpEntry{Type: classloader.Utf8, Slot: 5} // val
	cp.CpIndex[12] = classloader.CpEntry{Type: classloader.Utf8, Slot: 6} // I

	cp.ClassRefs = append(cp.ClassRefs, 1)
	cp.CpIndex[4] = classloader.CpEntry{Type: classloader.ClassRef, Slot: 0}

	cp.NameAndTypes = append(cp.NameAndTypes, classloader.NameAndTypeEntry{NameIndex: 2, DescIndex: 3})
	cp.CpIndex[5] = classloader.CpEntry{Type: classloader.NameAndType, Slot: 0}
	cp.MethodRefs = append(cp.MethodRefs, classloader.MethodRefEntry{ClassIndex: 4, NameAndType: 5})
	cp.CpIndex[6] = classloader.CpEntry{Type: classloader.MethodRef, Slot: 0}

	cp.NameAndTypes = append(cp.NameAndTypes, classloader.NameAndTypeEntry{NameIndex: 7, DescIndex: 8})
	cp.CpIndex[9] = classloader.CpEntry{Type: classloader.NameAndType, Slot: 1}
	cp.MethodRefs = append(cp.MethodRefs, classloader.MethodRefEntry{ClassIndex: 4, NameAndType: 9})
	cp.CpIndex[10] = classloader.CpEntry{Type: classloader.MethodRef, Slot: 1}

	cp.NameAndTypes = append(cp.NameAndTypes, classloader.NameAndTypeEntry{NameIndex: 11, DescIndex: 12})
	cp.CpIndex[13] = classloader.CpEntry{Type: classloader.NameAndType, Slot: 2}
	cp.FieldRefs = append(cp.FieldRefs, classloader.FieldRefEntry{ClassIndex: 4, NameAndType: 13})
	cp.CpIndex[14] = classloader.CpEntry{Type: classloader.FieldRef, Slot: 0}

	cls.CP = cp
	classloader.RegisterClassForTest(cls)
	return cls, addMethod
}

func TestExecInvokeOpInvokestatic(t *testing.T) {
	heap.Reset()
	th := thread.NewMain()
	cls, _ := newInvokeHolder(t)

	callerCode := []byte{INVOKESTATIC, 0, 6}
	caller := &classloader.Method{Owner: cls, Name: "caller", Desc: "()I", Code: callerCode, MaxStack: 4}
	cls.Methods["caller()I"] = caller

	f := frames.NewFrameForMethod(caller, th.ID)
	f.PC = 1
	f.Push(types.IntVal(2))
	f.Push(types.IntVal(3))
	if err := execInvokeOp(th, f, INVOKESTATIC); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != 5 {
		t.Errorf("invokestatic add(2,3) = %d, want 5", got)
	}
}

func TestExecInvokeOpNullReceiver(t *testing.T) {
	heap.Reset()
	th := thread.NewMain()
	cls, _ := newInvokeHolder(t)
	callerCode := []byte{INVOKEVIRTUAL, 0, 10}
	caller := &classloader.Method{Owner: cls, Name: "caller", Desc: "()I", Code: callerCode, MaxStack: 4}
	cls.Methods["caller()I"] = caller

	f := frames.NewFrameForMethod(caller, th.ID)
	f.PC = 1
	f.Push(types.NullReference)
	err := execInvokeOp(th, f, INVOKEVIRTUAL)
	assertExcType(t, err, "NullPointerException")
}

func TestExecInvokeOpInvokedynamicUnsupported(t *testing.T) {
	heap.Reset()
	th := thread.NewMain()
	cls, _ := newInvokeHolder(t)
	caller := &classloader.Method{Owner: cls, Name: "caller", Desc: "()V",
		Code: []byte{INVOKEDYNAMIC, 0, 0, 0, 0}, MaxStack: 4}
	cls.Methods["caller()V"] = caller

	f := frames.NewFrameForMethod(caller, th.ID)
	f.PC = 1
	err := execInvokeOp(th, f, INVOKEDYNAMIC)
	assertExcType(t, err, "UnsupportedOperationException")
}

func TestIsInvokeOp(t *testing.T) {
	if !isInvokeOp(INVOKESTATIC) || !isInvokeOp(INVOKEDYNAMIC) {
		t.Error("INVOKESTATIC/INVOKEDYNAMIC should be invoke ops")
	}
	if isInvokeOp(IADD) {
		t.Error("IADD should not be an invoke op")
	}
}
