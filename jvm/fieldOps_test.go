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

// newHolderClass builds and registers a class with one static int field
// ("count", FieldRef at CP index 7) and one instance int field ("value",
// FieldRef at CP index 9), returning the
// class and a *classloader.Method owned by it with the given code.
func newHolderClass(t *testing.T, code []byte) (*classloader.Class, *classloader.Method) {
	t.Helper()
	classloader.ResetMethodArea()

	cls := &classloader.Class{
		Name:        "demo/Holder",
		Methods:     map[string]*classloader.Method{},
		StaticSlots: []types.Value{types.IntVal(0)},
	}
	staticField := &classloader.Field{Name: "count", Desc: "I", IsStatic: true, StaticSlot: 0,
		FieldType: types.FieldType{Kind: types.KindInt}}
	instField := &classloader.Field{Name: "value", Desc: "I",
		FieldType: types.FieldType{Kind: types.KindInt}}
	cls.Fields = []*classloader.Field{staticField, instField}
	cls.FieldLayout = []*classloader.Field{instField}

	cp := classloader.NewCPoolForTest(10)
	cp.Utf8Refs = append(cp.Utf8Refs, "demo/Holder", "count", "I", "value")
	cp.CpIndex[1] = classloader.CpEntry{Type: classloader.Utf8, Slot: 0}
	cp.CpIndex[2] = classloader.CpEntry{Type: classloader.Utf8, Slot: 1}
	cp.CpIndex[3] = classloader.CpEntry{Type: classloader.Utf8, Slot: 2}
	cp.CpIndex[4] = classloader.CpEntry{Type: classloader.Utf8, Slot: 3}

	cp.ClassRefs = append(cp.ClassRefs, 1)
	cp.CpIndex[5] = classloader.CpEntry{Type: classloader.ClassRef, Slot: 0}

	cp.NameAndTypes = append(cp.NameAndTypes, classloader.NameAndTypeEntry{NameIndex: 2, DescIndex: 3})
	cp.CpIndex[6] = classloader.CpEntry{Type: classloader.NameAndType, Slot: 0}
	cp.FieldRefs = append(cp.FieldRefs, classloader.FieldRefEntry{ClassIndex: 5, NameAndType: 6})
	cp.CpIndex[7] = classloader.CpEntry{Type: classloader.FieldRef, Slot: 0}

	cp.NameAndTypes = append(cp.NameAndTypes, classloader.NameAndTypeEntry{NameIndex: 4, DescIndex: 3})
	cp.CpIndex[8] = classloader.CpEntry{Type: classloader.NameAndType, Slot: 1}
	cp.FieldRefs = append(cp.FieldRefs, classloader.FieldRefEntry{ClassIndex: 5, NameAndType: 8})
	cp.CpIndex[9] = classloader.CpEntry{Type: classloader.FieldRef, Slot: 1}

	cls.CP = cp
	classloader.RegisterClassForTest(cls)

	m := &classloader.Method{Owner: cls, Name: "m", Desc: "()V", Code: code}
	cls.Methods["m()V"] = m
	return cls, m
}

func TestExecFieldOpPutGetStatic(t *testing.T) {
	heap.Reset()
	th := thread.NewMain()
	_, m := newHolderClass(t, []byte{PUTSTATIC, 0, 7, GETSTATIC, 0, 7})

	f := frames.NewFrameForMethod(m, th.ID)
	f.PC = 1
	f.Push(types.IntVal(5))
	if err := execFieldOp(th, f, PUTSTATIC); err != nil {
		t.Fatal(err)
	}
	f.PC = 3
	if err := execFieldOp(th, f, GETSTATIC); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != 5 {
		t.Errorf("getstatic after putstatic = %d, want 5", got)
	}
}

func TestExecFieldOpGetPutField(t *testing.T) {
	heap.Reset()
	th := thread.NewMain()
	cls, m := newHolderClass(t, []byte{PUTFIELD, 0, 9, GETFIELD, 0, 9})

	ref := heap.AllocateObject(cls)
	f := frames.NewFrameForMethod(m, th.ID)
	f.PC = 1
	f.Push(ref)
	f.Push(types.IntVal(11))
	if err := execFieldOp(th, f, PUTFIELD); err != nil {
		t.Fatal(err)
	}
	f.PC = 3
	f.Push(ref)
	if err := execFieldOp(th, f, GETFIELD); err != nil {
		t.Fatal(err)
	}
	if got := f.Pop().Int(); got != 11 {
		t.Errorf("getfield after putfield = %d, want 11", got)
	}
}

func TestExecFieldOpGetFieldNullPointer(t *testing.T) {
	heap.Reset()
	th := thread.NewMain()
	_, m := newHolderClass(t, []byte{GETFIELD, 0, 9})
	f := frames.NewFrameForMethod(m, th.ID)
	f.PC = 1
	f.Push(types.NullReference)
	err := execFieldOp(th, f, GETFIELD)
	assertExcType(t, err, "NullPointerException")
}

func TestIsFieldOp(t *testing.T) {
	if !isFieldOp(GETSTATIC) || !isFieldOp(PUTFIELD) {
		t.Error("GETSTATIC/PUTFIELD should be field ops")
	}
	if isFieldOp(IADD) {
		t.Error("IADD should not be a field op")
	}
}
