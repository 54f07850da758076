/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "testing"

func newTestCPool() *CPool {
	cp := newCPool(8)
	cp.Utf8Refs = append(cp.Utf8Refs, "java/lang/Object", "foo", "()V")
	cp.CpIndex[1] = CpEntry{Type: Utf8, Slot: 0}
	cp.CpIndex[2] = CpEntry{Type: Utf8, Slot: 1}
	cp.CpIndex[3] = CpEntry{Type: Utf8, Slot: 2}

	cp.ClassRefs = append(cp.ClassRefs, 1)
	cp.CpIndex[4] = CpEntry{Type: ClassRef, Slot: 0}

	cp.NameAndTypes = append(cp.NameAndTypes, NameAndTypeEntry{NameIndex: 2, DescIndex: 3})
	cp.CpIndex[5] = CpEntry{Type: NameAndType, Slot: 0}

	cp.MethodRefs = append(cp.MethodRefs, MethodRefEntry{ClassIndex: 4, NameAndType: 5})
	cp.CpIndex[6] = CpEntry{Type: MethodRef, Slot: 0}

	return cp
}

func TestUtf8At(t *testing.T) {
	cp := newTestCPool()
	s, err := cp.Utf8At(2)
	if err != nil || s != "foo" {
		t.Fatalf("Utf8At(2) = %q, %v; want foo, nil", s, err)
	}
}

func TestUtf8AtWrongType(t *testing.T) {
	cp := newTestCPool()
	if _, err := cp.Utf8At(4); err == nil {
		t.Fatalf("Utf8At on a ClassRef entry should fail")
	}
}

func TestUtf8AtOutOfRange(t *testing.T) {
	cp := newTestCPool()
	if _, err := cp.Utf8At(0); err == nil {
		t.Fatalf("Utf8At(0) should fail: index 0 is never valid")
	}
	if _, err := cp.Utf8At(99); err == nil {
		t.Fatalf("Utf8At(99) should fail: out of range")
	}
}

func TestClassNameAt(t *testing.T) {
	cp := newTestCPool()
	name, err := cp.ClassNameAt(4)
	if err != nil || name != "java/lang/Object" {
		t.Fatalf("ClassNameAt(4) = %q, %v; want java/lang/Object, nil", name, err)
	}
}

func TestNameAndTypeAt(t *testing.T) {
	cp := newTestCPool()
	name, desc, err := cp.NameAndTypeAt(5)
	if err != nil || name != "foo" || desc != "()V" {
		t.Fatalf("NameAndTypeAt(5) = %q, %q, %v; want foo, ()V, nil", name, desc, err)
	}
}

func TestMemberRefAt(t *testing.T) {
	cp := newTestCPool()
	class, name, desc, err := cp.MemberRefAt(6)
	if err != nil || class != "java/lang/Object" || name != "foo" || desc != "()V" {
		t.Fatalf("MemberRefAt(6) = %q %q %q, %v; want java/lang/Object foo ()V, nil",
			class, name, desc, err)
	}
}

func TestMemberRefAtWrongType(t *testing.T) {
	cp := newTestCPool()
	if _, _, _, err := cp.MemberRefAt(1); err == nil {
		t.Fatalf("MemberRefAt on a Utf8 entry should fail")
	}
}
