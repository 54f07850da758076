/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "testing"

func TestValidateConstantPoolValid(t *testing.T) {
	cp := newTestCPool()
	// newTestCPool leaves index 7 empty; fill it so every live slot holds an entry.
	cp.Utf8Refs = append(cp.Utf8Refs, "bar")
	cp.CpIndex[7] = CpEntry{Type: Utf8, Slot: 3}
	if err := validateConstantPool(cp); err != nil {
		t.Fatalf("validateConstantPool() on a well-formed pool returned %v", err)
	}
}

func TestValidateConstantPoolEmbeddedNUL(t *testing.T) {
	cp := newTestCPool()
	cp.Utf8Refs[1] = "fo\x00o"
	if err := validateConstantPool(cp); err == nil {
		t.Fatalf("expected an error for a UTF8 entry with an embedded NUL byte")
	}
}

func TestValidateConstantPoolLongMissingFiller(t *testing.T) {
	cp := newCPool(4)
	cp.LongConsts = append(cp.LongConsts, 42)
	cp.CpIndex[1] = CpEntry{Type: LongConst, Slot: 0}
	cp.CpIndex[2] = CpEntry{Type: Utf8, Slot: 0} // should be a filler (Type 0), isn't
	cp.Utf8Refs = append(cp.Utf8Refs, "x")
	if err := validateConstantPool(cp); err == nil {
		t.Fatalf("expected an error: Long constant not followed by a filler entry")
	}
}

func TestValidateConstantPoolLongWithFiller(t *testing.T) {
	cp := newCPool(3)
	cp.LongConsts = append(cp.LongConsts, 42)
	cp.CpIndex[1] = CpEntry{Type: LongConst, Slot: 0}
	// cp.CpIndex[2] is left as the zero value (Type 0), the filler entry.
	if err := validateConstantPool(cp); err != nil {
		t.Fatalf("Long constant with a proper filler entry should validate: %v", err)
	}
}

func TestValidateConstantPoolBadClassRefSlot(t *testing.T) {
	cp := newTestCPool()
	cp.CpIndex[4] = CpEntry{Type: ClassRef, Slot: 99}
	if err := validateConstantPool(cp); err == nil {
		t.Fatalf("expected an error for an out-of-range ClassRef slot")
	}
}

func TestValidateConstantPoolUnrecognizedTag(t *testing.T) {
	cp := newTestCPool()
	cp.CpIndex[7] = CpEntry{Type: 0, Slot: 0} // a "live" slot with a filler tag
	if err := validateConstantPool(cp); err == nil {
		t.Fatalf("expected an error for a live slot carrying the filler tag")
	}
}

func newTestRawClassFileForFields() *RawClassFile {
	cp := newTestCPool()
	return &RawClassFile{
		CP: cp,
		Fields: []RawField{
			{NameIndex: 2, DescIndex: 3}, // name "foo", desc "()V" -- not a valid field desc but exercises the path
		},
	}
}

func TestValidateFieldsAndMethodsBadFieldDescriptor(t *testing.T) {
	rcf := newTestRawClassFileForFields()
	if err := validateFieldsAndMethods(rcf); err == nil {
		t.Fatalf("expected an error: ()V is a method descriptor, not a field descriptor")
	}
}

func TestValidateFieldsAndMethodsGoodField(t *testing.T) {
	cp := newTestCPool()
	cp.Utf8Refs = append(cp.Utf8Refs, "I")
	cp.CpIndex[7] = CpEntry{Type: Utf8, Slot: 3}
	rcf := &RawClassFile{
		CP:     cp,
		Fields: []RawField{{NameIndex: 2, DescIndex: 7}},
	}
	if err := validateFieldsAndMethods(rcf); err != nil {
		t.Fatalf("valid int field should pass: %v", err)
	}
}

func TestValidateFieldsAndMethodsGoodMethod(t *testing.T) {
	rcf := &RawClassFile{
		CP:      newTestCPool(),
		Methods: []RawMethod{{NameIndex: 2, DescIndex: 3}},
	}
	if err := validateFieldsAndMethods(rcf); err != nil {
		t.Fatalf("valid method foo()V should pass: %v", err)
	}
}

func TestValidateFieldsAndMethodsInitAllowed(t *testing.T) {
	cp := newTestCPool()
	cp.Utf8Refs = append(cp.Utf8Refs, "<init>")
	cp.CpIndex[7] = CpEntry{Type: Utf8, Slot: 3}
	rcf := &RawClassFile{
		CP:      cp,
		Methods: []RawMethod{{NameIndex: 7, DescIndex: 3}},
	}
	if err := validateFieldsAndMethods(rcf); err != nil {
		t.Fatalf("<init> is a reserved but legal method name: %v", err)
	}
}

func TestIsValidUnqualifiedName(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"", false},
		{"foo", true},
		{"foo.bar", false},
		{"foo;bar", false},
		{"[foo", false},
		{"foo/bar", false},
		{"<clinit>", true},
	}
	for _, c := range cases {
		if got := isValidUnqualifiedName(c.name); got != c.ok {
			t.Errorf("isValidUnqualifiedName(%q) = %v, want %v", c.name, got, c.ok)
		}
	}
}
