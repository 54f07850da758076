/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "testing"

func u2bytes(v int) []byte { return []byte{byte(v >> 8), byte(v)} }
func u4bytes(v int64) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func appendAll(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// buildMinimalObjectClass encodes the smallest legal class file: a
// no-fields, no-methods java/lang/Object with CP entries #1 (Utf8
// "java/lang/Object") and #2 (ClassRef -> #1).
func buildMinimalObjectClass() []byte {
	utf8 := appendAll([]byte{Utf8}, u2bytes(len("java/lang/Object")), []byte("java/lang/Object"))
	classRef := appendAll([]byte{ClassRef}, u2bytes(1))

	return appendAll(
		u4bytes(magicNumber),
		u2bytes(0),  // minor
		u2bytes(52), // major
		u2bytes(3),  // constant_pool_count (entries 1,2 -> count 3)
		utf8,
		classRef,
		u2bytes(0x0021), // access_flags: ACC_PUBLIC | ACC_SUPER
		u2bytes(2),      // this_class
		u2bytes(0),      // super_class (0 => only legal for Object)
		u2bytes(0),      // interfaces_count
		u2bytes(0),      // fields_count
		u2bytes(0),      // methods_count
		u2bytes(0),      // attributes_count
	)
}

func TestParseClassFileMinimal(t *testing.T) {
	raw := buildMinimalObjectClass()
	rcf, err := parseClassFile(raw)
	if err != nil {
		t.Fatalf("parseClassFile() error = %v", err)
	}
	if rcf.ThisClassName != "java/lang/Object" {
		t.Errorf("ThisClassName = %q, want java/lang/Object", rcf.ThisClassName)
	}
	if rcf.SuperClassName != "" {
		t.Errorf("SuperClassName = %q, want empty for Object", rcf.SuperClassName)
	}
	if rcf.MajorVersion != 52 {
		t.Errorf("MajorVersion = %d, want 52", rcf.MajorVersion)
	}
}

func TestParseClassFileBadMagic(t *testing.T) {
	raw := buildMinimalObjectClass()
	raw[0] = 0x00
	if _, err := parseClassFile(raw); err == nil {
		t.Fatalf("expected an error for a corrupted magic number")
	}
}

func TestParseClassFileTruncated(t *testing.T) {
	raw := buildMinimalObjectClass()
	if _, err := parseClassFile(raw[:10]); err == nil {
		t.Fatalf("expected an error for a truncated class file")
	}
}

func TestParseClassFileUnsupportedVersion(t *testing.T) {
	raw := buildMinimalObjectClass()
	raw[7] = 99 // major version byte
	if _, err := parseClassFile(raw); err == nil {
		t.Fatalf("expected an error for a major version beyond 52")
	}
}

func TestParseClassFileNonObjectWithZeroSuper(t *testing.T) {
	raw2 := buildMinimalObjectClass()
	// the Utf8 entry's string bytes start after magic+minor+major+cp_count (10 bytes)
	// plus the entry's own tag(1)+length(2) header.
	utf8Start := 4 + 2 + 2 + 2
	raw2[utf8Start+3] = 'X' // "java/lang/Object" -> "Xava/lang/Object"
	if _, err := parseClassFile(raw2); err == nil {
		t.Fatalf("expected an error: a non-Object class must not have a zero super_class")
	}
}

func TestByteReaderBounds(t *testing.T) {
	r := &byteReader{data: []byte{1, 2, 3, 4}}
	if _, err := r.u4(); err != nil {
		t.Fatalf("u4() on exactly 4 bytes should succeed: %v", err)
	}
	if _, err := r.u1(); err == nil {
		t.Fatalf("u1() past the end of data should fail")
	}
}

func TestParseConstantPoolLongOccupiesTwoSlots(t *testing.T) {
	body := appendAll(
		u2bytes(3), // constant_pool_count: index 1 is the Long, index 2 is its implicit filler
		[]byte{LongConst},
		u4bytes(0),
		u4bytes(42),
	)
	r := &byteReader{data: body}
	cp, err := parseConstantPool(r)
	if err != nil {
		t.Fatalf("parseConstantPool() error = %v", err)
	}
	if len(cp.CpIndex) != 3 {
		t.Fatalf("CpIndex length = %d, want 3", len(cp.CpIndex))
	}
	if cp.CpIndex[1].Type != LongConst {
		t.Errorf("CpIndex[1].Type = %d, want LongConst", cp.CpIndex[1].Type)
	}
	if cp.CpIndex[2].Type != 0 {
		t.Errorf("CpIndex[2] (the Long's filler slot) should be untouched (Type 0)")
	}
	if cp.LongConsts[0] != 42 {
		t.Errorf("LongConsts[0] = %d, want 42", cp.LongConsts[0])
	}
}
