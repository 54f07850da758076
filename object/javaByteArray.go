/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"strings"
	"unicode"

	"jacobin/types"
)

// ByteArrayFieldType is the element type of a java.lang.String's backing
// byte array, and of byte[] generally (JVMS array element type code 'B').
var ByteArrayFieldType = types.FieldType{Kind: types.KindByte}

// GoStringFromByteArray renders a byte array's elements as a Go string,
// treating each element's low 8 bits as a Latin-1/ASCII code unit -- the
// same assumption the original Jacobin byte-array helpers made.
func GoStringFromByteArray(a *Array) string {
	var sb strings.Builder
	for _, v := range a.Elements {
		sb.WriteByte(byte(v.Int()))
	}
	return sb.String()
}

// ByteArrayFromGoString allocates a new Array whose elements are s's
// bytes, one element per byte (not per rune): this matches Java's
// String(byte[]) platform-default-charset constructor for the common
// ASCII/Latin-1 case this interpreter targets.
func ByteArrayFromGoString(s string) *Array {
	a := NewArray(ByteArrayFieldType, len(s))
	for i := 0; i < len(s); i++ {
		a.Elements[i] = types.IntVal(int32(s[i]))
	}
	return a
}

func ByteArrayFromGoBytes(b []byte) *Array {
	a := NewArray(ByteArrayFieldType, len(b))
	for i, v := range b {
		a.Elements[i] = types.IntVal(int32(v))
	}
	return a
}

func GoBytesFromByteArray(a *Array) []byte {
	b := make([]byte, len(a.Elements))
	for i, v := range a.Elements {
		b[i] = byte(v.Int())
	}
	return b
}

func ByteArrayEquals(a1, a2 *Array) bool {
	if a1 == nil || a2 == nil {
		return a1 == a2
	}
	if len(a1.Elements) != len(a2.Elements) {
		return false
	}
	for i, v := range a1.Elements {
		if v.Int() != a2.Elements[i].Int() {
			return false
		}
	}
	return true
}

func ByteArrayEqualsIgnoreCase(a1, a2 *Array) bool {
	if a1 == nil || a2 == nil {
		return a1 == a2
	}
	if len(a1.Elements) != len(a2.Elements) {
		return false
	}
	for i, v := range a1.Elements {
		if unicode.ToLower(rune(v.Int())) != unicode.ToLower(rune(a2.Elements[i].Int())) {
			return false
		}
	}
	return true
}
