/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"jacobin/excNames"
	"jacobin/heap"
	"jacobin/object"
	"jacobin/types"
)

// Load_Lang_String registers java/lang/String's native methods. String's
// backing storage is a byte[] field named "value" (per heap.InternString),
// so each of these unwraps that field, does the Go-string-level work, and
// (for String-returning methods) re-interns the result.
func Load_Lang_String() {
	MethodSignatures["java/lang/String.<clinit>()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/String.length()I"] =
		GMeth{ParamSlots: 1, GFunction: stringLength}

	MethodSignatures["java/lang/String.isEmpty()Z"] =
		GMeth{ParamSlots: 1, GFunction: stringIsEmpty}

	MethodSignatures["java/lang/String.charAt(I)C"] =
		GMeth{ParamSlots: 2, GFunction: stringCharAt}

	MethodSignatures["java/lang/String.equals(Ljava/lang/Object;)Z"] =
		GMeth{ParamSlots: 2, GFunction: stringEquals}

	MethodSignatures["java/lang/String.hashCode()I"] =
		GMeth{ParamSlots: 1, GFunction: stringHashCode}

	MethodSignatures["java/lang/String.concat(Ljava/lang/String;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 2, GFunction: stringConcat}

	MethodSignatures["java/lang/String.toString()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringToString}

	MethodSignatures["java/lang/String.intern()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringIntern}

	MethodSignatures["java/lang/String.valueOf(I)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringValueOfInt}

	MethodSignatures["java/lang/String.valueOf(Z)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringValueOfBool}
}

func goString(ref types.Value) string {
	obj := heap.GetObject(ref)
	v, _ := obj.GetField("value")
	return object.GoStringFromByteArray(heap.GetArray(v))
}

func stringLength(args []types.Value) (types.Value, error) {
	return types.IntVal(int32(len(goString(args[0])))), nil
}

func stringIsEmpty(args []types.Value) (types.Value, error) {
	if len(goString(args[0])) == 0 {
		return types.IntVal(1), nil
	}
	return types.IntVal(0), nil
}

func stringCharAt(args []types.Value) (types.Value, error) {
	s := goString(args[0])
	idx := int(args[1].Int())
	if idx < 0 || idx >= len(s) {
		return types.Value{}, &excStringIndexOOB{idx}
	}
	return types.IntVal(int32(s[idx])), nil
}

func stringEquals(args []types.Value) (types.Value, error) {
	other := args[1]
	if other.IsNull() {
		return types.IntVal(0), nil
	}
	if goString(args[0]) == goString(other) {
		return types.IntVal(1), nil
	}
	return types.IntVal(0), nil
}

func stringHashCode(args []types.Value) (types.Value, error) {
	return types.IntVal(javaStringHash(goString(args[0]))), nil
}

// javaStringHash reproduces java.lang.String.hashCode()'s
// s[0]*31^(n-1) + ... + s[n-1] polynomial, per JVMS-adjacent java.lang
// contract (not part of the class file format itself, but relied on by
// any program that hashes strings).
func javaStringHash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}
	return h
}

func stringConcat(args []types.Value) (types.Value, error) {
	return heap.InternString(goString(args[0]) + goString(args[1])), nil
}

func stringToString(args []types.Value) (types.Value, error) { return args[0], nil }

func stringIntern(args []types.Value) (types.Value, error) {
	return heap.InternString(goString(args[0])), nil
}

func stringValueOfInt(args []types.Value) (types.Value, error) {
	return heap.InternString(intToString(args[0].Int())), nil
}

func stringValueOfBool(args []types.Value) (types.Value, error) {
	if args[0].Int() != 0 {
		return heap.InternString("true"), nil
	}
	return heap.InternString("false"), nil
}

func intToString(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	var buf [12]byte
	i := len(buf)
	n := int64(v)
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type excStringIndexOOB struct{ idx int }

func (e *excStringIndexOOB) Error() string { return "StringIndexOutOfBoundsException" }

func (e *excStringIndexOOB) ExcType() excNames.ExceptionType {
	return excNames.IndexOutOfBoundsException
}
