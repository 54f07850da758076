/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"jacobin/classloader"
	"jacobin/heap"
	"jacobin/object"
	"jacobin/types"
)

// Load_Lang_StringBuilder registers java/lang/StringBuilder's native
// methods. Unlike String, StringBuilder is mutable, so its backing byte[]
// field is replaced wholesale on every append rather than reinterned.
func Load_Lang_StringBuilder() {
	MethodSignatures["java/lang/StringBuilder.<init>()V"] =
		GMeth{ParamSlots: 1, GFunction: sbInit}

	MethodSignatures["java/lang/StringBuilder.<init>(Ljava/lang/String;)V"] =
		GMeth{ParamSlots: 2, GFunction: sbInitFromString}

	MethodSignatures["java/lang/StringBuilder.append(Ljava/lang/String;)Ljava/lang/StringBuilder;"] =
		GMeth{ParamSlots: 2, GFunction: sbAppendString}

	MethodSignatures["java/lang/StringBuilder.append(I)Ljava/lang/StringBuilder;"] =
		GMeth{ParamSlots: 2, GFunction: sbAppendInt}

	MethodSignatures["java/lang/StringBuilder.append(Z)Ljava/lang/StringBuilder;"] =
		GMeth{ParamSlots: 2, GFunction: sbAppendBool}

	MethodSignatures["java/lang/StringBuilder.append(C)Ljava/lang/StringBuilder;"] =
		GMeth{ParamSlots: 2, GFunction: sbAppendChar}

	MethodSignatures["java/lang/StringBuilder.toString()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: sbToString}
}

func sbSetBuf(ref types.Value, s string) {
	obj := heap.GetObject(ref)
	arrRef := heap.AllocateArray(object.ByteArrayFieldType, len(s))
	copy(heap.GetArray(arrRef).Elements, object.ByteArrayFromGoString(s).Elements)
	obj.SetField("value", arrRef)
}

func sbBuf(ref types.Value) string {
	obj := heap.GetObject(ref)
	v, ok := obj.GetField("value")
	if !ok || v.IsNull() {
		return ""
	}
	return object.GoStringFromByteArray(heap.GetArray(v))
}

func sbInit(args []types.Value) (types.Value, error) {
	sbSetBuf(args[0], "")
	return types.Value{}, nil
}

func sbInitFromString(args []types.Value) (types.Value, error) {
	sbSetBuf(args[0], goString(args[1]))
	return types.Value{}, nil
}

func sbAppendString(args []types.Value) (types.Value, error) {
	s := ""
	if !args[1].IsNull() {
		s = goString(args[1])
	} else {
		s = "null"
	}
	sbSetBuf(args[0], sbBuf(args[0])+s)
	return args[0], nil
}

func sbAppendInt(args []types.Value) (types.Value, error) {
	sbSetBuf(args[0], sbBuf(args[0])+intToString(args[1].Int()))
	return args[0], nil
}

func sbAppendBool(args []types.Value) (types.Value, error) {
	s := "false"
	if args[1].Int() != 0 {
		s = "true"
	}
	sbSetBuf(args[0], sbBuf(args[0])+s)
	return args[0], nil
}

func sbAppendChar(args []types.Value) (types.Value, error) {
	sbSetBuf(args[0], sbBuf(args[0])+string(rune(args[1].Int())))
	return args[0], nil
}

func sbToString(args []types.Value) (types.Value, error) {
	return heap.InternString(sbBuf(args[0])), nil
}

// ensureStringBuilderClass is a fallback used only by tests that need a
// StringBuilder instance without a real class file: it builds the minimal
// single-field Class shape StringBuilder's natives above assume.
func ensureStringBuilderClass() *classloader.Class {
	if c := classloader.GetLoadedClass(types.StringBuilderClassName); c != nil {
		return c
	}
	c := &classloader.Class{Name: types.StringBuilderClassName}
	c.FieldLayout = []*classloader.Field{
		{Name: "value", FieldType: object.ByteArrayFieldType},
	}
	classloader.RegisterClassForTest(c)
	return c
}
