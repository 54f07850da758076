/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/classloader"
	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/heap"
	"jacobin/thread"
	"jacobin/types"
)

func isArrayOp(op int) bool {
	switch op {
	case IALOAD, LALOAD, FALOAD, DALOAD, AALOAD, BALOAD, CALOAD, SALOAD,
		IASTORE, LASTORE, FASTORE, DASTORE, AASTORE, BASTORE, CASTORE, SASTORE,
		ARRAYLENGTH, NEWARRAY, ANEWARRAY, MULTIANEWARRAY:
		return true
	}
	return false
}

// execArrayOp implements the array-access and array-allocation families,
// JVMS §6.5 iaload through sastore, arraylength, newarray, anewarray, and
// multianewarray.
func execArrayOp(th *thread.Thread, f *frames.Frame, op int) error {
	switch op {
	case IALOAD, LALOAD, FALOAD, DALOAD, AALOAD, BALOAD, CALOAD, SALOAD:
		idx := f.Pop().Int()
		ref := f.Pop()
		if ref.IsNull() {
			return throwBuiltin(excNames.NullPointerException, "")
		}
		arr := heap.GetArray(ref)
		v, ok := arr.Get(int(idx))
		if !ok {
			return throwBuiltin(excNames.ArrayIndexOutOfBoundsException, "")
		}
		f.Push(v)
		return nil

	case IASTORE, LASTORE, FASTORE, DASTORE, AASTORE, BASTORE, CASTORE, SASTORE:
		val := f.Pop()
		idx := f.Pop().Int()
		ref := f.Pop()
		if ref.IsNull() {
			return throwBuiltin(excNames.NullPointerException, "")
		}
		arr := heap.GetArray(ref)
		if !arr.Set(int(idx), val) {
			return throwBuiltin(excNames.ArrayIndexOutOfBoundsException, "")
		}
		return nil

	case ARRAYLENGTH:
		ref := f.Pop()
		if ref.IsNull() {
			return throwBuiltin(excNames.NullPointerException, "")
		}
		f.Push(types.IntVal(int32(heap.GetArray(ref).Length())))
		return nil

	case NEWARRAY:
		atype := readU8(f)
		n := f.Pop().Int()
		if n < 0 {
			return throwBuiltin(excNames.NegativeArraySizeException, "")
		}
		ft := primitiveArrayType(atype)
		f.Push(heap.AllocateArray(ft, int(n)))
		return nil

	case ANEWARRAY:
		index := readU16(f)
		rc, err := classloader.ResolveConst(f.Method.Owner, uint16(index))
		if err != nil {
			return javaExceptionFor(err)
		}
		n := f.Pop().Int()
		if n < 0 {
			return throwBuiltin(excNames.NegativeArraySizeException, "")
		}
		ft := componentFieldType(rc)
		f.Push(heap.AllocateArray(ft, int(n)))
		return nil

	case MULTIANEWARRAY:
		index := readU16(f)
		dims := readU8(f)
		rc, err := classloader.ResolveConst(f.Method.Owner, uint16(index))
		if err != nil {
			return javaExceptionFor(err)
		}
		counts := make([]int32, dims)
		for i := dims - 1; i >= 0; i-- {
			counts[i] = f.Pop().Int()
		}
		ft := componentFieldType(rc)
		ref, err := allocateMultiArray(ft, counts)
		if err != nil {
			return err
		}
		f.Push(ref)
		return nil
	}
	return nil
}

// componentFieldType builds the component type named by an anewarray/
// multianewarray CONSTANT_Class operand: an ordinary class/interface name,
// or (when the operand is itself an array descriptor, e.g. "anewarray [I"
// building "[[I") the synthetic array type resolve.go already parsed.
func componentFieldType(rc *classloader.ResolvedConst) types.FieldType {
	if rc.ArrayType != nil {
		return *rc.ArrayType
	}
	return types.FieldType{Kind: types.KindClass, ClassName: rc.ClassName}
}

func allocateMultiArray(ft types.FieldType, counts []int32) (types.Value, error) {
	if counts[0] < 0 {
		return types.Value{}, throwBuiltin(excNames.NegativeArraySizeException, "")
	}
	n := int(counts[0])
	var elemType types.FieldType
	if ft.Kind == types.KindArray {
		elemType = *ft.Component
	} else {
		elemType = ft
	}
	ref := heap.AllocateArray(elemType, n)
	if len(counts) == 1 {
		return ref, nil
	}
	arr := heap.GetArray(ref)
	for i := 0; i < n; i++ {
		sub, err := allocateMultiArray(elemType, counts[1:])
		if err != nil {
			return types.Value{}, err
		}
		arr.Set(i, sub)
	}
	return ref, nil
}

func primitiveArrayType(atype int) types.FieldType {
	switch atype {
	case AT_BOOLEAN:
		return types.FieldType{Kind: types.KindBoolean}
	case AT_CHAR:
		return types.FieldType{Kind: types.KindChar}
	case AT_FLOAT:
		return types.FieldType{Kind: types.KindFloat}
	case AT_DOUBLE:
		return types.FieldType{Kind: types.KindDouble}
	case AT_BYTE:
		return types.FieldType{Kind: types.KindByte}
	case AT_SHORT:
		return types.FieldType{Kind: types.KindShort}
	case AT_INT:
		return types.FieldType{Kind: types.KindInt}
	case AT_LONG:
		return types.FieldType{Kind: types.KindLong}
	}
	return types.FieldType{Kind: types.KindInt}
}
