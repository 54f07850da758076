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

// execNewOp implements new, checkcast, and instanceof, JVMS §6.5.
func execNewOp(th *thread.Thread, f *frames.Frame, op int) error {
	index := readU16(f)
	rc, err := classloader.ResolveConst(f.Method.Owner, uint16(index))
	if err != nil {
		return javaExceptionFor(err)
	}

	switch op {
	case NEW:
		if err := classloader.EnsureInitialized(rc.Class, f.ThreadID); err != nil {
			return javaExceptionFor(err)
		}
		f.Push(heap.AllocateObject(rc.Class))
		return nil

	case CHECKCAST:
		ref := f.Pop()
		if ref.IsNull() {
			f.Push(ref)
			return nil
		}
		if !isInstanceOfResolved(ref, rc) {
			return throwBuiltin(excNames.ClassCastException,
				actualTypeName(ref)+" cannot be cast to "+rc.ClassName)
		}
		f.Push(ref)
		return nil

	case INSTANCEOF:
		ref := f.Pop()
		if ref.IsNull() {
			f.Push(types.IntVal(0))
			return nil
		}
		if isInstanceOfResolved(ref, rc) {
			f.Push(types.IntVal(1))
		} else {
			f.Push(types.IntVal(0))
		}
		return nil
	}
	return nil
}

// isInstanceOfResolved implements checkcast/instanceof's subtype test
// (JVMS §6.5) against a resolved CONSTANT_Class operand, which may name
// either an ordinary class/interface (rc.Class) or an array type
// (rc.ArrayType), against a reference that may denote either an Object or
// an Array.
func isInstanceOfResolved(ref types.Value, rc *classloader.ResolvedConst) bool {
	if heap.IsArray(ref) {
		actualElem := heap.GetArray(ref).ElemType
		if rc.ArrayType != nil {
			return classloader.IsAssignableFieldType(actualElem, *rc.ArrayType.Component)
		}
		// Arrays are subtypes of Object only (Cloneable/Serializable are
		// not modeled as marker interfaces here).
		return rc.Class != nil && rc.Class.Name == types.ObjectClassName
	}
	if rc.ArrayType != nil {
		return false // an ordinary object is never an instance of an array type
	}
	return classloader.IsInstanceOf(heap.GetObject(ref).Class, rc.Class)
}

// actualTypeName names ref's runtime type for a ClassCastException message.
func actualTypeName(ref types.Value) string {
	if heap.IsArray(ref) {
		elem := heap.GetArray(ref).ElemType
		return types.FieldType{Kind: types.KindArray, Component: &elem}.String()
	}
	return heap.GetObject(ref).Class.Name
}

// classMirrorValue returns (allocating once, lazily, on the class's cached
// mirror slot) the java.lang.Class instance reifying c, for ldc of a
// CONSTANT_Class entry, per JVMS §5.1's Class-object-per-type identity
// rule. A minimal mirror (no java/lang/Class on the classpath) degrades to
// a null reference rather than failing ldc outright.
func classMirrorValue(c *classloader.Class) types.Value {
	if h, ok := c.CachedMirrorHandle(); ok {
		return types.RefVal(h)
	}
	mirrorClass, err := classloader.Load(types.ClassClassName)
	if err != nil {
		return types.NullReference
	}
	ref := heap.AllocateObject(mirrorClass)
	obj := heap.GetObject(ref)
	obj.MirrorOf = c
	c.SetCachedMirrorHandle(ref.Reference())
	h, _ := c.CachedMirrorHandle()
	return types.RefVal(h)
}
