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
)

func isFieldOp(op int) bool {
	switch op {
	case GETSTATIC, PUTSTATIC, GETFIELD, PUTFIELD:
		return true
	}
	return false
}

// execFieldOp implements the field-access family, JVMS §6.5 getstatic
// through putfield. getstatic/putstatic trigger initialization of the
// declaring class (JVMS §5.5) before touching its static storage.
func execFieldOp(th *thread.Thread, f *frames.Frame, op int) error {
	index := readU16(f)
	rc, err := classloader.ResolveConst(f.Method.Owner, uint16(index))
	if err != nil {
		return javaExceptionFor(err)
	}

	owner, fld, err := classloader.ResolveFieldRecursive(rc.Class, rc.MemberName, rc.Descriptor)
	if err != nil {
		return javaExceptionFor(err)
	}

	switch op {
	case GETSTATIC:
		if err := classloader.EnsureInitialized(owner, f.ThreadID); err != nil {
			return javaExceptionFor(err)
		}
		f.Push(owner.GetStatic(fld.StaticSlot))
		return nil
	case PUTSTATIC:
		if err := classloader.EnsureInitialized(owner, f.ThreadID); err != nil {
			return javaExceptionFor(err)
		}
		owner.PutStatic(fld.StaticSlot, f.Pop())
		return nil
	case GETFIELD:
		v := f.Pop()
		if v.IsNull() {
			return throwBuiltin(excNames.NullPointerException, "")
		}
		obj := heap.GetObject(v)
		val, _ := obj.GetField(fld.Name)
		f.Push(val)
		return nil
	case PUTFIELD:
		val := f.Pop()
		ref := f.Pop()
		if ref.IsNull() {
			return throwBuiltin(excNames.NullPointerException, "")
		}
		obj := heap.GetObject(ref)
		obj.SetField(fld.Name, val)
		return nil
	}
	return nil
}
