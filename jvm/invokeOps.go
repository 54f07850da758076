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

func isInvokeOp(op int) bool {
	switch op {
	case INVOKEVIRTUAL, INVOKESPECIAL, INVOKESTATIC, INVOKEINTERFACE, INVOKEDYNAMIC:
		return true
	}
	return false
}

// execInvokeOp implements the invocation family, JVMS §6.5 invokevirtual
// through invokedynamic: invokestatic
// and invokespecial bind directly to the resolved method; invokevirtual
// and invokeinterface redispatch against the receiver's actual runtime
// class (single dynamic dispatch, no overload resolution -- the
// descriptor already disambiguates).
func execInvokeOp(th *thread.Thread, f *frames.Frame, op int) error {
	index := readU16(f)
	if op == INVOKEINTERFACE {
		readU8(f) // count, historical, unused by this interpreter
		readU8(f) // reserved zero byte
	}

	if op == INVOKEDYNAMIC {
		readU8(f)
		readU8(f)
		return throwBuiltin(excNames.UnsupportedOperationException, "invokedynamic is not supported")
	}

	rc, err := classloader.ResolveConst(f.Method.Owner, uint16(index))
	if err != nil {
		return javaExceptionFor(err)
	}

	mt, err := types.ParseMethodDescriptor(rc.Descriptor)
	if err != nil {
		return javaExceptionFor(err)
	}

	// Arguments were pushed left-to-right, so popping unwinds them in
	// reverse; write into args back-to-front to restore call order.
	args := make([]types.Value, len(mt.Params))
	for i := len(mt.Params) - 1; i >= 0; i-- {
		args[i] = f.Pop()
	}

	if op == INVOKESTATIC {
		m, err := classloader.ResolveMethodRecursive(rc.Class, rc.MemberName, rc.Descriptor)
		if err != nil {
			return javaExceptionFor(err)
		}
		ret, err := invokeMethod(th, m, args)
		if err != nil {
			return err
		}
		pushNonVoid(f, mt, ret)
		return nil
	}

	receiver := f.Pop()
	if receiver.IsNull() {
		return throwBuiltin(excNames.NullPointerException, "")
	}

	var m *classloader.Method
	if op == INVOKESPECIAL {
		m, err = classloader.ResolveMethodRecursive(rc.Class, rc.MemberName, rc.Descriptor)
	} else {
		actual := heap.GetObject(receiver).Class
		m, err = classloader.ResolveMethodRecursive(actual, rc.MemberName, rc.Descriptor)
	}
	if err != nil {
		return javaExceptionFor(err)
	}

	callArgs := append([]types.Value{receiver}, args...)
	ret, err := invokeMethod(th, m, callArgs)
	if err != nil {
		return err
	}
	pushNonVoid(f, mt, ret)
	return nil
}

func pushNonVoid(f *frames.Frame, mt types.MethodType, ret types.Value) {
	if mt.Returns.Kind != types.KindVoid {
		f.Push(ret)
	}
}
