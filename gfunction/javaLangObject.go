/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"strconv"

	"jacobin/classloader"
	"jacobin/heap"
	"jacobin/types"
)

// Load_Lang_Object registers java/lang/Object's native methods: the
// identity hash, class mirror lookup, and the default reference-equality/
// toString behavior every other class inherits unless it overrides them.
func Load_Lang_Object() {
	MethodSignatures["java/lang/Object.<init>()V"] =
		GMeth{ParamSlots: 1, GFunction: justReturn}

	MethodSignatures["java/lang/Object.registerNatives()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/Object.hashCode()I"] =
		GMeth{ParamSlots: 1, GFunction: objectHashCode}

	MethodSignatures["java/lang/Object.equals(Ljava/lang/Object;)Z"] =
		GMeth{ParamSlots: 2, GFunction: objectEquals}

	MethodSignatures["java/lang/Object.toString()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: objectToString}

	MethodSignatures["java/lang/Object.getClass()Ljava/lang/Class;"] =
		GMeth{ParamSlots: 1, GFunction: objectGetClass}
}

func justReturn(_ []types.Value) (types.Value, error) { return types.Value{}, nil }

// objectHashCode returns the receiver's identity hash, backing
// Object.hashCode()'s default contract.
func objectHashCode(args []types.Value) (types.Value, error) {
	return types.IntVal(heap.IdentityHash(args[0])), nil
}

// objectEquals implements Object's default reference-equality behavior.
func objectEquals(args []types.Value) (types.Value, error) {
	a, b := args[0], args[1]
	if a.Reference() == b.Reference() {
		return types.IntVal(1), nil
	}
	return types.IntVal(0), nil
}

// objectToString renders the JVMS default "ClassName@hexHashCode" form.
func objectToString(args []types.Value) (types.Value, error) {
	ref := args[0]
	obj := heap.GetObject(ref)
	h := heap.IdentityHash(ref)
	s := obj.Class.Name + "@" + strconv.FormatUint(uint64(uint32(h)), 16)
	return heap.InternString(s), nil
}

// objectGetClass returns the java.lang.Class mirror for the receiver's
// runtime class, minting one the first time this class is asked for, per
// JVMS §5.1's one-Class-object-per-type identity rule.
func objectGetClass(args []types.Value) (types.Value, error) {
	obj := heap.GetObject(args[0])
	return classMirrorFor(obj.Class), nil
}

// classMirrorFor allocates (once per class, cached on the Class itself) the
// java.lang.Class instance reifying c. jvm/newOps.go's classMirrorValue
// does the equivalent work for ldc of a CONSTANT_Class entry; this is the
// same cache so Object.getClass() and a class literal compare equal.
func classMirrorFor(c *classloader.Class) types.Value {
	if h, ok := c.CachedMirrorHandle(); ok {
		return types.RefVal(h)
	}
	mirrorClass, err := classloader.Load(types.ClassClassName)
	if err != nil {
		return types.NullReference
	}
	ref := heap.AllocateObject(mirrorClass)
	heap.GetObject(ref).MirrorOf = c
	c.SetCachedMirrorHandle(ref.Reference())
	h, _ := c.CachedMirrorHandle()
	return types.RefVal(h)
}
