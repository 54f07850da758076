/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"strings"

	"jacobin/classloader"
	"jacobin/heap"
	"jacobin/types"
)

// Load_Lang_Class registers java/lang/Class's native methods. A Class
// instance never carries Java-visible fields of its own: every method
// here reaches into the mirrored classloader.Class via object.MirrorOf,
// set once by jvm/newOps.go's classMirrorValue or by Object.getClass().
func Load_Lang_Class() {
	MethodSignatures["java/lang/Class.getName()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: classGetName}

	MethodSignatures["java/lang/Class.getSimpleName()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: classGetSimpleName}

	MethodSignatures["java/lang/Class.toString()Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: classToString}

	MethodSignatures["java/lang/Class.isInstance(Ljava/lang/Object;)Z"] =
		GMeth{ParamSlots: 2, GFunction: classIsInstance}

	MethodSignatures["java/lang/Class.isInterface()Z"] =
		GMeth{ParamSlots: 1, GFunction: classIsInterface}

	MethodSignatures["java/lang/Class.equals(Ljava/lang/Object;)Z"] =
		GMeth{ParamSlots: 2, GFunction: objectEquals}
}

func mirrorOf(ref types.Value) *classloader.Class {
	return heap.GetObject(ref).MirrorOf
}

// classGetName renders the binary name with dots in place of slashes, per
// java.lang.Class.getName()'s documented format for non-array types.
func classGetName(args []types.Value) (types.Value, error) {
	name := strings.ReplaceAll(mirrorOf(args[0]).Name, "/", ".")
	return heap.InternString(name), nil
}

func classGetSimpleName(args []types.Value) (types.Value, error) {
	name := mirrorOf(args[0]).Name
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return heap.InternString(name), nil
}

func classToString(args []types.Value) (types.Value, error) {
	c := mirrorOf(args[0])
	kind := "class "
	if c.IsInterface() {
		kind = "interface "
	}
	return heap.InternString(kind + strings.ReplaceAll(c.Name, "/", ".")), nil
}

// classIsInstance implements Class.isInstance, the reflective mirror of
// the instanceof opcode (jvm/newOps.go's INSTANCEOF case).
func classIsInstance(args []types.Value) (types.Value, error) {
	target := mirrorOf(args[0])
	obj := args[1]
	if obj.IsNull() {
		return types.IntVal(0), nil
	}
	actual := heap.GetObject(obj).Class
	if classloader.IsInstanceOf(actual, target) {
		return types.IntVal(1), nil
	}
	return types.IntVal(0), nil
}

func classIsInterface(args []types.Value) (types.Value, error) {
	if mirrorOf(args[0]).IsInterface() {
		return types.IntVal(1), nil
	}
	return types.IntVal(0), nil
}
