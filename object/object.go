/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package object defines the in-memory layout of heap-resident values:
// ordinary objects, arrays, and the java.lang.Class mirror. The heap
// package owns allocation/identity-hash/monitor bookkeeping; this package
// owns the shape of what gets allocated.
package object

import (
	"jacobin/classloader"
	"jacobin/types"
)

// Object is one instance of a class: a flat slot vector parallel to its
// class's FieldLayout (inherited fields first, then the class's own, in
// declaration order).
type Object struct {
	Class *classloader.Class
	Slots []types.Value

	// MirrorOf is non-nil only for instances of java.lang.Class: it points
	// at the runtime Class this particular object reifies.
	MirrorOf *classloader.Class

	hash       uint32
	monitorIdx int32 // -1 until the object's monitor is inflated
}

// NewObject allocates the slot vector for an instance of class, zero-
// initializing every field per JVMS §2.3/§2.4 default values.
func NewObject(class *classloader.Class) *Object {
	o := &Object{Class: class, monitorIdx: -1}
	o.Slots = make([]types.Value, len(class.FieldLayout))
	for i, f := range class.FieldLayout {
		o.Slots[i] = ZeroValue(f.FieldType)
	}
	return o
}

// ZeroValue returns the JVMS §2.3/§2.4 default value for a field type.
func ZeroValue(ft types.FieldType) types.Value {
	switch ft.Kind {
	case types.KindLong:
		return types.LongVal(0)
	case types.KindDouble:
		return types.DoubleVal(0)
	case types.KindFloat:
		return types.FloatVal(0)
	case types.KindClass, types.KindArray:
		return types.NullReference
	default:
		return types.IntVal(0)
	}
}

// FieldIndex returns the slot index of an (inherited or own) instance
// field by name, or -1 if the class hierarchy declares no such field.
func (o *Object) FieldIndex(name string) int {
	for i, f := range o.Class.FieldLayout {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (o *Object) GetField(name string) (types.Value, bool) {
	i := o.FieldIndex(name)
	if i < 0 {
		return types.Value{}, false
	}
	return o.Slots[i], true
}

func (o *Object) SetField(name string, v types.Value) bool {
	i := o.FieldIndex(name)
	if i < 0 {
		return false
	}
	o.Slots[i] = v
	return true
}

// IdentityHash returns this object's identity hash, which the heap mints
// and installs (via InstallHash) when it allocates the object.
func (o *Object) IdentityHash() uint32 { return o.hash }

// InstallHash is called by the heap package once per object, at
// allocation, to record its identity hash.
func (o *Object) InstallHash(h uint32) { o.hash = h }

func (o *Object) MonitorIndex() int32        { return o.monitorIdx }
func (o *Object) SetMonitorIndex(idx int32)  { o.monitorIdx = idx }
