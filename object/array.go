/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import "jacobin/types"

// Array is a fixed-length, homogeneously-typed heap value. Elements are
// stored as types.Value uniformly (rather than a
// specialized Go slice per primitive kind) because Value already avoids
// boxing -- a dedicated []int32/[]float64/etc. representation would save
// a few bytes per element at the cost of a large type-switch at every
// array access, which the bytecode interpreter's hot loads/stores
// (*aload/*astore) cannot afford.
type Array struct {
	ElemType types.FieldType
	Elements []types.Value

	hash       uint32
	monitorIdx int32
}

// NewArray allocates a zero-initialized array of n elements of type
// elemType (JVMS §6.5 newarray/anewarray/multianewarray).
func NewArray(elemType types.FieldType, n int) *Array {
	a := &Array{ElemType: elemType, monitorIdx: -1}
	a.Elements = make([]types.Value, n)
	zero := ZeroValue(elemType)
	for i := range a.Elements {
		a.Elements[i] = zero
	}
	return a
}

func (a *Array) Length() int { return len(a.Elements) }

func (a *Array) Get(i int) (types.Value, bool) {
	if i < 0 || i >= len(a.Elements) {
		return types.Value{}, false
	}
	return a.Elements[i], true
}

func (a *Array) Set(i int, v types.Value) bool {
	if i < 0 || i >= len(a.Elements) {
		return false
	}
	a.Elements[i] = v
	return true
}

func (a *Array) IdentityHash() uint32       { return a.hash }
func (a *Array) InstallHash(h uint32)       { a.hash = h }
func (a *Array) MonitorIndex() int32        { return a.monitorIdx }
func (a *Array) SetMonitorIndex(idx int32)  { a.monitorIdx = idx }
