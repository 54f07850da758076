/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"sync/atomic"

	"jacobin/types"
)

// Constant-pool tags, per JVMS §4.4, Table 4.4-A.
const (
	Utf8               uint8 = 1
	IntegerConst       uint8 = 3
	FloatConst         uint8 = 4
	LongConst          uint8 = 5
	DoubleConst        uint8 = 6
	ClassRef           uint8 = 7
	StringConst        uint8 = 8
	FieldRef           uint8 = 9
	MethodRef          uint8 = 10
	InterfaceMethodRef uint8 = 11
	NameAndType        uint8 = 12
	MethodHandle       uint8 = 15
	MethodType         uint8 = 16
	Dynamic            uint8 = 17
	InvokeDynamic      uint8 = 18
	Module             uint8 = 19
	Package            uint8 = 20
)

// CpEntry is a dense, 1-based index entry: Type identifies which typed
// slice Slot indexes into. Long/Double entries occupy two consecutive
// indices per JVMS §4.4.5 (the second index is left as a zero-value filler
// entry and must never be dereferenced).
type CpEntry struct {
	Type uint8
	Slot uint16
}

type NameAndTypeEntry struct {
	NameIndex uint16
	DescIndex uint16
}

type FieldRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type MethodRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type InterfaceMethodRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type MethodHandleEntry struct {
	RefKind  uint16
	RefIndex uint16
}

type DynamicEntry struct {
	BootstrapIndex uint16
	NameAndType    uint16
}

type InvokeDynamicEntry struct {
	BootstrapIndex uint16
	NameAndType    uint16
}

// resolvedSlot is the lazy, memoized resolution cache for one CP index: an
// at-most-once unresolved->resolved transition (JVMS §5.1).
type resolvedSlot struct {
	done  atomic.Bool
	value atomic.Value // holds a ResolvedConst
}

// ResolvedConst is the result of resolving a symbolic CP entry.
type ResolvedConst struct {
	Kind      uint8 // one of the tag constants above
	ClassName string
	Class     *Class           // set for ClassRef/member-refs once the referenced class is loaded
	ArrayType *types.FieldType // set instead of Class when ClassName is an array descriptor ("[I", "[Ljava/lang/String;")

	MemberName string // field/method name, for FieldRef/MethodRef/InterfaceMethodRef
	Descriptor string
	Value      types.Value // set for Utf8/Integer/Float/Long/Double/String
	Err        error
}

// CPool is the per-class constant pool (JVMS §4.4): a dense mapping from
// 1-based index to tagged entries, plus the typed backing slices the
// entries' Slot fields index into.
type CPool struct {
	CpIndex []CpEntry

	Utf8Refs           []string
	IntConsts          []int32
	FloatConsts        []float32
	LongConsts         []int64
	DoubleConsts       []float64
	ClassRefs          []uint16 // utf8 index of the class name
	StringRefs         []uint16 // utf8 index of the string's content
	NameAndTypes       []NameAndTypeEntry
	FieldRefs          []FieldRefEntry
	MethodRefs         []MethodRefEntry
	InterfaceMethRefs  []InterfaceMethodRefEntry
	MethodHandles      []MethodHandleEntry
	MethodTypes        []uint16 // utf8 index of the method type descriptor
	Dynamics           []DynamicEntry
	InvokeDynamics     []InvokeDynamicEntry
	ModuleRefs         []uint16
	PackageRefs        []uint16

	resolved []resolvedSlot // parallel to CpIndex, lazily populated
}

func newCPool(count int) *CPool {
	return &CPool{
		CpIndex:  make([]CpEntry, count),
		resolved: make([]resolvedSlot, count),
	}
}

// NewCPoolForTest builds an empty constant pool with room for count entries.
// Used by other packages' tests (jvm, gfunction) that need a *Class with a
// resolvable constant pool without shipping a real .class fixture.
func NewCPoolForTest(count int) *CPool { return newCPool(count) }

// Utf8At returns the UTF-8 string stored at the given 1-based CP index,
// which must point to a Utf8 entry.
func (cp *CPool) Utf8At(index uint16) (string, error) {
	if int(index) <= 0 || int(index) >= len(cp.CpIndex) {
		return "", cfe("constant pool index out of range")
	}
	e := cp.CpIndex[index]
	if e.Type != Utf8 {
		return "", cfe("expected a UTF8 constant pool entry")
	}
	return cp.Utf8Refs[e.Slot], nil
}

// ClassNameAt resolves a ClassRef entry at index to its binary name.
func (cp *CPool) ClassNameAt(index uint16) (string, error) {
	if int(index) <= 0 || int(index) >= len(cp.CpIndex) {
		return "", cfe("constant pool index out of range")
	}
	e := cp.CpIndex[index]
	if e.Type != ClassRef {
		return "", cfe("expected a Class constant pool entry")
	}
	return cp.Utf8At(cp.ClassRefs[e.Slot])
}

// NameAndTypeAt resolves a NameAndType entry to (name, descriptor).
func (cp *CPool) NameAndTypeAt(index uint16) (string, string, error) {
	if int(index) <= 0 || int(index) >= len(cp.CpIndex) {
		return "", "", cfe("constant pool index out of range")
	}
	e := cp.CpIndex[index]
	if e.Type != NameAndType {
		return "", "", cfe("expected a NameAndType constant pool entry")
	}
	nat := cp.NameAndTypes[e.Slot]
	name, err := cp.Utf8At(nat.NameIndex)
	if err != nil {
		return "", "", err
	}
	desc, err := cp.Utf8At(nat.DescIndex)
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// MemberRefAt resolves a FieldRef/MethodRef/InterfaceMethodRef entry into
// (owning class name, member name, descriptor).
func (cp *CPool) MemberRefAt(index uint16) (class, name, desc string, err error) {
	if int(index) <= 0 || int(index) >= len(cp.CpIndex) {
		return "", "", "", cfe("constant pool index out of range")
	}
	e := cp.CpIndex[index]
	var classIdx, natIdx uint16
	switch e.Type {
	case FieldRef:
		r := cp.FieldRefs[e.Slot]
		classIdx, natIdx = r.ClassIndex, r.NameAndType
	case MethodRef:
		r := cp.MethodRefs[e.Slot]
		classIdx, natIdx = r.ClassIndex, r.NameAndType
	case InterfaceMethodRef:
		r := cp.InterfaceMethRefs[e.Slot]
		classIdx, natIdx = r.ClassIndex, r.NameAndType
	default:
		return "", "", "", cfe("expected a member-ref constant pool entry")
	}
	class, err = cp.ClassNameAt(classIdx)
	if err != nil {
		return "", "", "", err
	}
	name, desc, err = cp.NameAndTypeAt(natIdx)
	return class, name, desc, err
}
