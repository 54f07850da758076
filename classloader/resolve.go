/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"

	"jacobin/types"
)

// ResolveConst resolves the symbolic constant-pool entry at index (JVMS
// §5.1's lazy/at-most-once resolution rule), caching the result so repeat
// resolution (e.g. a getstatic executed in a loop) costs one atomic load.
func ResolveConst(c *Class, index uint16) (*ResolvedConst, error) {
	cp := c.CP
	if int(index) <= 0 || int(index) >= len(cp.CpIndex) {
		return nil, cfe("constant pool index out of range")
	}
	slot := &cp.resolved[index]
	if slot.done.Load() {
		rc := slot.value.Load().(*ResolvedConst)
		return rc, rc.Err
	}

	rc, err := doResolve(c, index)
	if rc == nil {
		rc = &ResolvedConst{Err: err}
	} else {
		rc.Err = err
	}
	slot.value.Store(rc)
	slot.done.Store(true)
	return rc, err
}

func doResolve(c *Class, index uint16) (*ResolvedConst, error) {
	cp := c.CP
	entry := cp.CpIndex[index]
	switch entry.Type {
	case Utf8:
		s := cp.Utf8Refs[entry.Slot]
		return &ResolvedConst{Kind: Utf8, MemberName: s}, nil

	case IntegerConst:
		return &ResolvedConst{Kind: IntegerConst, Value: types.IntVal(cp.IntConsts[entry.Slot])}, nil
	case FloatConst:
		return &ResolvedConst{Kind: FloatConst, Value: types.FloatVal(cp.FloatConsts[entry.Slot])}, nil
	case LongConst:
		return &ResolvedConst{Kind: LongConst, Value: types.LongVal(cp.LongConsts[entry.Slot])}, nil
	case DoubleConst:
		return &ResolvedConst{Kind: DoubleConst, Value: types.DoubleVal(cp.DoubleConsts[entry.Slot])}, nil

	case StringConst:
		s, err := cp.Utf8At(cp.StringRefs[entry.Slot])
		if err != nil {
			return nil, err
		}
		return &ResolvedConst{Kind: StringConst, MemberName: s, Value: internStringToValue(s)}, nil

	case ClassRef:
		name, err := cp.ClassNameAt(index)
		if err != nil {
			return nil, err
		}
		// An array-typed CONSTANT_Class ("[I", "[Ljava/lang/String;") names
		// no .class file -- it resolves to a synthetic array type built
		// straight from the descriptor grammar instead of going through
		// Load.
		if len(name) > 0 && name[0] == '[' {
			ft, _, err := types.ParseFieldType(name)
			if err != nil {
				return nil, err
			}
			return &ResolvedConst{Kind: ClassRef, ClassName: name, ArrayType: &ft}, nil
		}
		klass, err := Load(name)
		if err != nil {
			return nil, err
		}
		return &ResolvedConst{Kind: ClassRef, ClassName: name, Class: klass}, nil

	case FieldRef, MethodRef, InterfaceMethodRef:
		className, name, desc, err := cp.MemberRefAt(index)
		if err != nil {
			return nil, err
		}
		klass, err := Load(className)
		if err != nil {
			return nil, err
		}
		return &ResolvedConst{Kind: entry.Type, ClassName: className, Class: klass,
			MemberName: name, Descriptor: desc}, nil

	case NameAndType:
		name, desc, err := cp.NameAndTypeAt(index)
		if err != nil {
			return nil, err
		}
		return &ResolvedConst{Kind: NameAndType, MemberName: name, Descriptor: desc}, nil

	case MethodHandle, MethodType, Dynamic, InvokeDynamic:
		return nil, fmt.Errorf("UnsupportedOperationException: invokedynamic and method handles are not supported")

	default:
		return nil, cfe("cannot resolve constant pool entry with unrecognized tag")
	}
}

// ResolveFieldRecursive walks c, then its superclass chain, then its
// superinterfaces (JVMS §5.4.3.2 field resolution order) looking for a
// field declared name/desc.
func ResolveFieldRecursive(c *Class, name, desc string) (*Class, *Field, error) {
	for _, f := range c.Fields {
		if f.Name == name && f.Desc == desc {
			return c, f, nil
		}
	}
	if c.Super != nil {
		if owner, f, err := ResolveFieldRecursive(c.Super, name, desc); err == nil {
			return owner, f, nil
		}
	}
	for _, iface := range c.Interfaces {
		if owner, f, err := ResolveFieldRecursive(iface, name, desc); err == nil {
			return owner, f, nil
		}
	}
	return nil, nil, &NoSuchFieldError{Class: c.Name, Name: name, Desc: desc}
}

// ResolveMethodRecursive walks c and its superclasses (JVMS §5.4.3.3
// method resolution order, then §5.4.3.4 interface method resolution)
// looking for a method declared name/desc.
func ResolveMethodRecursive(c *Class, name, desc string) (*Method, error) {
	for cur := c; cur != nil; cur = cur.Super {
		if m := cur.FindMethod(name, desc); m != nil {
			return m, nil
		}
	}
	m, err := resolveInterfaceMethod(c, name, desc)
	if err == nil {
		return m, nil
	}
	return nil, &NoSuchMethodError{Class: c.Name, Name: name, Desc: desc}
}

func resolveInterfaceMethod(c *Class, name, desc string) (*Method, error) {
	for _, iface := range c.Interfaces {
		if m := iface.FindMethod(name, desc); m != nil {
			return m, nil
		}
		if m, err := resolveInterfaceMethod(iface, name, desc); err == nil {
			return m, nil
		}
	}
	if c.Super != nil {
		return resolveInterfaceMethod(c.Super, name, desc)
	}
	return nil, &NoSuchMethodError{Class: c.Name, Name: name, Desc: desc}
}
