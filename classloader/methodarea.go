/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"jacobin/trace"
	"jacobin/types"
)

// the method area (JVMS §5.4): one interned *Class per binary name,
// shared by every thread.
var (
	areaMu sync.RWMutex
	area   = map[string]*Class{}

	// loadGroup collapses concurrent loads of the same binary name into a
	// single parse+link.
	loadGroup singleflight.Group

	path *Classpath
)

// SetClasspath installs the ordered class-source roots used by load. It
// must be called once during VM startup, before any class is loaded.
func SetClasspath(cp *Classpath) { path = cp }

// lookup returns an already-loaded class without triggering a load.
func lookup(name string) *Class {
	areaMu.RLock()
	defer areaMu.RUnlock()
	return area[name]
}

// Load returns the interned, linked Class for name, loading and linking it
// (and its supertypes) first if necessary (JVMS §5.3 Creation and
// Loading). It is safe for concurrent use: concurrent loaders of the same
// class block on the same singleflight call and observe the same *Class.
func Load(name string) (*Class, error) {
	return loadChain(name, nil)
}

func loadChain(name string, chain []string) (*Class, error) {
	if c := lookup(name); c != nil {
		return c, nil
	}
	for _, n := range chain {
		if n == name {
			return nil, &ClassCircularityError{ClassName: name}
		}
	}

	v, err, _ := loadGroup.Do(name, func() (interface{}, error) {
		if c := lookup(name); c != nil {
			return c, nil
		}
		return doLoad(name, append(append([]string{}, chain...), name))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Class), nil
}

func doLoad(name string, chain []string) (*Class, error) {
	if path == nil {
		return nil, &ClassNotFoundError{ClassName: name}
	}
	raw, err := path.Find(name)
	if err != nil {
		return nil, err
	}

	rcf, err := parseClassFile(raw)
	if err != nil {
		return nil, err
	}
	if err := formatCheckClass(rcf); err != nil {
		return nil, err
	}

	trace.Trace("loaded class " + rcf.ThisClassName)

	c := newClass(rcf.ThisClassName)
	c.AccessFlags = rcf.AccessFlags
	c.CP = rcf.CP
	c.SuperName = rcf.SuperClassName
	c.SourceFile = rcf.SourceFile
	c.Bootstraps = rcf.Bootstraps
	c.state.Store(int32(Loaded))

	if rcf.SuperClassName != "" {
		super, err := loadChain(rcf.SuperClassName, chain)
		if err != nil {
			return nil, err
		}
		c.Super = super
	}

	c.InterfaceNames = make([]string, len(rcf.Interfaces))
	for i, idx := range rcf.Interfaces {
		ifName, err := rcf.CP.ClassNameAt(idx)
		if err != nil {
			return nil, err
		}
		c.InterfaceNames[i] = ifName
		iface, err := loadChain(ifName, chain)
		if err != nil {
			return nil, err
		}
		c.Interfaces = append(c.Interfaces, iface)
	}

	if err := linkFields(c, rcf); err != nil {
		return nil, err
	}
	if err := linkMethods(c, rcf); err != nil {
		return nil, err
	}
	c.state.Store(int32(Linking))
	c.state.Store(int32(Loaded))

	areaMu.Lock()
	if existing, ok := area[name]; ok {
		areaMu.Unlock()
		return existing, nil
	}
	area[name] = c
	areaMu.Unlock()

	return c, nil
}

func linkFields(c *Class, rcf *RawClassFile) error {
	for _, rf := range rcf.Fields {
		name, err := rcf.CP.Utf8At(rf.NameIndex)
		if err != nil {
			return err
		}
		desc, err := rcf.CP.Utf8At(rf.DescIndex)
		if err != nil {
			return err
		}
		ft, err := types.ParseFieldDescriptor(desc)
		if err != nil {
			return err
		}

		f := &Field{
			Name:        name,
			Desc:        desc,
			AccessFlags: int(rf.AccessFlags),
			IsStatic:    rf.AccessFlags&0x0008 != 0,
			FieldType:   ft,
		}
		if rf.ConstValueIndex != 0 {
			cv, err := constValueOf(rcf.CP, rf.ConstValueIndex, ft)
			if err != nil {
				return err
			}
			f.HasConst = true
			f.ConstValue = cv
		}

		c.Fields = append(c.Fields, f)
		if f.IsStatic {
			f.StaticSlot = len(c.StaticSlots)
			c.staticIndex[name] = f.StaticSlot
			if f.HasConst {
				c.StaticSlots = append(c.StaticSlots, f.ConstValue)
			} else {
				c.StaticSlots = append(c.StaticSlots, zeroValueFor(ft))
			}
		}
	}

	c.FieldLayout = append(c.FieldLayout, c.instanceFieldsInherited()...)
	for _, f := range c.Fields {
		if !f.IsStatic {
			c.FieldLayout = append(c.FieldLayout, f)
		}
	}
	return nil
}

func (c *Class) instanceFieldsInherited() []*Field {
	if c.Super == nil {
		return nil
	}
	return c.Super.FieldLayout
}

func linkMethods(c *Class, rcf *RawClassFile) error {
	for _, rm := range rcf.Methods {
		name, err := rcf.CP.Utf8At(rm.NameIndex)
		if err != nil {
			return err
		}
		desc, err := rcf.CP.Utf8At(rm.DescIndex)
		if err != nil {
			return err
		}
		mt, err := types.ParseMethodDescriptor(desc)
		if err != nil {
			return err
		}

		m := &Method{
			Owner:       c,
			Name:        name,
			Desc:        desc,
			AccessFlags: int(rm.AccessFlags),
			Descriptor:  mt,
			IsNative:    rm.AccessFlags&0x0100 != 0,
		}
		if rm.Code != nil {
			m.MaxStack = int(rm.Code.MaxStack)
			m.MaxLocals = int(rm.Code.MaxLocals)
			m.Code = rm.Code.Code
			for _, e := range rm.Code.Exceptions {
				ct := ""
				if e.CatchType != 0 {
					ct, err = rcf.CP.ClassNameAt(e.CatchType)
					if err != nil {
						return err
					}
				}
				m.ExcTable = append(m.ExcTable, ExceptionTableEntry{
					StartPC: int(e.StartPC), EndPC: int(e.EndPC),
					HandlerPC: int(e.HandlerPC), CatchType: ct,
				})
			}
		}
		c.Methods[m.key()] = m
	}
	return nil
}

func zeroValueFor(ft types.FieldType) types.Value {
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

func constValueOf(cp *CPool, index uint16, ft types.FieldType) (types.Value, error) {
	if int(index) <= 0 || int(index) >= len(cp.CpIndex) {
		return types.Value{}, cfe("ConstantValue index out of range")
	}
	e := cp.CpIndex[index]
	switch e.Type {
	case IntegerConst:
		return types.IntVal(cp.IntConsts[e.Slot]), nil
	case FloatConst:
		return types.FloatVal(cp.FloatConsts[e.Slot]), nil
	case LongConst:
		return types.LongVal(cp.LongConsts[e.Slot]), nil
	case DoubleConst:
		return types.DoubleVal(cp.DoubleConsts[e.Slot]), nil
	case StringConst:
		s, err := cp.Utf8At(cp.StringRefs[e.Slot])
		if err != nil {
			return types.Value{}, err
		}
		return internStringToValue(s), nil
	default:
		return types.Value{}, cfe("unexpected ConstantValue tag")
	}
}

// internStringToValue is overridden (via InstallStringInterner) by the
// heap package at startup, since classloader must not import heap
// (heap already depends on classloader to load java/lang/String).
var internStringToValue = func(s string) types.Value { return types.NullReference }

// InstallStringInterner lets the heap package supply the real
// string-interning hook without introducing an import cycle.
func InstallStringInterner(fn func(string) types.Value) { internStringToValue = fn }

// GetLoadedClass returns an already-loaded class, or nil.
func GetLoadedClass(name string) *Class { return lookup(name) }

// CountLoadedClasses reports how many classes the method area currently
// holds, used by tests.
func CountLoadedClasses() int {
	areaMu.RLock()
	defer areaMu.RUnlock()
	return len(area)
}

// ResetMethodArea clears all interned classes. Used by tests only.
func ResetMethodArea() {
	areaMu.Lock()
	defer areaMu.Unlock()
	area = map[string]*Class{}
}

// RegisterClassForTest directly interns a fully-built *Class, bypassing
// parsing/linking. Used by other packages' tests (heap, jvm, gfunction)
// that need a class present in the method area without shipping a real
// .class fixture.
func RegisterClassForTest(c *Class) {
	areaMu.Lock()
	defer areaMu.Unlock()
	area[c.Name] = c
	c.state.Store(int32(Loaded))
}
