/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"math"
	"strconv"

	"jacobin/trace"
)

// magic number every class file must start with (it was the 90s!).
const magicNumber = 0xCAFEBABE

// RawAttr is an attribute exactly as it appears in the class file: a name
// index plus its raw info bytes. The parser preserves attributes it does
// not interpret by always keeping Info around, even for attributes it does
// go on to interpret below.
type RawAttr struct {
	NameIndex uint16
	Info      []byte
}

type RawExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means "any" (catch-all)
}

// RawCode is the parsed form of a Code attribute (JVMS §4.7.3).
type RawCode struct {
	MaxStack   uint16
	MaxLocals  uint16
	Code       []byte
	Exceptions []RawExceptionTableEntry
	Attrs      []RawAttr
}

type RawBootstrapMethod struct {
	MethodRefIndex uint16
	Args           []uint16
}

type RawField struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attrs       []RawAttr

	ConstValueIndex uint16 // 0 if no ConstantValue attribute
}

type RawMethod struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attrs       []RawAttr

	Code           *RawCode
	ExceptionIndexes []uint16 // Exceptions attribute: classes this method declares to throw
}

// RawClassFile is the direct, unlinked result of parsing a .class image,
// before the method area resolves it against the rest of the type hierarchy.
type RawClassFile struct {
	MinorVersion, MajorVersion int
	CP                         *CPool
	AccessFlags                int
	ThisClassIndex             uint16
	SuperClassIndex            uint16
	Interfaces                 []uint16
	Fields                     []RawField
	Methods                    []RawMethod
	Attrs                      []RawAttr

	ThisClassName  string
	SuperClassName string
	SourceFile     string
	Bootstraps     []RawBootstrapMethod
	Deprecated     bool
}

// parseClassFile parses a byte slice into a RawClassFile, or fails with a
// ClassFormatError (truncation, bad magic, unsupported version, malformed
// attribute). Multibyte integers are big-endian (JVMS §4.1).
func parseClassFile(raw []byte) (*RawClassFile, error) {
	p := &byteReader{data: raw}

	magic, err := p.u4()
	if err != nil || magic != magicNumber {
		return nil, cfe("invalid magic number")
	}

	minor, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading minor version")
	}
	major, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading major version")
	}
	if major > 52 {
		return nil, cfe("unsupported class file version: " + strconv.Itoa(major))
	}
	trace.Trace("class file version " + strconv.Itoa(major) + "." + strconv.Itoa(minor))

	cp, err := parseConstantPool(p)
	if err != nil {
		return nil, err
	}

	accessFlags, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading access flags")
	}

	thisClass, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading this_class")
	}
	superClass, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading super_class")
	}

	ifaceCount, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading interfaces_count")
	}
	interfaces := make([]uint16, ifaceCount)
	for i := range interfaces {
		idx, err := p.u2()
		if err != nil {
			return nil, cfe("truncated class file reading interfaces")
		}
		interfaces[i] = uint16(idx)
	}

	fieldCount, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading fields_count")
	}
	fields := make([]RawField, fieldCount)
	for i := range fields {
		f, err := parseField(p, cp)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}

	methodCount, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading methods_count")
	}
	methods := make([]RawMethod, methodCount)
	for i := range methods {
		m, err := parseMethod(p, cp)
		if err != nil {
			return nil, err
		}
		methods[i] = m
	}

	attrCount, err := p.u2()
	if err != nil {
		return nil, cfe("truncated class file reading attributes_count")
	}
	attrs, err := parseAttrs(p, attrCount)
	if err != nil {
		return nil, err
	}

	rcf := &RawClassFile{
		MinorVersion:    minor,
		MajorVersion:    major,
		CP:              cp,
		AccessFlags:     accessFlags,
		ThisClassIndex:  uint16(thisClass),
		SuperClassIndex: uint16(superClass),
		Interfaces:      interfaces,
		Fields:          fields,
		Methods:         methods,
		Attrs:           attrs,
	}

	rcf.ThisClassName, err = cp.ClassNameAt(rcf.ThisClassIndex)
	if err != nil {
		return nil, cfe("invalid this_class index")
	}
	if rcf.SuperClassIndex != 0 {
		rcf.SuperClassName, err = cp.ClassNameAt(rcf.SuperClassIndex)
		if err != nil {
			return nil, cfe("invalid super_class index")
		}
	} else if rcf.ThisClassName != "java/lang/Object" {
		return nil, cfe("only java/lang/Object may have a zero super_class index")
	}

	for _, a := range rcf.Attrs {
		name, err := cp.Utf8At(a.NameIndex)
		if err != nil {
			continue
		}
		switch name {
		case "SourceFile":
			br := &byteReader{data: a.Info}
			idx, err := br.u2()
			if err == nil {
				rcf.SourceFile, _ = cp.Utf8At(uint16(idx))
			}
		case "BootstrapMethods":
			bs, err := parseBootstrapMethods(a.Info)
			if err == nil {
				rcf.Bootstraps = bs
			}
		case "Deprecated":
			rcf.Deprecated = true
		}
		// every other attribute (InnerClasses, StackMapTable, etc.) is kept
		// only as raw bytes in rcf.Attrs -- pass-through.
	}

	return rcf, nil
}

func parseField(p *byteReader, cp *CPool) (RawField, error) {
	accessFlags, err := p.u2()
	if err != nil {
		return RawField{}, cfe("truncated field access flags")
	}
	nameIdx, err := p.u2()
	if err != nil {
		return RawField{}, cfe("truncated field name index")
	}
	descIdx, err := p.u2()
	if err != nil {
		return RawField{}, cfe("truncated field descriptor index")
	}
	attrCount, err := p.u2()
	if err != nil {
		return RawField{}, cfe("truncated field attributes_count")
	}
	attrs, err := parseAttrs(p, attrCount)
	if err != nil {
		return RawField{}, err
	}

	f := RawField{
		AccessFlags: uint16(accessFlags),
		NameIndex:   uint16(nameIdx),
		DescIndex:   uint16(descIdx),
		Attrs:       attrs,
	}
	for _, a := range attrs {
		name, err := cp.Utf8At(a.NameIndex)
		if err != nil {
			continue
		}
		if name == "ConstantValue" {
			br := &byteReader{data: a.Info}
			idx, err := br.u2()
			if err == nil {
				f.ConstValueIndex = uint16(idx)
			}
		}
	}
	return f, nil
}

func parseMethod(p *byteReader, cp *CPool) (RawMethod, error) {
	accessFlags, err := p.u2()
	if err != nil {
		return RawMethod{}, cfe("truncated method access flags")
	}
	nameIdx, err := p.u2()
	if err != nil {
		return RawMethod{}, cfe("truncated method name index")
	}
	descIdx, err := p.u2()
	if err != nil {
		return RawMethod{}, cfe("truncated method descriptor index")
	}
	attrCount, err := p.u2()
	if err != nil {
		return RawMethod{}, cfe("truncated method attributes_count")
	}
	attrs, err := parseAttrs(p, attrCount)
	if err != nil {
		return RawMethod{}, err
	}

	m := RawMethod{
		AccessFlags: uint16(accessFlags),
		NameIndex:   uint16(nameIdx),
		DescIndex:   uint16(descIdx),
		Attrs:       attrs,
	}

	for _, a := range attrs {
		name, err := cp.Utf8At(a.NameIndex)
		if err != nil {
			continue
		}
		switch name {
		case "Code":
			code, err := parseCodeAttr(a.Info, cp)
			if err != nil {
				return RawMethod{}, err
			}
			m.Code = code
		case "Exceptions":
			br := &byteReader{data: a.Info}
			count, err := br.u2()
			if err != nil {
				return RawMethod{}, cfe("truncated Exceptions attribute")
			}
			for i := 0; i < count; i++ {
				idx, err := br.u2()
				if err != nil {
					return RawMethod{}, cfe("truncated Exceptions attribute")
				}
				m.ExceptionIndexes = append(m.ExceptionIndexes, uint16(idx))
			}
		}
	}

	return m, nil
}

func parseCodeAttr(info []byte, cp *CPool) (*RawCode, error) {
	br := &byteReader{data: info}
	maxStack, err := br.u2()
	if err != nil {
		return nil, cfe("truncated Code attribute reading max_stack")
	}
	maxLocals, err := br.u2()
	if err != nil {
		return nil, cfe("truncated Code attribute reading max_locals")
	}
	codeLen, err := br.u4()
	if err != nil {
		return nil, cfe("truncated Code attribute reading code_length")
	}
	code, err := br.bytes(int(codeLen))
	if err != nil {
		return nil, cfe("truncated Code attribute reading code")
	}

	excCount, err := br.u2()
	if err != nil {
		return nil, cfe("truncated Code attribute reading exception_table_length")
	}
	exceptions := make([]RawExceptionTableEntry, excCount)
	for i := range exceptions {
		startPC, _ := br.u2()
		endPC, _ := br.u2()
		handlerPC, _ := br.u2()
		catchType, err := br.u2()
		if err != nil {
			return nil, cfe("truncated Code attribute exception table")
		}
		exceptions[i] = RawExceptionTableEntry{
			StartPC: uint16(startPC), EndPC: uint16(endPC),
			HandlerPC: uint16(handlerPC), CatchType: uint16(catchType),
		}
	}

	subAttrCount, err := br.u2()
	if err != nil {
		return nil, cfe("truncated Code attribute reading attributes_count")
	}
	subAttrs, err := parseAttrs(br, subAttrCount)
	if err != nil {
		return nil, err
	}

	return &RawCode{
		MaxStack:   uint16(maxStack),
		MaxLocals:  uint16(maxLocals),
		Code:       code,
		Exceptions: exceptions,
		Attrs:      subAttrs,
	}, nil
}

func parseBootstrapMethods(info []byte) ([]RawBootstrapMethod, error) {
	br := &byteReader{data: info}
	count, err := br.u2()
	if err != nil {
		return nil, cfe("truncated BootstrapMethods attribute")
	}
	out := make([]RawBootstrapMethod, count)
	for i := range out {
		methRef, err := br.u2()
		if err != nil {
			return nil, cfe("truncated BootstrapMethods entry")
		}
		argCount, err := br.u2()
		if err != nil {
			return nil, cfe("truncated BootstrapMethods entry")
		}
		args := make([]uint16, argCount)
		for j := range args {
			a, err := br.u2()
			if err != nil {
				return nil, cfe("truncated BootstrapMethods argument")
			}
			args[j] = uint16(a)
		}
		out[i] = RawBootstrapMethod{MethodRefIndex: uint16(methRef), Args: args}
	}
	return out, nil
}

func parseAttrs(p *byteReader, count int) ([]RawAttr, error) {
	attrs := make([]RawAttr, count)
	for i := 0; i < count; i++ {
		nameIdx, err := p.u2()
		if err != nil {
			return nil, cfe("truncated attribute name index")
		}
		length, err := p.u4()
		if err != nil {
			return nil, cfe("truncated attribute length")
		}
		info, err := p.bytes(int(length))
		if err != nil {
			return nil, cfe("truncated attribute info (attribute ran past end of class file)")
		}
		attrs[i] = RawAttr{NameIndex: uint16(nameIdx), Info: info}
	}
	return attrs, nil
}

// parseConstantPool parses the constant_pool_count and constant_pool[]
// items (JVMS §4.4), storing raw indices and deferring stringification --
// CP resolution happens lazily via CPool.*At helpers and the classloader's
// symbolic-reference resolution (JVMS §5.1).
func parseConstantPool(p *byteReader) (*CPool, error) {
	count, err := p.u2()
	if err != nil || count <= 1 {
		return nil, cfe("invalid number of entries in constant pool: " + strconv.Itoa(count))
	}
	cp := newCPool(count)

	for i := 1; i < count; i++ {
		tag, err := p.u1()
		if err != nil {
			return nil, cfe("truncated constant pool reading tag for entry " + strconv.Itoa(i))
		}
		switch uint8(tag) {
		case Utf8:
			length, err := p.u2()
			if err != nil {
				return nil, cfe("truncated Utf8 constant")
			}
			b, err := p.bytes(length)
			if err != nil {
				return nil, cfe("truncated Utf8 constant bytes")
			}
			slot := len(cp.Utf8Refs)
			cp.Utf8Refs = append(cp.Utf8Refs, modifiedUTF8ToString(b))
			cp.CpIndex[i] = CpEntry{Type: Utf8, Slot: uint16(slot)}

		case IntegerConst:
			v, err := p.u4()
			if err != nil {
				return nil, cfe("truncated Integer constant")
			}
			slot := len(cp.IntConsts)
			cp.IntConsts = append(cp.IntConsts, int32(uint32(v)))
			cp.CpIndex[i] = CpEntry{Type: IntegerConst, Slot: uint16(slot)}

		case FloatConst:
			v, err := p.u4()
			if err != nil {
				return nil, cfe("truncated Float constant")
			}
			slot := len(cp.FloatConsts)
			cp.FloatConsts = append(cp.FloatConsts, math.Float32frombits(uint32(v)))
			cp.CpIndex[i] = CpEntry{Type: FloatConst, Slot: uint16(slot)}

		case LongConst:
			hi, err1 := p.u4()
			lo, err2 := p.u4()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated Long constant")
			}
			v := int64(uint64(hi)<<32 | uint64(lo))
			slot := len(cp.LongConsts)
			cp.LongConsts = append(cp.LongConsts, v)
			cp.CpIndex[i] = CpEntry{Type: LongConst, Slot: uint16(slot)}
			i++ // Long/Double occupy two CP indices (JVMS §4.4.5)

		case DoubleConst:
			hi, err1 := p.u4()
			lo, err2 := p.u4()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated Double constant")
			}
			bits := uint64(hi)<<32 | uint64(lo)
			slot := len(cp.DoubleConsts)
			cp.DoubleConsts = append(cp.DoubleConsts, math.Float64frombits(bits))
			cp.CpIndex[i] = CpEntry{Type: DoubleConst, Slot: uint16(slot)}
			i++

		case ClassRef:
			nameIdx, err := p.u2()
			if err != nil {
				return nil, cfe("truncated Class constant")
			}
			slot := len(cp.ClassRefs)
			cp.ClassRefs = append(cp.ClassRefs, uint16(nameIdx))
			cp.CpIndex[i] = CpEntry{Type: ClassRef, Slot: uint16(slot)}

		case StringConst:
			utfIdx, err := p.u2()
			if err != nil {
				return nil, cfe("truncated String constant")
			}
			slot := len(cp.StringRefs)
			cp.StringRefs = append(cp.StringRefs, uint16(utfIdx))
			cp.CpIndex[i] = CpEntry{Type: StringConst, Slot: uint16(slot)}

		case FieldRef:
			classIdx, err1 := p.u2()
			natIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated Fieldref constant")
			}
			slot := len(cp.FieldRefs)
			cp.FieldRefs = append(cp.FieldRefs, FieldRefEntry{ClassIndex: uint16(classIdx), NameAndType: uint16(natIdx)})
			cp.CpIndex[i] = CpEntry{Type: FieldRef, Slot: uint16(slot)}

		case MethodRef:
			classIdx, err1 := p.u2()
			natIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated Methodref constant")
			}
			slot := len(cp.MethodRefs)
			cp.MethodRefs = append(cp.MethodRefs, MethodRefEntry{ClassIndex: uint16(classIdx), NameAndType: uint16(natIdx)})
			cp.CpIndex[i] = CpEntry{Type: MethodRef, Slot: uint16(slot)}

		case InterfaceMethodRef:
			classIdx, err1 := p.u2()
			natIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated InterfaceMethodref constant")
			}
			slot := len(cp.InterfaceMethRefs)
			cp.InterfaceMethRefs = append(cp.InterfaceMethRefs, InterfaceMethodRefEntry{ClassIndex: uint16(classIdx), NameAndType: uint16(natIdx)})
			cp.CpIndex[i] = CpEntry{Type: InterfaceMethodRef, Slot: uint16(slot)}

		case NameAndType:
			nameIdx, err1 := p.u2()
			descIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated NameAndType constant")
			}
			slot := len(cp.NameAndTypes)
			cp.NameAndTypes = append(cp.NameAndTypes, NameAndTypeEntry{NameIndex: uint16(nameIdx), DescIndex: uint16(descIdx)})
			cp.CpIndex[i] = CpEntry{Type: NameAndType, Slot: uint16(slot)}

		case MethodHandle:
			refKind, err1 := p.u1()
			refIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated MethodHandle constant")
			}
			slot := len(cp.MethodHandles)
			cp.MethodHandles = append(cp.MethodHandles, MethodHandleEntry{RefKind: uint16(refKind), RefIndex: uint16(refIdx)})
			cp.CpIndex[i] = CpEntry{Type: MethodHandle, Slot: uint16(slot)}

		case MethodType:
			descIdx, err := p.u2()
			if err != nil {
				return nil, cfe("truncated MethodType constant")
			}
			slot := len(cp.MethodTypes)
			cp.MethodTypes = append(cp.MethodTypes, uint16(descIdx))
			cp.CpIndex[i] = CpEntry{Type: MethodType, Slot: uint16(slot)}

		case Dynamic:
			bsIdx, err1 := p.u2()
			natIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated Dynamic constant")
			}
			slot := len(cp.Dynamics)
			cp.Dynamics = append(cp.Dynamics, DynamicEntry{BootstrapIndex: uint16(bsIdx), NameAndType: uint16(natIdx)})
			cp.CpIndex[i] = CpEntry{Type: Dynamic, Slot: uint16(slot)}

		case InvokeDynamic:
			bsIdx, err1 := p.u2()
			natIdx, err2 := p.u2()
			if err1 != nil || err2 != nil {
				return nil, cfe("truncated InvokeDynamic constant")
			}
			slot := len(cp.InvokeDynamics)
			cp.InvokeDynamics = append(cp.InvokeDynamics, InvokeDynamicEntry{BootstrapIndex: uint16(bsIdx), NameAndType: uint16(natIdx)})
			cp.CpIndex[i] = CpEntry{Type: InvokeDynamic, Slot: uint16(slot)}

		case Module:
			nameIdx, err := p.u2()
			if err != nil {
				return nil, cfe("truncated Module constant")
			}
			slot := len(cp.ModuleRefs)
			cp.ModuleRefs = append(cp.ModuleRefs, uint16(nameIdx))
			cp.CpIndex[i] = CpEntry{Type: Module, Slot: uint16(slot)}

		case Package:
			nameIdx, err := p.u2()
			if err != nil {
				return nil, cfe("truncated Package constant")
			}
			slot := len(cp.PackageRefs)
			cp.PackageRefs = append(cp.PackageRefs, uint16(nameIdx))
			cp.CpIndex[i] = CpEntry{Type: Package, Slot: uint16(slot)}

		default:
			return nil, cfe("invalid constant pool tag: " + strconv.Itoa(tag))
		}
	}

	return cp, nil
}

// modifiedUTF8ToString converts a Utf8 constant pool entry's "modified
// UTF-8" bytes to a Go string by copying them unchanged. For the
// ASCII/BMP-without-embedded-NUL case (the overwhelming majority of real
// class files) modified UTF-8 coincides exactly with standard UTF-8. An
// encoded NUL (0xC0 0x80) and supplementary characters encoded as a
// CESU-8 surrogate pair are not converted: the string keeps their
// original bytes, which are not valid standard UTF-8.
func modifiedUTF8ToString(b []byte) string {
	return string(b)
}
