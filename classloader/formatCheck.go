/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"strconv"
	"strings"

	"jacobin/types"
)

// formatCheckClass performs JVMS §4.8's "format check" pass, stopping
// short of full dataflow verification: constant-pool internal
// consistency, and valid field/method names and descriptors. Most of the
// length/truncation checks already happened during parsing; this pass
// re-validates CP cross references and name/descriptor syntax.
func formatCheckClass(rcf *RawClassFile) error {
	if err := validateConstantPool(rcf.CP); err != nil {
		return err
	}
	if err := validateFieldsAndMethods(rcf); err != nil {
		return err
	}
	return nil
}

func validateConstantPool(cp *CPool) error {
	for j := 1; j < len(cp.CpIndex); j++ {
		entry := cp.CpIndex[j]
		switch entry.Type {
		case Utf8:
			if int(entry.Slot) >= len(cp.Utf8Refs) {
				return cfe("CP entry #" + strconv.Itoa(j) + " points to an invalid UTF8 entry")
			}
			s := cp.Utf8Refs[entry.Slot]
			for i := 0; i < len(s); i++ {
				if s[i] == 0x00 {
					return cfe("UTF8 string for CP entry #" + strconv.Itoa(j) +
						" contains an embedded NUL byte")
				}
			}
		case IntegerConst:
			if int(entry.Slot) >= len(cp.IntConsts) {
				return cfe("Integer at CP entry #" + strconv.Itoa(j) + " has an invalid slot")
			}
		case FloatConst:
			if int(entry.Slot) >= len(cp.FloatConsts) {
				return cfe("Float at CP entry #" + strconv.Itoa(j) + " has an invalid slot")
			}
		case LongConst:
			if int(entry.Slot) >= len(cp.LongConsts) {
				return cfe("Long at CP entry #" + strconv.Itoa(j) + " has an invalid slot")
			}
			if j+1 >= len(cp.CpIndex) || cp.CpIndex[j+1].Type != 0 {
				return cfe("Missing filler entry after Long constant at CP entry #" + strconv.Itoa(j))
			}
			j++
		case DoubleConst:
			if int(entry.Slot) >= len(cp.DoubleConsts) {
				return cfe("Double at CP entry #" + strconv.Itoa(j) + " has an invalid slot")
			}
			if j+1 >= len(cp.CpIndex) || cp.CpIndex[j+1].Type != 0 {
				return cfe("Missing filler entry after Double constant at CP entry #" + strconv.Itoa(j))
			}
			j++
		case ClassRef:
			if int(entry.Slot) >= len(cp.ClassRefs) {
				return cfe("Class ref at CP entry #" + strconv.Itoa(j) + " has an invalid slot")
			}
			if _, err := cp.Utf8At(cp.ClassRefs[entry.Slot]); err != nil {
				return cfe("Class ref at CP entry #" + strconv.Itoa(j) + " names an invalid UTF8 entry")
			}
		case StringConst:
			if int(entry.Slot) >= len(cp.StringRefs) {
				return cfe("String ref at CP entry #" + strconv.Itoa(j) + " has an invalid slot")
			}
			if _, err := cp.Utf8At(cp.StringRefs[entry.Slot]); err != nil {
				return cfe("String ref at CP entry #" + strconv.Itoa(j) + " names an invalid UTF8 entry")
			}
		case FieldRef, MethodRef, InterfaceMethodRef:
			if _, _, _, err := cp.MemberRefAt(uint16(j)); err != nil {
				return cfe("Member ref at CP entry #" + strconv.Itoa(j) + " is malformed: " + err.Error())
			}
		case NameAndType:
			if _, _, err := cp.NameAndTypeAt(uint16(j)); err != nil {
				return cfe("NameAndType at CP entry #" + strconv.Itoa(j) + " is malformed")
			}
		case 0:
			return cfe("CP entry #" + strconv.Itoa(j) + " has an unrecognized or filler tag in a live slot")
		}
	}
	return nil
}

func validateFieldsAndMethods(rcf *RawClassFile) error {
	for _, f := range rcf.Fields {
		name, err := rcf.CP.Utf8At(f.NameIndex)
		if err != nil || !isValidUnqualifiedName(name) {
			return cfe("invalid field name")
		}
		desc, err := rcf.CP.Utf8At(f.DescIndex)
		if err != nil {
			return cfe("invalid field descriptor index")
		}
		if _, err := types.ParseFieldDescriptor(desc); err != nil {
			return cfe("invalid field descriptor syntax: " + desc)
		}
	}

	for _, m := range rcf.Methods {
		name, err := rcf.CP.Utf8At(m.NameIndex)
		if err != nil {
			return cfe("invalid method name index")
		}
		if name != "<init>" && name != "<clinit>" &&
			(!isValidUnqualifiedName(name) || strings.ContainsAny(name, "<>")) {
			return cfe("invalid method name: " + name)
		}
		desc, err := rcf.CP.Utf8At(m.DescIndex)
		if err != nil {
			return cfe("invalid method descriptor index")
		}
		if _, err := types.ParseMethodDescriptor(desc); err != nil {
			return cfe("invalid method descriptor syntax: " + desc)
		}
	}
	return nil
}

// isValidUnqualifiedName checks the JVMS §4.2.2 unqualified-name syntax: a
// field or method name may not contain '.', ';', '[', or '/'  (method names
// additionally may not contain '<' or '>', except for <init>/<clinit>,
// checked separately by the caller).
func isValidUnqualifiedName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, ".;[/")
}
