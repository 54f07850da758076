/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package types

import (
	"fmt"
	"strings"
)

// Kind identifies the basic shape of a field/return descriptor.
type Kind uint8

const (
	KindByte Kind = iota
	KindChar
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindShort
	KindBoolean
	KindVoid
	KindClass
	KindArray
)

// FieldType is a parsed JVMS field descriptor:
//
//	FieldType = B|C|D|F|I|J|S|Z | L<binary_name>; | [FieldType
type FieldType struct {
	Kind      Kind
	ClassName string     // set iff Kind == KindClass
	Component *FieldType // set iff Kind == KindArray
}

func (f FieldType) String() string {
	switch f.Kind {
	case KindByte:
		return "B"
	case KindChar:
		return "C"
	case KindDouble:
		return "D"
	case KindFloat:
		return "F"
	case KindInt:
		return "I"
	case KindLong:
		return "J"
	case KindShort:
		return "S"
	case KindBoolean:
		return "Z"
	case KindVoid:
		return "V"
	case KindClass:
		return "L" + f.ClassName + ";"
	case KindArray:
		return "[" + f.Component.String()
	}
	return "?"
}

// Category2 reports whether a field of this type occupies two operand-stack
// slots (long/double).
func (f FieldType) Category2() bool {
	return f.Kind == KindLong || f.Kind == KindDouble
}

// ParseFieldType parses a single field-type descriptor starting at s[0]. It
// returns the parsed type and the number of bytes consumed.
func ParseFieldType(s string) (FieldType, int, error) {
	if len(s) == 0 {
		return FieldType{}, 0, fmt.Errorf("empty field descriptor")
	}
	switch s[0] {
	case 'B':
		return FieldType{Kind: KindByte}, 1, nil
	case 'C':
		return FieldType{Kind: KindChar}, 1, nil
	case 'D':
		return FieldType{Kind: KindDouble}, 1, nil
	case 'F':
		return FieldType{Kind: KindFloat}, 1, nil
	case 'I':
		return FieldType{Kind: KindInt}, 1, nil
	case 'J':
		return FieldType{Kind: KindLong}, 1, nil
	case 'S':
		return FieldType{Kind: KindShort}, 1, nil
	case 'Z':
		return FieldType{Kind: KindBoolean}, 1, nil
	case 'V':
		return FieldType{Kind: KindVoid}, 1, nil
	case 'L':
		idx := strings.IndexByte(s, ';')
		if idx < 0 {
			return FieldType{}, 0, fmt.Errorf("unterminated class descriptor: %q", s)
		}
		return FieldType{Kind: KindClass, ClassName: s[1:idx]}, idx + 1, nil
	case '[':
		comp, n, err := ParseFieldType(s[1:])
		if err != nil {
			return FieldType{}, 0, err
		}
		return FieldType{Kind: KindArray, Component: &comp}, n + 1, nil
	default:
		return FieldType{}, 0, fmt.Errorf("invalid field descriptor char %q in %q", s[0], s)
	}
}

// ParseFieldDescriptor parses a field descriptor requiring the entire string
// be consumed.
func ParseFieldDescriptor(s string) (FieldType, error) {
	ft, n, err := ParseFieldType(s)
	if err != nil {
		return FieldType{}, err
	}
	if n != len(s) {
		return FieldType{}, fmt.Errorf("trailing garbage in field descriptor %q", s)
	}
	return ft, nil
}

// MethodType is a parsed JVMS method descriptor:
//
//	MethodType = ( FieldType* ) ( FieldType | V )
type MethodType struct {
	Params  []FieldType
	Returns FieldType
}

func (m MethodType) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range m.Params {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	sb.WriteString(m.Returns.String())
	return sb.String()
}

// ParamSlots returns the number of operand-stack/local-variable slots the
// parameters occupy (category-2 params count for 2).
func (m MethodType) ParamSlots() int {
	n := 0
	for _, p := range m.Params {
		if p.Category2() {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// ParseMethodDescriptor parses a full method descriptor.
func ParseMethodDescriptor(s string) (MethodType, error) {
	if len(s) == 0 || s[0] != '(' {
		return MethodType{}, fmt.Errorf("method descriptor must start with '(': %q", s)
	}
	rest := s[1:]
	var params []FieldType
	for len(rest) > 0 && rest[0] != ')' {
		ft, n, err := ParseFieldType(rest)
		if err != nil {
			return MethodType{}, err
		}
		params = append(params, ft)
		rest = rest[n:]
	}
	if len(rest) == 0 {
		return MethodType{}, fmt.Errorf("unterminated method descriptor: %q", s)
	}
	rest = rest[1:] // skip ')'
	ret, err := ParseFieldDescriptor(rest)
	if err != nil {
		return MethodType{}, err
	}
	return MethodType{Params: params, Returns: ret}, nil
}

// Two descriptors are equal iff their canonical forms are byte-equal; since
// String() always re-renders the canonical form, plain string equality on
// the original descriptor text already satisfies this for well-formed input.
func DescriptorsEqual(a, b string) bool {
	return a == b
}

// Well-known binary names used throughout the loader, heap, and gfunction.
const (
	ObjectClassName        = "java/lang/Object"
	StringClassName        = "java/lang/String"
	ClassClassName         = "java/lang/Class"
	ThrowableClassName     = "java/lang/Throwable"
	StringBuilderClassName = "java/lang/StringBuilder"
	SystemClassName        = "java/lang/System"
	PrintStreamClassName   = "java/io/PrintStream"
)
