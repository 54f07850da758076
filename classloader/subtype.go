/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "jacobin/types"

// IsInstanceOf reports whether an object of class actual is assignment
// compatible with target, per JVMS §6.5 instanceof/checkcast's
// class-compatibility rules for non-array classes and interfaces.
func IsInstanceOf(actual, target *Class) bool {
	if actual == target {
		return true
	}
	if target.IsInterface() {
		return implementsInterface(actual, target)
	}
	for c := actual; c != nil; c = c.Super {
		if c == target {
			return true
		}
	}
	return false
}

func implementsInterface(c *Class, target *Class) bool {
	for cur := c; cur != nil; cur = cur.Super {
		for _, iface := range cur.Interfaces {
			if iface == target || implementsInterface(iface, target) {
				return true
			}
		}
	}
	return false
}

// IsAssignableFieldType reports whether a value of type from may be
// assigned/stored where a value of type to is expected, for the array
// covariance half of checkcast/instanceof (jvm/newOps.go's
// isInstanceOfResolved).
func IsAssignableFieldType(from, to types.FieldType) bool {
	if from.Kind != to.Kind {
		return false
	}
	switch from.Kind {
	case types.KindClass:
		fc, err1 := Load(from.ClassName)
		tc, err2 := Load(to.ClassName)
		if err1 != nil || err2 != nil {
			return false
		}
		return IsInstanceOf(fc, tc)
	case types.KindArray:
		return IsAssignableFieldType(*from.Component, *to.Component)
	default:
		return true
	}
}
