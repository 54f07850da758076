/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "jacobin/frames"

// execSwitchOp implements tableswitch/lookupswitch, JVMS §6.5. Both pad the
// bytecode stream with zero bytes so the first operand begins on a 4-byte
// boundary measured from the start of the method's code array.
func execSwitchOp(f *frames.Frame, op, startPC int) error {
	pad := (4 - ((startPC + 1) % 4)) % 4
	f.PC += pad

	def := readS32(f)
	key := f.Pop().Int()

	if op == TABLESWITCH {
		low := readS32(f)
		high := readS32(f)
		if int(key) < low || int(key) > high {
			f.PC = startPC + def
			return nil
		}
		offsetIdx := int(key) - low
		for i := 0; i < offsetIdx; i++ {
			readS32(f)
		}
		target := readS32(f)
		f.PC = startPC + target
		return nil
	}

	// LOOKUPSWITCH: binary search over the match/offset pairs, which are
	// sorted by match value.
	n := readS32(f)
	base := f.PC
	lo, hi := 0, n-1
	for lo <= hi {
		mid := (lo + hi) / 2
		f.PC = base + 8*mid
		matchVal := int32(readS32(f))
		offset := readS32(f)
		switch {
		case matchVal == key:
			f.PC = startPC + offset
			return nil
		case matchVal < key:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	f.PC = startPC + def
	return nil
}
