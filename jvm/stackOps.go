/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "jacobin/frames"

func isStackOp(op int) bool {
	return op >= POP && op <= SWAP
}

// execStackOp implements the operand-stack manipulation family, JVMS §6.5
// pop through swap. The x1/x2 variants distinguish category-1 from
// category-2 (long/double) values via Value.Category2/Slots.
func execStackOp(f *frames.Frame, op int) error {
	switch op {
	case POP:
		f.Pop()
	case POP2:
		// A category-2 value occupies the two words a pop2 of two
		// category-1 values would take, so it pops as a single Value.
		v1 := f.Pop()
		if !v1.Category2() {
			f.Pop()
		}
	case DUP:
		v := f.Peek()
		f.Push(v)
	case DUP_X1:
		v1 := f.Pop()
		v2 := f.Pop()
		f.Push(v1)
		f.Push(v2)
		f.Push(v1)
	case DUP_X2:
		v1 := f.Pop()
		v2 := f.Pop()
		if v2.Category2() {
			// Form 2: value1 category 1, value2 category 2.
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		} else {
			// Form 1: value1, value2, value3 all category 1.
			v3 := f.Pop()
			f.Push(v1)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		}
	case DUP2:
		v1 := f.Pop()
		if v1.Category2() {
			// Form 2: a single category-2 value, duplicated whole.
			f.Push(v1)
			f.Push(v1)
		} else {
			// Form 1: two category-1 values.
			v2 := f.Pop()
			f.Push(v2)
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		}
	case DUP2_X1:
		v1 := f.Pop()
		if v1.Category2() {
			// Form 2: value1 category 2, value2 category 1.
			v2 := f.Pop()
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		} else {
			// Form 1: value1, value2, value3 all category 1.
			v2 := f.Pop()
			v3 := f.Pop()
			f.Push(v2)
			f.Push(v1)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		}
	case DUP2_X2:
		v1 := f.Pop()
		if v1.Category2() {
			v2 := f.Pop()
			if v2.Category2() {
				// Form 4: value1, value2 both category 2.
				f.Push(v1)
				f.Push(v2)
				f.Push(v1)
			} else {
				// Form 2: value1 category 2, value2/value3 category 1.
				v3 := f.Pop()
				f.Push(v1)
				f.Push(v3)
				f.Push(v2)
				f.Push(v1)
			}
		} else {
			v2 := f.Pop()
			v3 := f.Pop()
			if v3.Category2() {
				// Form 3: value1, value2 category 1, value3 category 2.
				f.Push(v2)
				f.Push(v1)
				f.Push(v3)
				f.Push(v2)
				f.Push(v1)
			} else {
				// Form 1: value1..value4 all category 1.
				v4 := f.Pop()
				f.Push(v2)
				f.Push(v1)
				f.Push(v4)
				f.Push(v3)
				f.Push(v2)
				f.Push(v1)
			}
		}
	case SWAP:
		v1 := f.Pop()
		v2 := f.Pop()
		f.Push(v1)
		f.Push(v2)
	}
	return nil
}
