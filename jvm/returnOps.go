/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/frames"
	"jacobin/types"
)

func isReturnOp(op int) bool {
	switch op {
	case IRETURN, LRETURN, FRETURN, DRETURN, ARETURN, RETURN:
		return true
	}
	return false
}

// execReturnOp implements the method-return family, JVMS §6.5 ireturn
// through return. RETURN (void) yields the zero Value, which invokeMethod
// discards for a void-returning caller.
func execReturnOp(f *frames.Frame, op int) types.Value {
	if op == RETURN {
		return types.Value{}
	}
	return f.Pop()
}
