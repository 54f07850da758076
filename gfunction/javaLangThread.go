/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"jacobin/excNames"
	"jacobin/types"
)

// Load_Lang_Thread registers java/lang/Thread's native methods. Only
// sleep is wired to real behavior; start/join would need the interpreter
// to hand back a goroutine handle, which is out of scope for the single
// main-thread launch the VM facade performs.
func Load_Lang_Thread() {
	MethodSignatures["java/lang/Thread.registerNatives()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/Thread.sleep(J)V"] =
		GMeth{ParamSlots: 2, GFunction: threadSleep}
}

func threadSleep(args []types.Value) (types.Value, error) {
	ms := args[0].Long()
	if ms < 0 {
		return types.Value{}, &excIllegalArgument{"sleep time must be non-negative"}
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return types.Value{}, nil
}

type excIllegalArgument struct{ msg string }

func (e *excIllegalArgument) Error() string { return e.msg }

func (e *excIllegalArgument) ExcType() excNames.ExceptionType {
	return excNames.IllegalArgumentException
}
