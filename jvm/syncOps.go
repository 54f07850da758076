/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/heap"
	"jacobin/thread"
)

// execSyncOp implements monitorenter/monitorexit, JVMS §6.5, delegating to
// the heap package's per-object monitor table (JVMS §2.11.10).
func execSyncOp(th *thread.Thread, f *frames.Frame, op int) error {
	ref := f.Pop()
	if ref.IsNull() {
		return throwBuiltin(excNames.NullPointerException, "")
	}
	switch op {
	case MONITORENTER:
		heap.EnterMonitor(ref, f.ThreadID)
		return nil
	case MONITOREXIT:
		if err := heap.ExitMonitor(ref, f.ThreadID); err != nil {
			return javaExceptionFor(err)
		}
		return nil
	}
	return nil
}
