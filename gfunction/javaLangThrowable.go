/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import "jacobin/types"

// Load_Lang_Throwable registers java/lang/Throwable's one native method.
// getMessage/toString/printStackTrace are ordinary Java bytecode on the
// real Throwable class file and need no Go backing; fillInStackTrace is
// native in the JDK itself, and this interpreter has no stack-trace
// capture to fill in (Non-goal), so it is a no-op that hands back the
// receiver, matching fillInStackTrace's own Throwable-returning signature.
func Load_Lang_Throwable() {
	MethodSignatures["java/lang/Throwable.fillInStackTrace()Ljava/lang/Throwable;"] =
		GMeth{ParamSlots: 1, GFunction: throwableFillInStackTrace}
}

func throwableFillInStackTrace(args []types.Value) (types.Value, error) {
	return args[0], nil
}
