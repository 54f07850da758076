/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package shutdown centralizes the VM's exit codes and the single place
// os.Exit is called from, so that tests can swap in a non-exiting hook.
package shutdown

import "os"

// Exit codes: 0 clean completion, 1 unhandled Java exception from main,
// non-zero on VM launch errors.
const (
	OK           = 0
	APP_EXCEPTION = 1
	JVM_EXCEPTION = 2
)

// Hook, if non-nil, is called instead of os.Exit -- tests install a
// recording hook so they can assert on the requested exit code without
// killing the test binary.
var Hook func(code int)

// Exit terminates the VM with the given exit code.
func Exit(code int) {
	if Hook != nil {
		Hook(code)
		return
	}
	os.Exit(code)
}
