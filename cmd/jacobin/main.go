/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command jacobin is the VM's entrypoint: it resolves the classpath and
// main class, then launches the VM facade (jvm.Run).
package main

import "jacobin/cmd/jacobin/cmd"

func main() {
	cmd.Execute()
}
