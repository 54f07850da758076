/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jacobin/globals"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(c *cobra.Command, args []string) {
		printVersion()
		fmt.Printf("supports class-file major versions up to %d\n", globals.MaxJavaVersion)
	},
}
