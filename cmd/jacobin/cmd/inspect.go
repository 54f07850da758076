/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jacobin/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:                   "inspect [options] <main_class> [args...]",
	Short:                 "Step through a class's main() one opcode at a time in a TUI",
	DisableFlagsInUseLine: true,
	Args:                  cobra.MinimumNArgs(1),
	SilenceUsage:          true,
	RunE: func(c *cobra.Command, args []string) error {
		if err := installClasspath(resolveClasspathEntries(classpathFlag)); err != nil {
			return err
		}
		if err := inspect.Run(args[0], args[1:]); err != nil {
			return fmt.Errorf("inspect: %w", err)
		}
		return nil
	},
}
