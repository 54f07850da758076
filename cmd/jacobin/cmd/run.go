/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jacobin/classloader"
	"jacobin/jvm"
	"jacobin/shutdown"
)

var runCmd = &cobra.Command{
	Use:                   "run [options] <main_class> [args...]",
	Short:                 "Load and interpret a class's public static void main(String[])",
	DisableFlagsInUseLine: true,
	Args: func(c *cobra.Command, args []string) error {
		if jarFlag == "" && len(args) < 1 {
			return fmt.Errorf("requires a <main_class> argument, or -jar")
		}
		return nil
	},
	SilenceUsage: true,
	RunE: func(c *cobra.Command, args []string) error {
		return launch(args)
	},
}

// launch installs the classpath, launches the VM facade against either the
// named main class or (when -jar is set) the class named by the jar's
// manifest, and exits the process with the VM's reported exit code: 0
// clean, 1 unhandled exception, non-zero on a launch error.
func launch(args []string) error {
	if jarFlag != "" {
		return launchJar(args)
	}
	return runMainClass(args[0], args[1:])
}

func launchJar(programArgs []string) error {
	jarMain, err := classloader.MainClassFromJar(jarFlag)
	if err != nil {
		return fmt.Errorf("-jar %s: %w", jarFlag, err)
	}
	if jarMain == "" {
		return fmt.Errorf("-jar %s: no Main-Class attribute in manifest", jarFlag)
	}
	entries := append([]string{jarFlag}, resolveClasspathEntries(classpathFlag)...)
	if err := installClasspath(entries); err != nil {
		fmt.Fprintln(os.Stderr, err)
		shutdown.Exit(shutdown.JVM_EXCEPTION)
		return nil
	}
	shutdown.Exit(jvm.Run(jarMain, programArgs))
	return nil
}

// runMainClass installs the classpath and launches the VM facade against
// mainClass, exiting with the VM's reported exit code.
func runMainClass(mainClass string, args []string) error {
	if err := installClasspath(resolveClasspathEntries(classpathFlag)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		shutdown.Exit(shutdown.JVM_EXCEPTION)
		return nil
	}

	shutdown.Exit(jvm.Run(mainClass, args))
	return nil
}
