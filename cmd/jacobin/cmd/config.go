/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"os"

	"jacobin/classloader"
	"jacobin/globals"
	"jacobin/util"
)

// classpathEnvVar is the environment variable consulted for the classpath
// fallback when neither -cp nor -classpath is given. Kept as
// ROBUSTA_CLASSPATH for compatibility with existing deployment scripts
// rather than renamed to a JACOBIN_-prefixed variable.
const classpathEnvVar = "ROBUSTA_CLASSPATH"

// defaultClasspathRoot is used when neither -cp/-classpath nor
// ROBUSTA_CLASSPATH is set.
const defaultClasspathRoot = "./classes"

// resolveClasspathEntries applies the classpath precedence: the
// -cp/-classpath flag, then the ROBUSTA_CLASSPATH environment variable,
// then a single default root.
func resolveClasspathEntries(flagValue string) []string {
	if flagValue != "" {
		return util.ConvertClasspathEntries(flagValue)
	}
	if env := os.Getenv(classpathEnvVar); env != "" {
		return util.ConvertClasspathEntries(env)
	}
	return []string{defaultClasspathRoot}
}

// installClasspath resolves and installs the classpath into both the
// classloader's method area and globals (so native plugins and
// diagnostics can read it back).
func installClasspath(entries []string) error {
	g := globals.InitGlobals("jacobin")
	g.Classpath = entries

	cp, err := classloader.NewClasspath(entries)
	if err != nil {
		return err
	}
	classloader.SetClasspath(cp)
	return nil
}
