/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package cmd is the jacobin CLI, built with cobra/pflag (the stack
// mabhi256-jdiag and saferwall-pe both use for their own command surfaces),
// wiring a <program> [options] <main_class> [args...] contract onto the
// jvm package's VM facade.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// jacobinVersion is the version string printed by -version/-showversion and
// `jacobin version`. It has no JVMS meaning; it identifies this build.
const jacobinVersion = "0.1.0-dev"

var (
	classpathFlag string
	jarFlag       string
	showVersion   bool
)

var rootCmd = &cobra.Command{
	Use:   "jacobin [options] <main_class> [args...]",
	Short: "A Java SE 8 class-file interpreter",
	Long: `jacobin loads a .class file off a classpath, links it into the
runtime type system, and interprets its bytecode on a managed heap,
implementing the core of the JVMS SE 8 class-file and bytecode standard.`,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
	SilenceErrors:         true,
	Args:                  cobra.ArbitraryArgs,
	RunE: func(c *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
		}
		if len(args) == 0 && jarFlag == "" {
			if showVersion {
				return nil
			}
			return c.Help()
		}
		return launch(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&classpathFlag, "cp", "", "classpath (search roots for .class files, ':'/';' separated)")
	rootCmd.PersistentFlags().StringVar(&classpathFlag, "classpath", "", "classpath (alias of -cp)")
	rootCmd.PersistentFlags().StringVar(&jarFlag, "jar", "", "run the main class named in <jar>'s META-INF/MANIFEST.MF")
	rootCmd.Flags().BoolVar(&showVersion, "showversion", false, "print version information and continue")
	rootCmd.Flags().Bool("version", false, "print version information and exit")

	rootCmd.AddCommand(runCmd, inspectCmd, versionCmd)
}

// Execute is the CLI entrypoint invoked by main(). It rewrites the
// JVM-style single-dash long flags (-version, -showversion, -help, -?,
// -cp, -classpath, -jar) into pflag's double-dash form before handing
// argv to cobra, since getopt-style single-dash long options aren't a
// form pflag parses natively.
func Execute() {
	os.Args = normalizeArgs(os.Args)

	if hasVersionFlag(os.Args[1:]) {
		printVersion()
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

var jvmStyleFlags = map[string]string{
	"-cp":          "--cp",
	"-classpath":   "--classpath",
	"-jar":         "--jar",
	"-version":     "--version",
	"-showversion": "--showversion",
	"-help":        "--help",
	"-?":           "--help",
}

var jvmStyleFlagTakesValue = map[string]bool{"-cp": true, "-classpath": true, "-jar": true}

// normalizeArgs rewrites recognized JVM-style single-dash flags up to (but
// not including) the first argument that isn't one of them -- the main
// class name and the program's own args that follow it are left untouched,
// since a user program's args may themselves start with '-'.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	out = append(out, args[0])
	i := 1
	for ; i < len(args); i++ {
		a := args[i]
		rewritten, known := jvmStyleFlags[a]
		if !known {
			break
		}
		out = append(out, rewritten)
		if jvmStyleFlagTakesValue[a] && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	out = append(out, args[i:]...)
	return out
}

// hasVersionFlag reports whether -version/--version appears among the
// pre-mainclass flags; -version exits 0 immediately, unlike -showversion
// which continues to launch the main class.
func hasVersionFlag(args []string) bool {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			return true
		case "--cp", "--classpath", "--jar":
			i++ // skip the flag's value
		case "--showversion", "--help", "--?":
			// no-ops for this check
		default:
			return false
		}
	}
	return false
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "jacobin version %s (Java SE 8 class-file standard)\n", jacobinVersion)
}
