/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/classloader"
	"jacobin/heap"
	"jacobin/thread"
	"jacobin/trace"
	"jacobin/types"
)

func init() {
	classloader.InstallClinitRunner(runClinit)
}

// runClinit executes a class's <clinit> as an ordinary static method on a
// dedicated bookkeeping thread, breaking the classloader -> interpreter
// import cycle via classloader.InstallClinitRunner (JVMS §5.5
// initialization).
func runClinit(m *classloader.Method) error {
	th := thread.New("<clinit>:" + m.Owner.Name)
	_, err := invokeMethod(th, m, nil)
	return err
}

// Run loads mainClass, runs its static initializers, and interprets its
// public static void main(String[]) to completion on a fresh main thread
// (JVMS §5.2 Creation of java.lang.Thread Objects for the Initial Thread).
// It returns the process exit code: 0 on a normal return, 1 if the class
// can't be found/initialized or main() exits via an uncaught exception.
func Run(mainClass string, args []string) int {
	th := thread.NewMain()

	c, err := classloader.Load(mainClass)
	if err != nil {
		reportUnhandled(err)
		return 1
	}
	if err := classloader.EnsureInitialized(c, th.ID); err != nil {
		reportUnhandled(err)
		return 1
	}

	m := c.FindMethod("main", "([Ljava/lang/String;)V")
	if m == nil {
		trace.Error("no such method: main([Ljava/lang/String;)V in " + mainClass)
		return 1
	}

	argsRef := buildArgsArray(args)
	if _, err := invokeMethod(th, m, []types.Value{argsRef}); err != nil {
		reportUnhandled(err)
		return 1
	}
	return 0
}

func buildArgsArray(args []string) types.Value {
	elemType := types.FieldType{Kind: types.KindClass, ClassName: types.StringClassName}
	arrRef := heap.AllocateArray(elemType, len(args))
	arr := heap.GetArray(arrRef)
	for i, s := range args {
		arr.Set(i, heap.InternString(s))
	}
	return arrRef
}

func reportUnhandled(err error) {
	trace.Error("Exception in thread \"main\" " + err.Error())
}
