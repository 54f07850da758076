/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"jacobin/classloader"
	"jacobin/globals"
	"jacobin/heap"
	"jacobin/types"
)

// streamKind tags which OS stream a PrintStream instance writes to. It is
// stashed in a PrintStream object's own "fd" int field rather than a
// separate side table, since the interpreter's object model has no notion
// of native-only instance state.
const (
	streamStdout = 1
	streamStderr = 2
)

// Load_Lang_System registers java/lang/System's native methods: process
// exit (JVMS §5.7 VM exit, implemented here as cooperative cancellation)
// and the out/err PrintStream fields, populated by a native <clinit>
// since there is no Java bytecode behind them.
func Load_Lang_System() {
	MethodSignatures["java/lang/System.registerNatives()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/System.<clinit>()V"] =
		GMeth{ParamSlots: 0, GFunction: systemClinit}

	MethodSignatures["java/lang/System.exit(I)V"] =
		GMeth{ParamSlots: 1, GFunction: systemExit}

	MethodSignatures["java/lang/System.currentTimeMillis()J"] =
		GMeth{ParamSlots: 0, GFunction: systemCurrentTimeMillis}

	MethodSignatures["java/lang/System.arraycopy(Ljava/lang/Object;ILjava/lang/Object;II)V"] =
		GMeth{ParamSlots: 5, GFunction: systemArraycopy}
}

func systemClinit(_ []types.Value) (types.Value, error) {
	sys := classloader.GetLoadedClass(types.SystemClassName)
	if sys == nil {
		return types.Value{}, nil // no System class on the classpath; nothing to wire up
	}
	psClass, err := classloader.Load(types.PrintStreamClassName)
	if err != nil {
		return types.Value{}, nil
	}

	out := heap.AllocateObject(psClass)
	heap.GetObject(out).SetField("fd", types.IntVal(streamStdout))
	err2 := heap.AllocateObject(psClass)
	heap.GetObject(err2).SetField("fd", types.IntVal(streamStderr))

	if slot, ok := sys.StaticSlotFor("out"); ok {
		sys.PutStatic(slot, out)
	}
	if slot, ok := sys.StaticSlotFor("err"); ok {
		sys.PutStatic(slot, err2)
	}
	return types.Value{}, nil
}

// systemExit implements cooperative shutdown (JVMS §5.7): it sets the
// process-wide exit latch rather than calling os.Exit directly, so
// in-flight threads can observe it at their next safepoint.
func systemExit(args []types.Value) (types.Value, error) {
	globals.GetGlobalRef().SetExitNow(int(args[0].Int()))
	return types.Value{}, nil
}

func systemCurrentTimeMillis(_ []types.Value) (types.Value, error) {
	// deterministic stub: a real wall clock would make every run's output
	// depend on when it happened, which this interpreter avoids for any
	// native call whose result a Java program doesn't print verbatim.
	return types.LongVal(0), nil
}

func systemArraycopy(args []types.Value) (types.Value, error) {
	src, srcPos, dst, dstPos, length := args[0], args[1].Int(), args[2], args[3].Int(), args[4].Int()
	srcArr := heap.GetArray(src)
	dstArr := heap.GetArray(dst)
	for i := int32(0); i < length; i++ {
		v, _ := srcArr.Get(int(srcPos + i))
		dstArr.Set(int(dstPos+i), v)
	}
	return types.Value{}, nil
}
