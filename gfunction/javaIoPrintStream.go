/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"fmt"
	"os"

	"jacobin/heap"
	"jacobin/types"
)

// Load_Io_PrintStream registers java/io/PrintStream's print/println
// overloads, routed to stdout or stderr by the receiver's "fd" field
// (set once, by System's native <clinit>, per javaLangSystem.go).
func Load_Io_PrintStream() {
	MethodSignatures["java/io/PrintStream.println()V"] =
		GMeth{ParamSlots: 1, GFunction: psPrintlnVoid}
	MethodSignatures["java/io/PrintStream.println(Ljava/lang/String;)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintlnString}
	MethodSignatures["java/io/PrintStream.println(I)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintlnInt}
	MethodSignatures["java/io/PrintStream.println(J)V"] =
		GMeth{ParamSlots: 3, GFunction: psPrintlnLong}
	MethodSignatures["java/io/PrintStream.println(Z)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintlnBool}
	MethodSignatures["java/io/PrintStream.println(C)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintlnChar}
	MethodSignatures["java/io/PrintStream.println(D)V"] =
		GMeth{ParamSlots: 3, GFunction: psPrintlnDouble}
	MethodSignatures["java/io/PrintStream.println(Ljava/lang/Object;)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintlnObject}
	MethodSignatures["java/io/PrintStream.print(Ljava/lang/String;)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintString}
	MethodSignatures["java/io/PrintStream.print(I)V"] =
		GMeth{ParamSlots: 2, GFunction: psPrintInt}
}

func psWriter(ref types.Value) *os.File {
	obj := heap.GetObject(ref)
	fd, _ := obj.GetField("fd")
	if fd.Int() == streamStderr {
		return os.Stderr
	}
	return os.Stdout
}

func psPrintlnVoid(args []types.Value) (types.Value, error) {
	fmt.Fprintln(psWriter(args[0]))
	return types.Value{}, nil
}

func psPrintlnString(args []types.Value) (types.Value, error) {
	s := "null"
	if !args[1].IsNull() {
		s = goString(args[1])
	}
	fmt.Fprintln(psWriter(args[0]), s)
	return types.Value{}, nil
}

func psPrintlnInt(args []types.Value) (types.Value, error) {
	fmt.Fprintln(psWriter(args[0]), args[1].Int())
	return types.Value{}, nil
}

func psPrintlnLong(args []types.Value) (types.Value, error) {
	fmt.Fprintln(psWriter(args[0]), args[1].Long())
	return types.Value{}, nil
}

func psPrintlnBool(args []types.Value) (types.Value, error) {
	fmt.Fprintln(psWriter(args[0]), args[1].Int() != 0)
	return types.Value{}, nil
}

func psPrintlnChar(args []types.Value) (types.Value, error) {
	fmt.Fprintln(psWriter(args[0]), string(rune(args[1].Int())))
	return types.Value{}, nil
}

func psPrintlnDouble(args []types.Value) (types.Value, error) {
	fmt.Fprintln(psWriter(args[0]), args[1].Double())
	return types.Value{}, nil
}

func psPrintlnObject(args []types.Value) (types.Value, error) {
	if args[1].IsNull() {
		fmt.Fprintln(psWriter(args[0]), "null")
		return types.Value{}, nil
	}
	v, err := objectToString([]types.Value{args[1]})
	if err != nil {
		return types.Value{}, err
	}
	fmt.Fprintln(psWriter(args[0]), goString(v))
	return types.Value{}, nil
}

func psPrintString(args []types.Value) (types.Value, error) {
	s := "null"
	if !args[1].IsNull() {
		s = goString(args[1])
	}
	fmt.Fprint(psWriter(args[0]), s)
	return types.Value{}, nil
}

func psPrintInt(args []types.Value) (types.Value, error) {
	fmt.Fprint(psWriter(args[0]), args[1].Int())
	return types.Value{}, nil
}
