/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction is the native-method dispatcher: a flat table of Go
// implementations standing in for methods the class file never carries
// bytecode for (JVMS §4.6 ACC_NATIVE). Each entry is keyed by the
// method's fully-qualified name+descriptor, matching the teacher's
// MethodSignatures["class.name(desc)"] convention, but the GFunction itself
// takes and returns types.Value rather than interface{} so a native call
// costs no boxing, consistent with the rest of the interpreter.
package gfunction

import (
	"fmt"

	"jacobin/types"
)

// GMeth is one native method's calling contract: ParamSlots records how
// many operand-stack slots its arguments occupy (including a leading
// receiver for instance methods, with long/double counting two), and
// GFunction is the Go function that performs the call. The interpreter
// builds the argument list from the method descriptor and does not read
// ParamSlots.
type GMeth struct {
	ParamSlots int
	GFunction  func(args []types.Value) (types.Value, error)
}

// MethodSignatures is the native-method table, populated by each
// Load_Lang_*/Load_Io_* registration function at init time.
var MethodSignatures = map[string]GMeth{}

func init() {
	Load_Lang_Object()
	Load_Lang_Class()
	Load_Lang_Throwable()
	Load_Lang_String()
	Load_Lang_StringBuilder()
	Load_Lang_System()
	Load_Lang_Thread()
	Load_Io_PrintStream()
}

// UnregisteredNativeMethodError is returned when the interpreter asks for a
// native method this dispatcher has no entry for.
type UnregisteredNativeMethodError struct{ Key string }

func (e *UnregisteredNativeMethodError) Error() string {
	return fmt.Sprintf("UnsatisfiedLinkError: %s", e.Key)
}

// Invoke looks up and runs the native method identified by class/name/desc.
func Invoke(className, methodName, desc string, args []types.Value) (types.Value, error) {
	key := className + "." + methodName + desc
	g, ok := MethodSignatures[key]
	if !ok {
		return types.Value{}, &UnregisteredNativeMethodError{Key: key}
	}
	return g.GFunction(args)
}
