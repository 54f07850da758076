/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/classloader"
	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/heap"
	"jacobin/types"
)

// execAthrow implements athrow, JVMS §6.5: pop the Throwable reference off
// the stack and raise it through the normal exception-unwinding path.
func execAthrow(f *frames.Frame) error {
	ref := f.Pop()
	if ref.IsNull() {
		return throwBuiltin(excNames.NullPointerException, "")
	}
	className := heap.GetObject(ref).Class.Name
	return &JavaException{ClassName: className, Ref: ref}
}

// JavaException is a Java exception/error in flight, threaded back to
// runFrame as a Go error so the normal exception-table search (JVMS §2.10)
// can unwind it.
type JavaException struct {
	ClassName string
	Message   string
	Ref       types.Value // heap handle of the Throwable instance, or NullReference
}

func (e *JavaException) Error() string {
	if e.Message != "" {
		return e.ClassName + ": " + e.Message
	}
	return e.ClassName
}

// throwBuiltin raises one of the VM's own exception types (ArithmeticException,
// NullPointerException, etc.), allocating a heap instance when the class can
// be loaded from the classpath.
func throwBuiltin(excType excNames.ExceptionType, msg string) error {
	className := excNames.JVMClassName(excType)
	je := &JavaException{ClassName: className, Message: msg, Ref: types.NullReference}
	if c, err := classloader.Load(className); err == nil {
		je.Ref = heap.AllocateObject(c)
	}
	return je
}

// typedNativeError is implemented by gfunction's own error types, letting
// native methods (which cannot import this package, since the dependency
// runs the other way) signal which built-in exception they mean to raise.
type typedNativeError interface {
	error
	ExcType() excNames.ExceptionType
}

// javaExceptionFor adapts an arbitrary Go error raised by a lower layer
// (the class loader, field/method resolution, a native method) into the
// matching built-in JavaException.
func javaExceptionFor(err error) error {
	if je, ok := err.(*JavaException); ok {
		return je
	}
	if tne, ok := err.(typedNativeError); ok {
		return throwBuiltin(tne.ExcType(), tne.Error())
	}
	switch err.(type) {
	case *classloader.ClassNotFoundError:
		return throwBuiltin(excNames.ClassNotFoundException, err.Error())
	case *classloader.ClassCircularityError:
		return throwBuiltin(excNames.ClassCircularityError, err.Error())
	case *classloader.ClassFormatError:
		return throwBuiltin(excNames.ClassFormatError, err.Error())
	case *classloader.NoClassDefFoundError:
		return throwBuiltin(excNames.NoClassDefFoundError, err.Error())
	case *classloader.NoSuchFieldError:
		return throwBuiltin(excNames.NoSuchFieldException, err.Error())
	case *classloader.NoSuchMethodError:
		return throwBuiltin(excNames.NoSuchMethodException, err.Error())
	case *heap.IllegalMonitorStateError:
		return throwBuiltin(excNames.IllegalMonitorStateException, err.Error())
	default:
		return err
	}
}

// findHandler searches f's exception table for a handler covering pc that
// matches je (JVMS §2.10): scanned top-to-bottom (first match wins),
// start_pc <= pc < end_pc, and catch_type "" (finally/catch-all) or an
// is_instance_of match against the thrown class.
func findHandler(f *frames.Frame, pc int, je *JavaException) (int, bool) {
	var thrownClass *classloader.Class
	if !je.Ref.IsNull() {
		thrownClass = heap.GetObject(je.Ref).Class
	}
	for _, e := range f.Method.ExcTable {
		if pc < e.StartPC || pc >= e.EndPC {
			continue
		}
		if e.CatchType == "" {
			return e.HandlerPC, true
		}
		if thrownClass == nil {
			continue
		}
		catchClass, err := classloader.Load(e.CatchType)
		if err != nil {
			continue
		}
		if classloader.IsInstanceOf(thrownClass, catchClass) {
			return e.HandlerPC, true
		}
	}
	return 0, false
}
