/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"jacobin/trace"
)

// ClassFormatError is returned by the parser/format-checker for any
// malformed class file (truncation, bad magic, unsupported version,
// malformed attribute), per JVMS §4.8 format checking.
type ClassFormatError struct{ Msg string }

func (e *ClassFormatError) Error() string { return "Class Format Error: " + e.Msg }

// ClassNotFoundError is returned by the method area when no class source
// root has the requested binary name.
type ClassNotFoundError struct{ ClassName string }

func (e *ClassNotFoundError) Error() string {
	return "ClassNotFoundException: " + e.ClassName
}

// ClassCircularityError is returned when loading a class would require
// loading itself as its own (in)direct superclass/superinterface.
type ClassCircularityError struct{ ClassName string }

func (e *ClassCircularityError) Error() string {
	return "ClassCircularityError: " + e.ClassName
}

// NoSuchFieldError/NoSuchMethodError back constant-pool resolution
// failures (JVMS §5.4.3.2/§5.4.3.3).
type NoSuchFieldError struct{ Class, Name, Desc string }

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("NoSuchFieldError: %s.%s:%s", e.Class, e.Name, e.Desc)
}

type NoSuchMethodError struct{ Class, Name, Desc string }

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf("NoSuchMethodError: %s.%s%s", e.Class, e.Name, e.Desc)
}

// cfe ("class format error") builds a ClassFormatError, appending the
// file/line of the caller for diagnosability, and logs it via trace.Error --
// mirroring the teacher's cfe()/CFE() helper in classloader.go.
func cfe(msg string) error {
	errMsg := msg
	pc, _, _, ok := runtime.Caller(1)
	if ok {
		fn := runtime.FuncForPC(pc)
		fileName, fileLine := fn.FileLine(pc)
		errMsg = errMsg + " (detected by file: " + filepath.Base(fileName) +
			", line: " + strconv.Itoa(fileLine) + ")"
	}
	trace.Error("Class Format Error: " + errMsg)
	return &ClassFormatError{Msg: errMsg}
}

// CFE is the exported form of cfe, for use by other packages that need to
// surface a class-format error using the same convention (e.g. tests).
func CFE(msg string) error { return cfe(msg) }
