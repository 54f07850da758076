/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2023-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package excNames is a flat table of the JVM-defined exception/error classes
// the interpreter and the gfunction plugins need to throw. It exists so that
// callers can refer to "NullPointerException" by a Go identifier rather than
// repeating the binary-name string everywhere.
package excNames

// ExceptionType is an opaque ID for one of the exception/error classes below.
type ExceptionType int

const (
	Unknown ExceptionType = iota
	ArithmeticException
	ArrayIndexOutOfBoundsException
	ClassCastException
	ClassCircularityError
	ClassFormatError
	ClassNotFoundException
	IllegalArgumentException
	IllegalMonitorStateException
	IncompatibleClassChangeError
	IndexOutOfBoundsException
	IOException
	NegativeArraySizeException
	NoClassDefFoundError
	NoSuchFieldException
	NoSuchMethodException
	NullPointerException
	OutOfMemoryError
	StackOverflowError
	UnsupportedOperationException
	AbstractMethodError
)

var names = map[ExceptionType]string{
	ArithmeticException:           "java/lang/ArithmeticException",
	ArrayIndexOutOfBoundsException: "java/lang/ArrayIndexOutOfBoundsException",
	ClassCastException:            "java/lang/ClassCastException",
	ClassCircularityError:         "java/lang/ClassCircularityError",
	ClassFormatError:              "java/lang/ClassFormatError",
	ClassNotFoundException:       "java/lang/ClassNotFoundException",
	IllegalArgumentException:      "java/lang/IllegalArgumentException",
	IllegalMonitorStateException:  "java/lang/IllegalMonitorStateException",
	IncompatibleClassChangeError: "java/lang/IncompatibleClassChangeError",
	IndexOutOfBoundsException:    "java/lang/IndexOutOfBoundsException",
	IOException:                  "java/io/IOException",
	NegativeArraySizeException:   "java/lang/NegativeArraySizeException",
	NoClassDefFoundError:         "java/lang/NoClassDefFoundError",
	NoSuchFieldException:         "java/lang/NoSuchFieldException",
	NoSuchMethodException:        "java/lang/NoSuchMethodException",
	NullPointerException:         "java/lang/NullPointerException",
	OutOfMemoryError:             "java/lang/OutOfMemoryError",
	StackOverflowError:           "java/lang/StackOverflowError",
	UnsupportedOperationException: "java/lang/UnsupportedOperationException",
	AbstractMethodError:          "java/lang/AbstractMethodError",
}

// JVMClassName returns the binary name of the given exception type, or ""
// if it's not recognized.
func JVMClassName(e ExceptionType) string {
	return names[e]
}
