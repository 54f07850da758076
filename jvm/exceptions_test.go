/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"jacobin/classloader"
	"jacobin/heap"
	"jacobin/types"
)

func TestExecAthrow(t *testing.T) {
	heap.Reset()
	classloader.ResetMethodArea()
	cls := &classloader.Class{Name: "demo/Boom", Methods: map[string]*classloader.Method{}}
	classloader.RegisterClassForTest(cls)
	ref := heap.AllocateObject(cls)

	f := newOpFrame()
	f.Push(ref)
	err := execAthrow(f)
	je, ok := err.(*JavaException)
	if !ok {
		t.Fatalf("error type = %T, want *JavaException", err)
	}
	if je.ClassName != "demo/Boom" {
		t.Errorf("thrown class = %s, want demo/Boom", je.ClassName)
	}
}

func TestExecAthrowNullPointer(t *testing.T) {
	heap.Reset()
	f := newOpFrame()
	f.Push(types.NullReference)
	err := execAthrow(f)
	assertExcType(t, err, "NullPointerException")
}

func TestJavaExceptionForPassesThroughJavaException(t *testing.T) {
	je := &JavaException{ClassName: "demo/Already"}
	if got := javaExceptionFor(je); got != error(je) {
		t.Errorf("javaExceptionFor should return an existing *JavaException unchanged")
	}
}

func TestJavaExceptionForAdaptsClassLoaderErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"ClassNotFoundError", &classloader.ClassNotFoundError{ClassName: "demo/Missing"}, "ClassNotFoundException"},
		{"ClassCircularityError", &classloader.ClassCircularityError{ClassName: "demo/Loop"}, "ClassCircularityError"},
		{"ClassFormatError", &classloader.ClassFormatError{Msg: "truncated"}, "ClassFormatError"},
		{"NoClassDefFoundError", &classloader.NoClassDefFoundError{ClassName: "demo/Failed"}, "NoClassDefFoundError"},
		{"NoSuchFieldError", &classloader.NoSuchFieldError{Class: "demo/C", Name: "f", Desc: "I"}, "NoSuchFieldException"},
		{"NoSuchMethodError", &classloader.NoSuchMethodError{Class: "demo/C", Name: "m", Desc: "()V"}, "NoSuchMethodException"},
		{"IllegalMonitorStateError", &heap.IllegalMonitorStateError{}, "IllegalMonitorStateException"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := javaExceptionFor(c.err)
			assertExcType(t, got, c.want)
		})
	}
}

func TestFindHandlerMatchesInstanceOf(t *testing.T) {
	heap.Reset()
	classloader.ResetMethodArea()
	super := &classloader.Class{Name: "demo/SuperExc", Methods: map[string]*classloader.Method{}}
	classloader.RegisterClassForTest(super)
	sub := &classloader.Class{Name: "demo/SubExc", Super: super, Methods: map[string]*classloader.Method{}}
	classloader.RegisterClassForTest(sub)
	other := &classloader.Class{Name: "demo/Other", Methods: map[string]*classloader.Method{}}
	classloader.RegisterClassForTest(other)

	ref := heap.AllocateObject(sub)
	je := &JavaException{ClassName: sub.Name, Ref: ref}

	f := newOpFrame()
	f.Method = &classloader.Method{
		ExcTable: []classloader.ExceptionTableEntry{
			{StartPC: 0, EndPC: 10, HandlerPC: 20, CatchType: "demo/Other"},
			{StartPC: 0, EndPC: 10, HandlerPC: 30, CatchType: "demo/SuperExc"},
		},
	}
	handlerPC, ok := findHandler(f, 5, je)
	if !ok {
		t.Fatal("expected a handler match")
	}
	if handlerPC != 30 {
		t.Errorf("handlerPC = %d, want 30 (first entry is for an unrelated class)", handlerPC)
	}
}

func TestFindHandlerCatchAll(t *testing.T) {
	heap.Reset()
	classloader.ResetMethodArea()
	cls := &classloader.Class{Name: "demo/AnyExc", Methods: map[string]*classloader.Method{}}
	classloader.RegisterClassForTest(cls)
	ref := heap.AllocateObject(cls)
	je := &JavaException{ClassName: cls.Name, Ref: ref}

	f := newOpFrame()
	f.Method = &classloader.Method{
		ExcTable: []classloader.ExceptionTableEntry{
			{StartPC: 0, EndPC: 10, HandlerPC: 40, CatchType: ""},
		},
	}
	handlerPC, ok := findHandler(f, 3, je)
	if !ok || handlerPC != 40 {
		t.Errorf("findHandler = (%d, %v), want (40, true)", handlerPC, ok)
	}
}

func TestFindHandlerOutOfRange(t *testing.T) {
	heap.Reset()
	classloader.ResetMethodArea()
	cls := &classloader.Class{Name: "demo/AnyExc", Methods: map[string]*classloader.Method{}}
	classloader.RegisterClassForTest(cls)
	ref := heap.AllocateObject(cls)
	je := &JavaException{ClassName: cls.Name, Ref: ref}

	f := newOpFrame()
	f.Method = &classloader.Method{
		ExcTable: []classloader.ExceptionTableEntry{
			{StartPC: 0, EndPC: 10, HandlerPC: 40, CatchType: ""},
		},
	}
	if _, ok := findHandler(f, 15, je); ok {
		t.Error("a handler range that does not cover pc should not match")
	}
}
