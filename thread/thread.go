/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package thread models one interpreter thread: its ID, its name and its
// frame stack. Monitor state lives in the heap package, not here. The
// teacher's jvm package referenced a single global MainThread; this
// generalizes that into a type so more than one can exist: the VM facade
// launches one thread for `jacobin run`, and each class initializer runs
// on a bookkeeping thread of its own.
package thread

import (
	"jacobin/frames"
	"jacobin/globals"
)

// Thread is one execution context: a frame stack plus tracing/exit state.
type Thread struct {
	ID       int64
	Name     string
	Frames   *frames.FrameStack
	Trace    bool
	ExitCode int

	Parent *Thread // nil for the main thread
}

// New creates a Thread with a fresh, empty frame stack and the next
// globally-assigned thread ID.
func New(name string) *Thread {
	return &Thread{
		ID:     int64(globals.GetGlobalRef().NextThreadID()),
		Name:   name,
		Frames: frames.CreateFrameStack(),
	}
}

// NewMain creates the thread that runs a launched program's main method.
func NewMain() *Thread { return New("main") }
