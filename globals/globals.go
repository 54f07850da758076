/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds process-wide VM configuration: the resolved
// classpath, the supported class-file version ceiling, the exit latch used
// by cooperative thread cancellation, and other state that every subsystem
// needs a handle to without importing each other in a cycle.
package globals

import (
	"sync"
	"sync/atomic"
)

// MaxJavaVersion is the highest major class-file version this VM accepts
// (Java 1.1 through Java 17 span major versions 45-61); this build is
// capped at 52 (Java SE 8).
const MaxJavaVersion = 52

// MaxJavaVersionRaw is MaxJavaVersion expressed the way it appears in a
// class file (major version number, no offset).
const MaxJavaVersionRaw = MaxJavaVersion

// Globals is the process-wide configuration and coordination block.
type Globals struct {
	JacobinName string
	Classpath   []string
	StartingJar string
	JavaHome    string

	// TraceClass/TraceCloadi/TraceInst are per-subsystem trace switches.
	// Nothing in this repository reads them; trace.Trace() output does not
	// depend on them.
	TraceClass bool
	TraceInst  bool
	TraceCloadi bool

	// exitNow/ExitCode implement the cooperative-cancellation latch backing
	// System.exit() (JVMS §5.7 VM exit): System.exit() sets these; threads
	// observe them at the next safepoint (method invocation, monitor entry)
	// and terminate.
	exitNow  atomic.Bool
	exitCode atomic.Int32

	// FuncThrowException lets lower layers (classloader) raise a Java
	// exception without importing the jvm/heap packages (which would cycle
	// back to classloader); the jvm package installs the real
	// implementation at startup.
	FuncThrowException func(excType int, msg string)

	threadsMu sync.Mutex
	nextTID   int
}

var (
	instance *Globals
	initOnce sync.Once
	mu       sync.Mutex
)

// InitGlobals (re)initializes the singleton Globals instance. It is safe to
// call repeatedly (e.g. once per test) to reset state.
func InitGlobals(jacobinName string) *Globals {
	mu.Lock()
	defer mu.Unlock()
	instance = &Globals{
		JacobinName: jacobinName,
		Classpath:   []string{"."},
		JavaHome:    "",
	}
	instance.FuncThrowException = func(excType int, msg string) {
		// overwritten by jvm.InstallExceptionThrower at VM startup; this
		// default just prevents a nil-pointer panic in isolated unit tests
		// of the classloader that never boot the full interpreter.
	}
	return instance
}

// GetGlobalRef returns the singleton Globals instance, lazily creating one
// with default settings the first time it's called.
func GetGlobalRef() *Globals {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		mu.Unlock()
		InitGlobals("jacobin")
		mu.Lock()
	}
	return instance
}

// GetInstance is a synonym for GetGlobalRef, matching an older call-site
// naming convention kept in a couple of the teacher's files.
func GetInstance() *Globals { return GetGlobalRef() }

func (g *Globals) SetExitNow(code int) {
	g.exitCode.Store(int32(code))
	g.exitNow.Store(true)
}

func (g *Globals) ExitNow() bool {
	return g.exitNow.Load()
}

func (g *Globals) ExitCode() int {
	return int(g.exitCode.Load())
}

// NextThreadID hands out sequential, unique thread IDs.
func (g *Globals) NextThreadID() int {
	g.threadsMu.Lock()
	defer g.threadsMu.Unlock()
	g.nextTID++
	return g.nextTID
}
