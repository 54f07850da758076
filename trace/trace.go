/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is the VM's structured event sink. It has no semantic
// effect on execution -- it exists purely to surface diagnostics the way
// the teacher's classloader.go does via trace.Trace/trace.Error.
package trace

import (
	"log"
	"os"
	"sync"
)

// Level controls trace verbosity, mirroring the teacher's FINE/FINEST/SEVERE
// scale collapsed to the handful of levels this repo actually distinguishes.
type Level int

const (
	SEVERE Level = iota
	WARNING
	INFO
	FINE
	FINEST
)

var (
	mu      sync.Mutex
	logger  *log.Logger
	current Level = WARNING
)

// Init (re)configures the trace sink to write to stderr. Safe to call more
// than once (e.g. once per test).
func Init() {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(os.Stderr, "", 0)
	current = WARNING
}

func ensureInit() {
	if logger == nil {
		Init()
	}
}

// SetLevel sets the minimum level that will be emitted.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func emit(l Level, prefix, msg string) {
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if l > current {
		return
	}
	logger.Println(prefix + msg)
}

// Trace emits an informational/fine-grained diagnostic.
func Trace(msg string) { emit(FINE, "[trace] ", msg) }

// Info emits a level-INFO diagnostic.
func Info(msg string) { emit(INFO, "[info] ", msg) }

// Warning emits a level-WARNING diagnostic.
func Warning(msg string) { emit(WARNING, "[warning] ", msg) }

// Error emits a level-SEVERE diagnostic. Errors are always emitted
// regardless of the configured level.
func Error(msg string) {
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	logger.Println("[error] " + msg)
}
