/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "jacobin/trace"

// clinitRunner executes a loaded class's <clinit>, if it has one. It is
// installed by the interpreter at VM startup: classloader cannot import
// the interpreter package (the dependency runs the other way), so the
// hook is supplied here rather than called directly.
var clinitRunner func(m *Method) error

// InstallClinitRunner lets the interpreter supply the actual bytecode
// execution of <clinit>, breaking what would otherwise be an import
// cycle between classloader and the interpreter.
func InstallClinitRunner(fn func(m *Method) error) { clinitRunner = fn }

// EnsureInitialized runs the JVMS §5.5 initialization protocol for c,
// recursively initializing its superclass first, then running <clinit> at
// most once. threadID identifies the calling thread for the re-entrant
// "already initializing on this very thread" case (e.g. a static
// initializer that constructs an instance of its own class).
func EnsureInitialized(c *Class, threadID int64) error {
	c.initMu.Lock()
	for {
		switch InitState(c.state.Load()) {
		case Initialized:
			c.initMu.Unlock()
			return nil
		case Errored:
			err := c.initErr
			c.initMu.Unlock()
			return &NoClassDefFoundError{ClassName: c.Name, Cause: err}
		case Initializing:
			if c.initOwner == threadID {
				// recursive initialization request from the thread already
				// running this class's <clinit> -- proceed without waiting.
				c.initMu.Unlock()
				return nil
			}
			c.initCond.Wait()
			continue
		default: // Unloaded, Loaded, Linking
			c.state.Store(int32(Initializing))
			c.initOwner = threadID
			c.initMu.Unlock()
			return runInitialization(c, threadID)
		}
	}
}

func runInitialization(c *Class, threadID int64) error {
	if c.Super != nil {
		if err := EnsureInitialized(c.Super, threadID); err != nil {
			markErrored(c, err)
			return err
		}
	}
	if err := initSuperinterfacesWithDefaults(c, threadID, map[*Class]bool{}); err != nil {
		markErrored(c, err)
		return err
	}

	clinit := c.Methods["<clinit>()V"]
	if clinit != nil && clinitRunner != nil {
		trace.Trace("running <clinit> for " + c.Name)
		if err := clinitRunner(clinit); err != nil {
			markErrored(c, err)
			return err
		}
	}

	c.initMu.Lock()
	c.state.Store(int32(Initialized))
	c.initOwner = -1
	c.initCond.Broadcast()
	c.initMu.Unlock()
	return nil
}

// initSuperinterfacesWithDefaults walks c's transitive superinterfaces
// (JVMS §5.5: "initialize the superclass first, then any superinterfaces
// that declare a default method") and initializes each one that declares a
// default method. seen prevents re-walking a superinterface reachable
// through more than one path in a diamond hierarchy.
func initSuperinterfacesWithDefaults(c *Class, threadID int64, seen map[*Class]bool) error {
	for _, iface := range c.Interfaces {
		if seen[iface] {
			continue
		}
		seen[iface] = true
		if declaresDefaultMethod(iface) {
			if err := EnsureInitialized(iface, threadID); err != nil {
				return err
			}
		}
		if err := initSuperinterfacesWithDefaults(iface, threadID, seen); err != nil {
			return err
		}
	}
	return nil
}

// declaresDefaultMethod reports whether iface itself (not its
// superinterfaces) declares a default method: a public, non-static,
// non-abstract instance method.
func declaresDefaultMethod(iface *Class) bool {
	for _, m := range iface.Methods {
		if !m.IsStatic() && !m.IsAbstract() && !m.IsPrivate() && m.Name != "<clinit>" {
			return true
		}
	}
	return false
}

func markErrored(c *Class, err error) {
	c.initMu.Lock()
	c.state.Store(int32(Errored))
	c.initErr = err
	c.initOwner = -1
	c.initCond.Broadcast()
	c.initMu.Unlock()
}

// NoClassDefFoundError wraps a class that failed initialization, per JVMS
// §5.5: every subsequent attempt to use the class throws this instead of
// re-running (and re-failing) <clinit>.
type NoClassDefFoundError struct {
	ClassName string
	Cause     error
}

func (e *NoClassDefFoundError) Error() string {
	msg := "NoClassDefFoundError: " + e.ClassName
	if e.Cause != nil {
		msg += " (caused by " + e.Cause.Error() + ")"
	}
	return msg
}

func (e *NoClassDefFoundError) Unwrap() error { return e.Cause }
