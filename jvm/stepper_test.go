/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"jacobin/classloader"
	"jacobin/frames"
	"jacobin/thread"
)

// newTestSession builds a Session around a hand-assembled method, bypassing
// NewSession's class-loading path so Step can be exercised without a
// classpath or on-disk .class file.
func newTestSession(code []byte, maxStack, maxLocals int) *Session {
	cls := &classloader.Class{Name: "Test", Methods: map[string]*classloader.Method{}}
	m := &classloader.Method{
		Owner:     cls,
		Name:      "run",
		Desc:      "()I",
		MaxStack:  maxStack,
		MaxLocals: maxLocals,
		Code:      code,
	}
	cls.Methods[m.Name+m.Desc] = m

	th := thread.NewMain()
	f := frames.NewFrameForMethod(m, th.ID)
	_ = frames.PushFrame(th.Frames, f)

	return &Session{Thread: th, MainClass: cls}
}

func TestSessionStepReturnsValue(t *testing.T) {
	// iconst_3; ireturn
	s := newTestSession([]byte{ICONST_3, IRETURN}, 2, 0)

	op, name, ok := s.NextOpcode()
	if !ok || op != ICONST_3 || name != "iconst_3" {
		t.Fatalf("NextOpcode() = (%d, %q, %v), want (%d, iconst_3, true)", op, name, ok, ICONST_3)
	}

	finished, err := s.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if finished {
		t.Fatalf("Step() reported finished after the first of two instructions")
	}
	if s.Steps != 1 {
		t.Errorf("Steps = %d, want 1", s.Steps)
	}

	finished, err = s.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !finished {
		t.Fatalf("Step() did not report finished after ireturn")
	}
	if got := s.ExitValue.Int(); got != 3 {
		t.Errorf("ExitValue.Int() = %d, want 3", got)
	}
	if !s.Finished {
		t.Errorf("Finished = false after completion")
	}
}

func TestSessionStepAfterFinishIsIdempotent(t *testing.T) {
	s := newTestSession([]byte{RETURN}, 1, 0)

	finished, err := s.Step()
	if !finished || err != nil {
		t.Fatalf("Step() = (%v, %v), want (true, nil)", finished, err)
	}

	finished, err = s.Step()
	if !finished || err != nil {
		t.Fatalf("second Step() after finish = (%v, %v), want (true, nil)", finished, err)
	}
}

func TestSessionNextOpcodeAtEndOfCode(t *testing.T) {
	s := newTestSession([]byte{}, 1, 0)
	if _, _, ok := s.NextOpcode(); ok {
		t.Errorf("NextOpcode() on empty code should report ok=false")
	}
	finished, err := s.Step()
	if !finished || err != nil {
		t.Fatalf("Step() on empty code = (%v, %v), want (true, nil)", finished, err)
	}
}
