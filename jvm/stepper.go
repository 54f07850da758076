/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"jacobin/classloader"
	"jacobin/frames"
	"jacobin/thread"
	"jacobin/types"
)

// Session is a single-steppable run of a program's main thread, used by the
// `jacobin inspect` TUI (internal/inspect) instead of Run's run-to-completion
// loop. Its Step method re-expresses runFrame's fetch-decode-execute body
// (run.go) one opcode at a time so a caller can observe the frame between
// instructions.
//
// Nested invocations (invokestatic, invokevirtual, ...) still run to
// completion inside a single Step call, since the interpreter's invocation
// protocol (execInvokeOp -> invokeMethod -> runFrame) is recursive, not
// itself steppable; Step only single-steps the bytecode of the frame that
// was current when NewSession returned.
type Session struct {
	Thread    *thread.Thread
	MainClass *classloader.Class

	Finished  bool
	ExitValue types.Value
	Err       error

	Steps int
}

// NewSession loads mainClass, runs its static initializers, and pushes a
// frame for public static void main(String[]) without running it, mirroring
// the ordinary VM launch sequence (JVMS §5.2) one step at a time.
func NewSession(mainClass string, args []string) (*Session, error) {
	th := thread.NewMain()

	c, err := classloader.Load(mainClass)
	if err != nil {
		return nil, err
	}
	if err := classloader.EnsureInitialized(c, th.ID); err != nil {
		return nil, err
	}

	m := c.FindMethod("main", "([Ljava/lang/String;)V")
	if m == nil {
		return nil, fmt.Errorf("no such method: main([Ljava/lang/String;)V in %s", mainClass)
	}
	if m.IsNative {
		return nil, fmt.Errorf("main method of %s is native", mainClass)
	}

	f := frames.NewFrameForMethod(m, th.ID)
	f.Locals[0] = buildArgsArray(args)
	if err := frames.PushFrame(th.Frames, f); err != nil {
		return nil, err
	}

	return &Session{Thread: th, MainClass: c}, nil
}

// CurrentFrame returns the frame the next Step call will execute an
// instruction in, or nil once the session has finished.
func (s *Session) CurrentFrame() *frames.Frame {
	return frames.PeekFrame(s.Thread.Frames)
}

// NextOpcode returns the opcode byte at the current frame's PC and its
// mnemonic, for display before it executes.
func (s *Session) NextOpcode() (op int, name string, ok bool) {
	f := s.CurrentFrame()
	if f == nil || f.PC >= len(f.Method.Code) {
		return 0, "", false
	}
	op = int(f.Method.Code[f.PC])
	return op, OpcodeName(op), true
}

// Step executes exactly one instruction of the current frame and reports
// whether the session has finished (the outermost frame returned, or an
// exception escaped it unhandled).
func (s *Session) Step() (finished bool, err error) {
	if s.Finished {
		return true, s.Err
	}

	f := s.CurrentFrame()
	if f == nil {
		s.Finished = true
		return true, s.Err
	}
	if len(f.Method.Code) == 0 || f.PC >= len(f.Method.Code) {
		_ = frames.PopFrame(s.Thread.Frames)
		s.Finished = true
		return true, nil
	}

	startPC := f.PC
	op := int(f.Method.Code[f.PC])
	f.PC++
	s.Steps++

	ret, isReturn, derr := dispatch(s.Thread, f, op, startPC)
	if derr != nil {
		je, ok := derr.(*JavaException)
		if !ok {
			je, ok = javaExceptionFor(derr).(*JavaException)
		}
		if !ok {
			s.Finished = true
			s.Err = derr
			return true, derr
		}
		if handlerPC, handled := findHandler(f, startPC, je); handled {
			f.OpStack = f.OpStack[:0]
			f.Push(je.Ref)
			f.PC = handlerPC
			return false, nil
		}
		_ = frames.PopFrame(s.Thread.Frames)
		s.Finished = true
		s.Err = je
		return true, je
	}

	if isReturn {
		_ = frames.PopFrame(s.Thread.Frames)
		s.ExitValue = ret
		s.Finished = true
		return true, nil
	}
	return false, nil
}
