/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frames implements the per-thread call stack: one Frame per
// active method invocation, each with its own operand stack and local
// variable array (JVMS §2.6). The stack itself is a container/list.List,
// matching the teacher's CreateFrame/PushFrame/PopFrame convention.
package frames

import (
	"container/list"
	"errors"

	"jacobin/classloader"
	"jacobin/types"
)

// Frame is one method activation record.
type Frame struct {
	Method   *classloader.Method
	ClName   string
	MethName string

	PC int // index of the next instruction to execute in Method.Code

	OpStack []types.Value // grows/shrinks with push/pop; capacity MaxStack
	Locals  []types.Value // fixed length MaxLocals

	// ThreadID is the owning thread, needed by monitorenter/exit and by
	// ensure_initialized's re-entrancy check.
	ThreadID int64
}

// CreateFrame allocates a Frame with stackSize pre-reserved operand-stack
// capacity (teacher's CreateFrame(size int) convention from
// initializerBlock.go, generalized from a fixed array to a slice).
func CreateFrame(stackSize int) *Frame {
	return &Frame{
		OpStack: make([]types.Value, 0, stackSize),
	}
}

// NewFrameForMethod builds a ready-to-run Frame for invoking m: locals
// sized to m.MaxLocals, operand stack capacity m.MaxStack.
func NewFrameForMethod(m *classloader.Method, threadID int64) *Frame {
	f := CreateFrame(m.MaxStack)
	f.Method = m
	f.ClName = m.Owner.Name
	f.MethName = m.Name
	f.Locals = make([]types.Value, m.MaxLocals)
	f.ThreadID = threadID
	return f
}

func (f *Frame) Push(v types.Value) { f.OpStack = append(f.OpStack, v) }

func (f *Frame) Pop() types.Value {
	n := len(f.OpStack)
	v := f.OpStack[n-1]
	f.OpStack = f.OpStack[:n-1]
	return v
}

func (f *Frame) Peek() types.Value { return f.OpStack[len(f.OpStack)-1] }

func (f *Frame) Empty() bool { return len(f.OpStack) == 0 }

// FrameStack is one thread's call stack: a container/list.List of *Frame,
// top-of-stack at the front, mirroring the teacher's frames.CreateFrame/
// PushFrame/PopFrame idiom in initializerBlock.go.
type FrameStack = list.List

func CreateFrameStack() *FrameStack { return list.New() }

// PushFrame pushes f onto the front of fs (the new top of stack).
func PushFrame(fs *FrameStack, f *Frame) error {
	if fs == nil {
		return errors.New("frames: nil frame stack")
	}
	fs.PushFront(f)
	return nil
}

// PopFrame removes and discards the top frame.
func PopFrame(fs *FrameStack) error {
	e := fs.Front()
	if e == nil {
		return errors.New("frames: pop from an empty frame stack")
	}
	fs.Remove(e)
	return nil
}

// PeekFrame returns the top frame without removing it, or nil if fs is
// empty.
func PeekFrame(fs *FrameStack) *Frame {
	e := fs.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Frame)
}
