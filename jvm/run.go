/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"jacobin/classloader"
	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/gfunction"
	"jacobin/thread"
	"jacobin/types"
)

// invokeMethod runs m to completion on th, either by pushing a new frame and
// interpreting its bytecode (runFrame) or, for a native method (ACC_NATIVE,
// JVMS §4.6), handing off to the gfunction dispatcher.
func invokeMethod(th *thread.Thread, m *classloader.Method, args []types.Value) (types.Value, error) {
	if m.IsNative {
		return gfunction.Invoke(m.Owner.Name, m.Name, m.Desc, args)
	}
	if err := classloader.EnsureInitialized(m.Owner, th.ID); err != nil {
		return types.Value{}, javaExceptionFor(err)
	}

	f := frames.NewFrameForMethod(m, th.ID)
	slot := 0
	for _, a := range args {
		f.Locals[slot] = a
		slot += a.Slots()
	}
	if err := frames.PushFrame(th.Frames, f); err != nil {
		return types.Value{}, err
	}
	v, err := runFrame(th, f)
	_ = frames.PopFrame(th.Frames)
	return v, err
}

// runFrame executes f's bytecode until it returns normally or an exception
// propagates past its last frame: JVMS §2.11's fetch-decode-execute loop
// plus the exception-table unwinding rule (§2.10, §3.12).
func runFrame(th *thread.Thread, f *frames.Frame) (types.Value, error) {
	if len(f.Method.Code) == 0 {
		return types.Value{}, nil
	}
	for {
		if f.PC >= len(f.Method.Code) {
			return types.Value{}, nil
		}
		startPC := f.PC
		op := int(f.Method.Code[f.PC])
		f.PC++

		ret, isReturn, err := dispatch(th, f, op, startPC)
		if err != nil {
			je, ok := err.(*JavaException)
			if !ok {
				je, ok = javaExceptionFor(err).(*JavaException)
				if !ok {
					return types.Value{}, err
				}
			}
			if handlerPC, handled := findHandler(f, startPC, je); handled {
				f.OpStack = f.OpStack[:0]
				f.Push(je.Ref)
				f.PC = handlerPC
				continue
			}
			return types.Value{}, je
		}
		if isReturn {
			return ret, nil
		}
	}
}

// --- bytecode stream readers -------------------------------------------------

func readU8(f *frames.Frame) int {
	b := f.Method.Code[f.PC]
	f.PC++
	return int(b)
}

func readU16(f *frames.Frame) int {
	hi, lo := f.Method.Code[f.PC], f.Method.Code[f.PC+1]
	f.PC += 2
	return int(hi)<<8 | int(lo)
}

func readS8(f *frames.Frame) int { return int(int8(readU8(f))) }

func readS16(f *frames.Frame) int { return int(int16(readU16(f))) }

func readS32(f *frames.Frame) int {
	b0, b1, b2, b3 := f.Method.Code[f.PC], f.Method.Code[f.PC+1], f.Method.Code[f.PC+2], f.Method.Code[f.PC+3]
	f.PC += 4
	return int(int32(uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)))
}

// dispatch executes one instruction. isReturn reports whether the method
// activation ended (a *return opcode); ret is its return value, if any.
func dispatch(th *thread.Thread, f *frames.Frame, op, startPC int) (ret types.Value, isReturn bool, err error) {
	switch {
	case op == NOP:
		return types.Value{}, false, nil

	case isPushConstOp(op):
		return types.Value{}, false, execPushConst(f, op)

	case isLoadStoreOp(op):
		return types.Value{}, false, execLoadStore(f, op)

	case isArrayOp(op):
		return types.Value{}, false, execArrayOp(th, f, op)

	case isStackOp(op):
		return types.Value{}, false, execStackOp(f, op)

	case isMathOp(op):
		return types.Value{}, false, execMathOp(f, op)

	case isConvOp(op):
		return types.Value{}, false, execConvOp(f, op)

	case isBranchOp(op):
		return types.Value{}, false, execBranchOp(f, op, startPC)

	case op == TABLESWITCH || op == LOOKUPSWITCH:
		return types.Value{}, false, execSwitchOp(f, op, startPC)

	case isReturnOp(op):
		v := execReturnOp(f, op)
		return v, true, nil

	case isFieldOp(op):
		return types.Value{}, false, execFieldOp(th, f, op)

	case isInvokeOp(op):
		return types.Value{}, false, execInvokeOp(th, f, op)

	case op == NEW, op == CHECKCAST, op == INSTANCEOF:
		return types.Value{}, false, execNewOp(th, f, op)

	case op == MONITORENTER || op == MONITOREXIT:
		return types.Value{}, false, execSyncOp(th, f, op)

	case op == WIDE:
		return types.Value{}, false, execWideOp(f)

	case op == ATHROW:
		return types.Value{}, false, execAthrow(f)

	default:
		return types.Value{}, false, throwBuiltin(excNames.UnsupportedOperationException, "unimplemented opcode")
	}
}
