// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"context"
	"fmt"

	"github.com/japrozs/reyes/core/math/f32"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/value"
)

// step executes the instruction at pc and returns the next pc. Runtime
// assertion failures (stack underflow, a type combination arithmetic has
// no rule for) panic rather than returning an error: these indicate a
// compiler bug, not a shading error a caller can recover from.
func (vm *VM) step(ctx context.Context, in bytecode.Instr, pc int) (int, error) {
	switch in.Op {
	case bytecode.OpLoadConst:
		vm.push(vm.loadConst(in.Operand))

	case bytecode.OpLoadVar:
		vm.push(vm.frm.slots[in.Operand])

	case bytecode.OpStoreVar:
		v := vm.pop()
		storeMasked(vm.frm.slots[in.Operand], v, vm.effectiveTop())

	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv:
		b, a := vm.pop(), vm.pop()
		vm.push(binaryArith(in.Op, a, b, vm.n))

	case bytecode.OpNeg:
		vm.push(negate(vm.pop()))

	case bytecode.OpLt, bytecode.OpLe, bytecode.OpGt, bytecode.OpGe, bytecode.OpEq, bytecode.OpNe:
		b, a := vm.pop(), vm.pop()
		vm.push(compare(in.Op, a, b, vm.n))

	case bytecode.OpAnd, bytecode.OpOr:
		b, a := vm.pop(), vm.pop()
		vm.push(logicalBinary(in.Op, a, b, vm.n))

	case bytecode.OpNot:
		vm.push(logicalNot(vm.pop()))

	case bytecode.OpJump:
		return int(in.Operand), nil

	case bytecode.OpJumpIfMaskEmpty:
		if !vm.effectiveTop().any() {
			return int(in.Operand), nil
		}

	case bytecode.OpPushMask:
		pred := vm.pop()
		vm.maskStack = append(vm.maskStack, vm.top().and(fromPredicate(pred, vm.n)))

	case bytecode.OpPopMask:
		vm.maskStack = vm.maskStack[:len(vm.maskStack)-1]

	case bytecode.OpInvertMask:
		cur := vm.maskStack[len(vm.maskStack)-1]
		parent := vm.maskStack[len(vm.maskStack)-2]
		vm.maskStack[len(vm.maskStack)-1] = parent.andNot(cur)

	case bytecode.OpLoopBegin:
		return vm.loopBegin(pc, int(in.Operand)), nil

	case bytecode.OpLoopEnd:
		vm.loopEnd()

	case bytecode.OpBreak:
		vm.breakContinue(int(in.Operand), true)

	case bytecode.OpContinue:
		vm.breakContinue(int(in.Operand), false)

	case bytecode.OpLightLoopBegin:
		return vm.lightLoopBegin(pc, int(in.Operand)), nil

	case bytecode.OpLightLoopEnd:
		return vm.lightLoopEnd(), nil

	case bytecode.OpCallBuiltin:
		return pc + 1, vm.callBuiltin(in.Operand)

	case bytecode.OpCall:
		panic("vm: OpCall has no implementation — the compiler never emits it (calls are builtin-only)")

	case bytecode.OpReturn:
		vm.returnMask.orInto(vm.effectiveTop())

	case bytecode.OpConstruct:
		vm.construct(value.Type(in.Operand))

	case bytecode.OpCast:
		vm.cast(value.Type(in.Operand))

	case bytecode.OpMember:
		vm.member(int(in.Operand))

	case bytecode.OpIndex:
		vm.index()

	default:
		panic(fmt.Sprintf("vm: unhandled opcode %s", in.Op))
	}
	return pc + 1, nil
}

// storeMasked writes src into dest wherever m is set, leaving the
// remaining elements of dest untouched — the VM's half of the mask
// discipline: instructions run for every vertex, but only active ones
// observe the effect.
func storeMasked(dest, src *value.Value, m mask) {
	if dest.Storage().IsBroadcast() {
		if m.any() {
			copyElement(dest, 0, src, idx(src, 0))
		}
		return
	}
	for i, active := range m {
		if active {
			copyElement(dest, i, src, idx(src, i))
		}
	}
}

func copyElement(dest *value.Value, di int, src *value.Value, si int) {
	switch dest.Type() {
	case value.Float:
		dest.Floats()[di] = src.Floats()[si]
	case value.Integer:
		dest.Ints()[di] = src.Ints()[si]
	case value.Color, value.Point, value.Vector, value.Normal:
		dest.Triples()[di] = src.Triples()[si]
	case value.Matrix:
		dest.Mats()[di] = src.Mats()[si]
	case value.String:
		dest.Strings()[di] = src.Strings()[si]
	}
}

func (vm *VM) callBuiltin(operand int32) error {
	c := vm.prog.Pool.At(int(operand))
	id := c.Str
	n, ok := arity[id]
	if !ok {
		panic("vm: unknown builtin id " + id)
	}
	args := vm.popN(n)
	fn, ok := builtins[id]
	if !ok {
		panic("vm: unimplemented builtin " + id)
	}
	vm.push(fn(vm, args))
	return nil
}

// construct builds a triple or matrix from the scalar operands already on
// the stack (3 for a triple, 16 for a matrix), matching the typed
// constructor syntax color(r,g,b) / point(x,y,z) / ... the grammar names.
func (vm *VM) construct(t value.Type) {
	if t == value.Matrix {
		args := vm.popN(16)
		ln := 1
		for _, a := range args {
			if !a.Storage().IsBroadcast() {
				ln = vm.n
			}
		}
		out := value.New(value.Matrix, outStorage(ln))
		out.Resize(ln)
		om := out.Mats()
		for i := 0; i < ln; i++ {
			var m value.Mat4
			for k, a := range args {
				m[k] = a.Floats()[idx(a, i)]
			}
			om[i] = m
		}
		vm.push(out)
		return
	}
	args := vm.popN(3)
	ln := 1
	for _, a := range args {
		if !a.Storage().IsBroadcast() {
			ln = vm.n
		}
	}
	out := value.New(t, outStorage(ln))
	out.Resize(ln)
	ot := out.Triples()
	for i := 0; i < ln; i++ {
		ot[i] = f32.Vec3{
			args[0].Floats()[idx(args[0], i)],
			args[1].Floats()[idx(args[1], i)],
			args[2].Floats()[idx(args[2], i)],
		}
	}
	vm.push(out)
}

// cast converts the top of stack to t: float<->integer, and the identity
// cast a triple type onto another triple type (e.g. point to vector) the
// grammar's explicit cast syntax allows since they share representation.
func (vm *VM) cast(t value.Type) {
	v := vm.pop()
	out := value.New(t, v.Storage())
	out.Resize(v.Len())
	switch {
	case t == value.Float && v.Type() == value.Integer:
		vi, of := v.Ints(), out.Floats()
		for i := range vi {
			of[i] = float32(vi[i])
		}
	case t == value.Integer && v.Type() == value.Float:
		vf, oi := v.Floats(), out.Ints()
		for i := range vf {
			oi[i] = int32(vf[i])
		}
	case t.IsTriple() && v.Type().IsTriple():
		copy(out.Triples(), v.Triples())
	default:
		copyValue(out, v)
	}
	vm.push(out)
}

func (vm *VM) member(component int) {
	v := vm.pop()
	out := value.New(value.Float, v.Storage())
	out.Resize(v.Len())
	vt, of := v.Triples(), out.Floats()
	for i := range vt {
		of[i] = vt[i][component]
	}
	vm.push(out)
}

// index evaluates m[i]: semantic.Check types a matrix index as a single
// Float (Info{Type: value.Float}), so i addresses one of Mat4's 16
// flattened elements rather than returning a whole row.
func (vm *VM) index() {
	i := vm.pop()
	m := vm.pop()
	out := value.New(value.Float, m.Storage())
	out.Resize(m.Len())
	mm, of := m.Mats(), out.Floats()
	for k := range mm {
		elem := i.Ints()[idx(i, k)]
		of[k] = mm[k][elem]
	}
	vm.push(out)
}
