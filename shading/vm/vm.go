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

// Package vm executes compiled shader bytecode over a Grid in
// SIMD-over-vertices style: one instruction stream, one execution mask
// per vertex, implemented with a typed operand stack, a mask stack whose
// top is the current active set, and a loop stack carrying each loop's
// entry/break/continue state across iterations.
package vm

import (
	"context"

	"github.com/japrozs/reyes/core/event/task"
	"github.com/japrozs/reyes/core/log"
	"github.com/japrozs/reyes/core/math/f32"
	"github.com/japrozs/reyes/grid"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/value"
)

// VM is one shader execution's working state. A VM is not reused across
// grids or programs; New allocates a fresh one per Initialize/Shade pair,
// so one shader execution owns one grid exclusively for its duration.
type VM struct {
	pol  *policy.Policy
	grid *grid.Grid
	prog *bytecode.Program
	n    int

	frm *frame

	stack      []*value.Value
	maskStack  []mask
	loopStack  []*loopFrame
	returnMask mask

	// lightL/lightCl are bound while executing inside an illuminance/solar
	// body: the current light's direction and color, read by L/Cl and by
	// diffuse/specular/ambient.
	lightL, lightCl *value.Value
}

// New returns a VM ready to initialize or shade g against prog.
func New(pol *policy.Policy, g *grid.Grid, prog *bytecode.Program) *VM {
	return &VM{pol: pol, grid: g, prog: prog, n: g.Count()}
}

// Initialize adds each shader parameter to the grid as a Value of its
// declared type and storage; it does not evaluate default parameter
// expressions. The compiled artifact keeps only
// each parameter's type and storage, not its default-expression bytecode
// (semantic.Check discards ast.Parameter.Default once storage inference
// is done), so a parameter the scene never supplied is bound to its
// type's zero value rather than a re-evaluated default expression — see
// DESIGN.md for the tradeoff this records.
func (vm *VM) Initialize(ctx context.Context) {
	for _, p := range vm.prog.Params() {
		vm.grid.AddValue(p.Name, p.Type, p.Storage)
	}
}

// Shade executes prog's body over input, writing results into output.
// output may alias input. Cancellation is polled every 256 instructions
// of the outer bytecode loop: on cancel,
// Shade halts without further grid mutation and returns the cancellation
// error.
func (vm *VM) Shade(ctx context.Context, input, output *grid.Grid) error {
	if input != output {
		copyGridInto(input, output)
	}
	vm.grid = output
	vm.n = output.Count()
	vm.frm = bind(output, vm.prog)

	vm.maskStack = []mask{fullMask(vm.n)}
	vm.returnMask = emptyMask(vm.n)

	lctx := log.Wrap(ctx)
	pc := 0
	instrs := vm.prog.Instrs
	steps := 0
	for pc < len(instrs) {
		steps++
		if steps%256 == 0 {
			select {
			case <-task.ShouldStop(lctx):
				return task.StopReason(lctx)
			default:
			}
		}
		next, err := vm.step(ctx, instrs[pc], pc)
		if err != nil {
			vm.pol.Report(ctx, policy.Error{Kind: policy.RuntimeShadingError, Message: err.Error()})
			return err
		}
		pc = next
	}
	vm.pol.Flush(ctx)
	return nil
}

// copyGridInto duplicates every Value of src into dst that dst doesn't
// already carry under the same name, so a non-aliased output grid starts
// as a clone of the input (matching the convention that shading mutates
// a working copy when the caller asked for distinct input/output grids).
func copyGridInto(src, dst *grid.Grid) {
	for _, name := range src.Names() {
		v, _ := src.Lookup(name)
		if _, ok := dst.Lookup(name); ok {
			continue
		}
		dst.AddValue(name, v.Type(), v.Storage())
		nv, _ := dst.Lookup(name)
		copyValue(nv, v)
	}
}

func copyValue(dst, src *value.Value) {
	c := src.Clone()
	dst.Resize(c.Len())
	switch dst.Type() {
	case value.Float:
		copy(dst.Floats(), c.Floats())
	case value.Integer:
		copy(dst.Ints(), c.Ints())
	case value.Color, value.Point, value.Vector, value.Normal:
		copy(dst.Triples(), c.Triples())
	case value.Matrix:
		copy(dst.Mats(), c.Mats())
	case value.String:
		copy(dst.Strings(), c.Strings())
	}
}

func (vm *VM) push(v *value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() *value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) popN(k int) []*value.Value {
	out := make([]*value.Value, k)
	copy(out, vm.stack[len(vm.stack)-k:])
	vm.stack = vm.stack[:len(vm.stack)-k]
	return out
}

func (vm *VM) top() mask { return vm.maskStack[len(vm.maskStack)-1] }

// effectiveTop is the mask every store and emptiness check actually uses:
// the lexical top further narrowed by any vertex that has already hit a
// "return" this shade() call.
func (vm *VM) effectiveTop() mask {
	return vm.top().andNot(vm.returnMask)
}

func (vm *VM) loadConst(i int32) *value.Value {
	c := vm.prog.Pool.At(int(i))
	v := value.New(c.Type, value.Constant)
	switch c.Type {
	case value.Float:
		v.Floats()[0] = c.Float
	case value.Integer:
		v.Ints()[0] = int32(c.Float)
	case value.String:
		v.Strings()[0] = c.Str
	case value.Matrix:
		v.Mats()[0] = c.Mat
	default:
		v.Triples()[0] = f32.Vec3{c.Triple[0], c.Triple[1], c.Triple[2]}
	}
	return v
}
