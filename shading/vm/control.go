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

// loopBegin runs on every pass through a while/for loop's OpLoopBegin,
// first iteration or Nth: it (re)computes this iteration's active mask
// as entryDepth's parent minus the loop's accumulated break-mask and
// pushes it as the new top, so break's effect from a previous iteration
// is visible without the compiler having to know break-mask exists.
func (vm *VM) loopBegin(pc, endOperand int) int {
	var lf *loopFrame
	if n := len(vm.loopStack); n > 0 && vm.loopStack[n-1].beginPC == pc {
		lf = vm.loopStack[n-1]
		vm.maskStack = vm.maskStack[:lf.entryDepth+1] // drop last iteration's working mask
		lf.contMask = emptyMask(vm.n)
	} else {
		lf = &loopFrame{
			beginPC: pc, endPC: endOperand, entryDepth: len(vm.maskStack) - 1,
			breakMask: emptyMask(vm.n), contMask: emptyMask(vm.n),
		}
		vm.loopStack = append(vm.loopStack, lf)
	}

	parent := vm.maskStack[lf.entryDepth]
	working := parent.andNot(lf.breakMask)
	if !working.any() {
		vm.loopStack = vm.loopStack[:len(vm.loopStack)-1]
		return lf.endPC + 1
	}
	vm.maskStack = append(vm.maskStack, working)
	return pc + 1
}

// loopEnd restores the mask stack to the loop's parent depth. It is
// reached either via loopBegin's own empty-mask exit (mask stack already
// at that depth) or via the compiled body's jump_if_mask_empty skip
// (which leaves its own per-iteration predicate push sitting on top of
// the working frame) — truncating down to entryDepth+1 handles both
// uniformly.
func (vm *VM) loopEnd() {
	lf := vm.loopStack[len(vm.loopStack)-1]
	vm.maskStack = vm.maskStack[:lf.entryDepth+1]
	vm.loopStack = vm.loopStack[:len(vm.loopStack)-1]
}

// breakContinue implements break N / continue N: active vertices
// are cleared from every mask frame pushed since the targeted loop's own
// working mask (so the rest of this iteration's body, at any nesting
// depth, stops running for them) and recorded into the break-mask or
// continue-mask of every loop frame from the innermost up to the target
// for bookkeeping. Break's exclusion persists
// across iterations because loopBegin re-derives each iteration's working
// mask from break-mask; continue's does not, because nothing reads
// continue-mask after this iteration ends.
func (vm *VM) breakContinue(level int, isBreak bool) {
	active := vm.effectiveTop()
	if !active.any() || len(vm.loopStack) == 0 {
		return
	}
	if level < 1 {
		level = 1
	}
	if level > len(vm.loopStack) {
		level = len(vm.loopStack)
	}
	target := vm.loopStack[len(vm.loopStack)-level]
	clearFrom := target.entryDepth + 1
	for d := len(vm.maskStack) - 1; d >= clearFrom; d-- {
		vm.maskStack[d] = vm.maskStack[d].andNot(active)
	}
	for i := 0; i < level; i++ {
		lf := vm.loopStack[len(vm.loopStack)-1-i]
		if isBreak {
			lf.breakMask.orInto(active)
		} else {
			lf.contMask.orInto(active)
		}
	}
}

// lightLoopBegin starts an illuminance/solar block: it allocates the loop
// frame once (there is no per-pass re-entry the way a while loop jumps
// back to its own begin — the light loop instead advances from
// lightLoopEnd) and enters the first light, if any.
func (vm *VM) lightLoopBegin(pc, endOperand int) int {
	lf := &loopFrame{
		beginPC: pc, endPC: endOperand, entryDepth: len(vm.maskStack) - 1,
		breakMask: emptyMask(vm.n), contMask: emptyMask(vm.n),
		light: true, lights: vm.grid.Lights(), lightIdx: 0,
	}
	vm.loopStack = append(vm.loopStack, lf)
	return vm.enterLight(lf)
}

// lightLoopEnd advances to the next light handle, or exits once every
// active light has run.
func (vm *VM) lightLoopEnd() int {
	lf := vm.loopStack[len(vm.loopStack)-1]
	vm.maskStack = vm.maskStack[:lf.entryDepth+1]
	lf.lightIdx++
	return vm.enterLight(lf)
}

// enterLight binds L/Cl to the grid's recorded contribution for the
// current light handle and pushes this pass's working mask, or — once
// every handle has been visited — pops the loop frame and returns
// control just past the block.
func (vm *VM) enterLight(lf *loopFrame) int {
	if lf.lightIdx >= len(lf.lights) {
		vm.loopStack = vm.loopStack[:len(vm.loopStack)-1]
		vm.lightL, vm.lightCl = nil, nil
		return lf.endPC + 1
	}
	h := lf.lights[lf.lightIdx]
	if c, ok := vm.grid.Contribution(h); ok {
		vm.lightL, vm.lightCl = c.L, c.Cl
	} else {
		vm.lightL, vm.lightCl = nil, nil
	}
	parent := vm.maskStack[lf.entryDepth]
	working := parent.andNot(lf.breakMask)
	vm.maskStack = append(vm.maskStack, working)
	return lf.beginPC + 1
}
