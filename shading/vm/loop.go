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

import "github.com/japrozs/reyes/grid"

// loopFrame is one entry of the VM's loop stack: the state a while/for
// loop (or an illuminance/solar light loop) carries across its iterations.
//
// entryDepth is the mask-stack index of the true enclosing mask — the
// frame that must still be there, untouched, once the loop exits. Every
// iteration the VM pops its own previous "working" frame (parent minus
// accumulated breaks) from entryDepth+1 and pushes a fresh one; this is
// what makes break-mask exclusion visible to the next pass without the
// compiler's own bytecode needing to know anything about break at all —
// genLoop (compiler/statement.go) never emits an instruction that
// mentions break-mask, because OpLoopBegin's VM-side handler recomputes
// the per-iteration mask from the loop frame on every entry.
type loopFrame struct {
	beginPC, endPC int
	entryDepth     int
	breakMask      mask
	contMask       mask

	light    bool
	lights   []grid.LightHandle
	lightIdx int
}
