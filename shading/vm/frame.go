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
	"github.com/japrozs/reyes/grid"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/value"
)

// frame is one shade() call's bindings from bytecode symbol index to the
// *value.Value that OpLoadVar/OpStoreVar address. Parameters and the
// grid-provided globals bind directly to the grid's own named Values (so
// writes to "Ci" are visible to the caller without a copy-back step);
// every other local gets a fresh Value allocated for the duration of the
// call.
type frame struct {
	slots []*value.Value
}

// bind builds a frame for prog against g. Parameters not already present
// on the grid are created with a zero default — the compiled artifact
// does not retain per-parameter default-expression bytecode (only the
// type/storage information survives past semantic checking), so a
// parameter the caller never supplied shades with its type's zero value
// rather than a compiled default expression.
func bind(g *grid.Grid, prog *bytecode.Program) *frame {
	f := &frame{slots: make([]*value.Value, len(prog.Symbols))}
	n := g.Count()
	for i, sym := range prog.Symbols {
		switch {
		case sym.Param, sym.Global:
			v, _ := g.AddValue(sym.Name, sym.Type, sym.Storage)
			f.slots[i] = v
		default:
			local := value.New(sym.Type, sym.Storage)
			if !sym.Storage.IsBroadcast() {
				local.Resize(n)
			}
			f.slots[i] = local
		}
	}
	return f
}
