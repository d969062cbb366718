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

package bytecode

import "github.com/japrozs/reyes/value"

// SymbolEntry is the compiled snapshot of one name a LoadVar/StoreVar
// instruction can address: a shader's own parameters and every variable
// its declarations introduce, in declaration order. The index into this
// slice is the operand OpLoadVar/OpStoreVar carries.
type SymbolEntry struct {
	Name    string
	Type    value.Type
	Storage value.Storage
	// Param is true for a shader parameter (the VM binds these from the
	// grid at initialize time); false for a local declared inside the body.
	Param bool
	// Global is true for a grid-provided name (P, N, s, t, Ci, ...) that
	// every shader body sees without declaring: the VM reads/writes these
	// directly against the grid's Values by name rather than allocating a
	// fresh per-shader slot.
	Global bool
}

// Program is a compiled shader: immutable once built, shared by every grid
// that references it. It carries exactly four parts: bytecode, constant
// pool, symbol table snapshot, parameter list.
type Program struct {
	Kind       string // surface, displacement, light, volume, imager
	Symbols    []SymbolEntry
	Pool       *Pool
	Instrs     []Instr
	ParamCount int // leading entries of Symbols that are parameters
}

// Params returns the parameter slice of Symbols, in declaration order.
func (p *Program) Params() []SymbolEntry { return p.Symbols[:p.ParamCount] }
