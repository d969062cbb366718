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

// Package compiler ties shading/ast, shading/semantic and shading/bytecode
// into the single entry point: lex → parse → semantic analysis →
// storage-class inference → code generation → bytecode.
package compiler

import (
	"context"

	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/shading/ast"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/shading/parser"
	"github.com/japrozs/reyes/shading/semantic"
)

// Compile lexes, parses, type-checks and emits bytecode for one shader
// source file. It reports every failure mode (lex, parse, unresolved
// symbols, type mismatches, storage-class violations, invalid
// break/continue targets, duplicate declarations) through pol, tagged with
// the source line. Compile returns (nil, false) once a fatal error has
// been reported — the caller checks pol.First() for the diagnostic.
func Compile(ctx context.Context, pol *policy.Policy, filename, source string) (*bytecode.Program, bool) {
	m := parser.NewParseMap()
	shader, errs := parser.Parse(filename, source, m)
	for _, e := range errs {
		line := 0
		if e.At != nil {
			line, _ = e.At.Tok().Cursor()
		}
		if pol.Report(ctx, policy.Error{Kind: policy.SyntaxError, Line: line, Message: e.Message}) {
			return nil, false
		}
	}
	if shader == nil {
		return nil, false
	}

	checked := semantic.Check(ctx, pol, shader, m)
	if pol.First() != nil {
		return nil, false
	}

	g := newGen(pol, checked)
	g.declareParams(shader.Parameters)
	g.declareGlobals()
	g.genBlock(shader.Block)
	g.emit(bytecode.OpReturn, 0)

	if pol.First() != nil {
		return nil, false
	}

	return &bytecode.Program{
		Kind:       shader.Kind,
		Symbols:    g.symbols,
		Pool:       g.pool,
		Instrs:     g.instrs,
		ParamCount: len(shader.Parameters),
	}, true
}

// gen is the codegen pass's working state: one gen per Compile call.
type gen struct {
	pol     *policy.Policy
	checked *semantic.Checked

	pool    *bytecode.Pool
	symbols []bytecode.SymbolEntry
	scopes  []map[string]int // name -> index into symbols, innermost last

	// Break/continue operands only need the level N — the VM resolves the
	// actual frame from its own runtime loop stack, so codegen needs no
	// loop-nesting bookkeeping of its own.
	instrs []bytecode.Instr
}

func newGen(pol *policy.Policy, checked *semantic.Checked) *gen {
	return &gen{
		pol:     pol,
		checked: checked,
		pool:    bytecode.NewPool(),
		scopes:  []map[string]int{{}},
	}
}

func (g *gen) pushScope() { g.scopes = append(g.scopes, map[string]int{}) }
func (g *gen) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

func (g *gen) declare(name string, entry bytecode.SymbolEntry) int {
	idx := len(g.symbols)
	g.symbols = append(g.symbols, entry)
	g.scopes[len(g.scopes)-1][name] = idx
	return idx
}

func (g *gen) resolve(name string) (int, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if idx, ok := g.scopes[i][name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// emit appends an instruction and returns its index, for callers that need
// to patch a jump/loop operand once the target address is known.
func (g *gen) emit(op bytecode.Op, operand int32) int {
	g.instrs = append(g.instrs, bytecode.Instr{Op: op, Operand: operand})
	return len(g.instrs) - 1
}

func (g *gen) patch(at int, target int) {
	g.instrs[at].Operand = int32(target)
}

func (g *gen) here() int { return len(g.instrs) }

func (g *gen) declareParams(params []*ast.Parameter) {
	for _, p := range params {
		info := g.checked.Type(p)
		g.declare(p.Name.Value, bytecode.SymbolEntry{
			Name:    p.Name.Value,
			Type:    info.Type,
			Storage: info.Storage,
			Param:   true,
		})
	}
}

// declareGlobals gives the grid-provided names (semantic.Globals) a symbol
// slot so LoadVar/StoreVar can address them the same way as any other
// variable; the VM distinguishes them via SymbolEntry.Global to bind them
// against the grid's Values by name instead of a per-shader local.
func (g *gen) declareGlobals() {
	for _, sym := range semantic.Globals() {
		g.declare(sym.Name(), bytecode.SymbolEntry{
			Name:    sym.Name(),
			Type:    sym.Type,
			Storage: sym.Storage,
			Global:  true,
		})
	}
}
