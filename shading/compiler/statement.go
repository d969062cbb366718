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

package compiler

import (
	"strconv"

	"github.com/japrozs/reyes/shading/ast"
	"github.com/japrozs/reyes/shading/bytecode"
)

func (g *gen) genBlock(b *ast.Block) {
	g.pushScope()
	for _, s := range b.Statements {
		g.genStatement(s)
	}
	g.popScope()
}

func (g *gen) genStatement(n ast.Node) {
	switch s := n.(type) {
	case *ast.Declaration:
		g.genDeclaration(s)
	case *ast.Assign:
		g.genAssign(s)
	case *ast.Branch:
		g.genBranch(s)
	case *ast.While:
		g.genWhile(s)
	case *ast.For:
		g.genFor(s)
	case *ast.Illuminance:
		g.genLightLoop(s.Block)
	case *ast.Solar:
		g.genLightLoop(s.Block)
	case *ast.Break:
		g.emit(bytecode.OpBreak, level(s.Level))
	case *ast.Continue:
		g.emit(bytecode.OpContinue, level(s.Level))
	case *ast.Return:
		if s.Value != nil {
			g.genExpr(s.Value)
		}
		g.emit(bytecode.OpReturn, 0)
	case *ast.Block:
		g.genBlock(s)
	default:
		// Expression statement, evaluated for side effects; its value (if
		// any) is simply discarded since nothing consumes it.
		g.genExpr(n)
	}
}

func level(n *ast.Number) int32 {
	if n == nil {
		return 1
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		return 1
	}
	return int32(v)
}

func (g *gen) genDeclaration(d *ast.Declaration) {
	info := g.checked.Type(d)
	idx := g.declare(d.Name.Value, bytecode.SymbolEntry{
		Name:    d.Name.Value,
		Type:    info.Type,
		Storage: info.Storage,
	})
	if d.Init != nil {
		g.genExpr(d.Init)
		g.emit(bytecode.OpStoreVar, int32(idx))
	}
}

func (g *gen) genAssign(a *ast.Assign) {
	ident, ok := a.LHS.(*ast.Identifier)
	if !ok {
		// Component/index assignment targets (c.r = ..., m[0] = ...) are
		// read-only expression forms in this implementation; semantic.Check
		// does not special-case them as assignable, so generate the RHS for
		// its side effects and drop the result.
		g.genExpr(a.RHS)
		return
	}
	idx, ok := g.resolve(ident.Value)
	if !ok {
		return
	}
	if a.Operator != "=" {
		g.emit(bytecode.OpLoadVar, int32(idx))
		g.genExpr(a.RHS)
		g.emit(compoundOp(a.Operator), 0)
	} else {
		g.genExpr(a.RHS)
	}
	g.emit(bytecode.OpStoreVar, int32(idx))
}

func compoundOp(op string) bytecode.Op {
	switch op {
	case ast.OpAssignPlus:
		return bytecode.OpAdd
	case ast.OpAssignMinus:
		return bytecode.OpSub
	case ast.OpAssignMultiply:
		return bytecode.OpMul
	case ast.OpAssignDivide:
		return bytecode.OpDiv
	default:
		return bytecode.OpAdd
	}
}

// genBranch compiles an if/else. The controlling predicate is evaluated
// once; the else arm reuses it via OpInvertMask rather than re-evaluating
// the condition, so a predicate with side effects (e.g. a call) only runs
// once per vertex.
func (g *gen) genBranch(br *ast.Branch) {
	g.genExpr(br.Condition)
	g.emit(bytecode.OpPushMask, 0)
	skipTrue := g.emit(bytecode.OpJumpIfMaskEmpty, 0)
	g.genBlock(br.True)

	if br.False != nil {
		skipElse := g.emit(bytecode.OpJump, 0)
		g.patch(skipTrue, g.here())
		g.emit(bytecode.OpInvertMask, 0)
		skipFalse := g.emit(bytecode.OpJumpIfMaskEmpty, 0)
		g.genBlock(br.False)
		g.patch(skipFalse, g.here())
		g.patch(skipElse, g.here())
	} else {
		g.patch(skipTrue, g.here())
	}
	g.emit(bytecode.OpPopMask, 0)
}

// genWhile compiles a while loop: OpLoopBegin/OpLoopEnd bracket the body so
// the VM can maintain the loop frame (entry/break/continue masks) break and
// continue operate on; the per-iteration predicate is re-evaluated and
// combined with the frame's active mask via push_mask each pass.
func (g *gen) genWhile(w *ast.While) {
	g.genLoop(w.Condition, w.Block, nil)
}

// genFor lowers «for (init; cond; step) block» to init; while (cond) { block; step },
// matching the description of continue as masking "the remainder of the
// iteration's body" — the step is the last statement of that body, so a
// continuing vertex still skips it until the next pass around loop_begin.
func (g *gen) genFor(f *ast.For) {
	g.pushScope()
	if f.Init != nil {
		g.genStatement(f.Init)
	}
	g.genLoop(f.Condition, f.Block, f.Step)
	g.popScope()
}

func (g *gen) genLoop(cond ast.Node, body *ast.Block, step ast.Node) {
	begin := g.emit(bytecode.OpLoopBegin, 0)
	if cond != nil {
		g.genExpr(cond)
		g.emit(bytecode.OpPushMask, 0)
		skip := g.emit(bytecode.OpJumpIfMaskEmpty, 0)
		g.genBlock(body)
		if step != nil {
			g.genStatement(step)
		}
		g.emit(bytecode.OpPopMask, 0)
		g.emit(bytecode.OpJump, int32(begin))
		g.patch(skip, g.here())
	} else {
		g.genBlock(body)
		if step != nil {
			g.genStatement(step)
		}
		g.emit(bytecode.OpJump, int32(begin))
	}
	end := g.emit(bytecode.OpLoopEnd, int32(begin))
	g.patch(begin, end)
}

// genLightLoop compiles illuminance/solar: the VM iterates the grid's
// active light handles rather than a user predicate, running block once
// per light and exposing its contribution to diffuse/specular/ambient.
func (g *gen) genLightLoop(block *ast.Block) {
	begin := g.emit(bytecode.OpLightLoopBegin, 0)
	g.genBlock(block)
	end := g.emit(bytecode.OpLightLoopEnd, int32(begin))
	g.patch(begin, end)
}
