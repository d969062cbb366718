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
	"github.com/japrozs/reyes/shading/semantic"
	"github.com/japrozs/reyes/value"
)

// genExpr emits the instructions that leave n's value on the operand stack.
func (g *gen) genExpr(n ast.Node) {
	info := g.checked.Type(n)
	switch e := n.(type) {
	case *ast.Number:
		g.genNumber(e, info)

	case *ast.String:
		g.emit(bytecode.OpLoadConst, int32(g.pool.String(e.Value)))

	case *ast.Identifier:
		idx, ok := g.resolve(e.Value)
		if !ok {
			// Unresolved identifiers are rejected by semantic.Check before
			// codegen ever runs; reaching here would be a compiler bug.
			g.emit(bytecode.OpLoadConst, int32(g.pool.Float(0)))
			return
		}
		g.emit(bytecode.OpLoadVar, int32(idx))

	case *ast.Group:
		g.genExpr(e.Expression)

	case *ast.UnaryOp:
		g.genExpr(e.Expression)
		if e.Operator == "-" {
			g.emit(bytecode.OpNeg, 0)
		}
		// Unary "+" needs no instruction: it is identity on the operand.

	case *ast.BinaryOp:
		g.genExpr(e.LHS)
		g.genExpr(e.RHS)
		g.emit(binaryOp(e.Operator), 0)

	case *ast.Member:
		g.genExpr(e.Object)
		g.emit(bytecode.OpMember, int32(componentIndex(e.Name.Value)))

	case *ast.Index:
		g.genExpr(e.Object)
		g.genExpr(e.Index)
		g.emit(bytecode.OpIndex, 0)

	case *ast.Call:
		for _, a := range e.Arguments {
			g.genExpr(a)
		}
		g.genCall(e, info)

	case *ast.TypedConstructor:
		for _, a := range e.Args {
			g.genExpr(a)
		}
		g.emit(bytecode.OpConstruct, int32(info.Type))

	case *ast.Cast:
		g.genExpr(e.Expr)
		g.emit(bytecode.OpCast, int32(info.Type))

	case *ast.Invalid:
		g.emit(bytecode.OpLoadConst, int32(g.pool.Float(0)))

	default:
		g.emit(bytecode.OpLoadConst, int32(g.pool.Float(0)))
	}
}

func (g *gen) genNumber(e *ast.Number, info semantic.Info) {
	if info.Type == value.Integer {
		iv, _ := strconv.ParseInt(e.Value, 10, 32)
		g.emit(bytecode.OpLoadConst, int32(g.pool.Integer(int32(iv))))
		return
	}
	fv, _ := strconv.ParseFloat(e.Value, 32)
	g.emit(bytecode.OpLoadConst, int32(g.pool.Float(float32(fv))))
}

func (g *gen) genCall(e *ast.Call, info semantic.Info) {
	sym := g.checked.Callee(e)
	id := ""
	if sym != nil {
		id = sym.BuiltinID
	}
	g.emit(bytecode.OpCallBuiltin, int32(g.pool.String(id)))
}

func binaryOp(op string) bytecode.Op {
	switch op {
	case "+":
		return bytecode.OpAdd
	case "-":
		return bytecode.OpSub
	case "*":
		return bytecode.OpMul
	case "/":
		return bytecode.OpDiv
	case "<":
		return bytecode.OpLt
	case "<=":
		return bytecode.OpLe
	case ">":
		return bytecode.OpGt
	case ">=":
		return bytecode.OpGe
	case "==":
		return bytecode.OpEq
	case "!=":
		return bytecode.OpNe
	case "&&":
		return bytecode.OpAnd
	case "||":
		return bytecode.OpOr
	default:
		return bytecode.OpAdd
	}
}

func componentIndex(name string) int32 {
	switch name {
	case "x", "r":
		return 0
	case "y", "g":
		return 1
	case "z", "b":
		return 2
	default:
		return 0
	}
}
