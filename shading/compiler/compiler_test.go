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

package compiler_test

import (
	"context"
	"testing"

	"github.com/japrozs/reyes/core/assert"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/shading/compiler"
)

func TestCompileSimpleSurfaceProducesBytecode(t *testing.T) {
	ctx := assert.To(t)

	src := `surface matte(uniform float Kd = 0.8) {
		varying color Cs = color(1, 1, 1);
		varying color Ci = Cs * Kd;
	}`
	pol := policy.New()
	prog, ok := compiler.Compile(context.Background(), pol, t.Name(), src)
	ctx.For("compilation succeeds").That(ok).Equals(true)
	ctx.For("no errors reported").That(pol.First()).IsNil()
	ctx.For("program is non-nil").That(prog).IsNotNil()
	ctx.For("bytecode is non-empty").That(len(prog.Instrs) > 0).Equals(true)
	ctx.For("symbol table includes Kd").That(prog.Symbols[0].Name).Equals("Kd")
	ctx.For("one declared parameter").That(prog.ParamCount).Equals(1)
}

func TestCompileReportsUnresolvedIdentifier(t *testing.T) {
	ctx := assert.To(t)

	src := `surface s() {
		float v = nosuchvar;
	}`
	pol := policy.New()
	_, ok := compiler.Compile(context.Background(), pol, t.Name(), src)
	ctx.For("compilation fails").That(ok).Equals(false)
	ctx.For("semantic error is reported").That(pol.First()).IsNotNil()
}

func TestCompileIsDeterministic(t *testing.T) {
	ctx := assert.To(t)

	src := `surface s(uniform float k = 2) {
		varying float v = k * 2;
		if (v > 1) {
			v = v - 1;
		}
	}`
	pol1 := policy.New()
	a, _ := compiler.Compile(context.Background(), pol1, t.Name(), src)
	pol2 := policy.New()
	b, _ := compiler.Compile(context.Background(), pol2, t.Name(), src)

	ctx.For("identical source yields identical instruction count").
		That(len(a.Instrs)).Equals(len(b.Instrs))
	for i := range a.Instrs {
		ctx.For("instruction op matches").That(a.Instrs[i].Op).Equals(b.Instrs[i].Op)
		ctx.For("instruction operand matches").That(a.Instrs[i].Operand).Equals(b.Instrs[i].Operand)
	}
	ctx.For("pool sizes match").That(a.Pool.Len()).Equals(b.Pool.Len())
}

func TestCompileWhileLoopBracketsWithLoopOps(t *testing.T) {
	ctx := assert.To(t)

	src := `surface s() {
		uniform float i = 0;
		while (i < 10) {
			i = i + 1;
		}
	}`
	pol := policy.New()
	prog, ok := compiler.Compile(context.Background(), pol, t.Name(), src)
	ctx.For("compiles").That(ok).Equals(true)

	begins, ends := 0, 0
	for _, instr := range prog.Instrs {
		switch instr.Op {
		case bytecode.OpLoopBegin:
			begins++
		case bytecode.OpLoopEnd:
			ends++
		}
	}
	ctx.For("one loop_begin").That(begins).Equals(1)
	ctx.For("one matching loop_end").That(ends).Equals(1)
}
