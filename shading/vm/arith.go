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
	"github.com/japrozs/reyes/core/math/f32"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/value"
)

// outLen returns the broadcast output length of a binary op over a and b:
// varying (n) if either operand is varying, uniform (1) otherwise.
func outLen(a, b *value.Value, n int) int {
	if a.Storage().IsBroadcast() && b.Storage().IsBroadcast() {
		return 1
	}
	return n
}

func outStorage(ln int) value.Storage {
	if ln == 1 {
		return value.Uniform
	}
	return value.Varying
}

func idx(v *value.Value, i int) int {
	if v.Storage().IsBroadcast() {
		return 0
	}
	return i
}

// binaryArith evaluates +, -, *, / for any pair of operand types the
// grammar allows: same-type elementwise (float+float, color+color, ...),
// and the scalar*triple / triple/scalar forms every shading language of
// this shape permits.
func binaryArith(op bytecode.Op, a, b *value.Value, n int) *value.Value {
	switch {
	case a.Type() == value.Float && b.Type() == value.Float:
		return binaryFloat(op, a, b, n)
	case a.Type() == value.Integer && b.Type() == value.Integer:
		return binaryInt(op, a, b, n)
	case a.Type().IsTriple() && b.Type().IsTriple() && a.Type() == b.Type():
		return binaryTriple(op, a, b, a.Type(), n)
	case a.Type().IsTriple() && b.Type() == value.Float:
		return scaleTriple(op, a, b, n)
	case a.Type() == value.Float && b.Type().IsTriple():
		return scaleTriple(op, b, a, n)
	case a.Type() == value.Matrix && b.Type() == value.Matrix:
		return binaryMatrix(op, a, b, n)
	default:
		// Reaching here means semantic.Check let through a combination the
		// VM has no evaluation rule for: a compiler bug, not a shading error.
		panic("vm: no arithmetic rule for operand types")
	}
}

func binaryFloat(op bytecode.Op, a, b *value.Value, n int) *value.Value {
	ln := outLen(a, b, n)
	out := value.New(value.Float, outStorage(ln))
	out.Resize(ln)
	af, bf, of := a.Floats(), b.Floats(), out.Floats()
	for i := 0; i < ln; i++ {
		x, y := af[idx(a, i)], bf[idx(b, i)]
		of[i] = applyFloat(op, x, y)
	}
	return out
}

func applyFloat(op bytecode.Op, x, y float32) float32 {
	switch op {
	case bytecode.OpAdd:
		return x + y
	case bytecode.OpSub:
		return x - y
	case bytecode.OpMul:
		return x * y
	case bytecode.OpDiv:
		return x / y
	default:
		panic("vm: unsupported float op")
	}
}

func binaryInt(op bytecode.Op, a, b *value.Value, n int) *value.Value {
	ln := outLen(a, b, n)
	out := value.New(value.Integer, outStorage(ln))
	out.Resize(ln)
	ai, bi, oi := a.Ints(), b.Ints(), out.Ints()
	for i := 0; i < ln; i++ {
		x, y := ai[idx(a, i)], bi[idx(b, i)]
		switch op {
		case bytecode.OpAdd:
			oi[i] = x + y
		case bytecode.OpSub:
			oi[i] = x - y
		case bytecode.OpMul:
			oi[i] = x * y
		case bytecode.OpDiv:
			oi[i] = x / y
		default:
			panic("vm: unsupported integer op")
		}
	}
	return out
}

func binaryTriple(op bytecode.Op, a, b *value.Value, t value.Type, n int) *value.Value {
	ln := outLen(a, b, n)
	out := value.New(t, outStorage(ln))
	out.Resize(ln)
	at, bt, ot := a.Triples(), b.Triples(), out.Triples()
	for i := 0; i < ln; i++ {
		x, y := at[idx(a, i)], bt[idx(b, i)]
		switch op {
		case bytecode.OpAdd:
			ot[i] = f32.Add3D(x, y)
		case bytecode.OpSub:
			ot[i] = f32.Sub3D(x, y)
		case bytecode.OpMul:
			ot[i] = f32.Vec3{x[0] * y[0], x[1] * y[1], x[2] * y[2]}
		case bytecode.OpDiv:
			ot[i] = f32.Vec3{x[0] / y[0], x[1] / y[1], x[2] / y[2]}
		default:
			panic("vm: unsupported triple op")
		}
	}
	return out
}

// scaleTriple evaluates triple*float or triple/float (and their reverse);
// the caller normalizes operand order before calling.
func scaleTriple(op bytecode.Op, tri, sc *value.Value, n int) *value.Value {
	ln := outLen(tri, sc, n)
	out := value.New(tri.Type(), outStorage(ln))
	out.Resize(ln)
	tt, sf, ot := tri.Triples(), sc.Floats(), out.Triples()
	for i := 0; i < ln; i++ {
		v, s := tt[idx(tri, i)], sf[idx(sc, i)]
		switch op {
		case bytecode.OpMul:
			ot[i] = v.Scale(s)
		case bytecode.OpDiv:
			ot[i] = v.Scale(1 / s)
		case bytecode.OpAdd, bytecode.OpSub:
			// Not offered by the grammar (a scalar can't add to a triple
			// without a cast) but handled rather than panicking, in case a
			// typed constructor promotes one later.
			ot[i] = v
		}
	}
	return out
}

func binaryMatrix(op bytecode.Op, a, b *value.Value, n int) *value.Value {
	ln := outLen(a, b, n)
	out := value.New(value.Matrix, outStorage(ln))
	out.Resize(ln)
	am, bm, om := a.Mats(), b.Mats(), out.Mats()
	for i := 0; i < ln; i++ {
		x, y := am[idx(a, i)], bm[idx(b, i)]
		var r value.Mat4
		for k := range r {
			switch op {
			case bytecode.OpAdd:
				r[k] = x[k] + y[k]
			case bytecode.OpSub:
				r[k] = x[k] - y[k]
			default:
				r[k] = x[k]
			}
		}
		om[i] = r
	}
	return out
}

func negate(v *value.Value) *value.Value {
	out := value.New(v.Type(), v.Storage())
	out.Resize(v.Len())
	switch v.Type() {
	case value.Float:
		vf, of := v.Floats(), out.Floats()
		for i := range vf {
			of[i] = -vf[i]
		}
	case value.Integer:
		vi, oi := v.Ints(), out.Ints()
		for i := range vi {
			oi[i] = -vi[i]
		}
	case value.Color, value.Point, value.Vector, value.Normal:
		vt, ot := v.Triples(), out.Triples()
		for i := range vt {
			ot[i] = vt[i].Scale(-1)
		}
	default:
		panic("vm: negate unsupported on " + v.Type().String())
	}
	return out
}

// compare evaluates <, <=, >, >=, ==, != for float or integer operands,
// producing an Integer (0/1) result.
func compare(op bytecode.Op, a, b *value.Value, n int) *value.Value {
	ln := outLen(a, b, n)
	out := value.New(value.Integer, outStorage(ln))
	out.Resize(ln)
	oi := out.Ints()
	for i := 0; i < ln; i++ {
		var less, equal bool
		switch a.Type() {
		case value.Integer:
			ai, bi := a.Ints(), b.Ints()
			x, y := ai[idx(a, i)], bi[idx(b, i)]
			less, equal = x < y, x == y
		default:
			af, bf := a.Floats(), b.Floats()
			x, y := af[idx(a, i)], bf[idx(b, i)]
			less, equal = x < y, x == y
		}
		oi[i] = boolInt(relop(op, less, equal))
	}
	return out
}

func relop(op bytecode.Op, less, equal bool) bool {
	switch op {
	case bytecode.OpLt:
		return less
	case bytecode.OpLe:
		return less || equal
	case bytecode.OpGt:
		return !less && !equal
	case bytecode.OpGe:
		return !less || equal
	case bytecode.OpEq:
		return equal
	case bytecode.OpNe:
		return !equal
	default:
		return false
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// logical evaluates &&, ||, ! for Integer (boolean) operands.
func logicalBinary(op bytecode.Op, a, b *value.Value, n int) *value.Value {
	ln := outLen(a, b, n)
	out := value.New(value.Integer, outStorage(ln))
	out.Resize(ln)
	ai, bi, oi := a.Ints(), b.Ints(), out.Ints()
	for i := 0; i < ln; i++ {
		x, y := ai[idx(a, i)] != 0, bi[idx(b, i)] != 0
		var r bool
		if op == bytecode.OpAnd {
			r = x && y
		} else {
			r = x || y
		}
		oi[i] = boolInt(r)
	}
	return out
}

func logicalNot(v *value.Value) *value.Value {
	out := value.New(value.Integer, v.Storage())
	out.Resize(v.Len())
	vi, oi := v.Ints(), out.Ints()
	for i := range vi {
		oi[i] = boolInt(vi[i] == 0)
	}
	return out
}
