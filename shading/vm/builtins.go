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
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"

	"github.com/japrozs/reyes/core/math/f32"
	"github.com/japrozs/reyes/shading/semantic"
	"github.com/japrozs/reyes/value"
)

// builtinFunc evaluates one call_builtin instruction: args arrive in
// declaration order, already popped off the operand stack; vm gives
// access to the executing grid and local light state (L, Cl, the light
// loop's current handle) that diffuse/specular/ambient/illuminance need.
type builtinFunc func(vm *VM, args []*value.Value) *value.Value

// arity is derived from semantic.Builtins() so the VM's dispatch table
// can never drift from the compiler's overload table: both read the same
// source of truth instead of duplicating a second copy of each
// signature's parameter count.
var arity = func() map[string]int {
	m := map[string]int{}
	for _, b := range semantic.Builtins() {
		m[b.BuiltinID] = len(b.Params)
	}
	return m
}()

var builtins = map[string]builtinFunc{
	"trig.sin":   unaryFloat(math32.Sin),
	"trig.cos":   unaryFloat(math32.Cos),
	"trig.tan":   unaryFloat(math32.Tan),
	"math.sqrt":  unaryFloat(math32.Sqrt),
	"math.abs":   unaryFloat(math32.Abs),
	"math.floor": unaryFloat(math32.Floor),
	"math.ceil":  unaryFloat(math32.Ceil),

	"math.pow": binaryFloatFn(math32.Pow),
	"math.mod": binaryFloatFn(math32.Mod),
	"math.max": binaryFloatFn(math32.Max),
	"math.min": binaryFloatFn(math32.Min),

	"math.clamp": builtinClamp,
	"math.mix":   builtinMix,

	"vec.length":      builtinLength,
	"vec.normalize":   builtinNormalize,
	"vec.faceforward": builtinFaceforward,
	"vec.reflect":     builtinReflect,
	"vec.dot":         builtinDot,

	"noise.eval3":    builtinNoise,
	"texture.sample": builtinTexture,

	"light.diffuse":  builtinDiffuse,
	"light.specular": builtinSpecular,
	"light.ambient":  builtinAmbient,

	"deriv.du":   builtinDu,
	"deriv.dv":   builtinDv,
	"deriv.area": builtinArea,
}

func unaryFloat(f func(float32) float32) builtinFunc {
	return func(vm *VM, args []*value.Value) *value.Value {
		a := args[0]
		out := value.New(value.Float, a.Storage())
		out.Resize(a.Len())
		af, of := a.Floats(), out.Floats()
		for i := range af {
			of[i] = f(af[i])
		}
		return out
	}
}

func binaryFloatFn(f func(float32, float32) float32) builtinFunc {
	return func(vm *VM, args []*value.Value) *value.Value {
		a, b := args[0], args[1]
		n := vm.n
		ln := outLen(a, b, n)
		out := value.New(value.Float, outStorage(ln))
		out.Resize(ln)
		af, bf, of := a.Floats(), b.Floats(), out.Floats()
		for i := 0; i < ln; i++ {
			of[i] = f(af[idx(a, i)], bf[idx(b, i)])
		}
		return out
	}
}

func builtinClamp(vm *VM, args []*value.Value) *value.Value {
	x, lo, hi := args[0], args[1], args[2]
	n := vm.n
	ln := x.Len()
	if !lo.Storage().IsBroadcast() || !hi.Storage().IsBroadcast() {
		ln = n
	}
	out := value.New(value.Float, outStorage(ln))
	out.Resize(ln)
	xf, lf, hf, of := x.Floats(), lo.Floats(), hi.Floats(), out.Floats()
	for i := 0; i < ln; i++ {
		v := xf[idx(x, i)]
		l, h := lf[idx(lo, i)], hf[idx(hi, i)]
		of[i] = math32.Max(l, math32.Min(h, v))
	}
	return out
}

func builtinMix(vm *VM, args []*value.Value) *value.Value {
	c0, c1, t := args[0], args[1], args[2]
	n := vm.n
	ln := n
	if c0.Storage().IsBroadcast() && c1.Storage().IsBroadcast() && t.Storage().IsBroadcast() {
		ln = 1
	}
	out := value.New(value.Color, outStorage(ln))
	out.Resize(ln)
	a, b, tf, o := c0.Triples(), c1.Triples(), t.Floats(), out.Triples()
	for i := 0; i < ln; i++ {
		x, y, s := a[idx(c0, i)], b[idx(c1, i)], tf[idx(t, i)]
		o[i] = f32.Vec3{
			x[0] + (y[0]-x[0])*s,
			x[1] + (y[1]-x[1])*s,
			x[2] + (y[2]-x[2])*s,
		}
	}
	return out
}

func builtinLength(vm *VM, args []*value.Value) *value.Value {
	v := args[0]
	out := value.New(value.Float, v.Storage())
	out.Resize(v.Len())
	vt, of := v.Triples(), out.Floats()
	for i := range vt {
		of[i] = vt[i].Magnitude()
	}
	return out
}

func builtinNormalize(vm *VM, args []*value.Value) *value.Value {
	v := args[0]
	out := value.New(value.Vector, v.Storage())
	out.Resize(v.Len())
	vt, ot := v.Triples(), out.Triples()
	for i := range vt {
		if vt[i].SqrMagnitude() == 0 {
			ot[i] = vt[i]
			continue
		}
		ot[i] = vt[i].Normalize()
	}
	return out
}

// faceforward(N,I) flips N so it points away from I, the standard
// shading-language convention (RSL's own faceforward has this signature).
func builtinFaceforward(vm *VM, args []*value.Value) *value.Value {
	nv, iv := args[0], args[1]
	n := vm.n
	ln := outLen(nv, iv, n)
	out := value.New(value.Normal, outStorage(ln))
	out.Resize(ln)
	nt, it, ot := nv.Triples(), iv.Triples(), out.Triples()
	for i := 0; i < ln; i++ {
		N, I := nt[idx(nv, i)], it[idx(iv, i)]
		if dot(I, N) > 0 {
			ot[i] = N.Scale(-1)
		} else {
			ot[i] = N
		}
	}
	return out
}

// reflect(I,N) = I - 2*dot(I,N)*N.
func builtinReflect(vm *VM, args []*value.Value) *value.Value {
	iv, nv := args[0], args[1]
	n := vm.n
	ln := outLen(iv, nv, n)
	out := value.New(value.Vector, outStorage(ln))
	out.Resize(ln)
	it, nt, ot := iv.Triples(), nv.Triples(), out.Triples()
	for i := 0; i < ln; i++ {
		I, N := it[idx(iv, i)], nt[idx(nv, i)]
		d := 2 * dot(I, N)
		ot[i] = f32.Sub3D(I, N.Scale(d))
	}
	return out
}

func builtinDot(vm *VM, args []*value.Value) *value.Value {
	a, b := args[0], args[1]
	n := vm.n
	ln := outLen(a, b, n)
	out := value.New(value.Float, outStorage(ln))
	out.Resize(ln)
	at, bt, of := a.Triples(), b.Triples(), out.Floats()
	for i := 0; i < ln; i++ {
		of[i] = dot(at[idx(a, i)], bt[idx(b, i)])
	}
	return out
}

func dot(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// builtinNoise is a deterministic stand-in for Perlin/value noise: the
// shading language only needs a repeatable, bounded [0,1) function of a
// point for test fixtures and non-photoreal previews, not a specific
// noise kernel (a real texture/noise cache is an external collaborator's
// concern).
func builtinNoise(vm *VM, args []*value.Value) *value.Value {
	p := args[0]
	out := value.New(value.Float, p.Storage())
	out.Resize(p.Len())
	pt, of := p.Triples(), out.Floats()
	for i, v := range pt {
		h := math32.Sin(v[0]*12.9898+v[1]*78.233+v[2]*37.719) * 43758.5453
		of[i] = h - math32.Floor(h)
	}
	return out
}

// builtinTexture is a placeholder sampler: a real texture cache isn't
// implemented here, so a string naming a known x/image/colornames color
// stands in for a resolved texture lookup, and any other name aggregates
// a "texture miss" message (reported by Policy.Flush as a
// RuntimeShadingError) and returns black.
func builtinTexture(vm *VM, args []*value.Value) *value.Value {
	name := args[0].Strings()[0]
	out := value.New(value.Color, value.Uniform)
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		out.Triples()[0] = f32.Vec3{
			float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255,
		}
		return out
	}
	vm.pol.Aggregate("texture miss: " + name)
	return out
}

func builtinDiffuse(vm *VM, args []*value.Value) *value.Value {
	n := args[0]
	out := value.New(value.Color, value.Varying)
	out.Resize(vm.n)
	nt, ot := n.Triples(), out.Triples()
	L, Cl := vm.lightL, vm.lightCl
	if L == nil || Cl == nil {
		return out
	}
	lt, ct := L.Triples(), Cl.Triples()
	for i := 0; i < vm.n; i++ {
		k := math32.Max(0, dot(nt[idx(n, i)], lt[idx(L, i)]))
		ot[i] = ct[idx(Cl, i)].Scale(k)
	}
	return out
}

func builtinSpecular(vm *VM, args []*value.Value) *value.Value {
	n, v, rough := args[0], args[1], args[2]
	out := value.New(value.Color, value.Varying)
	out.Resize(vm.n)
	L, Cl := vm.lightL, vm.lightCl
	if L == nil || Cl == nil {
		return out
	}
	nt, vt, lt, ct := n.Triples(), v.Triples(), L.Triples(), Cl.Triples()
	rf := rough.Floats()
	for i := 0; i < vm.n; i++ {
		N, V, Lv := nt[idx(n, i)], vt[idx(v, i)], lt[idx(L, i)]
		H := f32.Add3D(Lv, V)
		if H.SqrMagnitude() > 0 {
			H = H.Normalize()
		}
		r := rf[idx(rough, i)]
		if r <= 0 {
			r = 1
		}
		k := math32.Pow(math32.Max(0, dot(N, H)), 1/r)
		out.Triples()[i] = ct[idx(Cl, i)].Scale(k)
	}
	return out
}

func builtinAmbient(vm *VM, args []*value.Value) *value.Value {
	out := value.New(value.Color, value.Varying)
	out.Resize(vm.n)
	if vm.lightCl == nil {
		return out
	}
	ct := vm.lightCl.Triples()
	for i := 0; i < vm.n; i++ {
		out.Triples()[i] = ct[idx(vm.lightCl, i)]
	}
	return out
}

// builtinDu/builtinDv/builtinArea are the finite-difference derivative
// ops, approximated across a vertex's row/column neighbor in the grid
// using its du/dv parametric step.
func builtinDu(vm *VM, args []*value.Value) *value.Value { return finiteDiff(vm, args[0], 1, 0) }
func builtinDv(vm *VM, args []*value.Value) *value.Value { return finiteDiff(vm, args[0], 0, 1) }

func finiteDiff(vm *VM, f *value.Value, dx, dy int) *value.Value {
	out := value.New(value.Float, value.Varying)
	out.Resize(vm.n)
	w, h := vm.grid.Width(), vm.grid.Height()
	step := vm.grid.Du()
	if dy == 1 {
		step = vm.grid.Dv()
	}
	ff, of := f.Floats(), out.Floats()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			nx, ny := x+dx, y+dy
			if nx >= w || ny >= h {
				nx, ny = x-dx, y-dy
			}
			j := ny*w + nx
			a, b := ff[idx(f, i)], ff[idx(f, j)]
			if step == 0 {
				of[i] = 0
				continue
			}
			d := (b - a) / step
			if nx < x || ny < y {
				d = -d
			}
			of[i] = d
		}
	}
	return out
}

// builtinArea approximates the micropolygon area at each vertex from the
// du/dv finite differences of P, matching the way Du/Dv are themselves
// computed — the cross product magnitude of the two edge vectors.
func builtinArea(vm *VM, args []*value.Value) *value.Value {
	p := args[0]
	out := value.New(value.Float, value.Varying)
	out.Resize(vm.n)
	w, h := vm.grid.Width(), vm.grid.Height()
	pt, of := p.Triples(), out.Floats()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			xn, yn := x+1, y+1
			if xn >= w {
				xn = x - 1
				if xn < 0 {
					xn = x
				}
			}
			if yn >= h {
				yn = y - 1
				if yn < 0 {
					yn = y
				}
			}
			edx := f32.Sub3D(pt[idx(p, y*w+xn)], pt[idx(p, i)])
			edy := f32.Sub3D(pt[idx(p, yn*w+x)], pt[idx(p, i)])
			of[i] = f32.Cross3D(edx, edy).Magnitude()
		}
	}
	return out
}
