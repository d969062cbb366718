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

// Package geometry implements the abstract parametric primitive contract:
// boundable, splittable, diceable. Primitives are a tagged variant rather
// than an interface with one implementation per kind — Primitive carries
// every kind's intrinsic parameters in one flat struct and Kind selects
// which of them the three operations read, which keeps dicing
// allocation-free (no per-primitive vtable, no boxing) and makes a new
// kind a local change: add a Kind constant, a case in each of
// bound/position/normal.
package geometry

import (
	"fmt"

	"github.com/japrozs/reyes/core/math/f32"
	"github.com/japrozs/reyes/grid"
	"github.com/japrozs/reyes/value"
)

// Kind identifies which intrinsic-parameter interpretation a Primitive
// carries.
type Kind int

const (
	Cylinder Kind = iota
	Sphere
)

func (k Kind) String() string {
	switch k {
	case Cylinder:
		return "cylinder"
	case Sphere:
		return "sphere"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Range is a closed sub-interval of a primitive's [0,1] parameter space
// along one of u or v.
type Range struct{ Lo, Hi float32 }

func (r Range) mid() float32 { return r.Lo + (r.Hi-r.Lo)*0.5 }

// clamp brings t into [r.Lo, r.Hi], guarding against the dicing loop's
// own floating-point drift past the range endpoints.
func (r Range) clamp(t float32) float32 {
	if t < r.Lo {
		return r.Lo
	}
	if t > r.Hi {
		return r.Hi
	}
	return t
}

// Primitive is a concrete geometric primitive together with the (u,v)
// sub-range of its full parametric domain this instance (or split child)
// covers. Intrinsic parameters are shared storage across kinds: Cylinder
// uses Radius/ZMin/ZMax/ThetaMax; Sphere reuses the same four fields
// under the conventional sphere parameterization.
type Primitive struct {
	Kind   Kind
	URange Range
	VRange Range

	Radius   float32
	ZMin     float32
	ZMax     float32
	ThetaMax float32
}

// NewCylinder returns a Cylinder primitive covering its full (u,v) domain.
func NewCylinder(radius, zmin, zmax, thetaMax float32) Primitive {
	return Primitive{
		Kind: Cylinder, URange: Range{0, 1}, VRange: Range{0, 1},
		Radius: radius, ZMin: zmin, ZMax: zmax, ThetaMax: thetaMax,
	}
}

// NewSphere returns a Sphere primitive of the given radius, clipped to
// [zmin,zmax] and swept through thetaMax, covering its full (u,v) domain.
func NewSphere(radius, zmin, zmax, thetaMax float32) Primitive {
	return Primitive{
		Kind: Sphere, URange: Range{0, 1}, VRange: Range{0, 1},
		Radius: radius, ZMin: zmin, ZMax: zmax, ThetaMax: thetaMax,
	}
}

// Boundable reports whether Bound can be called. Every Kind this package
// knows is boundable; the method exists so callers probe the contract
// rather than assuming it.
func (p Primitive) Boundable() bool { return true }

// Splittable reports whether Split can be called.
func (p Primitive) Splittable() bool { return true }

// Diceable reports whether Dice can be called.
func (p Primitive) Diceable() bool { return true }

// Bound returns the axis-aligned bounding box of p after applying
// transform, evaluating the primitive at its (u,v) range's four corners
// and, for Cylinder/Sphere, the extra samples needed to capture a curved
// boundary's extrema (the azimuthal extent wrapping past 0/π/... on each
// axis).
func (p Primitive) Bound(transform value.Mat4) (min, max f32.Vec3) {
	first := true
	grow := func(local f32.Vec3) {
		w := transform.TransformPoint(local)
		if first {
			min, max = w, w
			first = false
			return
		}
		for i := 0; i < 3; i++ {
			if w[i] < min[i] {
				min[i] = w[i]
			}
			if w[i] > max[i] {
				max[i] = w[i]
			}
		}
	}

	us := cornerSamples(p.URange)
	vs := cornerSamples(p.VRange)
	for _, u := range us {
		for _, v := range vs {
			grow(p.position(u, v))
		}
	}
	return min, max
}

// cornerSamples returns r's two endpoints plus every quarter-turn sample
// (0, 0.25, 0.5, 0.75, 1 scaled into r) that lies within it, so a swept
// curved surface's bounding box captures its axis-aligned extrema instead
// of just the straight-edged hull of its four corners.
func cornerSamples(r Range) []float32 {
	out := []float32{r.Lo, r.Hi}
	for _, q := range [...]float32{0, 0.25, 0.5, 0.75, 1} {
		t := r.Lo + q*(r.Hi-r.Lo)
		if t > r.Lo && t < r.Hi {
			out = append(out, t)
		}
	}
	return out
}

// Split subdivides p into its 4-way (u,v) bisection: children inherit
// p's intrinsic parameters unchanged and carry the four quadrants of
// p's own (u,v) range.
func (p Primitive) Split() ([]Primitive, error) {
	um, vm := p.URange.mid(), p.VRange.mid()
	uRanges := [2]Range{{p.URange.Lo, um}, {um, p.URange.Hi}}
	vRanges := [2]Range{{p.VRange.Lo, vm}, {vm, p.VRange.Hi}}

	children := make([]Primitive, 0, 4)
	for _, ur := range uRanges {
		for _, vr := range vRanges {
			child := p
			child.URange, child.VRange = ur, vr
			children = append(children, child)
		}
	}
	return children, nil
}

// Dice samples p on a uniform w x h grid over its (u,v) range, producing
// at minimum P, N, s and t. u and v are clamped to the range endpoints
// before evaluation so floating-point drift never samples past the
// primitive's declared domain.
func (p Primitive) Dice(transform value.Mat4, w, h int) (*grid.Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("geometry: dice size must be positive, got %dx%d", w, h)
	}
	du := (p.URange.Hi - p.URange.Lo) / float32(maxInt(w-1, 1))
	dv := (p.VRange.Hi - p.VRange.Lo) / float32(maxInt(h-1, 1))
	g := grid.New(w, h, du, dv)

	pv, _ := g.AddValue("P", value.Point, value.Varying)
	nv, _ := g.AddValue("N", value.Normal, value.Varying)
	sv, _ := g.AddValue("s", value.Float, value.Varying)
	tv, _ := g.AddValue("t", value.Float, value.Varying)

	pts, nrm, ss, tt := pv.Triples(), nv.Triples(), sv.Floats(), tv.Floats()
	for j := 0; j < h; j++ {
		v := p.VRange.clamp(p.VRange.Lo + float32(j)/float32(maxInt(h-1, 1))*(p.VRange.Hi-p.VRange.Lo))
		for i := 0; i < w; i++ {
			u := p.URange.clamp(p.URange.Lo + float32(i)/float32(maxInt(w-1, 1))*(p.URange.Hi-p.URange.Lo))
			idx := j*w + i
			pts[idx] = transform.TransformPoint(p.position(u, v))
			nrm[idx] = transform.TransformDirection(p.normal(u, v))
			ss[idx] = u
			tt[idx] = v
		}
	}
	return g, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// position evaluates P(u,v) in the primitive's local space.
func (p Primitive) position(u, v float32) f32.Vec3 {
	switch p.Kind {
	case Cylinder:
		return cylinderPosition(p, u, v)
	case Sphere:
		return spherePosition(p, u, v)
	default:
		panic("geometry: unhandled kind " + p.Kind.String())
	}
}

// normal evaluates the unit surface normal at (u,v) in the primitive's local space.
func (p Primitive) normal(u, v float32) f32.Vec3 {
	switch p.Kind {
	case Cylinder:
		return cylinderNormal(p, u, v)
	case Sphere:
		return sphereNormal(p, u, v)
	default:
		panic("geometry: unhandled kind " + p.Kind.String())
	}
}
