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

// Package grid implements Grid: the named collection of Values a diced
// micropolygon mesh is shaded over. Grids are produced by the dicer and
// mutated only by the VM during shading.
package grid

import (
	"fmt"

	"github.com/japrozs/reyes/value"
)

// LightHandle identifies a light shader activated against a Grid by the
// renderer facade. Zero is never a valid handle.
type LightHandle int

// Grid is a width x height micropolygon mesh together with every named
// Value defined over it. "P" is conventionally present after dicing; "s"
// and "t" hold the parametric coordinates.
type Grid struct {
	width, height int
	du, dv        float32

	values map[string]*value.Value
	order  []string // insertion order, so re-dicing and debugging are stable

	lights       []LightHandle
	nextLight    LightHandle
	contributions map[LightHandle]Contribution
	// State is an opaque slot for shader-specific per-grid bookkeeping
	// (the VM's local-frame scratch values live here between calls).
	State interface{}
}

// Contribution is one light shader's per-vertex result against a grid:
// the incident direction and unoccluded color an illuminance/solar block
// reads as "L"/"Cl" while iterating this handle.
type Contribution struct {
	L, Cl *value.Value
}

// New returns an empty w x h grid with the given parametric step.
func New(w, h int, du, dv float32) *Grid {
	return &Grid{
		width: w, height: h, du: du, dv: dv,
		values: map[string]*value.Value{},
	}
}

func (g *Grid) Width() int     { return g.width }
func (g *Grid) Height() int    { return g.height }
func (g *Grid) Du() float32    { return g.du }
func (g *Grid) Dv() float32    { return g.dv }
func (g *Grid) Count() int     { return g.width * g.height }

// Resize changes the grid's dimensions, resizing every varying Value to
// match. Uniform and constant Values are untouched.
func (g *Grid) Resize(w, h int) {
	g.width, g.height = w, h
	n := w * h
	for _, name := range g.order {
		v := g.values[name]
		if !v.Storage().IsBroadcast() {
			v.Resize(n)
		}
	}
}

// AddValue creates and returns a Value of the given name, type and
// storage, sized to the grid's current dimensions (1 for a broadcast
// storage class, width*height otherwise). It fails — returning the
// existing Value and a non-nil error — if a Value of the same name already exists
// with an incompatible type.
func (g *Grid) AddValue(name string, typ value.Type, storage value.Storage) (*value.Value, error) {
	if existing, ok := g.values[name]; ok {
		if existing.Type() != typ {
			return existing, fmt.Errorf("grid: %q already exists with type %s, cannot redeclare as %s", name, existing.Type(), typ)
		}
		return existing, nil
	}
	v := value.New(typ, storage)
	if !storage.IsBroadcast() {
		v.Resize(g.Count())
	}
	g.values[name] = v
	g.order = append(g.order, name)
	return v, nil
}

// Value returns the named Value, creating it with the given type and
// uniform storage if it does not yet exist (get-or-create semantics).
func (g *Grid) Value(name string, typ value.Type) *value.Value {
	if v, ok := g.values[name]; ok {
		return v
	}
	v, _ := g.AddValue(name, typ, value.Uniform)
	return v
}

// Lookup returns the named Value and whether it exists, without creating
// it.
func (g *Grid) Lookup(name string) (*value.Value, bool) {
	v, ok := g.values[name]
	return v, ok
}

// Names returns every Value name defined on the grid, in declaration
// order.
func (g *Grid) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Lights returns the ordered list of light shaders currently active
// against this grid, in activation order.
func (g *Grid) Lights() []LightHandle {
	return g.lights
}

// SetLights replaces the grid's active light list.
func (g *Grid) SetLights(lights []LightHandle) {
	g.lights = lights
}

// NewLightHandle allocates the next LightHandle for this grid. Handles are
// never reused, so a deactivated-then-reactivated light keeps its
// identity and any contribution recorded against it.
func (g *Grid) NewLightHandle() LightHandle {
	g.nextLight++
	return g.nextLight
}

// SetContribution records a light shader's per-vertex result against
// handle h, overwriting any previous contribution for the same handle.
func (g *Grid) SetContribution(h LightHandle, c Contribution) {
	if g.contributions == nil {
		g.contributions = map[LightHandle]Contribution{}
	}
	g.contributions[h] = c
}

// Contribution returns the recorded light contribution for handle h, if
// any light shader has run against it yet.
func (g *Grid) Contribution(h LightHandle) (Contribution, bool) {
	c, ok := g.contributions[h]
	return c, ok
}
