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

// Package render implements the Renderer facade: the top-level surface a
// scene driver calls through, holding the error policy and the active
// light-shader registry, with registration and activation serialized by
// the facade rather than left for callers to coordinate.
package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/japrozs/reyes/grid"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/shading/bytecode"
	"github.com/japrozs/reyes/shading/vm"
)

// LightHandle identifies a light shader registered with this Renderer via
// LightShader. It is distinct from grid.LightHandle in spelling only —
// the same underlying value threads straight into each grid's own
// Lights()/Contribution bookkeeping, so "the renderer's handle" and "the
// grid's handle" are one identity, never reused: a deactivated light
// keeps its handle so it can be reactivated later.
type LightHandle = grid.LightHandle

type lightEntry struct {
	prog   *bytecode.Program
	active bool
}

// Renderer is the top-level facade: one error-policy-carrying object per
// render session. It is not reentrant —
// light-registry mutation is serialized by the facade, so every
// exported method takes the same lock.
type Renderer struct {
	pol *policy.Policy

	mu      sync.Mutex
	began   bool
	next    LightHandle
	lights  map[LightHandle]*lightEntry
	order   []LightHandle // activation order, oldest first
}

// New returns a Renderer reporting through pol.
func New(pol *policy.Policy) *Renderer {
	return &Renderer{pol: pol, lights: map[LightHandle]*lightEntry{}}
}

// Begin opens a render session. Light-shader registration and
// activate/deactivate are only valid between Begin and End.
func (r *Renderer) Begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.began {
		return fmt.Errorf("render: Begin called while a session is already active")
	}
	r.began = true
	return nil
}

// End closes the render session. The light registry itself survives End
// (handle identity is never revoked), but LightShade/SurfaceShade refuse
// to run outside a Begin/End bracket.
func (r *Renderer) End() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.began {
		return fmt.Errorf("render: End called without a matching Begin")
	}
	r.began = false
	return nil
}

// LightShader registers a compiled light shader and returns its handle.
// The handle is permanent: deactivating and later reactivating it reuses
// the same identity and therefore the same slot in every grid's
// Contribution map.
func (r *Renderer) LightShader(prog *bytecode.Program) (LightHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.began {
		return 0, fmt.Errorf("render: LightShader called outside Begin/End")
	}
	r.next++
	h := r.next
	r.lights[h] = &lightEntry{prog: prog}
	return h, nil
}

// ActivateLightShader marks h active, appending it to the activation
// order the first time it is activated. Reactivating an already-active
// handle is a no-op.
func (r *Renderer) ActivateLightShader(h LightHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.lights[h]
	if !ok {
		return fmt.Errorf("render: unknown light handle %d", h)
	}
	if !e.active {
		ordered := false
		for _, o := range r.order {
			if o == h {
				ordered = true
				break
			}
		}
		if !ordered {
			r.order = append(r.order, h)
		}
	}
	e.active = true
	return nil
}

// DeactivateLightShader marks h inactive. Its position in the activation
// order and its registered program are retained, so a later
// ActivateLightShader call reactivates it without assigning a new
// identity.
func (r *Renderer) DeactivateLightShader(h LightHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.lights[h]
	if !ok {
		return fmt.Errorf("render: unknown light handle %d", h)
	}
	e.active = false
	return nil
}

// LightShade runs every active light shader against g, in activation
// order, recording each one's L/Cl result into g's Contribution map. g's
// own Lights() list is set to exactly the active handles in that order,
// which is what an illuminance/solar block in a subsequent SurfaceShade
// call iterates.
func (r *Renderer) LightShade(ctx context.Context, g *grid.Grid) error {
	r.mu.Lock()
	if !r.began {
		r.mu.Unlock()
		return fmt.Errorf("render: LightShade called outside Begin/End")
	}
	var active []LightHandle
	progs := map[LightHandle]*bytecode.Program{}
	for _, h := range r.order {
		if e := r.lights[h]; e.active {
			active = append(active, h)
			progs[h] = e.prog
		}
	}
	r.mu.Unlock()

	g.SetLights(active)
	for _, h := range active {
		m := vm.New(r.pol, g, progs[h])
		m.Initialize(ctx)
		if err := m.Shade(ctx, g, g); err != nil {
			return err
		}
		l, _ := g.Lookup("L")
		cl, _ := g.Lookup("Cl")
		contribution := grid.Contribution{}
		if l != nil {
			contribution.L = l.Clone()
		}
		if cl != nil {
			contribution.Cl = cl.Clone()
		}
		g.SetContribution(h, contribution)
	}
	return nil
}

// SurfaceShade runs prog — a compiled surface or displacement shader —
// over g in place. This is the renderer's own shade entry point.
func (r *Renderer) SurfaceShade(ctx context.Context, g *grid.Grid, prog *bytecode.Program) error {
	r.mu.Lock()
	active := r.began
	r.mu.Unlock()
	if !active {
		return fmt.Errorf("render: SurfaceShade called outside Begin/End")
	}
	m := vm.New(r.pol, g, prog)
	m.Initialize(ctx)
	return m.Shade(ctx, g, g)
}
