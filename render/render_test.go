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

package render_test

import (
	"context"
	"testing"

	"github.com/japrozs/reyes/core/assert"
	"github.com/japrozs/reyes/grid"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/render"
	"github.com/japrozs/reyes/shading/compiler"
)

func TestRendererRunsLightThenSurfaceShade(t *testing.T) {
	ctx := assert.To(t)
	pol := policy.New()

	lightSrc := `light distant() {
		Cl = color(1, 1, 1);
	}`
	lightProg, ok := compiler.Compile(context.Background(), pol, "light", lightSrc)
	ctx.For("light shader compiles").That(ok).Equals(true)

	surfaceSrc := `surface litmatte() {
		Ci = color(0, 0, 0);
		illuminance(P) {
			Ci = Ci + Cl;
		}
	}`
	surfaceProg, ok := compiler.Compile(context.Background(), pol, "surface", surfaceSrc)
	ctx.For("surface shader compiles").That(ok).Equals(true)

	r := render.New(pol)
	ctx.For("begin succeeds").That(r.Begin()).IsNil()

	h, err := r.LightShader(lightProg)
	ctx.For("light registration succeeds").That(err).IsNil()
	ctx.For("activation succeeds").That(r.ActivateLightShader(h)).IsNil()

	g := grid.New(2, 2, 0.5, 0.5)
	ctx.For("light_shade succeeds").That(r.LightShade(context.Background(), g)).IsNil()
	ctx.For("surface_shade succeeds").That(r.SurfaceShade(context.Background(), g, surfaceProg)).IsNil()

	ci, ok := g.Lookup("Ci")
	ctx.For("Ci exists").That(ok).Equals(true)
	for _, t3 := range ci.Triples() {
		ctx.For("one active light contributes once").That(t3[0]).Equals(float32(1))
	}

	ctx.For("end succeeds").That(r.End()).IsNil()
}

func TestDeactivatedLightIsSkippedButKeepsIdentity(t *testing.T) {
	ctx := assert.To(t)
	pol := policy.New()

	lightSrc := `light distant() {
		Cl = color(1, 1, 1);
	}`
	lightProg, _ := compiler.Compile(context.Background(), pol, "light", lightSrc)

	r := render.New(pol)
	r.Begin()
	h, _ := r.LightShader(lightProg)
	r.ActivateLightShader(h)
	r.DeactivateLightShader(h)

	g := grid.New(2, 2, 0.5, 0.5)
	ctx.For("light_shade succeeds with no active lights").That(r.LightShade(context.Background(), g)).IsNil()
	_, hasContribution := g.Contribution(h)
	ctx.For("deactivated light never ran, no contribution recorded").That(hasContribution).Equals(false)

	ctx.For("reactivation succeeds using the same handle").That(r.ActivateLightShader(h)).IsNil()
	ctx.For("light_shade succeeds once reactivated").That(r.LightShade(context.Background(), g)).IsNil()
	_, hasContribution = g.Contribution(h)
	ctx.For("reactivated light runs and records a contribution").That(hasContribution).Equals(true)
}
