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

package geometry_test

import (
	"math"
	"testing"

	"github.com/japrozs/reyes/core/assert"
	"github.com/japrozs/reyes/geometry"
	"github.com/japrozs/reyes/value"
)

const epsilon = 1e-5

func closeTo(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

// TestCylinderDiceMatchesFixture dices a unit-radius, full-turn cylinder
// clipped to [0,1] and checks its bound and its first/last diced vertex
// against the original renderer's own cylinder fixture.
func TestCylinderDiceMatchesFixture(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	min, max := c.Bound(value.Identity4())
	ctx.For("bound min x").That(closeTo(min[0], -1)).Equals(true)
	ctx.For("bound min y").That(closeTo(min[1], -1)).Equals(true)
	ctx.For("bound min z").That(closeTo(min[2], 0)).Equals(true)
	ctx.For("bound max x").That(closeTo(max[0], 1)).Equals(true)
	ctx.For("bound max y").That(closeTo(max[1], 1)).Equals(true)
	ctx.For("bound max z").That(closeTo(max[2], 1)).Equals(true)

	g, err := c.Dice(value.Identity4(), 8, 8)
	ctx.For("dice succeeds").That(err).IsNil()

	p, _ := g.Lookup("P")
	first := p.Triples()[0]
	ctx.For("u=0,v=0 is (1,0,0)").That(closeTo(first[0], 1) && closeTo(first[1], 0) && closeTo(first[2], 0)).Equals(true)

	last := p.Triples()[g.Count()-1]
	ctx.For("u=1,v=1 is (1,0,1)").That(closeTo(last[0], 1) && closeTo(last[1], 0) && closeTo(last[2], 1)).Equals(true)
}

// TestSplitProducesFourQuadrantChildren exercises the 4-way bisection
// Split performs on a primitive's (u,v) domain.
func TestSplitProducesFourQuadrantChildren(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	children, err := c.Split()
	ctx.For("split succeeds").That(err).IsNil()
	ctx.For("four children").That(len(children)).Equals(4)

	for _, child := range children {
		ctx.For("child u-range within parent").That(child.URange.Lo >= c.URange.Lo && child.URange.Hi <= c.URange.Hi).Equals(true)
		ctx.For("child v-range within parent").That(child.VRange.Lo >= c.VRange.Lo && child.VRange.Hi <= c.VRange.Hi).Equals(true)
		ctx.For("intrinsic radius unchanged").That(child.Radius).Equals(c.Radius)
	}
}

// TestDiceNeverExceedsRange checks that dicing never emits a position
// outside the primitive's own (u,v) sub-range, even after a split
// narrows it.
func TestDiceNeverExceedsRange(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	children, _ := c.Split()
	quadrant := children[0]

	g, err := quadrant.Dice(value.Identity4(), 4, 4)
	ctx.For("dice succeeds").That(err).IsNil()

	s, _ := g.Lookup("s")
	tt, _ := g.Lookup("t")
	for i, u := range s.Floats() {
		ctx.For("u stays within the child's range").That(u >= quadrant.URange.Lo && u <= quadrant.URange.Hi).Equals(true)
		ctx.For("v stays within the child's range").That(tt.Floats()[i] >= quadrant.VRange.Lo && tt.Floats()[i] <= quadrant.VRange.Hi).Equals(true)
	}
}

func TestSphereDiceProducesUnitNormals(t *testing.T) {
	ctx := assert.To(t)

	s := geometry.NewSphere(1, -1, 1, 2*math.Pi)
	g, err := s.Dice(value.Identity4(), 8, 8)
	ctx.For("dice succeeds").That(err).IsNil()

	n, _ := g.Lookup("N")
	for _, v3 := range n.Triples() {
		mag := float64(v3[0]*v3[0] + v3[1]*v3[1] + v3[2]*v3[2])
		ctx.For("sphere normal is unit length").That(mag > 0.999 && mag < 1.001).Equals(true)
	}
}
