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

package dicer_test

import (
	"context"
	"math"
	"testing"

	"github.com/japrozs/reyes/core/assert"
	"github.com/japrozs/reyes/dicer"
	"github.com/japrozs/reyes/geometry"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/value"
)

func TestDiceSmallPrimitiveYieldsOneGrid(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	pol := policy.New()
	grids, err := dicer.Dice(context.Background(), pol, value.Identity4(), c, dicer.Config{Threshold: 100})
	ctx.For("dice succeeds").That(err).IsNil()
	ctx.For("one leaf grid, bound well under threshold").That(len(grids)).Equals(1)
}

func TestDiceLargePrimitiveSplitsBeforeDicing(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	pol := policy.New()
	grids, err := dicer.Dice(context.Background(), pol, value.Identity4(), c, dicer.Config{Threshold: 0.5})
	ctx.For("dice succeeds").That(err).IsNil()
	ctx.For("bound exceeds threshold, so more than one leaf grid").That(len(grids) > 1).Equals(true)
}

func TestDiceGridDimensionsAreTileMultiplesPlusOne(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	pol := policy.New()
	grids, err := dicer.Dice(context.Background(), pol, value.Identity4(), c, dicer.Config{Threshold: 100, TileSize: 8})
	ctx.For("dice succeeds").That(err).IsNil()
	for _, g := range grids {
		ctx.For("width minus one is a multiple of the tile size").That((g.Width()-1)%8).Equals(0)
		ctx.For("height minus one is a multiple of the tile size").That((g.Height()-1)%8).Equals(0)
	}
}

func TestDiceRespectsMaxDepth(t *testing.T) {
	ctx := assert.To(t)

	c := geometry.NewCylinder(1, 0, 1, 2*math.Pi)
	pol := policy.New()
	grids, err := dicer.Dice(context.Background(), pol, value.Identity4(), c, dicer.Config{Threshold: 0, MaxDepth: 2})
	ctx.For("dice succeeds even though every bound exceeds a zero threshold").That(err).IsNil()
	ctx.For("recursion stops at MaxDepth, producing leaf grids instead of looping").That(len(grids) > 0).Equals(true)
}
