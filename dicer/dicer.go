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

// Package dicer implements the bound/split/dice worklist: a pure
// function of its inputs (a primitive, a transform and a Config) that
// recursively splits primitives whose screen-space bound exceeds a
// threshold and dices the rest, rounding dice resolution to a microgrid
// tile.
package dicer

import (
	"context"
	"fmt"

	"github.com/japrozs/reyes/core/event/task"
	"github.com/japrozs/reyes/core/log"
	"github.com/japrozs/reyes/core/math/interval"
	"github.com/japrozs/reyes/geometry"
	"github.com/japrozs/reyes/grid"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/value"
)

// DefaultTileSize is the microgrid tile dice resolution rounds up to
// when Config.TileSize is zero.
const DefaultTileSize = 8

// DefaultMaxDepth bounds worklist recursion so a degenerate primitive
// (one whose bound never shrinks below Threshold across splits) fails
// instead of looping forever — a pure function of its inputs still has
// to terminate on every input.
const DefaultMaxDepth = 24

// Config parameterizes one Dice call. Threshold is in the same units as
// the screen-space bound Bound(transform) produces — the caller's
// transform is expected to already carry whatever projection turns world
// space into screen space; projection itself is an external collaborator's
// concern, not something this package performs.
type Config struct {
	Threshold float32
	TileSize  int
	MaxDepth  int
}

func (c Config) tileSize() int {
	if c.TileSize > 0 {
		return c.TileSize
	}
	return DefaultTileSize
}

func (c Config) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}

type item struct {
	prim  geometry.Primitive
	depth int
}

// Dice runs the worklist to completion, returning one Grid per leaf
// primitive. It stops early and returns whatever grids were already
// produced, plus the cancellation error, if ctx is cancelled between
// worklist items.
func Dice(ctx context.Context, pol *policy.Policy, transform value.Mat4, prim geometry.Primitive, cfg Config) ([]*grid.Grid, error) {
	lctx := log.Wrap(ctx)
	worklist := []item{{prim, 0}}
	var grids []*grid.Grid

	for len(worklist) > 0 {
		select {
		case <-task.ShouldStop(lctx):
			return grids, task.StopReason(lctx)
		default:
		}

		w := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		children, g, err := step(w, transform, cfg)
		if err != nil {
			pol.Report(ctx, policy.Error{Kind: policy.UnsupportedGeometry, Message: err.Error()})
			return grids, err
		}
		if g != nil {
			grids = append(grids, g)
		}
		worklist = append(worklist, children...)
	}
	return grids, nil
}

// step decides split vs. dice for one worklist item: its extent is the
// larger of the projected bound's x/y extent. Exceeding Threshold (or
// being merely close to it — ties favor splitting) means split;
// otherwise dice. A primitive that can't do whichever action was chosen
// falls back to the other, and only fails if neither is available.
func step(w item, transform value.Mat4, cfg Config) (children []item, g *grid.Grid, err error) {
	min, max := w.prim.Bound(transform)
	extentX, extentY := max[0]-min[0], max[1]-min[1]
	extent := extentX
	if extentY > extent {
		extent = extentY
	}

	const tieBreakMargin = 0.9 // "close" enough to the threshold to split rather than risk an over-wide dice
	wantsSplit := extent >= cfg.Threshold*tieBreakMargin && w.depth < cfg.maxDepth()

	switch {
	case wantsSplit && w.prim.Splittable():
		kids, serr := w.prim.Split()
		if serr != nil {
			return nil, nil, serr
		}
		children = make([]item, len(kids))
		for i, k := range kids {
			children[i] = item{k, w.depth + 1}
		}
		return children, nil, nil

	case w.prim.Diceable():
		gw, gh := resolution(extentX, extentY, cfg.tileSize())
		g, err = w.prim.Dice(transform, gw, gh)
		return nil, g, err

	case w.prim.Splittable():
		kids, serr := w.prim.Split()
		if serr != nil {
			return nil, nil, serr
		}
		children = make([]item, len(kids))
		for i, k := range kids {
			children[i] = item{k, w.depth + 1}
		}
		return children, nil, nil

	default:
		return nil, nil, fmt.Errorf("dicer: primitive not diceable")
	}
}

// resolution derives a vertex grid width/height proportional to a
// primitive's screen-space pixel extent, rounded up to whole microgrid
// tiles. The pixel span itself is represented as an interval.U64Range —
// the same half-open-interval type gapil's core/math/interval package
// already models memory ranges with — purely for the Start/Count
// vocabulary; no interval-list merge or search from that package is
// exercised here, since a single primitive's dice resolution never needs
// to be reconciled against another primitive's.
func resolution(extentX, extentY float32, tile int) (w, h int) {
	return roundUpToTile(pixels(extentX), tile), roundUpToTile(pixels(extentY), tile)
}

func pixels(extent float32) uint64 {
	if extent < 1 {
		return 1
	}
	return interval.U64Span{Start: 0, End: uint64(extent) + 1}.Range().Count
}

func roundUpToTile(n uint64, tile int) int {
	t := uint64(tile)
	if t == 0 {
		t = DefaultTileSize
	}
	rem := n % t
	if rem != 0 {
		n += t - rem
	}
	if n < t {
		n = t
	}
	return int(n) + 1 // vertices per side, one more than the tile count of segments
}
