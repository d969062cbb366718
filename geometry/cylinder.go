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

package geometry

import (
	"github.com/chewxy/math32"

	"github.com/japrozs/reyes/core/math/f32"
)

// cylinderPosition computes P(u,v) = (r*cos(u*thetamax), r*sin(u*thetamax),
// zmin + v*(zmax-zmin)). The reference renderer this is modeled on computes
// the z coordinate as plain v*(zmax-zmin), with no zmin offset added back
// in — a cylinder whose zmin isn't 0 would sit at the wrong height there.
// The zmin offset is added deliberately here so a non-zero zmin clips the
// cylinder to [zmin, zmax] rather than [0, zmax-zmin].
func cylinderPosition(p Primitive, u, v float32) f32.Vec3 {
	theta := u * p.ThetaMax
	return f32.Vec3{
		p.Radius * math32.Cos(theta),
		p.Radius * math32.Sin(theta),
		p.ZMin + v*(p.ZMax-p.ZMin),
	}
}

// cylinderNormal computes (cos(u*thetamax), sin(u*thetamax), 0) — the
// radial direction, independent of v since a cylinder's surface normal
// doesn't vary along its axis.
func cylinderNormal(p Primitive, u, v float32) f32.Vec3 {
	theta := u * p.ThetaMax
	return f32.Vec3{math32.Cos(theta), math32.Sin(theta), 0}
}
