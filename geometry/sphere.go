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

// sphereAngles derives the latitude range a sphere primitive's ZMin/ZMax
// clip to, the standard RenderMan sphere parameterization that the
// Cylinder formula is itself modeled after.
func sphereAngles(p Primitive) (phiMin, phiMax float32) {
	r := p.Radius
	clampRatio := func(z float32) float32 {
		switch {
		case z < -r:
			return -1
		case z > r:
			return 1
		default:
			return z / r
		}
	}
	return math32.Asin(clampRatio(p.ZMin)), math32.Asin(clampRatio(p.ZMax))
}

// spherePosition evaluates P(u,v) = r*(cos(phi)*cos(theta),
// cos(phi)*sin(theta), sin(phi)), theta = u*thetamax, phi interpolated
// between the ZMin/ZMax latitudes by v.
func spherePosition(p Primitive, u, v float32) f32.Vec3 {
	phiMin, phiMax := sphereAngles(p)
	theta := u * p.ThetaMax
	phi := phiMin + v*(phiMax-phiMin)
	cosPhi := math32.Cos(phi)
	return f32.Vec3{
		p.Radius * cosPhi * math32.Cos(theta),
		p.Radius * cosPhi * math32.Sin(theta),
		p.Radius * math32.Sin(phi),
	}
}

// sphereNormal is the unit radial direction, which for a sphere centered
// at the origin equals the normalized position.
func sphereNormal(p Primitive, u, v float32) f32.Vec3 {
	return spherePosition(p, u, v).Normalize()
}
