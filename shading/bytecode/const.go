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

package bytecode

import "github.com/japrozs/reyes/value"

// Const is one entry of the constant pool: a literal, tagged by its
// value.Type so the artifact reader never has to guess a representation.
// Parameter default expressions are not stored in the pool.
type Const struct {
	Type    value.Type
	Float   float32
	Triple  [3]float32
	Mat     value.Mat4
	Str     string
}

// Pool is the ordered, deduplicated set of constants a compiled shader
// references by index. Two equal constants of the same type always share
// one slot, so repeated compilation of identical source yields an
// identical pool (and therefore byte-identical bytecode).
type Pool struct {
	consts []Const
	index  map[Const]int
}

// NewPool returns an empty constant pool.
func NewPool() *Pool {
	return &Pool{index: map[Const]int{}}
}

// Float returns the pool index for a Float constant, adding it if absent.
func (p *Pool) Float(f float32) int {
	return p.intern(Const{Type: value.Float, Float: f})
}

// Integer returns the pool index for an Integer constant, adding it if absent.
func (p *Pool) Integer(i int32) int {
	return p.intern(Const{Type: value.Integer, Float: float32(i)})
}

// String returns the pool index for a String constant, adding it if absent.
func (p *Pool) String(s string) int {
	return p.intern(Const{Type: value.String, Str: s})
}

// Triple returns the pool index for a Color/Point/Vector/Normal constant,
// adding it if absent.
func (p *Pool) Triple(t value.Type, x, y, z float32) int {
	return p.intern(Const{Type: t, Triple: [3]float32{x, y, z}})
}

// Matrix returns the pool index for a Matrix constant, adding it if absent.
func (p *Pool) Matrix(m value.Mat4) int {
	return p.intern(Const{Type: value.Matrix, Mat: m})
}

func (p *Pool) intern(c Const) int {
	if i, ok := p.index[c]; ok {
		return i
	}
	i := len(p.consts)
	p.consts = append(p.consts, c)
	p.index[c] = i
	return i
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int { return len(p.consts) }

// At returns the constant at index i.
func (p *Pool) At(i int) Const { return p.consts[i] }
