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

package vm

import "github.com/japrozs/reyes/value"

// mask is a per-vertex execution bitmap: true at index i means vertex i is
// active for whatever instruction currently reads the top of the mask
// stack. The mask stack's depth tracks the lexical nesting depth of
// masked constructs, so every if/loop/illuminance body that narrows the
// active set restores exactly its parent's mask on exit.
type mask []bool

func fullMask(n int) mask {
	m := make(mask, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func emptyMask(n int) mask { return make(mask, n) }

func (m mask) clone() mask {
	out := make(mask, len(m))
	copy(out, m)
	return out
}

func (m mask) and(o mask) mask {
	out := make(mask, len(m))
	for i := range m {
		out[i] = m[i] && o[i]
	}
	return out
}

func (m mask) andNot(o mask) mask {
	out := make(mask, len(m))
	for i := range m {
		out[i] = m[i] && !o[i]
	}
	return out
}

// orInto sets m[i] = m[i] || o[i] for every i, in place.
func (m mask) orInto(o mask) {
	for i := range m {
		m[i] = m[i] || o[i]
	}
}

func (m mask) any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

func (m mask) count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// fromPredicate interprets a boolean-as-Integer predicate Value (the result
// of a comparison or logical op) as a mask of length n, broadcasting a
// uniform predicate across every vertex.
func fromPredicate(v *value.Value, n int) mask {
	m := make(mask, n)
	ints := v.Ints()
	broadcast := v.Storage().IsBroadcast()
	for i := range m {
		idx := i
		if broadcast {
			idx = 0
		}
		m[i] = ints[idx] != 0
	}
	return m
}
