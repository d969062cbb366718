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

package semantic

import "github.com/japrozs/reyes/value"

func global(name string, t value.Type) *Symbol {
	return &Symbol{SymName: name, Type: t, Storage: value.Varying, Kind: VariableSymbol}
}

// Globals returns the grid-provided names every shader body sees without
// declaring them: the geometric and shading variables a Grid carries by
// convention ("P" conventionally present after dicing; "s","t" hold
// parametric coords) plus the RenderMan-shaped surface/light outputs and
// the illuminance-loop bindings.
func Globals() []*Symbol {
	return []*Symbol{
		global("P", value.Point),
		global("N", value.Normal),
		global("Ng", value.Normal),
		global("I", value.Vector),
		global("s", value.Float),
		global("t", value.Float),
		global("du", value.Float),
		global("dv", value.Float),
		global("Cs", value.Color),
		global("Os", value.Color),
		global("Ci", value.Color),
		global("Oi", value.Color),
		// Bound within an illuminance/solar block: the current light's
		// direction and unoccluded color contribution.
		global("L", value.Vector),
		global("Cl", value.Color),
	}
}
