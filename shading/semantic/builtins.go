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

func scalarParam(s value.Storage) SymbolParameter {
	return SymbolParameter{Type: value.Float, Storage: s}
}

func tripleParam(t value.Type, s value.Storage) SymbolParameter {
	return SymbolParameter{Type: t, Storage: s, Broadcast: t != value.Float}
}

// builtin declares a varying-everywhere builtin: every formal parameter
// accepts up to varying storage, since built-ins run per-vertex.
func builtin(name string, id string, ret value.Type, params ...SymbolParameter) *Symbol {
	return &Symbol{
		SymName:   name,
		Type:      ret,
		Storage:   value.Varying,
		Kind:      BuiltinSymbol,
		BuiltinID: id,
		Params:    params,
	}
}

// Builtins returns the fixed table of built-in functions every shader sees,
// covering arithmetic helpers, trig, noise, texture lookup, lighting and
// the finite-difference derivative ops the virtual machine implements.
func Builtins() []*Symbol {
	f := func(s value.Storage) SymbolParameter { return scalarParam(s) }
	v := value.Varying
	return []*Symbol{
		builtin("sin", "trig.sin", value.Float, f(v)),
		builtin("cos", "trig.cos", value.Float, f(v)),
		builtin("tan", "trig.tan", value.Float, f(v)),
		builtin("sqrt", "math.sqrt", value.Float, f(v)),
		builtin("pow", "math.pow", value.Float, f(v), f(v)),
		builtin("abs", "math.abs", value.Float, f(v)),
		builtin("floor", "math.floor", value.Float, f(v)),
		builtin("ceil", "math.ceil", value.Float, f(v)),
		builtin("mod", "math.mod", value.Float, f(v), f(v)),

		builtin("length", "vec.length", value.Float, tripleParam(value.Vector, v)),
		builtin("normalize", "vec.normalize", value.Vector, tripleParam(value.Vector, v)),
		builtin("faceforward", "vec.faceforward", value.Normal,
			tripleParam(value.Normal, v), tripleParam(value.Vector, v)),
		builtin("reflect", "vec.reflect", value.Vector,
			tripleParam(value.Vector, v), tripleParam(value.Normal, v)),
		builtin("dot", "vec.dot", value.Float, tripleParam(value.Vector, v), tripleParam(value.Vector, v)),

		builtin("mix", "math.mix", value.Color,
			tripleParam(value.Color, v), tripleParam(value.Color, v), f(v)),
		builtin("clamp", "math.clamp", value.Float, f(v), f(v), f(v)),
		builtin("max", "math.max", value.Float, f(v), f(v)),
		builtin("min", "math.min", value.Float, f(v), f(v)),

		builtin("noise", "noise.eval3", value.Float, tripleParam(value.Point, v)),
		builtin("texture", "texture.sample", value.Color, SymbolParameter{Type: value.String, Storage: value.Uniform}),

		builtin("diffuse", "light.diffuse", value.Color, tripleParam(value.Normal, v)),
		builtin("specular", "light.specular", value.Color,
			tripleParam(value.Normal, v), tripleParam(value.Vector, v), f(v)),
		builtin("ambient", "light.ambient", value.Color),

		builtin("Du", "deriv.du", value.Float, f(v)),
		builtin("Dv", "deriv.dv", value.Float, f(v)),
		builtin("area", "deriv.area", value.Float, tripleParam(value.Point, v)),
	}
}
