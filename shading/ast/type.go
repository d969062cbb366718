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

package ast

// TypeRef represents a reference to a value type in source, one of the
// eight built-in type names (float, integer, color, point, vector, normal,
// matrix, string).
type TypeRef struct {
	Name *Identifier
}

func (TypeRef) isNode() {}

// TypedConstructor represents the «type ( expr )» or «type ( expr, expr, expr
// )» constructor syntax for point, vector, normal and color, optionally
// qualified with a coordinate-system name: «type "space" ( ... )».
type TypedConstructor struct {
	Type  *Identifier // point, vector, normal or color
	Space *String     // optional coordinate-system name
	Args  []Node      // one broadcast argument, or three components
}

func (TypedConstructor) isNode() {}

// Cast represents an explicit type conversion, of the form «(type) expr».
type Cast struct {
	Type *TypeRef
	Expr Node
}

func (Cast) isNode() {}
