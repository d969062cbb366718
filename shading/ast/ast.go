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

// Package ast holds the set of types used in the abstract syntax tree
// representation of the shading language: the small, RenderMan-shaped DSL
// that surface, displacement, light, volume and imager programs are written
// in.
package ast

// Node is the interface implemented by every AST node.
type Node interface {
	isNode() // A dummy function that's implemented by all AST node types.
}

// Shader is the root of the AST tree for a single compilation unit: one
// shader declaration of the form «kind name(parameters) block».
type Shader struct {
	Kind       string       // surface, displacement, light, volume or imager
	Name       *Identifier  // the declared name of the shader
	Parameters []*Parameter // the shader's formal parameter list
	Block      *Block       // the body of the shader
}

func (Shader) isNode() {}

// Parameter represents a single formal parameter of a shader or function,
// of the form «[output] [storage] type name [= default]».
type Parameter struct {
	Output  bool        // true if the parameter is declared "output"
	Storage string      // "", "constant", "uniform" or "varying"
	Type    *TypeRef    // the declared type of the parameter
	Name    *Identifier // the parameter name
	Default Node        // the default value expression, nil if none
}

func (Parameter) isNode() {}

// Declaration represents a local variable declaration, of the form
// «[storage] type name [= init]».
type Declaration struct {
	Storage string      // "", "constant", "uniform" or "varying"
	Type    *TypeRef    // the declared type
	Name    *Identifier // the variable name
	Init    Node        // the initializer expression, nil if none
}

func (Declaration) isNode() {}
