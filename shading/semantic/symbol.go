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

// Kind distinguishes what a Symbol names.
type Kind int

const (
	VariableSymbol Kind = iota
	ParameterSymbol
	FunctionSymbol
	BuiltinSymbol
)

// SymbolParameter is the (type, storage) pair a callable's formal parameter
// is checked against.
type SymbolParameter struct {
	Type    value.Type
	Storage value.Storage
	// Broadcast allows a Float argument to satisfy a Point/Vector/Normal/
	// Color parameter by component-wise broadcast. Only set on the small
	// set of builtins whose RenderMan semantics accept it (mix, clamp,
	// max, min and similar component-wise functions).
	Broadcast bool
}

// Symbol is a named, typed entity visible during checking: a shader
// parameter, a local variable, or a callable (function or builtin) with a
// formal parameter list and a return type.
type Symbol struct {
	SymName string
	Type    value.Type
	Storage value.Storage
	Kind    Kind
	Params  []SymbolParameter // non-nil for Kind == FunctionSymbol/BuiltinSymbol
	// BuiltinID names the VM opcode this builtin lowers to; empty for
	// anything that is not a BuiltinSymbol.
	BuiltinID string
	// Variadic marks a builtin whose last parameter repeats zero or more
	// times (illuminance's extra arguments, for instance).
	Variadic bool
}

func (s *Symbol) Name() string { return s.SymName }
func (*Symbol) isNode()        {}
