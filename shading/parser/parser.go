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

// Package parser implements a parser for converting shading-language source
// into abstract syntax trees.
package parser

import (
	"github.com/japrozs/reyes/core/text/parse"
	"github.com/japrozs/reyes/core/text/parse/cst"
	"github.com/japrozs/reyes/shading/ast"
)

// ParseMap is the interface to an object into which ast<->cst mappings are stored.
type ParseMap interface {
	// The map object passed to parsers must support the interface used by the
	// parsing library.
	cst.Map
}

// NewParseMap returns a simple implementation of ParseMap sufficient for basic
// mapping use cases.
func NewParseMap() ParseMap {
	return cst.NewMap()
}

// Parse takes a string containing a single shader declaration and returns
// its abstract syntax tree. If the string is not syntactically valid, it
// also returns the errors encountered; the returned tree may then be
// incomplete and should not be passed to semantic analysis.
func Parse(filename, data string, m ParseMap) (*ast.Shader, parse.ErrorList) {
	var shader *ast.Shader
	root := func(p *parse.Parser, b *cst.Branch) {
		shader = requireShader(p, b)
	}
	errors := parse.Parse(root, filename, data, parse.NewSkip("//", "/*", "*/"), m)
	return shader, errors
}
