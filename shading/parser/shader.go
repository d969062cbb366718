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

package parser

import (
	"github.com/japrozs/reyes/core/text/parse"
	"github.com/japrozs/reyes/core/text/parse/cst"
	"github.com/japrozs/reyes/shading/ast"
)

// kind identifier '(' [parameter {',' parameter}] ')' block
func requireShader(p *parse.Parser, b *cst.Branch) *ast.Shader {
	s := &ast.Shader{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		s.Kind = requireShaderKind(p, b)
		s.Name = requireIdentifier(p, b)
		requireOperator(ast.OpListStart, p, b)
		if !peekOperator(ast.OpListEnd, p) {
			for {
				s.Parameters = append(s.Parameters, requireParameter(p, b))
				if !operator(ast.OpListSeparator, p, b) {
					break
				}
			}
		}
		requireOperator(ast.OpListEnd, p, b)
		s.Block = requireBlock(p, b)
	})
	return s
}

func requireShaderKind(p *parse.Parser, b *cst.Branch) string {
	for _, kind := range []string{
		ast.KeywordSurface,
		ast.KeywordDisplacement,
		ast.KeywordLight,
		ast.KeywordVolume,
		ast.KeywordImager,
	} {
		if keyword(kind, p, b) != nil {
			return kind
		}
	}
	p.Expected("surface, displacement, light, volume or imager")
	return ast.KeywordSurface
}

// ['output'] [storage] type identifier ['=' expression]
func requireParameter(p *parse.Parser, b *cst.Branch) *ast.Parameter {
	param := &ast.Parameter{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(param, b)
		param.Output = keyword(ast.KeywordOutput, p, b) != nil
		param.Storage = storage(p, b)
		param.Type = requireTypeRef(p, b)
		param.Name = requireIdentifier(p, b)
		if operator(ast.OpAssign, p, b) {
			param.Default = requireExpression(p, b)
		}
	})
	return param
}
