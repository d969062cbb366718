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

// storage peeks at, and optionally consumes, one of the storage-class
// keywords ("constant", "uniform", "varying") preceding a type name.
func storage(p *parse.Parser, b *cst.Branch) string {
	for _, kw := range []string{ast.KeywordConstant, ast.KeywordUniform, ast.KeywordVarying} {
		if keyword(kw, p, b) != nil {
			return kw
		}
	}
	return ""
}

func peekTypeName(p *parse.Parser) bool {
	if !p.AlphaNumeric() {
		return false
	}
	name := p.Token().String()
	p.Rollback()
	return ast.IsTypeName(name)
}

// typeName consumes a single identifier-shaped token already known (via
// peekTypeName) to name a built-in value type.
func typeName(p *parse.Parser, b *cst.Branch) *ast.Identifier {
	n := &ast.Identifier{}
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		p.SetCST(n, l)
		l.Token = p.Consume()
		n.Value = l.Token.String()
	})
	return n
}

// type ::= one of the eight built-in type names.
func typeRef(p *parse.Parser, b *cst.Branch) *ast.TypeRef {
	if !peekTypeName(p) {
		return nil
	}
	t := &ast.TypeRef{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(t, b)
		t.Name = typeName(p, b)
	})
	return t
}

func requireTypeRef(p *parse.Parser, b *cst.Branch) *ast.TypeRef {
	t := typeRef(p, b)
	if t == nil {
		p.Expected("type")
		return ast.InvalidType
	}
	return t
}

// peekTypedConstructor looks ahead for «type ["space"] (», the syntax that
// distinguishes a point/vector/normal/color constructor call from a plain
// type-name expression used elsewhere. It never leaves the cursor advanced.
func peekTypedConstructor(p *parse.Parser) bool {
	if !p.AlphaNumeric() {
		return false
	}
	if !ast.IsTypeName(p.Token().String()) {
		p.Rollback()
		return false
	}
	p.Space()
	if p.Peek() == ast.Quote {
		p.Advance()
		for !p.IsEOF() && p.Peek() != ast.Quote {
			p.Advance()
		}
		p.Advance()
		p.Space()
	}
	found := p.Peek() == '('
	p.Rollback()
	return found
}

// typedConstructor ::= type [string] '(' expression { ',' expression } ')'
func typedConstructor(p *parse.Parser, b *cst.Branch) *ast.TypedConstructor {
	if !peekTypedConstructor(p) {
		return nil
	}
	n := &ast.TypedConstructor{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(n, b)
		n.Type = typeName(p, b)
		if s := stringLiteral(p, b); s != nil {
			n.Space = s
		}
		requireOperator(ast.OpListStart, p, b)
		for {
			n.Args = append(n.Args, requireExpression(p, b))
			if !operator(ast.OpListSeparator, p, b) {
				break
			}
		}
		requireOperator(ast.OpListEnd, p, b)
	})
	return n
}

// peekCast looks ahead for «'(' type ')»: a parenthesized built-in type name
// is a cast, everything else starting with '(' is a grouped expression.
func peekCast(p *parse.Parser) bool {
	if !p.Rune('(') {
		return false
	}
	p.Space()
	ok := p.AlphaNumeric() && ast.IsTypeName(p.Token().String())
	if ok {
		p.Space()
		ok = p.Rune(')')
	}
	p.Rollback()
	return ok
}

// cast ::= '(' type ')' expression
func cast(p *parse.Parser, b *cst.Branch) *ast.Cast {
	if !peekCast(p) {
		return nil
	}
	n := &ast.Cast{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(n, b)
		requireOperator(ast.OpListStart, p, b)
		n.Type = requireTypeRef(p, b)
		requireOperator(ast.OpListEnd, p, b)
		n.Expr = requireExpression(p, b)
	})
	return n
}
