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

// lhs { extend }
func requireExpression(p *parse.Parser, b *cst.Branch) ast.Node {
	lhs := requireLHSExpression(p, b)
	for {
		if e := extendExpression(p, lhs); e != nil {
			lhs = e
		} else {
			break
		}
	}
	return lhs
}

// (cast | typed_constructor | group | call | number | string | unary_op | identifier)
func requireLHSExpression(p *parse.Parser, b *cst.Branch) ast.Node {
	if c := cast(p, b); c != nil {
		return c
	}
	if t := typedConstructor(p, b); t != nil {
		return t
	}
	if g := group(p, b); g != nil {
		return g
	}
	if c := call(p, b); c != nil {
		return c
	}
	if n := number(p, b); n != nil {
		return n
	}
	if s := stringLiteral(p, b); s != nil {
		return s
	}
	if u := unaryOp(p, b); u != nil {
		return u
	}
	if id := identifier(p, b); id != nil {
		return id
	}
	p.Expected("expression")
	return &ast.Invalid{}
}

// lhs (index | member | binary_op)
func extendExpression(p *parse.Parser, lhs ast.Node) ast.Node {
	if i := index(p, lhs); i != nil {
		return i
	}
	if m := member(p, lhs); m != nil {
		return m
	}
	if e := binaryOp(p, lhs); e != nil {
		return e
	}
	return nil
}

// '(' expression ')'
func group(p *parse.Parser, b *cst.Branch) *ast.Group {
	if !peekOperator(ast.OpListStart, p) {
		return nil
	}
	n := &ast.Group{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(n, b)
		requireOperator(ast.OpListStart, p, b)
		n.Expression = requireExpression(p, b)
		requireOperator(ast.OpListEnd, p, b)
	})
	return n
}

func peekCall(p *parse.Parser) bool {
	if !p.AlphaNumeric() {
		return false
	}
	if _, reserved := ast.Keywords[p.Token().String()]; reserved {
		p.Rollback()
		return false
	}
	p.Space()
	found := p.Peek() == '('
	p.Rollback()
	return found
}

// call ::= identifier '(' [ expression { ',' expression } ] ')'
func call(p *parse.Parser, b *cst.Branch) *ast.Call {
	if !peekCall(p) {
		return nil
	}
	n := &ast.Call{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(n, b)
		n.Target = requireIdentifier(p, b)
		requireOperator(ast.OpListStart, p, b)
		if !peekOperator(ast.OpListEnd, p) {
			for {
				n.Arguments = append(n.Arguments, requireExpression(p, b))
				if !operator(ast.OpListSeparator, p, b) {
					break
				}
			}
		}
		requireOperator(ast.OpListEnd, p, b)
	})
	return n
}

// lhs '.' name
func member(p *parse.Parser, lhs ast.Node) *ast.Member {
	if !peekOperator(ast.OpMember, p) {
		return nil
	}
	n := &ast.Member{Object: lhs}
	p.Extend(lhs, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(n, b)
		requireOperator(ast.OpMember, p, b)
		n.Name = requireIdentifier(p, b)
	})
	return n
}

// lhs '[' expression ']'
func index(p *parse.Parser, lhs ast.Node) *ast.Index {
	if !peekOperator(ast.OpIndexStart, p) {
		return nil
	}
	n := &ast.Index{Object: lhs}
	p.Extend(lhs, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(n, b)
		requireOperator(ast.OpIndexStart, p, b)
		n.Index = requireExpression(p, b)
		requireOperator(ast.OpIndexEnd, p, b)
	})
	return n
}

// standard numeric formats, with an optional leading sign
func number(p *parse.Parser, b *cst.Branch) *ast.Number {
	_ = p.Rune('+') || p.Rune('-')
	if p.Numeric() == parse.NotNumeric {
		p.Rollback()
		return nil
	}
	n := &ast.Number{}
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		p.SetCST(n, l)
		l.Token = p.Consume()
		n.Value = l.Token.String()
	})
	return n
}

func requireNumber(p *parse.Parser, b *cst.Branch) *ast.Number {
	n := number(p, b)
	if n == nil {
		p.Expected("number")
		return ast.InvalidNumber
	}
	return n
}

// '"' ... '"'
func stringLiteral(p *parse.Parser, b *cst.Branch) *ast.String {
	if !p.Rune(ast.Quote) {
		return nil
	}
	n := &ast.String{}
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		p.SetCST(n, l)
		p.SeekRune(ast.Quote)
		p.Rune(ast.Quote)
		l.Token = p.Consume()
		v := l.Token.String()
		n.Value = v[1 : len(v)-1]
	})
	return n
}

func requireString(p *parse.Parser, b *cst.Branch) *ast.String {
	s := stringLiteral(p, b)
	if s == nil {
		p.Expected("string")
		return ast.InvalidString
	}
	return s
}
