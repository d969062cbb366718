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

// '{' { statement } '}'
func requireBlock(p *parse.Parser, b *cst.Branch) *ast.Block {
	block := &ast.Block{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(block, b)
		requireOperator(ast.OpBlockStart, p, b)
		for !operator(ast.OpBlockEnd, p, b) {
			if p.IsEOF() {
				p.Error("end of file reached while looking for '%s'", ast.OpBlockEnd)
				break
			}
			block.Statements = append(block.Statements, requireStatement(p, b))
		}
	})
	return block
}

// (branch | while | for | illuminance | solar | break | continue | return | simple ';')
func requireStatement(p *parse.Parser, b *cst.Branch) ast.Node {
	if s := branch(p, b); s != nil {
		return s
	}
	if s := while(p, b); s != nil {
		return s
	}
	if s := forLoop(p, b); s != nil {
		return s
	}
	if s := illuminance(p, b); s != nil {
		return s
	}
	if s := solar(p, b); s != nil {
		return s
	}
	if s := breakStatement(p, b); s != nil {
		return s
	}
	if s := continueStatement(p, b); s != nil {
		return s
	}
	if s := returnStatement(p, b); s != nil {
		return s
	}
	s := simpleStatement(p, b)
	requireOperator(ast.OpStatementEnd, p, b)
	return s
}

// declaration | expression [assignment]
func simpleStatement(p *parse.Parser, b *cst.Branch) ast.Node {
	if d := declarationBody(p, b); d != nil {
		return d
	}
	e := requireExpression(p, b)
	if a := assignment(p, b, e); a != nil {
		return a
	}
	return e
}

// [storage] type identifier ['=' expression]
func declarationBody(p *parse.Parser, b *cst.Branch) *ast.Declaration {
	if !peekDeclarationStart(p) {
		return nil
	}
	d := &ast.Declaration{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(d, b)
		d.Storage = storage(p, b)
		d.Type = requireTypeRef(p, b)
		d.Name = requireIdentifier(p, b)
		if operator(ast.OpAssign, p, b) {
			d.Init = requireExpression(p, b)
		}
	})
	return d
}

func peekDeclarationStart(p *parse.Parser) bool {
	if !p.AlphaNumeric() {
		return false
	}
	name := p.Token().String()
	if ast.IsStorageName(name) {
		p.Space()
		ok := p.AlphaNumeric() && ast.IsTypeName(p.Token().String())
		p.Rollback()
		return ok
	}
	ok := ast.IsTypeName(name)
	p.Rollback()
	return ok
}

// lhs ( '=' | '+=' | '-=' | '*=' | '/=' ) expression
func assignment(p *parse.Parser, b *cst.Branch, lhs ast.Node) *ast.Assign {
	opFound := false
	for _, op := range ast.AssignOperators {
		if peekOperator(op, p) {
			opFound = true
			break
		}
	}
	if !opFound {
		return nil
	}
	s := &ast.Assign{LHS: lhs}
	p.Extend(lhs, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		s.Operator = assignOperator(p, b)
		s.RHS = requireExpression(p, b)
	})
	return s
}

// 'if' expression block [ 'else' block ]
func branch(p *parse.Parser, b *cst.Branch) *ast.Branch {
	if !peekKeyword(ast.KeywordIf, p) {
		return nil
	}
	s := &ast.Branch{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordIf, p, b)
		s.Condition = requireExpression(p, b)
		s.True = requireBlock(p, b)
		if keyword(ast.KeywordElse, p, b) != nil {
			s.False = requireBlock(p, b)
		}
	})
	return s
}

// 'while' expression block
func while(p *parse.Parser, b *cst.Branch) *ast.While {
	if !peekKeyword(ast.KeywordWhile, p) {
		return nil
	}
	s := &ast.While{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordWhile, p, b)
		s.Condition = requireExpression(p, b)
		s.Block = requireBlock(p, b)
	})
	return s
}

// 'for' '(' [simple] ';' [expression] ';' [simple] ')' block
func forLoop(p *parse.Parser, b *cst.Branch) *ast.For {
	if !peekKeyword(ast.KeywordFor, p) {
		return nil
	}
	s := &ast.For{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordFor, p, b)
		requireOperator(ast.OpListStart, p, b)
		if !peekOperator(ast.OpStatementEnd, p) {
			s.Init = simpleStatement(p, b)
		}
		requireOperator(ast.OpStatementEnd, p, b)
		if !peekOperator(ast.OpStatementEnd, p) {
			s.Condition = requireExpression(p, b)
		}
		requireOperator(ast.OpStatementEnd, p, b)
		if !peekOperator(ast.OpListEnd, p) {
			s.Step = simpleStatement(p, b)
		}
		requireOperator(ast.OpListEnd, p, b)
		s.Block = requireBlock(p, b)
	})
	return s
}

// 'illuminance' '(' expression { ',' expression } ')' block
func illuminance(p *parse.Parser, b *cst.Branch) *ast.Illuminance {
	if !peekKeyword(ast.KeywordIlluminance, p) {
		return nil
	}
	s := &ast.Illuminance{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordIlluminance, p, b)
		requireOperator(ast.OpListStart, p, b)
		for {
			s.Args = append(s.Args, requireExpression(p, b))
			if !operator(ast.OpListSeparator, p, b) {
				break
			}
		}
		requireOperator(ast.OpListEnd, p, b)
		s.Block = requireBlock(p, b)
	})
	return s
}

// 'solar' '(' [expression { ',' expression }] ')' block
func solar(p *parse.Parser, b *cst.Branch) *ast.Solar {
	if !peekKeyword(ast.KeywordSolar, p) {
		return nil
	}
	s := &ast.Solar{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordSolar, p, b)
		requireOperator(ast.OpListStart, p, b)
		if !peekOperator(ast.OpListEnd, p) {
			for {
				s.Args = append(s.Args, requireExpression(p, b))
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

// 'break' [number] ';'
func breakStatement(p *parse.Parser, b *cst.Branch) *ast.Break {
	if !peekKeyword(ast.KeywordBreak, p) {
		return nil
	}
	s := &ast.Break{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordBreak, p, b)
		if n := number(p, b); n != nil {
			s.Level = n
		}
		requireOperator(ast.OpStatementEnd, p, b)
	})
	return s
}

// 'continue' [number] ';'
func continueStatement(p *parse.Parser, b *cst.Branch) *ast.Continue {
	if !peekKeyword(ast.KeywordContinue, p) {
		return nil
	}
	s := &ast.Continue{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordContinue, p, b)
		if n := number(p, b); n != nil {
			s.Level = n
		}
		requireOperator(ast.OpStatementEnd, p, b)
	})
	return s
}

// 'return' [expression] ';'
func returnStatement(p *parse.Parser, b *cst.Branch) *ast.Return {
	if !peekKeyword(ast.KeywordReturn, p) {
		return nil
	}
	s := &ast.Return{}
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		p.SetCST(s, b)
		requireKeyword(ast.KeywordReturn, p, b)
		if !peekOperator(ast.OpStatementEnd, p) {
			s.Value = requireExpression(p, b)
		}
		requireOperator(ast.OpStatementEnd, p, b)
	})
	return s
}
