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

// scopes is a stack of lexical Symbols tables, innermost last. Declarations
// go into the innermost scope; lookups search from innermost to outermost,
// matching ordinary block-scoping rules.
type scopes struct {
	stack []*Symbols
}

func newScopes() *scopes {
	s := &scopes{}
	s.push()
	return s
}

func (s *scopes) push() {
	s.stack = append(s.stack, &Symbols{})
}

func (s *scopes) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *scopes) declare(sym *Symbol) {
	s.stack[len(s.stack)-1].AddNamed(sym)
}

// declaredHere reports whether name is already declared in the innermost
// scope — used to reject duplicate declarations within the same block.
func (s *scopes) declaredHere(name string) bool {
	n, _ := s.stack[len(s.stack)-1].Find(name)
	return n != nil
}

// lookup returns the innermost-scope Symbol visible under name, or nil.
func (s *scopes) lookup(name string) *Symbol {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if n, _ := s.stack[i].Find(name); n != nil {
			if sym, ok := n.(*Symbol); ok {
				return sym
			}
		}
	}
	return nil
}

// candidates returns every Symbol named name visible in any scope, in
// declaration order within each scope, searched innermost first — the
// full overload candidate set for a call.
func (s *scopes) candidates(name string) []*Symbol {
	var out []*Symbol
	for i := len(s.stack) - 1; i >= 0; i-- {
		for _, n := range s.stack[i].FindAll(name) {
			if sym, ok := n.(*Symbol); ok {
				out = append(out, sym)
			}
		}
	}
	return out
}
