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

import "fmt"

// Visit invokes visitor for all the children of the supplied node.
func Visit(node Node, visitor func(Node)) {
	switch n := node.(type) {
	case *Shader:
		visitor(n.Name)
		for _, p := range n.Parameters {
			visitor(p)
		}
		visitor(n.Block)

	case *Parameter:
		visitor(n.Type)
		visitor(n.Name)
		if n.Default != nil {
			visitor(n.Default)
		}

	case *Declaration:
		visitor(n.Type)
		visitor(n.Name)
		if n.Init != nil {
			visitor(n.Init)
		}

	case *TypeRef:
		visitor(n.Name)

	case *TypedConstructor:
		visitor(n.Type)
		if n.Space != nil {
			visitor(n.Space)
		}
		for _, a := range n.Args {
			visitor(a)
		}

	case *Cast:
		visitor(n.Type)
		visitor(n.Expr)

	case *Block:
		for _, s := range n.Statements {
			visitor(s)
		}

	case *Branch:
		visitor(n.Condition)
		visitor(n.True)
		if n.False != nil {
			visitor(n.False)
		}

	case *While:
		visitor(n.Condition)
		visitor(n.Block)

	case *For:
		if n.Init != nil {
			visitor(n.Init)
		}
		if n.Condition != nil {
			visitor(n.Condition)
		}
		if n.Step != nil {
			visitor(n.Step)
		}
		visitor(n.Block)

	case *Illuminance:
		for _, a := range n.Args {
			visitor(a)
		}
		visitor(n.Block)

	case *Solar:
		for _, a := range n.Args {
			visitor(a)
		}
		visitor(n.Block)

	case *Break:
		if n.Level != nil {
			visitor(n.Level)
		}

	case *Continue:
		if n.Level != nil {
			visitor(n.Level)
		}

	case *Return:
		if n.Value != nil {
			visitor(n.Value)
		}

	case *Group:
		visitor(n.Expression)

	case *Assign:
		visitor(n.LHS)
		visitor(n.RHS)

	case *Member:
		visitor(n.Object)
		visitor(n.Name)

	case *Index:
		visitor(n.Object)
		visitor(n.Index)

	case *UnaryOp:
		visitor(n.Expression)

	case *BinaryOp:
		visitor(n.LHS)
		visitor(n.RHS)

	case *Call:
		visitor(n.Target)
		for _, a := range n.Arguments {
			visitor(a)
		}

	case *Identifier:

	case *Number:

	case *String:

	case *Invalid:

	default:
		panic(fmt.Errorf("unsupported ast node type %T", n))
	}
}
