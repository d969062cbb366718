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

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/japrozs/reyes/core/text/parse/cst"
	"github.com/japrozs/reyes/policy"
	"github.com/japrozs/reyes/shading/ast"
	"github.com/japrozs/reyes/value"
)

// Info is the (type, storage) pair every expression carries after checking.
type Info struct {
	Type    value.Type
	Storage value.Storage
}

// Checked is the result of checking a single shader: its declared
// parameters as Symbols, plus the (type, storage) annotation for every
// expression node in its body.
type Checked struct {
	Shader  *ast.Shader
	Params  []*Symbol
	Types   map[ast.Node]Info
	callees map[*ast.Call]*Symbol
}

// Type looks up the checked (type, storage) of an expression node.
func (c *Checked) Type(n ast.Node) Info { return c.Types[n] }

// Callee returns the Symbol a Call resolved to during overload resolution,
// or nil if the call never resolved (a SemanticError was already reported).
func (c *Checked) Callee(call *ast.Call) *Symbol { return c.callees[call] }

type checker struct {
	ctx     context.Context
	pol     *policy.Policy
	mapping cst.Map
	scopes  *scopes
	types   map[ast.Node]Info
	callees map[*ast.Call]*Symbol
	loops   int
}

// Check runs semantic analysis over shader: name resolution, type and
// storage-class checking, overload resolution and break/continue level
// validation. mapping supplies the AST<->CST association the parser
// built, used to recover source lines for diagnostics. Failures are
// reported through pol; Check always returns a (possibly partially wrong)
// Checked result so the compiler can decide whether to proceed.
func Check(ctx context.Context, pol *policy.Policy, shader *ast.Shader, mapping cst.Map) *Checked {
	c := &checker{ctx: ctx, pol: pol, mapping: mapping, scopes: newScopes(), types: map[ast.Node]Info{}, callees: map[*ast.Call]*Symbol{}}
	for _, b := range Builtins() {
		c.scopes.declare(b)
	}
	for _, g := range Globals() {
		c.scopes.declare(g)
	}

	params := make([]*Symbol, 0, len(shader.Parameters))
	for _, p := range shader.Parameters {
		typ := TypeOf(p.Type)
		storage := value.Uniform
		var def Info
		hasDefault := p.Default != nil
		if hasDefault {
			def = c.checkExpr(p.Default)
		}
		storage = inferStorage(p.Storage, def.Storage, hasDefault)
		if c.scopes.declaredHere(p.Name.Value) {
			c.errorAt(p, policy.SemanticError, "duplicate declaration of %q", p.Name.Value)
		}
		sym := &Symbol{SymName: p.Name.Value, Type: typ, Storage: storage, Kind: ParameterSymbol}
		c.scopes.declare(sym)
		params = append(params, sym)
		c.types[p] = Info{Type: typ, Storage: storage}
		if hasDefault && !numericCoercible(def.Type, typ) {
			c.errorAt(p.Default, policy.SemanticError, "default value for %q has type %s, parameter is %s", p.Name.Value, def.Type, typ)
		}
	}

	c.checkBlock(shader.Block)

	return &Checked{Shader: shader, Params: params, Types: c.types, callees: c.callees}
}

// TypeOf maps a parsed type name to its value.Type, the one place the
// eight built-in type names are translated into the value vocabulary.
func TypeOf(t *ast.TypeRef) value.Type {
	switch t.Name.Value {
	case ast.TypeFloat:
		return value.Float
	case ast.TypeInteger:
		return value.Integer
	case ast.TypeColor:
		return value.Color
	case ast.TypePoint:
		return value.Point
	case ast.TypeVector:
		return value.Vector
	case ast.TypeNormal:
		return value.Normal
	case ast.TypeMatrix:
		return value.Matrix
	case ast.TypeString:
		return value.String
	default:
		return value.Float
	}
}

func storageRank(s value.Storage) int {
	switch s {
	case value.Constant:
		return 0
	case value.Uniform:
		return 1
	default: // Varying, Vertex
		return 2
	}
}

func maxStorage(a, b value.Storage) value.Storage {
	if storageRank(b) > storageRank(a) {
		return b
	}
	return a
}

// inferStorage resolves the storage class of a declaration or parameter:
// an explicit keyword always wins; otherwise it is inferred from whatever
// initializer is present, defaulting to uniform when there is nothing to
// infer from.
func inferStorage(explicit string, initStorage value.Storage, hasInit bool) value.Storage {
	switch explicit {
	case ast.KeywordConstant:
		return value.Constant
	case ast.KeywordUniform:
		return value.Uniform
	case ast.KeywordVarying:
		return value.Varying
	default:
		if hasInit {
			return initStorage
		}
		return value.Uniform
	}
}

func (c *checker) lineOf(n ast.Node) int {
	if c.mapping == nil {
		return 0
	}
	cn := c.mapping.CST(n)
	if cn == nil {
		return 0
	}
	line, _ := cn.Tok().Cursor()
	return line
}

func (c *checker) errorAt(n ast.Node, kind policy.Kind, format string, args ...interface{}) {
	c.pol.Report(c.ctx, policy.Error{Kind: kind, Line: c.lineOf(n), Message: fmt.Sprintf(format, args...)})
}

// checkBlock walks a block in its own lexical scope.
func (c *checker) checkBlock(b *ast.Block) {
	c.scopes.push()
	defer c.scopes.pop()
	for _, s := range b.Statements {
		c.checkStatement(s)
	}
}

func (c *checker) checkStatement(n ast.Node) {
	switch s := n.(type) {
	case *ast.Declaration:
		c.checkDeclaration(s)
	case *ast.Assign:
		c.checkAssign(s)
	case *ast.Branch:
		c.checkExpr(s.Condition)
		c.checkBlock(s.True)
		if s.False != nil {
			c.checkBlock(s.False)
		}
	case *ast.While:
		c.checkExpr(s.Condition)
		c.loops++
		c.checkBlock(s.Block)
		c.loops--
	case *ast.For:
		c.scopes.push()
		if s.Init != nil {
			c.checkStatement(s.Init)
		}
		if s.Condition != nil {
			c.checkExpr(s.Condition)
		}
		if s.Step != nil {
			c.checkStatement(s.Step)
		}
		c.loops++
		c.checkBlock(s.Block)
		c.loops--
		c.scopes.pop()
	case *ast.Illuminance:
		for _, a := range s.Args {
			c.checkExpr(a)
		}
		c.loops++
		c.checkBlock(s.Block)
		c.loops--
	case *ast.Solar:
		for _, a := range s.Args {
			c.checkExpr(a)
		}
		c.loops++
		c.checkBlock(s.Block)
		c.loops--
	case *ast.Break:
		c.checkBreakContinue(n, s.Level, "Break")
	case *ast.Continue:
		c.checkBreakContinue(n, s.Level, "Continue")
	case *ast.Return:
		if s.Value != nil {
			c.checkExpr(s.Value)
		}
	default:
		// expression statement
		c.checkExpr(n)
	}
}

func (c *checker) checkBreakContinue(n ast.Node, level *ast.Number, word string) {
	lvl := 1
	if level != nil {
		if i, err := strconv.Atoi(level.Value); err == nil {
			lvl = i
		}
	}
	switch {
	case c.loops == 0:
		c.errorAt(n, policy.CodeGenerationFailed, "%s outside of a loop", word)
	case lvl > c.loops:
		c.errorAt(n, policy.CodeGenerationFailed, "%s to a level outside of a loop", word)
	}
}

func (c *checker) checkDeclaration(d *ast.Declaration) {
	typ := TypeOf(d.Type)
	var initInfo Info
	hasInit := d.Init != nil
	if hasInit {
		initInfo = c.checkExpr(d.Init)
		if !numericCoercible(initInfo.Type, typ) {
			c.errorAt(d, policy.SemanticError, "cannot initialize %s %q with a %s value", typ, d.Name.Value, initInfo.Type)
		}
	}
	storage := inferStorage(d.Storage, initInfo.Storage, hasInit)
	if hasInit && d.Storage != "" && storageRank(initInfo.Storage) > storageRank(storage) {
		c.errorAt(d, policy.SemanticError, "cannot assign a varying value to %s %q", storage, d.Name.Value)
	}
	if c.scopes.declaredHere(d.Name.Value) {
		c.errorAt(d, policy.SemanticError, "duplicate declaration of %q", d.Name.Value)
	}
	sym := &Symbol{SymName: d.Name.Value, Type: typ, Storage: storage, Kind: VariableSymbol}
	c.scopes.declare(sym)
	c.types[d] = Info{Type: typ, Storage: storage}
}

func (c *checker) checkAssign(a *ast.Assign) {
	lhs := c.checkExpr(a.LHS)
	rhs := c.checkExpr(a.RHS)
	c.types[a] = lhs
	if !numericCoercible(rhs.Type, lhs.Type) {
		c.errorAt(a, policy.SemanticError, "cannot assign a %s value to a %s location", rhs.Type, lhs.Type)
		return
	}
	if storageRank(rhs.Storage) > storageRank(lhs.Storage) {
		c.errorAt(a, policy.SemanticError, "cannot assign a varying value to a %s location", lhs.Storage)
	}
}

func (c *checker) checkExpr(n ast.Node) Info {
	info := c.evalExpr(n)
	c.types[n] = info
	return info
}

func (c *checker) evalExpr(n ast.Node) Info {
	switch e := n.(type) {
	case *ast.Number:
		typ := value.Integer
		if strings.ContainsAny(e.Value, ".eE") {
			typ = value.Float
		}
		return Info{Type: typ, Storage: value.Constant}

	case *ast.String:
		return Info{Type: value.String, Storage: value.Constant}

	case *ast.Identifier:
		if sym := c.scopes.lookup(e.Value); sym != nil {
			return Info{Type: sym.Type, Storage: sym.Storage}
		}
		c.errorAt(e, policy.SemanticError, "undeclared identifier %q", e.Value)
		return Info{Type: value.Float, Storage: value.Varying}

	case *ast.Group:
		return c.checkExpr(e.Expression)

	case *ast.UnaryOp:
		return c.checkExpr(e.Expression)

	case *ast.BinaryOp:
		return c.checkBinary(e)

	case *ast.Member:
		obj := c.checkExpr(e.Object)
		if !obj.Type.IsTriple() {
			c.errorAt(e, policy.SemanticError, "%s has no member %q", obj.Type, e.Name.Value)
		} else if !isComponentName(e.Name.Value) {
			c.errorAt(e, policy.SemanticError, "unknown component %q", e.Name.Value)
		}
		return Info{Type: value.Float, Storage: obj.Storage}

	case *ast.Index:
		obj := c.checkExpr(e.Object)
		idx := c.checkExpr(e.Index)
		if obj.Type != value.Matrix {
			c.errorAt(e, policy.SemanticError, "cannot index a %s value", obj.Type)
		}
		return Info{Type: value.Float, Storage: maxStorage(obj.Storage, idx.Storage)}

	case *ast.Call:
		return c.checkCall(e)

	case *ast.TypedConstructor:
		return c.checkTypedConstructor(e)

	case *ast.Cast:
		inner := c.checkExpr(e.Expr)
		return Info{Type: TypeOf(e.Type), Storage: inner.Storage}

	case *ast.Invalid:
		return Info{Type: value.Float, Storage: value.Varying}

	default:
		panic(fmt.Errorf("semantic: unsupported expression node %T", n))
	}
}

func isComponentName(name string) bool {
	switch name {
	case "x", "y", "z", "r", "g", "b":
		return true
	default:
		return false
	}
}

func (c *checker) checkBinary(e *ast.BinaryOp) Info {
	lhs := c.checkExpr(e.LHS)
	rhs := c.checkExpr(e.RHS)
	switch e.Operator {
	case "<", ">", "<=", ">=", "==", "!=", "&&", "||":
		if lhs.Type != rhs.Type && !(isNumeric(lhs.Type) && isNumeric(rhs.Type)) {
			c.errorAt(e, policy.SemanticError, "cannot compare %s with %s", lhs.Type, rhs.Type)
		}
		return Info{Type: value.Integer, Storage: maxStorage(lhs.Storage, rhs.Storage)}
	default:
		resultType := lhs.Type
		switch {
		case lhs.Type == rhs.Type:
			resultType = lhs.Type
		case isNumeric(lhs.Type) && isNumeric(rhs.Type):
			resultType = value.Float
		case lhs.Type == value.Float && rhs.Type.IsTriple():
			resultType = rhs.Type
		case rhs.Type == value.Float && lhs.Type.IsTriple():
			resultType = lhs.Type
		default:
			c.errorAt(e, policy.SemanticError, "cannot apply %q to %s and %s", e.Operator, lhs.Type, rhs.Type)
		}
		return Info{Type: resultType, Storage: maxStorage(lhs.Storage, rhs.Storage)}
	}
}

func isNumeric(t value.Type) bool { return t == value.Float || t == value.Integer }

// numericCoercible reports whether a value of type a can stand in for a
// value of type b without an explicit cast. Float and Integer freely
// intermix — they are numeric constants with no storage-shape
// difference — unlike the 3-component types, which the spec keeps
// distinct even though they share a representation.
func numericCoercible(a, b value.Type) bool {
	return a == b || (isNumeric(a) && isNumeric(b))
}

func (c *checker) checkTypedConstructor(e *ast.TypedConstructor) Info {
	typ := value.Float
	switch e.Type.Value {
	case ast.TypeColor:
		typ = value.Color
	case ast.TypePoint:
		typ = value.Point
	case ast.TypeVector:
		typ = value.Vector
	case ast.TypeNormal:
		typ = value.Normal
	case ast.TypeMatrix:
		typ = value.Matrix
	default:
		c.errorAt(e, policy.SemanticError, "%q cannot be used as a constructor", e.Type.Value)
	}
	wantArgs := 3
	if typ == value.Matrix {
		wantArgs = 16
	}
	if len(e.Args) != wantArgs {
		c.errorAt(e, policy.SemanticError, "%s constructor takes %d arguments, got %d", typ, wantArgs, len(e.Args))
	}
	storage := value.Constant
	for _, a := range e.Args {
		arg := c.checkExpr(a)
		if !numericCoercible(arg.Type, value.Float) {
			c.errorAt(a, policy.SemanticError, "%s constructor arguments must be numeric, got %s", typ, arg.Type)
		}
		storage = maxStorage(storage, arg.Storage)
	}
	return Info{Type: typ, Storage: storage}
}

func (c *checker) checkCall(e *ast.Call) Info {
	name, ok := e.Target.(*ast.Identifier)
	if !ok {
		c.errorAt(e, policy.SemanticError, "call target is not a function name")
		return Info{Type: value.Float, Storage: value.Varying}
	}
	args := make([]Info, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = c.checkExpr(a)
	}
	candidates := c.scopes.candidates(name.Value)
	if len(candidates) == 0 {
		c.errorAt(e, policy.SemanticError, "unresolved call to %q", name.Value)
		return Info{Type: value.Float, Storage: value.Varying}
	}

	best := -1
	bestCost := 1 << 30
	for i, cand := range candidates {
		if cand.Kind != FunctionSymbol && cand.Kind != BuiltinSymbol {
			continue
		}
		if !cand.Variadic && len(cand.Params) != len(args) {
			continue
		}
		if cand.Variadic && len(args) < len(cand.Params) {
			continue
		}
		cost, ok := scoreCall(cand, args)
		if !ok {
			continue
		}
		if cost < bestCost {
			bestCost, best = cost, i
		}
	}
	if best < 0 {
		c.errorAt(e, policy.SemanticError, "unresolved call to %q", name.Value)
		return Info{Type: value.Float, Storage: value.Varying}
	}
	chosen := candidates[best]
	c.callees[e] = chosen
	resultStorage := value.Constant
	for _, a := range args {
		resultStorage = maxStorage(resultStorage, a.Storage)
	}
	if len(args) == 0 {
		resultStorage = value.Uniform
	}
	return Info{Type: chosen.Type, Storage: resultStorage}
}

// scoreCall reports the promotion cost of calling cand with args, and
// whether the call is legal at all. Lower cost is a better match; an exact
// match on every parameter costs 0.
func scoreCall(cand *Symbol, args []Info) (int, bool) {
	cost := 0
	for i, arg := range args {
		param := cand.Params[len(cand.Params)-1]
		if i < len(cand.Params) {
			param = cand.Params[i]
		}
		tc, ok := typeCost(arg.Type, param.Type, param.Broadcast)
		if !ok {
			return 0, false
		}
		sc, ok := storageCost(arg.Storage, param.Storage)
		if !ok {
			return 0, false
		}
		cost += tc + sc
	}
	return cost, true
}

func typeCost(arg, param value.Type, broadcast bool) (int, bool) {
	switch {
	case arg == param:
		return 0, true
	case isNumeric(arg) && isNumeric(param):
		return 1, true
	case broadcast && isNumeric(arg) && param.IsTriple():
		return 1, true
	default:
		return 0, false
	}
}

func storageCost(arg, param value.Storage) (int, bool) {
	ar, pr := storageRank(arg), storageRank(param)
	if ar > pr {
		return 0, false
	}
	return pr - ar, true
}
