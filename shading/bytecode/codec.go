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

package bytecode

import (
	"fmt"
	"io"

	"github.com/japrozs/reyes/core/data/binary"
	"github.com/japrozs/reyes/value"
)

// magic is the 4-byte header every compiled shader artifact starts with.
const magic = "SWSH"

// version is bumped whenever the artifact layout below changes shape.
const version uint32 = 1

// Write encodes p to w as a compiled shader artifact: magic, version,
// symbol table size, constant pool size, instruction count, parameter
// count, shader kind, then the symbol table, the constant pool (tagged by type), then instructions.
// Little-endian throughout.
func Write(w io.Writer, p *Program) error {
	bw := binary.NewWriter(w)
	bw.Data([]byte(magic))
	bw.Uint32(version)
	bw.Uint32(uint32(len(p.Symbols)))
	bw.Uint32(uint32(p.Pool.Len()))
	bw.Uint32(uint32(len(p.Instrs)))
	bw.Uint32(uint32(p.ParamCount))
	bw.String(p.Kind)

	for _, s := range p.Symbols {
		bw.String(s.Name)
		bw.Uint8(uint8(s.Type))
		bw.Uint8(uint8(s.Storage))
		bw.Bool(s.Param)
		bw.Bool(s.Global)
	}
	for i := 0; i < p.Pool.Len(); i++ {
		writeConst(bw, p.Pool.At(i))
	}
	for _, instr := range p.Instrs {
		bw.Uint8(uint8(instr.Op))
		bw.Int32(instr.Operand)
	}
	return bw.Error()
}

func writeConst(bw binary.Writer, c Const) {
	bw.Uint8(uint8(c.Type))
	switch {
	case c.Type == value.String:
		bw.String(c.Str)
	case c.Type.IsTriple():
		bw.Float32(c.Triple[0])
		bw.Float32(c.Triple[1])
		bw.Float32(c.Triple[2])
	case c.Type == value.Matrix:
		for _, f := range c.Mat {
			bw.Float32(f)
		}
	default: // Float, Integer
		bw.Float32(c.Float)
	}
}

// Read decodes a compiled shader artifact previously produced by Write.
func Read(r io.Reader) (*Program, error) {
	br := binary.NewReader(r)

	got := make([]byte, len(magic))
	br.Data(got)
	if string(got) != magic {
		return nil, fmt.Errorf("bytecode: bad magic %q, want %q", got, magic)
	}
	if v := br.Uint32(); v != version {
		return nil, fmt.Errorf("bytecode: unsupported artifact version %d", v)
	}
	numSymbols := br.Uint32()
	numConsts := br.Uint32()
	numInstrs := br.Uint32()
	paramCount := br.Uint32()
	kind := br.String()

	p := &Program{Kind: kind, ParamCount: int(paramCount), Pool: NewPool()}

	p.Symbols = make([]SymbolEntry, numSymbols)
	for i := range p.Symbols {
		p.Symbols[i] = SymbolEntry{
			Name:    br.String(),
			Type:    value.Type(br.Uint8()),
			Storage: value.Storage(br.Uint8()),
			Param:   br.Bool(),
			Global:  br.Bool(),
		}
	}
	for i := uint32(0); i < numConsts; i++ {
		c, err := readConst(br)
		if err != nil {
			return nil, err
		}
		p.Pool.consts = append(p.Pool.consts, c)
		p.Pool.index[c] = len(p.Pool.consts) - 1
	}
	p.Instrs = make([]Instr, numInstrs)
	for i := range p.Instrs {
		p.Instrs[i] = Instr{Op: Op(br.Uint8()), Operand: br.Int32()}
	}
	if err := br.Error(); err != nil {
		return nil, err
	}
	return p, nil
}

func readConst(br binary.Reader) (Const, error) {
	t := value.Type(br.Uint8())
	c := Const{Type: t}
	switch {
	case t == value.String:
		c.Str = br.String()
	case t.IsTriple():
		c.Triple[0] = br.Float32()
		c.Triple[1] = br.Float32()
		c.Triple[2] = br.Float32()
	case t == value.Matrix:
		for i := range c.Mat {
			c.Mat[i] = br.Float32()
		}
	default:
		c.Float = br.Float32()
	}
	if err := br.Error(); err != nil {
		return Const{}, err
	}
	return c, nil
}
