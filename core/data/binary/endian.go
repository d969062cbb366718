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

package binary

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/japrozs/reyes/core/math/f16"
)

// NewWriter returns a Writer that encodes to w in little-endian byte order.
// Once a write fails, every subsequent method is a no-op that preserves the
// first error.
func NewWriter(w io.Writer) Writer {
	return &endianWriter{w: w}
}

// NewReader returns a Reader that decodes from r in little-endian byte order.
// Once a read fails, every subsequent method returns the zero value and
// preserves the first error.
func NewReader(r io.Reader) Reader {
	return &endianReader{r: r}
}

type endianWriter struct {
	w   io.Writer
	err error
	buf [8]byte
}

func (e *endianWriter) Error() error    { return e.err }
func (e *endianWriter) SetError(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *endianWriter) raw(n int) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(e.buf[:n]); err != nil {
		e.err = err
	}
}

func (e *endianWriter) Data(d []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(d); err != nil {
		e.err = err
	}
}

func (e *endianWriter) Bool(v bool) {
	if v {
		e.Uint8(1)
	} else {
		e.Uint8(0)
	}
}

func (e *endianWriter) Int8(v int8)   { e.Uint8(uint8(v)) }
func (e *endianWriter) Uint8(v uint8) { e.buf[0] = v; e.raw(1) }

func (e *endianWriter) Int16(v int16)   { e.Uint16(uint16(v)) }
func (e *endianWriter) Uint16(v uint16) { binary.LittleEndian.PutUint16(e.buf[:2], v); e.raw(2) }

func (e *endianWriter) Int32(v int32)   { e.Uint32(uint32(v)) }
func (e *endianWriter) Uint32(v uint32) { binary.LittleEndian.PutUint32(e.buf[:4], v); e.raw(4) }

func (e *endianWriter) Int64(v int64)   { e.Uint64(uint64(v)) }
func (e *endianWriter) Uint64(v uint64) { binary.LittleEndian.PutUint64(e.buf[:8], v); e.raw(8) }

func (e *endianWriter) Float16(v f16.Number) { e.Uint16(uint16(v)) }
func (e *endianWriter) Float32(v float32)    { e.Uint32(math.Float32bits(v)) }
func (e *endianWriter) Float64(v float64)    { e.Uint64(math.Float64bits(v)) }

func (e *endianWriter) String(v string) {
	e.Uint32(uint32(len(v)))
	e.Data([]byte(v))
}

func (e *endianWriter) Simple(v Writable) { v.WriteSimple(e) }

type endianReader struct {
	r   io.Reader
	err error
	buf [8]byte
}

func (e *endianReader) Error() error    { return e.err }
func (e *endianReader) SetError(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *endianReader) Read(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.r.Read(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

func (e *endianReader) raw(n int) []byte {
	if e.err != nil {
		for i := range e.buf[:n] {
			e.buf[i] = 0
		}
		return e.buf[:n]
	}
	if _, err := io.ReadFull(e.r, e.buf[:n]); err != nil {
		e.err = err
		for i := range e.buf[:n] {
			e.buf[i] = 0
		}
	}
	return e.buf[:n]
}

func (e *endianReader) Data(d []byte) {
	if e.err != nil {
		for i := range d {
			d[i] = 0
		}
		return
	}
	if _, err := io.ReadFull(e.r, d); err != nil {
		e.err = err
		for i := range d {
			d[i] = 0
		}
	}
}

func (e *endianReader) Bool() bool { return e.Uint8() != 0 }

func (e *endianReader) Int8() int8   { return int8(e.Uint8()) }
func (e *endianReader) Uint8() uint8 { return e.raw(1)[0] }

func (e *endianReader) Int16() int16   { return int16(e.Uint16()) }
func (e *endianReader) Uint16() uint16 { return binary.LittleEndian.Uint16(e.raw(2)) }

func (e *endianReader) Int32() int32   { return int32(e.Uint32()) }
func (e *endianReader) Uint32() uint32 { return binary.LittleEndian.Uint32(e.raw(4)) }

func (e *endianReader) Int64() int64   { return int64(e.Uint64()) }
func (e *endianReader) Uint64() uint64 { return binary.LittleEndian.Uint64(e.raw(8)) }

func (e *endianReader) Float16() f16.Number { return f16.Number(e.Uint16()) }
func (e *endianReader) Float32() float32    { return math.Float32frombits(e.Uint32()) }
func (e *endianReader) Float64() float64    { return math.Float64frombits(e.Uint64()) }

func (e *endianReader) String() string {
	n := e.Uint32()
	if e.err != nil || n == 0 {
		return ""
	}
	b := make([]byte, n)
	e.Data(b)
	return string(b)
}

func (e *endianReader) Count() uint32 { return e.Uint32() }
