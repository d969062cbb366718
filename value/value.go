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

// Package value implements Value: a typed, per-vertex array that is the
// storage unit for everything a shader reads or writes — grid channels,
// VM stack slots and local frame variables all hold a *Value.
package value

import (
	"fmt"

	"github.com/japrozs/reyes/core/math/f32"
)

// Type is the element type of a Value. point/vector/normal/color are
// distinct 3-component types: there is no implicit float<->point
// conversion, matching the shading language's type system.
type Type int

const (
	Float Type = iota
	Integer
	Color
	Point
	Vector
	Normal
	Matrix
	String
)

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Integer:
		return "integer"
	case Color:
		return "color"
	case Point:
		return "point"
	case Vector:
		return "vector"
	case Normal:
		return "normal"
	case Matrix:
		return "matrix"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// IsTriple reports whether t is one of the 3-component types backed by an
// f32.Vec3 element (color, point, vector, normal).
func (t Type) IsTriple() bool {
	switch t {
	case Color, Point, Vector, Normal:
		return true
	default:
		return false
	}
}

// Storage is the storage class of a Value. Vertex behaves as Varying for
// every operation this package defines; it exists only so the shading
// language's "varying" and "vertex" keywords both round-trip.
type Storage int

const (
	Constant Storage = iota
	Uniform
	Varying
	Vertex
)

func (s Storage) String() string {
	switch s {
	case Constant:
		return "constant"
	case Uniform:
		return "uniform"
	case Varying, Vertex:
		return "varying"
	default:
		return fmt.Sprintf("Storage(%d)", int(s))
	}
}

// IsBroadcast reports whether s holds exactly one logical element
// (constant or uniform) regardless of a grid's width*height.
func (s Storage) IsBroadcast() bool {
	return s == Constant || s == Uniform
}

// Mat4 is a 4x4 matrix of float32 in row-major order.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Value is a typed, dense array of storage-sized elements: one per vertex
// for varying/vertex storage, exactly one for constant/uniform storage.
// Only one of the backing slices is populated, selected by typ.
type Value struct {
	typ     Type
	storage Storage

	floats []float32
	ints   []int32
	triple []f32.Vec3 // color, point, vector, normal
	mats   []Mat4
	strs   []string
}

// New creates a Value of the given type and storage with length 1. Varying
// Values are brought to their grid width*height by a subsequent Resize.
func New(typ Type, storage Storage) *Value {
	v := &Value{typ: typ, storage: storage}
	v.Resize(1)
	return v
}

// Type returns the Value's element type.
func (v *Value) Type() Type { return v.typ }

// Storage returns the Value's storage class.
func (v *Value) Storage() Storage { return v.storage }

// Len returns the number of elements currently held.
func (v *Value) Len() int {
	switch v.typ {
	case Float:
		return len(v.floats)
	case Integer:
		return len(v.ints)
	case Color, Point, Vector, Normal:
		return len(v.triple)
	case Matrix:
		return len(v.mats)
	case String:
		return len(v.strs)
	default:
		return 0
	}
}

// Resize grows or shrinks the backing array to exactly n elements,
// zeroing any newly added elements. Constant and uniform Values must only
// ever be resized to 1; callers resizing a grid's varying channels pass
// width*height.
func (v *Value) Resize(n int) {
	switch v.typ {
	case Float:
		v.floats = resize(v.floats, n)
	case Integer:
		v.ints = resize(v.ints, n)
	case Color, Point, Vector, Normal:
		v.triple = resize(v.triple, n)
	case Matrix:
		v.mats = resize(v.mats, n)
	case String:
		v.strs = resize(v.strs, n)
	}
}

func resize[T any](s []T, n int) []T {
	if n <= cap(s) {
		out := s[:n]
		var zero T
		for i := range out {
			out[i] = zero
		}
		return out
	}
	return make([]T, n)
}

// Zero resets every element to its zero value without changing Len.
func (v *Value) Zero() {
	v.Resize(v.Len())
}

// Floats returns a view over the dense float32 array. It panics if the
// Value's type is not Float: accessors never silently reinterpret bytes.
func (v *Value) Floats() []float32 {
	v.requireType(Float)
	return v.floats
}

// Ints returns a view over the dense int32 array.
func (v *Value) Ints() []int32 {
	v.requireType(Integer)
	return v.ints
}

// Triples returns a view over the dense f32.Vec3 array backing color,
// point, vector and normal Values alike.
func (v *Value) Triples() []f32.Vec3 {
	if !v.typ.IsTriple() {
		panic(fmt.Sprintf("value: Triples() called on a %s Value", v.typ))
	}
	return v.triple
}

// Mats returns a view over the dense Mat4 array.
func (v *Value) Mats() []Mat4 {
	v.requireType(Matrix)
	return v.mats
}

// Strings returns a view over the dense string array.
func (v *Value) Strings() []string {
	v.requireType(String)
	return v.strs
}

func (v *Value) requireType(want Type) {
	if v.typ != want {
		panic(fmt.Sprintf("value: %s accessor called on a %s Value", want, v.typ))
	}
}

// Broadcast returns a new Varying Value of length n whose every element
// equals v's single element. It panics if v is not a broadcast (constant
// or uniform) Value of length 1 — the caller is expected to have checked
// storage before promoting.
func (v *Value) Broadcast(n int) *Value {
	if !v.storage.IsBroadcast() || v.Len() != 1 {
		panic("value: Broadcast called on a non-uniform Value")
	}
	out := New(v.typ, Varying)
	out.Resize(n)
	switch v.typ {
	case Float:
		fill(out.floats, v.floats[0])
	case Integer:
		fill(out.ints, v.ints[0])
	case Color, Point, Vector, Normal:
		fill(out.triple, v.triple[0])
	case Matrix:
		fill(out.mats, v.mats[0])
	case String:
		fill(out.strs, v.strs[0])
	}
	return out
}

func fill[T any](s []T, x T) {
	for i := range s {
		s[i] = x
	}
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	c := &Value{typ: v.typ, storage: v.storage}
	c.floats = append([]float32(nil), v.floats...)
	c.ints = append([]int32(nil), v.ints...)
	c.triple = append([]f32.Vec3(nil), v.triple...)
	c.mats = append([]Mat4(nil), v.mats...)
	c.strs = append([]string(nil), v.strs...)
	return c
}
