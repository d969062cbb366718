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

// Package policy implements the renderer's ErrorPolicy: the single place
// every component — compiler, VM, dicer, renderer facade — reports failures
// through, so that logging, aggregation and fatal/non-fatal behaviour are
// controlled in one spot rather than scattered across the pipeline.
package policy

import (
	"context"
	"fmt"
	"sync"

	"github.com/japrozs/reyes/core/fault"
	"github.com/japrozs/reyes/core/log"
)

// Kind classifies an error reported through a Policy.
type Kind fault.Const

// The error kinds the renderer reports. Each is a distinct fault.Const so
// errors carry a stable, comparable identity in addition to their message.
const (
	SyntaxError          = Kind("SyntaxError")
	SemanticError        = Kind("SemanticError")
	CodeGenerationFailed = Kind("CodeGenerationFailed")
	RuntimeShadingError  = Kind("RuntimeShadingError")
	UnsupportedGeometry  = Kind("UnsupportedGeometry")
	ResourceMissing      = Kind("ResourceMissing")
	Cancelled            = Kind("Cancelled")
)

func (k Kind) String() string { return string(k) }

// Action is a bitmask of what a Policy does with a reported error.
type Action int

const (
	// Log writes the error to the policy's sink.
	Log Action = 1 << iota
	// Throw marks the error as fatal: Report returns true and the caller
	// must stop the current compile or shade operation.
	Throw
	// Continue marks the error as non-fatal but still recorded.
	Continue
	// Ignore suppresses the error entirely; it is neither logged nor
	// returned as fatal.
	Ignore
)

// Error is a single reported failure.
type Error struct {
	Kind Kind
	// Line is the 1-based source line, or 0 when not applicable.
	Line int
	// Coordinate is the (x,y) vertex position in a grid, when applicable.
	Coordinate [2]int
	HasCoord   bool
	Message    string
}

func (e Error) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Message)
	case e.HasCoord:
		return fmt.Sprintf("%s: (%d,%d): %s", e.Kind, e.Coordinate[0], e.Coordinate[1], e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Policy is the ErrorPolicy object from the error handling design: it
// carries an action bitmap and a sink, and every component reports through
// it rather than returning bare errors up the call stack.
type Policy struct {
	// Actions maps a Kind to the Action taken when it is reported. A Kind
	// with no entry uses Default.
	Actions map[Kind]Action
	Default Action

	mu         sync.Mutex
	aggregated map[string]int // message -> vertex count, flushed by Flush
	first      fault.One       // first fatal error seen, for "stop after first fatal"
}

// New returns a Policy that logs and throws on every kind — the strictest
// useful default, suitable for tests and tools that want to fail fast.
func New() *Policy {
	return &Policy{Default: Log | Throw, aggregated: map[string]int{}}
}

func (p *Policy) actionFor(k Kind) Action {
	if a, ok := p.Actions[k]; ok {
		return a
	}
	return p.Default
}

// Report files a single error. It returns true if the policy considers the
// error fatal (Throw was set and neither Ignore nor Continue was), in which case
// the caller must stop the current compile or shade operation.
func (p *Policy) Report(ctx context.Context, err Error) bool {
	action := p.actionFor(err.Kind)
	if action&Ignore != 0 {
		return false
	}
	if action&Log != 0 {
		log.Wrap(ctx).Error().Log(err.Error())
	}
	fatal := action&Throw != 0 && action&Continue == 0
	if fatal {
		p.mu.Lock()
		p.first.Collect(err)
		p.mu.Unlock()
	}
	return fatal
}

// First returns the first fatal error reported, or nil if none has been.
func (p *Policy) First() error {
	return p.first.First()
}

// Aggregate records a runtime shading issue for a single vertex under msg,
// to be reported once as a count rather than once per vertex. Callers
// aggregate within one shade() call and Flush at the end of it.
func (p *Policy) Aggregate(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aggregated[msg]++
}

// Flush reports every message accumulated by Aggregate since the last
// Flush, as a single RuntimeShadingError each, then clears the counters.
func (p *Policy) Flush(ctx context.Context) {
	p.mu.Lock()
	batch := p.aggregated
	p.aggregated = map[string]int{}
	p.mu.Unlock()
	for msg, count := range batch {
		p.Report(ctx, Error{
			Kind:    RuntimeShadingError,
			Message: fmt.Sprintf("%s in %d vertices", msg, count),
		})
	}
}
