// Copyright 2025 The tplcc Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag holds the diagnostic shape shared by the preprocessor and
// lexer, and a simple append-only sink implementation.
package diag

import "github.com/StephenChips/tplcc/buffer"

// Range is a half-open span of offsets into a buffer.CodeBuffer.
type Range struct {
	Start buffer.Offset
	End   buffer.Offset
}

// Diagnostic is a single reported problem: a message and hint anchored
// to a range in the CodeBuffer.
type Diagnostic struct {
	Range   Range
	Message string
	Hint    string
}

// Sink accepts diagnostics as they are produced. Implementations must
// not mutate or reorder previously reported diagnostics: report is the
// only operation.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is a Sink that keeps every diagnostic reported to it, in
// report order. It is the sink used by tests and by callers that want
// to inspect the full diagnostic list after a translation unit runs.
type Collector struct {
	Diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends d to the collected list.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
