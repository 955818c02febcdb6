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

// Package scanner is the family of character readers layered directly
// on top of a buffer.CodeBuffer: a splicing base scanner, a
// newline-bounded directive scanner, and a raw byte-slice scanner used
// to walk macro bodies.
//
// Only three concrete shapes exist, so they are expressed as separate
// small types rather than a virtual interface hierarchy; Scanner is the
// narrow surface all three (and any test double) can implement.
package scanner

import "github.com/StephenChips/tplcc/buffer"

// EOF is the sentinel rune returned once a scanner is exhausted.
const EOF rune = -1

// Scanner is the contract the lexer and preprocessor consume: a forward
// character stream with single-character lookahead, a small ASCII
// lookahead window for multi-character punctuator/comment probes, and
// cheap positional bookkeeping.
type Scanner interface {
	// Get consumes and returns the next logical character, or EOF.
	Get() rune
	// Peek returns the next logical character without consuming it.
	Peek() rune
	// PeekN returns up to n further decoded characters without
	// consuming any of them; shorter than n at end of input.
	PeekN(n int) string
	// Ignore consumes one character without decoding it for the
	// caller; equivalent to discarding the result of Get.
	Ignore()
	// IgnoreN consumes n characters.
	IgnoreN(n int)
	// Offset returns the CodeBuffer offset of the next character to
	// be read.
	Offset() buffer.Offset
	// ReachedEndOfInput reports whether the scanner is exhausted.
	ReachedEndOfInput() bool
}
