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

package lexer

import (
	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
	"github.com/StephenChips/tplcc/preprocessor"
	"github.com/StephenChips/tplcc/scanner"
)

// ppScanner adapts a *preprocessor.Preprocessor, which yields
// PPCharacters one at a time, to the narrow scanner.Scanner contract
// the lexer is built against. It buffers a small queue of
// already-pulled characters to support the multi-character lookahead
// PeekN needs (a comment opener, a '.' followed by a digit, a
// punctuator match).
type ppScanner struct {
	pp      *preprocessor.Preprocessor
	queue   []preprocessor.PPCharacter
	lastEnd buffer.Offset
}

// NewFromPreprocessor builds a Lexer that reads pp's output.
func NewFromPreprocessor(pp *preprocessor.Preprocessor, sink diag.Sink) *Lexer {
	return New(&ppScanner{pp: pp}, sink)
}

func (s *ppScanner) fill(n int) {
	for len(s.queue) < n && !s.pp.ReachedEndOfInput() {
		s.queue = append(s.queue, s.pp.Get())
	}
}

func (s *ppScanner) Peek() rune {
	s.fill(1)
	if len(s.queue) == 0 {
		return scanner.EOF
	}
	return s.queue[0].Codepoint
}

func (s *ppScanner) PeekN(n int) string {
	s.fill(n)
	runes := make([]rune, 0, n)
	for i := 0; i < n && i < len(s.queue); i++ {
		runes = append(runes, s.queue[i].Codepoint)
	}
	return string(runes)
}

func (s *ppScanner) Get() rune {
	s.fill(1)
	if len(s.queue) == 0 {
		return scanner.EOF
	}
	c := s.queue[0]
	s.queue = s.queue[1:]
	s.lastEnd = c.Offset + 1
	return c.Codepoint
}

func (s *ppScanner) Ignore() { s.Get() }

func (s *ppScanner) IgnoreN(n int) {
	for i := 0; i < n; i++ {
		s.Get()
	}
}

func (s *ppScanner) Offset() buffer.Offset {
	s.fill(1)
	if len(s.queue) > 0 {
		return s.queue[0].Offset
	}
	return s.lastEnd
}

func (s *ppScanner) ReachedEndOfInput() bool {
	s.fill(1)
	return len(s.queue) == 0
}

var _ scanner.Scanner = (*ppScanner)(nil)
