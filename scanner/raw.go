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

package scanner

import (
	"unicode/utf8"

	"github.com/StephenChips/tplcc/buffer"
)

// Raw is a Scanner over a contiguous byte slice with no line splicing,
// used to walk a macro's stored replacement text during expansion. base
// is the CodeBuffer offset that data[0] corresponds to, so positions
// read through a Raw scanner remain usable in diagnostics.
type Raw struct {
	data []byte
	pos  int
	base buffer.Offset
}

// NewRaw returns a Raw scanner over data, whose first byte is at base.
func NewRaw(data []byte, base buffer.Offset) *Raw {
	return &Raw{data: data, base: base}
}

func (r *Raw) Peek() rune {
	if r.pos >= len(r.data) {
		return EOF
	}
	b0 := r.data[r.pos]
	if b0 < 0x80 {
		return rune(b0)
	}
	ru, _ := utf8.DecodeRune(r.data[r.pos:])
	return ru
}

func (r *Raw) PeekN(n int) string {
	pos := r.pos
	runes := make([]rune, 0, n)
	for i := 0; i < n && pos < len(r.data); i++ {
		b0 := r.data[pos]
		if b0 < 0x80 {
			runes = append(runes, rune(b0))
			pos++
			continue
		}
		ru, size := utf8.DecodeRune(r.data[pos:])
		runes = append(runes, ru)
		pos += size
	}
	return string(runes)
}

func (r *Raw) Get() rune {
	if r.pos >= len(r.data) {
		return EOF
	}
	b0 := r.data[r.pos]
	if b0 < 0x80 {
		r.pos++
		return rune(b0)
	}
	ru, size := utf8.DecodeRune(r.data[r.pos:])
	r.pos += size
	return ru
}

func (r *Raw) Ignore() { r.Get() }

func (r *Raw) IgnoreN(n int) {
	for i := 0; i < n; i++ {
		r.Get()
	}
}

func (r *Raw) Offset() buffer.Offset { return r.base + buffer.Offset(r.pos) }

func (r *Raw) ReachedEndOfInput() bool { return r.pos >= len(r.data) }

var _ Scanner = (*Raw)(nil)
