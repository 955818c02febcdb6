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

import "github.com/StephenChips/tplcc/buffer"

// Directive wraps a Base scanner and additionally treats a raw newline
// (one that survived line splicing) as end of input, so a directive
// parser built on it can never read past its logical line.
type Directive struct {
	inner *Base
}

// NewDirective wraps inner, bounding reads to the current logical line.
func NewDirective(inner *Base) *Directive {
	return &Directive{inner: inner}
}

func isNewline(r rune) bool { return r == '\n' || r == '\r' }

func (d *Directive) atLineEnd() bool {
	r := d.inner.Peek()
	return r == EOF || isNewline(r)
}

func (d *Directive) Peek() rune {
	if d.atLineEnd() {
		return EOF
	}
	return d.inner.Peek()
}

func (d *Directive) PeekN(n int) string {
	saved := d.inner.Offset()
	defer d.inner.SetOffset(saved)

	runes := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		if d.atLineEnd() {
			break
		}
		runes = append(runes, d.inner.Get())
	}
	return string(runes)
}

func (d *Directive) Get() rune {
	if d.atLineEnd() {
		return EOF
	}
	return d.inner.Get()
}

func (d *Directive) Ignore() { d.Get() }

func (d *Directive) IgnoreN(n int) {
	for i := 0; i < n; i++ {
		d.Get()
	}
}

func (d *Directive) Offset() buffer.Offset { return d.inner.Offset() }

func (d *Directive) ReachedEndOfInput() bool { return d.atLineEnd() }

var _ Scanner = (*Directive)(nil)
