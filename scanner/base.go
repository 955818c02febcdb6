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

// Base is a Scanner over a buffer.CodeBuffer with UTF-8 decoding and
// transparent line splicing: a backslash immediately followed by a
// newline (bare LF, or CR-LF) is silently elided, recursively, wherever
// it occurs. Offset() always reports the post-splice position.
type Base struct {
	buf    *buffer.CodeBuffer
	offset buffer.Offset
	end    buffer.Offset
}

// NewBase returns a Base scanner reading [start, end) of buf.
func NewBase(buf *buffer.CodeBuffer, start, end buffer.Offset) *Base {
	return &Base{buf: buf, offset: start, end: end}
}

// Copy returns an independent scanner positioned identically to s; the
// two do not share cursor state afterward. This is the "cheap copy for
// lookahead" the base scanner is required to support.
func (s *Base) Copy() *Base {
	clone := *s
	return &clone
}

func (s *Base) skipSplices(off buffer.Offset) buffer.Offset {
	for off < s.end && s.buf.ByteAt(off) == '\\' {
		if off+1 < s.end && s.buf.ByteAt(off+1) == '\n' {
			off += 2
			continue
		}
		if off+2 < s.end && s.buf.ByteAt(off+1) == '\r' && s.buf.ByteAt(off+2) == '\n' {
			off += 3
			continue
		}
		break
	}
	return off
}

// decodeAt skips any splice starting at off, then decodes the character
// there. It returns the decoded rune, its byte width, and the offset it
// was actually read from (post-splice).
func (s *Base) decodeAt(off buffer.Offset) (r rune, width int, at buffer.Offset) {
	at = s.skipSplices(off)
	if at >= s.end {
		return EOF, 0, at
	}
	b0 := s.buf.ByteAt(at)
	if b0 < 0x80 {
		return rune(b0), 1, at
	}
	remaining := int(s.end - at)
	if remaining > utf8.UTFMax {
		remaining = utf8.UTFMax
	}
	r, size := utf8.DecodeRune(s.buf.BytesAt(at, remaining))
	return r, size, at
}

func (s *Base) Peek() rune {
	r, _, _ := s.decodeAt(s.offset)
	return r
}

func (s *Base) PeekN(n int) string {
	buf := make([]rune, 0, n)
	off := s.offset
	for i := 0; i < n; i++ {
		r, width, at := s.decodeAt(off)
		if r == EOF {
			break
		}
		buf = append(buf, r)
		off = at + buffer.Offset(width)
	}
	return string(buf)
}

func (s *Base) Get() rune {
	r, width, at := s.decodeAt(s.offset)
	if r == EOF {
		s.offset = at
		return EOF
	}
	s.offset = at + buffer.Offset(width)
	return r
}

func (s *Base) Ignore() { s.Get() }

func (s *Base) IgnoreN(n int) {
	for i := 0; i < n; i++ {
		s.Get()
	}
}

func (s *Base) Offset() buffer.Offset { return s.skipSplices(s.offset) }

// SetOffset repositions the scanner, for rollback after a failed probe.
func (s *Base) SetOffset(o buffer.Offset) { s.offset = o }

func (s *Base) ReachedEndOfInput() bool {
	return s.skipSplices(s.offset) >= s.end
}

var _ Scanner = (*Base)(nil)
