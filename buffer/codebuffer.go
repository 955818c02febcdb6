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

// Package buffer holds the append-only, sectioned byte storage that every
// offset in a diagnostic or token ultimately points into.
package buffer

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Offset is a flat byte index into a CodeBuffer.
type Offset int

// SectionID indexes into a CodeBuffer's ordered list of sections.
type SectionID int

// CodeBuffer is grow-only byte storage partitioned into immutable,
// ordered sections. Section 0 holds the original source; later sections
// hold macro expansion text. Sections are never deleted, split, or
// reordered, so every byte ever appended keeps a stable address.
type CodeBuffer struct {
	bytes         []byte
	sectionStarts []Offset
}

// New creates a CodeBuffer whose section 0 is source, with a leading
// UTF-8 byte-order mark stripped if present. Source that starts with a
// UTF-16 byte-order mark is decoded from UTF-16 to UTF-8, without the
// mark. Any other source is passed through as opaque bytes.
func New(source []byte) *CodeBuffer {
	normalized, err := stripBOM(source)
	if err != nil {
		// stripBOM only fails on a transform it did not ask for; fall
		// back to the untouched bytes rather than lose input.
		normalized = source
	}
	buf := &CodeBuffer{}
	buf.AddSection(normalized)
	return buf
}

func stripBOM(source []byte) ([]byte, error) {
	transformer := unicode.BOMOverride(transform.Nop)
	out, _, err := transform.Bytes(transformer, source)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddSection appends bytes as a new section and returns its id.
func (b *CodeBuffer) AddSection(content []byte) SectionID {
	id := SectionID(len(b.sectionStarts))
	b.sectionStarts = append(b.sectionStarts, Offset(len(b.bytes)))
	b.bytes = append(b.bytes, content...)
	return id
}

// Section returns the start offset of a section.
func (b *CodeBuffer) Section(id SectionID) Offset {
	return b.sectionStarts[id]
}

// SectionEnd returns the offset one past the end of a section: the next
// section's start, or the buffer length for the last section.
func (b *CodeBuffer) SectionEnd(id SectionID) Offset {
	if int(id)+1 < len(b.sectionStarts) {
		return b.sectionStarts[id+1]
	}
	return Offset(len(b.bytes))
}

// SectionSize returns SectionEnd(id) - Section(id).
func (b *CodeBuffer) SectionSize(id SectionID) int {
	return int(b.SectionEnd(id) - b.Section(id))
}

// SectionCount returns the number of sections, at least 1.
func (b *CodeBuffer) SectionCount() int {
	return len(b.sectionStarts)
}

// SectionOf returns the id of the section containing offset.
func (b *CodeBuffer) SectionOf(offset Offset) SectionID {
	// sectionStarts is small in practice (one per macro expansion); a
	// linear scan from the end is simpler than maintaining a sorted
	// index and favors the common case of reading near the frontier.
	for id := len(b.sectionStarts) - 1; id >= 0; id-- {
		if b.sectionStarts[id] <= offset {
			return SectionID(id)
		}
	}
	return 0
}

// ByteAt returns the byte at offset.
func (b *CodeBuffer) ByteAt(offset Offset) byte {
	return b.bytes[offset]
}

// BytesAt returns a view of n bytes starting at offset. The returned
// slice aliases the buffer's storage and must not be retained across a
// call to AddSection.
func (b *CodeBuffer) BytesAt(offset Offset, n int) []byte {
	return b.bytes[offset : int(offset)+n]
}

// Len returns the total number of bytes appended so far.
func (b *CodeBuffer) Len() int {
	return len(b.bytes)
}
