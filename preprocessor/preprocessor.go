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

// Package preprocessor turns raw source bytes into a stream of
// preprocessed characters: line splicing is handled by the scanner
// layer underneath it, and this package adds comment elision,
// whitespace collapsing, directive parsing, and recursive macro
// expansion with rescan.
package preprocessor

import (
	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
	"github.com/StephenChips/tplcc/scanner"
)

// EOF is the sentinel PPCharacter.Codepoint value at end of input.
const EOF rune = scanner.EOF

// PPCharacter is one preprocessed character together with the
// CodeBuffer offset it originates from, regardless of how many
// expansion layers lie above that offset.
type PPCharacter struct {
	Codepoint rune
	Offset    buffer.Offset
}

// Preprocessor exposes a character-stream interface over a CodeBuffer:
// Get, Peek, and ReachedEndOfInput. It owns the buffer's macro table,
// expansion cache, and hide sets, and is not safe for concurrent use —
// like the rest of this module, it is built for the strictly
// single-threaded pipeline described alongside it.
type Preprocessor struct {
	buf   *buffer.CodeBuffer
	sink  diag.Sink
	table *Table
	cache *expansionCache
	hides *hideSets

	frames   []*scanner.Base
	sections []buffer.SectionID

	pending []PPCharacter

	// recording, when non-nil, receives every character rawGet
	// actually consumes. It lets an in-progress macro-invocation parse
	// recover the exact source text it swallowed if the invocation
	// later turns out to be malformed, so that text can be re-queued
	// instead of silently lost.
	recording *[]PPCharacter

	canParseDirectives bool
	lastWasSpace       bool

	peeked  *PPCharacter
	hasPeek bool
}

// New builds a Preprocessor reading buf's section 0, reporting
// diagnostics to sink.
func New(buf *buffer.CodeBuffer, sink diag.Sink) *Preprocessor {
	p := &Preprocessor{
		buf:                buf,
		sink:               sink,
		table:              NewTable(),
		cache:              newExpansionCache(),
		hides:              newHideSets(),
		canParseDirectives: true,
	}
	p.pushSection(0)
	return p
}

func (p *Preprocessor) pushSection(id buffer.SectionID) {
	base := p.buf.Section(id)
	end := p.buf.SectionEnd(id)
	p.frames = append(p.frames, scanner.NewBase(p.buf, base, end))
	p.sections = append(p.sections, id)
}

func (p *Preprocessor) popSection() {
	p.frames = p.frames[:len(p.frames)-1]
	p.sections = p.sections[:len(p.sections)-1]
}

func (p *Preprocessor) top() *scanner.Base { return p.frames[len(p.frames)-1] }

func (p *Preprocessor) currentHideSet() hideSet {
	return p.hides.of(p.sections[len(p.sections)-1])
}

// rawPeek returns the next character across frame boundaries, popping
// any exhausted inner sections, without consuming it.
func (p *Preprocessor) rawPeek() rune {
	for {
		if r := p.top().Peek(); r != scanner.EOF {
			return r
		}
		if len(p.frames) == 1 {
			return scanner.EOF
		}
		p.popSection()
	}
}

// rawGet consumes and returns the next character across frame
// boundaries, together with its CodeBuffer offset.
func (p *Preprocessor) rawGet() (rune, buffer.Offset) {
	for {
		if p.top().ReachedEndOfInput() {
			if len(p.frames) == 1 {
				return scanner.EOF, p.top().Offset()
			}
			p.popSection()
			continue
		}
		off := p.top().Offset()
		r := p.top().Get()
		if p.recording != nil {
			*p.recording = append(*p.recording, PPCharacter{Codepoint: r, Offset: off})
		}
		return r, off
	}
}

// withRecording runs fn while capturing every character rawGet
// consumes during it, and returns that capture. If a recording was
// already in progress (a nested invocation parse), the capture is also
// appended to it, so the outer parse sees everything the inner one
// consumed too.
func (p *Preprocessor) withRecording(fn func()) []PPCharacter {
	prev := p.recording
	var captured []PPCharacter
	p.recording = &captured
	fn()
	p.recording = prev
	if prev != nil {
		*prev = append(*prev, captured...)
	}
	return captured
}

// peekAhead simulates reading up to n characters across frame
// boundaries without mutating any real cursor.
func (p *Preprocessor) peekAhead(n int) []rune {
	clones := make([]*scanner.Base, len(p.frames))
	for i, f := range p.frames {
		clones[i] = f.Copy()
	}
	result := make([]rune, 0, n)
	for len(result) < n {
		top := clones[len(clones)-1]
		if top.ReachedEndOfInput() {
			if len(clones) == 1 {
				break
			}
			clones = clones[:len(clones)-1]
			continue
		}
		result = append(result, top.Get())
	}
	return result
}

// enterSection pushes id as the new top frame, entering its expansion
// text for rescan.
func (p *Preprocessor) enterSection(id buffer.SectionID) {
	p.pushSection(id)
}

// cloneFrames returns independent copies of frames, for a
// non-destructive lookahead pass.
func cloneFrames(frames []*scanner.Base) []*scanner.Base {
	clones := make([]*scanner.Base, len(frames))
	for i, f := range frames {
		clones[i] = f.Copy()
	}
	return clones
}

// ReachedEndOfInput reports whether the preprocessor is fully
// exhausted: section 0 done, section stack empty (beyond the base
// frame), and no pending replay bytes or cached lookahead.
func (p *Preprocessor) ReachedEndOfInput() bool {
	if len(p.pending) > 0 || p.hasPeek {
		return false
	}
	return len(p.frames) == 1 && p.top().ReachedEndOfInput()
}

// Peek returns the next PPCharacter without consuming it.
func (p *Preprocessor) Peek() PPCharacter {
	if !p.hasPeek {
		c := p.computeNext()
		p.peeked = &c
		p.hasPeek = true
	}
	return *p.peeked
}

// Get consumes and returns the next PPCharacter.
func (p *Preprocessor) Get() PPCharacter {
	if p.hasPeek {
		c := *p.peeked
		p.hasPeek = false
		p.peeked = nil
		return c
	}
	return p.computeNext()
}

func (p *Preprocessor) report(start, end buffer.Offset, message, hint string) {
	p.sink.Report(diag.Diagnostic{
		Range:   diag.Range{Start: start, End: end},
		Message: message,
		Hint:    hint,
	})
}

// computeNext produces exactly one output PPCharacter, or the EOF
// sentinel once input is exhausted. It is the heart of §4.3: comment
// elision and whitespace collapsing, directive dispatch, and
// identifier/macro-expansion recognition.
func (p *Preprocessor) computeNext() PPCharacter {
	for {
		if len(p.pending) > 0 {
			c := p.pending[0]
			p.pending = p.pending[1:]
			p.lastWasSpace = false
			p.canParseDirectives = false
			return c
		}

		if p.ReachedEndOfInput() {
			return PPCharacter{Codepoint: EOF, Offset: p.top().Offset()}
		}

		if len(p.frames) == 1 && p.canParseDirectives && p.rawPeek() == '#' {
			p.parseDirective()
			continue
		}

		if isWhitespaceStart(p.rawPeek()) || p.atLineComment() || p.atBlockComment() {
			startOffset := p.currentOffset()
			p.consumeWhitespaceRun()
			if p.lastWasSpace {
				continue
			}
			p.lastWasSpace = true
			return PPCharacter{Codepoint: ' ', Offset: startOffset}
		}

		if isIdentStart(p.rawPeek()) {
			p.canParseDirectives = false
			name, offsets := p.readIdentifierRaw()
			switch outcome, section, extra := p.tryExpand(name, offsets[0]); outcome {
			case expandOK:
				p.enterSection(section)
				continue
			default:
				p.queuePending(name, offsets, extra)
				continue
			}
		}

		cp, off := p.rawGet()
		p.lastWasSpace = false
		p.canParseDirectives = false
		return PPCharacter{Codepoint: cp, Offset: off}
	}
}

func (p *Preprocessor) currentOffset() buffer.Offset {
	return p.top().Offset()
}

// queuePending re-arms the output of a name that turned out not to
// expand (or expanded into an error), followed by any source text an
// abandoned invocation parse had already swallowed past it.
func (p *Preprocessor) queuePending(name string, offsets []buffer.Offset, extra []PPCharacter) {
	p.pending = make([]PPCharacter, 0, len(name)+len(extra))
	for i, r := range []rune(name) {
		p.pending = append(p.pending, PPCharacter{Codepoint: r, Offset: offsets[i]})
	}
	p.pending = append(p.pending, extra...)
}

func (p *Preprocessor) readIdentifierRaw() (string, []buffer.Offset) {
	var runes []rune
	var offsets []buffer.Offset
	// Read from the top frame only: popping an exhausted expansion here
	// would make tryExpand consult the enclosing section's hide set.
	for isIdentContinue(p.top().Peek()) {
		r, off := p.rawGet()
		runes = append(runes, r)
		offsets = append(offsets, off)
	}
	return string(runes), offsets
}

func isWhitespaceStart(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

func isNewline(r rune) bool { return r == '\n' || r == '\r' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (p *Preprocessor) atLineComment() bool {
	ahead := p.peekAhead(2)
	return len(ahead) == 2 && ahead[0] == '/' && ahead[1] == '/'
}

func (p *Preprocessor) atBlockComment() bool {
	ahead := p.peekAhead(2)
	return len(ahead) == 2 && ahead[0] == '/' && ahead[1] == '*'
}

// consumeWhitespaceRunSilently behaves like consumeWhitespaceRun but
// never reports a diagnostic; it is used only to decide, during a
// probe, whether skipping ahead reaches a '(' — an unterminated
// comment found here will be reported for real when the caller
// replays the same skip destructively.
func (p *Preprocessor) consumeWhitespaceRunSilently() {
	for {
		if isWhitespaceStart(p.rawPeek()) {
			p.rawGet()
			continue
		}
		if p.atLineComment() {
			p.rawGet()
			p.rawGet()
			for p.rawPeek() != '\n' && p.rawPeek() != scanner.EOF {
				p.rawGet()
			}
			continue
		}
		if p.atBlockComment() {
			p.rawGet()
			p.rawGet()
			for {
				if p.rawPeek() == scanner.EOF {
					return
				}
				ahead := p.peekAhead(2)
				if len(ahead) == 2 && ahead[0] == '*' && ahead[1] == '/' {
					p.rawGet()
					p.rawGet()
					break
				}
				p.rawGet()
			}
			continue
		}
		return
	}
}

// consumeWhitespaceRun eats one or more consecutive whitespace/comment
// units, updating canParseDirectives on each raw newline seen.
func (p *Preprocessor) consumeWhitespaceRun() {
	for {
		if isWhitespaceStart(p.rawPeek()) {
			r, _ := p.rawGet()
			if isNewline(r) {
				p.canParseDirectives = true
			}
			continue
		}
		if p.atLineComment() {
			p.rawGet()
			p.rawGet()
			for p.rawPeek() != '\n' && p.rawPeek() != scanner.EOF {
				p.rawGet()
			}
			continue
		}
		if p.atBlockComment() {
			start := p.currentOffset()
			p.rawGet()
			p.rawGet()
			closed := false
			for !closed {
				if p.rawPeek() == scanner.EOF {
					p.report(start, p.currentOffset(), "Unterminated block comment.", "No closing */ found.")
					return
				}
				ahead := p.peekAhead(2)
				if len(ahead) == 2 && ahead[0] == '*' && ahead[1] == '/' {
					p.rawGet()
					p.rawGet()
					closed = true
					continue
				}
				p.rawGet()
			}
			continue
		}
		return
	}
}
