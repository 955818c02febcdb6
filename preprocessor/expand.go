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

package preprocessor

import (
	"fmt"

	"github.com/StephenChips/tplcc/buffer"
)

// expandOutcome is the three-way result of trying to expand an
// identifier as a macro invocation, mirroring §4.3.2's
// Ok/Fail/Error variant.
type expandOutcome int

const (
	// expandFail means the identifier is not a macro invocation here;
	// it should stand as an ordinary identifier.
	expandFail expandOutcome = iota
	// expandOK means expansion succeeded; a section holds the result.
	expandOK
	// expandError means the identifier named a macro but the
	// invocation was structurally invalid (arity, unterminated
	// argument list); a diagnostic has already been reported and the
	// identifier should be emitted verbatim, same as expandFail.
	expandError
)

// tryExpand attempts to expand the identifier name, which starts at
// nameStart in the CodeBuffer. See §4.3.2. The third return value holds
// source text an aborted function-like invocation parse already
// consumed, when the outcome is expandError; it is always nil
// otherwise.
func (p *Preprocessor) tryExpand(name string, nameStart buffer.Offset) (expandOutcome, buffer.SectionID, []PPCharacter) {
	def, ok := p.table.Lookup(name)
	if !ok {
		return expandFail, 0, nil
	}
	if p.currentHideSet().Contains(name) {
		return expandFail, 0, nil
	}

	if def.Kind == ObjectLike {
		outcome, id := p.expandObjectLike(def)
		return outcome, id, nil
	}
	return p.expandFunctionLike(def, nameStart)
}

func (p *Preprocessor) expandObjectLike(def Definition) (expandOutcome, buffer.SectionID) {
	key := objectLikeCacheKey(def.Name)
	if id, ok := p.cache.get(key); ok {
		return expandOK, id
	}

	text := def.Body
	if len(text) == 0 {
		text = []byte(" ")
	}
	return expandOK, p.installExpansion(key, def.Name, text)
}

func (p *Preprocessor) expandFunctionLike(def Definition, nameStart buffer.Offset) (expandOutcome, buffer.SectionID, []PPCharacter) {
	found, consumedParen := p.probeOpenParen()
	if !found {
		return expandFail, 0, nil
	}

	var args [][]byte
	var unterminated bool
	argChars := p.withRecording(func() {
		args, unterminated = p.parseArgumentList(def.Name)
	})
	consumed := append(consumedParen, argChars...)

	if unterminated {
		p.report(nameStart, p.currentOffset(),
			fmt.Sprintf("unterminated argument list invoking macro %q", def.Name), "")
		return expandError, 0, consumed
	}

	args, ok := coerceArity(def, args)
	if !ok {
		p.report(nameStart, p.currentOffset(),
			fmt.Sprintf("The macro %q requires %d argument(s), but got %d.", def.Name, len(def.Parameters), len(args)), "")
		return expandError, 0, consumed
	}

	key := functionLikeCacheKey(def.Name, args)
	if id, ok := p.cache.get(key); ok {
		return expandOK, id, nil
	}

	text := expandFunctionLikeBody(def, args)
	return expandOK, p.installExpansion(key, def.Name, text), nil
}

// installExpansion appends text as a new section, tags it with the
// hide set for this invocation, records it in the cache, and returns
// its id.
func (p *Preprocessor) installExpansion(key, macroName string, text []byte) buffer.SectionID {
	id := p.buf.AddSection(text)
	p.hides.set(id, unionHideSet(p.currentHideSet(), macroName))
	p.cache.put(key, id)
	return id
}

// coerceArity applies §4.3.2.2.d's arity rules, returning the
// (possibly coerced) argument list and whether it is valid.
func coerceArity(def Definition, args [][]byte) ([][]byte, bool) {
	switch len(def.Parameters) {
	case 0:
		return args, len(args) == 0
	case 1:
		if len(args) == 0 {
			return [][]byte{{}}, true
		}
		return args, len(args) == 1
	default:
		return args, len(args) == len(def.Parameters)
	}
}

// expandFunctionLikeBody walks a function-like macro's stored body,
// substituting parameter occurrences with their argument text
// verbatim. Further macro recognition of identifiers happens only on
// rescan of the produced section, not here.
func expandFunctionLikeBody(def Definition, args [][]byte) []byte {
	body := def.Body
	var out []byte
	i := 0
	for i < len(body) {
		if isIdentStartByte(body[i]) {
			j := i + 1
			for j < len(body) && isIdentContinueByte(body[j]) {
				j++
			}
			name := string(body[i:j])
			if idx := indexOfParam(def.Parameters, name); idx >= 0 {
				out = append(out, args[idx]...)
			} else {
				out = append(out, body[i:j]...)
			}
			i = j
			continue
		}
		out = append(out, body[i])
		i++
	}
	return out
}

func indexOfParam(params []string, name string) int {
	for i, p := range params {
		if p == name {
			return i
		}
	}
	return -1
}

func isIdentStartByte(b byte) bool    { return isIdentStart(rune(b)) }
func isIdentContinueByte(b byte) bool { return isIdentContinue(rune(b)) }

// probeOpenParen checks, without side effects if it fails, whether a
// '(' follows the current position once whitespace and comments are
// skipped. On success it consumes the skipped whitespace/comments and
// the '(' itself for real, returning that consumed text; on failure it
// leaves the cursor untouched and returns nil.
func (p *Preprocessor) probeOpenParen() (bool, []PPCharacter) {
	savedFrames := p.frames
	savedSections := p.sections

	p.frames = cloneFrames(savedFrames)
	p.consumeWhitespaceRunSilently()
	found := p.rawPeek() == '('

	p.frames = savedFrames
	p.sections = savedSections

	if !found {
		return false, nil
	}

	consumed := p.withRecording(func() {
		p.consumeWhitespaceRun()
		p.rawGet()
	})
	return true, consumed
}
