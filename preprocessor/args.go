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
	"strings"
	"unicode/utf8"

	"github.com/StephenChips/tplcc/scanner"
)

// parseArgumentList reads a function-like macro's argument list from
// just after the opening '(' (already consumed by the caller). It
// returns the pre-expanded argument texts, and whether the list ran
// off the end of input before a balanced ')' (§4.3.3).
func (p *Preprocessor) parseArgumentList(macroName string) (args [][]byte, unterminated bool) {
	baseDepth := len(p.frames)

	// An immediate ')' (after skipping whitespace/comments) is a
	// zero-argument call.
	p.consumeWhitespaceRun()
	if p.rawPeek() == ')' && len(p.frames) <= baseDepth {
		p.rawGet()
		return nil, false
	}

	for {
		arg, closed, eof := p.parseOneArgument(baseDepth)
		if eof {
			return nil, true
		}
		args = append(args, arg)
		if closed {
			return args, false
		}
	}
}

// parseOneArgument reads one comma- or paren-delimited argument,
// pre-expanding any macro invocations found in it (§4.3.3). closed
// reports that the argument list's closing ')' was consumed; eof
// reports that input ran out first.
func (p *Preprocessor) parseOneArgument(baseDepth int) (arg []byte, closed bool, eof bool) {
	depth := 0
	var buf []byte

	for {
		r := p.rawPeek()
		if r == scanner.EOF {
			return nil, false, true
		}

		atBase := len(p.frames) <= baseDepth
		if atBase && depth == 0 && r == ',' {
			p.rawGet()
			return collapseArgument(buf), false, false
		}
		if atBase && depth == 0 && r == ')' {
			p.rawGet()
			return collapseArgument(buf), true, false
		}

		if r == '(' {
			p.rawGet()
			depth++
			buf = append(buf, '(')
			continue
		}
		if r == ')' {
			p.rawGet()
			depth--
			buf = append(buf, ')')
			continue
		}

		if isWhitespaceStart(r) || p.atLineComment() || p.atBlockComment() {
			p.consumeWhitespaceRun()
			buf = append(buf, ' ')
			continue
		}

		if isIdentStart(r) {
			name, offsets := p.readIdentifierRaw()
			switch outcome, section, extra := p.tryExpand(name, offsets[0]); outcome {
			case expandOK:
				p.enterSection(section)
			default:
				buf = append(buf, name...)
				buf = appendPPChars(buf, extra)
			}
			continue
		}

		cp, _ := p.rawGet()
		buf = appendRune(buf, cp)
	}
}

func collapseArgument(buf []byte) []byte {
	return []byte(strings.TrimSpace(string(buf)))
}

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

func appendPPChars(buf []byte, chars []PPCharacter) []byte {
	for _, c := range chars {
		buf = appendRune(buf, c.Codepoint)
	}
	return buf
}
