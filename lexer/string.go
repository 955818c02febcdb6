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
	"github.com/pkg/errors"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
	"github.com/StephenChips/tplcc/scanner"
)

// ErrUnterminatedLiteral is the sentinel wrapped by scanQuoted's
// returned error when a string or character literal runs off the end
// of input without a closing quote. Unlike every other lexical
// problem, this one is fatal: there is no sensible resync point, so
// the caller must stop lexing rather than call Next again.
var ErrUnterminatedLiteral = errors.New("unterminated quoted literal")

// scanQuoted reads a string or character literal starting at quote
// ('"' or '\''), which has not yet been consumed. kind selects the
// resulting Token.Kind. An escape sequence's backslash and following
// character are copied verbatim into Bytes without interpretation;
// this lexer does not evaluate escapes.
func scanQuoted(s scanner.Scanner, sink diag.Sink, start buffer.Offset, quote rune, kind Kind) (Token, error) {
	s.Ignore() // opening quote

	var body []byte
	for {
		switch s.Peek() {
		case scanner.EOF, '\n', '\r', '\v', '\f':
			literalName := "string"
			if kind == CharacterLiteral {
				literalName = "character"
			}
			report(sink, start, s.Offset(),
				"The "+literalName+" literal has no ending quote.",
				"No ending quote.")
			return Token{}, errors.Wrap(ErrUnterminatedLiteral, literalName+" literal")
		case quote:
			s.Ignore()
			return Token{Kind: kind, Bytes: body}, nil
		case '\\':
			body = appendRune(body, s.Get())
			if !isLineTerminator(s.Peek()) {
				body = appendRune(body, s.Get())
			}
		default:
			body = appendRune(body, s.Get())
		}
	}
}

// isLineTerminator reports whether r is one of the bytes that ends a
// quoted literal's body without a closing quote (§4.4.4): end of
// input or any of the newline-family control characters.
func isLineTerminator(r rune) bool {
	switch r {
	case scanner.EOF, '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// skipQuotedBody consumes an entire quoted literal body starting at
// its opening quote, without collecting the bytes, so an invalid
// prefix can still be reported over the literal's full range and
// scanning can resume after it. It stops at the closing quote or at
// the first line terminator, matching scanQuoted's own stopping rule.
func skipQuotedBody(s scanner.Scanner, quote rune) buffer.Offset {
	s.Ignore() // opening quote
	for {
		switch s.Peek() {
		case quote:
			s.Ignore()
			return s.Offset()
		case '\\':
			s.Ignore()
			if !isLineTerminator(s.Peek()) {
				s.Ignore()
			}
		default:
			if isLineTerminator(s.Peek()) {
				return s.Offset()
			}
			s.Ignore()
		}
	}
}
