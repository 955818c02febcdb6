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
	"fmt"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
	"github.com/StephenChips/tplcc/scanner"
)

// Lexer recognizes one Token at a time from any scanner.Scanner. It
// carries no state of its own between calls beyond what the scanner
// gives it, so wrapping it around a raw scanner.Base or around a
// preprocessor's character stream (via NewFromPreprocessor) behaves
// identically.
type Lexer struct {
	s    scanner.Scanner
	sink diag.Sink
}

// New builds a Lexer reading characters from s, reporting diagnostics
// to sink.
func New(s scanner.Scanner, sink diag.Sink) *Lexer {
	return &Lexer{s: s, sink: sink}
}

// Next recognizes and returns the next token. Three outcomes are
// possible, mirroring §4.4's Option<Token> plus its one fatal path:
//   - (tok, true, nil): tok was recognized.
//   - (Token{}, false, nil): a diagnostic was reported for malformed
//     input and there is nothing to return for it; call Next again to
//     resume after the bad span.
//   - (Token{}, false, err): a string or character literal ran off the
//     end of input. This is unrecoverable; do not call Next again.
func (l *Lexer) Next() (Token, bool, error) {
	l.skipWhitespaceAndComments()

	start := l.s.Offset()

	if l.s.ReachedEndOfInput() {
		return Token{Kind: EndOfInput}, true, nil
	}

	r := l.s.Peek()

	if isIdentStartRune(r) {
		spelling := l.readIdentifierSpelling()
		if quote := l.s.Peek(); quote == '"' || quote == '\'' {
			return l.scanPrefixedLiteral(start, spelling, quote)
		}
		if isKeyword(spelling) {
			return Token{Kind: Keyword, Text: spelling}, true, nil
		}
		return Token{Kind: Identifier, Text: spelling}, true, nil
	}

	if isASCIIDigit(r) || (r == '.' && isASCIIDigit(l.peekSecond())) {
		return scanNumber(l.s, l.sink, start), true, nil
	}

	if r == '"' {
		tok, err := scanQuoted(l.s, l.sink, start, '"', StringLiteral)
		if err != nil {
			return Token{}, false, err
		}
		return tok, true, nil
	}
	if r == '\'' {
		tok, err := scanQuoted(l.s, l.sink, start, '\'', CharacterLiteral)
		if err != nil {
			return Token{}, false, err
		}
		return tok, true, nil
	}

	if spelling, ok := scanPunctuator(l.s); ok {
		return Token{Kind: Punctuator, Text: spelling}, true, nil
	}

	l.s.Ignore()
	report(l.sink, start, l.s.Offset(),
		fmt.Sprintf("Stray %q in program.", string(r)),
		"Invalid character.")
	return Token{}, false, nil
}

// skipWhitespaceAndComments elides the whitespace and comment runs
// masked between tokens, as a raw scanner (one not backed by a
// preprocessor's already-collapsed output) sees them: the full
// whitespace set, "//" line comments, and "/* */" block comments. An
// unterminated block comment is reported once and treated as consuming
// the rest of the input, matching the preprocessor's own handling of
// the same case.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespaceRune(l.s.Peek()):
			l.s.Ignore()
		case l.s.PeekN(2) == "//":
			l.s.IgnoreN(2)
			for l.s.Peek() != '\n' && !l.s.ReachedEndOfInput() {
				l.s.Ignore()
			}
		case l.s.PeekN(2) == "/*":
			start := l.s.Offset()
			l.s.IgnoreN(2)
			for l.s.PeekN(2) != "*/" {
				if l.s.ReachedEndOfInput() {
					report(l.sink, start, l.s.Offset(),
						"Unterminated block comment.", "No closing */ found.")
					return
				}
				l.s.Ignore()
			}
			l.s.IgnoreN(2)
		default:
			return
		}
	}
}

func isWhitespaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// readIdentifierSpelling consumes the longest run of identifier
// characters starting at the scanner's current position and returns
// it. The caller decides afterwards whether the spelling is an
// ordinary identifier/keyword or a string/character literal prefix,
// depending on what follows it.
func (l *Lexer) readIdentifierSpelling() string {
	var buf []byte
	for isIdentContinueRune(l.s.Peek()) {
		buf = appendRune(buf, l.s.Get())
	}
	return string(buf)
}

// scanPrefixedLiteral is reached once an identifier has already been
// consumed and found to be immediately followed by a quote. Only "L"
// is a supported prefix; any other spelling (u8, u, U, or an ordinary
// identifier) is reported and the literal body is skipped to recover.
func (l *Lexer) scanPrefixedLiteral(start buffer.Offset, prefix string, quote rune) (Token, bool, error) {
	kind := kindForQuote(quote)

	if prefix != "L" {
		end := skipQuotedBody(l.s, quote)
		literalName := "string"
		if kind == CharacterLiteral {
			literalName = "character"
		}
		report(l.sink, start, end,
			fmt.Sprintf("%q is not a valid prefix for a %s literal.", prefix, literalName),
			"Invalid prefix.")
		return Token{}, false, nil
	}

	tok, err := scanQuoted(l.s, l.sink, start, quote, kind)
	if err != nil {
		return Token{}, false, err
	}
	tok.Prefix = PrefixL
	return tok, true, nil
}

func (l *Lexer) peekSecond() rune {
	two := []rune(l.s.PeekN(2))
	if len(two) < 2 {
		return scanner.EOF
	}
	return two[1]
}

func kindForQuote(quote rune) Kind {
	if quote == '\'' {
		return CharacterLiteral
	}
	return StringLiteral
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
