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

var intSuffixCategories = [][]string{
	{"u", "U"},
	{"ll", "LL", "l", "L"},
}

var floatSuffixCategories = [][]string{
	{"F", "f", "l", "L"},
}

// scanNumber implements the pp-number state machine: an optional "0x"
// prefix switches to hex digits, a '.' or an exponent introducer makes
// it a floating literal, and a trailing alphanumeric run is validated
// as an integer or floating suffix. It reports at most one diagnostic
// and always leaves the scanner positioned just past the whole
// malformed-or-not spelling.
func scanNumber(s scanner.Scanner, sink diag.Sink, start buffer.Offset) Token {
	var buf []byte

	hex := false
	if s.Peek() == '0' {
		buf = appendRune(buf, s.Get())
		if s.Peek() == 'x' || s.Peek() == 'X' {
			buf = appendRune(buf, s.Get())
			hex = true
		}
	}

	hasIntegerPart := scanDigitRun(s, &buf, hex)

	if s.Peek() != '.' {
		if isExponentIntroducer(s.Peek(), hex) {
			return scanExponentAndSuffix(s, sink, start, buf, hex)
		}
		if !hex && len(buf) > 1 && buf[0] == '0' && containsOctalInvalidDigit(buf) {
			end := skipRemainingAlnum(s, &buf)
			report(sink, start, end, "Invalid octal number.", "Invalid octal number.")
			return Token{Kind: NumberLiteral, Text: string(buf)}
		}
		return scanIntegerSuffix(s, sink, start, buf)
	}

	buf = appendRune(buf, s.Get()) // '.'
	hasFractionPart := scanDigitRun(s, &buf, hex)

	if !hasIntegerPart && !hasFractionPart {
		end := skipRemainingAlnum(s, &buf)
		report(sink, start, end, "Invalid number.", "Invalid number.")
		return Token{Kind: NumberLiteral, Text: string(buf)}
	}

	if isExponentIntroducer(s.Peek(), hex) {
		return scanExponentAndSuffix(s, sink, start, buf, hex)
	}

	if hex {
		end := skipRemainingAlnum(s, &buf)
		report(sink, start, end,
			fmt.Sprintf("Hexadecimal floating point %s has no exponent part.", string(buf)),
			"Hex float has no exponent part.")
		return Token{Kind: NumberLiteral, Text: string(buf)}
	}

	return scanFloatSuffix(s, sink, start, buf)
}

func scanDigitRun(s scanner.Scanner, buf *[]byte, hex bool) bool {
	consumed := false
	for isNumberDigit(s.Peek(), hex) {
		*buf = appendRune(*buf, s.Get())
		consumed = true
	}
	return consumed
}

func isNumberDigit(r rune, hex bool) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if hex {
		return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return false
}

func isExponentIntroducer(r rune, hex bool) bool {
	if hex {
		return r == 'p' || r == 'P'
	}
	return r == 'e' || r == 'E'
}

func containsOctalInvalidDigit(buf []byte) bool {
	for _, b := range buf[1:] {
		if b == '8' || b == '9' {
			return true
		}
	}
	return false
}

// scanExponentAndSuffix scans an exponent part (the introducer, an
// optional sign, and its digits) and, if that succeeds, the trailing
// floating-point suffix.
func scanExponentAndSuffix(s scanner.Scanner, sink diag.Sink, start buffer.Offset, buf []byte, hex bool) Token {
	buf = appendRune(buf, s.Get()) // e/E/p/P
	if s.Peek() == '+' || s.Peek() == '-' {
		buf = appendRune(buf, s.Get())
	}

	hasDigit := scanDigitRun(s, &buf, false)
	if !hasDigit {
		end := skipRemainingAlnum(s, &buf)
		report(sink, start, end,
			fmt.Sprintf("Exponent part of number literal %s has no digit.", string(buf)),
			"Exponent has no digit.")
		return Token{Kind: NumberLiteral, Text: string(buf)}
	}

	return scanFloatSuffix(s, sink, start, buf)
}

func scanIntegerSuffix(s scanner.Scanner, sink diag.Sink, start buffer.Offset, buf []byte) Token {
	return scanSuffix(s, sink, start, buf, intSuffixCategories)
}

func scanFloatSuffix(s scanner.Scanner, sink diag.Sink, start buffer.Offset, buf []byte) Token {
	return scanSuffix(s, sink, start, buf, floatSuffixCategories)
}

func scanSuffix(s scanner.Scanner, sink diag.Sink, start buffer.Offset, buf []byte, categories [][]string) Token {
	base := string(buf)
	beginOfSuffix := len(buf)
	for isSuffixLetter(s.Peek()) {
		buf = appendRune(buf, s.Get())
	}
	suffix := string(buf[beginOfSuffix:])

	if !matchesSuffixGrammar(suffix, categories) {
		report(sink, start, s.Offset(),
			fmt.Sprintf("%q is not a valid suffix for the number literal %s.", suffix, base),
			"invalid suffix.")
	}
	return Token{Kind: NumberLiteral, Text: string(buf)}
}

func isSuffixLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// matchesSuffixGrammar checks that suffix decomposes into at most one
// alternative from each category, tried in any order — both "uLL" and
// "LLu" are accepted, unlike a strict left-to-right category walk.
func matchesSuffixGrammar(suffix string, categories [][]string) bool {
	used := make([]bool, len(categories))
	i := 0
	for i < len(suffix) {
		matched := false
		for ci, alternatives := range categories {
			if used[ci] {
				continue
			}
			for _, alt := range alternatives {
				if hasPrefixAt(suffix, i, alt) {
					used[ci] = true
					i += len(alt)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func hasPrefixAt(s string, i int, prefix string) bool {
	if i+len(prefix) > len(s) {
		return false
	}
	return s[i:i+len(prefix)] == prefix
}

func skipRemainingAlnum(s scanner.Scanner, buf *[]byte) buffer.Offset {
	for isIdentContinueRune(s.Peek()) {
		*buf = appendRune(*buf, s.Get())
	}
	return s.Offset()
}

