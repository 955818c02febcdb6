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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
	"github.com/StephenChips/tplcc/scanner"
)

// lexAll drains every token from source, resuming after each
// recoverable diagnostic, and stops at EndOfInput or a fatal error.
func lexAll(t *testing.T, source string) ([]Token, []diag.Diagnostic, error) {
	t.Helper()
	buf := buffer.New([]byte(source))
	collector := diag.NewCollector()
	s := scanner.NewBase(buf, buf.Section(0), buf.SectionEnd(0))
	l := New(s, collector)

	var tokens []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return tokens, collector.Diagnostics, err
		}
		if !ok {
			continue
		}
		if tok.Kind == EndOfInput {
			return tokens, collector.Diagnostics, nil
		}
		tokens = append(tokens, tok)
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	tokens, diags, err := lexAll(t, "int total_count return_value while")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Kind: Keyword, Text: "int"}, tokens[0])
	assert.Equal(t, Token{Kind: Identifier, Text: "total_count"}, tokens[1])
	assert.Equal(t, Token{Kind: Identifier, Text: "return_value"}, tokens[2])
	assert.Equal(t, Token{Kind: Keyword, Text: "while"}, tokens[3])
}

func TestPunctuatorsPreferLongestMatch(t *testing.T) {
	tokens, diags, err := lexAll(t, "<<= << < ->")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 4)
	assert.Equal(t, "<<=", tokens[0].Text)
	assert.Equal(t, "<<", tokens[1].Text)
	assert.Equal(t, "<", tokens[2].Text)
	assert.Equal(t, "->", tokens[3].Text)
}

func TestColonColonIsTwoSeparatePunctuators(t *testing.T) {
	tokens, diags, err := lexAll(t, "a::b")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Kind: Identifier, Text: "a"}, tokens[0])
	assert.Equal(t, Token{Kind: Punctuator, Text: ":"}, tokens[1])
	assert.Equal(t, Token{Kind: Punctuator, Text: ":"}, tokens[2])
	assert.Equal(t, Token{Kind: Identifier, Text: "b"}, tokens[3])
}

func TestDigraphPunctuatorsStillRecognized(t *testing.T) {
	tokens, diags, err := lexAll(t, "<: :> <% %>")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 4)
	assert.Equal(t, "<:", tokens[0].Text)
	assert.Equal(t, ":>", tokens[1].Text)
	assert.Equal(t, "<%", tokens[2].Text)
	assert.Equal(t, "%>", tokens[3].Text)
}

func TestSimpleIntegerLiteral(t *testing.T) {
	tokens, diags, err := lexAll(t, "42")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Kind: NumberLiteral, Text: "42"}, tokens[0])
}

func TestHexIntegerLiteral(t *testing.T) {
	tokens, diags, err := lexAll(t, "0x1F")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, "0x1F", tokens[0].Text)
}

func TestUnsignedLongSuffixInEitherOrder(t *testing.T) {
	for _, spelling := range []string{"1uLL", "1LLu", "1UL", "1lu"} {
		tokens, diags, err := lexAll(t, spelling)
		require.NoError(t, err)
		require.Emptyf(t, diags, "spelling %q should be valid", spelling)
		require.Equal(t, spelling, tokens[0].Text)
	}
}

func TestInvalidNumberSuffixIsReported(t *testing.T) {
	tokens, diags, err := lexAll(t, "4f")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, `"f" is not a valid suffix for the number literal 4.`, diags[0].Message)
	assert.Equal(t, "4f", tokens[0].Text)
}

func TestInvalidOctalNumber(t *testing.T) {
	tokens, diags, err := lexAll(t, "0189")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Invalid octal number.", diags[0].Message)
	assert.Equal(t, "0189", tokens[0].Text)
}

func TestPlainDecimalWithEightOrNineIsNotMisreportedAsOctal(t *testing.T) {
	tokens, diags, err := lexAll(t, "18 89 281")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 3)
	assert.Equal(t, "18", tokens[0].Text)
	assert.Equal(t, "89", tokens[1].Text)
	assert.Equal(t, "281", tokens[2].Text)
}

func TestFloatingLiteralWithExponent(t *testing.T) {
	tokens, diags, err := lexAll(t, "3.14e-10")
	require.NoError(t, err)
	require.Empty(t, diags)
	assert.Equal(t, "3.14e-10", tokens[0].Text)
}

func TestExponentWithNoDigitIsReported(t *testing.T) {
	tokens, diags, err := lexAll(t, "1.0e+")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Exponent part of number literal 1.0e+ has no digit.", diags[0].Message)
	assert.Equal(t, "1.0e+", tokens[0].Text)
}

func TestHexFloatWithoutExponentIsReported(t *testing.T) {
	tokens, diags, err := lexAll(t, "0x1.8")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Hexadecimal floating point 0x1.8 has no exponent part.", diags[0].Message)
	assert.Equal(t, "0x1.8", tokens[0].Text)
}

func TestStringLiteral(t *testing.T) {
	tokens, diags, err := lexAll(t, `"hello\nworld"`)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, StringLiteral, tokens[0].Kind)
	assert.Equal(t, `hello\nworld`, string(tokens[0].Bytes))
}

func TestCharacterLiteral(t *testing.T) {
	tokens, diags, err := lexAll(t, `'a'`)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, CharacterLiteral, tokens[0].Kind)
	assert.Equal(t, "a", string(tokens[0].Bytes))
}

func TestWideStringLiteralPrefix(t *testing.T) {
	tokens, diags, err := lexAll(t, `L"wide"`)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, StringLiteral, tokens[0].Kind)
	assert.Equal(t, PrefixL, tokens[0].Prefix)
	assert.Equal(t, "wide", string(tokens[0].Bytes))
}

func TestUnsupportedLiteralPrefixIsReportedAndSkipped(t *testing.T) {
	tokens, diags, err := lexAll(t, `u8"x" int a;`)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, `"u8" is not a valid prefix for a string literal.`, diags[0].Message)
	assert.Equal(t, "Invalid prefix.", diags[0].Hint)
	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Kind: Keyword, Text: "int"}, tokens[0])
	assert.Equal(t, Token{Kind: Identifier, Text: "a"}, tokens[1])
	assert.Equal(t, Token{Kind: Punctuator, Text: ";"}, tokens[2])
}

func TestUnsupportedCharacterLiteralPrefixIsReported(t *testing.T) {
	tokens, diags, err := lexAll(t, `U'a'`)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, `"U" is not a valid prefix for a character literal.`, diags[0].Message)
	assert.Empty(t, tokens)
}

func TestOrdinaryIdentifierImmediatelyFollowedByQuoteIsAnInvalidPrefix(t *testing.T) {
	_, diags, err := lexAll(t, `foo"bar"`)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, `"foo" is not a valid prefix for a string literal.`, diags[0].Message)
}

func TestUnterminatedStringLiteralIsFatal(t *testing.T) {
	_, diags, err := lexAll(t, `"never closed`)
	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "The string literal has no ending quote.", diags[0].Message)
}

func TestUnterminatedCharacterLiteralIsFatal(t *testing.T) {
	_, diags, err := lexAll(t, `'x`)
	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "The character literal has no ending quote.", diags[0].Message)
}

func TestUnterminatedStringLiteralAtCarriageReturnIsFatal(t *testing.T) {
	_, diags, err := lexAll(t, "\"never closed\rrest of line")
	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "The string literal has no ending quote.", diags[0].Message)
}

func TestUnterminatedStringLiteralAtVerticalTabIsFatal(t *testing.T) {
	_, diags, err := lexAll(t, "\"never closed\vrest of line")
	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "The string literal has no ending quote.", diags[0].Message)
}

func TestUnterminatedStringLiteralAtFormFeedIsFatal(t *testing.T) {
	_, diags, err := lexAll(t, "\"never closed\frest of line")
	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "The string literal has no ending quote.", diags[0].Message)
}

func TestStrayCharacterIsReportedAndSkipped(t *testing.T) {
	tokens, diags, err := lexAll(t, "a `b")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, `Stray "`+"`"+`" in program.`, diags[0].Message)
	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Text)
	assert.Equal(t, "b", tokens[1].Text)
}

func TestEndOfInputOnEmptySource(t *testing.T) {
	tokens, diags, err := lexAll(t, "")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Empty(t, tokens)
}

func TestUnderscoreImaginaryIsAKeyword(t *testing.T) {
	tokens, diags, err := lexAll(t, "_Imaginary")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Kind: Keyword, Text: "_Imaginary"}, tokens[0])
}

func TestShortIsNotAKeyword(t *testing.T) {
	tokens, diags, err := lexAll(t, "short")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Kind: Identifier, Text: "short"}, tokens[0])
}

func TestNonSpaceWhitespaceIsSkippedBetweenTokens(t *testing.T) {
	tokens, diags, err := lexAll(t, "int\ta\r\nb\fc\vd")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 5)
	assert.Equal(t, Token{Kind: Keyword, Text: "int"}, tokens[0])
	assert.Equal(t, Token{Kind: Identifier, Text: "a"}, tokens[1])
	assert.Equal(t, Token{Kind: Identifier, Text: "b"}, tokens[2])
	assert.Equal(t, Token{Kind: Identifier, Text: "c"}, tokens[3])
	assert.Equal(t, Token{Kind: Identifier, Text: "d"}, tokens[4])
}

func TestLineCommentIsElided(t *testing.T) {
	tokens, diags, err := lexAll(t, "int a; // trailing comment\nb")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 4)
	assert.Equal(t, "a", tokens[1].Text)
	assert.Equal(t, Token{Kind: Identifier, Text: "b"}, tokens[3])
}

func TestLineCommentAtEndOfInputWithNoTrailingNewline(t *testing.T) {
	tokens, diags, err := lexAll(t, "a // nothing after this")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 1)
	assert.Equal(t, "a", tokens[0].Text)
}

func TestBlockCommentIsElided(t *testing.T) {
	tokens, diags, err := lexAll(t, "a /* skip\nthis */ b")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Text)
	assert.Equal(t, "b", tokens[1].Text)
}

func TestCommentedOutTokensAreIgnored(t *testing.T) {
	tokens, diags, err := lexAll(t, "a /* b c d */ e")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Text)
	assert.Equal(t, "e", tokens[1].Text)
}

func TestUnterminatedBlockCommentIsReported(t *testing.T) {
	tokens, diags, err := lexAll(t, "a /* never closed")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "a", tokens[0].Text)
	require.Len(t, diags, 1)
	assert.Equal(t, "Unterminated block comment.", diags[0].Message)
	assert.Equal(t, "No closing */ found.", diags[0].Hint)
}
