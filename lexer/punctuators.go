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

import "github.com/StephenChips/tplcc/scanner"

// punctuatorsByLength lists every recognized punctuator spelling,
// longest first, so that scanPunctuator can try longer matches before
// shorter prefixes of them ("<<=" before "<<" before "<"). "#" and
// "##" are deliberately absent: both are preprocessor-only and never
// reach this stage.
var punctuatorsByLength = [][]string{
	{"<<=", ">>=", "..."},
	{
		"<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "++", "--",
		"->", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
		"<:", ":>", "<%", "%>",
	},
	{
		"[", "]", "(", ")", "{", "}", ".", "&", "*", "+", "-", "~",
		"!", "/", "%", "<", ">", "^", "|", "?", ":", ";", "=", ",",
	},
}

// scanPunctuator tries to match the longest punctuator spelling
// starting at the scanner's current position, and consumes it if
// found.
func scanPunctuator(s scanner.Scanner) (string, bool) {
	for _, group := range punctuatorsByLength {
		width := len(group[0])
		candidate := s.PeekN(width)
		if len(candidate) < width {
			continue
		}
		for _, p := range group {
			if candidate == p {
				s.IgnoreN(width)
				return p, true
			}
		}
	}
	return "", false
}
