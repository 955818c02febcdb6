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
	"unicode/utf8"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
)

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || (r >= '0' && r <= '9')
}

func report(sink diag.Sink, start, end buffer.Offset, message, hint string) {
	sink.Report(diag.Diagnostic{
		Range:   diag.Range{Start: start, End: end},
		Message: message,
		Hint:    hint,
	})
}
