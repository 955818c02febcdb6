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
	"bytes"
	"fmt"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/scanner"
)

// parseDirective handles one '#'-introduced logical line. The '#' has
// been peeked but not consumed by the caller.
func (p *Preprocessor) parseDirective() {
	p.rawGet() // consume '#'

	ds := scanner.NewDirective(p.top())
	skipDirectiveSpace(ds)

	if ds.ReachedEndOfInput() {
		// An empty directive line ("#" alone) is a no-op.
		p.finishDirectiveLine(ds)
		return
	}

	nameStart := ds.Offset()
	name := readDirectiveToken(ds)
	nameEnd := ds.Offset()

	switch name {
	case "define":
		p.parseDefine(ds)
	default:
		p.report(nameStart, nameEnd, fmt.Sprintf("Unknown preprocessing directive %s", name), "")
	}

	p.finishDirectiveLine(ds)
}

// finishDirectiveLine drains anything left on the logical line (in
// case a diagnostic aborted parsing partway through), then consumes
// the line's own terminating newline from the real scanner, and
// re-arms directive recognition for the next line.
func (p *Preprocessor) finishDirectiveLine(ds *scanner.Directive) {
	for !ds.ReachedEndOfInput() {
		ds.Get()
	}
	if r := p.top().Peek(); r == '\n' || r == '\r' {
		got := p.top().Get()
		if got == '\r' && p.top().Peek() == '\n' {
			p.top().Get()
		}
	}
	p.canParseDirectives = true
}

func skipDirectiveSpace(ds *scanner.Directive) {
	for ds.Peek() == ' ' || ds.Peek() == '\t' {
		ds.Get()
	}
}

func readIdentifierFrom(ds *scanner.Directive) string {
	var out []byte
	for isIdentContinue(ds.Peek()) {
		out = appendRune(out, ds.Get())
	}
	return string(out)
}

func readDirectiveToken(ds *scanner.Directive) string {
	if isIdentStart(ds.Peek()) {
		return readIdentifierFrom(ds)
	}
	var out []byte
	for !ds.ReachedEndOfInput() && !isWhitespaceStart(ds.Peek()) {
		out = appendRune(out, ds.Get())
	}
	return string(out)
}

// parseDefine parses a #define directive body, having already consumed
// the "define" token itself.
func (p *Preprocessor) parseDefine(ds *scanner.Directive) {
	skipDirectiveSpace(ds)

	if !isIdentStart(ds.Peek()) {
		p.report(ds.Offset(), ds.Offset(), "macro names must be identifiers", "")
		return
	}

	nameStart := ds.Offset()
	name := readIdentifierFrom(ds)
	nameEnd := ds.Offset()

	if ds.Peek() == '(' {
		ds.Get()
		params, ok := p.parseFunctionLikeMacroParameters(ds, name)
		if !ok {
			return
		}
		skipDirectiveSpace(ds)
		body := readDirectiveBody(ds)
		if bodyContainsUnsupportedConstruct(body) {
			p.report(nameStart, ds.Offset(), "stringize and token-paste operators are not supported", "")
			return
		}
		p.defineOrRedefine(Definition{Name: name, Kind: FunctionLike, Parameters: params, Body: body}, nameStart, nameEnd)
		return
	}

	skipDirectiveSpace(ds)
	body := readDirectiveBody(ds)
	if bodyContainsUnsupportedConstruct(body) {
		p.report(nameStart, ds.Offset(), "stringize and token-paste operators are not supported", "")
		return
	}
	p.defineOrRedefine(Definition{Name: name, Kind: ObjectLike, Body: body}, nameStart, nameEnd)
}

func (p *Preprocessor) defineOrRedefine(def Definition, nameStart, nameEnd buffer.Offset) {
	if p.table.Define(def) {
		p.report(nameStart, nameEnd, fmt.Sprintf("Macro %q redefined.", def.Name), "")
	}
}

// bodyContainsUnsupportedConstruct reports whether body uses any of
// the stringize ('#'), token-paste ("##"), or __VA_ARGS__ constructs
// this preprocessor refuses at definition time rather than accepting
// and mishandling later.
func bodyContainsUnsupportedConstruct(body []byte) bool {
	return bytes.ContainsRune(body, '#') || containsIdentifier(body, "__VA_ARGS__")
}

// containsIdentifier reports whether name appears in body as a whole
// identifier token, not as a substring of a longer one (so
// "__VA_ARGS__X" doesn't falsely match "__VA_ARGS__").
func containsIdentifier(body []byte, name string) bool {
	i := 0
	for i < len(body) {
		if !isIdentStartByte(body[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(body) && isIdentContinueByte(body[j]) {
			j++
		}
		if string(body[i:j]) == name {
			return true
		}
		i = j
	}
	return false
}

// parseFunctionLikeMacroParameters parses the comma-separated parameter
// list starting just after the '(' (already consumed).
func (p *Preprocessor) parseFunctionLikeMacroParameters(ds *scanner.Directive, macroName string) ([]string, bool) {
	skipDirectiveSpace(ds)
	if ds.Peek() == ')' {
		ds.Get()
		return nil, true
	}

	var params []string
	seen := map[string]bool{}

	for {
		skipDirectiveSpace(ds)
		if !isIdentStart(ds.Peek()) {
			p.report(ds.Offset(), ds.Offset(), "Expected parameter name before end of line", "")
			return nil, false
		}

		start := ds.Offset()
		name := readIdentifierFrom(ds)
		end := ds.Offset()

		if name == "__VA_ARGS__" {
			p.report(start, end, "stringize and token-paste operators are not supported", "")
			return nil, false
		}

		if seen[name] {
			p.report(start, end, fmt.Sprintf("Duplicated parameter %q in the function-like macro %q.", name, macroName), "")
			return nil, false
		}
		seen[name] = true
		params = append(params, name)

		skipDirectiveSpace(ds)
		switch ds.Peek() {
		case ')':
			ds.Get()
			return params, true
		case ',':
			ds.Get()
		case scanner.EOF:
			p.report(ds.Offset(), ds.Offset(), "Expected ')' before end of line", "")
			return nil, false
		default:
			p.report(ds.Offset(), ds.Offset(), "Expected ',' or ')' here.", "")
			return nil, false
		}
	}
}

// readDirectiveBody reads the remainder of the logical line, collapsing
// whitespace and comment runs to a single space, with the result
// trimmed of leading/trailing space (leading space was already skipped
// by the caller via skipDirectiveSpace).
func readDirectiveBody(ds *scanner.Directive) []byte {
	var out []byte
	for !ds.ReachedEndOfInput() {
		if isWhitespaceStart(ds.Peek()) || directiveAtLineComment(ds) || directiveAtBlockComment(ds) {
			consumeDirectiveWhitespaceRun(ds)
			if len(out) > 0 {
				out = append(out, ' ')
			}
			continue
		}
		out = appendRune(out, ds.Get())
	}
	return bytes.TrimRight(out, " ")
}

func directiveAtLineComment(ds *scanner.Directive) bool {
	return ds.PeekN(2) == "//"
}

func directiveAtBlockComment(ds *scanner.Directive) bool {
	return ds.PeekN(2) == "/*"
}

func consumeDirectiveWhitespaceRun(ds *scanner.Directive) {
	for {
		switch {
		case isWhitespaceStart(ds.Peek()):
			ds.Get()
		case directiveAtLineComment(ds):
			ds.Get()
			ds.Get()
			for !ds.ReachedEndOfInput() {
				ds.Get()
			}
		case directiveAtBlockComment(ds):
			ds.Get()
			ds.Get()
			for !ds.ReachedEndOfInput() && ds.PeekN(2) != "*/" {
				ds.Get()
			}
			if ds.PeekN(2) == "*/" {
				ds.Get()
				ds.Get()
			}
		default:
			return
		}
	}
}
