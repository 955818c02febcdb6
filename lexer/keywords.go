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

// keywords is the closed set of reserved words. An identifier spelling
// found here is reclassified as a Keyword token rather than an
// Identifier one; nothing else about the token shape changes.
var keywords = map[string]bool{
	"auto":       true,
	"break":      true,
	"case":       true,
	"char":       true,
	"const":      true,
	"continue":   true,
	"default":    true,
	"do":         true,
	"double":     true,
	"else":       true,
	"enum":       true,
	"extern":     true,
	"float":      true,
	"for":        true,
	"goto":       true,
	"if":         true,
	"inline":     true,
	"int":        true,
	"long":       true,
	"register":   true,
	"restrict":   true,
	"return":     true,
	"signed":     true,
	"sizeof":     true,
	"static":     true,
	"struct":     true,
	"switch":     true,
	"typedef":    true,
	"union":      true,
	"unsigned":   true,
	"void":       true,
	"volatile":   true,
	"while":      true,
	"_Bool":      true,
	"_Complex":   true,
	"_Imaginary": true,
}

func isKeyword(spelling string) bool {
	return keywords[spelling]
}
