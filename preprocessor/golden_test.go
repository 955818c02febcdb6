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
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// findTxtarFile returns the content of the named section, with its
// single trailing newline (the one txtar always adds before the next
// "-- name --" marker or end of archive) stripped.
func findTxtarFile(t *testing.T, ar *txtar.Archive, name string) (string, bool) {
	t.Helper()
	for _, f := range ar.Files {
		if f.Name == name {
			return strings.TrimSuffix(string(f.Data), "\n"), true
		}
	}
	return "", false
}

// TestPreprocessorGoldenFiles runs every scenario in testdata/*.txtar
// end to end: each archive names an "input" section, the expected
// fully-expanded "output", and an expected "diagnostics" section
// (one message substring per line, empty if none are expected).
func TestPreprocessorGoldenFiles(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "expected at least one golden fixture")

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			input, ok := findTxtarFile(t, ar, "input")
			require.True(t, ok, "archive is missing an \"input\" section")
			wantOutput, ok := findTxtarFile(t, ar, "output")
			require.True(t, ok, "archive is missing an \"output\" section")
			wantDiagsRaw, _ := findTxtarFile(t, ar, "diagnostics")

			gotOutput, gotDiags := preprocessAll(t, input)
			assert.Equal(t, wantOutput, gotOutput)

			var wantDiags []string
			for _, line := range strings.Split(wantDiagsRaw, "\n") {
				if line != "" {
					wantDiags = append(wantDiags, line)
				}
			}
			require.Len(t, gotDiags, len(wantDiags))
			for i, want := range wantDiags {
				assert.Contains(t, gotDiags[i].Message, want)
			}
		})
	}
}
