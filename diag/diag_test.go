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

package diag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/diag"
)

func TestCollectorAppendsInReportOrder(t *testing.T) {
	c := diag.NewCollector()

	c.Report(diag.Diagnostic{
		Range:   diag.Range{Start: 0, End: 3},
		Message: "first",
		Hint:    "hint one",
	})
	c.Report(diag.Diagnostic{
		Range:   diag.Range{Start: 5, End: 9},
		Message: "second",
	})

	want := []diag.Diagnostic{
		{Range: diag.Range{Start: 0, End: 3}, Message: "first", Hint: "hint one"},
		{Range: diag.Range{Start: 5, End: 9}, Message: "second"},
	}

	if diff := cmp.Diff(want, c.Diagnostics); diff != "" {
		t.Errorf("Diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestRangeFieldsAreOrdinaryOffsets(t *testing.T) {
	r := diag.Range{Start: buffer.Offset(2), End: buffer.Offset(4)}
	if r.End-r.Start != 2 {
		t.Errorf("range width = %d, want 2", r.End-r.Start)
	}
}
