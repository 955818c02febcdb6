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

package collections

import "testing"

func TestSetAddAndContains(t *testing.T) {
	s := make(Set[string])
	if s.Contains("FOO") {
		t.Fatalf("empty set contains %q", "FOO")
	}
	s.Add("FOO")
	if !s.Contains("FOO") {
		t.Fatalf("set does not contain %q after Add", "FOO")
	}
}

func TestSetJoinIsUnionAndLeavesOtherUntouched(t *testing.T) {
	a := make(Set[string]).Add("FOO")
	b := make(Set[string]).Add("BAR")

	a.Join(b)

	if !a.Contains("FOO") || !a.Contains("BAR") {
		t.Fatalf("joined set missing an element: %v", a)
	}
	if b.Contains("FOO") {
		t.Fatalf("Join mutated the other set: %v", b)
	}
}
