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
	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/internal/collections"
)

// hideSet is the set of macro names that must not be re-expanded at a
// given point in the rescanned character stream. The source this
// package was ported from has no such mechanism at all (self-reference
// prevention leaned entirely on the expansion cache, which only
// happens to work for the simplest cases); this is the one genuine
// semantic addition over that draft, called out explicitly because it
// is what makes mutual and self recursion terminate correctly instead
// of by accident.
//
// A hide set is attached per expansion section rather than per
// character: every byte of one macro's expansion output shares a
// single origin (the invocation that produced it), so section
// granularity is exactly the invocation granularity the algorithm
// needs.
type hideSet = collections.Set[string]

// unionHideSet returns a new hide set containing every name in h plus
// name, leaving h itself untouched.
func unionHideSet(h hideSet, name string) hideSet {
	next := make(hideSet, len(h)+1)
	next.Join(h)
	next.Add(name)
	return next
}

// hideSets tracks the hide set attached to each expansion section. A
// section absent from the map (including section 0, the original
// source) has an empty hide set.
type hideSets struct {
	bySection map[buffer.SectionID]hideSet
}

func newHideSets() *hideSets {
	return &hideSets{bySection: make(map[buffer.SectionID]hideSet)}
}

func (h *hideSets) of(section buffer.SectionID) hideSet {
	return h.bySection[section]
}

func (h *hideSets) set(section buffer.SectionID, set hideSet) {
	h.bySection[section] = set
}
