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
	"strings"

	"github.com/StephenChips/tplcc/buffer"
	"github.com/StephenChips/tplcc/internal/collections"
)

// expansionCache maps an invocation key to the section id already
// produced for it. It is never evicted for the lifetime of a
// preprocessor: repeated invocations of the same macro with the same
// (already-expanded) arguments always reuse the first expansion,
// exactly as §3 of the requirements requires. A plain map is the right
// structure here; an LRU or other evicting cache would silently break
// that guarantee, which is why one isn't used (see SPEC_FULL.md,
// DOMAIN STACK).
type expansionCache struct {
	sections map[string]buffer.SectionID
}

func newExpansionCache() *expansionCache {
	return &expansionCache{sections: make(map[string]buffer.SectionID)}
}

func (c *expansionCache) get(key string) (buffer.SectionID, bool) {
	id, ok := c.sections[key]
	return id, ok
}

func (c *expansionCache) put(key string, id buffer.SectionID) {
	c.sections[key] = id
}

// objectLikeCacheKey is the invocation key for an object-like macro:
// just its name.
func objectLikeCacheKey(name string) string {
	return name
}

// functionLikeCacheKey builds "name(arg0,arg1,...)" from already
// pre-expanded argument texts.
func functionLikeCacheKey(name string, args [][]byte) string {
	texts := collections.MapSlice(args, func(a []byte) string { return string(a) })
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(texts, ","))
	b.WriteByte(')')
	return b.String()
}
