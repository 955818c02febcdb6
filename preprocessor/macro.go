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

// Kind distinguishes object-like from function-like macros.
type Kind int

const (
	ObjectLike Kind = iota
	FunctionLike
)

// Definition is a single #define. Parameters is empty for an
// object-like macro; Body is the already whitespace-normalized
// replacement text.
type Definition struct {
	Name       string
	Kind       Kind
	Parameters []string
	Body       []byte
}

// sameAs reports whether two definitions are textually identical after
// whitespace normalization, per the redefinition rule in §4.3.1: same
// kind, same parameter list, same body.
func (d Definition) sameAs(other Definition) bool {
	if d.Kind != other.Kind || len(d.Parameters) != len(other.Parameters) {
		return false
	}
	for i, p := range d.Parameters {
		if other.Parameters[i] != p {
			return false
		}
	}
	return string(d.Body) == string(other.Body)
}

// Table is the set of macro definitions active in a translation unit,
// keyed by name. Redefinition is tolerated: the new definition replaces
// the old one, and the caller decides whether to diagnose it.
type Table struct {
	definitions map[string]Definition
}

// NewTable returns an empty macro table.
func NewTable() *Table {
	return &Table{definitions: make(map[string]Definition)}
}

// Lookup returns the definition for name, if any.
func (t *Table) Lookup(name string) (Definition, bool) {
	d, ok := t.definitions[name]
	return d, ok
}

// Define installs def, replacing any prior definition of the same
// name. It reports whether a prior, textually different definition
// existed (the caller is responsible for the "redefined" diagnostic).
func (t *Table) Define(def Definition) (redefined bool) {
	if prev, ok := t.definitions[def.Name]; ok && !prev.sameAs(def) {
		redefined = true
	}
	t.definitions[def.Name] = def
	return redefined
}
