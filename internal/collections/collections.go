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

// Package collections holds the generic sequence and set helpers this
// module actually calls: MapSlice below, which preprocessor/cache.go
// uses to turn a function-like macro's pre-expanded argument byte
// slices into the strings a cache key is joined from, and the Set
// type in set.go, which backs the preprocessor's per-expansion-section
// hide sets (preprocessor/hideset.go).
package collections

import (
	"iter"
	"slices"
)

// MapSeq applies fn to each element of seq and returns a sequence of
// the results.
func MapSeq[T, V any](seq iter.Seq[T], fn func(T) V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for t := range seq {
			if !yield(fn(t)) {
				return
			}
		}
	}
}

// MapSlice applies fn to each element of s and returns a new slice of
// the results.
//
// Example (as used by functionLikeCacheKey):
//
//	MapSlice(args, func(a []byte) string { return string(a) })
func MapSlice[TSlice ~[]T, T, V any](s TSlice, fn func(T) V) []V {
	return slices.AppendSeq(make([]V, 0, len(s)), MapSeq(slices.Values(s), fn))
}
