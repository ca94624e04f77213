// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index implements a sorted in-memory index keyed by string.
package index

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index is a generic sorted array index. Values are ordered by their String
// value using strings.Compare. Values with equal keys keep their original
// relative order.
type Index[V fmt.Stringer] struct {
	index []V
}

// NewIndex creates an index from the given slice.
func NewIndex[V fmt.Stringer](values []V) *Index[V] {
	sorted := make([]V, len(values))
	copy(sorted, values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return strings.Compare(a.String(), b.String())
	})

	return &Index[V]{
		index: sorted,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// All returns all values in key order.
func (idx *Index[V]) All() []V {
	return idx.index
}

// Search performs a binary search over the index and returns values whose key
// equals query.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return strings.Compare(query, idx.index[i].String())
	})

	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && idx.index[j].String() == query; j++ {
	}
	return idx.index[i:j]
}

// Prefix returns values whose key starts with prefix, in key order. Keys are
// sorted so all matches form one contiguous run.
func (idx *Index[V]) Prefix(prefix string) []V {
	i := sort.Search(len(idx.index), func(i int) bool {
		return strings.Compare(idx.index[i].String(), prefix) >= 0
	})

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && strings.HasPrefix(idx.index[j].String(), prefix); j++ {
	}
	if i == j {
		return nil
	}
	return idx.index[i:j]
}
