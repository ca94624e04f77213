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

// Package memory implements an in-memory word list store. Contents are lost
// when the process exits.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/internal/index"
)

// Store is an in-memory store. Records are kept sorted by source text so tier
// lookups return records ordered by source text and then ID, matching the
// SQLite store.
type Store struct {
	mu        sync.RWMutex
	languages []lexicon.Language
	records   *index.Index[lexicon.Record]
	nextID    int64
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		records: index.NewIndex[lexicon.Record](nil),
	}
}

// CreateSchema implements the store contract. It is a no-op.
func (s *Store) CreateSchema(ctx context.Context) error {
	return ctx.Err()
}

// Languages returns all languages ordered by ID.
func (s *Store) Languages(ctx context.Context) ([]lexicon.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	languages := slices.Clone(s.languages)
	slices.SortFunc(languages, func(a, b lexicon.Language) int {
		return a.ID - b.ID
	})
	return languages, nil
}

// InsertLanguages adds languages to the store. Language IDs must be unique.
// If any ID is already present no language is added.
func (s *Store) InsertLanguages(ctx context.Context, languages []lexicon.Language) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[int]bool, len(s.languages)+len(languages))
	for _, l := range s.languages {
		ids[l.ID] = true
	}
	for _, l := range languages {
		if ids[l.ID] {
			return &lexicon.StorageError{
				Op:  "insert languages",
				Err: fmt.Errorf("duplicate language id %d", l.ID),
			}
		}
		ids[l.ID] = true
	}

	s.languages = append(s.languages, languages...)
	return nil
}

// DeleteAllLanguages removes all languages.
func (s *Store) DeleteAllLanguages(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.languages = nil
	return nil
}

// InsertRecords adds records to the store and assigns their IDs. The ID
// field of the given records is ignored.
func (s *Store) InsertRecords(ctx context.Context, records []lexicon.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := slices.Grow(slices.Clone(s.records.All()), len(records))
	for _, r := range records {
		s.nextID++
		r.ID = s.nextID
		all = append(all, r)
	}
	s.records = index.NewIndex(all)
	return nil
}

// DeleteAllRecords removes all records.
func (s *Store) DeleteAllRecords(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = index.NewIndex[lexicon.Record](nil)
	return nil
}

// FindExact returns records whose source text equals text.
func (s *Store) FindExact(ctx context.Context, text string) ([]lexicon.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records.Search(text)), nil
}

// FindPrefix returns at most limit records whose source text starts with
// text. If excludeExact is true records whose source text equals text are
// left out. A limit <= 0 means no limit.
func (s *Store) FindPrefix(ctx context.Context, text string, excludeExact bool, limit int) ([]lexicon.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []lexicon.Record
	for _, r := range s.records.Prefix(text) {
		if limit > 0 && len(out) >= limit {
			break
		}
		if excludeExact && r.SourceText == text {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// FindSubstring returns at most limit records whose source text contains
// text. If excludePrefix is true records whose source text starts with text
// are left out. A limit <= 0 means no limit.
func (s *Store) FindSubstring(ctx context.Context, text string, excludePrefix bool, limit int) ([]lexicon.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []lexicon.Record
	for _, r := range s.records.All() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !strings.Contains(r.SourceText, text) {
			continue
		}
		if excludePrefix && strings.HasPrefix(r.SourceText, text) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// IsEmpty reports whether the store holds no records.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records.Len() == 0, nil
}

// Close implements the store contract. It is a no-op.
func (s *Store) Close() error {
	return nil
}
