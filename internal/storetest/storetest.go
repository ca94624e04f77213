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

// Package storetest implements a conformance test suite for word list stores.
package storetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-lexicon"
)

// Store is the full store contract.
type Store interface {
	CreateSchema(ctx context.Context) error
	Languages(ctx context.Context) ([]lexicon.Language, error)
	InsertLanguages(ctx context.Context, languages []lexicon.Language) error
	DeleteAllLanguages(ctx context.Context) error
	FindExact(ctx context.Context, text string) ([]lexicon.Record, error)
	FindPrefix(ctx context.Context, text string, excludeExact bool, limit int) ([]lexicon.Record, error)
	FindSubstring(ctx context.Context, text string, excludePrefix bool, limit int) ([]lexicon.Record, error)
	InsertRecords(ctx context.Context, records []lexicon.Record) error
	DeleteAllRecords(ctx context.Context) error
	IsEmpty(ctx context.Context) (bool, error)
	Close() error
}

var testLanguages = []lexicon.Language{
	{ID: 0, Name: "en"},
	{ID: 1, Name: "fr"},
	{ID: 2, Name: "de"},
}

var testRecords = []lexicon.Record{
	{SourceText: "house", TargetLanguageID: 1, Value: "maison"},
	{SourceText: "house", TargetLanguageID: 2, Value: "Haus"},
	{SourceText: "horse", TargetLanguageID: 1, Value: "cheval"},
	{SourceText: "ho", TargetLanguageID: 1, Value: ""},
	{SourceText: "home", TargetLanguageID: 1, Value: "foyer"},
	{SourceText: "shoe", TargetLanguageID: 1, Value: "chaussure"},
	{SourceText: "echo", TargetLanguageID: 1, Value: "écho"},
	{SourceText: "cat", TargetLanguageID: 1, Value: "chat"},
}

// sources returns the source texts of records in order.
func sources(records []lexicon.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.SourceText)
	}
	return out
}

func load(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.InsertLanguages(ctx, testLanguages))
	require.NoError(t, s.InsertRecords(ctx, testRecords))
}

// Run runs the conformance suite. newStore must return a new empty store with
// its schema created.
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("empty", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		empty, err := s.IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		languages, err := s.Languages(ctx)
		require.NoError(t, err)
		require.Empty(t, languages)

		records, err := s.FindExact(ctx, "cat")
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("languages", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		load(t, s)

		languages, err := s.Languages(ctx)
		require.NoError(t, err)
		require.Equal(t, testLanguages, languages)

		require.NoError(t, s.DeleteAllLanguages(ctx))
		languages, err = s.Languages(ctx)
		require.NoError(t, err)
		require.Empty(t, languages)
	})

	t.Run("exact", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		load(t, s)

		records, err := s.FindExact(ctx, "house")
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, "maison", records[0].Value)
		require.Equal(t, "Haus", records[1].Value)
		require.Less(t, records[0].ID, records[1].ID)
		require.Equal(t, 2, records[1].TargetLanguageID)

		records, err = s.FindExact(ctx, "hous")
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("prefix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		load(t, s)

		records, err := s.FindPrefix(ctx, "ho", true, 50)
		require.NoError(t, err)
		require.Equal(t, []string{"home", "horse", "house", "house"}, sources(records))

		records, err = s.FindPrefix(ctx, "ho", false, 50)
		require.NoError(t, err)
		require.Equal(t, []string{"ho", "home", "horse", "house", "house"}, sources(records))

		records, err = s.FindPrefix(ctx, "ho", true, 2)
		require.NoError(t, err)
		require.Equal(t, []string{"home", "horse"}, sources(records))
	})

	t.Run("substring", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		load(t, s)

		records, err := s.FindSubstring(ctx, "ho", true, 50)
		require.NoError(t, err)
		require.Equal(t, []string{"echo", "shoe"}, sources(records))

		records, err = s.FindSubstring(ctx, "ho", false, 50)
		require.NoError(t, err)
		require.Equal(t, []string{"echo", "ho", "home", "horse", "house", "house", "shoe"}, sources(records))

		records, err = s.FindSubstring(ctx, "ho", true, 1)
		require.NoError(t, err)
		require.Equal(t, []string{"echo"}, sources(records))
	})

	t.Run("limit", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var records []lexicon.Record
		for i := 0; i < 120; i++ {
			records = append(records,
				lexicon.Record{SourceText: fmt.Sprintf("word%03d", i), TargetLanguageID: 1, Value: "x"},
				lexicon.Record{SourceText: fmt.Sprintf("sword%03d", i), TargetLanguageID: 1, Value: "y"},
			)
		}
		require.NoError(t, s.InsertLanguages(ctx, testLanguages))
		require.NoError(t, s.InsertRecords(ctx, records))

		got, err := s.FindPrefix(ctx, "word", true, 50)
		require.NoError(t, err)
		require.Len(t, got, 50)
		require.Equal(t, "word000", got[0].SourceText)

		got, err = s.FindSubstring(ctx, "word", true, 50)
		require.NoError(t, err)
		require.Len(t, got, 50)
		require.Equal(t, "sword000", got[0].SourceText)
	})

	t.Run("delete records", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		load(t, s)

		empty, err := s.IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)

		require.NoError(t, s.DeleteAllRecords(ctx))
		empty, err = s.IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		// Inserting again after a delete must not duplicate.
		require.NoError(t, s.InsertRecords(ctx, testRecords))
		records, err := s.FindExact(ctx, "cat")
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("replace all", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		load(t, s)

		require.NoError(t, s.DeleteAllLanguages(ctx))
		require.NoError(t, s.DeleteAllRecords(ctx))
		load(t, s)

		languages, err := s.Languages(ctx)
		require.NoError(t, err)
		require.Equal(t, testLanguages, languages)

		records, err := s.FindExact(ctx, "house")
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("duplicate language", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.InsertLanguages(ctx, testLanguages))

		err := s.InsertLanguages(ctx, []lexicon.Language{{ID: 1, Name: "it"}})
		require.ErrorIs(t, err, lexicon.ErrStorage)

		err = s.InsertLanguages(ctx, []lexicon.Language{
			{ID: 5, Name: "es"},
			{ID: 5, Name: "pt"},
		})
		require.ErrorIs(t, err, lexicon.ErrStorage)

		// Failed inserts leave the languages unchanged.
		languages, err := s.Languages(ctx)
		require.NoError(t, err)
		require.Equal(t, testLanguages, languages)
	})

	t.Run("unicode", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.InsertLanguages(ctx, testLanguages))
		require.NoError(t, s.InsertRecords(ctx, []lexicon.Record{
			{SourceText: "кошка", TargetLanguageID: 1, Value: "chat"},
			{SourceText: "кош", TargetLanguageID: 1, Value: "camp"},
			{SourceText: "окошко", TargetLanguageID: 1, Value: "fenêtre"},
		}))

		records, err := s.FindPrefix(ctx, "кош", true, 50)
		require.NoError(t, err)
		require.Equal(t, []string{"кошка"}, sources(records))

		records, err = s.FindSubstring(ctx, "кош", true, 50)
		require.NoError(t, err)
		require.Equal(t, []string{"окошко"}, sources(records))
	})
}
