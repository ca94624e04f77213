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

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/internal/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Store {
		return newTestStore(t)
	})
}

func TestStore_persisted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lexicon.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.InsertLanguages(ctx, []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}}))
	require.NoError(t, s.InsertRecords(ctx, []lexicon.Record{{SourceText: "cat", TargetLanguageID: 1, Value: "chat"}}))
	require.NoError(t, s.Close())

	// Reopening runs the schema again and keeps the data.
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	records, err := s.FindExact(ctx, "cat")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "chat", records[0].Value)
}

func TestStore_manyRecords(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	records := make([]lexicon.Record, 3*batchSize+7)
	for i := range records {
		records[i] = lexicon.Record{SourceText: "word", TargetLanguageID: 1, Value: "v"}
	}
	require.NoError(t, s.InsertRecords(ctx, records))

	got, err := s.FindExact(ctx, "word")
	require.NoError(t, err)
	require.Len(t, got, len(records))
}

func TestStore_closed(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.FindExact(ctx, "cat")
	require.ErrorIs(t, err, lexicon.ErrStorage)
}
