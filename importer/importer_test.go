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

package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/csvfile"
	"github.com/ianlewis/go-lexicon/internal/testutil"
	"github.com/ianlewis/go-lexicon/query"
	"github.com/ianlewis/go-lexicon/store/memory"
)

func rows(text string) RowReader {
	return csvfile.NewReader(strings.NewReader(text), ';')
}

// recordingStore records the order of store calls and optionally fails one.
type recordingStore struct {
	calls  []string
	failOn string
}

func (s *recordingStore) call(name string) error {
	s.calls = append(s.calls, name)
	if name == s.failOn {
		return errors.New("disk I/O error")
	}
	return nil
}

func (s *recordingStore) DeleteAllLanguages(context.Context) error {
	return s.call("delete languages")
}

func (s *recordingStore) DeleteAllRecords(context.Context) error {
	return s.call("delete records")
}

func (s *recordingStore) InsertLanguages(context.Context, []lexicon.Language) error {
	return s.call("insert languages")
}

func (s *recordingStore) InsertRecords(context.Context, []lexicon.Record) error {
	return s.call("insert records")
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected *Dataset
	}{
		{
			name:  "basic",
			input: "en;fr\ncat;chat\ndog;chien\n",
			expected: &Dataset{
				Languages: []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}},
				Records: []lexicon.Record{
					{SourceText: "cat", TargetLanguageID: 1, Value: "chat"},
					{SourceText: "dog", TargetLanguageID: 1, Value: "chien"},
				},
			},
		},
		{
			name:  "source normalized and values raw",
			input: "en;fr;de\n  Cat ; chat ;\n",
			expected: &Dataset{
				Languages: []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}, {ID: 2, Name: "de"}},
				Records: []lexicon.Record{
					{SourceText: "cat", TargetLanguageID: 1, Value: " chat "},
					{SourceText: "cat", TargetLanguageID: 2, Value: ""},
				},
			},
		},
		{
			name:  "rows without source skipped",
			input: "en;fr\n;chat\n  ;chien\ndog;chien\n",
			expected: &Dataset{
				Languages: []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}},
				Records: []lexicon.Record{
					{SourceText: "dog", TargetLanguageID: 1, Value: "chien"},
				},
				Skipped: 2,
			},
		},
		{
			name:  "short and long rows without source skipped",
			input: "en;fr;de\n;\ncat;chat;Katze\n;a;b;c\n",
			expected: &Dataset{
				Languages: []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}, {ID: 2, Name: "de"}},
				Records: []lexicon.Record{
					{SourceText: "cat", TargetLanguageID: 1, Value: "chat"},
					{SourceText: "cat", TargetLanguageID: 2, Value: "Katze"},
				},
				Skipped: 2,
			},
		},
		{
			name:  "header only",
			input: "en;fr\n",
			expected: &Dataset{
				Languages: []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}},
			},
		},
		{
			name:  "byte order mark",
			input: testutil.UTF8BOM + "en;fr\ncat;chat\n",
			expected: &Dataset{
				Languages: []lexicon.Language{{ID: 0, Name: "en"}, {ID: 1, Name: "fr"}},
				Records: []lexicon.Record{
					{SourceText: "cat", TargetLanguageID: 1, Value: "chat"},
				},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			ds, err := Build(rows(test.input))
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if diff := cmp.Diff(test.expected, ds); diff != "" {
				t.Fatalf("Build (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		err   error
		word  string
	}{
		{
			name:  "empty file",
			input: "",
			err:   lexicon.ErrEmptyFile,
		},
		{
			name:  "byte order mark only",
			input: testutil.UTF8BOM,
			err:   lexicon.ErrEmptyFile,
		},
		{
			name:  "single column",
			input: "en\ncat\n",
			err:   lexicon.ErrInsufficientLanguages,
		},
		{
			name:  "long row names its word",
			input: "en;fr\ncat;chat\ndog;chien;hund\n",
			err:   lexicon.ErrFieldCount,
			word:  "dog",
		},
		{
			name:  "short row names its word",
			input: "en;fr;de\ncat;chat;Katze\ndog;chien\n",
			err:   lexicon.ErrFieldCount,
			word:  "dog",
		},
		{
			name:  "bad quote in first row",
			input: "en;fr\n\"cat;chat\n",
			err:   csv.ErrQuote,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Build(rows(test.input))
			if !errors.Is(err, test.err) {
				t.Fatalf("Build: want %v, got %v", test.err, err)
			}

			var rowErr *lexicon.RowError
			if errors.As(err, &rowErr) && rowErr.Word != test.word {
				t.Fatalf("RowError.Word: want %q, got %q", test.word, rowErr.Word)
			}
		})
	}
}

// sliceRows is a RowReader over rows that may have varying lengths.
type sliceRows [][]string

func (r *sliceRows) Read() ([]string, error) {
	if len(*r) == 0 {
		return nil, io.EOF
	}
	row := (*r)[0]
	*r = (*r)[1:]
	return row, nil
}

func TestBuild_shortRow(t *testing.T) {
	t.Parallel()

	r := sliceRows{{"en", "fr", "de"}, {"cat", "chat", "Katze"}, {"dog", "chien"}}
	_, err := Build(&r)

	var rowErr *lexicon.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("Build: want RowError, got %v", err)
	}
	if rowErr.Word != "dog" {
		t.Fatalf("RowError.Word: want %q, got %q", "dog", rowErr.Word)
	}
}

func TestReplace_order(t *testing.T) {
	t.Parallel()

	s := &recordingStore{}
	if err := Replace(context.Background(), s, &Dataset{}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	want := []string{"delete languages", "delete records", "insert languages", "insert records"}
	if diff := cmp.Diff(want, s.calls); diff != "" {
		t.Fatalf("calls (-want, +got):\n%s", diff)
	}
}

func TestImporter_Import_storageError(t *testing.T) {
	t.Parallel()

	s := &recordingStore{failOn: "insert languages"}
	_, err := New(s, nil).Import(context.Background(), rows("en;fr\ncat;chat\n"))

	var sErr *lexicon.StorageError
	if !errors.As(err, &sErr) {
		t.Fatalf("Import: want StorageError, got %v", err)
	}
	if sErr.Op != "insert languages" {
		t.Fatalf("StorageError.Op: want %q, got %q", "insert languages", sErr.Op)
	}

	// Later steps do not run.
	want := []string{"delete languages", "delete records", "insert languages"}
	if diff := cmp.Diff(want, s.calls); diff != "" {
		t.Fatalf("calls (-want, +got):\n%s", diff)
	}
}

func TestImporter_Import_parseErrorKeepsStore(t *testing.T) {
	t.Parallel()

	s := &recordingStore{}
	_, err := New(s, nil).Import(context.Background(), rows("en\n"))
	if !errors.Is(err, lexicon.ErrInsufficientLanguages) {
		t.Fatalf("Import: want ErrInsufficientLanguages, got %v", err)
	}
	if len(s.calls) != 0 {
		t.Fatalf("store modified after parse failure: %v", s.calls)
	}
}

func TestImporter_Import_roundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	text := testutil.MakeWordList(";",
		[]string{"en", "fr", "de", "fr"},
		[]string{"Cat", "chat", "Katze", " chat "},
		[]string{"dog", "chien", "", "toutou"},
		[]string{"", "rien", "nichts", ""},
	)

	s := memory.New()
	im := New(s, nil)
	e := query.New(s, nil)

	var first []query.Entry
	// Importing twice gives the same results.
	for i := 0; i < 2; i++ {
		stats, err := im.Import(ctx, rows(text))
		if err != nil {
			t.Fatalf("Import #%d: %v", i, err)
		}
		if stats.Languages != 4 || stats.Records != 6 || stats.Skipped != 1 {
			t.Fatalf("Import #%d: unexpected stats %+v", i, stats)
		}

		result, err := e.Search(ctx, "cat")
		if err != nil {
			t.Fatalf("Search #%d: %v", i, err)
		}
		want := []query.Translation{
			{Language: "de", Value: "Katze"},
			{Language: "fr", Value: "chat"},
		}
		if diff := cmp.Diff(want, result.Exact.Translations); diff != "" {
			t.Fatalf("Search #%d (-want, +got):\n%s", i, diff)
		}

		entries, err := e.Search(ctx, "do")
		if err != nil {
			t.Fatalf("Search #%d: %v", i, err)
		}
		if i == 0 {
			first = entries.Entries()
			continue
		}
		if diff := cmp.Diff(first, entries.Entries(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("re-import changed results (-want, +got):\n%s", diff)
		}
	}
}

func TestImporter_ImportFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	text := []byte("en,fr\ncat,chat\n")

	t.Run("delimiter option", func(t *testing.T) {
		t.Parallel()

		s := memory.New()
		stats, err := New(s, &Options{Delimiter: ','}).ImportFile(ctx, "words.CSV", text)
		if err != nil {
			t.Fatalf("ImportFile: %v", err)
		}
		if stats.Records != 1 {
			t.Fatalf("ImportFile: want 1 record, got %d", stats.Records)
		}
	})

	t.Run("dictzip", func(t *testing.T) {
		t.Parallel()

		s := memory.New()
		content := testutil.MakeDictZip(t, text)
		if _, err := New(s, &Options{Delimiter: ','}).ImportFile(ctx, "words.csv.dz", content); err != nil {
			t.Fatalf("ImportFile: %v", err)
		}
		records, err := s.FindExact(ctx, "cat")
		if err != nil {
			t.Fatalf("FindExact: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("FindExact: want 1 record, got %d", len(records))
		}
	})

	t.Run("invalid file type", func(t *testing.T) {
		t.Parallel()

		s := &recordingStore{}
		_, err := New(s, nil).ImportFile(ctx, "words.txt", text)
		if !errors.Is(err, lexicon.ErrInvalidFileType) {
			t.Fatalf("ImportFile: want ErrInvalidFileType, got %v", err)
		}
		if len(s.calls) != 0 {
			t.Fatalf("store modified: %v", s.calls)
		}
	})
}
