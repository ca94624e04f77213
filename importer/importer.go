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

// Package importer converts word list rows into languages and records and
// replaces the contents of a store with them.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/csvfile"
)

// RowReader is a source of word list rows. Read returns [io.EOF] after the
// last row.
type RowReader interface {
	Read() ([]string, error)
}

// Store is the part of the store contract used to replace imported data.
type Store interface {
	DeleteAllLanguages(ctx context.Context) error
	DeleteAllRecords(ctx context.Context) error
	InsertLanguages(ctx context.Context, languages []lexicon.Language) error
	InsertRecords(ctx context.Context, records []lexicon.Record) error
}

// Dataset is a fully parsed word list.
type Dataset struct {
	// Languages is indexed by column position.
	Languages []lexicon.Language

	// Records holds one record per data row and target language.
	Records []lexicon.Record

	// Skipped is the number of data rows without a source word.
	Skipped int
}

// Build reads all rows and returns the resulting Dataset. The first row is
// the header naming one language per column.
//
// Build returns [lexicon.ErrEmptyFile] if there are no rows and
// [lexicon.ErrInsufficientLanguages] if the header has fewer than two
// columns. Rows with an empty source word are skipped whatever their length.
// Other rows must have as many fields as the header. Errors reading or
// converting data rows are returned as a [*lexicon.RowError] naming the last
// source word that was being processed.
func Build(rows RowReader) (*Dataset, error) {
	header, err := rows.Read()
	if errors.Is(err, io.EOF) {
		return nil, lexicon.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: found %d column(s)", lexicon.ErrInsufficientLanguages, len(header))
	}

	ds := &Dataset{
		Languages: make([]lexicon.Language, len(header)),
	}
	for i, name := range header {
		ds.Languages[i] = lexicon.Language{ID: i, Name: name}
	}

	var word string
	for {
		row, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &lexicon.RowError{Word: word, Err: err}
		}

		var source string
		if len(row) > 0 {
			source = lexicon.Normalize(row[0])
		}
		if source == "" {
			ds.Skipped++
			continue
		}
		word = source

		if len(row) != len(header) {
			return nil, &lexicon.RowError{
				Word: word,
				Err:  fmt.Errorf("%w: expected %d, got %d", lexicon.ErrFieldCount, len(header), len(row)),
			}
		}

		for i := 1; i < len(header); i++ {
			ds.Records = append(ds.Records, lexicon.Record{
				SourceText:       source,
				TargetLanguageID: i,
				Value:            row[i],
			})
		}
	}

	return ds, nil
}

// Replace deletes all languages and records in the store and inserts those of
// ds. The steps run in a fixed order: delete languages, delete records,
// insert languages, insert records. Steps are not transactional. If a step
// fails the store may be left empty until the next successful import.
func Replace(ctx context.Context, store Store, ds *Dataset) error {
	if err := store.DeleteAllLanguages(ctx); err != nil {
		return storageErr("delete languages", err)
	}
	if err := store.DeleteAllRecords(ctx); err != nil {
		return storageErr("delete records", err)
	}
	if err := store.InsertLanguages(ctx, ds.Languages); err != nil {
		return storageErr("insert languages", err)
	}
	if err := store.InsertRecords(ctx, ds.Records); err != nil {
		return storageErr("insert records", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	var sErr *lexicon.StorageError
	if errors.As(err, &sErr) {
		return err
	}
	return &lexicon.StorageError{Op: op, Err: err}
}

// Stats describes a completed import.
type Stats struct {
	// ID identifies the import in logs.
	ID uuid.UUID

	Languages int
	Records   int
	Skipped   int
	Duration  time.Duration
}

// Options are options for an Importer.
type Options struct {
	// Delimiter is the field delimiter of imported files.
	Delimiter rune

	// Logger receives import progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions is the default options for an Importer.
var DefaultOptions = &Options{
	Delimiter: csvfile.DefaultDelimiter,
}

// Importer imports word lists into a store.
type Importer struct {
	store Store
	delim rune
	log   *slog.Logger
}

// New returns a new Importer writing to store.
func New(store Store, options *Options) *Importer {
	if options == nil {
		options = DefaultOptions
	}

	im := &Importer{
		store: store,
		delim: DefaultOptions.Delimiter,
		log:   options.Logger,
	}
	if options.Delimiter != 0 {
		im.delim = options.Delimiter
	}
	if im.log == nil {
		im.log = slog.Default()
	}
	return im
}

// Import builds a Dataset from rows and replaces the store contents with it.
// The store is only modified after all rows were read successfully.
func (im *Importer) Import(ctx context.Context, rows RowReader) (*Stats, error) {
	start := time.Now()
	stats := &Stats{ID: uuid.New()}
	log := im.log.With(slog.String("import_id", stats.ID.String()))

	ds, err := Build(rows)
	if err != nil {
		log.Warn("import failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("replacing store contents",
		slog.Int("languages", len(ds.Languages)),
		slog.Int("records", len(ds.Records)),
	)
	if err := Replace(ctx, im.store, ds); err != nil {
		log.Error("replacing store contents failed", slog.String("error", err.Error()))
		return nil, err
	}

	stats.Languages = len(ds.Languages)
	stats.Records = len(ds.Records)
	stats.Skipped = ds.Skipped
	stats.Duration = time.Since(start)

	log.Info("import completed",
		slog.Int("languages", stats.Languages),
		slog.Int("records", stats.Records),
		slog.Int("skipped", stats.Skipped),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// ImportFile imports the named file's contents. The file name must have a
// supported extension (see [csvfile.CheckFileType]).
func (im *Importer) ImportFile(ctx context.Context, name string, content []byte) (*Stats, error) {
	r, err := csvfile.Open(name, content, im.delim)
	if err != nil {
		return nil, err
	}
	im.log.Debug("importing file", slog.String("file", name), slog.Int("bytes", len(content)))
	return im.Import(ctx, r)
}
