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

// Package sqlite implements a word list store backed by an SQLite database.
//
// The store assumes exclusive access by a single process. Tier lookups return
// records ordered by source text and then ID. Text comparison uses SQLite's
// BINARY collation, which orders UTF-8 text the same way as
// [strings.Compare].
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ianlewis/go-lexicon"
)

//go:embed schema.sql
var schemaSQL string

// batchSize is the number of rows inserted per statement.
const batchSize = 250

var recordColumns = []string{"id", "source_text", "target_language_id", "value"}

// Store is an SQLite backed store.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path and creates the schema if needed.
// The path ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &lexicon.StorageError{Op: "open", Err: err}
	}
	// A single connection serializes access and keeps ":memory:" databases
	// from being opened once per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// CreateSchema creates the tables and indexes if they do not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return &lexicon.StorageError{Op: "create schema", Err: err}
		}
	}
	return nil
}

// Languages returns all languages ordered by ID.
func (s *Store) Languages(ctx context.Context) ([]lexicon.Language, error) {
	query, args, err := sq.Select("id", "name").From("languages").OrderBy("id").ToSql()
	if err != nil {
		return nil, &lexicon.StorageError{Op: "get languages", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &lexicon.StorageError{Op: "get languages", Err: err}
	}
	defer rows.Close()

	var languages []lexicon.Language
	for rows.Next() {
		var l lexicon.Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, &lexicon.StorageError{Op: "get languages", Err: err}
		}
		languages = append(languages, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &lexicon.StorageError{Op: "get languages", Err: err}
	}
	return languages, nil
}

// InsertLanguages inserts languages in a single transaction.
func (s *Store) InsertLanguages(ctx context.Context, languages []lexicon.Language) error {
	err := s.insertBatches(ctx, len(languages), func(i, j int) sq.InsertBuilder {
		b := sq.Insert("languages").Columns("id", "name")
		for _, l := range languages[i:j] {
			b = b.Values(l.ID, l.Name)
		}
		return b
	})
	if err != nil {
		return &lexicon.StorageError{Op: "insert languages", Err: err}
	}
	return nil
}

// DeleteAllLanguages removes all languages.
func (s *Store) DeleteAllLanguages(ctx context.Context) error {
	if err := s.deleteAll(ctx, "languages"); err != nil {
		return &lexicon.StorageError{Op: "delete languages", Err: err}
	}
	return nil
}

// InsertRecords inserts records in a single transaction. IDs are assigned by
// the database and the ID field of the given records is ignored.
func (s *Store) InsertRecords(ctx context.Context, records []lexicon.Record) error {
	err := s.insertBatches(ctx, len(records), func(i, j int) sq.InsertBuilder {
		b := sq.Insert("records").Columns("source_text", "target_language_id", "value")
		for _, r := range records[i:j] {
			b = b.Values(r.SourceText, r.TargetLanguageID, r.Value)
		}
		return b
	})
	if err != nil {
		return &lexicon.StorageError{Op: "insert records", Err: err}
	}
	return nil
}

// DeleteAllRecords removes all records.
func (s *Store) DeleteAllRecords(ctx context.Context) error {
	if err := s.deleteAll(ctx, "records"); err != nil {
		return &lexicon.StorageError{Op: "delete records", Err: err}
	}
	return nil
}

// FindExact returns records whose source text equals text.
func (s *Store) FindExact(ctx context.Context, text string) ([]lexicon.Record, error) {
	q := selectRecords().Where(sq.Eq{"source_text": text})
	records, err := s.queryRecords(ctx, q)
	if err != nil {
		return nil, &lexicon.StorageError{Op: "find exact", Err: err}
	}
	return records, nil
}

// FindPrefix returns at most limit records whose source text starts with
// text. If excludeExact is true records whose source text equals text are
// left out. A limit <= 0 means no limit.
func (s *Store) FindPrefix(ctx context.Context, text string, excludeExact bool, limit int) ([]lexicon.Record, error) {
	where := sq.And{sq.Expr("instr(source_text, ?) = 1", text)}
	if excludeExact {
		where = append(where, sq.NotEq{"source_text": text})
	}

	records, err := s.queryRecords(ctx, withLimit(selectRecords().Where(where), limit))
	if err != nil {
		return nil, &lexicon.StorageError{Op: "find prefix", Err: err}
	}
	return records, nil
}

// FindSubstring returns at most limit records whose source text contains
// text. If excludePrefix is true records whose source text starts with text
// are left out. A limit <= 0 means no limit.
func (s *Store) FindSubstring(ctx context.Context, text string, excludePrefix bool, limit int) ([]lexicon.Record, error) {
	// instr returns the 1-based position of the first occurrence, so a
	// position > 1 means the text occurs but not at the start.
	cond := "instr(source_text, ?) > 0"
	if excludePrefix {
		cond = "instr(source_text, ?) > 1"
	}

	records, err := s.queryRecords(ctx, withLimit(selectRecords().Where(sq.Expr(cond, text)), limit))
	if err != nil {
		return nil, &lexicon.StorageError{Op: "find substring", Err: err}
	}
	return records, nil
}

// IsEmpty reports whether the store holds no records.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").From("records").ToSql()
	if err != nil {
		return false, &lexicon.StorageError{Op: "count records", Err: err}
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, &lexicon.StorageError{Op: "count records", Err: err}
	}
	return n == 0, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func selectRecords() sq.SelectBuilder {
	return sq.Select(recordColumns...).From("records").OrderBy("source_text", "id")
}

func withLimit(b sq.SelectBuilder, limit int) sq.SelectBuilder {
	if limit > 0 {
		return b.Limit(uint64(limit))
	}
	return b
}

func (s *Store) queryRecords(ctx context.Context, b sq.SelectBuilder) ([]lexicon.Record, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []lexicon.Record
	for rows.Next() {
		var r lexicon.Record
		var value sql.NullString
		if err := rows.Scan(&r.ID, &r.SourceText, &r.TargetLanguageID, &value); err != nil {
			return nil, err
		}
		r.Value = value.String
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) deleteAll(ctx context.Context, table string) error {
	query, args, err := sq.Delete(table).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// insertBatches runs the insert statements built by build for the ranges
// [i, j) of n rows inside one transaction.
func (s *Store) insertBatches(ctx context.Context, n int, build func(i, j int) sq.InsertBuilder) error {
	if n == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		// Rollback is a no-op after Commit.
		_ = tx.Rollback()
	}()

	for i := 0; i < n; i += batchSize {
		j := min(i+batchSize, n)
		query, args, err := build(i, j).ToSql()
		if err != nil {
			return fmt.Errorf("building insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
