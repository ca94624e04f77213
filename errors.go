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

package lexicon

import (
	"errors"
	"fmt"
)

// ErrLexicon is a parent error for all lexicon errors.
var ErrLexicon = errors.New("lexicon")

var (
	// ErrEmptyFile indicates that an imported file has no rows.
	ErrEmptyFile = fmt.Errorf("%w: empty file", ErrLexicon)

	// ErrInsufficientLanguages indicates that an imported file has fewer
	// than two columns.
	ErrInsufficientLanguages = fmt.Errorf("%w: at least two languages are required", ErrLexicon)

	// ErrFieldCount indicates that a data row does not have as many fields
	// as the header.
	ErrFieldCount = fmt.Errorf("%w: wrong number of fields", ErrLexicon)

	// ErrInvalidFileType indicates that a file does not have a supported
	// extension.
	ErrInvalidFileType = fmt.Errorf("%w: invalid file type", ErrLexicon)

	// ErrUnknownLanguage indicates that a record references a language that
	// is not in the store.
	ErrUnknownLanguage = fmt.Errorf("%w: unknown language", ErrLexicon)

	// ErrStorage indicates a failure of the underlying store.
	ErrStorage = fmt.Errorf("%w: storage", ErrLexicon)
)

// RowError is an error that occurred while converting a data row into
// records. Word is the last source word whose row processing began. It is
// empty if the failure happened before the first data row.
type RowError struct {
	Word string
	Err  error
}

func (e *RowError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("processing row: %v", e.Err)
	}
	return fmt.Sprintf("processing word %q: %v", e.Word, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// UnknownLanguageError is returned when a record's TargetLanguageID does not
// match any Language. It means the store is inconsistent.
type UnknownLanguageError struct {
	ID int
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("%v: id %d", ErrUnknownLanguage, e.ID)
}

func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// StorageError wraps an error returned by a store operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrStorage, e.Op, e.Err)
}

// Unwrap returns both ErrStorage and the underlying error so that callers can
// match on either.
func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
