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

// Package csvfile implements reading word list files.
//
// A word list file is delimited text. Fields are separated by a delimiter
// (';' by default) and may be quoted. The file is UTF-8 encoded. A byte order
// mark is detected and honoured, so UTF-16 files carrying one are also read.
// Files ending in ".csv.dz" are compressed with dictzip.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-lexicon"
)

// DefaultDelimiter is the field delimiter used when none is configured.
const DefaultDelimiter = ';'

var extensions = []string{".csv", ".csv.dz"}

// CheckFileType returns an error wrapping [lexicon.ErrInvalidFileType] if the
// file name does not have a supported extension. Extensions are compared
// case-insensitively.
func CheckFileType(name string) error {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", lexicon.ErrInvalidFileType, name)
}

// IsDictZip reports whether the file name indicates dictzip compression.
func IsDictZip(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".dz")
}

// ParseDelimiter parses a delimiter given as a string. The string must hold
// exactly one rune that is usable as a field separator.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character: %q", s)
	}
	if !validDelim(r) {
		return 0, fmt.Errorf("invalid delimiter: %q", s)
	}
	return r, nil
}

func validDelim(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Reader reads rows from a word list file.
type Reader struct {
	r *csv.Reader
}

// NewReader returns a Reader that reads rows from r using the given field
// delimiter. A leading byte order mark selects the text encoding. Without one
// the input is read as UTF-8.
func NewReader(r io.Reader, delim rune) *Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.Comma = delim
	// Field counts are checked by the importer, after rows without a source
	// word are skipped.
	cr.FieldsPerRecord = -1

	return &Reader{r: cr}
}

// Open returns a Reader for the contents of the named file. Compressed
// contents are decompressed first.
func Open(name string, content []byte, delim rune) (*Reader, error) {
	if err := CheckFileType(name); err != nil {
		return nil, err
	}

	if IsDictZip(name) {
		var err error
		content, err = decompress(content)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}
	}

	return NewReader(bytes.NewReader(content), delim), nil
}

// Read returns the next row. It returns [io.EOF] after the last row.
func (r *Reader) Read() ([]string, error) {
	row, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	return row, nil
}

func decompress(content []byte) ([]byte, error) {
	z, err := dictzip.NewReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("opening dictzip data: %w", err)
	}

	b, err := io.ReadAll(io.NewSectionReader(z, 0, math.MaxInt64))
	if err != nil {
		return nil, fmt.Errorf("decompressing dictzip data: %w", err)
	}
	return b, nil
}
