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

package csvfile_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/csvfile"
	"github.com/ianlewis/go-lexicon/internal/testutil"
)

func readAll(t *testing.T, r *csvfile.Reader) ([][]string, error) {
	t.Helper()

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func TestCheckFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		ok   bool
	}{
		{name: "csv", file: "words.csv", ok: true},
		{name: "upper case", file: "WORDS.CSV", ok: true},
		{name: "dictzip", file: "words.csv.dz", ok: true},
		{name: "text", file: "words.txt", ok: false},
		{name: "no extension", file: "csv", ok: false},
		{name: "bare dictzip", file: "words.dz", ok: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := csvfile.CheckFileType(test.file)
			if test.ok && err != nil {
				t.Fatalf("CheckFileType(%q): %v", test.file, err)
			}
			if !test.ok && !errors.Is(err, lexicon.ErrInvalidFileType) {
				t.Fatalf("CheckFileType(%q): want ErrInvalidFileType, got %v", test.file, err)
			}
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected rune
		err      bool
	}{
		{name: "semicolon", input: ";", expected: ';'},
		{name: "comma", input: ",", expected: ','},
		{name: "escaped tab", input: `\t`, expected: '\t'},
		{name: "empty", input: "", err: true},
		{name: "two runes", input: ";;", err: true},
		{name: "quote", input: `"`, err: true},
		{name: "newline", input: "\n", err: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := csvfile.ParseDelimiter(test.input)
			if test.err {
				if err == nil {
					t.Fatalf("ParseDelimiter(%q): expected failure", test.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDelimiter(%q): %v", test.input, err)
			}
			if got != test.expected {
				t.Fatalf("ParseDelimiter(%q): want %q, got %q", test.input, test.expected, got)
			}
		})
	}
}

func TestReader(t *testing.T) {
	t.Parallel()

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("en;fr\ncat;chat\n")
	if err != nil {
		t.Fatalf("encoding UTF-16: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		delim    rune
		expected [][]string
	}{
		{
			name:     "semicolon",
			input:    "en;fr\ncat;chat\ndog;chien\n",
			delim:    ';',
			expected: [][]string{{"en", "fr"}, {"cat", "chat"}, {"dog", "chien"}},
		},
		{
			name:     "utf-8 bom stripped",
			input:    testutil.UTF8BOM + "en;fr\ncat;chat\n",
			delim:    ';',
			expected: [][]string{{"en", "fr"}, {"cat", "chat"}},
		},
		{
			name:     "utf-16 bom detected",
			input:    utf16,
			delim:    ';',
			expected: [][]string{{"en", "fr"}, {"cat", "chat"}},
		},
		{
			name:     "quoted delimiter",
			input:    "en;fr\n\"a;b\";\" c \"\n",
			delim:    ';',
			expected: [][]string{{"en", "fr"}, {"a;b", " c "}},
		},
		{
			name:     "tab delimiter",
			input:    "en\tde\ndog\tHund\n",
			delim:    '\t',
			expected: [][]string{{"en", "de"}, {"dog", "Hund"}},
		},
		{
			name:     "empty",
			input:    "",
			delim:    ';',
			expected: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			rows, err := readAll(t, csvfile.NewReader(strings.NewReader(test.input), test.delim))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if diff := cmp.Diff(test.expected, rows); diff != "" {
				t.Fatalf("Read (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestReader_fieldCount(t *testing.T) {
	t.Parallel()

	// Rows are returned whatever their length.
	r := csvfile.NewReader(strings.NewReader("en;fr\ncat;chat;extra\n;\n"), ';')
	rows, err := readAll(t, r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	expected := [][]string{{"en", "fr"}, {"cat", "chat", "extra"}, {"", ""}}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Fatalf("Read (-want, +got):\n%s", diff)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	text := testutil.MakeWordList(";", []string{"en", "fr"}, []string{"cat", "chat"})

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		r, err := csvfile.Open("words.csv", []byte(text), ';')
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		rows, err := readAll(t, r)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if diff := cmp.Diff([][]string{{"en", "fr"}, {"cat", "chat"}}, rows); diff != "" {
			t.Fatalf("Read (-want, +got):\n%s", diff)
		}
	})

	t.Run("dictzip", func(t *testing.T) {
		t.Parallel()

		r, err := csvfile.Open("words.csv.dz", testutil.MakeDictZip(t, []byte(text)), ';')
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		rows, err := readAll(t, r)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if diff := cmp.Diff([][]string{{"en", "fr"}, {"cat", "chat"}}, rows); diff != "" {
			t.Fatalf("Read (-want, +got):\n%s", diff)
		}
	})

	t.Run("bad extension", func(t *testing.T) {
		t.Parallel()

		if _, err := csvfile.Open("words.xlsx", []byte(text), ';'); !errors.Is(err, lexicon.ErrInvalidFileType) {
			t.Fatalf("Open: want ErrInvalidFileType, got %v", err)
		}
	})
}
