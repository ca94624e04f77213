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

// Package testutil implements word list fixtures for tests.
package testutil

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// UTF8BOM is the UTF-8 encoded byte order mark.
const UTF8BOM = "\ufeff"

// MakeWordList joins rows of fields into word list text using delim. Rows are
// terminated by "\n".
func MakeWordList(delim string, rows ...[]string) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Join(r, delim))
		b.WriteString("\n")
	}
	return b.String()
}

// MakeDictZip compresses data with dictzip and returns the compressed bytes.
func MakeDictZip(t *testing.T, data []byte) []byte {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "wordlist.*.csv.dz")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
