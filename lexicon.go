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

// Language is a column of a word list. ID is the column position in the most
// recently imported file. ID 0 is the source language.
type Language struct {
	ID   int
	Name string
}

// Record is the translation of a source word into one target language.
type Record struct {
	// ID is assigned by the store on insert.
	ID int64

	// SourceText is the normalized source word.
	SourceText string

	// TargetLanguageID is the ID of the Language of Value. It is always >= 1.
	TargetLanguageID int

	// Value is the raw cell contents. It may be empty.
	Value string
}

// String implements [fmt.Stringer]. Records are indexed by their source text.
func (r Record) String() string {
	return r.SourceText
}

// LanguageName returns the name of the language with the given ID.
func LanguageName(languages []Language, id int) (string, error) {
	for _, l := range languages {
		if l.ID == id {
			return l.Name, nil
		}
	}
	return "", &UnknownLanguageError{ID: id}
}
