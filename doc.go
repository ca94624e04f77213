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

// Package lexicon implements a multilingual word list that is imported from
// delimited text files and searched by exact, prefix and substring match.
//
// A word list file contains:
//  1. A header row naming one language per column. The first column is the
//     source language and the remaining columns are target languages.
//  2. Data rows holding a source word followed by its translation into each
//     target language.
//
// Source words and queries are compared after normalization (see
// [Normalize]). Imported data is held by a store (see the store/sqlite and
// store/memory packages), written by the importer package and read by the
// query package.
package lexicon
