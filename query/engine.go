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

// Package query implements tiered search over a word list store.
//
// A query is normalized and matched against source words in three tiers:
//  1. Exact: the source word equals the query.
//  2. Prefix: the source word starts with the query but is not equal to it.
//     Only for queries longer than one character.
//  3. Substring: the source word contains the query but does not start with
//     it. Only for queries longer than two characters.
//
// Prefix and substring tiers return at most [TierLimit] records each.
package query

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-lexicon"
)

// TierLimit is the maximum number of records retrieved for the prefix and
// substring tiers.
const TierLimit = 50

const (
	// minPrefixLen is the minimum query length in runes for the prefix tier.
	minPrefixLen = 2

	// minSubstringLen is the minimum query length in runes for the substring
	// tier.
	minSubstringLen = 3
)

// Store is the part of the store contract used by the Engine.
type Store interface {
	Languages(ctx context.Context) ([]lexicon.Language, error)
	FindExact(ctx context.Context, text string) ([]lexicon.Record, error)
	FindPrefix(ctx context.Context, text string, excludeExact bool, limit int) ([]lexicon.Record, error)
	FindSubstring(ctx context.Context, text string, excludePrefix bool, limit int) ([]lexicon.Record, error)
}

// Engine searches a store. It keeps no state between searches.
type Engine struct {
	store Store
	log   *slog.Logger
}

// New returns a new Engine reading from store. If log is nil slog.Default()
// is used.
func New(store Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store: store,
		log:   log,
	}
}

// Search searches the store for rawQuery.
//
// An empty query (after normalization) returns a Result with
// [OutcomeEmptyQuery]. If no tier matches the Result has [OutcomeNoMatch].
// Errors from the store are returned as is. A record referencing a missing
// language results in a [*lexicon.UnknownLanguageError].
func (e *Engine) Search(ctx context.Context, rawQuery string) (*Result, error) {
	q := lexicon.Normalize(rawQuery)
	if q == "" {
		return &Result{Outcome: OutcomeEmptyQuery}, nil
	}

	languages, err := e.store.Languages(ctx)
	if err != nil {
		return nil, err
	}

	exact, err := e.store.FindExact(ctx, q)
	if err != nil {
		return nil, err
	}

	n := utf8.RuneCountInString(q)

	var prefix []lexicon.Record
	if n >= minPrefixLen {
		prefix, err = e.store.FindPrefix(ctx, q, true, TierLimit)
		if err != nil {
			return nil, err
		}
	}

	var substring []lexicon.Record
	if n >= minSubstringLen {
		substring, err = e.store.FindSubstring(ctx, q, true, TierLimit)
		if err != nil {
			return nil, err
		}
	}

	e.log.Debug("search",
		slog.String("query", q),
		slog.Int("exact", len(exact)),
		slog.Int("prefix", len(prefix)),
		slog.Int("substring", len(substring)),
	)

	result := &Result{
		Query:   q,
		Outcome: OutcomeNoMatch,
	}
	if len(exact) == 0 && len(prefix) == 0 && len(substring) == 0 {
		return result, nil
	}
	result.Outcome = OutcomeFound

	if len(exact) > 0 {
		translations, err := Translations(exact, languages)
		if err != nil {
			return nil, err
		}
		result.Exact = &Group{
			Word:         q,
			Tier:         TierExact,
			Translations: translations,
		}
	}

	result.Prefix, err = groups(TierPrefix, prefix, languages)
	if err != nil {
		return nil, err
	}
	result.Substring, err = groups(TierSubstring, substring, languages)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// groups groups records by source text. Groups are ordered by source text.
func groups(tier Tier, records []lexicon.Record, languages []lexicon.Language) ([]Group, error) {
	if len(records) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b lexicon.Record) int {
		return strings.Compare(a.SourceText, b.SourceText)
	})

	var out []Group
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].SourceText == sorted[i].SourceText {
			j++
		}

		translations, err := Translations(sorted[i:j], languages)
		if err != nil {
			return nil, err
		}
		out = append(out, Group{
			Word:         sorted[i].SourceText,
			Tier:         tier,
			Translations: translations,
		})
		i = j
	}
	return out, nil
}

// Translations converts records of a single source word into translations.
// Values are trimmed and empty values dropped. Duplicate (language, value)
// pairs are removed. Translations are ordered by language name and then
// value. SameLanguage is set on every translation whose language equals that
// of the previous one.
func Translations(records []lexicon.Record, languages []lexicon.Language) ([]Translation, error) {
	var out []Translation
	for _, r := range records {
		name, err := lexicon.LanguageName(languages, r.TargetLanguageID)
		if err != nil {
			return nil, err
		}
		value := strings.TrimSpace(r.Value)
		if value == "" {
			continue
		}
		out = append(out, Translation{Language: name, Value: value})
	}

	slices.SortFunc(out, func(a, b Translation) int {
		if c := strings.Compare(a.Language, b.Language); c != 0 {
			return c
		}
		return strings.Compare(a.Value, b.Value)
	})
	out = slices.Compact(out)

	for i := 1; i < len(out); i++ {
		out[i].SameLanguage = out[i].Language == out[i-1].Language
	}
	return out, nil
}
