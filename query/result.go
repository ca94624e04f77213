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

package query

// Outcome is the kind of a search result.
type Outcome int

const (
	// OutcomeFound means at least one tier matched.
	OutcomeFound Outcome = iota

	// OutcomeEmptyQuery means the query was empty. Displayed results should
	// be cleared.
	OutcomeEmptyQuery

	// OutcomeNoMatch means no tier matched.
	OutcomeNoMatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeEmptyQuery:
		return "empty query"
	case OutcomeNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// Tier is a match level.
type Tier int

const (
	// TierExact matches source words equal to the query.
	TierExact Tier = iota

	// TierPrefix matches source words starting with the query.
	TierPrefix

	// TierSubstring matches source words containing the query elsewhere.
	TierSubstring
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPrefix:
		return "prefix"
	case TierSubstring:
		return "substring"
	default:
		return "unknown"
	}
}

// Translation is a translated value of a source word.
type Translation struct {
	Language string
	Value    string

	// SameLanguage is true if the previous translation in the sequence has
	// the same language. Presentation shows the language label only when it
	// is false.
	SameLanguage bool
}

// Group is the set of translations for one source word.
type Group struct {
	Word         string
	Tier         Tier
	Translations []Translation
}

// Result is the result of a search.
type Result struct {
	// Query is the normalized query.
	Query   string
	Outcome Outcome

	// Exact is the exact match group, headed by the query. It is nil if there
	// was no exact match.
	Exact *Group

	// Prefix and Substring hold groups ordered by source word.
	Prefix    []Group
	Substring []Group
}

// Groups returns all groups in display order: the exact group, then prefix
// groups, then substring groups.
func (r *Result) Groups() []Group {
	var out []Group
	if r.Exact != nil {
		out = append(out, *r.Exact)
	}
	out = append(out, r.Prefix...)
	out = append(out, r.Substring...)
	return out
}

// EntryKind is the kind of a display entry.
type EntryKind int

const (
	// EntryHeader is a source word heading a group.
	EntryHeader EntryKind = iota

	// EntryLine is a translation.
	EntryLine

	// EntrySeparator is a blank line between groups.
	EntrySeparator
)

// Entry is an element of the flat display sequence of a Result.
type Entry struct {
	Kind EntryKind

	// Text is the source word for headers and the value for lines.
	Text string

	// Language and SameLanguage are set for lines.
	Language     string
	SameLanguage bool
}

// Entries returns the display sequence of the result. Each group is a header
// followed by its translation lines. Groups after the first output are
// preceded by a separator.
func (r *Result) Entries() []Entry {
	var out []Entry
	for _, g := range r.Groups() {
		if len(out) > 0 {
			out = append(out, Entry{Kind: EntrySeparator})
		}
		out = append(out, Entry{Kind: EntryHeader, Text: g.Word})
		for _, t := range g.Translations {
			out = append(out, Entry{
				Kind:         EntryLine,
				Text:         t.Value,
				Language:     t.Language,
				SameLanguage: t.SameLanguage,
			})
		}
	}
	return out
}
