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

// Package render writes lexicon search results and status messages to a
// terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/k3a/html2text"
	"github.com/rodaine/table"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/query"
)

// NotFound is written when a search has no matches.
const NotFound = "not found"

// Options configures a Renderer.
type Options struct {
	// Color enables ANSI styling of headers, source words and status
	// messages.
	Color bool
}

// DefaultOptions are the default Renderer options.
var DefaultOptions = Options{
	Color: true,
}

// Renderer writes output to a terminal.
type Renderer struct {
	w     io.Writer
	color bool

	header color.Style
	word   color.Style
	status color.Style
}

// New returns a Renderer writing to w. If opts is nil DefaultOptions is used.
func New(w io.Writer, opts *Options) *Renderer {
	if opts == nil {
		opts = &DefaultOptions
	}

	return &Renderer{
		w:      w,
		color:  opts.Color,
		header: color.New(color.FgDarkGray, color.OpUnderscore),
		word:   color.New(color.FgGreen, color.OpBold),
		status: color.New(color.FgYellow),
	}
}

func (r *Renderer) formatter(s color.Style) table.Formatter {
	if !r.color {
		return fmt.Sprintf
	}
	return s.Sprintf
}

// Result writes a search result. Nothing is written for an empty query and
// NotFound is written when nothing matched.
func (r *Renderer) Result(res *query.Result) {
	switch res.Outcome {
	case query.OutcomeEmptyQuery:
		return
	case query.OutcomeNoMatch:
		r.Status(NotFound)
		return
	case query.OutcomeFound:
	}

	tbl := table.New("Word", "Language", "Translation").
		WithWriter(r.w).
		WithHeaderFormatter(r.formatter(r.header)).
		WithFirstColumnFormatter(r.formatter(r.word))

	// word is the source word shown on the next line. header is true while
	// a header has no lines yet.
	var word string
	var header bool
	flush := func() {
		if header {
			tbl.AddRow(word, "", "")
			header = false
		}
	}

	for _, e := range res.Entries() {
		switch e.Kind {
		case query.EntryHeader:
			flush()
			word, header = e.Text, true
		case query.EntryLine:
			lang := e.Language
			if e.SameLanguage {
				lang = ""
			}
			tbl.AddRow(word, lang, Text(e.Text))
			word, header = "", false
		case query.EntrySeparator:
			flush()
			tbl.AddRow("", "", "")
		}
	}
	flush()

	tbl.Print()
}

// Languages writes a table of languages.
func (r *Renderer) Languages(languages []lexicon.Language) {
	if len(languages) == 0 {
		r.Status(NotFound)
		return
	}

	tbl := table.New("ID", "Language").
		WithWriter(r.w).
		WithHeaderFormatter(r.formatter(r.header))

	for _, l := range languages {
		tbl.AddRow(strconv.Itoa(l.ID), l.Name)
	}

	tbl.Print()
}

// Status writes a single status message line.
func (r *Renderer) Status(msg string) {
	fmt.Fprintln(r.w, r.formatter(r.status)("%s", msg))
}

// Text converts a stored value to plain text for display. Values containing
// HTML markup or entities are converted with html2text. Other values are
// returned unchanged.
func Text(v string) string {
	if !strings.ContainsAny(v, "<&") {
		return v
	}
	return strings.TrimSpace(html2text.HTML2Text(v))
}
