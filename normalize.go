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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-lexicon/internal/folding"
)

// Normalize returns s with leading and trailing whitespace removed and
// converted to lower case. Lower casing uses the root (undetermined) locale
// so that results do not depend on the user's locale. Each rune is mapped on
// its own: a word-final capital sigma becomes σ rather than ς, so a
// normalized word is always a prefix of the normalized words it starts.
func Normalize(s string) string {
	t := transform.Chain(
		&folding.TrimFolder{},
		cases.Lower(language.Und, cases.HandleFinalSigma(false)),
	)
	n, _, err := transform.String(t, s)
	if err != nil {
		// Neither transformer reports errors on complete input.
		return s
	}
	return n
}
