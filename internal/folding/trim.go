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

// Package folding implements text transformers used when normalizing words.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// TrimFolder removes whitespace from the beginning and end of the input.
// Internal whitespace is kept as is.
type TrimFolder struct {
	// started is true after encountering the first non-whitespace rune.
	started bool

	// pending holds an internal whitespace span that has been consumed but
	// not yet emitted. It is dropped if the input ends.
	pending []byte
}

// Transform implements [transform.Transformer.Transform].
func (t *TrimFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			if t.started {
				t.pending = append(t.pending, src[nSrc:nSrc+size]...)
			}
			nSrc += size
			continue
		}

		// A non-space rune follows the span so it is internal.
		if len(t.pending) > 0 {
			n := copy(dst[nDst:], t.pending)
			nDst += n
			t.pending = t.pending[n:]
			if len(t.pending) > 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
		}

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
		t.started = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (t *TrimFolder) Reset() {
	*t = TrimFolder{}
}
