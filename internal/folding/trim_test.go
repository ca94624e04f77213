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

package folding

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestTrimFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    " \t\n ",
			expected: "",
		},
		{
			name:     "leading and trailing",
			input:    "  cat\t",
			expected: "cat",
		},
		{
			name:     "internal whitespace kept",
			input:    " ice  cream ",
			expected: "ice  cream",
		},
		{
			name:     "unicode whitespace",
			input:    "　猫 ",
			expected: "猫",
		},
		{
			name:     "long internal span",
			input:    "a" + strings.Repeat(" ", 300) + "b",
			expected: "a" + strings.Repeat(" ", 300) + "b",
		},
		{
			name:     "long input",
			input:    strings.Repeat("слово ", 100),
			expected: strings.TrimSpace(strings.Repeat("слово ", 100)),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(&TrimFolder{}, test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("TrimFolder (-want, +got):\n%s", diff)
			}
		})
	}
}
