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

// Package seed holds the bundled default word list.
package seed

import (
	_ "embed"
)

// FileName is the name of the bundled word list.
const FileName = "data.csv"

// Delimiter is the field delimiter of the bundled word list.
const Delimiter = ';'

//go:embed data.csv
var data []byte

// Data returns the contents of the bundled word list.
func Data() []byte {
	return data
}
