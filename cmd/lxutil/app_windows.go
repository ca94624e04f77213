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

//go:build windows

package main

import (
	"os"
	"path/filepath"
)

// dbFileName is the name of the default database file.
const dbFileName = "lexicon.db"

// dataLocation returns the default database path.
func dataLocation() string {
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, "lexicon", dbFileName)
	}

	if execPath, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(execPath), dbFileName)
	}

	return dbFileName
}
