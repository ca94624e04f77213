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

// Package config implements loading the lxutil configuration.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ianlewis/go-lexicon/csvfile"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds store settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"LEXICON_DRIVER" env-default:"sqlite"`

	// Path is the SQLite database file. An empty path selects the default
	// location for the platform.
	Path string `yaml:"path" env:"LEXICON_DB"`
}

// ImportConfig holds word list import settings.
type ImportConfig struct {
	Delimiter string `yaml:"delimiter" env:"LEXICON_DELIMITER" env-default:";"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the YAML file at path and from environment
// variables. Environment variables take precedence over the file, which
// takes precedence over defaults. An empty path loads from the environment
// and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{DriverSQLite, DriverMemory}, c.Database.Driver) {
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}

	if _, err := csvfile.ParseDelimiter(c.Import.Delimiter); err != nil {
		errs = append(errs, fmt.Errorf("import.delimiter: %w", err))
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level: unsupported level %q", c.Log.Level))
	}

	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format: unsupported format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// DelimiterRune returns the configured delimiter. It must only be called on
// a validated configuration.
func (c ImportConfig) DelimiterRune() rune {
	r, err := csvfile.ParseDelimiter(c.Delimiter)
	if err != nil {
		return csvfile.DefaultDelimiter
	}
	return r
}
