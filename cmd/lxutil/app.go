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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-lexicon/internal/app"
	"github.com/ianlewis/go-lexicon/internal/config"
	"github.com/ianlewis/go-lexicon/internal/logging"
	"github.com/ianlewis/go-lexicon/render"
	"github.com/ianlewis/go-lexicon/store/memory"
	"github.com/ianlewis/go-lexicon/store/sqlite"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrLxutil is a parent error for all command errors.
var ErrLxutil = errors.New("lxutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrLxutil)

// ErrOperation indicates that an operation reported a failure status.
var ErrOperation = fmt.Errorf("%w: operation failed", ErrLxutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

// envKey is the cli.App metadata key of the command environment.
const envKey = "env"

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `lxutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// store is the store contract needed by the command.
type store interface {
	app.Store
	Close() error
}

// environment holds the resources shared by commands.
type environment struct {
	cfg      *config.Config
	log      *slog.Logger
	store    store
	app      *app.App
	renderer *render.Renderer
}

func envFrom(c *cli.Context) *environment {
	env, ok := c.App.Metadata[envKey].(*environment)
	if !ok {
		panic("lxutil: environment not initialized")
	}
	return env
}

// loadConfig loads the configuration file and environment and applies
// command line flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("driver") {
		cfg.Database.Driver = c.String("driver")
	}
	if c.IsSet("delimiter") {
		cfg.Import.Delimiter = c.String("delimiter")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	if cfg.Database.Driver == config.DriverSQLite && cfg.Database.Path == "" {
		cfg.Database.Path = dataLocation()
	}

	return cfg, nil
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrLxutil, cfg.Driver)
	}
}

// setup initializes the command environment before a command runs.
func setup(c *cli.Context) error {
	// Commands are not needed for help and version.
	if c.Args().Len() == 0 {
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logging.New(c.App.ErrWriter, cfg.Log)

	s, err := openStore(c.Context, cfg.Database)
	if err != nil {
		return err
	}
	log.Debug("store opened",
		slog.String("driver", cfg.Database.Driver),
		slog.String("path", cfg.Database.Path),
	)

	renderer := render.New(c.App.Writer, &render.Options{
		Color: !c.Bool("no-color"),
	})

	c.App.Metadata[envKey] = &environment{
		cfg:   cfg,
		log:   log,
		store: s,
		app: app.New(s, &app.Options{
			Delimiter: cfg.Import.DelimiterRune(),
			Logger:    log,
			Progress:  renderer.Status,
		}),
		renderer: renderer,
	}

	return nil
}

// teardown releases the command environment.
func teardown(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*environment)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, envKey)

	if err := env.store.Close(); err != nil {
		return fmt.Errorf("%w: closing store: %w", ErrLxutil, err)
	}
	return nil
}

func newLexiconApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search multilingual word lists.",
		Description: strings.Join([]string{
			"Word list translation utility written in Go.",
			"http://github.com/ianlewis/go-lexicon",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from YAML `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"LEXICON_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "store the word list in the SQLite database `FILE`",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "storage `DRIVER` (sqlite or memory)",
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "field `DELIM` of imported files",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text or json)",
			},
			&cli.BoolFlag{
				Name:               "no-color",
				Usage:              "disable colored output",
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Metadata:        map[string]interface{}{},
		Before:          setup,
		After:           teardown,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			importCommand,
			resetCommand,
			searchCommand,
			languagesCommand,
			shellCommand,
		},
	}
}
