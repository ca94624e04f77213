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

// Package app implements the lexicon application operations shared by the
// command line and interactive shell: searching with one-time bootstrap of
// the bundled word list, loading files, resetting to the bundled word list,
// and toggling developer mode.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ianlewis/go-lexicon"
	"github.com/ianlewis/go-lexicon/csvfile"
	"github.com/ianlewis/go-lexicon/importer"
	"github.com/ianlewis/go-lexicon/internal/seed"
	"github.com/ianlewis/go-lexicon/query"
)

// Status messages.
const (
	StatusPleaseWait           = "Please wait"
	StatusLoaded               = "File loaded successfully"
	StatusNotFound             = "not found"
	StatusEmptyFile            = "Error: the file is empty"
	StatusInsufficientLangs    = "Error: at least two languages are required"
	StatusInvalidFileType      = "Error: choose a file with the .csv extension"
	StatusDeveloperToolsShown  = "Developer tools shown.\n\nType \"hide developer tools\" to hide."
	StatusDeveloperToolsHidden = "Developer tools hidden.\n\nType \"show developer tools\" to show."
)

// Sentinel phrases that toggle developer mode instead of searching. They are
// compared with the normalized input.
const (
	ShowDeveloperTools = "show developer tools"
	HideDeveloperTools = "hide developer tools"
)

// Store is the store contract used by the App.
type Store interface {
	importer.Store
	query.Store

	IsEmpty(ctx context.Context) (bool, error)
}

// Response is the result of an App operation.
type Response struct {
	// Status is a human readable status message. It is empty when Result
	// holds matches.
	Status string

	// Result is the search result for Submit. It is nil for other operations
	// and when the search failed.
	Result *query.Result

	// Clear is true if previously displayed output should be cleared.
	Clear bool

	// DeveloperTools reports whether developer mode is enabled after the
	// operation.
	DeveloperTools bool

	// Err is the error that caused a failure. Status holds its message.
	Err error
}

// Options are options for an App.
type Options struct {
	// Delimiter is the field delimiter for loaded files.
	Delimiter rune

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Progress, if set, receives intermediate status messages such as
	// StatusPleaseWait before long running operations.
	Progress func(status string)
}

// App holds application state. Operations are serialized.
type App struct {
	mu sync.Mutex

	// bootstrap guards the empty store check on the first search.
	bootstrap sync.Once

	store    Store
	files    *importer.Importer
	defaults *importer.Importer
	engine   *query.Engine
	log      *slog.Logger
	progress func(string)
	devMode  bool
}

// New returns a new App using store. If opts is nil, defaults are used.
func New(store Store, opts *Options) *App {
	if opts == nil {
		opts = &Options{}
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = csvfile.DefaultDelimiter
	}

	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}

	return &App{
		store: store,
		files: importer.New(store, &importer.Options{
			Delimiter: delim,
			Logger:    log,
		}),
		defaults: importer.New(store, &importer.Options{
			Delimiter: seed.Delimiter,
			Logger:    log,
		}),
		engine:   query.New(store, log),
		log:      log,
		progress: progress,
	}
}

// DeveloperMode reports whether developer mode is enabled.
func (a *App) DeveloperMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.devMode
}

// Languages returns the languages of the loaded word list. Like Submit, it
// imports the bundled word list into an empty store on the first call.
func (a *App) Languages(ctx context.Context) ([]lexicon.Language, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var bootErr error
	a.bootstrap.Do(func() {
		bootErr = a.bootstrapLocked(ctx)
	})
	if bootErr != nil {
		return nil, bootErr
	}

	return a.store.Languages(ctx)
}

// Submit handles text entered by the user.
//
// On the first call, if the store is empty, the bundled word list is
// imported before anything else. This check happens once per App whether or
// not it was needed or succeeded. The developer mode sentinel phrases toggle
// developer mode. Any other text is searched for.
func (a *App) Submit(ctx context.Context, text string) Response {
	a.mu.Lock()
	defer a.mu.Unlock()

	var bootErr error
	a.bootstrap.Do(func() {
		bootErr = a.bootstrapLocked(ctx)
	})
	if bootErr != nil {
		return a.errorResponse(bootErr)
	}

	switch lexicon.Normalize(text) {
	case ShowDeveloperTools:
		a.devMode = true
		a.log.Debug("developer mode enabled")
		return a.response(Response{Clear: true, Status: StatusDeveloperToolsShown})
	case HideDeveloperTools:
		a.devMode = false
		a.log.Debug("developer mode disabled")
		return a.response(Response{Clear: true, Status: StatusDeveloperToolsHidden})
	}

	res, err := a.engine.Search(ctx, text)
	if err != nil {
		a.log.Error("search failed", slog.String("query", text), slog.String("error", err.Error()))
		return a.errorResponse(err)
	}

	switch res.Outcome {
	case query.OutcomeEmptyQuery:
		return a.response(Response{Clear: true, Result: res})
	case query.OutcomeNoMatch:
		return a.response(Response{Clear: true, Result: res, Status: StatusNotFound})
	default:
		return a.response(Response{Clear: true, Result: res})
	}
}

// LoadFile replaces the store contents with the named file's word list.
func (a *App) LoadFile(ctx context.Context, name string, content []byte) Response {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := csvfile.CheckFileType(name); err != nil {
		return a.errorResponse(err)
	}

	a.progress(StatusPleaseWait)
	if _, err := a.files.ImportFile(ctx, name, content); err != nil {
		return a.errorResponse(err)
	}
	return a.response(Response{Status: StatusLoaded})
}

// ResetToDefault replaces the store contents with the bundled word list.
func (a *App) ResetToDefault(ctx context.Context) Response {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.resetLocked(ctx); err != nil {
		return a.errorResponse(err)
	}
	return a.response(Response{Status: StatusLoaded})
}

func (a *App) bootstrapLocked(ctx context.Context) error {
	empty, err := a.store.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}
	a.log.Info("store is empty, importing bundled word list")
	return a.resetLocked(ctx)
}

func (a *App) resetLocked(ctx context.Context) error {
	a.progress(StatusPleaseWait)
	_, err := a.defaults.ImportFile(ctx, seed.FileName, seed.Data())
	return err
}

func (a *App) response(r Response) Response {
	r.DeveloperTools = a.devMode
	return r
}

func (a *App) errorResponse(err error) Response {
	return a.response(Response{Status: StatusMessage(err), Err: err})
}

// StatusMessage converts an error into a status message.
func StatusMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lexicon.ErrEmptyFile):
		return StatusEmptyFile
	case errors.Is(err, lexicon.ErrInsufficientLanguages):
		return StatusInsufficientLangs
	case errors.Is(err, lexicon.ErrInvalidFileType):
		return StatusInvalidFileType
	}

	var rowErr *lexicon.RowError
	if errors.As(err, &rowErr) && rowErr.Word != "" {
		return fmt.Sprintf("Error processing word %q: %v", rowErr.Word, rowErr.Err)
	}

	return "Error: " + err.Error()
}
