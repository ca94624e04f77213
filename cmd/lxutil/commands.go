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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-lexicon/internal/app"
)

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "replace the word list with the contents of FILE",
	ArgsUsage: "FILE",
	Description: strings.Join([]string{
		"FILE is a delimited text file with the extension .csv or .csv.dz.",
		"The first row names one language per column. The first column holds",
		"source words and the remaining columns hold their translations.",
	}, "\n"),
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("%w: expected one FILE argument", ErrFlagParse)
		}
		env := envFrom(c)

		resp, err := loadFile(c, env, c.Args().First())
		if err != nil {
			return err
		}
		return report(env, resp)
	},
}

var resetCommand = &cli.Command{
	Name:  "reset",
	Usage: "replace the word list with the bundled word list",
	Action: func(c *cli.Context) error {
		env := envFrom(c)
		return report(env, env.app.ResetToDefault(c.Context))
	},
}

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search the word list",
	ArgsUsage: "QUERY...",
	Action: func(c *cli.Context) error {
		env := envFrom(c)
		return report(env, env.app.Submit(c.Context, strings.Join(c.Args().Slice(), " ")))
	},
}

var languagesCommand = &cli.Command{
	Name:  "languages",
	Usage: "list the languages of the word list",
	Action: func(c *cli.Context) error {
		env := envFrom(c)

		languages, err := env.app.Languages(c.Context)
		if err != nil {
			env.renderer.Status(app.StatusMessage(err))
			return fmt.Errorf("%w: %w", ErrOperation, err)
		}
		env.renderer.Languages(languages)
		return nil
	},
}

// loadFile reads the named file and loads it into the app.
func loadFile(c *cli.Context, env *environment, name string) (app.Response, error) {
	content, err := os.ReadFile(name)
	if err != nil {
		return app.Response{}, fmt.Errorf("%w: %w", ErrLxutil, err)
	}
	return env.app.LoadFile(c.Context, filepath.Base(name), content), nil
}

// show writes the response.
func show(env *environment, resp app.Response) {
	switch {
	case resp.Result != nil:
		env.renderer.Result(resp.Result)
	case resp.Status != "":
		env.renderer.Status(resp.Status)
	}
}

// report writes the response and returns an error if the operation failed.
func report(env *environment, resp app.Response) error {
	show(env, resp)
	if resp.Err != nil {
		return fmt.Errorf("%w: %w", ErrOperation, resp.Err)
	}
	return nil
}
