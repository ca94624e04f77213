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
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-lexicon/internal/app"
)

const prompt = "> "

var shellCommand = &cli.Command{
	Name:  "shell",
	Usage: "search interactively",
	Description: strings.Join([]string{
		"Reads one query per line and prints its translations.",
		"",
		"Enter \"show developer tools\" to enable the developer commands:",
		"  :import FILE  replace the word list with the contents of FILE",
		"  :reset        replace the word list with the bundled word list",
		"",
		"Enter :quit or end the input to exit.",
	}, "\n"),
	Action: func(c *cli.Context) error {
		env := envFrom(c)

		scanner := bufio.NewScanner(c.App.Reader)
		for {
			fmt.Fprint(c.App.Writer, prompt)
			if !scanner.Scan() {
				break
			}
			if quit := shellLine(c, env, scanner.Text()); quit {
				return nil
			}
		}
		fmt.Fprintln(c.App.Writer)

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("%w: reading input: %w", ErrLxutil, err)
		}
		return nil
	},
}

// shellLine handles a line of shell input. It returns true if the shell
// should exit.
func shellLine(c *cli.Context, env *environment, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	if name == ":quit" {
		return true
	}

	if env.app.DeveloperMode() {
		switch name {
		case ":import":
			arg = strings.TrimSpace(arg)
			if arg == "" {
				env.renderer.Status("Error: :import requires a FILE argument")
				return false
			}
			resp, err := loadFile(c, env, arg)
			if err != nil {
				env.renderer.Status(app.StatusMessage(err))
				return false
			}
			show(env, resp)
			return false
		case ":reset":
			show(env, env.app.ResetToDefault(c.Context))
			return false
		}
	}

	show(env, env.app.Submit(c.Context, line))
	return false
}
