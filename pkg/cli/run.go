// Course Match
// Copyright (c) 2026 The Course Match Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Course Match.
//
// Course Match is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Course Match is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Course Match.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"context"
	"fmt"

	"github.com/coursematch/coursematch/pkg/helpers"
)

const usage = `usage: coursematch <command> [flags]

commands:
  match     find course titles that are likely duplicates
  update    copy recoded course codes onto the original course data
  version   print version and exit

run "coursematch <command> -h" for the flags of a command
`

// Run dispatches args, without the program name, to a subcommand. The log
// file opened by the subcommand is closed before returning.
func Run(ctx context.Context, env Env, args []string) error {
	defer func() {
		if err := helpers.CloseLogging(); err != nil {
			_, _ = fmt.Fprintf(env.Stderr, "warning: %s\n", err)
		}
	}()

	if len(args) == 0 {
		_, _ = fmt.Fprint(env.Stderr, usage)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	switch args[0] {
	case "match":
		return runMatch(ctx, env, args[1:])
	case "update":
		return runUpdate(env, args[1:])
	case "version", "-version", "--version":
		_, _ = fmt.Fprintf(env.Stdout, "coursematch %s\n", Version)
		return nil
	case "help", "-h", "-help", "--help":
		_, _ = fmt.Fprint(env.Stdout, usage)
		return nil
	default:
		_, _ = fmt.Fprint(env.Stderr, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}
