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

// Package cli implements the coursematch command line: flag parsing, config
// and logging setup, and the match and update subcommands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coursematch/coursematch/pkg/config"
	"github.com/coursematch/coursematch/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Version is set at build time.
var Version = "dev"

// ErrUsage is returned for missing or malformed command line arguments.
var ErrUsage = errors.New("invalid usage")

// Env is everything a subcommand touches outside its arguments.
type Env struct {
	Fs     afero.Fs
	Clock  clockwork.Clock
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv uses the real filesystem, clock and standard streams.
func DefaultEnv() Env {
	return Env{
		Fs:     afero.NewOsFs(),
		Clock:  clockwork.NewRealClock(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	Config  *string
	LogFile *string
	Debug   *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		Config: fs.String(
			"config",
			"",
			"path to a TOML config file (default $"+config.CfgEnv+")",
		),
		LogFile: fs.String(
			"log-file",
			"",
			"also write JSON logs to this file",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
	}
}

func isFlagPassed(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// parse runs fs.Parse and maps -h to a clean exit.
func parse(fs *flag.FlagSet, args []string) (help bool, err error) {
	err = fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return false, nil
}

// setup loads the config, applies the common flag overrides and starts
// logging.
func (env Env) setup(fs *flag.FlagSet, common *commonFlags) (config.Values, error) {
	vals, err := config.Load(env.Fs, config.Path(*common.Config), config.BaseDefaults)
	if err != nil {
		return config.Values{}, fmt.Errorf("failed to load config: %w", err)
	}

	if isFlagPassed(fs, "debug") {
		vals.DebugLogging = *common.Debug
	}
	if isFlagPassed(fs, "log-file") {
		vals.LogFile = *common.LogFile
	}

	runID, err := helpers.InitLogging(helpers.LoggingOptions{
		Console: env.Stderr,
		Fs:      env.Fs,
		File:    vals.LogFile,
		Debug:   vals.DebugLogging,
	})
	if err != nil {
		return config.Values{}, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log.Debug().
		Str("command", fs.Name()).
		Str("version", Version).
		Str("run", runID).
		Msg("starting")

	return vals, nil
}
