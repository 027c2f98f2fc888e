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

package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/coursematch/coursematch/pkg/helpers/syncutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/afero"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LoggingOptions configures the global logger.
type LoggingOptions struct {
	// Console receives human readable output. Defaults to stderr.
	Console io.Writer
	// Fs creates the log file's directory. Defaults to the OS filesystem.
	Fs afero.Fs
	// File enables a rotating JSON log file at this path.
	File string
	// Writers are extra JSON outputs, mostly for tests.
	Writers []io.Writer
	Debug   bool
	NoColor bool
}

var (
	logFileMu syncutil.Mutex
	logFile   io.Closer
)

// InitLogging replaces the global logger and returns the run id attached to
// every entry. A log file opened by a previous call is closed.
//
//nolint:gocritic // options struct copied on purpose
func InitLogging(opts LoggingOptions) (string, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	logWriters := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
	}}

	var file *lumberjack.Logger
	if opts.File != "" {
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		if err := fs.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    1,
			MaxBackups: 2,
		}
		logWriters = append(logWriters, file)
	}

	if len(opts.Writers) > 0 {
		logWriters = append(logWriters, opts.Writers...)
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	runID := uuid.NewString()

	logFileMu.Lock()
	defer logFileMu.Unlock()

	log.Logger = zerolog.New(io.MultiWriter(logWriters...)).
		Level(level).
		With().Timestamp().Str("run", runID).Logger()

	prev := logFile
	logFile = nil
	if file != nil {
		logFile = file
	}
	if prev != nil {
		if err := prev.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close previous log file")
		}
	}

	return runID, nil
}

// CloseLogging closes the log file opened by InitLogging, if any. Entries
// logged afterwards reopen it.
func CloseLogging() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
