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
	"errors"
	"fmt"
	"runtime/pprof"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// StartCPUProfile writes a CPU profile to path until the returned stop
// function is called.
func StartCPUProfile(fs afero.Fs, path string) (stop func() error, err error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile file: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to start cpu profile: %w", err),
			f.Close(),
		)
	}
	log.Debug().Str("path", path).Msg("cpu profiling started")

	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close profile file: %w", err)
		}
		log.Info().Str("path", path).Msg("cpu profile written")
		return nil
	}, nil
}
