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
	"flag"
	"fmt"

	"github.com/coursematch/coursematch/pkg/courses/catalog"
	"github.com/coursematch/coursematch/pkg/courses/update"
	"github.com/rs/zerolog/log"
)

// DefaultUpdateOutfile is where update writes the merged table when
// -outfile is not given.
const DefaultUpdateOutfile = "courses_updated.csv"

type updateFlags struct {
	*commonFlags
	UpdateData *string
	CourseData *string
	OutFile    *string
	Coder      *string
}

func newUpdateFlags(fs *flag.FlagSet) *updateFlags {
	return &updateFlags{
		commonFlags: addCommonFlags(fs),
		UpdateData: fs.String(
			"update_data",
			"",
			"a CSV file containing updated course data",
		),
		CourseData: fs.String(
			"course_data",
			"",
			"a CSV file containing original course data",
		),
		OutFile: fs.String(
			"outfile",
			DefaultUpdateOutfile,
			"the location where updated course data will be stored",
		),
		Coder: fs.String(
			"coder",
			"",
			"the person who will be attributed for any updated rows",
		),
	}
}

func runUpdate(env Env, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	flags := newUpdateFlags(fs)

	help, err := parse(fs, args)
	if help || err != nil {
		return err
	}
	if *flags.UpdateData == "" || *flags.CourseData == "" {
		fs.Usage()
		return fmt.Errorf("%w: -update_data and -course_data are required", ErrUsage)
	}

	vals, err := env.setup(fs, flags.commonFlags)
	if err != nil {
		return err
	}
	if *flags.Coder == "" {
		log.Warn().Msg("no -coder given, updated rows will have an empty assignee")
	}

	log.Info().Str("path", *flags.UpdateData).Msg("reading update data")
	updates, err := catalog.ReadTableFile(env.Fs, *flags.UpdateData)
	if err != nil {
		return fmt.Errorf("failed to read update data: %w", err)
	}

	log.Info().Str("path", *flags.CourseData).Msg("reading course data")
	original, err := catalog.ReadTableFile(env.Fs, *flags.CourseData)
	if err != nil {
		return fmt.Errorf("failed to read course data: %w", err)
	}

	res, err := update.Apply(original, updates, vals.Columns, *flags.Coder)
	if err != nil {
		return fmt.Errorf("failed to update course data: %w", err)
	}

	log.Info().Str("path", *flags.OutFile).Msg("writing results to file")
	if err := catalog.WriteTableFile(env.Fs, *flags.OutFile, res.Header, res.Rows); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	log.Info().
		Int("rows", len(res.Rows)).
		Int("changed", res.Changed).
		Int("unmatched", res.Unmatched).
		Msg("update complete")

	_, _ = fmt.Fprintf(env.Stdout,
		"Success. %d of %d courses updated, written to %s\n",
		res.Changed, len(res.Rows), *flags.OutFile)
	return nil
}
