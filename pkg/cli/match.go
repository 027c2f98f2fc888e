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
	"flag"
	"fmt"

	"github.com/coursematch/coursematch/pkg/config"
	"github.com/coursematch/coursematch/pkg/courses/catalog"
	"github.com/coursematch/coursematch/pkg/courses/dedupe"
	"github.com/coursematch/coursematch/pkg/courses/matcher"
	"github.com/coursematch/coursematch/pkg/courses/report"
	"github.com/coursematch/coursematch/pkg/helpers"
	"github.com/rs/zerolog/log"
)

// DefaultMatchOutfile is where match writes its report when -outfile is
// not given.
const DefaultMatchOutfile = "matches.csv"

type matchFlags struct {
	*commonFlags
	InFile    *string
	OutFile   *string
	Scorer    *string
	Profile   *string
	Threshold *int
	Workers   *int
}

func newMatchFlags(fs *flag.FlagSet) *matchFlags {
	return &matchFlags{
		commonFlags: addCommonFlags(fs),
		InFile: fs.String(
			"infile",
			"",
			"a CSV file containing course data",
		),
		OutFile: fs.String(
			"outfile",
			DefaultMatchOutfile,
			"the location where results will be stored",
		),
		Threshold: fs.Int(
			"threshold",
			matcher.DefaultThreshold,
			"cutoff (0-100) for determining a match between course names",
		),
		Scorer: fs.String(
			"scorer",
			matcher.DefaultScorer,
			fmt.Sprintf("similarity scorer, one of %v", matcher.ScorerNames()),
		),
		Workers: fs.Int(
			"workers",
			0,
			"parallel scoring workers (0 uses every CPU)",
		),
		Profile: fs.String(
			"profile",
			"",
			"write a CPU profile to this file",
		),
	}
}

// apply overrides config values with flags given on the command line.
func (f *matchFlags) apply(fs *flag.FlagSet, vals *config.Values) error {
	if isFlagPassed(fs, "threshold") {
		vals.Threshold = *f.Threshold
	}
	if isFlagPassed(fs, "scorer") {
		vals.Scorer = *f.Scorer
	}
	if isFlagPassed(fs, "workers") {
		vals.Workers = *f.Workers
	}
	if err := config.Validate(vals); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

func runMatch(ctx context.Context, env Env, args []string) (err error) {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	flags := newMatchFlags(fs)

	help, err := parse(fs, args)
	if help || err != nil {
		return err
	}
	if *flags.InFile == "" {
		fs.Usage()
		return fmt.Errorf("%w: -infile is required", ErrUsage)
	}

	vals, err := env.setup(fs, flags.commonFlags)
	if err != nil {
		return err
	}
	if err := flags.apply(fs, &vals); err != nil {
		return err
	}

	if *flags.Profile != "" {
		stop, profErr := helpers.StartCPUProfile(env.Fs, *flags.Profile)
		if profErr != nil {
			return profErr
		}
		defer func() {
			if stopErr := stop(); stopErr != nil && err == nil {
				err = stopErr
			}
		}()
	}

	scorer, err := matcher.ScorerByName(vals.Scorer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	start := env.Clock.Now()

	log.Info().Str("path", *flags.InFile).Msg("reading course data")
	cat, err := catalog.LoadFile(env.Fs, *flags.InFile, vals.Columns)
	if err != nil {
		return fmt.Errorf("failed to read course data: %w", err)
	}

	log.Info().
		Int("courses", cat.Len()).
		Int("threshold", vals.Threshold).
		Str("scorer", vals.Scorer).
		Msg("matching course names")
	res, err := dedupe.Run(ctx, cat, dedupe.Options{
		Scorer:    scorer,
		Progress:  newProgressLogger(env.Clock, progressInterval),
		Normalize: vals.Normalize,
		Threshold: vals.Threshold,
		Workers:   vals.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to match course names: %w", err)
	}

	log.Info().Str("path", *flags.OutFile).Msg("writing results to file")
	rows := report.Rows(cat, res.Clusters, vals.Columns)
	if err := report.WriteFile(env.Fs, *flags.OutFile, rows); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	log.Info().
		Dur("elapsed", env.Clock.Since(start)).
		Int("clusters", res.Stats.Clusters).
		Int("duplicates", res.Stats.Duplicates).
		Msg("match complete")

	_, _ = fmt.Fprintf(env.Stdout,
		"Success. %d duplicate clusters (%d of %d courses) written to %s\n",
		res.Stats.Clusters, res.Stats.Duplicates, res.Stats.Courses, *flags.OutFile)
	return nil
}
