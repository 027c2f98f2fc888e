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

// Package dedupe runs the course de-duplication pipeline over a catalog:
// titles are normalized to canonical keys, every pair of keys is scored,
// and direct matches are collapsed into disjoint clusters.
package dedupe

import (
	"context"
	"fmt"

	"github.com/coursematch/coursematch/pkg/courses/catalog"
	"github.com/coursematch/coursematch/pkg/courses/clusters"
	"github.com/coursematch/coursematch/pkg/courses/matcher"
	"github.com/coursematch/coursematch/pkg/courses/normalize"
	"github.com/rs/zerolog/log"
)

// Options configures a pipeline run.
type Options struct {
	Scorer    matcher.Scorer
	Progress  matcher.Progress
	Normalize normalize.Options
	Threshold int
	Workers   int
}

// DefaultOptions returns the default normalizer lists, the ratio scorer and
// a threshold of 95.
func DefaultOptions() Options {
	return Options{
		Normalize: normalize.DefaultOptions(),
		Scorer:    matcher.Ratio{},
		Threshold: matcher.DefaultThreshold,
	}
}

// Stats summarizes a run.
type Stats struct {
	Courses int
	// Pairs is the number of directly matched course pairs.
	Pairs int
	// Clusters counts clusters with more than one member.
	Clusters int
	// Duplicates counts courses that belong to a multi-member cluster.
	Duplicates int
}

// Result is the output of Run.
type Result struct {
	Matches  *matcher.Matches
	Keys     map[string]string
	Clusters []clusters.Cluster
	Stats    Stats
}

// Run executes the pipeline. Clusters in the result partition the catalog,
// singletons included.
//
//nolint:gocritic // options struct is copied on purpose
func Run(ctx context.Context, cat *catalog.Catalog, opts Options) (*Result, error) {
	n, err := normalize.New(opts.Normalize)
	if err != nil {
		return nil, fmt.Errorf("failed to build normalizer: %w", err)
	}

	recs := cat.Records()
	keys := make([]matcher.Key, len(recs))
	keyByID := make(map[string]string, len(recs))
	for i, rec := range recs {
		key := n.Normalize(rec.Title)
		keys[i] = matcher.Key{ID: rec.ID, Value: key}
		keyByID[rec.ID] = key
	}
	log.Debug().Int("courses", len(keys)).Msg("normalized course titles")

	matches, err := matcher.FindMatches(ctx, keys, matcher.Options{
		Scorer:    opts.Scorer,
		Progress:  opts.Progress,
		Threshold: opts.Threshold,
		Workers:   opts.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match courses: %w", err)
	}

	cs := clusters.Build(matches.Order, matches.Direct)

	stats := Stats{
		Courses: cat.Len(),
		Pairs:   matches.Pairs(),
	}
	for _, c := range clusters.NonSingleton(cs) {
		stats.Clusters++
		stats.Duplicates += c.Size()
	}

	log.Info().
		Int("courses", stats.Courses).
		Int("pairs", stats.Pairs).
		Int("clusters", stats.Clusters).
		Int("duplicates", stats.Duplicates).
		Msg("clustered course titles")

	return &Result{
		Matches:  matches,
		Keys:     keyByID,
		Clusters: cs,
		Stats:    stats,
	}, nil
}
