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

// Package matcher scores every pair of canonical course keys and records
// which courses directly match each other.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"unicode/utf8"

	"github.com/coursematch/coursematch/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the minimum score for a direct match when none is
// configured.
const DefaultThreshold = 95

// nearMissWindow controls how far below the threshold a pair still gets a
// debug log line.
const nearMissWindow = 5

var (
	// ErrInvalidThreshold is returned for thresholds outside [0, MaxScore].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
	// ErrDuplicateKey is returned when two keys share a course ID.
	ErrDuplicateKey = errors.New("duplicate course id")
)

// Key is the canonical key of one course.
type Key struct {
	ID    string
	Value string
}

// Progress receives row completion updates from FindMatches. Calls are
// serialized and done is strictly increasing.
type Progress interface {
	Step(done, total int)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(done, total int)

func (f ProgressFunc) Step(done, total int) {
	f(done, total)
}

// Options configures FindMatches.
type Options struct {
	// Scorer defaults to Ratio.
	Scorer Scorer
	// Progress may be nil.
	Progress Progress
	// Threshold is inclusive: a pair scoring exactly Threshold matches.
	Threshold int
	// Workers defaults to GOMAXPROCS when zero or negative.
	Workers int
}

// Matches holds the direct match set of every course. Direct has an entry
// for every ID in Order and each list is in Order sequence.
type Matches struct {
	Direct map[string][]string
	Order  []string
}

// Of returns the IDs that id directly matches.
func (m *Matches) Of(id string) []string {
	return m.Direct[id]
}

// Pairs returns the number of matched unordered pairs.
func (m *Matches) Pairs() int {
	total := 0
	for _, ids := range m.Direct {
		total += len(ids)
	}
	return total / 2
}

type progressTracker struct {
	sink  Progress
	done  int
	total int
	mu    syncutil.Mutex
}

func (p *progressTracker) step() {
	if p.sink == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.sink.Step(p.done, p.total)
}

// FindMatches compares every unordered pair of keys once and links pairs
// whose score reaches the threshold. Rows are scored in parallel, but each
// row writes only its own slot and the links are assembled in key order, so
// the result does not depend on the worker count.
func FindMatches(ctx context.Context, keys []Key, opts Options) (*Matches, error) {
	if opts.Threshold < 0 || opts.Threshold > MaxScore {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, opts.Threshold)
	}

	scorer := opts.Scorer
	if scorer == nil {
		scorer = Ratio{}
	}
	bound, _ := scorer.(bounder)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	order := make([]string, len(keys))
	lengths := make([]int, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		if _, ok := seen[k.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k.ID)
		}
		seen[k.ID] = struct{}{}
		order[i] = k.ID
		lengths[i] = utf8.RuneCountInString(k.Value)
	}

	// hits[i] holds the indexes j > i that row i matched.
	hits := make([][]int, len(keys))
	tracker := &progressTracker{sink: opts.Progress, total: len(keys)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range keys {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context error returned as-is
			}
			for j := i + 1; j < len(keys); j++ {
				if bound != nil && bound.UpperBound(lengths[i], lengths[j]) < opts.Threshold {
					continue
				}
				score := scorer.Score(keys[i].Value, keys[j].Value)
				if score >= opts.Threshold {
					hits[i] = append(hits[i], j)
				} else if score >= opts.Threshold-nearMissWindow {
					log.Debug().
						Str("a", keys[i].Value).
						Str("b", keys[j].Value).
						Int("score", score).
						Int("threshold", opts.Threshold).
						Msg("near miss below match threshold")
				}
			}
			tracker.step()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("matching cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("matching cancelled: %w", err)
	}

	// Rows are visited in ascending order, so every list ends up sorted:
	// links from earlier rows are appended before a row's own links.
	linked := make([][]int, len(keys))
	for i, row := range hits {
		for _, j := range row {
			linked[i] = append(linked[i], j)
			linked[j] = append(linked[j], i)
		}
	}

	direct := make(map[string][]string, len(keys))
	for i, idxs := range linked {
		ids := make([]string, len(idxs))
		for n, j := range idxs {
			ids[n] = order[j]
		}
		direct[order[i]] = ids
	}

	return &Matches{Order: order, Direct: direct}, nil
}
