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

package matcher

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// MaxScore is the score of two identical keys.
const MaxScore = 100

// ErrUnknownScorer is returned by ScorerByName for unsupported names.
var ErrUnknownScorer = errors.New("unknown scorer")

// Scorer computes a similarity score in [0, MaxScore] between two
// canonical keys. Implementations must be symmetric and safe for
// concurrent use.
type Scorer interface {
	Score(a, b string) int
}

// bounder is implemented by scorers that can cap the best possible score
// from key lengths alone, which lets the driver skip hopeless pairs.
type bounder interface {
	UpperBound(lenA, lenB int) int
}

// Ratio scores keys by the indel ratio 2*LCS / (len(a)+len(b)), measured in
// runes and scaled to 0-100. This is the classic fuzzy "ratio": identical
// keys score 100 and keys with no common characters score 0.
type Ratio struct{}

func (Ratio) Score(a, b string) int {
	if a == b {
		return MaxScore
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return percent(2*edlib.LCS(a, b), total)
}

// UpperBound returns the best score two keys of the given rune lengths could
// reach, which is when the shorter key is a subsequence of the longer.
func (Ratio) UpperBound(lenA, lenB int) int {
	total := lenA + lenB
	if total == 0 {
		return MaxScore
	}
	return percent(2*min(lenA, lenB), total)
}

// EdlibScorer scores keys with one of go-edlib's normalized similarity
// algorithms.
type EdlibScorer struct {
	Algorithm edlib.Algorithm
}

func (s EdlibScorer) Score(a, b string) int {
	if a == b {
		return MaxScore
	}
	sim, err := edlib.StringsSimilarity(a, b, s.Algorithm)
	if err != nil || math.IsNaN(float64(sim)) {
		return 0
	}
	score := scale(float64(sim))
	if score < 0 {
		return 0
	}
	return min(score, MaxScore)
}

// scale maps a ratio in [0, 1] to a score. Halves round to even.
func scale(ratio float64) int {
	return int(math.RoundToEven(ratio * MaxScore))
}

// percent returns num/den as a score, scaling before dividing so exact
// halves stay exact.
func percent(num, den int) int {
	return int(math.RoundToEven(float64(num*MaxScore) / float64(den)))
}

var scorers = map[string]Scorer{
	"ratio":               Ratio{},
	"levenshtein":         EdlibScorer{Algorithm: edlib.Levenshtein},
	"damerau-levenshtein": EdlibScorer{Algorithm: edlib.DamerauLevenshtein},
	"osa":                 EdlibScorer{Algorithm: edlib.OSADamerauLevenshtein},
	"lcs":                 EdlibScorer{Algorithm: edlib.Lcs},
	"jaro":                EdlibScorer{Algorithm: edlib.Jaro},
	"jaro-winkler":        EdlibScorer{Algorithm: edlib.JaroWinkler},
}

// DefaultScorer is the name of the scorer used when none is configured.
const DefaultScorer = "ratio"

// ScorerByName returns the scorer registered under name. An empty name
// selects DefaultScorer.
func ScorerByName(name string) (Scorer, error) {
	if name == "" {
		name = DefaultScorer
	}
	s, ok := scorers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScorer, name, ScorerNames())
	}
	return s, nil
}

// ScorerNames lists the registered scorer names in sorted order.
func ScorerNames() []string {
	names := make([]string, 0, len(scorers))
	for name := range scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
