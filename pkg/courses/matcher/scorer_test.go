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
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "Algorithms", b: "Algorithms", want: 100},
		{name: "one deletion", a: "Algorithms", b: "Algorithm", want: 95},
		{name: "one substitution", a: "abcd", b: "abce", want: 75},
		{name: "nothing shared", a: "abc", b: "xyz", want: 0},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "", b: "abc", want: 0},
		{name: "case matters", a: "algorithms", b: "Algorithms", want: 90},
		{name: "multibyte counted as runes", a: "Ökonomie", b: "Okonomie", want: 88},
		{name: "half rounds down to even", a: "abcde", b: "abcdefghijk", want: 62},
		{name: "half rounds up to even", a: "abc", b: "abcdefghijklm", want: 38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Ratio{}.Score(tt.a, tt.b))
			assert.Equal(t, tt.want, Ratio{}.Score(tt.b, tt.a))
		})
	}
}

func TestRatioUpperBound(t *testing.T) {
	t.Parallel()

	r := Ratio{}
	assert.Equal(t, 100, r.UpperBound(0, 0))
	assert.Equal(t, 100, r.UpperBound(5, 5))
	assert.Equal(t, 0, r.UpperBound(0, 5))
	assert.Equal(t, 83, r.UpperBound(10, 14))
	assert.Equal(t, 62, r.UpperBound(5, 11))

	// the bound never undercuts the real score
	assert.GreaterOrEqual(t, r.UpperBound(10, 9), r.Score("Algorithms", "Algorithm"))
}

func TestEdlibScorer(t *testing.T) {
	t.Parallel()

	lev := EdlibScorer{Algorithm: edlib.Levenshtein}
	assert.Equal(t, 57, lev.Score("kitten", "sitting"))
	assert.Equal(t, 57, lev.Score("sitting", "kitten"))
	assert.Equal(t, 100, lev.Score("", ""))
	assert.Equal(t, 0, lev.Score("", "abc"))

	jw := EdlibScorer{Algorithm: edlib.JaroWinkler}
	assert.Equal(t, 100, jw.Score("Calculus", "Calculus"))
	assert.Greater(t, jw.Score("Calculus", "Calculsu"), 90)
}

func TestScorerByName(t *testing.T) {
	t.Parallel()

	s, err := ScorerByName("")
	require.NoError(t, err)
	assert.Equal(t, Ratio{}, s)

	s, err = ScorerByName("jaro-winkler")
	require.NoError(t, err)
	assert.Equal(t, EdlibScorer{Algorithm: edlib.JaroWinkler}, s)

	_, err = ScorerByName("soundex")
	require.ErrorIs(t, err, ErrUnknownScorer)
	assert.Contains(t, err.Error(), "ratio")
}

func TestScorerNamesSorted(t *testing.T) {
	t.Parallel()

	names := ScorerNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, DefaultScorer)
	for _, name := range names {
		_, err := ScorerByName(name)
		require.NoError(t, err, name)
	}
}
