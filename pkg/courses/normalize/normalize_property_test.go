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

package normalize

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// titleGen generates course-like titles mixing real words, stopwords,
// punctuation and irregular spacing.
func titleGen() *rapid.Generator[string] {
	words := []string{
		"Algorithms", "Calculus", "History", "Chemistry", "Organic", "Data",
		"Introduction", "to", "of", "the", "and", "I", "II", "iv", "V",
		"Advanced", "Theory", "Foundations", "t", "o", "an", "d", "Pre",
		"Señor", "Mühendisliği", "Đại", "số", "Øin", "Ñor", "España", "Физика",
		"Ψυχολογία", "数学", "ñ", "é",
	}
	seps := []string{" ", "  ", "-", ".", ": ", "/", " & ", ", ", "\t"}
	return rapid.Custom(func(t *rapid.T) string {
		count := rapid.IntRange(0, 8).Draw(t, "wordCount")
		var b strings.Builder
		for i := range count {
			if i > 0 {
				b.WriteString(rapid.SampledFrom(seps).Draw(t, "sep"))
			}
			b.WriteString(rapid.SampledFrom(words).Draw(t, "word"))
		}
		return b.String()
	})
}

// TestPropertyNormalizeIdempotent verifies Normalize(Normalize(x)) == Normalize(x).
func TestPropertyNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	n := Default()
	rapid.Check(t, func(t *rapid.T) {
		input := titleGen().Draw(t, "input")

		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", input, once, twice)
		}
	})
}

// TestPropertyNormalizeIdempotentArbitrary runs the idempotence check on
// unconstrained strings, with and without the Unicode fold.
func TestPropertyNormalizeIdempotentArbitrary(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.UnicodeFold = true
	normalizers := []*Normalizer{Default(), MustNew(opts)}
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		n := rapid.SampledFrom(normalizers).Draw(t, "normalizer")

		once := n.Normalize(input)
		if twice := n.Normalize(once); once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", input, once, twice)
		}
	})
}

// nonASCIILetters never belong to a default stopword.
var nonASCIILetters = []string{"ñ", "ü", "ğ", "ạ", "Ø", "é", "ß", "д", "中", "Ψ"}

// TestPropertyNormalizeKeepsGluedStopwords verifies a stopword joined to a
// non-ASCII letter is part of a larger word and is never removed.
func TestPropertyNormalizeKeepsGluedStopwords(t *testing.T) {
	t.Parallel()
	n := Default()
	rapid.Check(t, func(t *rapid.T) {
		stopword := rapid.SampledFrom(DefaultStopwords()).Draw(t, "stopword")
		letter := rapid.SampledFrom(nonASCIILetters).Draw(t, "letter")

		word := letter + stopword
		if rapid.Bool().Draw(t, "suffix") {
			word = stopword + letter
		}

		if got := n.Normalize(word); got != word {
			t.Fatalf("word %q normalized to %q", word, got)
		}
		title := "History of " + word
		if got := n.Normalize(title); got != "History "+word {
			t.Fatalf("title %q normalized to %q", title, got)
		}
	})
}

// TestPropertyNormalizeCanonicalShape verifies the key never contains
// removable punctuation, doubled spaces or surrounding whitespace.
func TestPropertyNormalizeCanonicalShape(t *testing.T) {
	t.Parallel()
	n := Default()
	rapid.Check(t, func(t *rapid.T) {
		key := n.Normalize(titleGen().Draw(t, "input"))

		for _, p := range DefaultPunctuation() {
			if strings.Contains(key, p) {
				t.Fatalf("key %q contains punctuation %q", key, p)
			}
		}
		if strings.Contains(key, "  ") {
			t.Fatalf("key %q contains doubled spaces", key)
		}
		if strings.TrimSpace(key) != key {
			t.Fatalf("key %q has surrounding whitespace", key)
		}
		for _, word := range strings.Fields(key) {
			for _, sw := range DefaultStopwords() {
				if strings.EqualFold(word, sw) {
					t.Fatalf("key %q still contains stopword %q", key, sw)
				}
			}
		}
	})
}

// TestPropertyNormalizeDeterministic verifies independent normalizers built
// from the same options agree.
func TestPropertyNormalizeDeterministic(t *testing.T) {
	t.Parallel()
	a := Default()
	b := Default()
	rapid.Check(t, func(t *rapid.T) {
		input := titleGen().Draw(t, "input")
		if a.Normalize(input) != b.Normalize(input) {
			t.Fatalf("normalizers disagree on %q", input)
		}
	})
}
