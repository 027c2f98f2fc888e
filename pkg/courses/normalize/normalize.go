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

// Package normalize turns free-text course titles into canonical keys for
// fuzzy comparison.
//
// Pipeline, applied in order:
//
//	Stage 1: Unicode fold (optional) - width folding and NFKC
//	Stage 2: Stopword removal - whole Unicode words, case-insensitive by default
//	Stage 3: Punctuation removal - characters deleted, not replaced by spaces
//	Stage 4: Whitespace collapse - runs become one space, ends trimmed
//
// All stages repeat until the key stops changing. Removing punctuation can
// join two fragments into a new stopword ("t.o" becomes "to"), so a single
// pass would not be idempotent:
//
//	Normalize(Normalize(x)) == Normalize(x)
//
// Example with the default options:
//
//	Normalize("Introduction to Algorithms") → "Algorithms"
//	Normalize("Calculus I & II: Theory") → "Calculus"
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ErrInvalidOptions is returned by New for unusable stopword or punctuation
// lists.
var ErrInvalidOptions = errors.New("invalid normalizer options")

// maxPasses bounds the fixed-point loop. Every productive pass shortens the
// key, so real titles settle in two or three passes.
const maxPasses = 16

var (
	defaultStopwords = []string{
		"of", "in", "for", "to", "and", "or", "the",
		"i", "ii", "iii", "iv", "v",
		"introduction", "advanced", "theory", "foundations",
	}
	defaultPunctuation = []string{".", ":", "/", "-", "&", ","}

	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// nonWordClass matches one character that cannot be part of a word. Word
// characters are Unicode letters, combining marks, numbers and underscore.
const nonWordClass = `[^\p{L}\p{M}\p{N}_]`

// Options configures a Normalizer.
type Options struct {
	Stopwords     []string `toml:"stopwords,omitempty,multiline"`
	Punctuation   []string `toml:"punctuation,omitempty"`
	CaseSensitive bool     `toml:"case_sensitive"`
	UnicodeFold   bool     `toml:"unicode_fold"`
}

// DefaultStopwords returns a copy of the built-in stopword list.
func DefaultStopwords() []string {
	return append([]string(nil), defaultStopwords...)
}

// DefaultPunctuation returns a copy of the built-in punctuation list.
func DefaultPunctuation() []string {
	return append([]string(nil), defaultPunctuation...)
}

// DefaultOptions returns the built-in stopword and punctuation lists with
// case-insensitive stopword matching.
func DefaultOptions() Options {
	return Options{
		Stopwords:   DefaultStopwords(),
		Punctuation: DefaultPunctuation(),
	}
}

// Normalizer produces canonical keys. It holds no mutable state and is safe
// for concurrent use.
type Normalizer struct {
	stopwords   *regexp.Regexp
	punctuation *strings.Replacer
	unicodeFold bool
}

// New compiles a Normalizer from opts. An empty stopword list disables
// stopword removal, an empty punctuation list disables punctuation removal.
//
//nolint:gocritic // options copied so later caller changes do not leak in
func New(opts Options) (*Normalizer, error) {
	n := &Normalizer{unicodeFold: opts.UnicodeFold}

	if len(opts.Stopwords) > 0 {
		words := make([]string, 0, len(opts.Stopwords))
		for _, w := range opts.Stopwords {
			if strings.TrimSpace(w) == "" {
				return nil, fmt.Errorf("%w: empty stopword", ErrInvalidOptions)
			}
			words = append(words, regexp.QuoteMeta(w))
		}

		// RE2's \b only knows ASCII word characters, so the neighbours are
		// matched explicitly and put back by removeStopwords.
		pattern := `(^|` + nonWordClass + `)(?:` + strings.Join(words, "|") + `)(` + nonWordClass + `|$)`
		if !opts.CaseSensitive {
			pattern = `(?i)` + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
		n.stopwords = re
	}

	if len(opts.Punctuation) > 0 {
		pairs := make([]string, 0, len(opts.Punctuation)*2)
		for _, p := range opts.Punctuation {
			if utf8.RuneCountInString(p) != 1 {
				return nil, fmt.Errorf("%w: punctuation %q is not a single character", ErrInvalidOptions, p)
			}
			pairs = append(pairs, p, "")
		}
		n.punctuation = strings.NewReplacer(pairs...)
	}

	return n, nil
}

// MustNew is like New but panics on invalid options. Intended for
// package-level defaults and tests.
//
//nolint:gocritic // see New
func MustNew(opts Options) *Normalizer {
	n, err := New(opts)
	if err != nil {
		panic(err)
	}
	return n
}

// Default returns a Normalizer built from DefaultOptions.
func Default() *Normalizer {
	return MustNew(DefaultOptions())
}

// Normalize returns the canonical key for title.
func (n *Normalizer) Normalize(title string) string {
	s := title
	for range maxPasses {
		next := n.pass(s)
		if next == s {
			break
		}
		s = next
	}

	return s
}

func (n *Normalizer) pass(s string) string {
	if n.unicodeFold {
		s = foldUnicode(s)
	}
	if n.stopwords != nil {
		s = n.removeStopwords(s)
	}
	if n.punctuation != nil {
		s = n.punctuation.Replace(s)
	}
	return collapseWhitespace(s)
}

// removeStopwords deletes whole-word stopwords. A match consumes the
// characters on both sides of the word, so a stopword directly following
// another one is only seen by the next replacement.
func (n *Normalizer) removeStopwords(s string) string {
	for {
		next := n.stopwords.ReplaceAllString(s, "${1}${2}")
		if next == s {
			return s
		}
		s = next
	}
}

// collapseWhitespace replaces every whitespace run with a single space and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// foldUnicode maps fullwidth forms to ASCII and applies NFKC so that
// visually identical titles compare equal.
func foldUnicode(s string) string {
	if folded, _, err := transform.String(width.Fold, s); err == nil {
		s = folded
	}
	return norm.NFKC.String(s)
}
