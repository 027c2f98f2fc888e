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

package clusters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSingletons(t *testing.T) {
	t.Parallel()

	got := Build([]string{"a", "b", "c"}, map[string][]string{})
	assert.Equal(t, []Cluster{
		{ID: "a", Members: []string{"a"}},
		{ID: "b", Members: []string{"b"}},
		{ID: "c", Members: []string{"c"}},
	}, got)
	assert.Empty(t, NonSingleton(got))
}

func TestBuildDirectPair(t *testing.T) {
	t.Parallel()

	got := Build([]string{"a", "b", "c"}, map[string][]string{
		"a": {"c"},
		"b": {},
		"c": {"a"},
	})
	assert.Equal(t, []Cluster{
		{ID: "a", Members: []string{"a", "c"}},
		{ID: "b", Members: []string{"b"}},
	}, got)
}

func TestBuildTransitiveThreeChain(t *testing.T) {
	t.Parallel()

	// A~B, B~C, A and C unrelated
	direct := map[string][]string{
		"A": {"B"},
		"B": {"A", "C"},
		"C": {"B"},
	}

	for _, order := range [][]string{
		{"A", "B", "C"},
		{"C", "B", "A"},
		{"B", "A", "C"},
		{"A", "C", "B"},
	} {
		got := Build(order, direct)
		require.Len(t, got, 1, "order %v", order)
		assert.ElementsMatch(t, []string{"A", "B", "C"}, got[0].Members)
		assert.Equal(t, order[0], got[0].ID)
	}
}

func TestBuildLongChain(t *testing.T) {
	t.Parallel()

	// a-b-c-d-e-f, each only linked to its neighbours
	order := []string{"a", "b", "c", "d", "e", "f"}
	direct := map[string][]string{
		"a": {"b"},
		"b": {"a", "c"},
		"c": {"b", "d"},
		"d": {"c", "e"},
		"e": {"d", "f"},
		"f": {"e"},
	}

	got := Build(order, direct)
	require.Len(t, got, 1)
	assert.Equal(t, order, got[0].Members)

	reversed := []string{"f", "e", "d", "c", "b", "a"}
	got = Build(reversed, direct)
	require.Len(t, got, 1)
	assert.Equal(t, reversed, got[0].Members, "members follow catalog order")
}

func TestBuildMembersInCatalogOrder(t *testing.T) {
	t.Parallel()

	got := Build([]string{"x", "a", "m", "b"}, map[string][]string{
		"x": {"b"},
		"b": {"x", "m"},
		"m": {"b"},
	})
	assert.Equal(t, []Cluster{
		{ID: "x", Members: []string{"x", "m", "b"}},
		{ID: "a", Members: []string{"a"}},
	}, got)
}

func TestBuildIgnoresUnknownAndSelfLinks(t *testing.T) {
	t.Parallel()

	got := Build([]string{"a", "b"}, map[string][]string{
		"a":     {"a", "ghost", "b"},
		"b":     {"a"},
		"ghost": {"a", "b"},
	})
	assert.Equal(t, []Cluster{{ID: "a", Members: []string{"a", "b"}}}, got)
}

func TestBuildOneSidedLinks(t *testing.T) {
	t.Parallel()

	// links are only followed in the direction they were recorded
	got := Build([]string{"a", "b"}, map[string][]string{"b": {"a"}})
	assert.Equal(t, []Cluster{
		{ID: "a", Members: []string{"a"}},
		{ID: "b", Members: []string{"b"}},
	}, got)

	got = Build([]string{"a", "b"}, map[string][]string{"a": {"b"}})
	assert.Equal(t, []Cluster{{ID: "a", Members: []string{"a", "b"}}}, got)
}

func TestBuildDuplicateOrderEntries(t *testing.T) {
	t.Parallel()

	got := Build([]string{"a", "b", "a"}, map[string][]string{})
	assert.Equal(t, []Cluster{
		{ID: "a", Members: []string{"a"}},
		{ID: "b", Members: []string{"b"}},
	}, got)
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Build(nil, nil))
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	order := []string{"a", "b", "c"}
	direct := map[string][]string{
		"a": {"b"},
		"b": {"a", "c"},
		"c": {"b"},
	}
	Build(order, direct)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, map[string][]string{
		"a": {"b"},
		"b": {"a", "c"},
		"c": {"b"},
	}, direct)
}

func TestDisjointDropsConsumedIDs(t *testing.T) {
	t.Parallel()

	got := disjoint([]Cluster{
		{ID: "a", Members: []string{"a", "b"}},
		{ID: "b", Members: []string{"b", "c"}},
		{ID: "x", Members: []string{"a"}},
	})
	assert.Equal(t, []Cluster{
		{ID: "a", Members: []string{"a", "b"}},
		{ID: "c", Members: []string{"c"}},
	}, got)
}

func TestMapAndNonSingleton(t *testing.T) {
	t.Parallel()

	cs := []Cluster{
		{ID: "a", Members: []string{"a", "b"}},
		{ID: "c", Members: []string{"c"}},
	}

	assert.Equal(t, map[string][]string{
		"a": {"a", "b"},
		"c": {"c"},
	}, Map(cs))
	assert.Equal(t, []Cluster{{ID: "a", Members: []string{"a", "b"}}}, NonSingleton(cs))
	assert.Equal(t, 2, cs[0].Size())
}
