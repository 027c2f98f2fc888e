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
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

type graph struct {
	direct map[string][]string
	order  []string
}

// graphGen generates a catalog order and a symmetric direct match table,
// shaped like the output of the matcher.
func graphGen() *rapid.Generator[graph] {
	return rapid.Custom(func(t *rapid.T) graph {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		order := make([]string, n)
		for i := range order {
			order[i] = fmt.Sprintf("id%02d", i)
		}
		order = rapid.Permutation(order).Draw(t, "order")

		links := make([]map[int]bool, n)
		for i := range links {
			links[i] = make(map[int]bool)
		}
		if n > 1 {
			edges := rapid.IntRange(0, n*2).Draw(t, "edges")
			for range edges {
				a := rapid.IntRange(0, n-1).Draw(t, "a")
				b := rapid.IntRange(0, n-1).Draw(t, "b")
				if a != b {
					links[a][b] = true
					links[b][a] = true
				}
			}
		}

		direct := make(map[string][]string, n)
		for i, id := range order {
			ids := []string{}
			for j, other := range order {
				if links[i][j] {
					ids = append(ids, other)
				}
			}
			direct[id] = ids
		}

		return graph{direct: direct, order: order}
	})
}

// components computes connected components with union-find as a reference.
func components(order []string, direct map[string][]string) map[string]string {
	parent := make(map[string]string, len(order))
	for _, id := range order {
		parent[id] = id
	}
	var find func(string) string
	find = func(x string) string {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for id, ids := range direct {
		for _, other := range ids {
			parent[find(id)] = find(other)
		}
	}
	roots := make(map[string]string, len(order))
	for _, id := range order {
		roots[id] = find(id)
	}
	return roots
}

// TestPropertyBuildPartitions verifies every ID lands in exactly one
// cluster and the clusters cover the whole order.
func TestPropertyBuildPartitions(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		g := graphGen().Draw(t, "graph")
		cs := Build(g.order, g.direct)

		seen := make(map[string]int)
		for _, c := range cs {
			if len(c.Members) == 0 || c.Members[0] != c.ID {
				t.Fatalf("cluster %q does not lead with its representative: %v", c.ID, c.Members)
			}
			for _, id := range c.Members {
				seen[id]++
			}
		}
		if len(seen) != len(g.order) {
			t.Fatalf("clusters cover %d ids, want %d", len(seen), len(g.order))
		}
		for _, id := range g.order {
			if seen[id] != 1 {
				t.Fatalf("id %s appears %d times", id, seen[id])
			}
		}
	})
}

// TestPropertyBuildTransitiveClosure verifies clusters are exactly the
// connected components of the match graph, for every traversal order.
func TestPropertyBuildTransitiveClosure(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		g := graphGen().Draw(t, "graph")
		roots := components(g.order, g.direct)

		clusterOf := make(map[string]string)
		for _, c := range Build(g.order, g.direct) {
			for _, id := range c.Members {
				clusterOf[id] = c.ID
			}
		}

		for _, a := range g.order {
			for _, b := range g.order {
				sameComponent := roots[a] == roots[b]
				sameCluster := clusterOf[a] == clusterOf[b]
				if sameComponent != sameCluster {
					t.Fatalf("%s and %s: connected=%v clustered=%v", a, b, sameComponent, sameCluster)
				}
			}
		}
	})
}

// TestPropertyBuildStable verifies repeated runs give identical output.
func TestPropertyBuildStable(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		g := graphGen().Draw(t, "graph")
		first := Build(g.order, g.direct)
		second := Build(g.order, g.direct)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("unstable clustering:\n%v\n%v", first, second)
		}
	})
}
