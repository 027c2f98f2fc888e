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

// Package clusters collapses direct course matches into disjoint groups.
//
// A match graph built by thresholding pairwise scores is not transitive:
// A~B and B~C do not imply A~C. Curators still want everything reachable
// through a chain of matches reviewed together, so Build folds each
// absorbed course's own matches into the growing cluster until the chain is
// exhausted.
package clusters

import "sort"

// Cluster is one group of course IDs. ID is the representative member,
// always the first entry of Members.
type Cluster struct {
	ID      string
	Members []string
}

// Size returns the number of members.
func (c Cluster) Size() int {
	return len(c.Members)
}

// Build groups the IDs of order into clusters using the direct match sets.
//
// Absorption pass: IDs are visited in order. Each still-active ID is
// deactivated and starts a cluster, then a queue seeded with its direct
// matches is drained; every queued ID that is still active is deactivated,
// added to the cluster, and has its own matches queued. Inactive IDs were
// already absorbed, and IDs missing from order were never active; both are
// skipped.
//
// Disjointness pass: clusters are walked in order and any ID already seen in
// an earlier cluster is dropped, so no ID is ever reported twice.
//
// The result partitions order: every ID appears in exactly one cluster,
// singletons included. Clusters come out in order of their representative
// and members are listed in catalog order.
func Build(order []string, direct map[string][]string) []Cluster {
	position := make(map[string]int, len(order))
	active := make(map[string]bool, len(order))
	for i, id := range order {
		if _, ok := position[id]; !ok {
			position[id] = i
		}
		active[id] = true
	}

	absorbed := make([]Cluster, 0, len(order))
	for _, id := range order {
		if !active[id] {
			continue
		}
		active[id] = false

		members := []string{id}
		queue := append([]string(nil), direct[id]...)
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if !active[next] {
				continue
			}
			active[next] = false
			members = append(members, next)
			queue = append(queue, direct[next]...)
		}

		sort.SliceStable(members, func(i, j int) bool {
			return position[members[i]] < position[members[j]]
		})
		absorbed = append(absorbed, Cluster{ID: id, Members: members})
	}

	return disjoint(absorbed)
}

// disjoint drops IDs already consumed by an earlier cluster. A cluster whose
// representative was consumed is re-headed by its first remaining member;
// a cluster left empty is removed.
func disjoint(in []Cluster) []Cluster {
	consumed := make(map[string]struct{})
	out := make([]Cluster, 0, len(in))
	for _, c := range in {
		kept := make([]string, 0, len(c.Members))
		for _, id := range c.Members {
			if _, ok := consumed[id]; ok {
				continue
			}
			consumed[id] = struct{}{}
			kept = append(kept, id)
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, Cluster{ID: kept[0], Members: kept})
	}
	return out
}

// Map returns the clusters keyed by representative ID.
func Map(cs []Cluster) map[string][]string {
	m := make(map[string][]string, len(cs))
	for _, c := range cs {
		m[c.ID] = c.Members
	}
	return m
}

// NonSingleton returns the clusters with more than one member, preserving
// order.
func NonSingleton(cs []Cluster) []Cluster {
	out := make([]Cluster, 0, len(cs))
	for _, c := range cs {
		if c.Size() > 1 {
			out = append(out, c)
		}
	}
	return out
}
