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

package helpers

import (
	"testing"

	"github.com/coursematch/coursematch/pkg/courses/clusters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertValidPartition validates that clusters partition ids: every id is
// in exactly one cluster, no cluster is empty and each cluster is headed by
// its first member.
func AssertValidPartition(t *testing.T, ids []string, cs []clusters.Cluster) {
	t.Helper()

	seen := make(map[string]string, len(ids))
	for _, c := range cs {
		require.NotEmpty(t, c.Members, "cluster %s has no members", c.ID)
		assert.Equal(t, c.Members[0], c.ID, "cluster %s is not headed by its first member", c.ID)
		for _, m := range c.Members {
			if prev, ok := seen[m]; ok {
				require.Failf(t, "course in two clusters", "%s is in %s and %s", m, prev, c.ID)
			}
			seen[m] = c.ID
		}
	}

	for _, id := range ids {
		assert.Contains(t, seen, id, "course %s is in no cluster", id)
	}
	assert.Len(t, seen, len(ids), "clusters contain unknown courses")
}
