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

// Package update reconciles a previously reviewed course table with newly
// coded rows.
package update

import (
	"fmt"
	"strings"

	"github.com/coursematch/coursematch/pkg/courses/catalog"
	"github.com/rs/zerolog/log"
)

// Result is the reconciled table plus counters for reporting.
type Result struct {
	Header []string
	Rows   []map[string]string
	// Changed counts rows whose codes were replaced.
	Changed int
	// Unmatched counts update rows whose ID is not in the original table.
	Unmatched int
}

// Apply copies code and code2 from updates onto the original rows with the
// same course ID. A row is only touched when either code differs, and then
// its assigned-to column is set to coder. All other columns pass through
// unchanged, original row order is kept, and the assigned-to column is
// appended to the header when missing.
//
// IDs are compared with surrounding whitespace trimmed, as the catalog
// does. Duplicate IDs behave like the catalog: the last row wins and keeps the
// position of the first.
func Apply(original, updates *catalog.Table, cols catalog.Columns, coder string) (*Result, error) {
	for _, name := range []string{cols.ID, cols.Code, cols.Code2} {
		if name == "" || !original.HasColumn(name) {
			return nil, fmt.Errorf("original data: %w: %q", catalog.ErrMissingColumn, name)
		}
		if !updates.HasColumn(name) {
			return nil, fmt.Errorf("update data: %w: %q", catalog.ErrMissingColumn, name)
		}
	}
	if cols.AssignedTo == "" {
		return nil, fmt.Errorf("%w: assigned-to column not configured", catalog.ErrMissingColumn)
	}

	byID := make(map[string]map[string]string, len(updates.Rows))
	for _, row := range updates.Rows {
		byID[strings.TrimSpace(row[cols.ID])] = row
	}

	header := append([]string(nil), original.Header...)
	if !original.HasColumn(cols.AssignedTo) {
		header = append(header, cols.AssignedTo)
	}

	res := &Result{Header: header}
	index := make(map[string]int, len(original.Rows))
	matched := make(map[string]struct{}, len(byID))
	var changed []bool
	for _, orig := range original.Rows {
		id := strings.TrimSpace(orig[cols.ID])
		row := make(map[string]string, len(header))
		for k, v := range orig {
			row[k] = v
		}

		recoded := false
		if upd, ok := byID[id]; ok {
			matched[id] = struct{}{}
			if row[cols.Code] != upd[cols.Code] || row[cols.Code2] != upd[cols.Code2] {
				row[cols.Code] = upd[cols.Code]
				row[cols.Code2] = upd[cols.Code2]
				row[cols.AssignedTo] = coder
				recoded = true
			}
		}

		if i, ok := index[id]; ok {
			res.Rows[i] = row
			changed[i] = recoded
			continue
		}
		index[id] = len(res.Rows)
		res.Rows = append(res.Rows, row)
		changed = append(changed, recoded)
	}

	for _, c := range changed {
		if c {
			res.Changed++
		}
	}

	for id := range byID {
		if _, ok := matched[id]; !ok {
			res.Unmatched++
			log.Debug().Str("id", id).Msg("update row has no matching course")
		}
	}

	return res, nil
}
