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

// Package report writes duplicate clusters out for curator review.
package report

import (
	"fmt"
	"io"

	"github.com/coursematch/coursematch/pkg/courses/catalog"
	"github.com/coursematch/coursematch/pkg/courses/clusters"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Row is one cluster member in the review report.
type Row struct {
	Cluster        string `csv:"cluster"`
	CourseID       string `csv:"course id"`
	DegreeLevel    string `csv:"degree level"`
	DegreeCategory string `csv:"degree category"`
	Course         string `csv:"course"`
	Code           string `csv:"code"`
	Code2          string `csv:"code2"`
}

// Rows projects every member of every multi-member cluster onto a report
// row. Singleton clusters are left out since there is nothing to review.
// Members missing from the catalog are skipped.
func Rows(cat *catalog.Catalog, cs []clusters.Cluster, cols catalog.Columns) []Row {
	var rows []Row
	for _, c := range clusters.NonSingleton(cs) {
		for _, id := range c.Members {
			rec, ok := cat.Get(id)
			if !ok {
				log.Warn().Str("id", id).Msg("cluster member not in catalog")
				continue
			}
			rows = append(rows, Row{
				Cluster:        c.ID,
				CourseID:       rec.ID,
				DegreeLevel:    rec.Field(cols.DegreeLevel),
				DegreeCategory: rec.Field(cols.DegreeCategory),
				Course:         rec.Title,
				Code:           rec.Field(cols.Code),
				Code2:          rec.Field(cols.Code2),
			})
		}
	}
	return rows
}

// Write encodes rows as CSV with a header row.
func Write(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path on fs, replacing any existing file.
func WriteFile(fs afero.Fs, path string, rows []Row) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	return Write(f, rows)
}
