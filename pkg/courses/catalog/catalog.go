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

// Package catalog holds the in-memory course catalog that the matching
// pipeline runs over.
package catalog

import "github.com/rs/zerolog/log"

// Default column names used by course exports.
const (
	ColumnID             = "course id"
	ColumnTitle          = "course"
	ColumnCode           = "code"
	ColumnCode2          = "code2"
	ColumnDegreeLevel    = "degree level"
	ColumnDegreeCategory = "degree category"
	ColumnAssignedTo     = "assigned to"
)

// Columns maps the logical course fields to the header names of a table.
type Columns struct {
	ID             string `toml:"id" validate:"required"`
	Title          string `toml:"title" validate:"required"`
	Code           string `toml:"code"`
	Code2          string `toml:"code2"`
	DegreeLevel    string `toml:"degree_level"`
	DegreeCategory string `toml:"degree_category"`
	AssignedTo     string `toml:"assigned_to"`
}

// DefaultColumns returns the column names of the standard course export.
func DefaultColumns() Columns {
	return Columns{
		ID:             ColumnID,
		Title:          ColumnTitle,
		Code:           ColumnCode,
		Code2:          ColumnCode2,
		DegreeLevel:    ColumnDegreeLevel,
		DegreeCategory: ColumnDegreeCategory,
		AssignedTo:     ColumnAssignedTo,
	}
}

// Record is a single course row. Fields holds every column of the source
// row, including the ID and title columns.
type Record struct {
	Fields map[string]string
	ID     string
	Title  string
}

// Field returns the named column value, or an empty string if the record
// has no such column.
func (r Record) Field(name string) string {
	if name == "" {
		return ""
	}
	return r.Fields[name]
}

// Catalog is an ordered mapping of course ID to record. Iteration follows
// the order in which IDs were first added.
type Catalog struct {
	records map[string]Record
	header  []string
	order   []string
}

// New creates an empty catalog for a table with the given header.
func New(header []string) *Catalog {
	return &Catalog{
		header:  append([]string(nil), header...),
		records: make(map[string]Record),
	}
}

// Add inserts a record. A record with an ID already in the catalog replaces
// the earlier one but keeps its position. Returns true if a record was
// replaced.
func (c *Catalog) Add(rec Record) bool {
	if _, ok := c.records[rec.ID]; ok {
		log.Debug().Str("id", rec.ID).Msg("duplicate course id, keeping last record")
		c.records[rec.ID] = rec
		return true
	}
	c.records[rec.ID] = rec
	c.order = append(c.order, rec.ID)
	return false
}

// Get returns the record for id.
func (c *Catalog) Get(id string) (Record, bool) {
	rec, ok := c.records[id]
	return rec, ok
}

// Len returns the number of distinct course IDs.
func (c *Catalog) Len() int {
	return len(c.order)
}

// IDs returns the course IDs in catalog order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Records returns all records in catalog order.
func (c *Catalog) Records() []Record {
	recs := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		recs = append(recs, c.records[id])
	}
	return recs
}

// Header returns the column names of the source table.
func (c *Catalog) Header() []string {
	return append([]string(nil), c.header...)
}
