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

package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrEmptyTable is returned when the input has no header row.
var ErrEmptyTable = errors.New("table has no header")

// Table is a raw CSV table with its header order preserved.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// ReadTable reads a CSV table with a header row. Every data row must have
// the same number of fields as the header.
func ReadTable(r io.Reader) (*Table, error) {
	lines, err := gocsv.DefaultCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyTable
	}

	header := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := make(map[string]string, len(header))
		for i, h := range header {
			row[h] = line[i]
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// ReadTableFile reads a CSV table from path on fs.
func ReadTableFile(fs afero.Fs, path string) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close file")
		}
	}()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteTable writes header and rows as CSV. Columns a row does not have are
// written empty.
func WriteTable(w io.Writer, header []string, rows []map[string]string) error {
	writer := gocsv.DefaultCSVWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	line := make([]string, len(header))
	for _, row := range rows {
		for i, h := range header {
			line[i] = row[h]
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteTableFile writes a CSV table to path on fs, replacing any existing
// file.
func WriteTableFile(fs afero.Fs, path string, header []string, rows []map[string]string) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	return WriteTable(f, header, rows)
}
