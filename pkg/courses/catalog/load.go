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

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	// ErrInvalidRecord is returned when a row is missing a required value.
	ErrInvalidRecord = errors.New("invalid course record")
	// ErrMissingColumn is returned when the table header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)

// courseRow is the validated subset of a raw row that the catalog needs.
type courseRow struct {
	ID    string `mapstructure:"id" validate:"notblank"`
	Title string `mapstructure:"title" validate:"notblank"`
}

// RowValidator decodes raw rows into course records and rejects rows that
// lack an ID or title.
type RowValidator struct {
	validate *validator.Validate
	cols     Columns
}

// NewRowValidator creates a RowValidator for the given column mapping.
func NewRowValidator(cols Columns) *RowValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// tag is static and valid, registration cannot fail
	_ = v.RegisterValidation("notblank", validateNotBlank)

	return &RowValidator{validate: v, cols: cols}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func (rv *RowValidator) columnFor(field string) string {
	switch field {
	case "id":
		return rv.cols.ID
	case "title":
		return rv.cols.Title
	default:
		return ""
	}
}

// Record validates a raw row and converts it to a Record. line is the
// 1-based data row number used in error messages.
func (rv *RowValidator) Record(line int, raw map[string]string) (Record, error) {
	var row courseRow
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &row,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == rv.columnFor(fieldName)
		},
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Record{}, fmt.Errorf("row %d: failed to decode: %w", line, err)
	}

	if err := rv.validate.Struct(&row); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%q is empty", rv.columnFor(strings.ToLower(fe.Field()))))
			}
			return Record{}, fmt.Errorf("%w: row %d: %s", ErrInvalidRecord, line, strings.Join(msgs, "; "))
		}
		return Record{}, fmt.Errorf("row %d: validation failed: %w", line, err)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		fields[k] = v
	}

	return Record{
		ID:     strings.TrimSpace(row.ID),
		Title:  row.Title,
		Fields: fields,
	}, nil
}

// FromTable builds a catalog from a raw table. Loading stops at the first
// invalid row, so the catalog never holds a partially-formed record.
func FromTable(t *Table, cols Columns) (*Catalog, error) {
	for _, name := range []string{cols.ID, cols.Title} {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	rv := NewRowValidator(cols)
	c := New(t.Header)
	replaced := 0
	for i, raw := range t.Rows {
		rec, err := rv.Record(i+1, raw)
		if err != nil {
			return nil, err
		}
		if c.Add(rec) {
			replaced++
		}
	}

	if replaced > 0 {
		log.Info().Int("count", replaced).Msg("duplicate course ids replaced by later rows")
	}

	return c, nil
}

// Load reads a CSV course table and builds a catalog from it.
func Load(r io.Reader, cols Columns) (*Catalog, error) {
	t, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return FromTable(t, cols)
}

// LoadFile reads a CSV course table from path on fs.
func LoadFile(fs afero.Fs, path string, cols Columns) (*Catalog, error) {
	t, err := ReadTableFile(fs, path)
	if err != nil {
		return nil, err
	}
	c, err := FromTable(t, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
