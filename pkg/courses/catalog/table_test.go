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
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteTable(&buf, []string{"id", "name", "extra"}, []map[string]string{
		{"id": "1", "name": "Logic, Formal", "extra": "x"},
		{"id": "2", "name": "Ethics"},
	})
	require.NoError(t, err)

	assert.Equal(t, "id,name,extra\n1,\"Logic, Formal\",x\n2,Ethics,\n", buf.String())
}

func TestWriteTableRoundTrip(t *testing.T) {
	t.Parallel()

	in := "course id,course,notes\n1,\"Art, Design\",\"line\nbreak\"\n2,Ethics,\n"
	tbl, err := ReadTable(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl.Header, tbl.Rows))
	assert.Equal(t, in, buf.String())
}

func TestWriteTableFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, WriteTableFile(fs, "/out.csv", []string{"a"}, []map[string]string{{"a": "1"}}))

	tbl, err := ReadTableFile(fs, "/out.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tbl.Header)
	assert.Equal(t, []map[string]string{{"a": "1"}}, tbl.Rows)
}
