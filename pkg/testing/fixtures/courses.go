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

package fixtures

import (
	"strings"

	"github.com/coursematch/coursematch/pkg/courses/catalog"
)

// CourseCSV is a small course export. With the default options it holds
// two duplicate clusters, {101, 102} and {104, 105, 106}, where 104 and 106
// are only linked through 105, plus two singletons.
const CourseCSV = `course id,degree level,degree category,course,code,code2
101,BA,Science,Introduction to Algorithms,CS1,
102,BA,Science,Algorithms,CS1,CS2
103,MA,Arts,Medieval Poetry,AR2,
104,BS,Design,Game Design,GD1,
105,BS,Design,Game Designs,GD1,
106,BS,Design,Games Designs,GD2,
107,MA,Science,Organic Chemistry II,CH4,
`

// CourseReportCSV is the report expected for CourseCSV with the default
// options.
const CourseReportCSV = `cluster,course id,degree level,degree category,course,code,code2
101,101,BA,Science,Introduction to Algorithms,CS1,
101,102,BA,Science,Algorithms,CS1,CS2
104,104,BS,Design,Game Design,GD1,
104,105,BS,Design,Game Designs,GD1,
104,106,BS,Design,Games Designs,GD2,
`

// NewCourseCatalog loads CourseCSV into a catalog.
func NewCourseCatalog() *catalog.Catalog {
	c, err := catalog.Load(strings.NewReader(CourseCSV), catalog.DefaultColumns())
	if err != nil {
		panic(err)
	}
	return c
}

// NewCourse creates a record with only the ID and title columns set.
func NewCourse(id, title string) catalog.Record {
	return catalog.Record{
		ID:    id,
		Title: title,
		Fields: map[string]string{
			catalog.ColumnID:    id,
			catalog.ColumnTitle: title,
		},
	}
}

// NewCatalog builds a catalog from alternating id, title pairs.
func NewCatalog(idTitles ...string) *catalog.Catalog {
	c := catalog.New([]string{catalog.ColumnID, catalog.ColumnTitle})
	for i := 0; i+1 < len(idTitles); i += 2 {
		c.Add(NewCourse(idTitles[i], idTitles[i+1]))
	}
	return c
}
