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

package mocks

import "github.com/stretchr/testify/mock"

// MockProgress is a testify mock for matcher.Progress.
//
// Example:
//
//	progress := &MockProgress{}
//	progress.On("Step", mock.Anything, 3).Return()
type MockProgress struct {
	mock.Mock
}

// Step records a progress update.
func (m *MockProgress) Step(done, total int) {
	m.Called(done, total)
}
