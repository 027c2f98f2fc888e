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

package cli

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const progressInterval = 2 * time.Second

// progressLogger reports scoring progress at most once per interval, plus
// the first and the final step.
type progressLogger struct {
	clock     clockwork.Clock
	start     time.Time
	sometimes rate.Sometimes
}

func newProgressLogger(clock clockwork.Clock, interval time.Duration) *progressLogger {
	return &progressLogger{
		clock:     clock,
		start:     clock.Now(),
		sometimes: rate.Sometimes{First: 1, Interval: interval},
	}
}

func (p *progressLogger) Step(done, total int) {
	if done >= total {
		log.Info().
			Int("total", total).
			Dur("elapsed", p.clock.Since(p.start)).
			Msg("scored all course names")
		return
	}
	p.sometimes.Do(func() {
		log.Info().
			Int("done", done).
			Int("total", total).
			Dur("elapsed", p.clock.Since(p.start)).
			Msg("scoring course names")
	})
}
