// Copyright 2024 Fortio Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package snapshot is the C8 component: a read-only façade over a live
// Timer that freezes current_time and current_timing_method once, at
// construction, so every analysis.* call made against one Snapshot within a
// single UI frame agrees on what "now" means (spec.md §4.8's "real-time and
// delta never disagree by a sub-millisecond tick").
package snapshot

import (
	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/timer"
	"fortio.org/speedrun/timespan"
)

// Snapshot borrows a Timer for the lifetime of one render: everything it
// exposes that would otherwise re-read the clock instead returns the values
// captured at New.
type Snapshot struct {
	t *timer.Timer

	currentTime  timespan.Time
	timingMethod timespan.Method
	phase        timer.Phase
	splitIndex   int
	comparison   comparison.Name
}

// New captures a Snapshot of t's current state.
func New(t *timer.Timer) *Snapshot {
	return &Snapshot{
		t:            t,
		currentTime:  t.CurrentTime(),
		timingMethod: t.CurrentTimingMethod(),
		phase:        t.Phase(),
		splitIndex:   t.CurrentSplitIndex(),
		comparison:   t.CurrentComparison(),
	}
}

// CurrentTime returns the Time captured at construction.
func (s *Snapshot) CurrentTime() timespan.Time { return s.currentTime }

// CurrentTimingMethod returns the Method captured at construction.
func (s *Snapshot) CurrentTimingMethod() timespan.Method { return s.timingMethod }

// Phase returns the Phase captured at construction.
func (s *Snapshot) Phase() timer.Phase { return s.phase }

// CurrentSplitIndex returns the split index captured at construction.
func (s *Snapshot) CurrentSplitIndex() int { return s.splitIndex }

// CurrentComparison returns the selected comparison name captured at
// construction.
func (s *Snapshot) CurrentComparison() comparison.Name { return s.comparison }

// Run returns the Run the underlying timer drives. Unlike the captured
// fields above, segment and history data is read live: only the timer's own
// clock-derived fields need freezing for frame consistency.
func (s *Snapshot) Run() *run.Run { return s.t.Run() }

// Timer returns the underlying timer, for callers (e.g. analysis functions
// that need CurrentSplitIndex and Run together) that accept a *timer.Timer
// directly. It does not re-enter the frozen fields above.
func (s *Snapshot) Timer() *timer.Timer { return s.t }
