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

// Package attempt holds one entry of a run's append-only attempt history.
package attempt

import (
	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/timespan"
)

// Attempt is one completed-or-abandoned timing session.
type Attempt struct {
	Index     int32
	Time      timespan.Time
	Started   *clock.AtomicDateTime
	Ended     *clock.AtomicDateTime
	PauseTime *timespan.TimeSpan
}

// Duration returns Ended - Started when both are present, else falls back
// to the recorded real time (matches the Rust original's Attempt::duration,
// which covers pre-1.6 LiveSplit data that never recorded timestamps).
func (a Attempt) Duration() *timespan.TimeSpan {
	if d := clock.OptionOp(a.Started, a.Ended, func(s, e clock.AtomicDateTime) timespan.TimeSpan {
		return e.Sub(s)
	}); d != nil {
		return d
	}
	return a.Time.RealTime
}
