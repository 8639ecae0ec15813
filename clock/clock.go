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

// Package clock supplies the monotonic and wall-clock time sources the
// timer state machine is built on. Like periodic.RunnerOptions never reads
// the system clock directly inside a hot loop without going through an
// injectable seam, the Timer never calls time.Now() itself: it always goes
// through a Source, so tests can fork a deterministic clock per timer.
package clock

import (
	"time"

	"fortio.org/speedrun/timespan"
)

// Source supplies monotonic instants and wall-clock date-times. The engine
// only ever talks to a Source, never to the time package directly.
type Source interface {
	// Now returns a monotonic TimeStamp.
	Now() timespan.TimeStamp
	// UtcNow returns the current wall-clock instant.
	UtcNow() AtomicDateTime
}

// System is the default Source, backed by the real process clock.
type System struct{}

func (System) Now() timespan.TimeStamp {
	return timespan.NewTimeStamp(time.Now())
}

func (System) UtcNow() AtomicDateTime {
	return AtomicDateTime{Time: time.Now().UTC(), SyncedWithAtomicClock: false}
}

// Default is the process-wide System clock instance, handed to Timers that
// are not given an explicit Source.
var Default Source = System{}

// AtomicDateTime is a wall-clock UTC instant plus a flag recording whether
// it was obtained from (or synchronized against) an atomic/NTP clock.
type AtomicDateTime struct {
	Time                  time.Time
	SyncedWithAtomicClock bool
}

// Now returns the current wall-clock instant via the process clock,
// defaulting SyncedWithAtomicClock to false.
func Now() AtomicDateTime {
	return Default.UtcNow()
}

// Sub returns the TimeSpan elapsed between rhs and t.
func (t AtomicDateTime) Sub(rhs AtomicDateTime) timespan.TimeSpan {
	return timespan.FromDuration(t.Time.Sub(rhs.Time))
}

// OptionOp combines two optional AtomicDateTimes, propagating absence.
func OptionOp[R any](a, b *AtomicDateTime, f func(a, b AtomicDateTime) R) *R {
	if a == nil || b == nil {
		return nil
	}
	r := f(*a, *b)
	return &r
}
