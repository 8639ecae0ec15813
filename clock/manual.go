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

package clock

import (
	"sync"
	"time"

	"fortio.org/speedrun/timespan"
)

// Manual is a controllable Source for tests: it never advances on its own,
// only when Advance or Set is called. Timer tests fork one of these per
// test instead of sleeping on the real clock.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a Manual clock starting at the given wall-clock time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() timespan.TimeStamp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return timespan.NewTimeStamp(m.now)
}

func (m *Manual) UtcNow() AtomicDateTime {
	m.mu.Lock()
	defer m.mu.Unlock()
	return AtomicDateTime{Time: m.now.UTC(), SyncedWithAtomicClock: false}
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set moves the clock to an absolute instant.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
