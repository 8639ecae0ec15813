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

package attempt

import (
	"testing"
	"time"

	"fortio.org/assert"

	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/timespan"
)

func TestDurationFromTimestamps(t *testing.T) {
	s := clock.AtomicDateTime{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := clock.AtomicDateTime{Time: time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)}
	a := Attempt{Started: &s, Ended: &e}
	d := a.Duration()
	assert.Equal(t, 60.0, d.TotalSeconds())
}

func TestDurationFallsBackToRealTime(t *testing.T) {
	rt := timespan.FromSeconds(42)
	a := Attempt{Time: timespan.Time{RealTime: &rt}}
	d := a.Duration()
	if d == nil || d.TotalSeconds() != 42 {
		t.Errorf("expected fallback to real time, got %v", d)
	}
}

func TestDurationNilWhenNothingAvailable(t *testing.T) {
	a := Attempt{}
	if a.Duration() != nil {
		t.Errorf("expected nil duration")
	}
}
