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

package snapshot

import (
	"testing"
	"time"

	"fortio.org/assert"

	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timer"
)

func TestSnapshotFreezesTimeAcrossClockAdvance(t *testing.T) {
	r := run.New()
	r.PushSegment(segment.New("A"))
	mc := clock.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tm, err := timer.New(r, mc)
	if err != nil {
		t.Fatalf("timer.New: %v", err)
	}
	tm.Start()
	mc.Advance(2 * time.Second)

	snap := New(tm)
	mc.Advance(5 * time.Second)

	got := snap.CurrentTime().RealTime
	if got == nil || got.TotalSeconds() != 2.0 {
		t.Fatalf("expected snapshot frozen at 2.0s, got %v", got)
	}
	// The live timer itself has moved on; the snapshot must not have.
	live := tm.CurrentTime().RealTime
	if live == nil || live.TotalSeconds() != 7.0 {
		t.Fatalf("expected live timer at 7.0s, got %v", live)
	}
	assert.Equal(t, timer.Running, snap.Phase())
	assert.Equal(t, 0, snap.CurrentSplitIndex())
}
