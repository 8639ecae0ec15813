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

package timer

import (
	"testing"
	"time"

	"fortio.org/assert"

	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timespan"
)

func newRun(names ...string) *run.Run {
	r := run.New()
	for _, n := range names {
		r.PushSegment(segment.New(n))
	}
	return r
}

func newTestTimer(t *testing.T, r *run.Run) (*Timer, *clock.Manual) {
	t.Helper()
	mc := clock.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tm, err := New(r, mc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tm, mc
}

func mustGameTimeValue(t *testing.T, tt timespan.Time) float64 {
	t.Helper()
	if tt.GameTime == nil {
		t.Fatalf("expected a game time value, got none")
	}
	return tt.GameTime.TotalSeconds()
}

// TestHappyPathPB is spec.md scenario S1.
func TestHappyPathPB(t *testing.T) {
	r := newRun("A", "B", "C")
	tm, _ := newTestTimer(t, r)

	tm.Start()
	tm.SetGameTime(timespan.FromSeconds(5.0))
	tm.Split()
	tm.SetGameTime(timespan.FromSeconds(10.0))
	tm.Split()
	tm.SetGameTime(timespan.FromSeconds(15.0))
	tm.Split()

	assert.Equal(t, Ended, tm.Phase())

	tm.Reset(true)
	attempts := r.Attempts()
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt in history, got %d", len(attempts))
	}
	assert.Equal(t, 15.0, mustGameTimeValue(t, attempts[0].Time))

	segs := r.Segments()
	wantPB := []float64{5.0, 10.0, 15.0}
	wantBest := []float64{5.0, 5.0, 5.0}
	for i, seg := range segs {
		assert.Equal(t, wantPB[i], mustGameTimeValue(t, seg.PersonalBestSplitTime))
		assert.Equal(t, wantBest[i], mustGameTimeValue(t, seg.BestSegmentTime))
	}

	best := comparison.Generate(comparison.BestSegments, r)
	sumOfBest := best[len(best)-1].GameTime
	if sumOfBest == nil || sumOfBest.TotalSeconds() != 15.0 {
		t.Errorf("expected sum of best 15.0, got %v", sumOfBest)
	}
}

// TestMonotoneEnforcementAfterReset is spec.md scenario S2.
func TestMonotoneEnforcementAfterReset(t *testing.T) {
	r := newRun("A", "B", "C")
	tm, _ := newTestTimer(t, r)

	tm.Start()
	tm.SetGameTime(timespan.FromSeconds(5.0))
	tm.Split()
	tm.SetGameTime(timespan.FromSeconds(15.0))
	tm.Split()
	tm.SetGameTime(timespan.FromSeconds(10.0))
	tm.Split()
	tm.Reset(true)

	segs := r.Segments()
	want := []float64{5.0, 15.0, 15.0}
	for i, seg := range segs {
		assert.Equal(t, want[i], mustGameTimeValue(t, seg.PersonalBestSplitTime))
	}
}

// TestSkipMidRunCombinesSegments is spec.md scenario S3.
func TestSkipMidRunCombinesSegments(t *testing.T) {
	r := newRun("A", "B", "C")
	tm, _ := newTestTimer(t, r)

	tm.Start()
	tm.SetGameTime(timespan.FromSeconds(4.0))
	tm.Split()
	tm.SkipSplit()
	tm.SetGameTime(timespan.FromSeconds(14.0))
	tm.Split()
	tm.Reset(true)

	segs := r.Segments()
	if v, ok := segs[1].History.Get(1); !ok || !v.IsEmpty() {
		t.Errorf("expected segment 2's history entry to be present but empty (skipped), got ok=%v v=%v", ok, v)
	}
	if v, ok := segs[2].History.Get(1); !ok || v.GameTime == nil || v.GameTime.TotalSeconds() != 10.0 {
		t.Errorf("expected segment 3's combined segment time of 10.0, got %v (present=%v)", v, ok)
	}

	best := comparison.Generate(comparison.BestSegments, r)
	if best[1] != (timespan.Time{}) {
		t.Errorf("expected best-segments comparison absent at segment 2, got %v", best[1])
	}
	if best[2].GameTime == nil || best[2].GameTime.TotalSeconds() != 14.0 {
		t.Errorf("expected best-segments cumulative 14.0 at segment 3, got %v", best[2])
	}
}

// TestUndoAllPausesOnEnded is spec.md scenario S4.
func TestUndoAllPausesOnEnded(t *testing.T) {
	r := newRun("A")
	tm, mc := newTestTimer(t, r)

	tm.Start()
	tm.InitializeGameTime()
	mc.Advance(2 * time.Second)
	tm.Pause()
	mc.Advance(3 * time.Second)
	tm.Resume()
	mc.Advance(2 * time.Second)
	tm.Split()

	assert.Equal(t, Ended, tm.Phase())
	seg := r.Segments()[0]
	if seg.SplitTime.RealTime == nil || seg.SplitTime.RealTime.TotalSeconds() != 4.0 {
		t.Fatalf("expected pre-undo real time 4.0, got %v", seg.SplitTime.RealTime)
	}

	tm.UndoAllPauses()

	if got := seg.SplitTime.RealTime.TotalSeconds(); got != 7.0 {
		t.Errorf("expected real time shifted to 7.0 after undo-all-pauses, got %v", got)
	}
	if got := seg.SplitTime.GameTime.TotalSeconds(); got != 7.0 {
		t.Errorf("expected game time shifted to 7.0 after undo-all-pauses, got %v", got)
	}
}

func TestSplitOrStartAndToggle(t *testing.T) {
	r := newRun("A", "B")
	tm, _ := newTestTimer(t, r)

	tm.TogglePauseOrStart()
	assert.Equal(t, Running, tm.Phase())
	tm.TogglePauseOrStart()
	assert.Equal(t, Paused, tm.Phase())
	tm.TogglePauseOrStart()
	assert.Equal(t, Running, tm.Phase())

	tm.SplitOrStart()
	assert.Equal(t, 1, tm.CurrentSplitIndex())
}

func TestUndoSplitReturnsFromEnded(t *testing.T) {
	r := newRun("A")
	tm, _ := newTestTimer(t, r)
	tm.Start()
	tm.Split()
	assert.Equal(t, Ended, tm.Phase())
	tm.UndoSplit()
	assert.Equal(t, Running, tm.Phase())
	assert.Equal(t, 0, tm.CurrentSplitIndex())
}

func TestSkipNotAllowedOnLastSegment(t *testing.T) {
	r := newRun("A")
	tm, _ := newTestTimer(t, r)
	tm.Start()
	tm.SkipSplit()
	assert.Equal(t, 0, tm.CurrentSplitIndex())
	assert.Equal(t, Running, tm.Phase())
}

func TestResetFromNotRunningIsNoOp(t *testing.T) {
	r := newRun("A")
	tm, _ := newTestTimer(t, r)
	tm.Reset(true)
	assert.Equal(t, NotRunning, tm.Phase())
	if len(r.Attempts()) != 0 {
		t.Errorf("expected no attempt recorded")
	}
}

func TestSwitchComparisonWraps(t *testing.T) {
	r := newRun("A")
	tm, _ := newTestTimer(t, r)
	assert.Equal(t, comparison.PersonalBest, tm.CurrentComparison())
	tm.SwitchToPreviousComparison()
	assert.Equal(t, comparison.None, tm.CurrentComparison())
	tm.SwitchToNextComparison()
	assert.Equal(t, comparison.PersonalBest, tm.CurrentComparison())
}

// TestStartAppliesOffset verifies a pre-roll (negative) offset is folded
// into adjusted_start_time at Start, so the real-time reading starts at
// the offset and counts up toward zero instead of starting at zero.
func TestStartAppliesOffset(t *testing.T) {
	r := newRun("A")
	r.Offset = timespan.FromSeconds(-5.0)
	tm, mc := newTestTimer(t, r)

	tm.Start()
	ct := tm.CurrentTime()
	if ct.RealTime == nil || ct.RealTime.TotalSeconds() != -5.0 {
		t.Fatalf("expected real time -5.0 right after start with pre-roll offset, got %v", ct.RealTime)
	}

	mc.Advance(5 * time.Second)
	ct = tm.CurrentTime()
	if ct.RealTime == nil || ct.RealTime.TotalSeconds() != 0.0 {
		t.Errorf("expected real time 0.0 after offset elapses, got %v", ct.RealTime)
	}
}

// TestNewPBImportsOldPersonalBestIntoHistory is scenario S6 exercised
// through the real Timer.Reset path (not by calling
// Run.ImportSegmentHistory directly): a faked PB of 5/10/15 is beaten by
// an attempt of 4/9/13, so every segment's old PB split must land in
// history at a non-positive index before the new PB overwrites it.
func TestNewPBImportsOldPersonalBestIntoHistory(t *testing.T) {
	r := newRun("A", "B", "C")
	segs := r.Segments()
	segs[0].PersonalBestSplitTime = timespan.Time{GameTime: timespan.Ptr(timespan.FromSeconds(5))}
	segs[1].PersonalBestSplitTime = timespan.Time{GameTime: timespan.Ptr(timespan.FromSeconds(10))}
	segs[2].PersonalBestSplitTime = timespan.Time{GameTime: timespan.Ptr(timespan.FromSeconds(15))}

	tm, _ := newTestTimer(t, r)
	tm.SetCurrentTimingMethod(timespan.GameTime)
	tm.Start()
	tm.SetGameTime(timespan.FromSeconds(4.0))
	tm.Split()
	tm.SetGameTime(timespan.FromSeconds(9.0))
	tm.Split()
	tm.SetGameTime(timespan.FromSeconds(13.0))
	tm.Split()
	tm.Reset(true)

	if segs[0].History.Len() != 2 {
		t.Errorf("expected segment 1 to carry both the imported fake PB entry and the real attempt entry, got %d", segs[0].History.Len())
	}
	if segs[2].History.Len() != 2 {
		t.Errorf("expected segment 3 to carry both the imported fake PB entry and the real attempt entry, got %d", segs[2].History.Len())
	}
	wantPB := []float64{4.0, 9.0, 13.0}
	for i, seg := range segs {
		assert.Equal(t, wantPB[i], mustGameTimeValue(t, seg.PersonalBestSplitTime))
	}
}

// TestRecordAttemptOmitsPauseUnlessEnded verifies an attempt abandoned
// (reset) before Ended carries no pause_time, matching
// update_attempt_history.
func TestRecordAttemptOmitsPauseUnlessEnded(t *testing.T) {
	r := newRun("A", "B")
	tm, mc := newTestTimer(t, r)

	tm.Start()
	mc.Advance(1 * time.Second)
	tm.Pause()
	mc.Advance(1 * time.Second)
	tm.Resume()
	tm.Reset(true)

	attempts := r.Attempts()
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	if attempts[0].PauseTime != nil {
		t.Errorf("expected no pause_time recorded for an attempt abandoned before Ended, got %v", attempts[0].PauseTime)
	}
}

func TestNewEmptyRunFails(t *testing.T) {
	r := run.New()
	_, err := New(r, nil)
	if err != ErrEmptyRun {
		t.Fatalf("expected ErrEmptyRun, got %v", err)
	}
}
