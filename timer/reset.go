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
	"fortio.org/log"

	"fortio.org/speedrun/timespan"
)

// Reset ends the current attempt and returns the timer to NotRunning. If
// updateSplits is true, the attempt is appended to history, best segment
// times and (if this attempt beats the PB on the current timing method)
// personal-best split times are updated, segment history is extended, and
// fix_splits/regenerate_comparisons run before the run is handed back. A
// no-op from NotRunning.
func (t *Timer) Reset(updateSplits bool) {
	if t.phase == NotRunning {
		return
	}
	if t.phase != Ended {
		ended := t.clock.UtcNow()
		t.attemptEnded = &ended
	}
	t.isGameTimePaused = false
	t.gameTimePauseTime = nil
	t.loadingTimes = nil

	if updateSplits {
		t.recordAttempt()
		t.updateBestSegmentTimes()
		newPB := t.maybeUpdatePersonalBest()
		t.r.UpdateSegmentHistory(t.currentSplitIndex)
		t.r.FixSplits()
		t.r.RegenerateComparisons()
		if newPB {
			t.r.Metadata.RunID = ""
		}
		t.r.MarkAsChanged()
	}
	t.finishReset()
	log.Debugf("timer: reset (update_splits=%v)", updateSplits)
}

// ResetAndSetAttemptAsPB behaves like Reset(true) except the personal-best
// split times are unconditionally overwritten with this attempt's recorded
// splits (for reached segments; unreached segments get an absent PB),
// regardless of whether this attempt was actually faster. Works from any
// non-NotRunning phase.
func (t *Timer) ResetAndSetAttemptAsPB() {
	if t.phase == NotRunning {
		return
	}
	if t.attemptStarted == nil {
		started := t.clock.UtcNow()
		t.attemptStarted = &started
	}
	ended := t.clock.UtcNow()
	// Guarantee ended >= started even though started may already be set
	// from much earlier in the attempt.
	if t.attemptStarted != nil && ended.Time.Before(t.attemptStarted.Time) {
		ended = *t.attemptStarted
	}
	t.attemptEnded = &ended

	t.isGameTimePaused = false
	t.gameTimePauseTime = nil
	t.loadingTimes = nil

	t.recordAttempt()
	t.updateBestSegmentTimes()
	// Import the old PB's per-segment times into history, at a non-positive
	// index, before it is overwritten below, mirroring set_run_as_pb.
	t.r.ImportSegmentHistory()
	segs := t.r.Segments()
	for i, seg := range segs {
		if i < t.currentSplitIndex {
			seg.PersonalBestSplitTime = seg.SplitTime
		} else {
			seg.PersonalBestSplitTime = timespan.Time{}
		}
	}
	t.r.UpdateSegmentHistory(t.currentSplitIndex)
	t.r.FixSplits()
	t.r.RegenerateComparisons()
	t.r.Metadata.RunID = ""
	t.r.MarkAsChanged()
	t.finishReset()
	log.Debugf("timer: reset-and-set-attempt-as-pb")
}

// recordAttempt appends the current attempt to history: its full Time and
// accumulated pause if Ended, otherwise an empty time and no pause (an
// attempt abandoned before Ended carries no pause_time, matching
// update_attempt_history).
func (t *Timer) recordAttempt() {
	var attemptTime timespan.Time
	var pauseTime *timespan.TimeSpan
	if t.phase == Ended {
		attemptTime = t.CurrentTime()
		if total := t.accumulatedPause(); !total.IsZero() {
			pauseTime = &total
		}
	}
	t.r.AddAttempt(attemptTime, t.attemptStarted, t.attemptEnded, pauseTime)
}

// updateBestSegmentTimes lowers each reached segment's best segment time
// to its recorded live segment time where that is an improvement.
func (t *Timer) updateBestSegmentTimes() {
	segs := t.r.Segments()
	zero := timespan.Zero
	prev := timespan.Time{RealTime: &zero, GameTime: &zero}
	for i := 0; i < t.currentSplitIndex && i < len(segs); i++ {
		seg := segs[i]
		segTime := seg.SplitTime.Sub(prev)
		prev = seg.SplitTime
		for _, m := range timespan.Methods() {
			v := segTime.Get(m)
			if v == nil {
				continue
			}
			cur := seg.BestSegmentTime.Get(m)
			if cur == nil || v.Cmp(*cur) < 0 {
				vv := *v
				seg.BestSegmentTime = seg.BestSegmentTime.With(m, &vv)
			}
		}
	}
}

// maybeUpdatePersonalBest rewrites every segment's PB split time to this
// attempt's recorded splits if, and only if, the attempt finished (Ended)
// and its final time on the current timing method beats the existing PB
// (absence counts as worse than any present value). Returns whether a new
// PB was set.
func (t *Timer) maybeUpdatePersonalBest() bool {
	if t.phase != Ended {
		return false
	}
	segs := t.r.Segments()
	if len(segs) == 0 {
		return false
	}
	last := segs[len(segs)-1]
	m := t.currentTimingMethod
	nv := last.SplitTime.Get(m)
	ov := last.PersonalBestSplitTime.Get(m)
	better := nv != nil && (ov == nil || nv.Cmp(*ov) < 0)
	if !better {
		return false
	}
	// Import the old PB's per-segment times into history, at a non-positive
	// index, before it is overwritten below, mirroring set_run_as_pb.
	t.r.ImportSegmentHistory()
	for i, seg := range segs {
		if i < t.currentSplitIndex {
			seg.PersonalBestSplitTime = seg.SplitTime
		} else {
			seg.PersonalBestSplitTime = timespan.Time{}
		}
	}
	return true
}

// finishReset clears transient per-attempt state and returns to
// NotRunning.
func (t *Timer) finishReset() {
	for _, seg := range t.r.Segments() {
		seg.ClearSplitTime()
	}
	t.phase = NotRunning
	t.currentSplitIndex = -1
	t.attemptStarted = nil
	t.attemptEnded = nil
	t.timePausedAt = timespan.Zero
}

// UndoAllPauses removes the effect of every pause taken during the current
// (or just-finished) attempt. On Ended, the last segment's recorded split
// time is shifted forward by the total accumulated pause on both methods,
// since current_time already had that pause subtracted out. On Paused,
// the frozen reading and the attempt's notional start are both advanced by
// the same amount so a subsequent resume continues without it; this choice
// resolves the ambiguity noted in spec.md's discussion of the Rust
// original by keeping the same "add back the pause" rule used for Ended.
func (t *Timer) UndoAllPauses() {
	pause := t.accumulatedPause()
	if pause.IsZero() {
		return
	}
	switch t.phase {
	case Ended:
		segs := t.r.Segments()
		last := segs[len(segs)-1]
		for _, m := range timespan.Methods() {
			if v := last.SplitTime.Get(m); v != nil {
				nv := v.Add(pause)
				last.SplitTime = last.SplitTime.With(m, &nv)
			}
		}
		t.startTime = t.adjustedStartTime
	case Paused:
		t.timePausedAt = t.timePausedAt.Add(pause)
		t.startTime = t.adjustedStartTime
	}
}
