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

// Package timer is the live-attempt state machine (spec.md C6): phase,
// current split index, start/pause bookkeeping, and the command set
// (Start, Split, SkipSplit, UndoSplit, Pause, Resume, Reset) a front-end
// drives. It is the sole writer of a Run while an attempt is active, the
// same way periodic.RunnerOptions is the sole driver of a periodic.Runner
// in the teacher repo: every command is non-blocking, pure CPU, and reads
// its clock only through an injected clock.Source.
package timer

import (
	"fortio.org/log"

	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/timespan"
)

// Timer drives one live attempt against a Run. A Run is owned by at most
// one Timer at a time (spec.md §3 ownership).
type Timer struct {
	r     *run.Run
	clock clock.Source

	phase               Phase
	currentSplitIndex   int
	currentTimingMethod timespan.Method
	currentComparison   comparison.Name

	startTime         timespan.TimeStamp
	adjustedStartTime timespan.TimeStamp
	timePausedAt      timespan.TimeSpan

	isGameTimePaused  bool
	gameTimePauseTime *timespan.TimeSpan
	loadingTimes      *timespan.TimeSpan

	attemptStarted *clock.AtomicDateTime
	attemptEnded   *clock.AtomicDateTime
}

// New constructs a Timer over r using the given clock source. Returns
// ErrEmptyRun if r has no segments (spec.md §3: "segments is non-empty
// whenever a timer is constructed from the run").
func New(r *run.Run, src clock.Source) (*Timer, error) {
	if r.IsEmpty() {
		return nil, ErrEmptyRun
	}
	if src == nil {
		src = clock.Default
	}
	return &Timer{
		r:                   r,
		clock:               src,
		phase:               NotRunning,
		currentSplitIndex:   -1,
		currentTimingMethod: timespan.RealTime,
		currentComparison:   comparison.PersonalBest,
	}, nil
}

// Run returns the Run this timer drives.
func (t *Timer) Run() *run.Run { return t.r }

// Phase returns the current lifecycle phase.
func (t *Timer) Phase() Phase { return t.phase }

// CurrentSplitIndex returns the index of the next segment to split. It is
// -1 when NotRunning and len(segments) when Ended.
func (t *Timer) CurrentSplitIndex() int { return t.currentSplitIndex }

// CurrentTimingMethod returns the method new analysis defaults to reading.
func (t *Timer) CurrentTimingMethod() timespan.Method { return t.currentTimingMethod }

// SetCurrentTimingMethod changes which method is preferred for display.
// Per spec.md §4.6 this never sets the modification flag.
func (t *Timer) SetCurrentTimingMethod(m timespan.Method) { t.currentTimingMethod = m }

// CurrentComparison returns the name of the comparison the user selected.
func (t *Timer) CurrentComparison() comparison.Name { return t.currentComparison }

// SetCurrentComparison selects a comparison by name, failing if it is not
// registered on the run.
func (t *Timer) SetCurrentComparison(name comparison.Name) error {
	for _, n := range t.r.Comparisons() {
		if n == name {
			t.currentComparison = name
			return nil
		}
	}
	return ErrUnknownComparison
}

// SwitchToNextComparison moves the selection forward, wrapping around.
func (t *Timer) SwitchToNextComparison() {
	names := t.r.Comparisons()
	if len(names) == 0 {
		return
	}
	idx := comparisonIndex(names, t.currentComparison)
	t.currentComparison = names[(idx+1)%len(names)]
}

// SwitchToPreviousComparison moves the selection backward, wrapping around.
func (t *Timer) SwitchToPreviousComparison() {
	names := t.r.Comparisons()
	if len(names) == 0 {
		return
	}
	idx := comparisonIndex(names, t.currentComparison)
	t.currentComparison = names[(idx-1+len(names))%len(names)]
}

func comparisonIndex(names []comparison.Name, want comparison.Name) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return 0
}

// AttemptStarted returns the wall-clock stamp of the current attempt's
// start, or nil if none is in progress.
func (t *Timer) AttemptStarted() *clock.AtomicDateTime { return t.attemptStarted }

// AttemptEnded returns the wall-clock stamp the attempt ended at, set once
// the timer reaches Ended.
func (t *Timer) AttemptEnded() *clock.AtomicDateTime { return t.attemptEnded }

// currentRealTime implements the real-time half of the clock law in
// spec.md §4.6.
func (t *Timer) currentRealTime() timespan.TimeSpan {
	switch t.phase {
	case Running:
		return t.clock.Now().Sub(t.adjustedStartTime)
	case Paused:
		return t.timePausedAt
	case Ended:
		segs := t.r.Segments()
		if len(segs) == 0 {
			return timespan.Zero
		}
		if v := segs[len(segs)-1].SplitTime.RealTime; v != nil {
			return *v
		}
		return timespan.Zero
	default: // NotRunning
		return t.r.Offset
	}
}

// CurrentTime returns the live Time pair per the clock law of spec.md
// §4.6: real time from currentRealTime, game time overridden by a paused
// reading or derived from loading times. In Ended, game time is the last
// segment's recorded game-time split, just as real time is.
func (t *Timer) CurrentTime() timespan.Time {
	rt := t.currentRealTime()
	result := timespan.Time{RealTime: &rt}
	switch {
	case t.phase == Ended:
		if segs := t.r.Segments(); len(segs) > 0 {
			result.GameTime = segs[len(segs)-1].SplitTime.GameTime
		}
	case t.isGameTimePaused:
		result.GameTime = t.gameTimePauseTime
	case t.loadingTimes != nil:
		gt := rt.Sub(*t.loadingTimes)
		result.GameTime = &gt
	}
	return result
}

// Start begins a new attempt. No-op unless NotRunning.
func (t *Timer) Start() {
	if t.phase != NotRunning {
		return
	}
	now := t.clock.Now()
	// adjusted_start_time is pushed back by the run's offset so a
	// pre-roll (negative offset) reads as counting up from the offset
	// toward zero instead of starting at zero.
	t.adjustedStartTime = now.MinusSpan(t.r.Offset)
	t.startTime = t.adjustedStartTime
	t.timePausedAt = t.r.Offset
	t.isGameTimePaused = false
	t.gameTimePauseTime = nil
	t.loadingTimes = nil
	t.currentSplitIndex = 0
	started := t.clock.UtcNow()
	t.attemptStarted = &started
	t.attemptEnded = nil
	t.phase = Running
	t.r.StartNextRun()
	log.Debugf("timer: start")
}

// SplitOrStart starts if NotRunning, otherwise splits.
func (t *Timer) SplitOrStart() {
	if t.phase == NotRunning {
		t.Start()
		return
	}
	t.Split()
}

// TogglePauseOrStart starts from NotRunning, pauses from Running, resumes
// from Paused. No-op from Ended.
func (t *Timer) TogglePauseOrStart() {
	switch t.phase {
	case NotRunning:
		t.Start()
	case Running:
		t.Pause()
	case Paused:
		t.Resume()
	}
}

// Split records the live time onto the current segment and advances. No-op
// unless Running with a non-negative real time reading.
func (t *Timer) Split() {
	if t.phase != Running {
		return
	}
	ct := t.CurrentTime()
	if ct.RealTime != nil && ct.RealTime.Cmp(timespan.Zero) < 0 {
		return
	}
	segs := t.r.Segments()
	segs[t.currentSplitIndex].SplitTime = ct
	t.currentSplitIndex++
	if t.currentSplitIndex >= len(segs) {
		t.phase = Ended
		ended := t.clock.UtcNow()
		t.attemptEnded = &ended
	}
	t.r.MarkAsChanged()
	log.Debugf("timer: split at index %d, phase %v", t.currentSplitIndex, t.phase)
}

// SkipSplit clears the current segment's split time and advances without
// recording it. No-op unless Running or Paused, and not on the last
// segment.
func (t *Timer) SkipSplit() {
	if t.phase != Running && t.phase != Paused {
		return
	}
	segs := t.r.Segments()
	if t.currentSplitIndex >= len(segs)-1 {
		return
	}
	segs[t.currentSplitIndex].ClearSplitTime()
	t.currentSplitIndex++
}

// UndoSplit regresses the split index and clears the now-current segment's
// recorded split. No-op unless there is an active attempt past its first
// segment.
func (t *Timer) UndoSplit() {
	if t.phase == NotRunning || t.currentSplitIndex <= 0 {
		return
	}
	if t.phase == Ended {
		t.phase = Running
	}
	t.currentSplitIndex--
	t.r.Segments()[t.currentSplitIndex].ClearSplitTime()
}

// Pause freezes the real-time reading. No-op unless Running.
func (t *Timer) Pause() {
	if t.phase != Running {
		return
	}
	t.timePausedAt = t.currentRealTime()
	t.phase = Paused
}

// Resume un-freezes the clock, keeping the real-time reading continuous.
// No-op unless Paused.
func (t *Timer) Resume() {
	if t.phase != Paused {
		return
	}
	t.adjustedStartTime = t.clock.Now().MinusSpan(t.timePausedAt)
	t.phase = Running
}

// accumulatedPause returns adjusted_start_time - start_time, the total
// pause duration banked so far in the current attempt.
func (t *Timer) accumulatedPause() timespan.TimeSpan {
	return t.adjustedStartTime.Sub(t.startTime)
}
