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

import "fortio.org/speedrun/timespan"

// InitializeGameTime sets loading times to their current value if already
// initialized (a no-op), or to zero otherwise, so that game time starts
// tracking real time from this point on.
func (t *Timer) InitializeGameTime() {
	if t.loadingTimes == nil {
		z := timespan.Zero
		t.loadingTimes = &z
	}
}

// SetGameTime sets loading times so that CurrentTime().GameTime reads v
// right now. Per the ambiguous behavior documented in spec.md §9, this
// also unconditionally rewrites the paused game-time reading, mirroring
// the original's behavior regardless of whether game time is paused.
func (t *Timer) SetGameTime(v timespan.TimeSpan) {
	rt := t.currentRealTime()
	lt := rt.Sub(v)
	t.loadingTimes = &lt
	vv := v
	t.gameTimePauseTime = &vv
}

// SetLoadingTimes sets loading times directly. Per the same documented
// ambiguity, it also unconditionally rewrites the paused game-time
// reading.
func (t *Timer) SetLoadingTimes(v timespan.TimeSpan) {
	vv := v
	t.loadingTimes = &vv
	rt := t.currentRealTime()
	gt := rt.Sub(v)
	t.gameTimePauseTime = &gt
}

// PauseGameTime freezes the game-time reading at its current value.
func (t *Timer) PauseGameTime() {
	if t.isGameTimePaused {
		return
	}
	t.gameTimePauseTime = t.CurrentTime().GameTime
	t.isGameTimePaused = true
}

// ResumeGameTime un-freezes game time, recomputing loading times so it
// continues from the captured paused value.
func (t *Timer) ResumeGameTime() {
	if !t.isGameTimePaused {
		return
	}
	if t.gameTimePauseTime != nil {
		rt := t.currentRealTime()
		lt := rt.Sub(*t.gameTimePauseTime)
		t.loadingTimes = &lt
	}
	t.isGameTimePaused = false
	t.gameTimePauseTime = nil
}

// IsGameTimePaused reports whether game time is currently frozen.
func (t *Timer) IsGameTimePaused() bool { return t.isGameTimePaused }

// LoadingTimes returns the current loading-time offset, or nil if game
// time has never been initialized.
func (t *Timer) LoadingTimes() *timespan.TimeSpan { return t.loadingTimes }
