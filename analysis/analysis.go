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

// Package analysis is the C7 component: pure functions over a Run (and
// optionally a live Timer) that turn stored and live times into the scalars
// and sequences a front-end renders every frame — sum of best, possible time
// save, current pace, previous-segment delta, PB chance, and single-segment
// comparison times. None of these functions mutate their inputs, mirroring
// how fortio's stats package only ever reads a Counter to derive percentiles.
package analysis

import (
	"math"

	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/stats"
	"fortio.org/speedrun/timer"
	"fortio.org/speedrun/timespan"
)

// liveSegmentColumn reconstructs, from a live timer's recorded split times up
// to (but not including) its current split index, one segment time per
// reached segment on the given method: the same "segment time since the last
// segment that actually reported a value" carry-forward rule
// run.UpdateSegmentHistory commits once the attempt resets. Segments not yet
// reached are nil.
func liveSegmentColumn(t *timer.Timer, method timespan.Method) []*timespan.TimeSpan {
	segs := t.Run().Segments()
	idx := t.CurrentSplitIndex()
	out := make([]*timespan.TimeSpan, len(segs))
	zero := timespan.Zero
	prev := &zero
	for i := 0; i < idx && i < len(segs); i++ {
		v := segs[i].SplitTime.Get(method)
		if v == nil {
			continue
		}
		d := v.Sub(*prev)
		out[i] = &d
		prev = v
	}
	return out
}

// SumOfBest is spec.md's sum_of_best: the best achievable total across every
// segment. In simple mode it is a plain sum of per-segment best segment
// times, ignoring the combined-segment DAG (so a history full of skips does
// not get any credit for segments it never isolated). In full mode it uses
// comparison.CombinedBest, the same construction the Best Segments comparison
// is generated from. If useCurrent and a live timer is given, the attempt's
// own recorded splits join the candidate pool as one more column.
func SumOfBest(r *run.Run, live *timer.Timer, simple, useCurrent bool, method timespan.Method) *timespan.TimeSpan {
	segs := r.Segments()
	if len(segs) == 0 {
		return nil
	}
	if simple {
		var sum timespan.TimeSpan
		for i, seg := range segs {
			v := seg.BestSegmentTime.Get(method)
			if useCurrent && live != nil && live.Run() == r && i < live.CurrentSplitIndex() {
				if lv := liveSegmentColumn(live, method)[i]; lv != nil && (v == nil || lv.Cmp(*v) < 0) {
					v = lv
				}
			}
			if v == nil {
				return nil
			}
			sum = sum.Add(*v)
		}
		return &sum
	}
	var extra []*timespan.TimeSpan
	if useCurrent && live != nil && live.Run() == r {
		extra = liveSegmentColumn(live, method)
	}
	best := comparison.CombinedBest(segs, method, extra)
	return best[len(best)-1]
}

// TotalPlaytime is spec.md's total_playtime: the sum of every attempt's
// duration, plus (when live is non-nil and not NotRunning) the current
// attempt's real-time duration so far.
func TotalPlaytime(r *run.Run, live *timer.Timer) timespan.TimeSpan {
	var total timespan.TimeSpan
	for _, a := range r.Attempts() {
		if d := a.Duration(); d != nil {
			total = total.Add(*d)
		}
	}
	if live != nil && live.Phase() != timer.NotRunning {
		if v := live.CurrentTime().RealTime; v != nil {
			total = total.Add(*v)
		}
	}
	return total
}

// ComparisonSingleSegmentTime is spec.md's comparison_single_segment_time:
// the named comparison's segment time at index i — its cumulative value
// minus the nearest earlier segment's present cumulative value, spanning
// back over any number of skipped/missing segments. Index 0 is its own
// boundary: the cumulative value at segment 0 is already a segment time.
func ComparisonSingleSegmentTime(r *run.Run, i int, name comparison.Name, method timespan.Method) *timespan.TimeSpan {
	segs := r.Segments()
	if i < 0 || i >= len(segs) {
		return nil
	}
	cur := segs[i].Comparison(string(name)).Get(method)
	if cur == nil {
		return nil
	}
	if i == 0 {
		return cur
	}
	var prev *timespan.TimeSpan
	for j := i - 1; j >= 0; j-- {
		if v := segs[j].Comparison(string(name)).Get(method); v != nil {
			prev = v
			break
		}
	}
	if prev == nil {
		return cur
	}
	d := cur.Sub(*prev)
	return &d
}

// PossibleTimeSave is spec.md's possible_time_save: the named comparison's
// segment time at segmentIndex minus that segment's best segment time — how
// much faster this segment could plausibly have gone relative to the
// comparison being raced.
func PossibleTimeSave(r *run.Run, segmentIndex int, name comparison.Name, method timespan.Method) *timespan.TimeSpan {
	segs := r.Segments()
	if segmentIndex < 0 || segmentIndex >= len(segs) {
		return nil
	}
	cst := ComparisonSingleSegmentTime(r, segmentIndex, name, method)
	best := segs[segmentIndex].BestSegmentTime.Get(method)
	if cst == nil || best == nil {
		return nil
	}
	d := cst.Sub(*best)
	return &d
}

// CurrentPace is spec.md's current_pace / predicted time: Ended returns the
// attempt's own final time; Running or Paused returns the comparison's final
// time shifted by the current time minus the comparison's split time at the
// most recently completed segment (minus zero before the first split);
// NotRunning returns the comparison's final time unchanged. Absent if the
// comparison has no final time, or (while live) no value at the segment the
// delta is measured from.
func CurrentPace(live *timer.Timer, name comparison.Name, method timespan.Method) *timespan.TimeSpan {
	r := live.Run()
	segs := r.Segments()
	if len(segs) == 0 {
		return nil
	}
	cmpEnd := segs[len(segs)-1].Comparison(string(name)).Get(method)
	if cmpEnd == nil {
		return nil
	}
	switch live.Phase() {
	case timer.Ended:
		return segs[len(segs)-1].SplitTime.Get(method)
	case timer.Running, timer.Paused:
		idx := live.CurrentSplitIndex() - 1
		var cmpAtIdx timespan.TimeSpan
		if idx >= 0 {
			v := segs[idx].Comparison(string(name)).Get(method)
			if v == nil {
				return nil
			}
			cmpAtIdx = *v
		}
		cur := live.CurrentTime().Get(method)
		if cur == nil {
			return nil
		}
		delta := cur.Sub(cmpAtIdx)
		predicted := cmpEnd.Add(delta)
		return &predicted
	default: // NotRunning
		return cmpEnd
	}
}

// PreviousSegmentDelta is spec.md's previous_segment_delta: how much faster
// or slower the most recently completed segment was against the named
// comparison, on the given method — (live_split - live_previous_split) -
// (cmp_split - cmp_previous_split). Absent if no segment has been completed
// yet this attempt, or if either side is missing a value it needs.
func PreviousSegmentDelta(live *timer.Timer, name comparison.Name, method timespan.Method) *timespan.TimeSpan {
	idx := live.CurrentSplitIndex() - 1
	if idx < 0 {
		return nil
	}
	segs := live.Run().Segments()
	liveCur := segs[idx].SplitTime.Get(method)
	cmpCur := segs[idx].Comparison(string(name)).Get(method)
	if liveCur == nil || cmpCur == nil {
		return nil
	}
	var livePrev, cmpPrev timespan.TimeSpan
	if idx > 0 {
		lp := segs[idx-1].SplitTime.Get(method)
		cp := segs[idx-1].Comparison(string(name)).Get(method)
		if lp == nil || cp == nil {
			return nil
		}
		livePrev, cmpPrev = *lp, *cp
	}
	liveDiff := liveCur.Sub(livePrev)
	cmpDiff := cmpCur.Sub(cmpPrev)
	d := liveDiff.Sub(cmpDiff)
	return &d
}

// pbChanceMethod picks GameTime for the whole run if any segment's history
// ever recorded a game time, falling back to RealTime otherwise — the
// "method-agnostic fallback to real time" spec.md names for pb_chance, which
// (unlike every other analysis function) takes no explicit method argument.
func pbChanceMethod(segs []*segment.Segment) timespan.Method {
	for _, seg := range segs {
		for _, e := range seg.History.Iter() {
			if e.Time.GameTime != nil {
				return timespan.GameTime
			}
		}
	}
	return timespan.RealTime
}

// PBChance is spec.md's pb_chance: the probability, under an independent
// per-segment normal approximation built from each segment's historical
// segment-time samples, that a fresh attempt's final time would be no slower
// than the current personal best. Segments with no recorded samples
// contribute nothing to the aggregate (treated as deterministic, zero
// variance, zero mean) rather than being excluded from the run entirely.
func PBChance(r *run.Run) float64 {
	segs := r.Segments()
	if len(segs) == 0 {
		return 0
	}
	method := pbChanceMethod(segs)
	var meanSum, varSum float64
	for _, seg := range segs {
		c := &stats.Counter{}
		for _, e := range seg.History.Iter() {
			if v := e.Time.Get(method); v != nil {
				c.Record(v.TotalSeconds())
			}
		}
		if c.Count == 0 {
			continue
		}
		meanSum += c.Avg()
		sd := c.StdDev()
		varSum += sd * sd
	}
	pbFinal := segs[len(segs)-1].PersonalBestSplitTime.Get(method)
	if pbFinal == nil {
		return 0
	}
	return stats.CDF(meanSum, math.Sqrt(varSum), pbFinal.TotalSeconds())
}
