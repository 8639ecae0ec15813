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

package run

import (
	"fortio.org/log"

	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/timespan"
)

// FixSplits restores the run's invariants in place: monotonic PB split
// times per method, best segment times equal to the min of their history,
// history entries pruned of dangling positive attempt indices and of
// cached comparisons that no longer exist. It never reports an error and
// is idempotent (spec.md property 9): calling it twice in a row is a
// no-op the second time.
func (r *Run) FixSplits() {
	r.fixPersonalBestMonotonicity()
	r.fixBestSegmentTimes()
	r.pruneDanglingHistory()
	r.pruneDroppedComparisons()
	log.Debugf("run: fix_splits over %d segments, %d attempts", len(r.segments), len(r.attempts))
}

// fixPersonalBestMonotonicity clips PB split times up to the running
// maximum seen so far, and carries that running value forward into
// segments whose PB split is absent but a later segment has one, per
// method.
func (r *Run) fixPersonalBestMonotonicity() {
	n := len(r.segments)
	for _, m := range timespan.Methods() {
		hasLater := make([]bool, n+1)
		for i := n - 1; i >= 0; i-- {
			v := r.segments[i].PersonalBestSplitTime.Get(m)
			hasLater[i] = hasLater[i+1] || v != nil
		}
		var last *timespan.TimeSpan
		for i := 0; i < n; i++ {
			seg := r.segments[i]
			v := seg.PersonalBestSplitTime.Get(m)
			switch {
			case v != nil:
				clipped := *v
				if last != nil && clipped.Cmp(*last) < 0 {
					clipped = *last
				}
				seg.PersonalBestSplitTime = seg.PersonalBestSplitTime.With(m, &clipped)
				last = &clipped
			case last != nil && hasLater[i+1]:
				carried := *last
				seg.PersonalBestSplitTime = seg.PersonalBestSplitTime.With(m, &carried)
			}
		}
	}
}

// fixBestSegmentTimes recomputes every segment's best segment time from
// its history, the minimum present value per method.
func (r *Run) fixBestSegmentTimes() {
	for _, seg := range r.segments {
		seg.BestSegmentTime = seg.History.TryGetMin()
	}
}

// pruneDanglingHistory removes history entries keyed by a positive attempt
// index that no longer corresponds to a real Attempt record (e.g. after
// attempt-history truncation). Non-positive (synthetic/imported) entries
// are never pruned by this pass.
func (r *Run) pruneDanglingHistory() {
	maxIndex := int32(len(r.attempts))
	for _, seg := range r.segments {
		for _, e := range seg.History.Iter() {
			if e.Index > 0 && e.Index > maxIndex {
				seg.History.Remove(e.Index)
			}
		}
	}
}

// pruneDroppedComparisons removes cached per-segment comparison values for
// any name that is neither a built-in nor still present in the run's
// custom comparison registry.
func (r *Run) pruneDroppedComparisons() {
	valid := make(map[string]struct{}, len(comparison.BuiltIns)+len(r.customOrder))
	for _, n := range comparison.BuiltIns {
		valid[string(n)] = struct{}{}
	}
	for _, n := range r.customOrder {
		valid[string(n)] = struct{}{}
	}
	for _, seg := range r.segments {
		for name := range seg.Comparisons {
			if _, ok := valid[name]; !ok {
				seg.RemoveComparison(name)
			}
		}
	}
}

// nextSharedHistoryIndex returns the next free non-positive index, shared
// across every segment's history (the most-negative existing key across
// all segments, minus one, or 0 if every segment's history only has
// positive keys).
func (r *Run) nextSharedHistoryIndex() int32 {
	min := int32(1)
	first := true
	for _, seg := range r.segments {
		for _, e := range seg.History.Iter() {
			if first || e.Index < min {
				min = e.Index
				first = false
			}
		}
	}
	if min > 1 {
		min = 1
	}
	return min - 1
}

// ImportSegmentHistory adds the current PB split's segment time (the
// difference between this segment's and the previous segment's PB split
// time) to every segment's history, all at the same newly allocated
// non-positive index.
func (r *Run) ImportSegmentHistory() {
	idx := r.nextSharedHistoryIndex()
	zero := timespan.Zero
	prev := timespan.Time{RealTime: &zero, GameTime: &zero}
	for _, seg := range r.segments {
		segTime := seg.PersonalBestSplitTime.Sub(prev)
		seg.History.Insert(idx, segTime)
		prev = seg.PersonalBestSplitTime
	}
	r.hasChanged = true
	log.Debugf("run: imported segment history for %d segments at index %d", len(r.segments), idx)
}

// ImportBestSegment inserts segments[index]'s current best segment time
// into that segment's history at a newly allocated non-positive index
// (one insertion, regardless of how many segments the run has).
func (r *Run) ImportBestSegment(index int) {
	if index < 0 || index >= len(r.segments) {
		return
	}
	seg := r.segments[index]
	idx := seg.History.NextFreeIndex()
	seg.History.Insert(idx, seg.BestSegmentTime)
	r.hasChanged = true
}

// UpdateSegmentHistory records the live attempt's per-segment times into
// history at the most recently appended Attempt's index: segments up to
// (but not including) lastValidIndex get their recorded segment time (the
// difference between this and the previous segment's live split time);
// segments the attempt never reached get an absent (None, None) entry.
// AddAttempt must have been called first.
//
// If a segment already has a synthetic (imported) entry whose value is
// identical to the newly recorded real one, the synthetic entry is
// dropped: the real attempt now stands in for it rather than the run
// carrying two indistinguishable samples of the same time (spec.md S6).
func (r *Run) UpdateSegmentHistory(lastValidIndex int) {
	if len(r.attempts) == 0 {
		return
	}
	attemptIndex := r.attempts[len(r.attempts)-1].Index
	zero := timespan.Zero
	prev := timespan.Time{RealTime: &zero, GameTime: &zero}
	for i, seg := range r.segments {
		var segTime timespan.Time
		if i < lastValidIndex {
			segTime = seg.SplitTime.Sub(prev)
			// Carry the last known cumulative split forward per method:
			// a skipped segment's split is absent, but later segments
			// still measure from the last segment that actually reported
			// one, per method (spec.md S3's "combined segment" rule).
			for _, m := range timespan.Methods() {
				if v := seg.SplitTime.Get(m); v != nil {
					prev = prev.With(m, v)
				}
			}
		}
		for _, e := range seg.History.Iter() {
			if e.Index <= 0 && timesEqual(e.Time, segTime) {
				seg.History.Remove(e.Index)
			}
		}
		seg.History.Insert(attemptIndex, segTime)
	}
	log.Debugf("run: updated segment history at attempt %d through segment %d", attemptIndex, lastValidIndex)
}

// timesEqual reports whether a and b carry the same value (or absence) on
// both timing methods.
func timesEqual(a, b timespan.Time) bool {
	for _, m := range timespan.Methods() {
		av, bv := a.Get(m), b.Get(m)
		switch {
		case av == nil && bv == nil:
			continue
		case av == nil || bv == nil:
			return false
		case av.Cmp(*bv) != 0:
			return false
		}
	}
	return true
}
