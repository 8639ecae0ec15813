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

package comparison

import (
	"sort"

	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timespan"
)

// Generator is a pure function from a Run view to one Time per segment. It
// fills both timing methods at once (each computed independently, since the
// set of present history rows can differ per method) rather than taking a
// single timing_method argument, so a single regeneration pass produces the
// full Time the segment cache stores.
type Generator func(v View) []timespan.Time

// Generate dispatches to the generator for a built-in name. It panics for a
// name that is not one of the nine reserved names — custom comparisons are
// stored values, not generated ones, and are the caller's responsibility.
func Generate(name Name, v View) []timespan.Time {
	switch name {
	case PersonalBest:
		return GeneratePersonalBest(v)
	case BestSegments:
		return GenerateBestSegments(v)
	case BestSplitTimes:
		return GenerateBestSplitTimes(v)
	case AverageSegments:
		return GenerateAverageSegments(v)
	case MedianSegments:
		return GenerateMedianSegments(v)
	case WorstSegments:
		return GenerateWorstSegments(v)
	case BalancedPB:
		return GenerateBalancedPB(v)
	case LatestRun:
		return GenerateLatestRun(v)
	case None:
		return GenerateNone(v)
	default:
		panic("comparison: " + string(name) + " is not a built-in generator")
	}
}

// GeneratePersonalBest returns the stored personal-best split times
// verbatim: the PB generator does not recompute anything, it is
// authoritative by construction (every reset that beats the PB rewrites
// these values directly).
func GeneratePersonalBest(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	for i, s := range segs {
		out[i] = s.PersonalBestSplitTime
	}
	return out
}

// GenerateNone returns an all-absent Time per segment.
func GenerateNone(v View) []timespan.Time {
	return make([]timespan.Time, len(v.Segments()))
}

// GenerateBestSegments is the sum-of-best construction: a running
// cumulative total built from CombinedBest per method.
func GenerateBestSegments(v View) []timespan.Time {
	segs := v.Segments()
	rt := CombinedBest(segs, timespan.RealTime, nil)
	gt := CombinedBest(segs, timespan.GameTime, nil)
	out := make([]timespan.Time, len(segs))
	for i := range segs {
		out[i] = timespan.Time{RealTime: rt[i], GameTime: gt[i]}
	}
	return out
}

// splitTimeColumns reconstructs, for each attempt index present in any
// segment's history, the cumulative split time at every segment: the
// running sum of present segment-time entries, cut off (nil from then on)
// at the first missing entry for that attempt, since the real cumulative
// position beyond a skip in that specific attempt is unknown.
func splitTimeColumns(segs []*segment.Segment, method timespan.Method) map[int32][]*timespan.TimeSpan {
	out := make(map[int32][]*timespan.TimeSpan)
	for _, a := range allAttemptIndices(segs) {
		col := make([]*timespan.TimeSpan, len(segs))
		var running *timespan.TimeSpan
		broken := false
		for j, s := range segs {
			if broken {
				continue
			}
			t, ok := s.History.Get(a)
			if !ok {
				broken = true
				continue
			}
			v := t.Get(method)
			if v == nil {
				broken = true
				continue
			}
			if running == nil {
				zero := timespan.Zero
				running = &zero
			}
			sum := running.Add(*v)
			running = &sum
			col[j] = running
		}
		out[a] = col
	}
	return out
}

// GenerateBestSplitTimes returns, per segment, the minimum historical split
// (cumulative) time, reconstructed from the per-segment segment-time
// history via splitTimeColumns.
func GenerateBestSplitTimes(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	for _, method := range timespan.Methods() {
		cols := splitTimeColumns(segs, method)
		best := make([]*timespan.TimeSpan, len(segs))
		for _, col := range cols {
			for j, val := range col {
				if val == nil {
					continue
				}
				if best[j] == nil || val.Cmp(*best[j]) < 0 {
					best[j] = val
				}
			}
		}
		for j := range segs {
			out[j] = out[j].With(method, best[j])
		}
	}
	return out
}

// GenerateLatestRun returns the cumulative split times of the most recently
// attempted run (the attempt with the highest positive index), regardless
// of whether it finished — see the documented Open Question in DESIGN.md.
func GenerateLatestRun(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	latest := int32(0)
	found := false
	for _, a := range allAttemptIndices(segs) {
		if a > 0 && (!found || a > latest) {
			latest = a
			found = true
		}
	}
	if !found {
		return out
	}
	for _, method := range timespan.Methods() {
		col := splitTimeColumns(segs, method)[latest]
		for j := range segs {
			out[j] = out[j].With(method, col[j])
		}
	}
	return out
}

// segmentTimeSamples returns, per segment, the list of present segment-time
// values (one timing method) across all history entries, ignoring nulls.
func segmentTimeSamples(segs []*segment.Segment, method timespan.Method) [][]timespan.TimeSpan {
	out := make([][]timespan.TimeSpan, len(segs))
	for i, s := range segs {
		for _, e := range s.History.Iter() {
			if v := e.Time.Get(method); v != nil {
				out[i] = append(out[i], *v)
			}
		}
	}
	return out
}

// GenerateAverageSegments is the arithmetic mean of present segment times.
func GenerateAverageSegments(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	for _, method := range timespan.Methods() {
		samples := segmentTimeSamples(segs, method)
		for i, s := range samples {
			if len(s) == 0 {
				continue
			}
			var sum float64
			for _, v := range s {
				sum += v.TotalSeconds()
			}
			avg := timespan.FromSeconds(sum / float64(len(s)))
			out[i] = out[i].With(method, &avg)
		}
	}
	return out
}

// GenerateMedianSegments is the lower median of present segment times.
func GenerateMedianSegments(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	for _, method := range timespan.Methods() {
		samples := segmentTimeSamples(segs, method)
		for i, s := range samples {
			if len(s) == 0 {
				continue
			}
			sorted := append([]timespan.TimeSpan(nil), s...)
			sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })
			median := sorted[(len(sorted)-1)/2]
			out[i] = out[i].With(method, &median)
		}
	}
	return out
}

// GenerateWorstSegments is the maximum of present segment times.
func GenerateWorstSegments(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	for _, method := range timespan.Methods() {
		samples := segmentTimeSamples(segs, method)
		for i, s := range samples {
			if len(s) == 0 {
				continue
			}
			worst := s[0]
			for _, v := range s[1:] {
				if v.Cmp(worst) > 0 {
					worst = v
				}
			}
			out[i] = out[i].With(method, &worst)
		}
	}
	return out
}

// GenerateBalancedPB redistributes the PB total proportionally to each
// segment's share of the sum-of-best, so the partial comparison at every
// segment lies on a straight line between the start and the PB's end time.
func GenerateBalancedPB(v View) []timespan.Time {
	segs := v.Segments()
	out := make([]timespan.Time, len(segs))
	if len(segs) == 0 {
		return out
	}
	for _, method := range timespan.Methods() {
		best := CombinedBest(segs, method, nil)
		sumOfBest := best[len(best)-1]
		pbTotal := segs[len(segs)-1].PersonalBestSplitTime.Get(method)
		if sumOfBest == nil || pbTotal == nil || sumOfBest.IsZero() {
			continue
		}
		var cumulative float64
		var prevBest float64
		for i := range segs {
			if best[i] == nil {
				continue
			}
			share := best[i].TotalSeconds() - prevBest
			prevBest = best[i].TotalSeconds()
			cumulative += share / sumOfBest.TotalSeconds() * pbTotal.TotalSeconds()
			v := timespan.FromSeconds(cumulative)
			out[i] = out[i].With(method, &v)
		}
	}
	return out
}
