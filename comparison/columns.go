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

// allAttemptIndices returns every attempt index that appears in any
// segment's history, sorted ascending.
func allAttemptIndices(segments []*segment.Segment) []int32 {
	seen := make(map[int32]struct{})
	for _, s := range segments {
		for _, e := range s.History.Iter() {
			seen[e.Index] = struct{}{}
		}
	}
	out := make([]int32, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CombinedBest runs the sum-of-best DAG construction for one timing method:
// for each segment index, the minimum achievable cumulative time, treating
// a present history entry as already covering every immediately preceding
// segment skipped by that same attempt (a "maximal run" candidate).
//
// extra, if non-nil, contributes one additional column built from the live
// attempt's own recorded segment times (used by sum_of_best's use_current
// option; the Best Segments and Balanced PB generators pass nil).
func CombinedBest(segments []*segment.Segment, method timespan.Method, extra []*timespan.TimeSpan) []*timespan.TimeSpan {
	n := len(segments)
	result := make([]*timespan.TimeSpan, n)

	// dist[k] = best cumulative time to have completed the first k segments
	// (k in [0, n]); dist[0] = 0 always (the start line).
	dist := make([]*timespan.TimeSpan, n+1)
	zero := timespan.Zero
	dist[0] = &zero

	type edge struct {
		start  int
		weight timespan.TimeSpan
	}
	edgesByEnd := make([][]edge, n+1)

	addColumn := func(values []*timespan.TimeSpan) {
		last := -1
		for j := 0; j < n; j++ {
			v := values[j]
			if v == nil {
				continue
			}
			edgesByEnd[j+1] = append(edgesByEnd[j+1], edge{start: last + 1, weight: *v})
			last = j
		}
	}

	for _, a := range allAttemptIndices(segments) {
		values := make([]*timespan.TimeSpan, n)
		for j, s := range segments {
			if t, ok := s.History.Get(a); ok {
				values[j] = t.Get(method)
			}
		}
		addColumn(values)
	}
	if extra != nil {
		addColumn(extra)
	}

	for k := 1; k <= n; k++ {
		for _, e := range edgesByEnd[k] {
			if dist[e.start] == nil {
				continue
			}
			candidate := dist[e.start].Add(e.weight)
			if dist[k] == nil || candidate.Cmp(*dist[k]) < 0 {
				dist[k] = &candidate
			}
		}
		result[k-1] = dist[k]
	}
	return result
}
