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

package segment

import (
	"fortio.org/speedrun/timespan"
)

// IconHandle is an opaque reference to a segment icon. The core never
// decodes or renders it; front-ends own that.
type IconHandle string

// Segment is one leg of a run: a name, its personal-best split time, its
// best segment time, the live split time recorded during the current
// attempt, its history, and any per-comparison cached times.
type Segment struct {
	Name                  string
	Icon                  IconHandle
	PersonalBestSplitTime timespan.Time
	BestSegmentTime       timespan.Time
	SplitTime             timespan.Time
	History               *History
	// Comparisons holds cached times for custom (non-built-in) comparisons,
	// keyed by comparison name. Built-in comparisons are recomputed into
	// here too by regenerate_comparisons so lookups are uniform.
	Comparisons map[string]timespan.Time
}

// New creates a Segment with the given name and empty history/comparisons.
func New(name string) *Segment {
	return &Segment{
		Name:        name,
		History:     NewHistory(),
		Comparisons: make(map[string]timespan.Time),
	}
}

// ClearSplitTime resets the live split time to empty.
func (s *Segment) ClearSplitTime() {
	s.SplitTime = timespan.Time{}
}

// Comparison returns the cached time for a named comparison, or an empty
// Time if none has been generated for it yet.
func (s *Segment) Comparison(name string) timespan.Time {
	return s.Comparisons[name]
}

// SetComparison caches a generated comparison time for this segment.
func (s *Segment) SetComparison(name string, t timespan.Time) {
	if s.Comparisons == nil {
		s.Comparisons = make(map[string]timespan.Time)
	}
	s.Comparisons[name] = t
}

// RemoveComparison drops a cached comparison, e.g. when it is deleted from
// the run's custom comparison list.
func (s *Segment) RemoveComparison(name string) {
	delete(s.Comparisons, name)
}

// Clone returns a deep copy of the segment: its history and cached
// comparisons are copied, so changes to the copy leave the original as it
// was. The Editor does not use it; it edits the run's segments in place.
func (s *Segment) Clone() *Segment {
	c := *s
	c.History = &History{entries: make(map[int32]timespan.Time, s.History.Len())}
	for _, e := range s.History.Iter() {
		c.History.Insert(e.Index, e.Time)
	}
	c.Comparisons = make(map[string]timespan.Time, len(s.Comparisons))
	for k, v := range s.Comparisons {
		c.Comparisons[k] = v
	}
	return &c
}
