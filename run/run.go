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

// Package run holds the Run data model: the ordered list of segments, the
// append-only attempt history, metadata, and the custom comparison
// registry, plus the operations (fix_splits, regenerate_comparisons,
// import, history update) that keep those pieces consistent with each
// other. It is the C4 component of the engine.
package run

import (
	"strings"

	"fortio.org/log"
	"fortio.org/sets"

	"fortio.org/speedrun/attempt"
	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timespan"
)

// Run is the persistent model underneath a live Timer: segments, attempt
// history, metadata, and the custom comparisons the user has added on top
// of the nine built-ins.
type Run struct {
	GameName     string
	CategoryName string
	Offset       timespan.TimeSpan
	AttemptCount uint64
	Metadata     Metadata

	// AutoSplitterSettings is an opaque blob owned by an external
	// auto-splitter scripting runtime; the core never interprets it.
	AutoSplitterSettings []byte

	attempts []attempt.Attempt
	segments []*segment.Segment

	// customOrder preserves insertion order of user-added comparisons;
	// customSet gives O(1) duplicate/removal checks against that same set.
	customOrder []comparison.Name
	customSet   sets.Set[string]

	hasChanged bool
}

// New returns an empty Run, ready to have segments pushed onto it.
func New() *Run {
	return &Run{
		Metadata:  NewMetadata(),
		customSet: sets.Set[string]{},
	}
}

// Segments returns the ordered segment list. Satisfies comparison.View.
func (r *Run) Segments() []*segment.Segment { return r.segments }

// Attempts returns the attempt history. Satisfies comparison.View.
func (r *Run) Attempts() []attempt.Attempt { return r.attempts }

// Len returns the number of segments.
func (r *Run) Len() int { return len(r.segments) }

// IsEmpty reports whether the run has no segments.
func (r *Run) IsEmpty() bool { return len(r.segments) == 0 }

// HasChanged reports the modification flag.
func (r *Run) HasChanged() bool { return r.hasChanged }

// MarkAsChanged sets the modification flag.
func (r *Run) MarkAsChanged() { r.hasChanged = true }

// ClearChanged resets the modification flag, typically called by an
// embedder right after a successful save.
func (r *Run) ClearChanged() { r.hasChanged = false }

// StartNextRun bumps the attempt counter and marks the run as changed; it
// does not append to attempt history (that only happens on reset).
func (r *Run) StartNextRun() {
	r.AttemptCount++
	r.hasChanged = true
}

// PushSegment appends a new segment at the end.
func (r *Run) PushSegment(s *segment.Segment) {
	r.segments = append(r.segments, s)
}

// InsertSegment inserts a segment at index i, shifting later segments down.
func (r *Run) InsertSegment(i int, s *segment.Segment) {
	r.segments = append(r.segments, nil)
	copy(r.segments[i+1:], r.segments[i:])
	r.segments[i] = s
}

// RemoveSegment removes the segment at index i.
func (r *Run) RemoveSegment(i int) {
	r.segments = append(r.segments[:i], r.segments[i+1:]...)
}

// SwapSegments exchanges the segments at indices i and j.
func (r *Run) SwapSegments(i, j int) {
	r.segments[i], r.segments[j] = r.segments[j], r.segments[i]
}

// AddAttempt appends a new entry to the attempt history. Called only from
// a reset with update_splits set.
func (r *Run) AddAttempt(t timespan.Time, started, ended *clock.AtomicDateTime, pauseTime *timespan.TimeSpan) {
	index := int32(len(r.attempts)) + 1
	r.attempts = append(r.attempts, attempt.Attempt{
		Index:     index,
		Time:      t,
		Started:   started,
		Ended:     ended,
		PauseTime: pauseTime,
	})
}

// CustomComparisons returns the user-added comparison names, in insertion
// order (built-ins are not included; see Comparisons for the full list).
func (r *Run) CustomComparisons() []comparison.Name {
	out := make([]comparison.Name, len(r.customOrder))
	copy(out, r.customOrder)
	return out
}

// Comparisons returns every comparison name in the canonical iteration
// order: the nine built-ins first, then custom comparisons in insertion
// order.
func (r *Run) Comparisons() []comparison.Name {
	out := make([]comparison.Name, 0, len(comparison.BuiltIns)+len(r.customOrder))
	out = append(out, comparison.BuiltIns...)
	out = append(out, r.customOrder...)
	return out
}

// AddCustomComparison registers a new custom comparison name, rejecting
// duplicates, the reserved [Race] prefix, and built-in names.
func (r *Run) AddCustomComparison(name comparison.Name) error {
	s := string(name)
	if strings.HasPrefix(s, comparison.RacePrefix) {
		return ErrNameStartsWithRacePrefix
	}
	if comparison.IsBuiltIn(name) {
		return ErrNameIsReserved
	}
	if r.customSet.Has(s) {
		return ErrDuplicateComparisonName
	}
	if r.customSet == nil {
		r.customSet = sets.Set[string]{}
	}
	r.customSet.Add(s)
	r.customOrder = append(r.customOrder, name)
	r.hasChanged = true
	return nil
}

// RemoveCustomComparison removes a previously added custom comparison, and
// drops any cached per-segment values for it.
func (r *Run) RemoveCustomComparison(name comparison.Name) {
	s := string(name)
	if !r.customSet.Has(s) {
		return
	}
	r.customSet.Delete(s)
	for i, n := range r.customOrder {
		if n == name {
			r.customOrder = append(r.customOrder[:i], r.customOrder[i+1:]...)
			break
		}
	}
	for _, seg := range r.segments {
		seg.RemoveComparison(s)
	}
	r.hasChanged = true
}

// RenameCustomComparison renames a custom comparison in place, preserving
// its position in customOrder and its cached per-segment values.
func (r *Run) RenameCustomComparison(oldName, newName comparison.Name) error {
	if oldName == newName {
		return nil
	}
	s := string(newName)
	if strings.HasPrefix(s, comparison.RacePrefix) {
		return ErrNameStartsWithRacePrefix
	}
	if comparison.IsBuiltIn(newName) {
		return ErrNameIsReserved
	}
	if r.customSet.Has(s) {
		return ErrDuplicateComparisonName
	}
	old := string(oldName)
	if r.customSet.Has(old) {
		r.customSet.Delete(old)
		r.customSet.Add(s)
	}
	for i, n := range r.customOrder {
		if n == oldName {
			r.customOrder[i] = newName
			break
		}
	}
	for _, seg := range r.segments {
		v := seg.Comparison(old)
		seg.RemoveComparison(old)
		seg.SetComparison(s, v)
	}
	r.hasChanged = true
	return nil
}

// RegenerateComparisons runs every built-in generator and refreshes each
// segment's cached comparison values. It is idempotent and must be called
// before the comparisons are read after any mutation.
func (r *Run) RegenerateComparisons() {
	for _, name := range comparison.BuiltIns {
		// Personal Best's generator just echoes PersonalBestSplitTime back
		// (it is authoritative storage, not generated), but it is still
		// cached into the same per-segment map so analysis can look up any
		// comparison, built-in or custom, uniformly by name.
		values := comparison.Generate(name, r)
		for i, seg := range r.segments {
			seg.SetComparison(string(name), values[i])
		}
	}
	log.Debugf("run: regenerated %d built-in comparisons over %d segments", len(comparison.BuiltIns), len(r.segments))
}

// ExtendedCategoryName formats the category name with optional region,
// platform, and variable annotations appended into (or as) a parenthesized
// suffix.
func (r *Run) ExtendedCategoryName(showRegion, showPlatform, showVariables bool) string {
	var extras []string
	if showRegion && r.Metadata.RegionName != "" {
		extras = append(extras, r.Metadata.RegionName)
	}
	if showPlatform && r.Metadata.PlatformName != "" {
		extras = append(extras, r.Metadata.PlatformName)
	}
	if showVariables {
		for _, k := range r.Metadata.VariableOrder {
			if v := r.Metadata.Variables[k]; v != "" {
				extras = append(extras, v)
			}
		}
	}
	if len(extras) == 0 {
		return r.CategoryName
	}
	extraText := strings.Join(extras, ", ")

	name := r.CategoryName
	switch {
	case strings.HasSuffix(name, ")"):
		openIdx := strings.LastIndex(name, "(")
		if openIdx == -1 {
			return name + " (" + extraText + ")"
		}
		return name[:len(name)-1] + ", " + extraText + ")"
	case strings.Contains(name, "(") && strings.Contains(name, ")"):
		openIdx := strings.Index(name, "(")
		closeIdx := strings.Index(name[openIdx:], ")") + openIdx
		return name[:closeIdx] + ", " + extraText + name[closeIdx:]
	default:
		return name + " (" + extraText + ")"
	}
}
