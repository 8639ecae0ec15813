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

// Package editor is the C9 component: structural and historical edits to a
// Run while no attempt is active — renaming and reordering segments, hand
// editing split/best-segment/comparison/segment times, managing custom
// comparisons, metadata, and offering up likely-bogus combined-segment
// history records for the caller to confirm or discard. It never runs
// concurrently with a Timer; New takes the Timer only to check that, then
// holds the Run directly.
package editor

import (
	"fortio.org/log"

	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timer"
	"fortio.org/speedrun/timespan"
)

// Editor mutates a Run in place. Close must be called to restore the run's
// derived invariants (fix_splits, regenerate_comparisons) before handing it
// back to a new Timer.
type Editor struct {
	r         *run.Run
	selection []int
}

// New constructs an Editor over t's run, failing with
// ErrUnfinishedActiveAttempt unless t is NotRunning.
func New(t *timer.Timer) (*Editor, error) {
	if t.Phase() != timer.NotRunning {
		return nil, ErrUnfinishedActiveAttempt
	}
	return &Editor{r: t.Run()}, nil
}

// Select replaces the current selection with the given segment indices, for
// a front-end to track which rows are highlighted; no editor operation
// below requires a selection; each takes its target index explicitly.
func (e *Editor) Select(indices ...int) {
	e.selection = append(e.selection[:0], indices...)
}

// Selected returns the current selection.
func (e *Editor) Selected() []int {
	out := make([]int, len(e.selection))
	copy(out, e.selection)
	return out
}

// Rename changes a segment's display name.
func (e *Editor) Rename(i int, name string) {
	e.r.Segments()[i].Name = name
	e.r.MarkAsChanged()
}

// SetSplitTime edits a segment's personal-best (cumulative) split time on
// one method. Monotonicity across segments is restored at Close, not here.
func (e *Editor) SetSplitTime(i int, method timespan.Method, v *timespan.TimeSpan) {
	seg := e.r.Segments()[i]
	seg.PersonalBestSplitTime = seg.PersonalBestSplitTime.With(method, v)
	e.r.MarkAsChanged()
}

// segmentPBTime returns segment i's own PB segment time (not cumulative
// split) on method: the difference between its PB split and the previous
// segment's, or the PB split itself at index 0.
func (e *Editor) segmentPBTime(i int, method timespan.Method) *timespan.TimeSpan {
	segs := e.r.Segments()
	cur := segs[i].PersonalBestSplitTime.Get(method)
	if cur == nil {
		return nil
	}
	if i == 0 {
		return cur
	}
	prev := segs[i-1].PersonalBestSplitTime.Get(method)
	if prev == nil {
		return cur
	}
	d := cur.Sub(*prev)
	return &d
}

// SetBestSegmentTime edits a segment's best segment time. Clearing it (v
// nil) also clears the segment's entire history, and recomputes the
// best-segment-time from the PB split unless that too is absent. Setting a
// value raises (clips up) any history entries that would otherwise be below
// the new minimum — unless the segment's own PB segment time is still
// smaller, in which case the PB remains authoritative and history is left
// untouched (spec.md §4.9's "PB dominates").
func (e *Editor) SetBestSegmentTime(i int, method timespan.Method, v *timespan.TimeSpan) {
	seg := e.r.Segments()[i]
	if v == nil {
		seg.History = segment.NewHistory()
		pb := e.segmentPBTime(i, method)
		seg.BestSegmentTime = seg.BestSegmentTime.With(method, pb)
		e.r.MarkAsChanged()
		return
	}
	if pb := e.segmentPBTime(i, method); pb == nil || pb.Cmp(*v) >= 0 {
		for _, entry := range seg.History.Iter() {
			hv := entry.Time.Get(method)
			if hv == nil || hv.Cmp(*v) >= 0 {
				continue
			}
			raised := *v
			seg.History.Insert(entry.Index, entry.Time.With(method, &raised))
		}
	}
	seg.BestSegmentTime = seg.BestSegmentTime.With(method, v)
	e.r.MarkAsChanged()
}

// SetComparisonTime edits a segment's cached value for a named comparison.
// Only meaningful for custom comparisons: a built-in's cached value is
// overwritten the next time RegenerateComparisons runs (at Close).
func (e *Editor) SetComparisonTime(i int, name comparison.Name, t timespan.Time) {
	e.r.Segments()[i].SetComparison(string(name), t)
	e.r.MarkAsChanged()
}

// SetSegmentTime edits one raw history sample directly (a single attempt's
// recorded segment time for this segment), or removes it if t is empty.
func (e *Editor) SetSegmentTime(i int, attemptIndex int32, t timespan.Time) {
	seg := e.r.Segments()[i]
	if t.IsEmpty() {
		seg.History.Remove(attemptIndex)
	} else {
		seg.History.Insert(attemptIndex, t)
	}
	e.r.MarkAsChanged()
}

// InsertAbove inserts a new, empty segment immediately before index i.
func (e *Editor) InsertAbove(i int, name string) {
	e.r.InsertSegment(i, segment.New(name))
	e.r.MarkAsChanged()
}

// InsertBelow inserts a new, empty segment immediately after index i.
func (e *Editor) InsertBelow(i int, name string) {
	e.r.InsertSegment(i+1, segment.New(name))
	e.r.MarkAsChanged()
}

// RemoveSegment deletes the segment at index i.
func (e *Editor) RemoveSegment(i int) {
	e.r.RemoveSegment(i)
	e.r.MarkAsChanged()
}

// MoveUp swaps segment i with its predecessor; a no-op at index 0.
func (e *Editor) MoveUp(i int) {
	if i <= 0 {
		return
	}
	e.r.SwapSegments(i-1, i)
	e.r.MarkAsChanged()
}

// MoveDown swaps segment i with its successor; a no-op at the last index.
func (e *Editor) MoveDown(i int) {
	if i < 0 || i >= e.r.Len()-1 {
		return
	}
	e.r.SwapSegments(i, i+1)
	e.r.MarkAsChanged()
}

// AddCustomComparison, RemoveCustomComparison, and RenameCustomComparison
// forward to the run's own registry, which already enforces the reserved
// [Race] prefix, built-in names, and duplicates.
func (e *Editor) AddCustomComparison(name comparison.Name) error {
	return e.r.AddCustomComparison(name)
}

func (e *Editor) RemoveCustomComparison(name comparison.Name) {
	e.r.RemoveCustomComparison(name)
}

func (e *Editor) RenameCustomComparison(oldName, newName comparison.Name) error {
	return e.r.RenameCustomComparison(oldName, newName)
}

// SetGameName, SetCategoryName, SetOffset, and SetAttemptCount edit the
// run's top-level identity fields.
func (e *Editor) SetGameName(name string) {
	e.r.GameName = name
	e.r.MarkAsChanged()
}

func (e *Editor) SetCategoryName(name string) {
	e.r.CategoryName = name
	e.r.MarkAsChanged()
}

func (e *Editor) SetOffset(v timespan.TimeSpan) {
	e.r.Offset = v
	e.r.MarkAsChanged()
}

func (e *Editor) SetAttemptCount(n uint64) {
	e.r.AttemptCount = n
	e.r.MarkAsChanged()
}

// SetRegion, SetPlatform, and SetUsesEmulator edit descriptive metadata.
func (e *Editor) SetRegion(name string) {
	e.r.Metadata.RegionName = name
	e.r.MarkAsChanged()
}

func (e *Editor) SetPlatform(name string) {
	e.r.Metadata.PlatformName = name
	e.r.MarkAsChanged()
}

func (e *Editor) SetUsesEmulator(v bool) {
	e.r.Metadata.UsesEmulator = v
	e.r.MarkAsChanged()
}

// SetVariable sets a speedrun.com-style named variable; always a permanent
// edit, so it always marks the run as changed.
func (e *Editor) SetVariable(name, value string) {
	e.r.Metadata.AddVariable(name, value)
	e.r.MarkAsChanged()
}

// SetCustomVariable sets an editor-managed custom variable. Permanent
// variables mark the run as changed, matching spec.md §4.6's modification
// flag rule; temporary ones are scratch state for the current session and
// never do.
func (e *Editor) SetCustomVariable(name, value string, permanent bool) {
	e.r.Metadata.SetCustomVariable(name, value, permanent)
	if permanent {
		e.r.MarkAsChanged()
	}
}

func (e *Editor) RemoveCustomVariable(name string) {
	e.r.Metadata.RemoveCustomVariable(name)
	e.r.MarkAsChanged()
}

// SuspectEntry names one history record the cleanup generator judges likely
// to be a combined span across a run of skipped segments rather than a
// clean single-segment sample.
type SuspectEntry struct {
	SegmentIndex int
	AttemptIndex int32
	Time         timespan.Time
}

// SuspiciousHistoryEntries surfaces history records that look like they
// cover more than their own segment: present-and-non-empty entries directly
// preceded, at the same attempt index, by one or more present-but-empty
// entries on earlier segments (the signature UpdateSegmentHistory leaves
// behind when an attempt skips into this segment, per spec.md S3). The
// caller decides whether to discard each one with DiscardHistoryEntry.
func (e *Editor) SuspiciousHistoryEntries() []SuspectEntry {
	segs := e.r.Segments()
	var out []SuspectEntry
	for i, seg := range segs {
		for _, entry := range seg.History.Iter() {
			if entry.Time.IsEmpty() {
				continue
			}
			combined := false
			for j := i - 1; j >= 0; j-- {
				pt, ok := segs[j].History.Get(entry.Index)
				if !ok {
					break
				}
				if !pt.IsEmpty() {
					break
				}
				combined = true
			}
			if combined {
				out = append(out, SuspectEntry{SegmentIndex: i, AttemptIndex: entry.Index, Time: entry.Time})
			}
		}
	}
	return out
}

// DiscardHistoryEntry removes one history record, typically one surfaced by
// SuspiciousHistoryEntries and confirmed bogus by the caller.
func (e *Editor) DiscardHistoryEntry(segmentIndex int, attemptIndex int32) {
	e.r.Segments()[segmentIndex].History.Remove(attemptIndex)
	e.r.MarkAsChanged()
}

// Close restores the run's derived invariants (monotonic PB splits, best
// segment times consistent with history, regenerated comparisons) and
// returns the run, ready to be handed to a new Timer.
func (e *Editor) Close() *run.Run {
	e.r.FixSplits()
	e.r.RegenerateComparisons()
	log.Debugf("editor: closed, %d segments", e.r.Len())
	return e.r
}
