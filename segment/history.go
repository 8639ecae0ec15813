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

// Package segment holds the per-segment identity, personal-best and best
// segment times, and the sparse attempt-indexed history those are derived
// from.
package segment

import (
	"fortio.org/speedrun/timespan"
)

// History is a sparse mapping from attempt index to Time. Positive keys
// correspond to real attempts; non-positive keys are synthetic ("imported")
// entries that never came from a live attempt. Always iterate by present
// key, never by range.
type History struct {
	entries map[int32]timespan.Time
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{entries: make(map[int32]timespan.Time)}
}

// MinIndex returns the smallest existing key capped at 1: the most-negative
// (or zero) key if there is one, else 1 (also for an empty history).
// NextFreeIndex subtracts one from it, so the first synthetic entry lands
// at index 0, then -1, -2, ...
//
// This mirrors the Rust original's SegmentHistory::min_index, which
// returns min(existing keys, 1) — i.e. the smallest key capped at 1, used
// by callers as the next index to try (and then decremented further if
// still taken). We expose the capped minimum directly; callers needing a
// guaranteed-free slot call NextFreeIndex.
func (h *History) MinIndex() int32 {
	if h == nil || len(h.entries) == 0 {
		return 1
	}
	min := int32(1)
	first := true
	for k := range h.entries {
		if first || k < min {
			min = k
			first = false
		}
	}
	if min > 1 {
		return 1
	}
	return min
}

// NextFreeIndex returns the next synthetic index to use when importing a
// split: min(existing keys, 1) - 1, per the design notes.
func (h *History) NextFreeIndex() int32 {
	return h.MinIndex() - 1
}

// Insert records (or overwrites) the Time for an attempt index.
func (h *History) Insert(index int32, t timespan.Time) {
	if h.entries == nil {
		h.entries = make(map[int32]timespan.Time)
	}
	h.entries[index] = t
}

// Remove drops the entry for an attempt index, if present.
func (h *History) Remove(index int32) {
	delete(h.entries, index)
}

// Get returns the Time at an attempt index, and whether it was present.
func (h *History) Get(index int32) (timespan.Time, bool) {
	t, ok := h.entries[index]
	return t, ok
}

// Len returns the number of history entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entry pairs an attempt index with its recorded Time, for iteration.
type Entry struct {
	Index int32
	Time  timespan.Time
}

// Iter returns all entries, in unspecified order (callers that need a
// stable order should sort the result).
func (h *History) Iter() []Entry {
	out := make([]Entry, 0, len(h.entries))
	for k, v := range h.entries {
		out = append(out, Entry{Index: k, Time: v})
	}
	return out
}

// TryGetMin returns, per timing method, the smallest present value across
// all history entries, ignoring entries absent on that method.
func (h *History) TryGetMin() timespan.Time {
	var result timespan.Time
	for _, e := range h.entries {
		for _, m := range timespan.Methods() {
			v := e.Time.Get(m)
			if v == nil {
				continue
			}
			cur := result.Get(m)
			if cur == nil || v.Cmp(*cur) < 0 {
				result = result.With(m, v)
			}
		}
	}
	return result
}
