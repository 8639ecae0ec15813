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
	"errors"
	"testing"

	"fortio.org/assert"

	"fortio.org/speedrun/comparison"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timespan"
)

func newThreeSegmentRun() *Run {
	r := New()
	r.PushSegment(segment.New("A"))
	r.PushSegment(segment.New("B"))
	r.PushSegment(segment.New("C"))
	return r
}

func TestComparisonsOrder(t *testing.T) {
	r := newThreeSegmentRun()
	if err := r.AddCustomComparison("My Comparison"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Comparisons()
	want := append(append([]comparison.Name{}, comparison.BuiltIns...), comparison.Name("My Comparison"))
	assert.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestAddCustomComparisonReserved(t *testing.T) {
	r := newThreeSegmentRun()
	err := r.AddCustomComparison(comparison.BestSegments)
	if !errors.Is(err, ErrNameIsReserved) {
		t.Fatalf("expected ErrNameIsReserved, got %v", err)
	}
}

func TestAddCustomComparisonDuplicate(t *testing.T) {
	r := newThreeSegmentRun()
	if err := r.AddCustomComparison("My Comparison"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.AddCustomComparison("My Comparison")
	if !errors.Is(err, ErrDuplicateComparisonName) {
		t.Fatalf("expected ErrDuplicateComparisonName, got %v", err)
	}
}

func TestAddCustomComparisonRacePrefix(t *testing.T) {
	r := newThreeSegmentRun()
	err := r.AddCustomComparison("[Race] Foo")
	if !errors.Is(err, ErrNameStartsWithRacePrefix) {
		t.Fatalf("expected ErrNameStartsWithRacePrefix, got %v", err)
	}
}

func TestAddThenRemoveCustomComparisonRestoresList(t *testing.T) {
	r := newThreeSegmentRun()
	before := r.Comparisons()
	if err := r.AddCustomComparison("Temp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.RemoveCustomComparison("Temp")
	after := r.Comparisons()
	assert.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i], after[i])
	}
}

func TestRenameCustomComparisonPreservesPosition(t *testing.T) {
	r := newThreeSegmentRun()
	if err := r.AddCustomComparison("First"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddCustomComparison("Second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddCustomComparison("Third"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Segments()[0].SetComparison("Second", timespan.Time{GameTime: timespan.Ptr(timespan.FromSeconds(3))})

	if err := r.RenameCustomComparison("Second", "Renamed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.CustomComparisons()
	want := []comparison.Name{"First", "Renamed", "Third"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}

	v := r.Segments()[0].Comparison("Renamed")
	if v.GameTime == nil || v.GameTime.TotalSeconds() != 3.0 {
		t.Errorf("expected cached comparison value carried over under the new name, got %v", v)
	}
}

func TestExtendedCategoryNameNoParens(t *testing.T) {
	r := newThreeSegmentRun()
	r.CategoryName = "Any%"
	r.Metadata.RegionName = "NTSC"
	got := r.ExtendedCategoryName(true, false, false)
	assert.Equal(t, "Any% (NTSC)", got)
}

func TestExtendedCategoryNameExistingParens(t *testing.T) {
	r := newThreeSegmentRun()
	r.CategoryName = "Any% (No Major Glitches)"
	r.Metadata.RegionName = "NTSC"
	r.Metadata.PlatformName = "N64"
	got := r.ExtendedCategoryName(true, true, false)
	assert.Equal(t, "Any% (No Major Glitches, NTSC, N64)", got)
}

func TestExtendedCategoryNameMidParens(t *testing.T) {
	r := newThreeSegmentRun()
	r.CategoryName = "Any% (JP) extra"
	r.Metadata.RegionName = "NTSC"
	got := r.ExtendedCategoryName(true, false, false)
	assert.Equal(t, "Any% (JP, NTSC) extra", got)
}
