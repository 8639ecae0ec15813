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

// Package comparison computes the named reference time series a live
// attempt is measured against: personal best, best segments (sum of best),
// best split times, average/median/worst segments, balanced PB, latest
// run, and the empty "none" comparison, plus storage for user-added custom
// comparisons.
package comparison

// Name identifies a comparison, either one of the nine reserved built-ins
// or a user-chosen custom name.
type Name string

// Built-in comparison names, in the fixed order they must appear in
// Run.Comparisons().
const (
	PersonalBest    Name = "Personal Best"
	BestSegments    Name = "Best Segments"
	BestSplitTimes  Name = "Best Split Times"
	AverageSegments Name = "Average Segments"
	MedianSegments  Name = "Median Segments"
	WorstSegments   Name = "Worst Segments"
	BalancedPB      Name = "Balanced PB"
	LatestRun       Name = "Latest Run"
	None            Name = "None"
)

// RacePrefix is reserved for future race-comparison use; custom comparison
// names may not start with it.
const RacePrefix = "[Race]"

// BuiltIns lists the nine reserved comparisons in their canonical order.
var BuiltIns = []Name{
	PersonalBest,
	BestSegments,
	BestSplitTimes,
	AverageSegments,
	MedianSegments,
	WorstSegments,
	BalancedPB,
	LatestRun,
	None,
}

// IsBuiltIn reports whether name is one of the nine reserved comparisons.
func IsBuiltIn(name Name) bool {
	for _, b := range BuiltIns {
		if b == name {
			return true
		}
	}
	return false
}
