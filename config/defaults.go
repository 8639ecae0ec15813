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

// This file carries the speedrun engine's own default values on top of the
// generic New/DefaultValue adapter above: the values an embedder's flags
// would set if it chooses to expose any (see cmd/speedrun-cli), without the
// engine itself importing the flag package.
package config

// DefaultTimingMethod holds a default timing method name ("RealTime" or
// "GameTime") for an embedder to apply. timer.New does not read it; a new
// Timer always starts on RealTime.
var DefaultTimingMethod = New("RealTime", "Default timing method (RealTime or GameTime)")

// DefaultComparison holds a default comparison name for an embedder to
// apply. timer.New does not read it; a new Timer always starts on
// Personal Best.
var DefaultComparison = New("Personal Best", "Default comparison to race against")

// DefaultAccuracy holds a default number of digits after the decimal point
// for an embedder to map onto a formatter. timespan.GeneralFormatter does
// not read it.
var DefaultAccuracy = New(int64(2), "Default formatter accuracy (fractional digits)")

// DefaultDigitFormat holds a default digit-padding mode name for an
// embedder to map onto a formatter. timespan.GeneralFormatter does not read
// it, and timespan.DigitFormat only has SingleDigitMinute and
// DoubleDigitMinute.
var DefaultDigitFormat = New("DoubleDigitHours", "Default digit padding for rendered times")

// DemoGameName, DemoCategoryName, and DemoPlatformName seed
// cmd/speedrun-cli's built-in run so a user has something to time without
// first writing a splits file.
var (
	DemoGameName     = New("Demo Game", "Game name for the built-in demo run")
	DemoCategoryName = New("Any%", "Category name for the built-in demo run")
	DemoPlatformName = New("PC", "Platform name for the built-in demo run")
)
