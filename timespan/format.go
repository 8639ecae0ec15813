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

package timespan

import (
	"fmt"
	"strings"

	fduration "fortio.org/duration"
)

// Accuracy controls how many fractional digits a Formatter renders.
type Accuracy int

const (
	Seconds Accuracy = iota
	Tenths
	Hundredths
	Milliseconds
)

// DigitFormat controls minute-field zero padding.
type DigitFormat int

const (
	SingleDigitMinute DigitFormat = iota
	DoubleDigitMinute
)

// Formatter renders a TimeSpan for display. Front-ends own the concrete
// instance; the core never formats on its own except for tests and the
// reference CLI.
type Formatter interface {
	Format(t *TimeSpan) string
}

// GeneralFormatter is the default formatter: h:mm:ss.fff style, governed by
// Accuracy and DigitFormat, matching the wire format Parse accepts.
type GeneralFormatter struct {
	Accuracy    Accuracy
	DigitFormat DigitFormat
}

func (f GeneralFormatter) Format(t *TimeSpan) string {
	if t == nil {
		return emptyTimeText(f.Accuracy)
	}
	d := *t
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := d.TotalSeconds()
	hours := int64(total / 3600)
	minutes := int64(total/60) % 60
	seconds := total - float64(hours*3600) - float64(minutes*60)

	minuteFmt := "%d"
	if f.DigitFormat == DoubleDigitMinute || hours > 0 {
		minuteFmt = "%02d"
	}
	var b strings.Builder
	b.WriteString(sign)
	if hours > 0 {
		fmt.Fprintf(&b, "%d:", hours)
	}
	fmt.Fprintf(&b, minuteFmt+":", minutes)
	fmt.Fprintf(&b, secondsFormat(f.Accuracy), seconds)
	return b.String()
}

func secondsFormat(a Accuracy) string {
	switch a {
	case Milliseconds:
		return "%06.3f"
	case Hundredths:
		return "%05.2f"
	case Tenths:
		return "%04.1f"
	default:
		return "%02.0f"
	}
}

func emptyTimeText(a Accuracy) string {
	switch a {
	case Milliseconds:
		return "—.———"
	case Hundredths:
		return "—.——"
	case Tenths:
		return "—.—"
	default:
		return "—"
	}
}

// DurationFormatter renders a TimeSpan using fortio.org/duration's
// human-readable style (e.g. "1h2m3s"), a coarser, non-speedrun-specific
// display than GeneralFormatter's.
type DurationFormatter struct{}

func (DurationFormatter) Format(t *TimeSpan) string {
	if t == nil {
		return "n/a"
	}
	return fduration.HumanDuration(t.Duration())
}
