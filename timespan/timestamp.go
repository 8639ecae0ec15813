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

import "time"

// TimeStamp is an opaque monotonic instant. Subtracting two TimeStamps
// yields a TimeSpan; subtracting a TimeSpan from a TimeStamp shifts it.
type TimeStamp struct {
	t time.Time
}

// NewTimeStamp wraps a monotonic time.Time value (normally from time.Now()).
func NewTimeStamp(t time.Time) TimeStamp {
	return TimeStamp{t: t}
}

// Sub returns the TimeSpan elapsed between rhs and t (t - rhs).
func (t TimeStamp) Sub(rhs TimeStamp) TimeSpan {
	return FromDuration(t.t.Sub(rhs.t))
}

// MinusSpan returns a TimeStamp shifted backward by d.
func (t TimeStamp) MinusSpan(d TimeSpan) TimeStamp {
	return TimeStamp{t: t.t.Add(-d.Duration())}
}

// PlusSpan returns a TimeStamp shifted forward by d.
func (t TimeStamp) PlusSpan(d TimeSpan) TimeStamp {
	return TimeStamp{t: t.t.Add(d.Duration())}
}

// Equal reports whether two TimeStamps refer to the same instant.
func (t TimeStamp) Equal(rhs TimeStamp) bool {
	return t.t.Equal(rhs.t)
}

// Before reports whether t happened before rhs.
func (t TimeStamp) Before(rhs TimeStamp) bool {
	return t.t.Before(rhs.t)
}
