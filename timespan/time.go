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

// Time is a pair of optional TimeSpans, one per timing Method. Either side
// may be nil (absent). Arithmetic propagates absence: if either operand is
// nil on a given method, the result is nil on that method.
type Time struct {
	RealTime *TimeSpan
	GameTime *TimeSpan
}

// Get reads one side of the pair by method.
func (t Time) Get(m Method) *TimeSpan {
	if m == RealTime {
		return t.RealTime
	}
	return t.GameTime
}

// With returns a copy of t with the given method's side replaced.
func (t Time) With(m Method, v *TimeSpan) Time {
	if m == RealTime {
		t.RealTime = v
	} else {
		t.GameTime = v
	}
	return t
}

// WithRealTime returns a copy of t with RealTime replaced.
func (t Time) WithRealTime(v *TimeSpan) Time {
	t.RealTime = v
	return t
}

// WithGameTime returns a copy of t with GameTime replaced.
func (t Time) WithGameTime(v *TimeSpan) Time {
	t.GameTime = v
	return t
}

// Add adds two Time values method-wise, propagating absence.
func (t Time) Add(other Time) Time {
	return Time{
		RealTime: OptionOp(t.RealTime, other.RealTime, TimeSpan.Add),
		GameTime: OptionOp(t.GameTime, other.GameTime, TimeSpan.Add),
	}
}

// Sub subtracts other from t method-wise, propagating absence.
func (t Time) Sub(other Time) Time {
	return Time{
		RealTime: OptionOp(t.RealTime, other.RealTime, TimeSpan.Sub),
		GameTime: OptionOp(t.GameTime, other.GameTime, TimeSpan.Sub),
	}
}

// IsEmpty reports whether both sides are absent.
func (t Time) IsEmpty() bool {
	return t.RealTime == nil && t.GameTime == nil
}

// Ptr is a small helper for turning a TimeSpan value into a *TimeSpan,
// commonly needed when building a Time literal inline.
func Ptr(v TimeSpan) *TimeSpan {
	return &v
}
