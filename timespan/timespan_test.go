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
	"testing"

	"fortio.org/assert"
)

func TestParseSimple(t *testing.T) {
	cases := map[string]float64{
		"5":        5,
		"5.5":      5.5,
		"1:05":     65,
		"1:01:01":  3661,
		"-1:00":    -60,
		"0":        0,
		"00:00.5":  0.5,
		"10:00:00": 36000,
	}
	for input, want := range cases {
		got, err := Parse(input)
		assert.NoError(t, err, "parsing %q", input)
		assert.Equal(t, want, got.TotalSeconds(), "parsing %q", input)
	}
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{"", "  ", "1:", ":1", "abc", "1:ab"} {
		_, err := Parse(bad)
		if err == nil {
			t.Errorf("expected parse error for %q", bad)
		}
	}
}

func TestParseOptional(t *testing.T) {
	v, err := ParseOptional("  ")
	assert.NoError(t, err)
	if v != nil {
		t.Errorf("expected nil for blank input, got %v", v)
	}
	v, err = ParseOptional("5")
	assert.NoError(t, err)
	if v == nil || v.TotalSeconds() != 5 {
		t.Errorf("expected 5s, got %v", v)
	}
}

func TestNegativeZero(t *testing.T) {
	got, err := Parse("-0")
	assert.NoError(t, err)
	assert.Equal(t, true, got.IsZero())
}

func TestOptionOpPropagatesAbsence(t *testing.T) {
	five := Ptr(FromSeconds(5))
	if OptionOp(five, nil, TimeSpan.Add) != nil {
		t.Errorf("expected nil result when one side is nil")
	}
	ten := Ptr(FromSeconds(10))
	r := OptionOp(five, ten, TimeSpan.Add)
	if r == nil || r.TotalSeconds() != 15 {
		t.Errorf("expected 15, got %v", r)
	}
}

func TestTimeArithmeticAbsence(t *testing.T) {
	a := Time{RealTime: Ptr(FromSeconds(5))}
	b := Time{RealTime: Ptr(FromSeconds(2)), GameTime: Ptr(FromSeconds(1))}
	r := a.Sub(b)
	if r.GameTime != nil {
		t.Errorf("expected nil game time, got %v", r.GameTime)
	}
	if r.RealTime == nil || r.RealTime.TotalSeconds() != 3 {
		t.Errorf("expected 3s real time, got %v", r.RealTime)
	}
}

func TestGeneralFormatterRoundTrip(t *testing.T) {
	f := GeneralFormatter{Accuracy: Seconds, DigitFormat: SingleDigitMinute}
	v := FromSeconds(65)
	s := f.Format(&v)
	assert.Equal(t, "1:05", s)
	parsed, err := Parse(s)
	assert.NoError(t, err)
	assert.Equal(t, v.TotalSeconds(), parsed.TotalSeconds())
}

func TestGeneralFormatterNil(t *testing.T) {
	f := GeneralFormatter{Accuracy: Milliseconds}
	if f.Format(nil) == "" {
		t.Errorf("expected placeholder text for nil TimeSpan")
	}
}
