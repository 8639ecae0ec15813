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

package clock

import (
	"testing"
	"time"

	"fortio.org/assert"
)

func TestManualAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	t0 := m.Now()
	m.Advance(5 * time.Second)
	t1 := m.Now()
	assert.Equal(t, 5.0, t1.Sub(t0).TotalSeconds())
}

func TestAtomicDateTimeSub(t *testing.T) {
	a := AtomicDateTime{Time: time.Date(2024, 1, 1, 0, 0, 10, 0, time.UTC)}
	b := AtomicDateTime{Time: time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC)}
	assert.Equal(t, 5.0, a.Sub(b).TotalSeconds())
}

func TestOptionOpAbsence(t *testing.T) {
	a := AtomicDateTime{Time: time.Now()}
	if OptionOp(&a, nil, AtomicDateTime.Sub) != nil {
		t.Errorf("expected nil when one side missing")
	}
}
