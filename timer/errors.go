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

package timer

import "errors"

// ErrEmptyRun is returned by New when constructing a Timer from a Run with
// zero segments.
var ErrEmptyRun = errors.New("timer: run has no segments")

// ErrUnknownComparison is returned by SetCurrentComparison when the named
// comparison does not exist on the run.
var ErrUnknownComparison = errors.New("timer: comparison not found on run")
