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

import "errors"

// Errors returned by Run mutation methods, per spec.md's error table.
var (
	ErrDuplicateComparisonName = errors.New("run: duplicate comparison name")
	ErrNameStartsWithRacePrefix = errors.New("run: comparison name starts with reserved [Race] prefix")
	ErrNameIsReserved           = errors.New("run: comparison name is reserved for a built-in generator")
)
