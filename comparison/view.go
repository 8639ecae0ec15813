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

package comparison

import (
	"fortio.org/speedrun/attempt"
	"fortio.org/speedrun/segment"
)

// View is the read-only slice of a Run the generators need. It is defined
// here (rather than importing the run package directly) so that run can
// import comparison without creating an import cycle: *run.Run satisfies
// this interface structurally.
type View interface {
	Segments() []*segment.Segment
	Attempts() []attempt.Attempt
}
