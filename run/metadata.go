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

// CustomVariable is an editor-managed named value. Permanent variables are
// meant to be saved with the run; temporary ones are scratch state for the
// current session only and never set the modification flag.
type CustomVariable struct {
	Value       string
	IsPermanent bool
}

// Metadata carries the speedrun.com-style linking and descriptive data that
// rides alongside a Run but never participates in timing.
type Metadata struct {
	RunID          string
	PlatformName   string
	UsesEmulator   bool
	RegionName     string
	VariableOrder  []string // declaration order of Variables' keys
	Variables      map[string]string
	CustomVariable map[string]CustomVariable
}

// NewMetadata returns an empty, ready-to-use Metadata.
func NewMetadata() Metadata {
	return Metadata{
		Variables:      make(map[string]string),
		CustomVariable: make(map[string]CustomVariable),
	}
}

// AddVariable adds (or overwrites in place) a speedrun.com-style named
// variable, recording declaration order for new names.
func (m *Metadata) AddVariable(name, value string) {
	if m.Variables == nil {
		m.Variables = make(map[string]string)
	}
	if _, exists := m.Variables[name]; !exists {
		m.VariableOrder = append(m.VariableOrder, name)
	}
	m.Variables[name] = value
}

// SetCustomVariable sets or updates an editor-managed custom variable.
func (m *Metadata) SetCustomVariable(name, value string, permanent bool) {
	if m.CustomVariable == nil {
		m.CustomVariable = make(map[string]CustomVariable)
	}
	m.CustomVariable[name] = CustomVariable{Value: value, IsPermanent: permanent}
}

// RemoveCustomVariable deletes an editor-managed custom variable.
func (m *Metadata) RemoveCustomVariable(name string) {
	delete(m.CustomVariable, name)
}
