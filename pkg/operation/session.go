// Copyright 2025 walteh LLC
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

package operation

import (
	"sync"

	"github.com/walteh/pdfops/pkg/selection"
)

// 🗂️ Session pairs the active operation with its selection
type Session struct {
	mu     sync.Mutex
	active *Spec
	sel    *selection.Selection
}

// NewSession wraps sel
func NewSession(sel *selection.Selection) *Session {
	return &Session{sel: sel}
}

// Switch activates id. Changing to a different operation clears the selection.
func (s *Session) Switch(id ID) (changed bool) {
	spec := Lookup(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == spec {
		return false
	}
	s.active = spec
	s.sel.Clear()
	return true
}

// Active returns the active spec, nil when none was chosen
func (s *Session) Active() *Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Selection returns the underlying selection
func (s *Session) Selection() *selection.Selection {
	return s.sel
}

// Snapshot returns the active spec and a copy of the selection, taken together
func (s *Session) Snapshot() (*Spec, []selection.StagedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.sel.List()
}
