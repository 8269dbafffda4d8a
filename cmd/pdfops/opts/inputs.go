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

package opts

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/status"
)

// ExpandInputs turns arguments into paths, keeping argument order.
// Globs (including **) expand in directory order; plain paths pass through as given so the
// selection reports missing files. Staging leftovers are never matched.
func ExpandInputs(patterns []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}

	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, failure.New(failure.InvalidParameter, "bad glob %q", pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, failure.New(failure.InvalidParameter, "%q matched no files", pattern)
		}
		for _, m := range matches {
			if status.IsStagingPath(m) {
				continue
			}
			add(m)
		}
	}

	return out, nil
}

func hasMeta(p string) bool {
	if _, err := os.Lstat(p); err == nil {
		// an existing file named with brackets is taken literally
		return false
	}
	for _, c := range p {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
