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

package codectest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDoc writes a document whose pages carry the given labels
func WriteDoc(tb testing.TB, path string, labels ...string) string {
	tb.Helper()
	spec := DocSpec{}
	for _, l := range labels {
		spec.Pages = append(spec.Pages, PageSpec{Label: l})
	}
	return WriteSpec(tb, path, spec)
}

// WriteSpec writes spec to path, creating parent directories
func WriteSpec(tb testing.TB, path string, spec DocSpec) string {
	tb.Helper()
	raw, err := Encode(spec)
	require.NoError(tb, err, "encoding fixture")
	require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755), "creating fixture dir")
	require.NoError(tb, os.WriteFile(path, raw, 0o644), "writing fixture")
	return path
}

// ReadSpec reads a document written by the fake codec
func ReadSpec(tb testing.TB, path string) DocSpec {
	tb.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(tb, err, "reading %s", path)
	spec, err := Decode(raw)
	require.NoError(tb, err, "decoding %s", path)
	return spec
}

// Labels lists page labels in order
func Labels(spec DocSpec) []string {
	out := make([]string, 0, len(spec.Pages))
	for _, p := range spec.Pages {
		out = append(out, p.Label)
	}
	return out
}
