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

package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/pdfops/pkg/failure"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func TestStagerFileTarget(t *testing.T) {
	tests := []struct {
		name   string
		atomic bool
		commit bool
		check  func(t *testing.T, dir, target string, staged *Staged)
	}{
		{
			name:   "atomic_commit_publishes",
			atomic: true,
			commit: true,
			check: func(t *testing.T, dir, target string, staged *Staged) {
				data, err := os.ReadFile(target)
				require.NoError(t, err, "target should exist")
				assert.Equal(t, "new", string(data), "target should hold new content")
				assert.Equal(t, []string{"out.pdf"}, entries(t, dir), "staging dir should be gone")
			},
		},
		{
			name:   "atomic_abort_keeps_old_target",
			atomic: true,
			commit: false,
			check: func(t *testing.T, dir, target string, staged *Staged) {
				data, err := os.ReadFile(target)
				require.NoError(t, err)
				assert.Equal(t, "old", string(data), "previous output should be untouched")
				assert.Equal(t, []string{"out.pdf"}, entries(t, dir), "staging dir should be gone")
			},
		},
		{
			name:   "direct_writes_in_place",
			atomic: false,
			commit: false,
			check: func(t *testing.T, dir, target string, staged *Staged) {
				assert.Equal(t, target, staged.Path, "direct mode writes the target itself")
				data, err := os.ReadFile(target)
				require.NoError(t, err)
				assert.Equal(t, "new", string(data), "partial output stays without atomic staging")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			target := filepath.Join(dir, "out.pdf")
			require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

			stager := NewStager(tt.atomic)
			assert.Equal(t, tt.atomic, stager.Atomic())

			staged, err := stager.Begin(ctx, FileTarget(target))
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(staged.Path, []byte("new"), 0o644))

			if tt.commit {
				outputs, err := staged.Commit(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{target}, outputs)
			} else {
				staged.Abort(ctx)
			}

			tt.check(t, dir, target, staged)
		})
	}
}

func TestStagerDirectoryTarget(t *testing.T) {
	ctx := testContext(t)
	out := filepath.Join(t.TempDir(), "pages")

	staged, err := NewStager(true).Begin(ctx, DirTarget(out))
	require.NoError(t, err)
	assert.True(t, IsStagingPath(staged.Path), "atomic directory output should be staged")

	for _, name := range []string{"doc_page_1.pdf", "doc_page_2.pdf"} {
		require.NoError(t, os.WriteFile(staged.File(name), []byte(name), 0o644))
	}

	outputs, err := staged.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "doc_page_1.pdf"),
		filepath.Join(out, "doc_page_2.pdf"),
	}, outputs, "outputs should keep write order")
	assert.Equal(t, []string{"doc_page_1.pdf", "doc_page_2.pdf"}, entries(t, out), "only final files should remain")

	_, err = staged.Commit(ctx)
	assert.Error(t, err, "committing twice should fail")
}

func TestStagerDirectoryAbort(t *testing.T) {
	ctx := testContext(t)
	out := t.TempDir()

	staged, err := NewStager(true).Begin(ctx, DirTarget(out))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(staged.File("image_1_1.png"), []byte("x"), 0o644))

	staged.Abort(ctx)
	assert.Empty(t, entries(t, out), "aborted run should leave the directory empty")
}

func TestStagerRejectsMissingTarget(t *testing.T) {
	_, err := NewStager(true).Begin(testContext(t), Target{})
	require.Error(t, err)
	assert.Equal(t, failure.InvalidParameter, failure.KindOf(err))
}

func TestTargetIsZero(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   bool
	}{
		{name: "zero", target: Target{}, want: true},
		{name: "file", target: FileTarget("out.pdf"), want: false},
		{name: "directory", target: DirTarget("pages"), want: false},
		{name: "kind_without_path", target: FileTarget(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.IsZero())
		})
	}
}

func TestIsStagingPath(t *testing.T) {
	assert.True(t, IsStagingPath("/out/.pdfops-stage-123/a.pdf"))
	assert.False(t, IsStagingPath("/out/pdfops-stage/a.pdf"))
}
