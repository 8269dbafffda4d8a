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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides",
			env: map[string]string{
				"PDFOPS_OUTPUT_ATOMIC":     "false",
				"PDFOPS_PDF_STRICT":        "true",
				"PDFOPS_ROTATE_ANGLE":      "180",
				"PDFOPS_PROBE_CONCURRENCY": " 2 ",
				"PDFOPS_LOG_LEVEL":         "debug",
				"PDFOPS_LOG_FORMAT":        "json",
				"PDFOPS_METRICS_TEXTFILE":  "/tmp/pdfops.prom",
				"PDFOPS_UPDATE_REPO":       "acme/tools",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.AtomicOutput())
				assert.True(t, cfg.PDF.Strict)
				assert.Equal(t, 180, cfg.Rotate.Angle)
				assert.Equal(t, 2, cfg.Selection.ProbeConcurrency)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "/tmp/pdfops.prom", cfg.Metrics.Textfile)
				assert.Equal(t, "acme", cfg.Update.Owner)
				assert.Equal(t, "tools", cfg.Update.Repo)
			},
		},
		{
			name: "nothing_set",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.AtomicOutput())
				assert.False(t, cfg.PDF.Strict)
				assert.Equal(t, 90, cfg.Rotate.Angle)
			},
		},
		{
			name:        "bad_strict",
			env:         map[string]string{"PDFOPS_PDF_STRICT": "sometimes"},
			errContains: "PDFOPS_PDF_STRICT",
		},
		{
			name:        "bad_bool",
			env:         map[string]string{"PDFOPS_OUTPUT_ATOMIC": "maybe"},
			errContains: "PDFOPS_OUTPUT_ATOMIC",
		},
		{
			name:        "bad_number",
			env:         map[string]string{"PDFOPS_ROTATE_ANGLE": "ninety"},
			errContains: "PDFOPS_ROTATE_ANGLE",
		},
		{
			name:        "bad_repo",
			env:         map[string]string{"PDFOPS_UPDATE_REPO": "tools"},
			errContains: "owner/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := ApplyEnv(cfg, mapLookup(tt.env))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("no_file_uses_defaults", func(t *testing.T) {
		cfg, err := Resolve(testContext(t), ResolveOptions{Dir: t.TempDir(), Lookup: mapLookup(nil)})
		require.NoError(t, err)
		assert.Empty(t, cfg.Location())
		assert.Equal(t, 90, cfg.Rotate.Angle)
	})

	t.Run("finds_default_file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, ".pdfops.hcl", "rotate {\n  angle = 180\n}\n")

		cfg, err := Resolve(testContext(t), ResolveOptions{Dir: dir, Lookup: mapLookup(nil)})
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Location())
		assert.Equal(t, 180, cfg.Rotate.Angle)
	})

	t.Run("yaml_wins_over_hcl", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".pdfops.hcl", "rotate {\n  angle = 180\n}\n")
		writeConfig(t, dir, ".pdfops.yaml", "rotate:\n  angle: 270\n")

		cfg, err := Resolve(testContext(t), ResolveOptions{Dir: dir, Lookup: mapLookup(nil)})
		require.NoError(t, err)
		assert.Equal(t, 270, cfg.Rotate.Angle)
	})

	t.Run("env_beats_file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".pdfops.yaml", "rotate:\n  angle: 270\n")

		cfg, err := Resolve(testContext(t), ResolveOptions{
			Dir:    dir,
			Lookup: mapLookup(map[string]string{"PDFOPS_ROTATE_ANGLE": "90"}),
		})
		require.NoError(t, err)
		assert.Equal(t, 90, cfg.Rotate.Angle)
	})

	t.Run("invalid_env_value", func(t *testing.T) {
		_, err := Resolve(testContext(t), ResolveOptions{
			Dir:    t.TempDir(),
			Lookup: mapLookup(map[string]string{"PDFOPS_ROTATE_ANGLE": "45"}),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rotate.angle")
	})

	t.Run("explicit_missing_path", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Resolve(testContext(t), ResolveOptions{Dir: dir, Path: filepath.Join(dir, "custom.yaml"), Lookup: mapLookup(nil)})
		require.Error(t, err)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PDFOPS_TEST_ENVFILE=from-file\n"), 0o644))
	t.Setenv("PDFOPS_TEST_ENVFILE_KEEP", "from-process")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.env"), []byte("PDFOPS_TEST_ENVFILE_KEEP=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PDFOPS_TEST_ENVFILE") })

	err := LoadEnvFiles(testContext(t), envFile, filepath.Join(dir, "missing.env"), filepath.Join(dir, "second.env"))
	require.NoError(t, err)

	assert.Equal(t, "from-file", os.Getenv("PDFOPS_TEST_ENVFILE"))
	assert.Equal(t, "from-process", os.Getenv("PDFOPS_TEST_ENVFILE_KEEP"), "process env wins")
}
