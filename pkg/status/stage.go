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
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
)

// StagePrefix names hidden scratch entries created next to outputs
const StagePrefix = ".pdfops-stage-"

// 💾 Stager decides where a transformation writes and publishes the result.
// With atomic set, outputs land in a scratch location and are renamed into place on Commit.
type Stager struct {
	atomic    bool
	formatter Formatter
}

// 🏭 NewStager creates a stager
func NewStager(atomic bool) *Stager {
	return &Stager{
		atomic:    atomic,
		formatter: NewDefaultFormatter(),
	}
}

// Atomic reports whether outputs are published by rename
func (s *Stager) Atomic() bool {
	return s.atomic
}

// 📝 Staged is an in-progress output
type Staged struct {
	// Path is where the transformation must write. For directory targets it is a directory.
	Path string

	target    Target
	scratch   string
	written   []string
	formatter Formatter
	done      bool
}

// Begin prepares the output for target. Directory targets are created if missing.
func (s *Stager) Begin(ctx context.Context, target Target) (*Staged, error) {
	st := &Staged{
		target:    target,
		formatter: s.formatter,
	}

	switch target.Kind {
	case TargetFile:
		dir := filepath.Dir(target.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, failure.Wrap(failure.WriteError, err, "creating parent directories")
		}
		st.Path = target.Path
		if s.atomic {
			scratch, err := os.MkdirTemp(dir, StagePrefix+"*")
			if err != nil {
				return nil, failure.Wrap(failure.WriteError, err, "creating staging directory")
			}
			st.scratch = scratch
			st.Path = filepath.Join(scratch, filepath.Base(target.Path))
		}
	case TargetDirectory:
		if err := os.MkdirAll(target.Path, 0o755); err != nil {
			return nil, failure.Wrap(failure.WriteError, err, "creating output directory")
		}
		st.Path = target.Path
		if s.atomic {
			scratch, err := os.MkdirTemp(target.Path, StagePrefix+"*")
			if err != nil {
				return nil, failure.Wrap(failure.WriteError, err, "creating staging directory")
			}
			st.scratch = scratch
			st.Path = scratch
		}
	default:
		return nil, failure.New(failure.InvalidParameter, "no output target")
	}

	zerolog.Ctx(ctx).Debug().
		Str("target", target.Path).
		Str("kind", target.Kind.String()).
		Str("staging", st.Path).
		Msg("staging output")

	return st, nil
}

// File returns the path a named file inside a directory target should be written to
func (st *Staged) File(name string) string {
	p := filepath.Join(st.Path, name)
	st.written = append(st.written, name)
	return p
}

// Commit publishes staged outputs and returns their final paths
func (st *Staged) Commit(ctx context.Context) ([]string, error) {
	if st.done {
		return nil, errors.Errorf("staged output already finished")
	}
	st.done = true
	logger := zerolog.Ctx(ctx)

	if st.target.Kind == TargetFile {
		if st.scratch != "" {
			defer os.RemoveAll(st.scratch)
			if err := os.Rename(st.Path, st.target.Path); err != nil {
				return nil, failure.Wrap(failure.WriteError, err, "renaming staged file")
			}
		}
		logger.Info().Str("path", st.target.Path).Msg(st.formatter.FormatOutput(st.target.Path))
		return []string{st.target.Path}, nil
	}

	final := make([]string, 0, len(st.written))
	for _, name := range st.written {
		dst := filepath.Join(st.target.Path, name)
		if st.scratch != "" {
			if err := os.Rename(filepath.Join(st.scratch, name), dst); err != nil {
				return final, failure.Wrap(failure.WriteError, err, "publishing %s", name)
			}
		}
		logger.Info().Str("path", dst).Msg(st.formatter.FormatOutput(dst))
		final = append(final, dst)
	}
	if st.scratch != "" {
		if err := os.RemoveAll(st.scratch); err != nil {
			return final, failure.Wrap(failure.WriteError, err, "removing staging directory")
		}
	}
	return final, nil
}

// Abort discards staged outputs. Without atomic staging, already written files stay.
func (st *Staged) Abort(ctx context.Context) {
	if st.done {
		return
	}
	st.done = true
	if st.scratch == "" {
		if len(st.written) > 0 {
			zerolog.Ctx(ctx).Warn().
				Int("files", len(st.written)).
				Str("target", st.target.Path).
				Msg("partial output left in place")
		}
		return
	}
	if err := os.RemoveAll(st.scratch); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("staging", st.scratch).Msg("removing staging directory")
	}
}

// IsStagingPath reports whether path is inside a staging location
func IsStagingPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(part, StagePrefix) {
			return true
		}
	}
	return false
}
