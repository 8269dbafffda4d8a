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

// Package selection holds the ordered set of files staged for an operation.
package selection

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/pdfops/pkg/failure"
)

// 📄 Kind is the coarse file classification used by the validator
type Kind int

const (
	Document Kind = iota
	Image
)

func (k Kind) String() string {
	if k == Document {
		return "document"
	}
	return "image"
}

// 📎 StagedFile is a file chosen as input. Immutable once probed.
type StagedFile struct {
	Path      string
	Kind      Kind
	SizeBytes int64
	Ext       string // lower case, no leading dot
	MIME      string
}

// Name returns the base name of the file
func (f StagedFile) Name() string {
	return filepath.Base(f.Path)
}

// Stem returns the base name without extension
func (f StagedFile) Stem() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TypeLabel is the upper case extension shown in listings
func (f StagedFile) TypeLabel() string {
	return strings.ToUpper(f.Ext)
}

// HumanSize renders the size the way file listings show it
func (f StagedFile) HumanSize() string {
	return humanize.Bytes(uint64(max(f.SizeBytes, 0)))
}

// 🗂️ Selection is an ordered, duplicate free list of staged files
type Selection struct {
	mu     sync.RWMutex
	files  []StagedFile
	prober Prober
	limit  int
}

// Option configures a Selection
type Option func(*Selection)

// WithProber overrides how files are probed
func WithProber(p Prober) Option {
	return func(s *Selection) {
		s.prober = p
	}
}

// WithProbeConcurrency bounds concurrent probes in AddAll
func WithProbeConcurrency(n int) Option {
	return func(s *Selection) {
		if n > 0 {
			s.limit = n
		}
	}
}

// 🏭 New creates an empty selection
func New(opts ...Option) *Selection {
	s := &Selection{
		prober: FileProber{},
		limit:  4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ➕ Add probes path and appends it. Returns false without error when the path is already staged.
func (s *Selection) Add(ctx context.Context, path string) (bool, error) {
	key, err := normalize(path)
	if err != nil {
		return false, err
	}

	if s.contains(key) {
		zerolog.Ctx(ctx).Debug().Str("path", key).Msg("already staged")
		return false, nil
	}

	f, err := s.prober.Probe(ctx, key)
	if err != nil {
		return false, errors.Errorf("probing %s: %w", path, err)
	}

	return s.appendUnique(f), nil
}

// ➕ AddAll probes paths concurrently and appends them in argument order.
// Nothing is appended if any probe fails.
func (s *Selection) AddAll(ctx context.Context, paths []string) (int, error) {
	keys := make([]string, len(paths))
	for i, p := range paths {
		key, err := normalize(p)
		if err != nil {
			return 0, err
		}
		keys[i] = key
	}

	probed := make([]*StagedFile, len(keys))
	seen := make(map[string]bool, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, key := range keys {
		if seen[key] || s.contains(key) {
			continue
		}
		seen[key] = true
		g.Go(func() error {
			f, err := s.prober.Probe(gctx, key)
			if err != nil {
				return errors.Errorf("probing %s: %w", paths[i], err)
			}
			probed[i] = &f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	added := 0
	for _, f := range probed {
		if f == nil {
			continue
		}
		if s.appendUnique(*f) {
			added++
		}
	}

	zerolog.Ctx(ctx).Debug().Int("requested", len(paths)).Int("added", added).Msg("staged files")
	return added, nil
}

// ➖ Remove drops the given paths. Paths not staged are ignored.
func (s *Selection) Remove(paths ...string) int {
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		key, err := normalize(p)
		if err != nil {
			continue
		}
		drop[key] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.files[:0]
	removed := 0
	for _, f := range s.files {
		if drop[f.Path] {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	clear(s.files[len(kept):])
	s.files = kept
	return removed
}

// 🧹 Clear drops every staged file
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

// 📋 List returns a snapshot in insertion order
func (s *Selection) List() []StagedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StagedFile, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of staged files
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *Selection) contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.Path == key {
			return true
		}
	}
	return false
}

func (s *Selection) appendUnique(f StagedFile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.files {
		if existing.Path == f.Path {
			return false
		}
	}
	s.files = append(s.files, f)
	return true
}

func normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", failure.New(failure.InvalidParameter, "empty path")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
