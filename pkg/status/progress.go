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
	"sync"

	"github.com/rs/zerolog"
)

// 📈 Progress logs per item progress of a multi output run
type Progress struct {
	formatter Formatter

	mu        sync.Mutex
	total     int
	processed int
}

// NewProgress creates a progress tracker
func NewProgress() *Progress {
	return &Progress{formatter: NewDefaultFormatter()}
}

func (p *Progress) Start(ctx context.Context, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(p.formatter.FormatProgress(0, total))
}

func (p *Progress) Step(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed++
	zerolog.Ctx(ctx).Debug().
		Int("processed", p.processed).
		Int("total", p.total).
		Msg(p.formatter.FormatProgress(p.processed, p.total))
}

func (p *Progress) Skip(ctx context.Context, path, reason string) {
	zerolog.Ctx(ctx).Info().Str("path", path).Msg(p.formatter.FormatSkipped(path, reason))
}

// Processed returns the number of completed steps
func (p *Progress) Processed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}
