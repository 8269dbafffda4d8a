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
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/config"
	"github.com/walteh/pdfops/pkg/log"
	"github.com/walteh/pdfops/pkg/metrics"
	"github.com/walteh/pdfops/pkg/operation"
	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// RootOpts is shared by every subcommand once the root command has set up
type RootOpts struct {
	Config    *config.Config
	Console   *log.Console
	Recorder  *metrics.Recorder
	Documents codec.DocumentCodec
	Images    codec.ImageCodec
	// Events receives pterm status lines, nil disables them
	Events io.Writer
	// Async runs transformations on their own goroutine
	Async bool
}

// NewOperator builds an operator with a fresh session
func (o *RootOpts) NewOperator(ctx context.Context) (*operation.Operator, error) {
	var notifier status.Notifier = status.NopNotifier{}
	if o.Events != nil {
		notifier = status.NewConsoleNotifier(o.Events)
	}

	var recorder operation.Recorder
	if o.Recorder != nil {
		recorder = o.Recorder
	}

	op, err := operation.New(ctx, operation.Options{
		Documents: o.Documents,
		Images:    o.Images,
		Atomic:    o.Config.AtomicOutput(),
		Async:     o.Async,
		Notifier:  notifier,
		Recorder:  recorder,
		Selection: []selection.Option{
			selection.WithProbeConcurrency(o.Config.Selection.ProbeConcurrency),
		},
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}
	return op, nil
}

// FlushMetrics writes the metrics textfile when one is configured
func (o *RootOpts) FlushMetrics(ctx context.Context) {
	if o.Recorder == nil || o.Config.Metrics.Textfile == "" {
		return
	}
	if err := o.Recorder.WriteTextfile(o.Config.Metrics.Textfile); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", o.Config.Metrics.Textfile).Msg("writing metrics")
	}
}
