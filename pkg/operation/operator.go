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
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// ErrBusy is returned by Execute while another run is in flight
var ErrBusy = errors.Base("an operation is already running")

// 📊 Recorder receives every finished run
type Recorder interface {
	Record(outcome status.Outcome, err error)
}

type nopRecorder struct{}

func (nopRecorder) Record(status.Outcome, error) {}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Documents opens and creates documents
	Documents codec.DocumentCodec
	// Images turns images into pages
	Images codec.ImageCodec
	// Atomic publishes outputs by rename
	Atomic bool
	// Async runs transformations on their own goroutine
	Async bool
	// Notifier receives user facing events, optional
	Notifier status.Notifier
	// Recorder receives run results, optional
	Recorder Recorder
	// Selection configures the selection store
	Selection []selection.Option
	// EngineOptions configure the engine
	EngineOptions []EngineOption
}

// 🎮 Operator is the boundary the presentation layer drives
type Operator struct {
	session  *Session
	engine   *Engine
	notifier status.Notifier
	recorder Recorder
	running  sync.Mutex
}

// 🏭 New creates a new operator with the given options
func New(ctx context.Context, opts Options) (*Operator, error) {
	if opts.Documents == nil {
		return nil, errors.Errorf("document codec is required")
	}
	if opts.Images == nil {
		return nil, errors.Errorf("image codec is required")
	}
	if opts.Notifier == nil {
		opts.Notifier = status.NopNotifier{}
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	env := Env{
		Documents: opts.Documents,
		Images:    opts.Images,
		Stager:    status.NewStager(opts.Atomic),
	}

	return &Operator{
		session:  NewSession(selection.New(opts.Selection...)),
		engine:   NewEngine(env, NewRunner(zerolog.Ctx(ctx), opts.Async), opts.EngineOptions...),
		notifier: opts.Notifier,
		recorder: opts.Recorder,
	}, nil
}

// SetActiveOperation selects the operation. Switching to another one clears the selection.
func (o *Operator) SetActiveOperation(ctx context.Context, id ID) {
	o.session.Switch(id)
	o.notifier.OperationSelected(ctx, Lookup(id).Label)
}

// ActiveOperation returns the selected operation, if any
func (o *Operator) ActiveOperation() (ID, bool) {
	spec := o.session.Active()
	if spec == nil {
		return "", false
	}
	return spec.ID, true
}

// AddFiles stages paths in order and returns how many were new
func (o *Operator) AddFiles(ctx context.Context, paths []string) (int, error) {
	n, err := o.session.Selection().AddAll(ctx, paths)
	if err != nil {
		return 0, errors.Errorf("adding files: %w", err)
	}
	o.notifier.FilesAdded(ctx, n)
	return n, nil
}

// RemoveFiles unstages paths and returns how many were removed
func (o *Operator) RemoveFiles(ctx context.Context, paths []string) int {
	n := o.session.Selection().Remove(paths...)
	o.notifier.FilesRemoved(ctx, n)
	return n
}

// Selection returns a snapshot of the staged files
func (o *Operator) Selection() []selection.StagedFile {
	return o.session.Selection().List()
}

// State returns the engine state
func (o *Operator) State() State {
	return o.engine.State()
}

// 🏃 Execute runs the active operation on a snapshot of the selection.
// The selection is kept whatever the result, so a failed run can be retried.
func (o *Operator) Execute(ctx context.Context, params Params) (status.Outcome, error) {
	if !o.running.TryLock() {
		return status.Outcome{}, errors.WithStack(ErrBusy)
	}
	defer o.running.Unlock()

	spec, files := o.session.Snapshot()
	if spec == nil {
		return status.Outcome{}, failure.New(failure.InvalidParameter, "no operation selected")
	}

	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", runID).
		Str("operation", string(spec.ID)).
		Logger()
	ctx = logger.WithContext(ctx)

	o.notifier.ExecutionStarted(ctx, spec.Label, len(files))

	outcome, err := o.engine.Run(ctx, spec.ID, files, params)
	outcome.RunID = runID

	report := status.NewReport(outcome, err)
	o.recorder.Record(outcome, err)
	o.notifier.ExecutionFinished(ctx, report)

	if err != nil {
		logger.Debug().Err(err).Str("kind", failure.KindOf(err).String()).Dur("duration", outcome.Duration).Msg("run failed")
		return outcome, err
	}

	logger.Debug().
		Strs("outputs", outcome.Outputs).
		Interface("metrics", outcome.Metrics).
		Dur("duration", outcome.Duration).
		Msg("run finished")
	return outcome, nil
}
