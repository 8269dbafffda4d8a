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
	"time"

	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// 🚦 State is the lifecycle position of a run
type State int

const (
	StateIdle State = iota
	StateValidated
	StateExecuting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidated:
		return "validated"
	case StateExecuting:
		return "executing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ⚙️ Engine validates a selection and dispatches it to the operation's transformation
type Engine struct {
	env    Env
	runner *OperationRunner

	mu    sync.Mutex
	state State
	hook  func(from, to State)
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithStateHook observes every state transition
func WithStateHook(fn func(from, to State)) EngineOption {
	return func(e *Engine) {
		e.hook = fn
	}
}

// 🏭 NewEngine creates an engine
func NewEngine(env Env, runner *OperationRunner, opts ...EngineOption) *Engine {
	e := &Engine{
		env:    env,
		runner: runner,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) transition(to State) {
	e.mu.Lock()
	from := e.state
	e.state = to
	hook := e.hook
	e.mu.Unlock()
	if hook != nil {
		hook(from, to)
	}
}

// 🏃 Run validates files against the operation and executes it. The engine is idle again on return.
func (e *Engine) Run(ctx context.Context, id ID, files []selection.StagedFile, params Params) (status.Outcome, error) {
	logger := zerolog.Ctx(ctx)
	spec := Lookup(id)
	start := time.Now()

	defer e.transition(StateIdle)

	plan, err := Validate(spec, files, params)
	if err != nil {
		e.transition(StateFailed)
		logger.Debug().Err(err).Msg("validation failed")
		return failedOutcome(spec, err, time.Since(start)), err
	}
	e.transition(StateValidated)

	for _, f := range plan.Excluded {
		logger.Debug().Str("path", f.Path).Msg("excluded from run")
	}

	logger.Debug().
		Str("operation", string(spec.ID)).
		Int("files", len(plan.Files)).
		Bool("atomic", e.env.Stager.Atomic()).
		Msg("executing")

	e.transition(StateExecuting)
	outcome, err := e.runner.Run(ctx, spec.New(e.env, plan))
	if err != nil {
		e.transition(StateFailed)
		return failedOutcome(spec, err, time.Since(start)), err
	}

	e.transition(StateSucceeded)
	outcome.Duration = time.Since(start)
	return outcome, nil
}

func failedOutcome(spec *Spec, err error, d time.Duration) status.Outcome {
	return status.Outcome{
		Operation: string(spec.ID),
		Status:    status.StatusFailed,
		Message:   status.NewReport(status.Outcome{}, err).Text,
		Duration:  d,
	}
}
