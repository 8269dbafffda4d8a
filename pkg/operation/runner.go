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
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/status"
)

// 🏃 OperationRunner executes one operation, inline or on its own goroutine.
// Transformations cannot be interrupted; a cancelled context is logged and the run still completes.
type OperationRunner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		async:  async,
	}
}

type runResult struct {
	outcome status.Outcome
	err     error
}

// 🏃 Run executes op and returns its outcome
func (r *OperationRunner) Run(ctx context.Context, op Operation) (status.Outcome, error) {
	if !r.async {
		res := r.guarded(ctx, op)
		return res.outcome, res.err
	}

	done := make(chan runResult, 1)
	go func() {
		done <- r.guarded(ctx, op)
	}()

	select {
	case res := <-done:
		return res.outcome, res.err
	case <-ctx.Done():
		r.logger.Warn().Err(ctx.Err()).Msg("context cancelled, waiting for the running operation to finish")
	}

	res := <-done
	return res.outcome, res.err
}

// guarded turns a panicking codec into a CodecError
func (r *OperationRunner) guarded(ctx context.Context, op Operation) (res runResult) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Str("stack", string(debug.Stack())).Msgf("operation panicked: %v", p)
			res = runResult{err: failure.New(failure.CodecError, "operation panicked: %v", p)}
		}
	}()

	outcome, err := op.Execute(ctx)
	return runResult{outcome: outcome, err: err}
}
