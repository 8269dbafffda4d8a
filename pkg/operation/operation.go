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

	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/status"
)

// 🎯 Operation is a transformation bound to a validated plan
type Operation interface {
	Execute(ctx context.Context) (status.Outcome, error)
}

// 🔧 Env carries the collaborators every transformation needs
type Env struct {
	Documents codec.DocumentCodec
	Images    codec.ImageCodec
	Stager    *status.Stager
}

// 🧱 BaseOperation holds the environment and plan shared by all operations
type BaseOperation struct {
	Env
	Plan     Plan
	Progress *status.Progress
}

// NewBaseOperation creates a base operation
func NewBaseOperation(env Env, plan Plan) BaseOperation {
	return BaseOperation{
		Env:      env,
		Plan:     plan,
		Progress: status.NewProgress(),
	}
}

// outcome starts a successful outcome for this operation
func (op *BaseOperation) outcome(outputs []string) status.Outcome {
	return status.Outcome{
		Operation: string(op.Plan.Spec.ID),
		Status:    status.StatusSucceeded,
		Metrics:   map[string]float64{},
		Outputs:   outputs,
	}
}

// closeDoc closes d and logs instead of failing the run
func closeDoc(ctx context.Context, d codec.Document, path string) {
	if err := d.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("closing document")
	}
}
