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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/status"
)

// 🔄 NewRotateOperation creates a new rotate operation
func NewRotateOperation(env Env, plan Plan) Operation {
	return &rotateOperation{
		BaseOperation: NewBaseOperation(env, plan),
	}
}

// 🔄 rotateOperation sets the same absolute rotation on every page
type rotateOperation struct {
	BaseOperation
}

// 🏃 Execute runs the rotate operation
func (op *rotateOperation) Execute(ctx context.Context) (status.Outcome, error) {
	input := op.Plan.Files[0]
	angle := op.Plan.Params.Angle

	doc, err := op.Documents.Open(ctx, input.Path)
	if err != nil {
		return status.Outcome{}, errors.Errorf("opening %s: %w", input.Name(), err)
	}
	defer closeDoc(ctx, doc, input.Path)

	n := doc.PageCount()
	for i := 0; i < n; i++ {
		if err := doc.SetPageRotation(i, angle); err != nil {
			return status.Outcome{}, errors.Errorf("rotating page %d: %w", i+1, err)
		}
	}

	staged, err := op.Stager.Begin(ctx, op.Plan.Params.Target)
	if err != nil {
		return status.Outcome{}, errors.Errorf("staging output: %w", err)
	}
	defer staged.Abort(ctx)

	if err := doc.Write(staged.Path); err != nil {
		return status.Outcome{}, errors.Errorf("writing rotated document: %w", err)
	}

	outputs, err := staged.Commit(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("publishing rotated document: %w", err)
	}

	result := op.outcome(outputs)
	result.SetMetric(status.MetricPagesRotated, float64(n))
	return result, nil
}
