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
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/status"
)

// 🖼️ NewConvertOperation creates a new image conversion operation
func NewConvertOperation(env Env, plan Plan) Operation {
	return &convertOperation{
		BaseOperation: NewBaseOperation(env, plan),
	}
}

// 🖼️ convertOperation places each image on its own page at native size
type convertOperation struct {
	BaseOperation
}

// 🏃 Execute runs the conversion
func (op *convertOperation) Execute(ctx context.Context) (status.Outcome, error) {
	for _, f := range op.Plan.Excluded {
		op.Progress.Skip(ctx, f.Path, "unsupported extension ."+f.Ext)
	}

	out, err := op.Documents.NewDocument(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("creating document: %w", err)
	}
	defer closeDoc(ctx, out, op.Plan.Params.Target.Path)

	op.Progress.Start(ctx, len(op.Plan.Files))

	for _, f := range op.Plan.Files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return status.Outcome{}, failure.Wrap(failure.DecodeError, err, "reading %s", f.Name())
		}

		page, err := op.Images.PageFromImage(ctx, f.Name(), data)
		if err != nil {
			return status.Outcome{}, errors.Errorf("converting %s: %w", f.Name(), err)
		}

		if err := out.AppendPage(page); err != nil {
			return status.Outcome{}, errors.Errorf("adding page for %s: %w", f.Name(), err)
		}
		op.Progress.Step(ctx)
	}

	staged, err := op.Stager.Begin(ctx, op.Plan.Params.Target)
	if err != nil {
		return status.Outcome{}, errors.Errorf("staging output: %w", err)
	}
	defer staged.Abort(ctx)

	if err := out.Write(staged.Path); err != nil {
		return status.Outcome{}, errors.Errorf("writing converted document: %w", err)
	}

	outputs, err := staged.Commit(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("publishing converted document: %w", err)
	}

	result := op.outcome(outputs)
	result.SetMetric(status.MetricPagesWritten, float64(len(op.Plan.Files)))
	result.SetMetric(status.MetricSkippedInputs, float64(len(op.Plan.Excluded)))
	return result, nil
}
