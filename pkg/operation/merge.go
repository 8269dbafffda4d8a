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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/status"
)

// 📚 NewMergeOperation creates a new merge operation
func NewMergeOperation(env Env, plan Plan) Operation {
	return &mergeOperation{
		BaseOperation: NewBaseOperation(env, plan),
	}
}

// 📚 mergeOperation concatenates every page of every input, in selection order
type mergeOperation struct {
	BaseOperation
}

// 🏃 Execute runs the merge operation
func (op *mergeOperation) Execute(ctx context.Context) (status.Outcome, error) {
	logger := zerolog.Ctx(ctx)

	out, err := op.Documents.NewDocument(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("creating document: %w", err)
	}
	defer closeDoc(ctx, out, op.Plan.Params.Target.Path)

	op.Progress.Start(ctx, len(op.Plan.Files))

	// sources stay open until the merged document is written
	pages := 0
	for _, f := range op.Plan.Files {
		src, err := op.Documents.Open(ctx, f.Path)
		if err != nil {
			return status.Outcome{}, errors.Errorf("opening %s: %w", f.Name(), err)
		}
		defer closeDoc(ctx, src, f.Path)

		for i := 0; i < src.PageCount(); i++ {
			page, err := src.Page(i)
			if err != nil {
				return status.Outcome{}, errors.Errorf("reading page %d of %s: %w", i+1, f.Name(), err)
			}
			if err := out.AppendPage(page); err != nil {
				return status.Outcome{}, errors.Errorf("appending page %d of %s: %w", i+1, f.Name(), err)
			}
			pages++
		}

		logger.Debug().Str("input", f.Path).Int("pages", src.PageCount()).Msg("appended document")
		op.Progress.Step(ctx)
	}

	staged, err := op.Stager.Begin(ctx, op.Plan.Params.Target)
	if err != nil {
		return status.Outcome{}, errors.Errorf("staging output: %w", err)
	}
	defer staged.Abort(ctx)

	if err := out.Write(staged.Path); err != nil {
		return status.Outcome{}, errors.Errorf("writing merged document: %w", err)
	}

	outputs, err := staged.Commit(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("publishing merged document: %w", err)
	}

	result := op.outcome(outputs)
	result.SetMetric(status.MetricPagesWritten, float64(pages))
	return result, nil
}
