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
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// ✂️ NewSplitOperation creates a new split operation
func NewSplitOperation(env Env, plan Plan) Operation {
	return &splitOperation{
		BaseOperation: NewBaseOperation(env, plan),
	}
}

// ✂️ splitOperation writes each page of the input to {stem}_page_{n}.pdf
type splitOperation struct {
	BaseOperation
}

// SplitFileName is the output name of page n (one based) of input
func SplitFileName(input selection.StagedFile, n int) string {
	return fmt.Sprintf("%s_page_%d.pdf", input.Stem(), n)
}

// 🏃 Execute runs the split operation
func (op *splitOperation) Execute(ctx context.Context) (status.Outcome, error) {
	input := op.Plan.Files[0]

	src, err := op.Documents.Open(ctx, input.Path)
	if err != nil {
		return status.Outcome{}, errors.Errorf("opening %s: %w", input.Name(), err)
	}
	defer closeDoc(ctx, src, input.Path)

	staged, err := op.Stager.Begin(ctx, op.Plan.Params.Target)
	if err != nil {
		return status.Outcome{}, errors.Errorf("staging output: %w", err)
	}
	defer staged.Abort(ctx)

	n := src.PageCount()
	op.Progress.Start(ctx, n)

	for i := 0; i < n; i++ {
		if err := op.writePage(ctx, src, i, staged.File(SplitFileName(input, i+1))); err != nil {
			return status.Outcome{}, err
		}
		op.Progress.Step(ctx)
	}

	outputs, err := staged.Commit(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("publishing pages: %w", err)
	}

	result := op.outcome(outputs)
	result.SetMetric(status.MetricPagesWritten, float64(n))
	return result, nil
}

func (op *splitOperation) writePage(ctx context.Context, src codec.Document, i int, path string) error {
	page, err := src.Page(i)
	if err != nil {
		return errors.Errorf("reading page %d: %w", i+1, err)
	}

	single, err := op.Documents.NewDocument(ctx)
	if err != nil {
		return errors.Errorf("creating document for page %d: %w", i+1, err)
	}
	defer closeDoc(ctx, single, path)

	if err := single.AppendPage(page); err != nil {
		return errors.Errorf("copying page %d: %w", i+1, err)
	}
	if err := single.Write(path); err != nil {
		return errors.Errorf("writing page %d: %w", i+1, err)
	}
	return nil
}
