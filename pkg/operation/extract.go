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
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/status"
)

// 🔎 NewExtractOperation creates a new image extraction operation
func NewExtractOperation(env Env, plan Plan) Operation {
	return &extractOperation{
		BaseOperation: NewBaseOperation(env, plan),
	}
}

// 🔎 extractOperation saves embedded images as image_{page}_{index}.{ext}
type extractOperation struct {
	BaseOperation
}

// ImageFileName is the output name of image j on page p, both one based
func ImageFileName(p, j int, ext string) string {
	return fmt.Sprintf("image_%d_%d.%s", p, j, ext)
}

// 🏃 Execute runs the extraction
func (op *extractOperation) Execute(ctx context.Context) (status.Outcome, error) {
	input := op.Plan.Files[0]

	doc, err := op.Documents.Open(ctx, input.Path)
	if err != nil {
		return status.Outcome{}, errors.Errorf("opening %s: %w", input.Name(), err)
	}
	defer closeDoc(ctx, doc, input.Path)

	staged, err := op.Stager.Begin(ctx, op.Plan.Params.Target)
	if err != nil {
		return status.Outcome{}, errors.Errorf("staging output: %w", err)
	}
	defer staged.Abort(ctx)

	op.Progress.Start(ctx, doc.PageCount())

	extracted := 0
	for i := 0; i < doc.PageCount(); i++ {
		images, err := doc.EmbeddedImages(i)
		if err != nil {
			return status.Outcome{}, errors.Errorf("reading images of page %d: %w", i+1, err)
		}
		for j, img := range images {
			path := staged.File(ImageFileName(i+1, j+1, img.Ext))
			if err := os.WriteFile(path, img.Data, 0o644); err != nil {
				return status.Outcome{}, failure.Wrap(failure.WriteError, err, "writing image %d of page %d", j+1, i+1)
			}
			extracted++
		}
		op.Progress.Step(ctx)
	}

	outputs, err := staged.Commit(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("publishing images: %w", err)
	}

	result := op.outcome(outputs)
	result.SetMetric(status.MetricImagesExtracted, float64(extracted))
	return result, nil
}
