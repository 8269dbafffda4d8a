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

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/status"
)

// 🗜️ NewCompressOperation creates a new compress operation
func NewCompressOperation(env Env, plan Plan) Operation {
	return &compressOperation{
		BaseOperation: NewBaseOperation(env, plan),
	}
}

// 🗜️ compressOperation rewrites a document without unused objects and with recompressed streams
type compressOperation struct {
	BaseOperation
}

// ReductionPercent is (orig - compressed) / orig * 100. Negative when the output grew, zero for an empty original.
func ReductionPercent(orig, compressed int64) float64 {
	if orig <= 0 {
		return 0
	}
	return float64(orig-compressed) / float64(orig) * 100
}

// 🏃 Execute runs the compress operation
func (op *compressOperation) Execute(ctx context.Context) (status.Outcome, error) {
	input := op.Plan.Files[0]

	info, err := os.Stat(input.Path)
	if err != nil {
		return status.Outcome{}, failure.Wrap(failure.CodecError, err, "reading %s", input.Name())
	}
	orig := info.Size()

	doc, err := op.Documents.Open(ctx, input.Path)
	if err != nil {
		return status.Outcome{}, errors.Errorf("opening %s: %w", input.Name(), err)
	}
	defer closeDoc(ctx, doc, input.Path)

	if err := doc.Compact(); err != nil {
		return status.Outcome{}, failure.Wrap(failure.CodecError, err, "compacting %s", input.Name())
	}

	staged, err := op.Stager.Begin(ctx, op.Plan.Params.Target)
	if err != nil {
		return status.Outcome{}, errors.Errorf("staging output: %w", err)
	}
	defer staged.Abort(ctx)

	if err := doc.Write(staged.Path); err != nil {
		return status.Outcome{}, errors.Errorf("writing compressed document: %w", err)
	}

	written, err := os.Stat(staged.Path)
	if err != nil {
		return status.Outcome{}, failure.Wrap(failure.WriteError, err, "reading compressed size")
	}
	compressed := written.Size()

	outputs, err := staged.Commit(ctx)
	if err != nil {
		return status.Outcome{}, errors.Errorf("publishing compressed document: %w", err)
	}

	reduction := ReductionPercent(orig, compressed)
	zerolog.Ctx(ctx).Debug().
		Str("original", humanize.Bytes(uint64(orig))).
		Str("compressed", humanize.Bytes(uint64(compressed))).
		Float64("reduction_percent", reduction).
		Msg("compressed document")

	result := op.outcome(outputs)
	result.SetMetric(status.MetricReductionPercent, reduction)
	result.SetMetric(status.MetricOriginalBytes, float64(orig))
	result.SetMetric(status.MetricCompressedBytes, float64(compressed))
	return result, nil
}
