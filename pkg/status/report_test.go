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

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
)

func outcome(op string, metrics map[string]float64) Outcome {
	return Outcome{Operation: op, Status: StatusSucceeded, Metrics: metrics}
}

// 🧪 TestNewReport tests success and failure texts
func TestNewReport(t *testing.T) {
	tests := []struct {
		name        string
		outcome     Outcome
		err         error
		wantOK      bool
		want        string
		description string
	}{
		{
			name:        "merge",
			outcome:     outcome("merge", map[string]float64{MetricPagesWritten: 7}),
			wantOK:      true,
			want:        "PDFs merged successfully",
			description: "merge text should match",
		},
		{
			name:        "split",
			outcome:     outcome("split", map[string]float64{MetricPagesWritten: 5}),
			wantOK:      true,
			want:        "PDF split into 5 pages",
			description: "split should report page count",
		},
		{
			name:        "split_empty",
			outcome:     outcome("split", nil),
			wantOK:      true,
			want:        "PDF split into 0 pages",
			description: "zero page split is a success",
		},
		{
			name:        "convert",
			outcome:     outcome("convert-images", map[string]float64{MetricPagesWritten: 2, MetricSkippedInputs: 1}),
			wantOK:      true,
			want:        "Images converted to PDF successfully",
			description: "convert text should match",
		},
		{
			name:        "compress",
			outcome:     outcome("compress", map[string]float64{MetricReductionPercent: 25}),
			wantOK:      true,
			want:        "PDF compressed successfully (25.0% reduction)",
			description: "compress should report reduction with one decimal",
		},
		{
			name:        "compress_grew",
			outcome:     outcome("compress", map[string]float64{MetricReductionPercent: -3.5}),
			wantOK:      true,
			want:        "PDF compressed successfully (-3.5% reduction)",
			description: "negative reduction is reported as is",
		},
		{
			name:        "extract",
			outcome:     outcome("extract-images", map[string]float64{MetricImagesExtracted: 4}),
			wantOK:      true,
			want:        "Extracted 4 images from PDF",
			description: "extract should report image count",
		},
		{
			name:        "rotate",
			outcome:     outcome("rotate", map[string]float64{MetricPagesRotated: 3}),
			wantOK:      true,
			want:        "PDF rotated successfully",
			description: "rotate text should match",
		},
		{
			name:        "typed_failure",
			err:         errors.Errorf("validating: %w", failure.New(failure.TooManyFiles, "split takes exactly one file, got 2")),
			wantOK:      false,
			want:        "Too many files selected: validating: split takes exactly one file, got 2",
			description: "failure text should be kind text then cause",
		},
		{
			name:        "untyped_failure",
			err:         errors.New("boom"),
			wantOK:      false,
			want:        "Operation failed: boom",
			description: "unknown errors get a generic prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewReport(tt.outcome, tt.err)
			assert.Equal(t, tt.wantOK, got.OK, "ok flag should match")
			assert.Equal(t, tt.want, got.Text, tt.description)
		})
	}
}

func TestNewReportIsPure(t *testing.T) {
	o := outcome("split", map[string]float64{MetricPagesWritten: 2})
	first := NewReport(o, nil)
	second := NewReport(o, nil)
	assert.Equal(t, first, second, "same input should give the same report")
	assert.Equal(t, map[string]float64{MetricPagesWritten: 2}, o.Metrics, "outcome should not be modified")
}

func TestKindTextCoversEveryKind(t *testing.T) {
	for _, k := range []failure.Kind{
		failure.EmptySelection,
		failure.TooManyFiles,
		failure.WrongFileKind,
		failure.NoValidInputs,
		failure.InvalidParameter,
		failure.CodecError,
		failure.WriteError,
		failure.DecodeError,
	} {
		assert.NotEqual(t, KindText(failure.KindUnknown), KindText(k), "%s should have its own text", k)
	}
}
