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
	"fmt"

	"github.com/walteh/pdfops/pkg/failure"
)

// 📣 Report is what the presentation layer shows after a run
type Report struct {
	OK   bool
	Text string
}

// NewReport maps an outcome or an error to display text. It has no side effects.
func NewReport(outcome Outcome, err error) Report {
	if err != nil {
		return Report{OK: false, Text: fmt.Sprintf("%s: %v", KindText(failure.KindOf(err)), err)}
	}
	if outcome.Status == StatusFailed {
		return Report{OK: false, Text: outcome.Message}
	}
	return Report{OK: true, Text: SuccessText(outcome)}
}

// SuccessText renders the per operation success message
func SuccessText(o Outcome) string {
	switch o.Operation {
	case "merge":
		return "PDFs merged successfully"
	case "split":
		return fmt.Sprintf("PDF split into %d pages", int(o.Metric(MetricPagesWritten)))
	case "convert-images":
		return "Images converted to PDF successfully"
	case "compress":
		return fmt.Sprintf("PDF compressed successfully (%.1f%% reduction)", o.Metric(MetricReductionPercent))
	case "extract-images":
		return fmt.Sprintf("Extracted %d images from PDF", int(o.Metric(MetricImagesExtracted)))
	case "rotate":
		return "PDF rotated successfully"
	default:
		if o.Message != "" {
			return o.Message
		}
		return "Operation completed successfully"
	}
}

// KindText is the human prefix for a failure kind
func KindText(k failure.Kind) string {
	switch k {
	case failure.EmptySelection:
		return "No files selected"
	case failure.TooManyFiles:
		return "Too many files selected"
	case failure.WrongFileKind:
		return "Wrong file type"
	case failure.NoValidInputs:
		return "No valid input files"
	case failure.InvalidParameter:
		return "Invalid parameter"
	case failure.CodecError:
		return "Could not process document"
	case failure.WriteError:
		return "Could not write output"
	case failure.DecodeError:
		return "Could not read image"
	default:
		return "Operation failed"
	}
}
