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
	"time"
)

// 📊 Status is the terminal state of a run
type Status int

const (
	StatusUnknown Status = iota
	StatusSucceeded
	StatusFailed
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🎯 TargetKind says whether an operation writes one file or a directory of files
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetFile
	TargetDirectory
)

func (k TargetKind) String() string {
	switch k {
	case TargetFile:
		return "file"
	case TargetDirectory:
		return "directory"
	default:
		return "none"
	}
}

// 📁 Target is where an operation writes
type Target struct {
	Kind TargetKind
	Path string
}

// FileTarget is a single output file
func FileTarget(path string) Target {
	return Target{Kind: TargetFile, Path: path}
}

// DirTarget is an output directory
func DirTarget(path string) Target {
	return Target{Kind: TargetDirectory, Path: path}
}

// IsZero reports whether no target was chosen
func (t Target) IsZero() bool {
	return t.Kind == TargetNone && t.Path == ""
}

// Metric keys reported in Outcome.Metrics
const (
	MetricPagesWritten     = "pages_written"
	MetricSkippedInputs    = "skipped_inputs"
	MetricReductionPercent = "reduction_percent"
	MetricOriginalBytes    = "original_bytes"
	MetricCompressedBytes  = "compressed_bytes"
	MetricImagesExtracted  = "images_extracted"
	MetricPagesRotated     = "pages_rotated"
)

// 📋 Outcome is the result of a transformation
type Outcome struct {
	Operation string
	Status    Status
	Message   string
	Metrics   map[string]float64
	Outputs   []string
	RunID     string
	Duration  time.Duration
}

// Metric returns the named metric or zero
func (o Outcome) Metric(name string) float64 {
	if o.Metrics == nil {
		return 0
	}
	return o.Metrics[name]
}

// SetMetric records a metric, allocating the map on first use
func (o *Outcome) SetMetric(name string, v float64) {
	if o.Metrics == nil {
		o.Metrics = map[string]float64{}
	}
	o.Metrics[name] = v
}
