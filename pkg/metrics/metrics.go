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

// Package metrics counts operation runs on a private prometheus registry.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/status"
)

const namespace = "pdfops"

// 📊 Recorder turns run outcomes into prometheus series
type Recorder struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	failures  *prometheus.CounterVec
	pages     *prometheus.CounterVec
	images    prometheus.Counter
	reduction prometheus.Histogram
	duration  *prometheus.HistogramVec
}

// 🏭 New creates a recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Operation runs by operation and result",
			},
			[]string{"operation", "result"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Failed runs by operation and failure kind",
			},
			[]string{"operation", "kind"},
		),
		pages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_written_total",
				Help:      "Pages written by operation",
			},
			[]string{"operation"},
		),
		images: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "images_extracted_total",
				Help:      "Images extracted from documents",
			},
		),
		reduction: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "compression_reduction_percent",
				Help:      "Size reduction of compress runs",
				Buckets:   []float64{0, 5, 10, 25, 50, 75, 90},
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of operation runs",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	r.registry.MustRegister(r.runs, r.failures, r.pages, r.images, r.reduction, r.duration)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Record implements operation.Recorder
func (r *Recorder) Record(outcome status.Outcome, err error) {
	op := outcome.Operation
	if op == "" {
		op = "unknown"
	}

	r.duration.WithLabelValues(op).Observe(outcome.Duration.Seconds())

	if err != nil || outcome.Status == status.StatusFailed {
		r.runs.WithLabelValues(op, "failure").Inc()
		r.failures.WithLabelValues(op, failure.KindOf(err).String()).Inc()
		return
	}

	r.runs.WithLabelValues(op, "success").Inc()
	if n := outcome.Metric(status.MetricPagesWritten); n > 0 {
		r.pages.WithLabelValues(op).Add(n)
	}
	if n := outcome.Metric(status.MetricImagesExtracted); n > 0 {
		r.images.Add(n)
	}
	if _, ok := outcome.Metrics[status.MetricReductionPercent]; ok {
		r.reduction.Observe(outcome.Metric(status.MetricReductionPercent))
	}
}

// 💾 WriteTextfile writes every series in the node exporter textfile format
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
