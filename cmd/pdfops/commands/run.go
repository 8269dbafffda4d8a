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

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/cmd/pdfops/opts"
	"github.com/walteh/pdfops/pkg/config"
	"github.com/walteh/pdfops/pkg/operation"
	"github.com/walteh/pdfops/pkg/status"
)

// NewRunCmd creates the batch command
func NewRunCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [jobs file]",
		Short: "Run the jobs listed in a config file",
		Long: `Run executes every entry of the jobs list in order, each on its own
selection. A failed job is reported and the next one still runs.
Relative inputs and outputs are resolved against the jobs file's directory.
Without an argument the jobs of the loaded config are used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := ro.Config
			if len(args) == 1 {
				loaded, err := config.Load(ctx, args[0])
				if err != nil {
					return errors.Errorf("loading jobs: %w", err)
				}
				cfg = loaded
			}

			return RunJobs(cmd, ro, cfg)
		},
	}

	return cmd
}

// RunJobs executes cfg.Jobs sequentially and prints a summary
func RunJobs(cmd *cobra.Command, ro *opts.RootOpts, cfg *config.Config) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	if len(cfg.Jobs) == 0 {
		ro.Console.Warning("No jobs to run")
		return nil
	}

	dir := ""
	if loc := cfg.Location(); loc != "" {
		dir = filepath.Dir(loc)
	}

	var failed []string
	for i, job := range cfg.Jobs {
		jobLogger := logger.With().Str("job", job.Name).Int("index", i).Logger()
		jctx := jobLogger.WithContext(ctx)

		id, err := operation.ParseID(job.Operation)
		if err != nil {
			ro.Console.Report(status.NewReport(status.Outcome{}, err))
			failed = append(failed, job.Name)
			continue
		}

		angle := job.Angle
		if angle == 0 {
			angle = cfg.Rotate.Angle
		}

		_, err = Execute(jctx, ro, Request{
			Operation: id,
			Inputs:    job.Inputs,
			Output:    job.Output,
			Angle:     angle,
			Dir:       dir,
		})
		if err != nil {
			jobLogger.Debug().Err(err).Msg("job failed")
			failed = append(failed, job.Name)
		}
	}

	ro.Console.LogNewline()
	summary := status.Report{
		OK:   len(failed) == 0,
		Text: fmt.Sprintf("%d of %d job(s) succeeded", len(cfg.Jobs)-len(failed), len(cfg.Jobs)),
	}
	ro.Console.Report(summary)

	if len(failed) > 0 {
		return errors.Errorf("jobs failed: %v", failed)
	}
	return nil
}
