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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/cmd/pdfops/commands"
	"github.com/walteh/pdfops/cmd/pdfops/opts"
	"github.com/walteh/pdfops/pkg/codec/imagecodec"
	"github.com/walteh/pdfops/pkg/codec/pdfcodec"
	"github.com/walteh/pdfops/pkg/config"
	"github.com/walteh/pdfops/pkg/log"
	"github.com/walteh/pdfops/pkg/metrics"
)

// app owns what the root command sets up and tears down
type app struct {
	configFile string
	debug      bool
	json       bool
	atomic     bool
	async      bool

	opts   *opts.RootOpts
	ctx    context.Context
	closer io.Closer
}

func newApp() *app {
	return &app{opts: &opts.RootOpts{}}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfops",
		Short: "Merge, split, convert, compress, extract and rotate PDFs",
		Long: `pdfops stages input files, validates them against the chosen operation
and writes the result. Outputs are staged and renamed into place unless
--atomic=false is given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	a.addRootFlags(cmd)

	cmd.AddCommand(commands.NewOperationCmds(a.opts)...)
	cmd.AddCommand(
		commands.NewRunCmd(a.opts),
		commands.NewOperationsCmd(),
		newVersionCmd(a.opts),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func (a *app) addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file path (default: .pdfops.* in the working directory)")
	cmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&a.json, "json", false, "log as JSON")
	cmd.PersistentFlags().BoolVar(&a.atomic, "atomic", true, "stage outputs and rename them into place")
	cmd.PersistentFlags().BoolVar(&a.async, "async", false, "run transformations on a background goroutine")
}

// setup resolves config and builds the logger, console, metrics and codecs
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Resolve(ctx, config.ResolveOptions{Path: a.configFile})
	if err != nil {
		return errors.Errorf("resolving config: %w", err)
	}

	if a.debug {
		cfg.Logging.Level = zerolog.LevelDebugValue
	}
	if a.json {
		cfg.Logging.Format = config.FormatJSON
	}
	if cmd.Flags().Changed("atomic") {
		atomic := a.atomic
		cfg.Output.Atomic = &atomic
	}

	logOpts := log.Options{
		Level:      cfg.Logging.Level,
		JSON:       cfg.Logging.Format == config.FormatJSON,
		Out:        cmd.ErrOrStderr(),
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
	// the console already shows what info lines would say
	if !a.debug && !logOpts.JSON {
		logOpts.ConsoleLevel = zerolog.LevelWarnValue
	}

	logger, closer, err := log.Setup(logOpts)
	if err != nil {
		return errors.Errorf("setting up logging: %w", err)
	}
	a.closer = closer

	console := log.NewConsole(cmd.OutOrStdout(), logger)
	ctx = log.NewContext(logger.WithContext(ctx), console)

	a.opts.Config = cfg
	a.opts.Console = console
	a.opts.Recorder = metrics.New()
	var pdfOpts []pdfcodec.Option
	if cfg.PDF.Strict {
		pdfOpts = append(pdfOpts, pdfcodec.WithStrictValidation())
	}
	a.opts.Documents = pdfcodec.New(pdfOpts...)
	a.opts.Images = imagecodec.New()
	a.opts.Events = cmd.OutOrStdout()
	a.opts.Async = a.async

	a.ctx = ctx
	cmd.SetContext(ctx)

	logger.Debug().Str("config", cfg.String()).Str("command", cmd.CommandPath()).Msg("pdfops starting")
	return nil
}

// close flushes metrics and the log file
func (a *app) close() {
	if a.ctx == nil {
		return
	}
	a.opts.FlushMetrics(a.ctx)
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			zerolog.Ctx(a.ctx).Warn().Err(err).Msg("closing log file")
		}
	}
}
