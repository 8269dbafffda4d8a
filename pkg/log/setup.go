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

package log

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the root logger
type Options struct {
	Level  string
	JSON   bool
	Out    io.Writer // defaults to stderr
	NoTime bool      // drop timestamps, for golden output
	// ConsoleLevel raises the floor of Out only; the file keeps Level
	ConsoleLevel string

	// File enables a rotating JSON log file next to the console output
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// 🏗️ Setup builds the root logger. The closer flushes the log file, if any.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nil, errors.Errorf("parsing log level: %w", err)
		}
		level = l
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer = out
	if !opts.JSON {
		cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		if opts.NoTime {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		console = cw
	}

	if opts.ConsoleLevel != "" {
		cl, err := zerolog.ParseLevel(opts.ConsoleLevel)
		if err != nil {
			return zerolog.Nop(), nil, errors.Errorf("parsing console log level: %w", err)
		}
		console = &zerolog.FilteredLevelWriter{Writer: zerolog.LevelWriterAdapter{Writer: console}, Level: cl}
	}

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), nil, errors.Errorf("creating log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		writers = append(writers, lj)
		closer = lj
	}

	zctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With()
	if !opts.NoTime {
		zctx = zctx.Timestamp()
	}
	return zctx.Logger(), closer, nil
}
