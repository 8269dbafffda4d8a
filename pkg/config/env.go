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

package config

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PDFOPS_"

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are skipped; variables already set win.
func LoadEnvFiles(ctx context.Context, files ...string) error {
	logger := zerolog.Ctx(ctx)
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Errorf("checking env file %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Errorf("loading env file %s: %w", f, err)
		}
		logger.Debug().Str("file", f).Msg("loaded env file")
	}
	return nil
}

// ApplyEnv overrides cfg from PDFOPS_* variables
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	flag := func(name string) (*bool, error) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		return &b, nil
	}

	atomic, err := flag("OUTPUT_ATOMIC")
	if err != nil {
		return err
	}
	if atomic != nil {
		cfg.Output.Atomic = atomic
	}
	strict, err := flag("PDF_STRICT")
	if err != nil {
		return err
	}
	if strict != nil {
		cfg.PDF.Strict = *strict
	}
	if err := num("ROTATE_ANGLE", &cfg.Rotate.Angle); err != nil {
		return err
	}
	if err := num("PROBE_CONCURRENCY", &cfg.Selection.ProbeConcurrency); err != nil {
		return err
	}
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)
	str("LOG_FILE", &cfg.Logging.File)
	str("METRICS_TEXTFILE", &cfg.Metrics.Textfile)

	if v, ok := lookup(EnvPrefix + "UPDATE_REPO"); ok {
		owner, repo, found := strings.Cut(strings.TrimSpace(v), "/")
		if !found || owner == "" || repo == "" {
			return errors.Errorf("%sUPDATE_REPO must look like owner/repo, got %q", EnvPrefix, v)
		}
		cfg.Update.Owner, cfg.Update.Repo = owner, repo
	}

	return nil
}
