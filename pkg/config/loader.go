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
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BareFile is the extensionless config name, read as YAML then HCL
const BareFile = ".pdfops"

// DefaultFiles are searched in order when no config path is given
var DefaultFiles = []string{".pdfops.yaml", ".pdfops.yml", ".pdfops.hcl", ".pdfops.json", BareFile}

// ResolveOptions controls Resolve
type ResolveOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Dir is searched for DefaultFiles and .env, defaults to the working directory
	Dir string
	// Lookup reads overrides, defaults to os.LookupEnv
	Lookup LookupFunc
}

// 🔍 Resolve loads .env, the config file if any, then environment overrides
func Resolve(ctx context.Context, opts ResolveOptions) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}

	if err := LoadEnvFiles(ctx, filepath.Join(opts.Dir, ".env")); err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		path = findDefault(opts.Dir)
	}

	cfg := &Config{}
	if path != "" {
		loaded, err := Load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		logger.Debug().Str("dir", opts.Dir).Msg("no config file found, using defaults")
	}

	if err := ApplyEnv(cfg, opts.Lookup); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration resolved")
	return cfg, nil
}

func findDefault(dir string) string {
	for _, name := range DefaultFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
