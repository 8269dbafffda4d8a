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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Parser defines the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register adds a parser to the registry
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🔍 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// OutputConfig controls how results are published
type OutputConfig struct {
	// Atomic stages outputs and renames them into place. Nil means true.
	Atomic *bool `json:"atomic,omitempty" yaml:"atomic,omitempty"`
}

// RotateConfig holds the default rotation
type RotateConfig struct {
	Angle int `json:"angle,omitempty" yaml:"angle,omitempty"`
}

// PDFConfig tunes the document codec
type PDFConfig struct {
	// Strict rejects documents that only pass relaxed validation
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// SelectionConfig tunes the selection store
type SelectionConfig struct {
	ProbeConcurrency int `json:"probe_concurrency,omitempty" yaml:"probe_concurrency,omitempty"`
}

// LoggingConfig configures pkg/log
type LoggingConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`
	Format     string `json:"format,omitempty" yaml:"format,omitempty"` // console or json
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// MetricsConfig configures pkg/metrics
type MetricsConfig struct {
	// Textfile is a node exporter textfile path. Empty disables writing.
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

// UpdateConfig names the repository whose releases are checked
type UpdateConfig struct {
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Repo  string `json:"repo,omitempty" yaml:"repo,omitempty"`
}

// 📋 Job is one entry of a batch file
type Job struct {
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Operation string   `json:"operation" yaml:"operation"`
	Inputs    []string `json:"inputs" yaml:"inputs"`
	Output    string   `json:"output" yaml:"output"`
	Angle     int      `json:"angle,omitempty" yaml:"angle,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Output    OutputConfig    `json:"output" yaml:"output"`
	Rotate    RotateConfig    `json:"rotate" yaml:"rotate"`
	PDF       PDFConfig       `json:"pdf" yaml:"pdf"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Update    UpdateConfig    `json:"update" yaml:"update"`
	Jobs      []Job           `json:"jobs,omitempty" yaml:"jobs,omitempty"`

	location string
}

// 🏭 Default returns a validated config with every default applied
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	_ = cfg.Validate()
	return cfg
}

// 📥 Load loads and validates configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if p := GetParser(path); p != nil {
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	} else if filepath.Base(path) == BareFile {
		// a bare dotfile may hold either YAML or HCL
		cfg, err = (&YAMLParser{}).Parse(ctx, data)
		if err != nil {
			var herr error
			cfg, herr = (&HCLParser{}).Parse(ctx, data)
			if herr != nil {
				return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", BareFile, herr)
			}
		}
	} else {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg.location = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Location is the file the config came from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// AtomicOutput reports whether outputs are staged
func (cfg *Config) AtomicOutput() bool {
	return cfg.Output.Atomic == nil || *cfg.Output.Atomic
}

// ✅ Validate checks the config and fills defaults
func (cfg *Config) Validate() error {
	if cfg.Rotate.Angle == 0 {
		cfg.Rotate.Angle = 90
	}
	switch cfg.Rotate.Angle {
	case 90, 180, 270:
	default:
		return errors.Errorf("rotate.angle must be 90, 180 or 270, got %d", cfg.Rotate.Angle)
	}

	if cfg.Selection.ProbeConcurrency < 0 {
		return errors.Errorf("selection.probe_concurrency must not be negative")
	}
	if cfg.Selection.ProbeConcurrency == 0 {
		cfg.Selection.ProbeConcurrency = 4
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return errors.Errorf("logging.level: %w", err)
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	switch cfg.Logging.Format {
	case "":
		cfg.Logging.Format = FormatConsole
	case FormatConsole, FormatJSON:
	default:
		return errors.Errorf("logging.format must be %q or %q, got %q", FormatConsole, FormatJSON, cfg.Logging.Format)
	}
	if cfg.Logging.File != "" {
		cfg.Logging.File = filepath.Clean(cfg.Logging.File)
		if cfg.Logging.MaxSizeMB == 0 {
			cfg.Logging.MaxSizeMB = 100
		}
		if cfg.Logging.MaxBackups == 0 {
			cfg.Logging.MaxBackups = 5
		}
		if cfg.Logging.MaxAgeDays == 0 {
			cfg.Logging.MaxAgeDays = 30
		}
	}

	if cfg.Metrics.Textfile != "" {
		cfg.Metrics.Textfile = filepath.Clean(cfg.Metrics.Textfile)
	}

	if cfg.Update.Owner == "" {
		cfg.Update.Owner = "walteh"
	}
	if cfg.Update.Repo == "" {
		cfg.Update.Repo = "pdfops"
	}

	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if strings.TrimSpace(job.Operation) == "" {
			return errors.Errorf("jobs[%d] (%s): operation is required", i, job.Name)
		}
		if len(job.Inputs) == 0 {
			return errors.Errorf("jobs[%d] (%s): at least one input is required", i, job.Name)
		}
		if strings.TrimSpace(job.Output) == "" {
			return errors.Errorf("jobs[%d] (%s): output is required", i, job.Name)
		}
	}

	return nil
}

// 📝 String returns a short summary of the config
func (cfg *Config) String() string {
	src := cfg.location
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%s (atomic=%t, log=%s/%s, jobs=%d)", src, cfg.AtomicOutput(), cfg.Logging.Level, cfg.Logging.Format, len(cfg.Jobs))
}
