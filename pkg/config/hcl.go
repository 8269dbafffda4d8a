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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclConfig struct {
	Output *struct {
		Atomic *bool `hcl:"atomic,optional"`
	} `hcl:"output,block"`
	Rotate *struct {
		Angle int `hcl:"angle,optional"`
	} `hcl:"rotate,block"`
	PDF *struct {
		Strict bool `hcl:"strict,optional"`
	} `hcl:"pdf,block"`
	Selection *struct {
		ProbeConcurrency int `hcl:"probe_concurrency,optional"`
	} `hcl:"selection,block"`
	Logging *struct {
		Level      string `hcl:"level,optional"`
		Format     string `hcl:"format,optional"`
		File       string `hcl:"file,optional"`
		MaxSizeMB  int    `hcl:"max_size_mb,optional"`
		MaxBackups int    `hcl:"max_backups,optional"`
		MaxAgeDays int    `hcl:"max_age_days,optional"`
		Compress   bool   `hcl:"compress,optional"`
	} `hcl:"logging,block"`
	Metrics *struct {
		Textfile string `hcl:"textfile,optional"`
	} `hcl:"metrics,block"`
	Update *struct {
		Owner string `hcl:"owner,optional"`
		Repo  string `hcl:"repo,optional"`
	} `hcl:"update,block"`
	Jobs []struct {
		Name      string   `hcl:"name,label"`
		Operation string   `hcl:"operation"`
		Inputs    []string `hcl:"inputs"`
		Output    string   `hcl:"output"`
		Angle     int      `hcl:"angle,optional"`
	} `hcl:"job,block"`
}

// 📝 Parse parses the config from HCL. The env() function reads environment variables.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{}
	if hclCfg.Output != nil {
		cfg.Output.Atomic = hclCfg.Output.Atomic
	}
	if hclCfg.Rotate != nil {
		cfg.Rotate.Angle = hclCfg.Rotate.Angle
	}
	if hclCfg.PDF != nil {
		cfg.PDF.Strict = hclCfg.PDF.Strict
	}
	if hclCfg.Selection != nil {
		cfg.Selection.ProbeConcurrency = hclCfg.Selection.ProbeConcurrency
	}
	if l := hclCfg.Logging; l != nil {
		cfg.Logging = LoggingConfig{
			Level:      l.Level,
			Format:     l.Format,
			File:       l.File,
			MaxSizeMB:  l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAgeDays: l.MaxAgeDays,
			Compress:   l.Compress,
		}
	}
	if hclCfg.Metrics != nil {
		cfg.Metrics.Textfile = hclCfg.Metrics.Textfile
	}
	if hclCfg.Update != nil {
		cfg.Update = UpdateConfig{Owner: hclCfg.Update.Owner, Repo: hclCfg.Update.Repo}
	}
	for _, j := range hclCfg.Jobs {
		cfg.Jobs = append(cfg.Jobs, Job{
			Name:      j.Name,
			Operation: j.Operation,
			Inputs:    j.Inputs,
			Output:    j.Output,
			Angle:     j.Angle,
		})
	}

	return cfg, nil
}

// envObject exposes PDFOPS_* variables as env.NAME inside HCL files
func envObject() cty.Value {
	vals := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	if len(vals) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vals)
}
