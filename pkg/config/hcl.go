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

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_target_name": cty.StringVal(DefaultTargetName),
		},
	}

	// Define HCL schema
	type hclSet struct {
		Glob string   `hcl:"glob,optional"`
		Dirs []string `hcl:"dirs,optional"`
	}
	type hclConfig struct {
		TargetName    string  `hcl:"target_name,optional"`
		Encoding      string  `hcl:"encoding,optional"`
		CleanupPrefix string  `hcl:"cleanup_prefix,optional"`
		Source        *hclSet `hcl:"source,block"`
		Target        *hclSet `hcl:"target,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		TargetName:    hclCfg.TargetName,
		Encoding:      hclCfg.Encoding,
		CleanupPrefix: hclCfg.CleanupPrefix,
	}
	if hclCfg.Source != nil {
		cfg.Source = SetConfig{Glob: hclCfg.Source.Glob, Dirs: hclCfg.Source.Dirs}
	}
	if hclCfg.Target != nil {
		cfg.Target = SetConfig{Glob: hclCfg.Target.Glob, Dirs: hclCfg.Target.Dirs}
	}

	return cfg, nil
}
