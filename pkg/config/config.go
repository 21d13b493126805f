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
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/cgefix/pkg/document"
	"github.com/walteh/cgefix/pkg/layout"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Defaults for a Moscow CGE export folder
const (
	// DefaultTargetName is already XML-escaped and is inserted as is
	DefaultTargetName    = `ФБУЗ &quot;Центр гигиены и эпидемиологии в городе Москве&quot;`
	DefaultCleanupPrefix = "konvert"
	DefaultSourceGlob    = "ON_NSCHFDOPPR*.xml"
	DefaultTargetGlob    = "ON_SCHET__*.xml"
)

var (
	// DefaultSourceDirs are tried in order: per-kind layout, then shared layout
	DefaultSourceDirs = []string{"УПД/Отправляемые", "Отправляемые"}

	// DefaultTargetDirs are tried in order: per-kind layout, then shared layout
	DefaultTargetDirs = []string{"Счет на оплату/Отправляемые", "Отправляемые"}
)

// 🔌 Parser is the interface for config parsers
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

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📂 SetConfig selects one document family
type SetConfig struct {
	Glob string   `json:"glob,omitempty" yaml:"glob,omitempty"` // File name glob inside the set directory
	Dirs []string `json:"dirs,omitempty" yaml:"dirs,omitempty"` // Root-relative candidate directories, first existing wins
}

// 📚 Config represents the complete configuration
type Config struct {
	TargetName    string    `json:"target_name,omitempty" yaml:"target_name,omitempty"`
	Encoding      string    `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	CleanupPrefix string    `json:"cleanup_prefix,omitempty" yaml:"cleanup_prefix,omitempty"`
	Source        SetConfig `json:"source,omitempty" yaml:"source,omitempty"`
	Target        SetConfig `json:"target,omitempty" yaml:"target,omitempty"`

	location string
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	// defaults never fail validation
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when path does not exist
// and was not explicitly requested
func LoadOrDefault(ctx context.Context, path string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
	}
	return Load(ctx, path)
}

// 🔍 Validate fills defaults and checks the configuration
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.TargetName == "" {
		cfg.TargetName = DefaultTargetName
	}
	if cfg.Encoding == "" {
		cfg.Encoding = document.DefaultEncoding
	}
	if cfg.CleanupPrefix == "" {
		cfg.CleanupPrefix = DefaultCleanupPrefix
	}
	if cfg.Source.Glob == "" {
		cfg.Source.Glob = DefaultSourceGlob
	}
	if cfg.Target.Glob == "" {
		cfg.Target.Glob = DefaultTargetGlob
	}
	if len(cfg.Source.Dirs) == 0 {
		cfg.Source.Dirs = append([]string(nil), DefaultSourceDirs...)
	}
	if len(cfg.Target.Dirs) == 0 {
		cfg.Target.Dirs = append([]string(nil), DefaultTargetDirs...)
	}

	// Check values
	if strings.Contains(cfg.TargetName, `"`) {
		return errors.Errorf("target_name must not contain a raw quote, use &quot;")
	}
	codec, err := document.NewCodec(cfg.Encoding)
	if err != nil {
		return errors.Errorf("encoding: %w", err)
	}
	if _, err := codec.Encode(cfg.TargetName); err != nil {
		return errors.Errorf("target_name: %w", err)
	}
	if !doublestar.ValidatePattern(cfg.Source.Glob) {
		return errors.Errorf("source.glob is not a valid glob: %q", cfg.Source.Glob)
	}
	if !doublestar.ValidatePattern(cfg.Target.Glob) {
		return errors.Errorf("target.glob is not a valid glob: %q", cfg.Target.Glob)
	}

	// the prefix is compared against lowercased file names
	cfg.CleanupPrefix = strings.ToLower(cfg.CleanupPrefix)

	return nil
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// Candidates returns the layout candidates for both document sets
func (cfg *Config) Candidates() layout.Candidates {
	return layout.Candidates{
		Source: cfg.Source.Dirs,
		Target: cfg.Target.Dirs,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s in %v, %s in %v (%s)", cfg.Source.Glob, cfg.Source.Dirs, cfg.Target.Glob, cfg.Target.Dirs, cfg.Encoding)
}
