// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by errors returned from [*Config.Validate].
var ErrInvalidConfig = errors.New("invalid site configuration")

// Config describes the inputs and outputs of a site build.
// Relative paths are resolved against the working directory.
type Config struct {
	// Content is the directory of Markdown pages.
	Content string `yaml:"content"`
	// Static is the directory of assets copied verbatim into Output.
	// If empty, no assets are copied.
	Static string `yaml:"static"`
	// Output is the directory the site is written to.
	// Its previous contents are removed by [Build].
	Output string `yaml:"output"`
	// Template is the HTML page template.
	Template string `yaml:"template"`
	// BasePath is the URL path the site is served from.
	// Root-relative links in generated pages are rewritten to start with it.
	BasePath string `yaml:"base_path"`
	// Jobs is the maximum number of pages generated at once.
	Jobs int `yaml:"jobs"`
}

// DefaultConfig returns the configuration used for fields
// that a configuration file does not set.
func DefaultConfig() *Config {
	return &Config{
		Content:  "content",
		Static:   "static",
		Output:   "public",
		Template: "template.html",
		BasePath: "/",
		Jobs:     runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML configuration file.
// Fields missing from the file keep their [DefaultConfig] values.
// Unknown fields are an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem with the configuration.
// The returned error wraps [ErrInvalidConfig].
func (cfg *Config) Validate() error {
	var errs []error
	invalid := func(msg string) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, msg))
	}
	if cfg.Content == "" {
		invalid("content directory not set")
	}
	if cfg.Output == "" {
		invalid("output directory not set")
	}
	if cfg.Template == "" {
		invalid("template not set")
	}
	if !strings.HasPrefix(cfg.BasePath, "/") || !strings.HasSuffix(cfg.BasePath, "/") {
		invalid(fmt.Sprintf("base path %q must start and end with a slash", cfg.BasePath))
	}
	if cfg.Jobs < 1 {
		invalid(fmt.Sprintf("jobs = %d; must be at least 1", cfg.Jobs))
	}
	if cfg.Output != "" {
		if cfg.Content != "" {
			if err := checkDisjoint(cfg.Content, cfg.Output); err != nil {
				invalid("content and output: " + err.Error())
			}
		}
		if cfg.Static != "" {
			if err := checkDisjoint(cfg.Static, cfg.Output); err != nil {
				invalid("static and output: " + err.Error())
			}
		}
		if cfg.Template != "" {
			if inside, err := isWithin(cfg.Output, cfg.Template); err != nil {
				invalid("template and output: " + err.Error())
			} else if inside {
				invalid(fmt.Sprintf("template %s is inside output directory %s", cfg.Template, cfg.Output))
			}
		}
	}
	return errors.Join(errs...)
}

// checkDisjoint returns an error if dir and out are the same directory
// or if either one contains the other.
func checkDisjoint(dir, out string) error {
	for _, pair := range [][2]string{{out, dir}, {dir, out}} {
		inside, err := isWithin(pair[0], pair[1])
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("%s overlaps %s", dir, out)
		}
	}
	return nil
}

// isWithin reports whether path is dir or a descendant of dir
// after both are made absolute.
func isWithin(dir, path string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		// Different volumes.
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}
