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

package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"zombiezen.com/go/mdhtml/internal/logging"
	"zombiezen.com/go/mdhtml/site"
)

// defaultConfigFile is loaded by build when --config is not given.
const defaultConfigFile = "mdhtml.yaml"

func newBuildCommand(opts *globalOptions) *cobra.Command {
	var overrides site.Config
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static site",
		Long: `Build the static site described by the config file.

The output directory is emptied, static assets are copied into it,
and every Markdown page in the content directory is rendered through the template.
Flags override values from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("content") {
				cfg.Content = overrides.Content
			}
			if flags.Changed("static") {
				cfg.Static = overrides.Static
			}
			if flags.Changed("output") {
				cfg.Output = overrides.Output
			}
			if flags.Changed("template") {
				cfg.Template = overrides.Template
			}
			if flags.Changed("base-path") {
				cfg.BasePath = overrides.BasePath
			}
			if flags.Changed("jobs") {
				cfg.Jobs = overrides.Jobs
			}
			return site.Build(cmd.Context(), cfg)
		},
	}

	defaults := site.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVar(&overrides.Content, "content", defaults.Content, "directory of Markdown pages")
	flags.StringVar(&overrides.Static, "static", defaults.Static, "directory of static assets (empty to skip)")
	flags.StringVarP(&overrides.Output, "output", "o", defaults.Output, "output directory")
	flags.StringVar(&overrides.Template, "template", defaults.Template, "HTML page template")
	flags.StringVar(&overrides.BasePath, "base-path", defaults.BasePath, "URL path the site is served from")
	flags.IntVarP(&overrides.Jobs, "jobs", "j", defaults.Jobs, "number of pages to generate at once")
	return cmd
}

// loadConfig reads the config file at path.
// If path is empty, [defaultConfigFile] is read if it exists
// and the default configuration is used otherwise.
func loadConfig(ctx context.Context, path string) (*site.Config, error) {
	if path != "" {
		return site.LoadConfig(path)
	}
	cfg, err := site.LoadConfig(defaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		logging.FromContext(ctx).Debug("no config file, using defaults", logging.FieldConfig, defaultConfigFile)
		return site.DefaultConfig(), nil
	}
	return cfg, err
}
