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

// Package cli provides the command tree for the mdhtml program.
package cli

import (
	"github.com/spf13/cobra"
	"zombiezen.com/go/mdhtml/internal/logging"
)

// BuildInfo holds version information set at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions holds the values of flags shared by every command.
type globalOptions struct {
	debug      bool
	configPath string
}

// NewRootCommand returns the mdhtml command with all subcommands attached.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := new(globalOptions)
	rootCmd := &cobra.Command{
		Use:   "mdhtml",
		Short: "Convert Markdown to HTML and build static sites",
		Long: `mdhtml converts a compact dialect of Markdown to HTML.

It can render a single document, print a document's title,
or build a whole static site from a directory of Markdown pages,
a directory of static assets, and an HTML template.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if opts.debug {
				level = "debug"
			}
			logger := logging.NewWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to site config file (default "+defaultConfigFile+" if present)")

	rootCmd.AddCommand(newBuildCommand(opts))
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newTitleCommand())
	rootCmd.AddCommand(newVersionCommand(info))
	return rootCmd
}
