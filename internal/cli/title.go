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
	"fmt"

	"github.com/spf13/cobra"
	"zombiezen.com/go/mdhtml"
	"zombiezen.com/go/mdhtml/site"
)

func newTitleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "title FILE",
		Short: "Print the title of a Markdown file",
		Long:  `Print the text of the first level 1 heading ("# ") in a Markdown file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := site.ReadMarkdown(args[0])
			if err != nil {
				return err
			}
			title, err := mdhtml.ExtractTitle(markdown)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), title)
			return err
		},
	}
}
