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
	"zombiezen.com/go/mdhtml/internal/logging"
	"zombiezen.com/go/mdhtml/site"
)

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Print a Markdown file as HTML",
		Long: `Render a single Markdown file and print the resulting HTML fragment.
The fragment is a <div> element with one child per block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := site.ReadMarkdown(args[0])
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("rendering", logging.FieldPath, args[0])
			out := cmd.OutOrStdout()
			if err := mdhtml.RenderHTML(out, markdown); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}
}
