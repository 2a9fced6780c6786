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

// Package site builds a static website from a directory of Markdown pages,
// a directory of static assets, and an HTML template.
//
// Log output is sent to the logger carried by the context
// (see the internal logging package),
// falling back to a default stderr logger.
package site

import (
	"context"
	"fmt"

	"zombiezen.com/go/mdhtml/internal/logging"
)

// Build writes a complete site into cfg.Output.
// The output directory is emptied,
// static assets are copied into it,
// and then every page under cfg.Content is generated.
func Build(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	if cfg.Static != "" {
		if err := CopyStatic(ctx, cfg.Static, cfg.Output); err != nil {
			return fmt.Errorf("build site: %w", err)
		}
	} else if err := cleanDir(ctx, logging.FromContext(ctx), cfg.Output); err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	n, err := GeneratePages(ctx, cfg.Content, cfg.Template, cfg.Output, cfg.BasePath, cfg.Jobs)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	logging.FromContext(ctx).Info("site built",
		logging.FieldDest, cfg.Output,
		logging.FieldPages, n,
	)
	return nil
}
