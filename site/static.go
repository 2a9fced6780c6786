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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"zombiezen.com/go/mdhtml/internal/logging"
)

// CopyStatic replaces the contents of dst with a recursive copy of src.
// dst is created if it does not exist.
// Anything already in dst is deleted first.
// src and dst must not be the same directory or contain one another.
func CopyStatic(ctx context.Context, src, dst string) error {
	logger := logging.FromContext(ctx)
	if err := checkDisjoint(src, dst); err != nil {
		return fmt.Errorf("copy static %s: %w", src, err)
	}
	if err := cleanDir(ctx, logger, dst); err != nil {
		return fmt.Errorf("copy static %s: %w", src, err)
	}
	c := &staticCopier{logger: logger}
	if err := c.copyDir(ctx, src, dst); err != nil {
		return fmt.Errorf("copy static %s: %w", src, err)
	}
	logger.Info("copied static files",
		logging.FieldSource, src,
		logging.FieldDest, dst,
		logging.FieldFiles, c.files,
		logging.FieldSize, humanize.Bytes(uint64(c.bytes)),
	)
	return nil
}

// cleanDir creates dir if needed and removes everything inside it.
func cleanDir(ctx context.Context, logger *log.Logger, dir string) error {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, ent.Name())
		if err := os.RemoveAll(path); err != nil {
			return err
		}
		logger.Debug("deleted", logging.FieldPath, path)
	}
	return nil
}

type staticCopier struct {
	logger *log.Logger
	files  int
	bytes  int64
}

func (c *staticCopier) copyDir(ctx context.Context, src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		srcPath := filepath.Join(src, ent.Name())
		dstPath := filepath.Join(dst, ent.Name())
		if ent.IsDir() {
			if err := os.MkdirAll(dstPath, 0o777); err != nil {
				return err
			}
			c.logger.Debug("created directory", logging.FieldPath, dstPath)
			if err := c.copyDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if !ent.Type().IsRegular() {
			c.logger.Debug("skipped irregular file", logging.FieldPath, srcPath)
			continue
		}
		n, err := copyFile(srcPath, dstPath)
		if err != nil {
			return err
		}
		c.files++
		c.bytes += n
		c.logger.Debug("copied file",
			logging.FieldSource, srcPath,
			logging.FieldDest, dstPath,
			logging.FieldSize, humanize.Bytes(uint64(n)),
		)
	}
	return nil
}

func copyFile(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	n, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("copy %s: %w", src, err)
	}
	return n, nil
}
