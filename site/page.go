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
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go4.org/bytereplacer"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"zombiezen.com/go/mdhtml"
	"zombiezen.com/go/mdhtml/internal/logging"
)

// Template placeholders.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

const markdownExt = ".md"

// A pageTemplate is an HTML document with placeholders
// for a page's title and content.
type pageTemplate struct {
	path string
	data []byte
}

func loadTemplate(path string) (*pageTemplate, error) {
	data, err := readText(path)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	return &pageTemplate{path: path, data: data}, nil
}

// execute returns the template with its placeholders filled in
// and root-relative href and src attributes moved under basePath.
// Placeholders are replaced in a single pass,
// so placeholder text inside title or content is left alone.
func (tmpl *pageTemplate) execute(title, content, basePath string) []byte {
	page := bytereplacer.New(
		TitlePlaceholder, title,
		ContentPlaceholder, content,
	).Replace(bytes.Clone(tmpl.data))
	if basePath == "" || basePath == "/" {
		return page
	}
	return bytereplacer.New(
		`href="/`, `href="`+basePath,
		`src="/`, `src="`+basePath,
	).Replace(page)
}

// GeneratePage converts the Markdown file at src to HTML,
// fills in the template at templatePath, and writes the result to dst.
// Parent directories of dst are created as needed.
// The page title is the document's first level 1 heading;
// a document without one is an error wrapping [mdhtml.ErrNoTitle].
func GeneratePage(ctx context.Context, src, templatePath, dst, basePath string) error {
	tmpl, err := loadTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	return generatePage(ctx, src, tmpl, dst, basePath)
}

func generatePage(ctx context.Context, src string, tmpl *pageTemplate, dst, basePath string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	logger := logging.FromContext(ctx)
	logger.Debug("generating page",
		logging.FieldSource, src,
		logging.FieldDest, dst,
		logging.FieldTemplate, tmpl.path,
	)

	markdown, err := ReadMarkdown(src)
	if err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	title, err := mdhtml.ExtractTitle(markdown)
	if err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	content, err := mdhtml.Render(mdhtml.BuildTree(markdown))
	if err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	page := tmpl.execute(title, content, basePath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	if err := os.WriteFile(dst, page, 0o666); err != nil {
		return fmt.Errorf("generate page %s: %w", src, err)
	}
	logger.Info("generated page",
		logging.FieldPath, dst,
		logging.FieldTitle, title,
		logging.FieldSize, humanize.Bytes(uint64(len(page))),
	)
	return nil
}

// GeneratePages calls [GeneratePage] for every Markdown file under contentDir.
// Each page is written to the same relative path under outputDir
// with its extension changed to ".html".
// At most jobs pages are generated at once.
// GeneratePages stops at the first error
// and returns the number of pages written before it.
func GeneratePages(ctx context.Context, contentDir, templatePath, outputDir, basePath string, jobs int) (int, error) {
	tmpl, err := loadTemplate(templatePath)
	if err != nil {
		return 0, fmt.Errorf("generate pages: %w", err)
	}
	sources, err := findMarkdown(contentDir)
	if err != nil {
		return 0, fmt.Errorf("generate pages: %w", err)
	}
	logger := logging.FromContext(ctx)
	logger.Debug("found pages",
		logging.FieldSource, contentDir,
		logging.FieldPages, len(sources),
		logging.FieldJobs, jobs,
	)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(max(jobs, 1))
	written := make([]bool, len(sources))
	for i, rel := range sources {
		src := filepath.Join(contentDir, rel)
		dst := filepath.Join(outputDir, strings.TrimSuffix(rel, markdownExt)+".html")
		grp.Go(func() error {
			if err := generatePage(grpCtx, src, tmpl, dst, basePath); err != nil {
				return err
			}
			written[i] = true
			return nil
		})
	}
	err = grp.Wait()
	n := 0
	for _, ok := range written {
		if ok {
			n++
		}
	}
	if err != nil {
		return n, err
	}
	logger.Info("generated pages",
		logging.FieldDest, outputDir,
		logging.FieldPages, n,
	)
	return n, nil
}

// findMarkdown returns the paths of Markdown files under dir,
// relative to dir, in lexical order.
func findMarkdown(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, ent fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ent.IsDir() || filepath.Ext(path) != markdownExt {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ReadMarkdown reads a Markdown file as text.
// A leading byte order mark is removed.
func ReadMarkdown(path string) (string, error) {
	data, err := readText(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readText reads a UTF-8 text file, dropping any leading byte order mark.
// UTF-16 files with a byte order mark are converted to UTF-8.
func readText(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
