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

package mdhtml

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Errors returned by [Render] and [AppendHTML]
// for nodes that were constructed incorrectly.
var (
	ErrMissingValue    = errors.New("leaf node has no value")
	ErrMissingTag      = errors.New("parent node has no tag")
	ErrMissingChildren = errors.New("parent node has nil children")
)

// RenderHTML converts a Markdown document to HTML
// and writes it to the given writer.
func RenderHTML(w io.Writer, markdown string) error {
	buf, err := AppendHTML(nil, BuildTree(markdown))
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// Render returns the HTML serialization of the tree rooted at n.
// Render does not modify the tree,
// so repeated calls produce identical output.
func Render(n Node) (string, error) {
	buf, err := AppendHTML(nil, n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// AppendHTML appends the HTML serialization of the tree rooted at n to dst
// and returns the resulting byte slice.
// If the tree contains an improperly constructed node,
// AppendHTML returns dst unmodified and an error.
func AppendHTML(dst []byte, n Node) ([]byte, error) {
	r := &renderState{dst: dst}
	err := Walk(n, &WalkOptions{
		Pre:  r.pre,
		Post: r.post,
	})
	if err != nil {
		return dst, fmt.Errorf("render html: %w", err)
	}
	return r.dst, nil
}

type renderState struct {
	dst []byte
}

func (r *renderState) pre(c *Cursor) error {
	switch n := c.Node().(type) {
	case *Leaf:
		value, ok := n.Value()
		if !ok {
			return fmt.Errorf("%s: %w", describeNode(c, n.tag), ErrMissingValue)
		}
		if n.tag == 0 {
			r.dst = append(r.dst, value...)
			return SkipChildren
		}
		r.openTag(n.tag, n.attrs)
		r.dst = append(r.dst, value...)
		r.closeTag(n.tag)
		return SkipChildren
	case *Parent:
		if n.Tag() == 0 {
			return fmt.Errorf("%s: %w", describeNode(c, n.tag), ErrMissingTag)
		}
		if n.children == nil {
			return fmt.Errorf("%s: %w", describeNode(c, n.tag), ErrMissingChildren)
		}
		r.openTag(n.tag, n.attrs)
		return nil
	default:
		return fmt.Errorf("unknown node type %T", n)
	}
}

// describeNode names the node at c for error messages.
func describeNode(c *Cursor, tag atom.Atom) string {
	if tag != 0 {
		return "<" + tag.String() + ">"
	}
	if p := c.Parent(); p != nil && p.tag != 0 {
		return "untagged node in <" + p.tag.String() + ">"
	}
	return "untagged node"
}

func (r *renderState) post(c *Cursor) error {
	if p, ok := c.Node().(*Parent); ok {
		r.closeTag(p.tag)
	}
	return nil
}

func (r *renderState) openTag(name atom.Atom, attrs []html.Attribute) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	for _, a := range attrs {
		r.dst = append(r.dst, ' ')
		if a.Namespace != "" {
			r.dst = append(r.dst, a.Namespace...)
			r.dst = append(r.dst, ':')
		}
		r.dst = append(r.dst, a.Key...)
		r.dst = append(r.dst, `="`...)
		r.dst = append(r.dst, a.Val...)
		r.dst = append(r.dst, '"')
	}
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}
