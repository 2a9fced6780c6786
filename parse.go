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

// Package mdhtml converts a compact dialect of Markdown into a tree of HTML nodes.
//
// Documents are split into blocks at blank lines.
// Each block is a heading, a fenced code block, a block quote,
// an unordered or ordered list, or a paragraph.
// Within blocks (other than code), bold, italic, code, image, and link spans
// are recognized as sequential, non-nested runs.
// Malformed syntax is never an error: it is kept as literal text.
//
// Text and attribute values are not escaped when rendered.
package mdhtml

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html/atom"
)

// ErrUnrecognizedKind is returned by [SpanNode]
// for a span whose kind is not one of the defined [SpanKind] values.
var ErrUnrecognizedKind = errors.New("unrecognized span kind")

var headingTags = [maxHeadingLevel]atom.Atom{
	atom.H1,
	atom.H2,
	atom.H3,
	atom.H4,
	atom.H5,
	atom.H6,
}

// BuildTree converts a Markdown document into an HTML tree.
// The root is always a <div> element with one child per block.
func BuildTree(markdown string) *Parent {
	blocks := parseBlocks(markdown)
	children := make([]Node, 0, len(blocks))
	for _, b := range blocks {
		n, err := blockNode(b)
		if err != nil {
			// Spans come from ParseInline, which only produces valid kinds.
			panic(err)
		}
		children = append(children, n)
	}
	return NewParent(atom.Div, children)
}

func blockNode(b block) (Node, error) {
	switch b.kind {
	case ParagraphKind:
		return inlineParent(atom.P, joinLines(b.source))
	case HeadingKind:
		return inlineParent(headingTags[b.level-1], joinLines(b.source[b.level+1:]))
	case CodeBlockKind:
		code := NewParent(atom.Code, []Node{NewLeaf(0, codeBlockText(b.source))})
		return NewParent(atom.Pre, []Node{code}), nil
	case BlockQuoteKind:
		return inlineParent(atom.Blockquote, blockQuoteText(b.source))
	case UnorderedListKind:
		return listNode(atom.Ul, b.source, func(int) string { return unorderedListMarker })
	case OrderedListKind:
		return listNode(atom.Ol, b.source, orderedListMarker)
	default:
		return nil, fmt.Errorf("build html: unhandled %v", b.kind)
	}
}

// inlineParent parses text as inline content
// and wraps the result in an element.
func inlineParent(tag atom.Atom, text string) (*Parent, error) {
	spans := ParseInline(text)
	children := make([]Node, 0, len(spans))
	for _, span := range spans {
		n, err := SpanNode(span)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return NewParent(tag, children), nil
}

func listNode(tag atom.Atom, source string, marker func(i int) string) (*Parent, error) {
	lines := strings.Split(source, "\n")
	items := make([]Node, 0, len(lines))
	for i, line := range lines {
		item, err := inlineParent(atom.Li, strings.TrimPrefix(line, marker(i)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewParent(tag, items), nil
}

func joinLines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// codeBlockText returns the content between a code block's fences.
// The opening fence line, including any info string, is discarded.
func codeBlockText(source string) string {
	_, body, ok := strings.Cut(source, "\n")
	if !ok {
		return ""
	}
	return strings.TrimSuffix(body, codeFence)
}

// blockQuoteText removes the quote marker from each line of a block quote
// and joins the lines with spaces.
func blockQuoteText(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, blockQuoteMarker)
		lines[i] = strings.TrimLeftFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, " ")
}

// SpanNode converts an inline span into a leaf node.
// It returns an error wrapping [ErrUnrecognizedKind]
// if the span's kind is not a known [SpanKind].
func SpanNode(span TextSpan) (Node, error) {
	switch span.Kind {
	case TextKind:
		return NewLeaf(0, span.Text), nil
	case BoldKind:
		return NewLeaf(atom.B, span.Text), nil
	case ItalicKind:
		return NewLeaf(atom.I, span.Text), nil
	case CodeSpanKind:
		return NewLeaf(atom.Code, span.Text), nil
	case LinkKind:
		return NewLeaf(atom.A, span.Text, Attr(atom.Href, span.URL)), nil
	case ImageKind:
		return NewLeaf(atom.Img, "", Attr(atom.Src, span.URL), Attr(atom.Alt, span.Text)), nil
	default:
		return nil, fmt.Errorf("convert span to html: %v: %w", span.Kind, ErrUnrecognizedKind)
	}
}
