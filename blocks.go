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
	"fmt"
	"strconv"
	"strings"
)

// BlockKind is an enumeration of block structures.
// The zero value is not a valid kind.
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	HeadingKind
	CodeBlockKind
	BlockQuoteKind
	UnorderedListKind
	OrderedListKind
)

func (kind BlockKind) String() string {
	switch kind {
	case ParagraphKind:
		return "ParagraphKind"
	case HeadingKind:
		return "HeadingKind"
	case CodeBlockKind:
		return "CodeBlockKind"
	case BlockQuoteKind:
		return "BlockQuoteKind"
	case UnorderedListKind:
		return "UnorderedListKind"
	case OrderedListKind:
		return "OrderedListKind"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint16(kind))
	}
}

const (
	blockSeparator       = "\n\n"
	codeFence            = "```"
	blockQuoteMarker     = ">"
	unorderedListMarker  = "- "
	maxHeadingLevel      = 6
	headingMarkerPadding = ' '
)

// block is a classified chunk of a document.
type block struct {
	source string
	kind   BlockKind
	level  int // heading level, zero for other kinds
}

func parseBlocks(markdown string) []block {
	sources := SplitBlocks(markdown)
	blocks := make([]block, 0, len(sources))
	for _, s := range sources {
		blocks = append(blocks, block{
			source: s,
			kind:   ClassifyBlock(s),
			level:  HeadingLevel(s),
		})
	}
	return blocks
}

// SplitBlocks splits a document at blank lines.
// Each returned block has surrounding whitespace removed.
// Blocks that are empty after trimming are dropped.
func SplitBlocks(markdown string) []string {
	var blocks []string
	for _, s := range strings.Split(markdown, blockSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			blocks = append(blocks, s)
		}
	}
	return blocks
}

// ClassifyBlock reports the kind of a block returned by [SplitBlocks].
// The first matching rule wins:
// headings, then fenced code, block quotes, unordered lists, and ordered lists.
// Anything else (including the empty string) is a paragraph.
func ClassifyBlock(block string) BlockKind {
	if HeadingLevel(block) > 0 {
		return HeadingKind
	}
	if strings.HasPrefix(block, codeFence) && strings.HasSuffix(block, codeFence) {
		return CodeBlockKind
	}
	lines := strings.Split(block, "\n")
	switch {
	case allLines(lines, func(_ int, line string) bool {
		return strings.HasPrefix(line, blockQuoteMarker)
	}):
		return BlockQuoteKind
	case allLines(lines, func(_ int, line string) bool {
		return strings.HasPrefix(line, unorderedListMarker)
	}):
		return UnorderedListKind
	case allLines(lines, func(i int, line string) bool {
		return strings.HasPrefix(line, orderedListMarker(i))
	}):
		return OrderedListKind
	default:
		return ParagraphKind
	}
}

// HeadingLevel returns the level of a heading block:
// the number of leading '#' characters, which must be followed by a space.
// HeadingLevel returns 0 if the block is not a heading.
func HeadingLevel(block string) int {
	n := 0
	for n < len(block) && block[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeadingLevel || n >= len(block) || block[n] != headingMarkerPadding {
		return 0
	}
	return n
}

func allLines(lines []string, f func(i int, line string) bool) bool {
	for i, line := range lines {
		if !f(i, line) {
			return false
		}
	}
	return true
}

// orderedListMarker returns the marker expected
// at the start of the i'th (0-based) line of an ordered list.
func orderedListMarker(i int) string {
	return strconv.Itoa(i+1) + ". "
}
