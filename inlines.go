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
	"regexp"
	"strings"
)

// A TextSpan is a run of text with a single inline formatting kind.
type TextSpan struct {
	Text string
	Kind SpanKind
	// URL is the destination of a [LinkKind] span
	// or the source of an [ImageKind] span.
	URL string
}

// SpanKind is an enumeration of inline formatting kinds.
// The zero value is not a valid kind.
type SpanKind uint16

const (
	// TextKind is used for literal text with no formatting.
	TextKind SpanKind = 1 + iota
	BoldKind
	ItalicKind
	CodeSpanKind
	LinkKind
	ImageKind
)

func (kind SpanKind) String() string {
	switch kind {
	case TextKind:
		return "TextKind"
	case BoldKind:
		return "BoldKind"
	case ItalicKind:
		return "ItalicKind"
	case CodeSpanKind:
		return "CodeSpanKind"
	case LinkKind:
		return "LinkKind"
	case ImageKind:
		return "ImageKind"
	default:
		return fmt.Sprintf("SpanKind(%d)", uint16(kind))
	}
}

// Inline delimiters, in the order that [ParseInline] applies them.
const (
	boldDelimiter   = "**"
	italicDelimiter = "_"
	codeDelimiter   = "`"
)

var (
	imagePattern = regexp.MustCompile(`!\[(.*?)\]\(([^()]*)\)`)
	// linkPattern matches images too.
	// ExtractLinks rejects matches that start right after a '!'.
	linkPattern = regexp.MustCompile(`\[(.*?)\]\(([^()]*)\)`)
)

// ParseInline splits text into formatted spans.
// ParseInline never fails:
// syntax that does not form a complete construct is kept as literal text.
//
// Bold, italic, and code spans are found first, in that order,
// followed by images and then links.
// Each stage only examines spans that earlier stages left as [TextKind],
// so formatting never nests.
func ParseInline(text string) []TextSpan {
	spans := []TextSpan{{Text: text, Kind: TextKind}}
	spans = SplitDelimiter(spans, boldDelimiter, BoldKind)
	spans = SplitDelimiter(spans, italicDelimiter, ItalicKind)
	spans = SplitDelimiter(spans, codeDelimiter, CodeSpanKind)
	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans
}

// SplitDelimiter splits every [TextKind] span at pairs of delim,
// turning the text between each pair into a span of the given kind.
// Spans of other kinds are returned unchanged.
// An opening delimiter without a matching close
// is kept, along with the rest of the span, as literal text.
func SplitDelimiter(spans []TextSpan, delim string, kind SpanKind) []TextSpan {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != TextKind || delim == "" || !strings.Contains(span.Text, delim) {
			result = append(result, span)
			continue
		}
		rest := span.Text
		for rest != "" {
			before, afterOpen, found := strings.Cut(rest, delim)
			if !found {
				result = append(result, TextSpan{Text: rest, Kind: TextKind})
				break
			}
			if before != "" {
				result = append(result, TextSpan{Text: before, Kind: TextKind})
			}
			inner, afterClose, closed := strings.Cut(afterOpen, delim)
			if !closed {
				result = append(result, TextSpan{Text: delim + afterOpen, Kind: TextKind})
				break
			}
			result = append(result, TextSpan{Text: inner, Kind: kind})
			rest = afterClose
		}
	}
	return result
}

// A LinkMatch is an image or link found by [ExtractImages] or [ExtractLinks].
type LinkMatch struct {
	// Source is the full text of the match, including punctuation.
	Source string
	// Text is the alt text of an image or the text of a link.
	Text string
	URL  string
}

// ExtractImages returns every non-overlapping ![alt](url) in text.
func ExtractImages(text string) []LinkMatch {
	var matches []LinkMatch
	for _, m := range imagePattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, LinkMatch{
			Source: text[m[0]:m[1]],
			Text:   text[m[2]:m[3]],
			URL:    text[m[4]:m[5]],
		})
	}
	return matches
}

// ExtractLinks returns every non-overlapping [text](url) in text
// that is not part of an image.
func ExtractLinks(text string) []LinkMatch {
	var matches []LinkMatch
	for pos := 0; pos < len(text); {
		m := linkPattern.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		for i := range m {
			m[i] += pos
		}
		if m[0] > 0 && text[m[0]-1] == '!' {
			// Image syntax. Try again from the next byte.
			pos = m[0] + 1
			continue
		}
		matches = append(matches, LinkMatch{
			Source: text[m[0]:m[1]],
			Text:   text[m[2]:m[3]],
			URL:    text[m[4]:m[5]],
		})
		pos = m[1]
	}
	return matches
}

// SplitImages replaces images in [TextKind] spans with [ImageKind] spans.
// Images with neither alt text nor a URL are removed.
func SplitImages(spans []TextSpan) []TextSpan {
	return splitMatches(spans, ImageKind, ExtractImages)
}

// SplitLinks replaces links in [TextKind] spans with [LinkKind] spans.
// Links with neither text nor a URL are removed.
func SplitLinks(spans []TextSpan) []TextSpan {
	return splitMatches(spans, LinkKind, ExtractLinks)
}

func splitMatches(spans []TextSpan, kind SpanKind, extract func(string) []LinkMatch) []TextSpan {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != TextKind {
			result = append(result, span)
			continue
		}
		matches := extract(span.Text)
		if len(matches) == 0 {
			result = append(result, span)
			continue
		}
		rest := span.Text
		for _, m := range matches {
			before, after, found := strings.Cut(rest, m.Source)
			if !found {
				continue
			}
			if before != "" {
				result = append(result, TextSpan{Text: before, Kind: TextKind})
			}
			if m.Text != "" || m.URL != "" {
				result = append(result, TextSpan{Text: m.Text, Kind: kind, URL: m.URL})
			}
			rest = after
		}
		if rest != "" {
			result = append(result, TextSpan{Text: rest, Kind: TextKind})
		}
	}
	return result
}
