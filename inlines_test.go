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
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func text(s string) TextSpan {
	return TextSpan{Text: s, Kind: TextKind}
}

func TestSplitDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		spans []TextSpan
		delim string
		kind  SpanKind
		want  []TextSpan
	}{
		{
			name:  "Code",
			spans: []TextSpan{text("This is text with a `code block` word")},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("This is text with a "),
				{Text: "code block", Kind: CodeSpanKind},
				text(" word"),
			},
		},
		{
			name:  "Bold",
			spans: []TextSpan{text("This text has **bold** formatting")},
			delim: "**",
			kind:  BoldKind,
			want: []TextSpan{
				text("This text has "),
				{Text: "bold", Kind: BoldKind},
				text(" formatting"),
			},
		},
		{
			name:  "Italic",
			spans: []TextSpan{text("This text has _italic_ formatting")},
			delim: "_",
			kind:  ItalicKind,
			want: []TextSpan{
				text("This text has "),
				{Text: "italic", Kind: ItalicKind},
				text(" formatting"),
			},
		},
		{
			name:  "Multiple",
			spans: []TextSpan{text("Text with `code one` and `code two` blocks")},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("Text with "),
				{Text: "code one", Kind: CodeSpanKind},
				text(" and "),
				{Text: "code two", Kind: CodeSpanKind},
				text(" blocks"),
			},
		},
		{
			name:  "Consecutive",
			spans: []TextSpan{text("This has **consecutive** **delimiters**")},
			delim: "**",
			kind:  BoldKind,
			want: []TextSpan{
				text("This has "),
				{Text: "consecutive", Kind: BoldKind},
				text(" "),
				{Text: "delimiters", Kind: BoldKind},
			},
		},
		{
			name:  "AtStart",
			spans: []TextSpan{text("**Bold at start** normal text")},
			delim: "**",
			kind:  BoldKind,
			want: []TextSpan{
				{Text: "Bold at start", Kind: BoldKind},
				text(" normal text"),
			},
		},
		{
			name:  "AtEnd",
			spans: []TextSpan{text("Normal text **bold at end**")},
			delim: "**",
			kind:  BoldKind,
			want: []TextSpan{
				text("Normal text "),
				{Text: "bold at end", Kind: BoldKind},
			},
		},
		{
			name:  "EmptyContent",
			spans: []TextSpan{text("Empty code block: ``")},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("Empty code block: "),
				{Text: "", Kind: CodeSpanKind},
			},
		},
		{
			name:  "MissingClose",
			spans: []TextSpan{text("Unclosed `code block")},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("Unclosed "),
				text("`code block"),
			},
		},
		{
			name:  "TrailingDelimiter",
			spans: []TextSpan{text("Just text with a single backtick at end`")},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("Just text with a single backtick at end"),
				text("`"),
			},
		},
		{
			name:  "OddCount",
			spans: []TextSpan{text("This **has an odd** number of ** delimiters")},
			delim: "**",
			kind:  BoldKind,
			want: []TextSpan{
				text("This "),
				{Text: "has an odd", Kind: BoldKind},
				text(" number of "),
				text("** delimiters"),
			},
		},
		{
			name: "SkipsFormattedSpans",
			spans: []TextSpan{
				text("Normal text `with code`"),
				{Text: "Already bold text `with code`", Kind: BoldKind},
			},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("Normal text "),
				{Text: "with code", Kind: CodeSpanKind},
				{Text: "Already bold text `with code`", Kind: BoldKind},
			},
		},
		{
			name:  "BoldNotResplit",
			spans: []TextSpan{{Text: "a`x`b", Kind: BoldKind}},
			delim: "`",
			kind:  CodeSpanKind,
			want:  []TextSpan{{Text: "a`x`b", Kind: BoldKind}},
		},
		{
			name: "MixedList",
			spans: []TextSpan{
				text("First `code` block"),
				{Text: "Link", Kind: LinkKind, URL: "https://example.com"},
				text("Second `code` block"),
			},
			delim: "`",
			kind:  CodeSpanKind,
			want: []TextSpan{
				text("First "),
				{Text: "code", Kind: CodeSpanKind},
				text(" block"),
				{Text: "Link", Kind: LinkKind, URL: "https://example.com"},
				text("Second "),
				{Text: "code", Kind: CodeSpanKind},
				text(" block"),
			},
		},
		{
			name:  "NoDelimiter",
			spans: []TextSpan{text("plain")},
			delim: "**",
			kind:  BoldKind,
			want:  []TextSpan{text("plain")},
		},
		{
			name:  "EmptyList",
			spans: nil,
			delim: "**",
			kind:  BoldKind,
			want:  nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := SplitDelimiter(test.spans, test.delim, test.kind)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("SplitDelimiter(%q, %q, %v) (-want +got):\n%s", test.spans, test.delim, test.kind, diff)
			}
		})
	}
}

func TestExtractImages(t *testing.T) {
	tests := []struct {
		text string
		want []LinkMatch
	}{
		{
			text: "This is text with a ![rick roll](https://i.imgur.com/aKaOqIh.gif) and ![obi wan](https://i.imgur.com/fJRm4Vk.jpeg)",
			want: []LinkMatch{
				{Source: "![rick roll](https://i.imgur.com/aKaOqIh.gif)", Text: "rick roll", URL: "https://i.imgur.com/aKaOqIh.gif"},
				{Source: "![obi wan](https://i.imgur.com/fJRm4Vk.jpeg)", Text: "obi wan", URL: "https://i.imgur.com/fJRm4Vk.jpeg"},
			},
		},
		{text: "This is a ![malformed image](https://example.com/img.jpg"},
		{text: "[not an image](https://example.com/img.jpg)"},
		{text: "![bad](https://example.com/a(b).png)"},
		{
			text: "![](  )",
			want: []LinkMatch{{Source: "![](  )", URL: "  "}},
		},
	}
	for _, test := range tests {
		got := ExtractImages(test.text)
		if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ExtractImages(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		text string
		want []LinkMatch
	}{
		{
			text: "This is text with a link [to boot dev](https://www.boot.dev) and [to youtube](https://www.youtube.com/@bootdotdev)",
			want: []LinkMatch{
				{Source: "[to boot dev](https://www.boot.dev)", Text: "to boot dev", URL: "https://www.boot.dev"},
				{Source: "[to youtube](https://www.youtube.com/@bootdotdev)", Text: "to youtube", URL: "https://www.youtube.com/@bootdotdev"},
			},
		},
		{text: "This is a [malformed link](https://example.com"},
		{text: "This is a [malformed link(https://example.com)"},
		{text: "This is a [broken link] blah (https://example.com)"},
		{text: "![image](https://example.com/img.png)"},
		{
			text: "![image](a.png) and [link](b.html)",
			want: []LinkMatch{{Source: "[link](b.html)", Text: "link", URL: "b.html"}},
		},
		{
			// The first candidate spans the image and is rejected,
			// but the link inside it still matches.
			text: "![a [b](c)",
			want: []LinkMatch{{Source: "[b](c)", Text: "b", URL: "c"}},
		},
		{
			text: "[first](https://example.com/first)[second](https://example.com/second)",
			want: []LinkMatch{
				{Source: "[first](https://example.com/first)", Text: "first", URL: "https://example.com/first"},
				{Source: "[second](https://example.com/second)", Text: "second", URL: "https://example.com/second"},
			},
		},
	}
	for _, test := range tests {
		got := ExtractLinks(test.text)
		if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ExtractLinks(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestSplitImages(t *testing.T) {
	tests := []struct {
		name  string
		spans []TextSpan
		want  []TextSpan
	}{
		{
			name:  "Two",
			spans: []TextSpan{text("This is text with an ![image](https://i.imgur.com/zjjcJKZ.png) and another ![second image](https://i.imgur.com/3elNhQu.png)")},
			want: []TextSpan{
				text("This is text with an "),
				{Text: "image", Kind: ImageKind, URL: "https://i.imgur.com/zjjcJKZ.png"},
				text(" and another "),
				{Text: "second image", Kind: ImageKind, URL: "https://i.imgur.com/3elNhQu.png"},
			},
		},
		{
			name:  "Only",
			spans: []TextSpan{text("![standalone](https://example.com/alone.png)")},
			want:  []TextSpan{{Text: "standalone", Kind: ImageKind, URL: "https://example.com/alone.png"}},
		},
		{
			name:  "EmptyAlt",
			spans: []TextSpan{text("x ![](https://example.com/a.png)")},
			want: []TextSpan{
				text("x "),
				{Kind: ImageKind, URL: "https://example.com/a.png"},
			},
		},
		{
			name:  "EntirelyEmptyDropped",
			spans: []TextSpan{text("a ![]() b")},
			want:  []TextSpan{text("a "), text(" b")},
		},
		{
			name:  "NoImages",
			spans: []TextSpan{text("no images here")},
			want:  []TextSpan{text("no images here")},
		},
		{
			name:  "SkipsFormattedSpans",
			spans: []TextSpan{{Text: "![image](https://example.com/a.png)", Kind: CodeSpanKind}},
			want:  []TextSpan{{Text: "![image](https://example.com/a.png)", Kind: CodeSpanKind}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := SplitImages(test.spans)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("SplitImages(%q) (-want +got):\n%s", test.spans, diff)
			}
		})
	}
}

func TestSplitLinks(t *testing.T) {
	tests := []struct {
		name  string
		spans []TextSpan
		want  []TextSpan
	}{
		{
			name:  "Two",
			spans: []TextSpan{text("This is text with a link [to boot dev](https://www.boot.dev) and [to youtube](https://www.youtube.com/@bootdotdev)")},
			want: []TextSpan{
				text("This is text with a link "),
				{Text: "to boot dev", Kind: LinkKind, URL: "https://www.boot.dev"},
				text(" and "),
				{Text: "to youtube", Kind: LinkKind, URL: "https://www.youtube.com/@bootdotdev"},
			},
		},
		{
			name:  "EmptyText",
			spans: []TextSpan{text("Link with no text: [](https://example.com/empty)")},
			want: []TextSpan{
				text("Link with no text: "),
				{Kind: LinkKind, URL: "https://example.com/empty"},
			},
		},
		{
			name:  "EmptyURL",
			spans: []TextSpan{text("Link with no URL: [click here]()")},
			want: []TextSpan{
				text("Link with no URL: "),
				{Text: "click here", Kind: LinkKind},
			},
		},
		{
			name:  "Adjacent",
			spans: []TextSpan{text("[first](https://example.com/first)[second](https://example.com/second)")},
			want: []TextSpan{
				{Text: "first", Kind: LinkKind, URL: "https://example.com/first"},
				{Text: "second", Kind: LinkKind, URL: "https://example.com/second"},
			},
		},
		{
			name:  "SpecialCharacters",
			spans: []TextSpan{text("This is a [link with spaces & symbols!](https://example.com/path?query=value&more=stuff)")},
			want: []TextSpan{
				text("This is a "),
				{Text: "link with spaces & symbols!", Kind: LinkKind, URL: "https://example.com/path?query=value&more=stuff"},
			},
		},
		{
			name: "SkipsFormattedSpans",
			spans: []TextSpan{
				text("Normal text with [link](https://example.com)"),
				{Text: "Bold text with [link](https://example.com/bold)", Kind: BoldKind},
			},
			want: []TextSpan{
				text("Normal text with "),
				{Text: "link", Kind: LinkKind, URL: "https://example.com"},
				{Text: "Bold text with [link](https://example.com/bold)", Kind: BoldKind},
			},
		},
		{
			name:  "IgnoresImages",
			spans: []TextSpan{text("![image](https://example.com/a.png)")},
			want:  []TextSpan{text("![image](https://example.com/a.png)")},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := SplitLinks(test.spans)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("SplitLinks(%q) (-want +got):\n%s", test.spans, diff)
			}
		})
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		text string
		want []TextSpan
	}{
		{
			text: "This is **text** with an _italic_ word and a `code block` and an ![obi wan image](https://i.imgur.com/fJRm4Vk.jpeg) and a [link](https://boot.dev)",
			want: []TextSpan{
				text("This is "),
				{Text: "text", Kind: BoldKind},
				text(" with an "),
				{Text: "italic", Kind: ItalicKind},
				text(" word and a "),
				{Text: "code block", Kind: CodeSpanKind},
				text(" and an "),
				{Text: "obi wan image", Kind: ImageKind, URL: "https://i.imgur.com/fJRm4Vk.jpeg"},
				text(" and a "),
				{Text: "link", Kind: LinkKind, URL: "https://boot.dev"},
			},
		},
		{
			text: "Just plain text.",
			want: []TextSpan{text("Just plain text.")},
		},
		{
			text: "",
			want: []TextSpan{text("")},
		},
		{
			text: "a `b",
			want: []TextSpan{text("a "), text("`b")},
		},
		{
			// Bold runs before code, so the code delimiters stay inside the bold text.
			text: "**a `x` b**",
			want: []TextSpan{{Text: "a `x` b", Kind: BoldKind}},
		},
		{
			// Italic runs before links, so an underscore in a URL splits it.
			text: "[x](a_b_c)",
			want: []TextSpan{text("[x](a"), {Text: "b", Kind: ItalicKind}, text("c)")},
		},
		{
			text: "**bold** then `code` then [link](https://example.com)",
			want: []TextSpan{
				{Text: "bold", Kind: BoldKind},
				text(" then "),
				{Text: "code", Kind: CodeSpanKind},
				text(" then "),
				{Text: "link", Kind: LinkKind, URL: "https://example.com"},
			},
		},
	}
	for _, test := range tests {
		got := ParseInline(test.text)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ParseInline(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func FuzzParseInline(f *testing.F) {
	f.Add("This is **text** with an _italic_ word")
	f.Add("a `b")
	f.Add("![img](a.png) [link](b)")
	f.Add("![a [b](c)")
	f.Add("**_`![](")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip("Invalid UTF-8")
		}
		spans := ParseInline(s)
		for i, span := range spans {
			if _, err := SpanNode(span); err != nil {
				t.Errorf("SpanNode(spans[%d]): %v", i, err)
			}
		}
		if !strings.ContainsAny(s, "*_`[") {
			want := []TextSpan{text(s)}
			if diff := cmp.Diff(want, spans); diff != "" {
				t.Errorf("ParseInline(%q) (-want +got):\n%s", s, diff)
			}
		}
	})
}
