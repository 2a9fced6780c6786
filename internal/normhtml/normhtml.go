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

// Package normhtml provides a function for normalizing HTML
// so that the output of different Markdown renderers can be compared.
//
// Normalization collapses insignificant whitespace,
// sorts attributes, re-escapes text consistently,
// maps equivalent phrasing elements onto one name
// (<strong> to <b> and <em> to <i>),
// and drops end tags of void elements such as </img>.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// aliases maps elements onto the equivalent element used in normalized output.
var aliases = map[atom.Atom]atom.Atom{
	atom.Strong: atom.B,
	atom.Em:     atom.I,
}

var blockTags = map[atom.Atom]struct{}{
	atom.Blockquote: {},
	atom.Body:       {},
	atom.Div:        {},
	atom.H1:         {},
	atom.H2:         {},
	atom.H3:         {},
	atom.H4:         {},
	atom.H5:         {},
	atom.H6:         {},
	atom.Hr:         {},
	atom.Li:         {},
	atom.Ol:         {},
	atom.P:          {},
	atom.Pre:        {},
	atom.Section:    {},
	atom.Table:      {},
	atom.Ul:         {},
}

var voidTags = map[atom.Atom]struct{}{
	atom.Br:  {},
	atom.Hr:  {},
	atom.Img: {},
}

// NormalizeHTML strips insignificant output differences from HTML.
func NormalizeHTML(b []byte) []byte {
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var output []byte
	last := html.StartTagToken
	var lastTag atom.Atom
	inPre := false
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return output
		case html.TextToken:
			data := tok.Text()
			afterTag := last == html.EndTagToken || last == html.StartTagToken
			if afterTag && lastTag == atom.Br {
				data = bytes.TrimLeft(data, "\n")
			}
			if !inPre {
				data = whitespaceRE.ReplaceAll(data, []byte(" "))
				if afterTag && isBlockTag(lastTag) {
					if last == html.StartTagToken {
						data = bytes.TrimLeftFunc(data, unicode.IsSpace)
					} else {
						data = bytes.TrimSpace(data)
					}
				}
			}
			output = append(output, htmlEscaper.Replace(bytes.Clone(data))...)
		case html.EndTagToken:
			name, _ := tok.TagName()
			tag := canonicalTag(name)
			if _, void := voidTags[tag]; void {
				// Already closed by its start tag.
				continue
			}
			if tag == atom.Pre {
				inPre = false
			} else if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "</"...)
			output = appendTagName(output, tag, name)
			output = append(output, ">"...)
			lastTag = tag
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			tag := canonicalTag(name)
			if tag == atom.Pre {
				inPre = true
			}
			if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "<"...)
			output = appendTagName(output, tag, name)
			if hasAttr {
				output = appendSortedAttrs(output, tok)
			}
			output = append(output, ">"...)
			lastTag = tag
		case html.CommentToken:
			output = append(output, tok.Raw()...)
		}

		last = tt
		if _, void := voidTags[lastTag]; tt == html.SelfClosingTagToken || (tt == html.StartTagToken && void) {
			last = html.EndTagToken
		}
	}
}

func appendSortedAttrs(dst []byte, tok *html.Tokenizer) []byte {
	var attrs []html.Attribute
	for {
		k, v, more := tok.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(k), Val: string(v)})
		if !more {
			break
		}
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Key < attrs[j].Key
	})
	for _, attr := range attrs {
		dst = append(dst, " "...)
		dst = append(dst, attr.Key...)
		if attr.Val != "" {
			dst = append(dst, `="`...)
			dst = append(dst, html.EscapeString(attr.Val)...)
			dst = append(dst, `"`...)
		}
	}
	return dst
}

// canonicalTag returns the atom for a lowercased tag name,
// replacing aliased elements.
// Unknown elements return zero.
func canonicalTag(name []byte) atom.Atom {
	a := atom.Lookup(name)
	if alias, ok := aliases[a]; ok {
		return alias
	}
	return a
}

func appendTagName(dst []byte, tag atom.Atom, name []byte) []byte {
	if tag == 0 {
		return append(dst, name...)
	}
	return append(dst, tag.String()...)
}

func isBlockTag(tag atom.Atom) bool {
	_, ok := blockTags[tag]
	return ok
}
