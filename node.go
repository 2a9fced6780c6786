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
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is an element of an HTML tree.
// The only implementations are [*Leaf] and [*Parent].
type Node interface {
	htmlNode()
}

// A Leaf is an HTML node that holds literal content and no children.
// A Leaf with a zero tag is raw text and renders as its value alone.
// The zero Leaf has no value and cannot be rendered.
type Leaf struct {
	tag      atom.Atom
	value    string
	hasValue bool
	attrs    []html.Attribute
}

// NewLeaf returns a new leaf node.
// Pass a zero tag to create a raw text node.
func NewLeaf(tag atom.Atom, value string, attrs ...html.Attribute) *Leaf {
	return &Leaf{
		tag:      tag,
		value:    value,
		hasValue: true,
		attrs:    slices.Clone(attrs),
	}
}

// Tag returns the leaf's element name
// or zero if the leaf is raw text or nil.
func (l *Leaf) Tag() atom.Atom {
	if l == nil {
		return 0
	}
	return l.tag
}

// Value returns the leaf's content
// and whether the leaf has content at all.
func (l *Leaf) Value() (_ string, ok bool) {
	if l == nil {
		return "", false
	}
	return l.value, l.hasValue
}

// Attrs returns a copy of the leaf's attributes in insertion order.
func (l *Leaf) Attrs() []html.Attribute {
	if l == nil {
		return nil
	}
	return slices.Clone(l.attrs)
}

func (*Leaf) htmlNode() {}

// A Parent is an HTML element that holds child nodes and no text of its own.
type Parent struct {
	tag      atom.Atom
	children []Node
	attrs    []html.Attribute
}

// NewParent returns a new parent node.
// children may be empty, but a nil children slice
// is a construction error that rendering reports as [ErrMissingChildren].
func NewParent(tag atom.Atom, children []Node, attrs ...html.Attribute) *Parent {
	p := &Parent{
		tag:   tag,
		attrs: slices.Clone(attrs),
	}
	if children != nil {
		p.children = make([]Node, len(children))
		copy(p.children, children)
	}
	return p
}

// Tag returns the element name or zero if the parent is nil.
func (p *Parent) Tag() atom.Atom {
	if p == nil {
		return 0
	}
	return p.tag
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (p *Parent) ChildCount() int {
	if p == nil {
		return 0
	}
	return len(p.children)
}

// Child returns the i'th child of the node.
// It panics if i is outside the range [0, p.ChildCount()),
// so calling it on a nil Parent always panics.
func (p *Parent) Child(i int) Node {
	var children []Node
	if p != nil {
		children = p.children
	}
	return children[i]
}

// Attrs returns a copy of the parent's attributes in insertion order.
func (p *Parent) Attrs() []html.Attribute {
	if p == nil {
		return nil
	}
	return slices.Clone(p.attrs)
}

func (*Parent) htmlNode() {}

// Attr returns an attribute with the given key and value.
func Attr(key atom.Atom, val string) html.Attribute {
	return html.Attribute{Key: key.String(), Val: val}
}
