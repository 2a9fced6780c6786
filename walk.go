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

import "errors"

// SkipChildren is used as a return value from [WalkOptions.Pre]
// to indicate that the current node's children should be skipped.
// It is not returned as an error by [Walk].
var SkipChildren = errors.New("skip children")

// A Cursor describes a [Node] encountered during [Walk].
type Cursor struct {
	node   Node
	parent *Parent
}

// Node returns the current [Node].
func (c *Cursor) Node() Node {
	return c.node
}

// Parent returns the parent of the current [Node]
// (as returned by [*Cursor.Node])
// or nil if the current node is the root.
func (c *Cursor) Parent() *Parent {
	return c.parent
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each node before the node's children are traversed (pre-order).
	// If Pre returns SkipChildren, no children are traversed, and Post is not called for that node.
	// If Pre returns any other error, traversal stops and Walk returns the error.
	Pre func(c *Cursor) error
	// If Post is not nil, it is called for each node after the node's children are traversed (post-order).
	// If Post returns an error, traversal stops and Walk returns the error.
	Post func(c *Cursor) error
}

// Walk traverses a [Node] recursively, starting with root,
// and calling [WalkOptions.Pre] and [WalkOptions.Post].
// Walk does not use the call stack,
// so arbitrarily deep trees may be traversed.
func Walk(root Node, opts *WalkOptions) error {
	type walkFrame struct {
		node   Node
		parent *Parent
		post   bool
	}

	stack := []walkFrame{{node: root}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cursor.node = curr.node
		cursor.parent = curr.parent
		if curr.post {
			if opts.Post != nil {
				if err := opts.Post(cursor); err != nil {
					return err
				}
			}
			continue
		}

		if opts.Pre != nil {
			if err := opts.Pre(cursor); errors.Is(err, SkipChildren) {
				continue
			} else if err != nil {
				return err
			}
		}
		curr.post = true
		stack = append(stack, curr)
		if p, ok := curr.node.(*Parent); ok {
			for i := p.ChildCount() - 1; i >= 0; i-- {
				stack = append(stack, walkFrame{
					parent: p,
					node:   p.Child(i),
				})
			}
		}
	}
	return nil
}
