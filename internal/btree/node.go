// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package btree implements immutable binary trees.
//
// Every algorithm in this package runs on an explicit call stack (see package
// callstack) instead of the goroutine stack, so its stack usage does not grow
// with the height of the tree.  The naturally-recursive versions of the same
// algorithms live in recursive.go and serve as a reference.
//
// A tree is represented by a single *Node.  The nil *Node is the empty tree;
// it is a valid argument to every function and method in this package, at the
// top level as well as for any subtree.
//
// Nodes are never modified after construction, and transformations such as
// Invert always build new nodes.  A node is owned by exactly one parent slot:
// the constructors in this package never share a subtree between two parents.
package btree

import (
	"fmt"

	"github.com/yunusp/inv-bin-tree/internal/callstack"
)

// Node is a single element of a binary tree.
type Node[T any] struct {
	value T
	left  *Node[T]
	right *Node[T]
}

// NewNode creates a new node with the given value and subtrees.  The caller
// hands ownership of left and right over to the new node.
func NewNode[T any](value T, left, right *Node[T]) *Node[T] {
	return &Node[T]{
		value: value,
		left:  left,
		right: right,
	}
}

// Value returns the value of the node, or the zero value if the tree is empty.
func (n *Node[T]) Value() (_ T) {
	if n == nil {
		return
	}
	return n.value
}

// Left returns the left subtree.
func (n *Node[T]) Left() *Node[T] {
	if n == nil {
		return nil
	}
	return n.left
}

// Right returns the right subtree.
func (n *Node[T]) Right() *Node[T] {
	if n == nil {
		return nil
	}
	return n.right
}

// Len returns the number of nodes in the tree.
func (n *Node[T]) Len() int {
	m := callstack.New("len",
		func(m *callstack.Machine[*Node[T], struct{}, int], n *Node[T]) {
			if n == nil {
				m.Push(0)
				return
			}
			m.Combine(struct{}{})
			m.Expand(n.right)
			m.Expand(n.left)
		},
		func(m *callstack.Machine[*Node[T], struct{}, int], _ struct{}) bool {
			m.Push(m.Pop("len right") + m.Pop("len left") + 1)
			return true
		},
	)
	m.Run(n)
	return m.Result()
}

// Height returns the number of nodes on the longest path from the root to a
// leaf.
func (n *Node[T]) Height() int {
	m := callstack.New("height",
		func(m *callstack.Machine[*Node[T], struct{}, int], n *Node[T]) {
			if n == nil {
				m.Push(0)
				return
			}
			m.Combine(struct{}{})
			m.Expand(n.right)
			m.Expand(n.left)
		},
		func(m *callstack.Machine[*Node[T], struct{}, int], _ struct{}) bool {
			m.Push(max(m.Pop("height right"), m.Pop("height left")) + 1)
			return true
		},
	)
	m.Run(n)
	return m.Result()
}

// String returns a compact representation of the tree: a leaf is printed as
// its value, an inner node as value(left right), and an empty subtree as "-".
func (n *Node[T]) String() string {
	m := callstack.New("string",
		func(m *callstack.Machine[*Node[T], *Node[T], string], n *Node[T]) {
			if n == nil {
				m.Push("-")
				return
			}
			m.Combine(n)
			m.Expand(n.right)
			m.Expand(n.left)
		},
		func(m *callstack.Machine[*Node[T], *Node[T], string], n *Node[T]) bool {
			right := m.Pop("string right")
			left := m.Pop("string left")
			if n.left == nil && n.right == nil {
				m.Push(fmt.Sprint(n.value))
			} else {
				m.Push(fmt.Sprintf("%v(%s %s)", n.value, left, right))
			}
			return true
		},
	)
	m.Run(n)
	return m.Result()
}

// Equal tests whether the given trees have the same shape and the same values
// at every position.
func Equal[T comparable](a, b *Node[T]) bool {
	// The machine stops at the first mismatch; it never builds a result.
	m := callstack.New("equal",
		func(m *callstack.Machine[[2]*Node[T], struct{}, struct{}], pair [2]*Node[T]) {
			a, b := pair[0], pair[1]
			switch {
			case a == nil && b == nil:
			case a == nil || b == nil || a.value != b.value:
				m.Combine(struct{}{})
			default:
				m.Expand([2]*Node[T]{a.right, b.right})
				m.Expand([2]*Node[T]{a.left, b.left})
			}
		},
		func(*callstack.Machine[[2]*Node[T], struct{}, struct{}], struct{}) bool {
			return false
		},
	)
	return m.Run([2]*Node[T]{a, b})
}
