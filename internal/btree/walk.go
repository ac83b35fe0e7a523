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

package btree

import (
	"fmt"
	"iter"

	"github.com/yunusp/inv-bin-tree/internal/callstack"
)

// Order selects the relative order of a node's value and its subtrees in a
// walk.
type Order int

const (
	PreOrder  Order = iota // value, left subtree, right subtree
	InOrder                // left subtree, value, right subtree
	PostOrder              // left subtree, right subtree, value
)

// String implements the fmt.Stringer interface.
func (o Order) String() string {
	switch o {
	case PreOrder:
		return "preorder"
	case InOrder:
		return "inorder"
	case PostOrder:
		return "postorder"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// Walk returns the values of the tree in the given order.  The sequence is
// lazy: values are produced as the walk proceeds and only the pending
// ancestors are kept on the work stack.  Every range over the sequence starts
// a new walk from the root.
func Walk[T any](root *Node[T], order Order) iter.Seq[T] {
	if order < PreOrder || PostOrder < order {
		panic("invalid order")
	}
	return func(yield func(T) bool) {
		walker(root, order, yield)
	}
}

// walker walks the tree until it is exhausted or yield returns false, and
// returns the machine for inspection.
//
// The items of a node are pushed in reverse of the order they must run in.
func walker[T any](root *Node[T], order Order, yield func(T) bool) *callstack.Machine[*Node[T], T, struct{}] {
	m := callstack.New(order.String(),
		func(m *callstack.Machine[*Node[T], T, struct{}], n *Node[T]) {
			if n == nil {
				return
			}
			switch order {
			case PreOrder:
				m.Expand(n.right)
				m.Expand(n.left)
				m.Combine(n.value)
			case InOrder:
				m.Expand(n.right)
				m.Combine(n.value)
				m.Expand(n.left)
			case PostOrder:
				m.Combine(n.value)
				m.Expand(n.right)
				m.Expand(n.left)
			}
		},
		func(_ *callstack.Machine[*Node[T], T, struct{}], value T) bool {
			return yield(value)
		},
	)
	m.Run(root)
	return m
}

// Collect walks the tree in the given order and returns the values as a slice.
func Collect[T any](root *Node[T], order Order) []T {
	var out []T
	for v := range Walk(root, order) {
		out = append(out, v)
	}
	return out
}
