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

import "github.com/yunusp/inv-bin-tree/internal/callstack"

// Invert returns the mirror image of the given tree: for every node, the left
// subtree of the result is the mirror of the original right subtree and vice
// versa.  Values are copied into new nodes and root is left unmodified.
//
// Inverting a tree twice yields a tree equal to the original.
func Invert[T any](root *Node[T]) *Node[T] {
	m := callstack.New("invert",
		func(m *callstack.Machine[*Node[T], T, *Node[T]], n *Node[T]) {
			if n == nil {
				m.Push(nil)
				return
			}
			m.Combine(n.value)
			m.Expand(n.left)
			m.Expand(n.right)
		},
		func(m *callstack.Machine[*Node[T], T, *Node[T]], value T) bool {
			// the mirror of the original left subtree finished last
			right := m.Pop("invert right")
			left := m.Pop("invert left")
			m.Push(NewNode(value, left, right))
			return true
		},
	)
	m.Run(root)
	return m.Result()
}
