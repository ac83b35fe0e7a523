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
	"github.com/cockroachdb/errors"
	"github.com/yunusp/inv-bin-tree/internal/callstack"
	"golang.org/x/exp/constraints"
)

// Build creates a complete binary tree with the given depth.  Depth 0 yields
// the empty tree; otherwise the root has two subtrees of depth-1.
//
// Nodes are labeled with 1, 2, 3, ... in the order they are expanded: a node
// takes its label before either of its children does, and the left subtree is
// labeled before the right one.  Hence the tree has 2^depth-1 nodes and a
// pre-order walk yields the labels in increasing order, exactly as
// BuildRecursive does.  Build panics if the labels do not fit in L.
func Build[L constraints.Integer](depth int) *Node[L] {
	if depth < 0 {
		panic("negative depth")
	}

	// The counter belongs to this call only; each label travels to the combine
	// step inside the work item.
	counter := L(1)

	m := callstack.New("build",
		func(m *callstack.Machine[int, L, *Node[L]], level int) {
			if level == 0 {
				m.Push(nil)
				return
			}
			// the counter starts at 1, so it only drops below 1 by wrapping
			if counter < 1 {
				panic(errors.AssertionFailedf("build: label overflow at depth %d", depth))
			}
			m.Combine(counter)
			counter++
			m.Expand(level - 1) // right
			m.Expand(level - 1) // left
		},
		func(m *callstack.Machine[int, L, *Node[L]], label L) bool {
			// the left subtree finished first, so the right one is on top
			right := m.Pop("build right")
			left := m.Pop("build left")
			m.Push(NewNode(label, left, right))
			return true
		},
	)
	m.Run(depth)
	return m.Result()
}
