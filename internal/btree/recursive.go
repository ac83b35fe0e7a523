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

import "golang.org/x/exp/constraints"

// The functions below are the naturally-recursive definitions of the
// algorithms in this package.  Their stack usage grows with the height of the
// tree, and they are kept as a reference for testing.

// BuildRecursive creates a complete binary tree with the given depth; see
// Build.
func BuildRecursive[L constraints.Integer](depth int) *Node[L] {
	counter := L(1)
	return buildRecursive(depth, &counter)
}

func buildRecursive[L constraints.Integer](depth int, counter *L) *Node[L] {
	if depth <= 0 {
		return nil
	}
	label := *counter
	*counter++
	left := buildRecursive(depth-1, counter)
	right := buildRecursive(depth-1, counter)
	return NewNode(label, left, right)
}

// InvertRecursive returns the mirror image of the given tree; see Invert.
func InvertRecursive[T any](n *Node[T]) *Node[T] {
	if n == nil {
		return nil
	}
	return NewNode(n.value, InvertRecursive(n.right), InvertRecursive(n.left))
}

// WalkRecursive calls visit for every value of the tree in the given order.
func WalkRecursive[T any](n *Node[T], order Order, visit func(T)) {
	if n == nil {
		return
	}
	if order == PreOrder {
		visit(n.value)
	}
	WalkRecursive(n.left, order, visit)
	if order == InOrder {
		visit(n.value)
	}
	WalkRecursive(n.right, order, visit)
	if order == PostOrder {
		visit(n.value)
	}
}

// SidewaysRecursive calls visit for every value of the tree and its depth in
// the order of Sideways.
func SidewaysRecursive[T any](n *Node[T], depth int, visit func(int, T)) {
	if n == nil {
		return
	}
	SidewaysRecursive(n.right, depth+1, visit)
	visit(depth, n.value)
	SidewaysRecursive(n.left, depth+1, visit)
}
