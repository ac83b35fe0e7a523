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
	"io"
	"iter"
	"strings"

	"github.com/yunusp/inv-bin-tree/internal/callstack"
)

// Indent is written once per level in front of every line by Fprint.
const Indent = "  "

// level is a subtree together with its distance from the root.
type level[T any] struct {
	node  *Node[T]
	depth int
}

// line is a value to be printed at the given depth.
type line[T any] struct {
	value T
	depth int
}

// Sideways returns the values of the tree paired with their depth (the root
// has depth 0) in the order of a drawing of the tree turned on its side: the
// right subtree, then the value, then the left subtree.
func Sideways[T any](root *Node[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		sideways(root, yield)
	}
}

func sideways[T any](root *Node[T], yield func(int, T) bool) *callstack.Machine[level[T], line[T], struct{}] {
	m := callstack.New("sideways",
		func(m *callstack.Machine[level[T], line[T], struct{}], l level[T]) {
			if l.node == nil {
				return
			}
			m.Expand(level[T]{l.node.left, l.depth + 1})
			m.Combine(line[T]{l.node.value, l.depth})
			m.Expand(level[T]{l.node.right, l.depth + 1})
		},
		func(_ *callstack.Machine[level[T], line[T], struct{}], l line[T]) bool {
			return yield(l.depth, l.value)
		},
	)
	m.Run(level[T]{node: root})
	return m
}

// Fprint writes the sideways drawing of the tree to w, one value per line,
// indented by Indent once per level.
func Fprint[T any](w io.Writer, root *Node[T]) (err error) {
	for depth, value := range Sideways(root) {
		if _, err = fmt.Fprintf(w, "%s%v\n", strings.Repeat(Indent, depth), value); err != nil {
			return
		}
	}
	return
}
