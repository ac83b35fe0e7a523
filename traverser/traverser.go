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

// Package traverser provides primitives for rendering labeled binary trees as
// lines of text.  In addition to the pre-, in- and post-order walks, it
// supports a sideways drawing where each value is indented by its depth.
// The same renderings are served over gRPC by the Traverser service.
package traverser

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/yunusp/inv-bin-tree/internal/btree"
)

// Order selects the rendering of a tree.
type Order int32

const (
	PREORDER Order = iota
	INORDER
	POSTORDER
	SIDEWAYS
)

var orderNames = map[Order]string{
	PREORDER:  "pre",
	INORDER:   "in",
	POSTORDER: "post",
	SIDEWAYS:  "print",
}

// String implements the fmt.Stringer interface.
func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return "order(" + strconv.Itoa(int(o)) + ")"
}

// ParseOrder returns the order with the given name.  Both the short names
// (pre, in, post, print) and the long ones (preorder, inorder, postorder,
// sideways) are accepted.
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(name) {
	case "pre", "preorder":
		return PREORDER, nil
	case "in", "inorder":
		return INORDER, nil
	case "post", "postorder":
		return POSTORDER, nil
	case "print", "sideways":
		return SIDEWAYS, nil
	default:
		return 0, errors.WithHint(errors.Newf("unknown order %q", name), "valid orders are pre, in, post and print")
	}
}

// Traverser renders a tree as lines of text.
// All implementations must embed TraverserBase for forward compatibility.
type Traverser interface {
	// Lines returns the lines for the given tree.  The sequence is lazy and can
	// be ranged over more than once.
	Lines(root *btree.Node[int64]) iter.Seq[string]

	// Order returns the rendering the traverser produces.
	Order() Order
}

// TraverserBase must be embedded to have forward compatible implementations.
type TraverserBase struct {
}

func (TraverserBase) Lines(root *btree.Node[int64]) iter.Seq[string] {
	return func(func(string) bool) {}
}
func (TraverserBase) Order() (_ Order) {
	return
}

// New creates a new traverser for the given order.
func New(order Order) Traverser {
	switch order {
	case PREORDER:
		return NewWalkTraverser(btree.PreOrder)
	case INORDER:
		return NewWalkTraverser(btree.InOrder)
	case POSTORDER:
		return NewWalkTraverser(btree.PostOrder)
	case SIDEWAYS:
		return NewSidewaysTraverser()
	default:
		panic("invalid order")
	}
}

// WalkTraverser renders one value per line in pre-, in- or post-order.
type WalkTraverser struct {
	TraverserBase
	order btree.Order
}

// NewWalkTraverser creates a new walk traverser with the given order.
func NewWalkTraverser(order btree.Order) *WalkTraverser {
	return &WalkTraverser{
		order: order,
	}
}

func (t *WalkTraverser) Lines(root *btree.Node[int64]) iter.Seq[string] {
	values := btree.Walk(root, t.order)
	return func(yield func(string) bool) {
		for value := range values {
			if !yield(strconv.FormatInt(value, 10)) {
				return
			}
		}
	}
}

func (t *WalkTraverser) Order() Order {
	switch t.order {
	case btree.PreOrder:
		return PREORDER
	case btree.InOrder:
		return INORDER
	default:
		return POSTORDER
	}
}

// SidewaysTraverser renders the tree turned on its side, with the right
// subtree on top; every line is indented by btree.Indent once per level.
type SidewaysTraverser struct {
	TraverserBase
}

// NewSidewaysTraverser creates a new sideways traverser.
func NewSidewaysTraverser() *SidewaysTraverser {
	return &SidewaysTraverser{}
}

func (t *SidewaysTraverser) Lines(root *btree.Node[int64]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for depth, value := range btree.Sideways(root) {
			if !yield(strings.Repeat(btree.Indent, depth) + strconv.FormatInt(value, 10)) {
				return
			}
		}
	}
}

func (t *SidewaysTraverser) Order() Order {
	return SIDEWAYS
}

// Fprint writes every line the traverser renders for the given tree to w,
// each followed by a newline.
func Fprint(w io.Writer, traverser Traverser, root *btree.Node[int64]) error {
	bw := bufio.NewWriter(w)
	for line := range traverser.Lines(root) {
		if _, err := bw.WriteString(line); err != nil {
			return errors.Wrapf(err, "writing %s", traverser.Order())
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrapf(err, "writing %s", traverser.Order())
		}
	}
	return errors.Wrap(bw.Flush(), "flushing output")
}
