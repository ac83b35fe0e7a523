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

// Package callstack implements an interpreter that runs recursive functions
// without using the goroutine stack.  Every pending call is an Item on an
// explicit work stack, and intermediate results are threaded through a second
// stack of partial results.
//
// A recursive function
//
//	func f(x) R {
//		if base(x) {
//			return zero
//		}
//		a := f(left(x))
//		b := f(right(x))
//		return combine(x, a, b)
//	}
//
// becomes an ExpandFunc that either pushes the base-case result or pushes a
// Combine item followed by the Expand items of its sub-calls, and a
// CombineFunc that pops the sub-call results and pushes the combined one.
// Since the work stack is LIFO, items must be pushed in reverse of the order
// they are meant to execute: a Combine item pushed before the children's
// Expand items runs after both of them have finished.
package callstack

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
)

// ExpandFunc processes an expand item.  It either pushes the base-case result
// with Push, or pushes the Combine and Expand items of the current call in
// reverse execution order.
type ExpandFunc[D, C, R any] func(m *Machine[D, C, R], arg D)

// CombineFunc processes a combine item.  It pops the results of the finished
// sub-calls with Pop and pushes the assembled result, or performs a side
// effect instead.  When this function returns false, the machine stops and
// Run immediately returns.
type CombineFunc[D, C, R any] func(m *Machine[D, C, R], val C) bool

// Machine is an explicit-stack interpreter.  D is the descend payload, C is
// the combine payload and R is the type of the partial results.
//
// A Machine is not safe for concurrent use; it is meant to live for the
// duration of a single top-level call.
type Machine[D, C, R any] struct {
	name    string
	expand  ExpandFunc[D, C, R]
	combine CombineFunc[D, C, R]
	work    Stack[Item[D, C]]
	results Stack[R]
	steps   int
	maxLen  int
}

// New creates a new machine with the given arguments.  name identifies the
// algorithm in diagnostics.
func New[D, C, R any](name string, expand ExpandFunc[D, C, R], combine CombineFunc[D, C, R]) *Machine[D, C, R] {
	if expand == nil || combine == nil {
		panic("nil handler")
	}
	return &Machine[D, C, R]{
		name:    name,
		expand:  expand,
		combine: combine,
	}
}

// Name returns the name of the algorithm the machine runs.
func (m *Machine[D, C, R]) Name() string {
	return m.name
}

// Expand pushes an expand item with the given descend payload.
func (m *Machine[D, C, R]) Expand(arg D) {
	m.work.push(NewExpand[D, C](arg))
}

// Combine pushes a combine item with the given combine payload.
func (m *Machine[D, C, R]) Combine(val C) {
	m.work.push(NewCombine[D](val))
}

// Push pushes a partial result.
func (m *Machine[D, C, R]) Push(result R) {
	m.results.push(result)
}

// Pop pops a partial result.  step names the step that pops, and is reported
// if the result stack is empty; an empty result stack means the push and pop
// discipline of the algorithm is broken, so Pop panics rather than making up
// a value.
func (m *Machine[D, C, R]) Pop(step string) R {
	out, ok := m.results.pop()
	if !ok {
		panic(errors.AssertionFailedf("%s: %s popped an empty result stack after %d steps", m.name, step, m.steps))
	}
	return out
}

// Run seeds the work stack with an expand item for the given payload and
// processes items until the work stack is empty.  It returns false if a
// CombineFunc stopped the machine early.
func (m *Machine[D, C, R]) Run(seed D) bool {
	m.work.truncate(0)
	m.results.truncate(0)
	m.steps, m.maxLen = 0, 0

	m.Expand(seed)
	m.observe()

	for {
		item, ok := m.work.pop()
		if !ok {
			break
		}
		m.steps++
		if glog.V(3) {
			glog.Infof("%s: step %d %s (work: %d results: %d)", m.name, m.steps, item.Kind, m.work.Len(), m.results.Len())
		}

		switch item.Kind {
		case Expand:
			m.expand(m, item.Arg)
			m.observe()
		case Combine:
			if !m.combine(m, item.Val) {
				glog.V(2).Infof("%s: stopped after %d steps", m.name, m.steps)
				m.work.truncate(0)
				return false
			}
		default:
			panic(errors.AssertionFailedf("%s: unknown work item %s", m.name, item.Kind))
		}
	}

	glog.V(1).Infof("%s: finished after %d steps, max work stack length %d", m.name, m.steps, m.maxLen)
	return true
}

// observe records the high-water mark of the work stack.
func (m *Machine[D, C, R]) observe() {
	if m.maxLen < m.work.Len() {
		m.maxLen = m.work.Len()
	}
}

// Result returns the final result of the last Run.  The result stack must
// hold exactly one result.
func (m *Machine[D, C, R]) Result() R {
	if m.results.Len() != 1 {
		panic(errors.AssertionFailedf("%s: expected a single result, got %d", m.name, m.results.Len()))
	}
	return m.Pop("result")
}

// Steps returns the number of work items processed by the last Run.
func (m *Machine[D, C, R]) Steps() int {
	return m.steps
}

// MaxLen returns the maximum length the work stack reached during the last
// Run.
func (m *Machine[D, C, R]) MaxLen() int {
	return m.maxLen
}
