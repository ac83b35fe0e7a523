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

package callstack

import "fmt"

// Kind tags a work item.
type Kind uint8

const (
	// Expand simulates descending into a sub-call.
	Expand Kind = iota
	// Combine simulates the code that runs after the sub-calls return.
	Combine
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case Expand:
		return "expand"
	case Combine:
		return "combine"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Item represents a single pending unit of simulated call-stack work.  Only
// the payload matching Kind is meaningful; D is the descend payload and C is
// the combine payload.
type Item[D, C any] struct {
	Kind Kind
	Arg  D
	Val  C
}

// NewExpand creates a new expand item with the given descend payload.
func NewExpand[D, C any](arg D) Item[D, C] {
	return Item[D, C]{
		Kind: Expand,
		Arg:  arg,
	}
}

// NewCombine creates a new combine item with the given combine payload.
func NewCombine[D, C any](val C) Item[D, C] {
	return Item[D, C]{
		Kind: Combine,
		Val:  val,
	}
}
