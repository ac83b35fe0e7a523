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

// Stack is a heap-allocated LIFO sequence.  The zero value is an empty stack
// ready to use.
type Stack[E any] []E

// push appends the given element to the top of the stack.
func (s *Stack[E]) push(e E) {
	*s = append(*s, e)
}

// pop removes and returns the top element of the stack.  ok is false if the
// stack is empty.
func (s *Stack[E]) pop() (out E, ok bool) {
	index := len(*s) - 1
	if index < 0 {
		return
	}
	out = (*s)[index]
	var zero E
	(*s)[index] = zero
	*s = (*s)[:index]
	return out, true
}

// Len returns the number of elements currently on the stack.
func (s Stack[E]) Len() int {
	return len(s)
}

// truncate truncates this instance at index so that it contains only the
// first index elements. index must be less than or equal to length.
func (s *Stack[E]) truncate(index int) {
	var toClear Stack[E]
	*s, toClear = (*s)[:index], (*s)[index:]
	var zero E
	for i := 0; i < len(toClear); i++ {
		toClear[i] = zero
	}
}
