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

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// factorial computes n! on a machine; the single sub-call per invocation makes
// it the scalar counterpart of the tree algorithms.
func factorial(n uint64) uint64 {
	m := New("factorial",
		func(m *Machine[uint64, uint64, uint64], n uint64) {
			if n == 0 {
				m.Push(1)
				return
			}
			m.Combine(n)
			m.Expand(n - 1)
		},
		func(m *Machine[uint64, uint64, uint64], n uint64) bool {
			m.Push(m.Pop("multiply") * n)
			return true
		},
	)
	m.Run(n)
	return m.Result()
}

func factorialRecursive(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	return n * factorialRecursive(n-1)
}

func ExampleMachine() {
	for _, n := range []uint64{0, 1, 5, 20} {
		fmt.Printf("%d! = %d\n", n, factorial(n))
	}
	// Output:
	// 0! = 1
	// 1! = 1
	// 5! = 120
	// 20! = 2432902008176640000
}

func TestFactorial(t *testing.T) {
	for n := uint64(0); n <= 20; n++ {
		if got, want := factorial(n), factorialRecursive(n); got != want {
			t.Fatalf("mismatch for %d:\n got: %v\nwant: %v", n, got, want)
		}
	}
}

// countdown emits n, n-1, ..., 1 in that order; every call pushes its own
// combine item above the sub-call so it runs first.
func countdown(n int, emit func(int) bool) (*Machine[int, int, struct{}], bool) {
	m := New("countdown",
		func(m *Machine[int, int, struct{}], n int) {
			if n == 0 {
				return
			}
			m.Expand(n - 1)
			m.Combine(n)
		},
		func(_ *Machine[int, int, struct{}], n int) bool {
			return emit(n)
		},
	)
	return m, m.Run(n)
}

func TestRunOrder(t *testing.T) {
	var got []int
	m, done := countdown(5, func(n int) bool {
		got = append(got, n)
		return true
	})
	require.True(t, done)
	require.Equal(t, []int{5, 4, 3, 2, 1}, got)
	// 5 expands, 5 combines, 1 base case
	require.Equal(t, 11, m.Steps())
	require.Equal(t, 2, m.MaxLen())
}

func TestRunStop(t *testing.T) {
	var got []int
	m, done := countdown(100, func(n int) bool {
		got = append(got, n)
		return len(got) < 3
	})
	require.False(t, done)
	require.Equal(t, []int{100, 99, 98}, got)
	require.Zero(t, m.work.Len())
}

func TestRunReuse(t *testing.T) {
	m := New("identity",
		func(m *Machine[int, struct{}, int], n int) {
			m.Push(n)
		},
		func(*Machine[int, struct{}, int], struct{}) bool {
			return true
		},
	)
	for n := 0; n < 3; n++ {
		require.True(t, m.Run(n))
		require.Equal(t, n, m.Result())
	}
}

func TestPopEmpty(t *testing.T) {
	m := New("broken",
		func(m *Machine[int, int, int], n int) {
			// the combine step expects a sub-call result that is never pushed
			m.Combine(n)
		},
		func(m *Machine[int, int, int], n int) bool {
			m.Push(m.Pop("combine") + n)
			return true
		},
	)
	require.PanicsWithError(t, "broken: combine popped an empty result stack after 2 steps", func() {
		m.Run(1)
	})
}

func TestResultCount(t *testing.T) {
	m := New("twice",
		func(m *Machine[int, int, int], n int) {
			m.Push(n)
			m.Push(n)
		},
		func(*Machine[int, int, int], int) bool {
			return true
		},
	)
	require.True(t, m.Run(1))
	require.Panics(t, func() { m.Result() })
}

func TestStack(t *testing.T) {
	var s Stack[int]
	if _, ok := s.pop(); ok {
		t.Fatal("pop on empty stack succeeded")
	}
	for i := 0; i < 10; i++ {
		s.push(i)
	}
	for i := 9; 0 <= i; i-- {
		if got, ok := s.pop(); !ok || got != i {
			t.Fatalf("mismatch:\n got: %v\nwant: %v", got, i)
		}
	}
	s.push(1)
	s.truncate(0)
	if s.Len() != 0 {
		t.Fatalf("truncate left %d elements", s.Len())
	}
}

func BenchmarkFactorial(b *testing.B) {
	for i := 0; i < b.N; i++ {
		factorial(20)
	}
}
