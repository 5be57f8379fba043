package exec

import (
	"github.com/wippyai/wasm-core/values"
)

// Stack is the operand stack. It does no arity or type checking of its
// own; feeding it anything but a validated instruction sequence is a
// caller bug, and underflow panics.
type Stack struct {
	vals []values.Val
}

// NewStack creates an empty operand stack.
func NewStack() *Stack {
	return &Stack{vals: make([]values.Val, 0, 64)}
}

// Push places v on top.
func (s *Stack) Push(v values.Val) {
	s.vals = append(s.vals, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() values.Val {
	v := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return v
}

// PopN removes the top n values and returns them bottom first, the order
// they were pushed. The returned slice is the caller's to keep.
func (s *Stack) PopN(n int) []values.Val {
	out := make([]values.Val, n)
	copy(out, s.vals[len(s.vals)-n:])
	s.vals = s.vals[:len(s.vals)-n]
	return out
}

// Top returns the top value without removing it.
func (s *Stack) Top() values.Val {
	return s.vals[len(s.vals)-1]
}

// SetTop replaces the top value, for instructions that rewrite their
// operand in place.
func (s *Stack) SetTop(v values.Val) {
	s.vals[len(s.vals)-1] = v
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.vals)
}
