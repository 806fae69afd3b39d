// Package history keeps a bounded stack of prior game states for undo.
package history

// DefaultDepth is the number of snapshots kept when no depth is configured.
const DefaultDepth = 20

// Stack is a bounded LIFO of snapshots. Once full, pushing drops the oldest
// entry. Callers must push values that are not mutated afterwards.
type Stack[T any] struct {
	depth   int
	entries []T
}

// New creates a stack holding at most depth snapshots. A non-positive depth
// falls back to DefaultDepth.
func New[T any](depth int) *Stack[T] {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack[T]{
		depth:   depth,
		entries: make([]T, 0, depth),
	}
}

// Push records a snapshot, evicting the oldest one if the stack is full.
func (s *Stack[T]) Push(snapshot T) {
	if len(s.entries) == s.depth {
		var zero T
		s.entries[0] = zero
		s.entries = append(s.entries[:0], s.entries[1:]...)
	}
	s.entries = append(s.entries, snapshot)
}

// Pop removes and returns the most recent snapshot. It reports false when
// the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.entries) == 0 {
		return zero, false
	}
	last := len(s.entries) - 1
	snapshot := s.entries[last]
	s.entries[last] = zero
	s.entries = s.entries[:last]
	return snapshot, true
}

// Peek returns the most recent snapshot without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.entries) == 0 {
		var zero T
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of stored snapshots.
func (s *Stack[T]) Len() int {
	return len(s.entries)
}

// Depth returns the maximum number of snapshots kept.
func (s *Stack[T]) Depth() int {
	return s.depth
}

// Clear drops every snapshot.
func (s *Stack[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}
