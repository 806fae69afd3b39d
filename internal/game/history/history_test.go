package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := New[int](3)

	_, ok := s.Pop()
	assert.False(t, ok, "pop on empty stack")

	s.Push(1)
	s.Push(2)
	require.Equal(t, 2, s.Len())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, top)

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, s.Len())
}

func TestStackDropsOldest(t *testing.T) {
	s := New[int](DefaultDepth)
	for i := 1; i <= 25; i++ {
		s.Push(i)
	}
	require.Equal(t, DefaultDepth, s.Len())

	var popped []int
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		popped = append(popped, v)
	}
	require.Len(t, popped, DefaultDepth)
	assert.Equal(t, 25, popped[0])
	assert.Equal(t, 6, popped[len(popped)-1], "entries 1..5 should have been evicted")
}

func TestStackDefaultsAndClear(t *testing.T) {
	s := New[string](0)
	assert.Equal(t, DefaultDepth, s.Depth())

	s.Push("a")
	s.Push("b")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Peek()
	assert.False(t, ok)
}
