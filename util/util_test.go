package util

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := &Stack[int]{}
	_, ok := s.Peek()
	assert.False(t, ok)

	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{3, 2, 1}, slices.Collect(s.FromTop()))

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, top)
	top, _ = s.Peek()
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, s.Len())
}

func TestSetFromSeq(t *testing.T) {
	lengths := SetFromSeq(MapIter(slices.Values([]string{"a", "bb", "cc"}), func(s string) int { return len(s) }), 3)
	assert.Equal(t, 2, lengths.Size())
	assert.True(t, lengths.Contains(1))
	assert.True(t, lengths.Contains(2))
}
