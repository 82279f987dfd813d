package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnboundedFIFO(t *testing.T) {
	q := New[int]()
	for i := 1; i <= 3; i++ {
		_, evicted := q.Enqueue(i)
		assert.False(t, evicted)
	}
	assert.Equal(t, 3, q.Len())

	v, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{2, 3}, q.Drain())
	assert.Equal(t, 0, q.Len())

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestBoundedEvictsOldest(t *testing.T) {
	q := NewBounded[string](2)
	q.Enqueue("a")
	q.Enqueue("b")

	old, evicted := q.Enqueue("c")
	assert.True(t, evicted)
	assert.Equal(t, "a", old)
	assert.Equal(t, []string{"b", "c"}, q.Drain())

	q.Enqueue("d")
	q.Reset()
	assert.Equal(t, 0, q.Len())
}
