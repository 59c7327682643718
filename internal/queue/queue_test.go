package queue

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool    { return a < b }
func intGreater(a, b int) bool { return a > b }

func drain(pq *PriorityQueue[int]) []int {
	var out []int
	for pq.Len() > 0 {
		v, ok := pq.PopItem()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func TestPriorityQueue(t *testing.T) {
	input := []int{5, 3, 9, 1, 7, 3, 8, 2}

	t.Run("MinHeap", func(t *testing.T) {
		pq := New(intLess, 4)
		for _, v := range input {
			pq.PushItem(v)
		}
		top, ok := pq.TopItem()
		require.True(t, ok)
		assert.Equal(t, 1, top)

		want := append([]int(nil), input...)
		sort.Ints(want)
		assert.Equal(t, want, drain(pq))
	})

	t.Run("MaxHeap", func(t *testing.T) {
		pq := New(intGreater, 4)
		for _, v := range input {
			pq.PushItem(v)
		}
		want := append([]int(nil), input...)
		sort.Sort(sort.Reverse(sort.IntSlice(want)))
		assert.Equal(t, want, drain(pq))
	})

	t.Run("Empty", func(t *testing.T) {
		pq := New(intLess, 0)
		_, ok := pq.TopItem()
		assert.False(t, ok)
		_, ok = pq.PopItem()
		assert.False(t, ok)
	})

	t.Run("Reset", func(t *testing.T) {
		pq := New(intLess, 0)
		pq.PushItem(1)
		pq.PushItem(2)
		pq.Reset()
		assert.Equal(t, 0, pq.Len())
		pq.PushItem(3)
		top, _ := pq.TopItem()
		assert.Equal(t, 3, top)
	})
}

func TestPushItemBounded(t *testing.T) {
	// A max-heap bounded to k keeps the k smallest values.
	pq := New(intGreater, 3)
	for _, v := range []int{5, 3, 9, 1, 7, 3, 8, 2} {
		pq.PushItemBounded(v, 3)
	}
	assert.Equal(t, 3, pq.Len())
	assert.Equal(t, []int{3, 2, 1}, drain(pq))
}
