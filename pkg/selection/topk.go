// Package selection provides a bounded top-k retainer used to keep the k
// best-scored individuals seen during a generation.
package selection

import (
	"container/heap"

	"github.com/bakanatorz/genetics/pkg/core"
)

// TopK retains at most capacity items, always the best seen so far under
// the configured ordering. Which item survives among exact rank ties is
// insertion-order dependent, and therefore thread-schedule dependent when
// fed from concurrent workers through a merge.
//
// TopK is not safe for concurrent use; callers serialize access.
type TopK struct {
	h        rankHeap
	capacity int
}

// New returns an empty selector retaining at most capacity items. Capacity
// must be positive.
func New(ordering core.Ordering, capacity int) *TopK {
	return &TopK{
		h: rankHeap{
			ordering: ordering,
			items:    make([]core.ScoredIndividual, 0, capacity),
		},
		capacity: capacity,
	}
}

// Insert offers an item to the selector. Below capacity the item is always
// retained; at capacity it replaces the currently retained worst item iff
// it ranks better, and is discarded otherwise.
func (t *TopK) Insert(item core.ScoredIndividual) {
	if len(t.h.items) < t.capacity {
		heap.Push(&t.h, item)
		return
	}
	// items[0] is the retained worst.
	if t.h.ordering.Compare(item.Score, t.h.items[0].Score) > 0 {
		t.h.items[0] = item
		heap.Fix(&t.h, 0)
	}
}

// Pop removes and returns the best retained item. The second return value
// is false once the selector is empty. Repeated calls drain the selector
// in best-to-worst order.
func (t *TopK) Pop() (core.ScoredIndividual, bool) {
	if len(t.h.items) == 0 {
		return core.ScoredIndividual{}, false
	}
	best := 0
	for i := 1; i < len(t.h.items); i++ {
		if t.h.ordering.Compare(t.h.items[i].Score, t.h.items[best].Score) > 0 {
			best = i
		}
	}
	return heap.Remove(&t.h, best).(core.ScoredIndividual), true
}

// Len reports the number of currently retained items.
func (t *TopK) Len() int { return len(t.h.items) }

// Flush empties the selector. Capacity and backing storage are kept so the
// selector can be reused across generations without reallocation.
func (t *TopK) Flush() { t.h.items = t.h.items[:0] }

// rankHeap is a min-heap by rank: the retained worst item sits at the root
// so capacity eviction is a single root comparison.
type rankHeap struct {
	ordering core.Ordering
	items    []core.ScoredIndividual
}

func (h *rankHeap) Len() int { return len(h.items) }

func (h *rankHeap) Less(i, j int) bool {
	return h.ordering.Compare(h.items[i].Score, h.items[j].Score) < 0
}

func (h *rankHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *rankHeap) Push(x any) { h.items = append(h.items, x.(core.ScoredIndividual)) }

func (h *rankHeap) Pop() any {
	last := len(h.items) - 1
	item := h.items[last]
	h.items = h.items[:last]
	return item
}
