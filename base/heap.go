package base

import (
	"container/heap"
	"sort"
)

// TopKFilter maintains the K highest-scored ids seen so far. The heap keeps
// time and memory bounded during top-N searching. Ordering is deterministic:
// on equal scores the lower id wins.
type TopKFilter struct {
	ids    []int
	scores []float64
	k      int
}

// NewTopKFilter creates a TopKFilter.
func NewTopKFilter(k int) *TopKFilter {
	filter := new(TopKFilter)
	filter.ids = make([]int, 0, k+1)
	filter.scores = make([]float64, 0, k+1)
	filter.k = k
	return filter
}

// Len returns the number of kept elements. It is a method of heap.Interface.
func (filter *TopKFilter) Len() int {
	return len(filter.ids)
}

// Less puts the worst element at the root: the lowest score, or on equal
// scores the highest id. It is a method of heap.Interface.
func (filter *TopKFilter) Less(i, j int) bool {
	if filter.scores[i] != filter.scores[j] {
		return filter.scores[i] < filter.scores[j]
	}
	return filter.ids[i] > filter.ids[j]
}

// Swap the i-th element with the j-th element. It is a method of heap.Interface.
func (filter *TopKFilter) Swap(i, j int) {
	filter.ids[i], filter.ids[j] = filter.ids[j], filter.ids[i]
	filter.scores[i], filter.scores[j] = filter.scores[j], filter.scores[i]
}

type _TopKItem struct {
	id    int
	score float64
}

// Push an element into the heap. It is a method of heap.Interface.
func (filter *TopKFilter) Push(x interface{}) {
	item := x.(_TopKItem)
	filter.ids = append(filter.ids, item.id)
	filter.scores = append(filter.scores, item.score)
}

// Pop the worst element from the heap. It is a method of heap.Interface.
func (filter *TopKFilter) Pop() interface{} {
	n := filter.Len()
	item := _TopKItem{filter.ids[n-1], filter.scores[n-1]}
	filter.ids = filter.ids[:n-1]
	filter.scores = filter.scores[:n-1]
	return item
}

// Add an element. Elements beyond the K best are discarded.
func (filter *TopKFilter) Add(id int, score float64) {
	heap.Push(filter, _TopKItem{id, score})
	if filter.Len() > filter.k {
		heap.Pop(filter)
	}
}

// Results returns the kept elements, best first: score descending, ascending
// id on ties.
func (filter *TopKFilter) Results() ([]int, []float64) {
	order := make([]int, filter.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if filter.scores[a] != filter.scores[b] {
			return filter.scores[a] > filter.scores[b]
		}
		return filter.ids[a] < filter.ids[b]
	})
	ids := make([]int, len(order))
	scores := make([]float64, len(order))
	for i, o := range order {
		ids[i] = filter.ids[o]
		scores[i] = filter.scores[o]
	}
	return ids, scores
}
