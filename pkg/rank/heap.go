package rank

import (
	"container/heap"
	"errors"
)

// ErrEmptyStructure is returned when reading from an empty heap.
var ErrEmptyStructure = errors.New("rank: empty structure")

// MaxHeap keeps candidates ordered so the best one by its comparator is always on top.
// With ByWeight that is the heaviest word, ties going to the lexicographically smallest.
type MaxHeap struct {
	items candidateHeap
}

// NewMaxHeap builds a heap from candidates in O(n). The slice is copied.
func NewMaxHeap(cmp Comparator[Candidate], candidates ...Candidate) *MaxHeap {
	if cmp == nil {
		cmp = ByWeight
	}
	items := make([]Candidate, len(candidates))
	copy(items, candidates)
	h := &MaxHeap{items: candidateHeap{data: items, cmp: cmp}}
	heap.Init(&h.items)
	return h
}

// Push adds a candidate.
func (h *MaxHeap) Push(c Candidate) {
	heap.Push(&h.items, c)
}

// PeekMax returns the top candidate without removing it.
func (h *MaxHeap) PeekMax() (Candidate, error) {
	if h.IsEmpty() {
		return Candidate{}, ErrEmptyStructure
	}
	return h.items.data[0], nil
}

// ExtractMax removes and returns the top candidate.
func (h *MaxHeap) ExtractMax() (Candidate, error) {
	if h.IsEmpty() {
		return Candidate{}, ErrEmptyStructure
	}
	return heap.Pop(&h.items).(Candidate), nil
}

// TopK returns the best k candidates in order without modifying the heap.
func (h *MaxHeap) TopK(k int) []Candidate {
	clone := &MaxHeap{items: candidateHeap{
		data: append([]Candidate(nil), h.items.data...),
		cmp:  h.items.cmp,
	}}
	return clone.ExtractTopK(k)
}

// ExtractTopK removes and returns up to k candidates in order.
// Fewer are returned when the heap runs out; it never fails.
func (h *MaxHeap) ExtractTopK(k int) []Candidate {
	n := min(k, h.Len())
	if n <= 0 {
		return []Candidate{}
	}
	result := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, heap.Pop(&h.items).(Candidate))
	}
	return result
}

// Len returns the number of candidates in the heap.
func (h *MaxHeap) Len() int { return len(h.items.data) }

// IsEmpty reports whether the heap has no candidates.
func (h *MaxHeap) IsEmpty() bool { return len(h.items.data) == 0 }

// candidateHeap adapts a comparator to container/heap. Less is "sorts first",
// which makes container/heap's min-heap behave as a max-heap by rank.
type candidateHeap struct {
	data []Candidate
	cmp  Comparator[Candidate]
}

func (c candidateHeap) Len() int           { return len(c.data) }
func (c candidateHeap) Less(i, j int) bool { return c.cmp(c.data[i], c.data[j]) < 0 }
func (c candidateHeap) Swap(i, j int)      { c.data[i], c.data[j] = c.data[j], c.data[i] }

func (c *candidateHeap) Push(x any) {
	c.data = append(c.data, x.(Candidate))
}

func (c *candidateHeap) Pop() any {
	old := c.data
	n := len(old)
	item := old[n-1]
	c.data = old[:n-1]
	return item
}
