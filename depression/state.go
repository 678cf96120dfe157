// SPDX-License-Identifier: MIT

package depression

import "container/heap"

// FillState bundles the per-cell companions of one RemovePits call. It is
// allocated once per call and discarded on return.
type FillState struct {
	Flood []FloodState
	Flow  []FlowDirection

	// visited marks cells of the depression extent currently being filled;
	// it is reset after every extent walk.
	visited []bool
	touched []int
	stack   []int

	queue cellPQ
}

// newFillState allocates state for n cells.
func newFillState(n int) *FillState {
	st := &FillState{
		Flood:   make([]FloodState, n),
		Flow:    make([]FlowDirection, n),
		visited: make([]bool, n),
		queue:   make(cellPQ, 0, n/4+1),
	}
	for i := range st.Flow {
		st.Flow[i] = NoFlow
	}
	heap.Init(&st.queue)
	return st
}

// push queues id at elevation z.
func (st *FillState) push(id int, z float64) {
	heap.Push(&st.queue, cellItem{id: id, z: z})
}

// pop removes the lowest entry.
func (st *FillState) pop() cellItem {
	return heap.Pop(&st.queue).(cellItem)
}

// resetVisited clears the extent markers set since the last reset.
func (st *FillState) resetVisited() {
	for _, id := range st.touched {
		st.visited[id] = false
	}
	st.touched = st.touched[:0]
}

// cellItem is a queued cell with the elevation it was pushed at.
type cellItem struct {
	id int
	z  float64
}

// cellPQ is a min-heap ordered by elevation, then by ascending cell id, so
// equal-elevation cells pop in a deterministic order.
type cellPQ []cellItem

// Len returns the number of items in the heap.
func (pq cellPQ) Len() int { return len(pq) }

// Less orders by z, breaking ties by id.
func (pq cellPQ) Less(i, j int) bool {
	if pq[i].z != pq[j].z {
		return pq[i].z < pq[j].z
	}
	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a cellItem.
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(cellItem)) }

// Pop removes and returns the last element.
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
