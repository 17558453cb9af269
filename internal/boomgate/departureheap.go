package boomgate

import "container/heap"

// departureHeap is a min-heap of scheduled departure times. Per spec §9's
// "queue of vehicles vs queue of arrival times" note, the boom gate never
// keeps a per-customer record — only the departure time survives once a
// customer enters service.
type departureHeap []float64

func (h departureHeap) Len() int            { return len(h) }
func (h departureHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h departureHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *departureHeap) Push(x any)         { *h = append(*h, x.(float64)) }
func (h *departureHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

func newDepartureHeap() *departureHeap {
	h := &departureHeap{}
	heap.Init(h)
	return h
}

func (h *departureHeap) push(t float64) { heap.Push(h, t) }
func (h *departureHeap) peek() float64  { return (*h)[0] }
func (h *departureHeap) pop() float64   { return heap.Pop(h).(float64) }
