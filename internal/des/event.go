// Package des is the discrete-event simulation kernel shared by every
// engine: a min-priority event queue keyed by simulation time, plus the run
// loop that drains it.
package des

import "container/heap"

// Kind tags an Event's payload. Each engine defines its own Kind constants
// and payload struct; the kernel never inspects Payload itself.
type Kind int

// Event is a single scheduled occurrence. Payload is always type-asserted
// by the engine that scheduled it — never a bag of untyped fields — per the
// tagged-union design note in spec §9.
type Event struct {
	Time    float64
	Kind    Kind
	Seq     uint64
	Payload any
}

// queue is a binary min-heap ordered by (Time, Seq). Seq is assigned by
// Queue.Push at insertion time and breaks ties in FIFO order, which is the
// tie-break rule spec §4.2 requires: two events scheduled for the same
// instant run in the order they were scheduled.
type queue []*Event

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].Time != q[j].Time {
		return q[i].Time < q[j].Time
	}
	return q[i].Seq < q[j].Seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*Event)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Queue is the event kernel's priority queue. It is not safe for concurrent
// use: spec §5 makes the engine single-threaded and cooperative within a
// replication, so there is nothing to protect against.
type Queue struct {
	items   queue
	nextSeq uint64
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Push schedules an event, assigning it the next insertion sequence number.
func (q *Queue) Push(time float64, kind Kind, payload any) *Event {
	e := &Event{Time: time, Kind: kind, Seq: q.nextSeq, Payload: payload}
	q.nextSeq++
	heap.Push(&q.items, e)
	return e
}

// PopMin removes and returns the earliest event, or nil if the queue is empty.
func (q *Queue) PopMin() *Event {
	if q.items.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.items).(*Event)
}

// PeekMin returns the earliest event without removing it, or nil if empty.
func (q *Queue) PeekMin() *Event {
	if q.items.Len() == 0 {
		return nil
	}
	return q.items[0]
}

// Size returns the number of pending events.
func (q *Queue) Size() int { return q.items.Len() }
