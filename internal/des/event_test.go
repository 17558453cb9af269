package des

import "testing"

func TestNewQueueEmpty(t *testing.T) {
	q := NewQueue()
	if q.Size() != 0 {
		t.Errorf("expected empty queue, got size %d", q.Size())
	}
	if q.PeekMin() != nil {
		t.Error("PeekMin on empty queue should return nil")
	}
	if q.PopMin() != nil {
		t.Error("PopMin on empty queue should return nil")
	}
}

func TestQueueOrdersByTime(t *testing.T) {
	q := NewQueue()
	q.Push(2.0, Kind(1), "b")
	q.Push(0.5, Kind(1), "a")
	q.Push(5.0, Kind(1), "c")

	if q.Size() != 3 {
		t.Fatalf("expected size 3, got %d", q.Size())
	}

	first := q.PopMin()
	if first.Payload != "a" {
		t.Errorf("expected first payload 'a', got %v", first.Payload)
	}
	second := q.PopMin()
	if second.Payload != "b" {
		t.Errorf("expected second payload 'b', got %v", second.Payload)
	}
	third := q.PopMin()
	if third.Payload != "c" {
		t.Errorf("expected third payload 'c', got %v", third.Payload)
	}
	if q.Size() != 0 {
		t.Error("queue should be empty after draining")
	}
}

func TestQueueTiesBreakByInsertionOrder(t *testing.T) {
	q := NewQueue()
	q.Push(1.0, Kind(1), "first")
	q.Push(1.0, Kind(1), "second")
	q.Push(1.0, Kind(1), "third")

	if got := q.PopMin().Payload; got != "first" {
		t.Errorf("expected 'first', got %v", got)
	}
	if got := q.PopMin().Payload; got != "second" {
		t.Errorf("expected 'second', got %v", got)
	}
	if got := q.PopMin().Payload; got != "third" {
		t.Errorf("expected 'third', got %v", got)
	}
}

func TestPeekMinDoesNotRemove(t *testing.T) {
	q := NewQueue()
	q.Push(3.0, Kind(1), "x")

	peeked := q.PeekMin()
	if peeked.Payload != "x" {
		t.Errorf("expected peek 'x', got %v", peeked.Payload)
	}
	if q.Size() != 1 {
		t.Error("peek should not remove the event")
	}
	popped := q.PopMin()
	if popped.Payload != "x" {
		t.Errorf("expected pop 'x', got %v", popped.Payload)
	}
	if q.Size() != 0 {
		t.Error("queue should be empty after pop")
	}
}
