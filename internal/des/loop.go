package des

// Handler processes one event at the clock's current time. It may schedule
// further events on the same Queue.
type Handler func(e *Event)

// CancelFunc reports whether the run loop should stop early, checked
// between every event per spec §5's cooperative cancellation requirement.
type CancelFunc func() bool

// Run drains q, advancing clock to each event's time and dispatching to
// handle, until either the next event's time exceeds deadline, the queue is
// empty, or cancel reports true. It returns true if the run completed
// normally (reached deadline or drained the queue) and false if it was
// cancelled.
//
// Engine-specific cleanup (spec §4.2's "cleanup pass" over remaining
// scheduled departures, clamped to the deadline) happens after Run returns;
// it is not part of the generic kernel because what "remaining departures"
// means is engine state the kernel never sees.
func Run(q *Queue, clock *Clock, deadline float64, handle Handler, cancel CancelFunc) bool {
	for {
		if cancel != nil && cancel() {
			return false
		}
		next := q.PeekMin()
		if next == nil {
			return true
		}
		if next.Time > deadline {
			return true
		}
		q.PopMin()
		clock.Advance(next.Time)
		handle(next)
	}
}
