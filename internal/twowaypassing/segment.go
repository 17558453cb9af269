package twowaypassing

import "github.com/trafficsim/simcore/internal/accumulate"

// direction is a one-byte tag: dirA, dirB, or dirNone (the "no green
// assigned" state for a one-way segment).
type direction byte

const (
	dirNone direction = 0
	dirA    direction = 'A'
	dirB    direction = 'B'
)

type vehicle struct {
	id          int64
	dir         direction
	enqueueTime float64
	segIndex    int
}

// segmentState is the mutable per-segment state of spec §3's SegmentState.
// Two-way segments only ever use onSegmentCount; per the open-question
// resolution in spec §9, they have unlimited parallel capacity and never
// queue, so currentDirection and the entry queues stay unused. Queue-length
// accumulation (§4.5's "record (t, |Q_d|) for each one-way segment") lives
// here, per segment, rather than in an engine-wide counter, since distinct
// segments' queues are independent even within the same run.
type segmentState struct {
	id               string
	kind             SegmentKind
	lengthMeters     float64
	currentDirection direction
	onSegmentCount   int
	qA               []*vehicle
	qB               []*vehicle

	queueAccA *accumulate.StateTimeAccumulator
	queueAccB *accumulate.StateTimeAccumulator
	hourlyA   *accumulate.HourlyMaxima
	hourlyB   *accumulate.HourlyMaxima
}

func newSegmentState(s Segment, deadline float64) *segmentState {
	return &segmentState{
		id:           s.ID,
		kind:         s.Kind,
		lengthMeters: s.LengthMeters,
		queueAccA:    accumulate.NewStateTimeAccumulator(0, 0),
		queueAccB:    accumulate.NewStateTimeAccumulator(0, 0),
		hourlyA:      accumulate.NewHourlyMaxima(deadline),
		hourlyB:      accumulate.NewHourlyMaxima(deadline),
	}
}

func (s *segmentState) qLen(d direction) int {
	return len(*s.queue(d))
}

// recordQueueChange credits the just-ended interval to this segment's own
// per-direction accumulators, called after every enqueue/release at this
// segment.
func (s *segmentState) recordQueueChange(d direction, t float64) {
	qLen := s.qLen(d)
	if d == dirA {
		s.queueAccA.Transition(t, qLen)
		s.hourlyA.Update(t, qLen)
	} else {
		s.queueAccB.Transition(t, qLen)
		s.hourlyB.Update(t, qLen)
	}
}

func (s *segmentState) flush(deadline float64) {
	s.queueAccA.Flush(deadline)
	s.queueAccB.Flush(deadline)
}

func (s *segmentState) queue(d direction) *[]*vehicle {
	if d == dirA {
		return &s.qA
	}
	return &s.qB
}

func (s *segmentState) push(d direction, v *vehicle) {
	q := s.queue(d)
	*q = append(*q, v)
}

func (s *segmentState) pop(d direction) *vehicle {
	q := s.queue(d)
	v := (*q)[0]
	*q = (*q)[1:]
	return v
}

func (s *segmentState) empty(d direction) bool {
	return len(*s.queue(d)) == 0
}

func (s *segmentState) headTime(d direction) float64 {
	return (*s.queue(d))[0].enqueueTime
}

// firstIndex returns the entry segment index for a direction: the corridor's
// left end for A, its right end for B.
func firstIndex(d direction, n int) int {
	if d == dirA {
		return 0
	}
	return n - 1
}

// nextIndex returns the next segment index along d's direction of travel.
func nextIndex(d direction, idx int) int {
	if d == dirA {
		return idx + 1
	}
	return idx - 1
}

func fallsOff(idx, n int) bool {
	return idx < 0 || idx >= n
}

// chooseDirection picks which queue gets the green when both are
// candidates: the side whose head vehicle arrived first, ties to A.
func chooseDirection(s *segmentState) direction {
	switch {
	case s.empty(dirA):
		return dirB
	case s.empty(dirB):
		return dirA
	default:
		if s.headTime(dirA) <= s.headTime(dirB) {
			return dirA
		}
		return dirB
	}
}
