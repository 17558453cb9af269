package twowaypassing

import (
	"github.com/trafficsim/simcore/internal/accumulate"
	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/pkg/rng"
)

const (
	kindArrivalA des.Kind = iota
	kindArrivalB
	kindRelease
	kindClear
	kindGreenCheck
)

type releasePayload struct {
	segIdx int
	dir    direction
}

type clearPayload struct {
	segIdx int
	dir    direction
	v      *vehicle
}

type greenCheckPayload struct {
	segIdx int
}

// Run executes one replication of the two-way-passing engine, spec §4.5.
// cancel may be nil; when non-nil it is checked between events per spec §5.
func Run(source *rng.Source, p Params, cancel des.CancelFunc) (Result, error) {
	deadline := p.SimulationSeconds
	maxConcurrent := p.maxConcurrent()
	n := len(p.Segments)

	segments := make([]*segmentState, n)
	for i, s := range p.Segments {
		segments[i] = newSegmentState(s, deadline)
	}

	queue := des.NewQueue()
	var clock des.Clock

	var waitsA, waitsB accumulate.WaitStats

	var servedA, servedB int64
	var nextVehicleID int64
	var saturationErr error
	inCorridor := 0

	waitsFor := func(d direction) *accumulate.WaitStats {
		if d == dirA {
			return &waitsA
		}
		return &waitsB
	}

	// qLenTotal sums the current queue length for d across every one-way
	// segment, for the saturation check only — each segment's own queue
	// accumulator tracks its length independently (spec §4.5).
	qLenTotal := func(d direction) int {
		total := 0
		for _, seg := range segments {
			total += seg.qLen(d)
		}
		return total
	}

	var tryStartGreen func(segIdx int, t float64)
	var enqueueAtSegment func(segIdx int, v *vehicle, t float64)

	tryStartGreen = func(segIdx int, t float64) {
		seg := segments[segIdx]
		if seg.kind != OneWay {
			return
		}
		if seg.currentDirection != dirNone || seg.onSegmentCount != 0 {
			return
		}
		if seg.empty(dirA) && seg.empty(dirB) {
			return
		}
		d := chooseDirection(seg)
		seg.currentDirection = d
		queue.Push(t, kindRelease, releasePayload{segIdx, d})
	}

	enqueueAtSegment = func(segIdx int, v *vehicle, t float64) {
		seg := segments[segIdx]
		if seg.kind == OneWay {
			seg.push(v.dir, v)
			seg.recordQueueChange(v.dir, t)
			tryStartGreen(segIdx, t)
			return
		}
		// Two-way: unlimited parallel capacity, serviced immediately on arrival.
		seg.onSegmentCount++
		clearTime := t + seg.lengthMeters/p.SpeedMetersPerSecond
		queue.Push(clearTime, kindClear, clearPayload{segIdx, v.dir, v})
	}

	release := func(segIdx int, d direction, t float64) {
		seg := segments[segIdx]
		if seg.currentDirection != d || seg.empty(d) {
			return
		}
		v := seg.pop(d)
		seg.recordQueueChange(d, t)

		if t >= p.WarmupSeconds {
			waitsFor(d).Record(t - v.enqueueTime)
		}

		seg.onSegmentCount++
		clearTime := t + seg.lengthMeters/p.SpeedMetersPerSecond
		queue.Push(clearTime, kindClear, clearPayload{segIdx, d, v})

		if !seg.empty(d) && t+p.MinGapSeconds <= deadline {
			queue.Push(t+p.MinGapSeconds, kindRelease, releasePayload{segIdx, d})
		}
	}

	clear := func(segIdx int, d direction, v *vehicle, t float64) {
		seg := segments[segIdx]
		seg.onSegmentCount--
		if seg.onSegmentCount < 0 {
			seg.onSegmentCount = 0
		}
		if seg.kind == OneWay && seg.onSegmentCount == 0 {
			queue.Push(t+p.SwitchOverSeconds, kindGreenCheck, greenCheckPayload{segIdx})
		}

		inCorridor--
		next := nextIndex(d, segIdx)
		if fallsOff(next, n) {
			if d == dirA {
				servedA++
			} else {
				servedB++
			}
			return
		}
		v.enqueueTime = t
		v.segIndex = next
		inCorridor++
		enqueueAtSegment(next, v, t)
	}

	greenCheck := func(segIdx int, t float64) {
		seg := segments[segIdx]
		if seg.onSegmentCount > 0 {
			return
		}
		if seg.empty(dirA) && seg.empty(dirB) {
			seg.currentDirection = dirNone
			return
		}
		d := chooseDirection(seg)
		seg.currentDirection = d
		queue.Push(t, kindRelease, releasePayload{segIdx, d})
	}

	arrive := func(d direction, t float64) {
		nextVehicleID++
		v := &vehicle{id: nextVehicleID, dir: d, enqueueTime: t, segIndex: firstIndex(d, n)}
		inCorridor++
		enqueueAtSegment(v.segIndex, v, t)

		for i := range segments {
			tryStartGreen(i, t)
		}

		lambda := p.LambdaAPerSecond
		kind := kindArrivalA
		if d == dirB {
			lambda = p.LambdaBPerSecond
			kind = kindArrivalB
		}
		if lambda > 0 {
			next := t + source.Exponential(lambda)
			if next < deadline {
				queue.Push(next, kind, nil)
			}
		}

		totalQueued := qLenTotal(dirA) + qLenTotal(dirB)
		if inCorridor+totalQueued > maxConcurrent {
			saturationErr = &des.SaturatedSystem{Cap: maxConcurrent, AtState: inCorridor + totalQueued}
		}
	}

	if p.LambdaAPerSecond > 0 {
		queue.Push(source.Exponential(p.LambdaAPerSecond), kindArrivalA, nil)
	}
	if p.LambdaBPerSecond > 0 {
		queue.Push(source.Exponential(p.LambdaBPerSecond), kindArrivalB, nil)
	}

	handle := func(e *des.Event) {
		t := e.Time
		switch e.Kind {
		case kindArrivalA:
			arrive(dirA, t)
		case kindArrivalB:
			arrive(dirB, t)
		case kindRelease:
			pl := e.Payload.(releasePayload)
			release(pl.segIdx, pl.dir, t)
		case kindClear:
			pl := e.Payload.(clearPayload)
			clear(pl.segIdx, pl.dir, pl.v, t)
		case kindGreenCheck:
			pl := e.Payload.(greenCheckPayload)
			greenCheck(pl.segIdx, t)
		}
	}

	combinedCancel := func() bool {
		return saturationErr != nil || (cancel != nil && cancel())
	}

	des.Run(queue, &clock, deadline, handle, combinedCancel)
	if saturationErr != nil {
		return Result{}, saturationErr
	}

	segResults := make([]SegmentResult, n)
	for i, seg := range segments {
		seg.flush(deadline)
		segResults[i] = SegmentResult{
			SegmentID:               seg.id,
			QueueLengthPercentagesA: seg.queueAccA.Percentages(deadline),
			QueueLengthPercentagesB: seg.queueAccB.Percentages(deadline),
			HourlyMaxPercentagesA:   seg.hourlyA.Histogram(),
			HourlyMaxPercentagesB:   seg.hourlyB.Histogram(),
			MaxQueueLengthA:         maxOf(seg.hourlyA.Values()),
			MaxQueueLengthB:         maxOf(seg.hourlyB.Values()),
		}
	}

	return Result{
		ServedA: servedA,
		ServedB: servedB,

		AvgWaitA:           waitsA.AvgWaitPerArrival(),
		AvgWaitB:           waitsB.AvgWaitPerArrival(),
		ProbabilityOfWaitA: waitsA.ProbabilityOfWaiting(),
		ProbabilityOfWaitB: waitsB.ProbabilityOfWaiting(),

		Segments: segResults,
	}, nil
}
