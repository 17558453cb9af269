package carpark

import (
	"github.com/trafficsim/simcore/internal/accumulate"
	"github.com/trafficsim/simcore/internal/arrival"
	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/pkg/rng"
)

const (
	kindArrivalEntry des.Kind = iota
	kindArrivalExit
	kindDeparture
)

func meanInterArrival(ratePerHour float64) float64 {
	return 3600 / ratePerHour
}

// Run executes one replication of the car-park engine, spec §4.6. cancel may
// be nil; when non-nil it is checked between events per spec §5.
func Run(source *rng.Source, p Params, cancel des.CancelFunc) (Result, error) {
	deadline := p.deadline()
	maxConcurrent := p.maxConcurrent()

	queue := des.NewQueue()
	var clock des.Clock

	entryQ := newFIFOQueue()
	exitQ := newFIFOQueue()
	serverBusyUntil := 0.0

	var entryWaits, exitWaits accumulate.WaitStats
	entryQueueAcc := accumulate.NewStateTimeAccumulator(0, 0)
	exitQueueAcc := accumulate.NewStateTimeAccumulator(0, 0)
	entryHourly := accumulate.NewHourlyMaxima(deadline)
	exitHourly := accumulate.NewHourlyMaxima(deadline)

	var busyTime float64
	var totalEntries, totalExits int64
	var saturationErr error

	var entryArrivals, exitArrivals *arrival.Process
	if p.EntryRatePerHour > 0 {
		entryArrivals = arrival.New(source, meanInterArrival(p.EntryRatePerHour), p.EntryHeadwaySeconds)
		queue.Push(entryArrivals.Next(), kindArrivalEntry, nil)
	}
	if p.ExitRatePerHour > 0 {
		exitArrivals = arrival.New(source, meanInterArrival(p.ExitRatePerHour), p.ExitHeadwaySeconds)
		queue.Push(exitArrivals.Next(), kindArrivalExit, nil)
	}

	dispatch := func(t float64) {
		if t < serverBusyUntil || (entryQ.empty() && exitQ.empty()) {
			return
		}

		var fromEntry bool
		switch p.Priority {
		case PriorityCARS:
			fromEntry = !entryQ.empty()
		case PriorityPeople:
			fromEntry = exitQ.empty()
		default: // FCFS
			switch {
			case entryQ.empty():
				fromEntry = false
			case exitQ.empty():
				fromEntry = true
			default:
				fromEntry = entryQ.headTime() <= exitQ.headTime()
			}
		}

		var a, service float64
		if fromEntry {
			a = entryQ.pop()
			service = p.EntryServiceSeconds
		} else {
			a = exitQ.pop()
			service = p.ExitServiceSeconds
		}

		wait := t - a
		departureTime := t + service
		serverBusyUntil = departureTime
		busyTime += service

		if fromEntry {
			entryWaits.Record(wait)
			totalEntries++
			entryQueueAcc.Transition(t, entryQ.len())
			entryHourly.Update(t, entryQ.len())
		} else {
			exitWaits.Record(wait)
			totalExits++
			exitQueueAcc.Transition(t, exitQ.len())
			exitHourly.Update(t, exitQ.len())
		}

		queue.Push(departureTime, kindDeparture, nil)
	}

	handle := func(e *des.Event) {
		t := e.Time
		switch e.Kind {
		case kindArrivalEntry:
			entryQ.push(t)
			entryQueueAcc.Transition(t, entryQ.len())
			entryHourly.Update(t, entryQ.len())
			if next := t + entryArrivals.Next(); next < deadline {
				queue.Push(next, kindArrivalEntry, nil)
			}
			if entryQ.len()+exitQ.len() > maxConcurrent {
				saturationErr = &des.SaturatedSystem{Cap: maxConcurrent, AtState: entryQ.len() + exitQ.len()}
				return
			}
		case kindArrivalExit:
			exitQ.push(t)
			exitQueueAcc.Transition(t, exitQ.len())
			exitHourly.Update(t, exitQ.len())
			if next := t + exitArrivals.Next(); next < deadline {
				queue.Push(next, kindArrivalExit, nil)
			}
			if entryQ.len()+exitQ.len() > maxConcurrent {
				saturationErr = &des.SaturatedSystem{Cap: maxConcurrent, AtState: entryQ.len() + exitQ.len()}
				return
			}
		case kindDeparture:
		}
		dispatch(t)
	}

	combinedCancel := func() bool {
		return saturationErr != nil || (cancel != nil && cancel())
	}

	des.Run(queue, &clock, deadline, handle, combinedCancel)
	if saturationErr != nil {
		return Result{}, saturationErr
	}

	entryQueueAcc.Flush(deadline)
	exitQueueAcc.Flush(deadline)

	utilization := 0.0
	if deadline > 0 {
		utilization = busyTime / deadline
	}

	return Result{
		Utilization: utilization,

		TotalEntries:              totalEntries,
		EntryDelayFraction:        entryWaits.ProbabilityOfWaiting(),
		AvgWaitEntryArrival:       entryWaits.AvgWaitPerArrival(),
		AvgWaitEntryQueued:        entryWaits.AvgWaitPerWaiter(),
		EntryQueuePercentages:     entryQueueAcc.Percentages(deadline),
		EntryHourlyMaxPercentages: entryHourly.Histogram(),

		TotalExits:               totalExits,
		ExitDelayFraction:        exitWaits.ProbabilityOfWaiting(),
		AvgWaitExitArrival:       exitWaits.AvgWaitPerArrival(),
		AvgWaitExitQueued:        exitWaits.AvgWaitPerWaiter(),
		ExitQueuePercentages:     exitQueueAcc.Percentages(deadline),
		ExitHourlyMaxPercentages: exitHourly.Histogram(),
	}, nil
}
