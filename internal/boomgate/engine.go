package boomgate

import (
	"github.com/trafficsim/simcore/internal/accumulate"
	"github.com/trafficsim/simcore/internal/arrival"
	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/pkg/rng"
)

func servicePart(source *rng.Source, mean float64, exponential bool) float64 {
	if mean <= 0 {
		return 0
	}
	if exponential {
		return source.Exponential(1 / mean)
	}
	return mean
}

// Run executes one replication of the boom-gate engine for the given
// parameters and random source, returning the aggregated result of spec
// §4.3/§4.4. cancel may be nil; when non-nil it is checked once per
// arrival per spec §5.
func Run(source *rng.Source, p Params, cancel des.CancelFunc) (Result, error) {
	if p.ArrivalRatePerHour <= 0 {
		return zeroResult(), nil
	}

	deadline := p.deadline()
	maxConcurrent := p.maxConcurrent()

	meanInterArrival := 3600 / p.ArrivalRatePerHour
	arrivals := arrival.New(source, meanInterArrival, p.MinHeadwaySeconds)

	departures := newDepartureHeap()
	systemState := 0
	serverFreeTime := 0.0

	var waits accumulate.WaitStats
	stateAcc := accumulate.NewStateTimeAccumulator(0, 0)
	hourly := accumulate.NewHourlyMaxima(deadline)

	var totalCustomers int64
	var totalService float64

	t := 0.0
	for {
		if cancel != nil && cancel() {
			break
		}
		t += arrivals.Next()
		if t >= deadline {
			break
		}

		for departures.Len() > 0 && departures.peek() <= t {
			d := departures.pop()
			systemState--
			stateAcc.Transition(d, systemState)
			hourly.Update(d, systemState)
		}

		s1 := servicePart(source, p.ServicePart1MeanSeconds, p.Part1IsExponential)
		s2 := servicePart(source, p.ServicePart2MeanSeconds, p.Part2IsExponential)
		service := s1 + s2

		serviceStart := t
		if serverFreeTime > serviceStart {
			serviceStart = serverFreeTime
		}
		wait := serviceStart - t
		departure := serviceStart + service

		waits.Record(wait)
		totalCustomers++
		totalService += service

		systemState++
		stateAcc.Transition(t, systemState)
		hourly.Update(t, systemState)

		departures.push(departure)
		serverFreeTime = departure

		if systemState > maxConcurrent {
			return Result{}, &des.SaturatedSystem{Cap: maxConcurrent, AtState: systemState}
		}
	}

	for departures.Len() > 0 {
		d := departures.pop()
		if d > deadline {
			d = deadline
		}
		systemState--
		stateAcc.Transition(d, systemState)
		hourly.Update(d, systemState)
	}
	stateAcc.Flush(deadline)

	utilization := 0.0
	if deadline > 0 {
		utilization = totalService / deadline
	}

	avgArrivalsPerHour := 0.0
	if p.SimulationHours > 0 {
		avgArrivalsPerHour = float64(totalCustomers) / p.SimulationHours
	}
	avgServiceTime := 0.0
	if totalCustomers > 0 {
		avgServiceTime = totalService / float64(totalCustomers)
	}

	return Result{
		TotalCustomers:             totalCustomers,
		AvgArrivalsPerHour:         avgArrivalsPerHour,
		AvgServiceTime:             avgServiceTime,
		ServerUtilization:          utilization,
		AvgWaitPerArrival:          waits.AvgWaitPerArrival(),
		AvgWaitPerWaiter:           waits.AvgWaitPerWaiter(),
		ProbabilityOfWaiting:       waits.ProbabilityOfWaiting(),
		ConstrainedArrivalFraction: arrivals.ConstrainedFraction(),
		SystemStatePercentages:     stateAcc.Percentages(deadline),
		HourlyMaxPercentages:       hourly.Histogram(),
	}, nil
}
