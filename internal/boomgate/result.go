package boomgate

import "github.com/trafficsim/simcore/internal/accumulate"

// Result is one replication's output, spec §4.4/§4.3.
type Result struct {
	TotalCustomers             int64
	AvgArrivalsPerHour         float64
	AvgServiceTime             float64
	ServerUtilization          float64
	AvgWaitPerArrival          float64
	AvgWaitPerWaiter           float64
	ProbabilityOfWaiting       float64
	ConstrainedArrivalFraction float64
	SystemStatePercentages     accumulate.Distribution
	HourlyMaxPercentages       accumulate.Distribution
}

// zeroResult is spec §4.4's early-return for a non-positive arrival rate:
// an all-zero record with every hour (and the whole run) spent at state 0.
func zeroResult() Result {
	return Result{
		SystemStatePercentages: accumulate.Distribution{0: 100},
		HourlyMaxPercentages:   accumulate.Distribution{0: 100},
	}
}
