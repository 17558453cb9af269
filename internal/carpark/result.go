package carpark

import "github.com/trafficsim/simcore/internal/accumulate"

// Result is one replication's output, spec §4.6.
type Result struct {
	Utilization float64

	TotalEntries            int64
	EntryDelayFraction      float64
	AvgWaitEntryArrival     float64
	AvgWaitEntryQueued      float64
	EntryQueuePercentages   accumulate.Distribution
	EntryHourlyMaxPercentages accumulate.Distribution

	TotalExits              int64
	ExitDelayFraction       float64
	AvgWaitExitArrival      float64
	AvgWaitExitQueued       float64
	ExitQueuePercentages    accumulate.Distribution
	ExitHourlyMaxPercentages accumulate.Distribution
}
