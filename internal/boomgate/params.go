// Package boomgate implements the single-server M/G/1 boom-gate engine of
// spec §4.4: an implicit-queue system where only the departure heap is
// retained, no per-customer record is ever created.
package boomgate

// Params is the boom gate's engine-specific input, spec §3.
type Params struct {
	SimulationHours         float64
	ArrivalRatePerHour      float64
	MinHeadwaySeconds       float64
	ServicePart1MeanSeconds float64
	ServicePart2MeanSeconds float64
	Part1IsExponential      bool
	Part2IsExponential      bool

	// MaxConcurrentCustomers caps systemState before the run aborts with a
	// SaturatedSystem error. Zero means the default cap applies.
	MaxConcurrentCustomers int
}

const defaultMaxConcurrentCustomers = 10_000_000

func (p Params) maxConcurrent() int {
	if p.MaxConcurrentCustomers > 0 {
		return p.MaxConcurrentCustomers
	}
	return defaultMaxConcurrentCustomers
}

func (p Params) deadline() float64 {
	return p.SimulationHours * 3600
}
