// Package arrival generates headway-shaped Poisson arrivals: the rate
// solver and per-draw floor from spec §4.1, wired into a small stateful
// generator every engine's arrival loop can share. Grounded on the
// teacher's internal/workload/generator.go schedulePoissonArrivals (draw an
// inter-arrival time, advance a cursor, schedule while before the
// deadline), generalized to go through the headway solver instead of a
// bare exponential draw.
package arrival

import "github.com/trafficsim/simcore/pkg/rng"

// Process draws successive inter-arrival times for one arrival stream,
// constrained by a minimum headway, and tracks what fraction of raw
// exponential draws were below that headway.
type Process struct {
	source      *rng.Source
	lambda      float64 // headway-adjusted rate
	minHeadway  float64
	draws       int64
	constrained int64
}

// New builds an arrival process for a target mean inter-arrival time and a
// minimum headway, both in seconds. meanInterArrival must be positive; a
// non-positive target rate is the caller's responsibility to special-case
// before constructing a Process (spec §4.4's "arrivalRate <= 0" early return).
func New(source *rng.Source, meanInterArrival, minHeadway float64) *Process {
	return &Process{
		source:     source,
		lambda:     rng.AdjustedRate(meanInterArrival, minHeadway),
		minHeadway: minHeadway,
	}
}

// Next draws the next inter-arrival interval: max(Exponential(lambda), h).
func (p *Process) Next() float64 {
	interval, constrained := p.source.HeadwaySample(p.lambda, p.minHeadway)
	p.draws++
	if constrained {
		p.constrained++
	}
	return interval
}

// ConstrainedFraction is the share of draws where the raw exponential value
// fell below the minimum headway (spec §4.1's constrainedArrivals).
func (p *Process) ConstrainedFraction() float64 {
	if p.draws == 0 {
		return 0
	}
	return float64(p.constrained) / float64(p.draws)
}

// Draws returns the number of intervals drawn so far.
func (p *Process) Draws() int64 { return p.draws }
