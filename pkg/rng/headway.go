package rng

import "math"

// headwayTolerance and headwayMaxIterations bound the bisection solve in
// AdjustedRate; both values come directly from spec §4.1.
const (
	headwayTolerance    = 1e-4
	headwayMaxIterations = 100
	headwayLowerLambda  = 0.0001
)

// AdjustedRate solves for the Poisson rate lambda such that, once draws are
// floored at the minimum headway h, the resulting mean inter-arrival time is
// still the target mean m. See spec §4.1:
//
//   h <= 0       -> 1/m
//   h >= m       -> 1/h (target infeasible, degenerate to deterministic headway)
//   otherwise    -> bisect h + e^(-lambda*h)/lambda = m on [0.0001, 1/h]
func AdjustedRate(meanInterArrival, minHeadway float64) float64 {
	if minHeadway <= 0 {
		return 1 / meanInterArrival
	}
	if minHeadway >= meanInterArrival {
		return 1 / minHeadway
	}

	lo, hi := headwayLowerLambda, 1/minHeadway
	f := func(lambda float64) float64 {
		return minHeadway + math.Exp(-lambda*minHeadway)/lambda - meanInterArrival
	}

	flo := f(lo)
	for i := 0; i < headwayMaxIterations; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if math.Abs(fmid) <= headwayTolerance {
			return mid
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// HeadwaySample draws a single headway-constrained inter-arrival time:
// max(Exponential(lambda), h). It also reports whether the unconstrained
// draw fell below h, so callers can accumulate the constrainedArrivals
// fraction required by spec §4.1.
func (s *Source) HeadwaySample(lambda, minHeadway float64) (interval float64, constrained bool) {
	draw := s.Exponential(lambda)
	if draw < minHeadway {
		return minHeadway, true
	}
	return draw, false
}
