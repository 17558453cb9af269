package twowaypassing

import "github.com/trafficsim/simcore/internal/accumulate"

// Result is one replication's output, spec §4.5/§4.3.
type Result struct {
	ServedA int64
	ServedB int64

	AvgWaitA           float64
	AvgWaitB           float64
	ProbabilityOfWaitA float64
	ProbabilityOfWaitB float64

	// Segments holds queue-length statistics per corridor segment, in
	// Params.Segments order. Two-way segments never queue (§9's open
	// question resolution), so their entries sit at state 0 throughout.
	Segments []SegmentResult
}

// SegmentResult is one segment's queue-length record, spec §3's
// per-segment SegmentState and §4.5's "(t, |Q_d|) for each one-way
// segment".
type SegmentResult struct {
	SegmentID string

	QueueLengthPercentagesA accumulate.Distribution
	QueueLengthPercentagesB accumulate.Distribution
	HourlyMaxPercentagesA   accumulate.Distribution
	HourlyMaxPercentagesB   accumulate.Distribution

	MaxQueueLengthA int
	MaxQueueLengthB int
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
