package accumulate

import "math"

// HourlyMaxima holds, for each simulated hour, the maximum system-state
// value observed during that hour (spec §3, §4.3).
type HourlyMaxima struct {
	buckets []int
}

// NewHourlyMaxima sizes the bucket array to cover [0, duration] seconds.
func NewHourlyMaxima(duration float64) *HourlyMaxima {
	n := int(math.Ceil(duration / 3600))
	if n < 1 {
		n = 1
	}
	return &HourlyMaxima{buckets: make([]int, n)}
}

// Update records that the system was in state s during the hour containing
// time t. The engines call it at every state transition with t = the
// transition time and s = the state just entered, so each state value is
// credited to the hour in which it begins.
func (h *HourlyMaxima) Update(t float64, s int) {
	idx := int(t / 3600)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(h.buckets) {
		idx = len(h.buckets) - 1
	}
	if s > h.buckets[idx] {
		h.buckets[idx] = s
	}
}

// Values returns the per-hour maximum vector.
func (h *HourlyMaxima) Values() []int {
	out := make([]int, len(h.buckets))
	copy(out, h.buckets)
	return out
}

// Histogram reduces the hourly-max vector to a value -> count-of-hours
// distribution, normalised to percentages of hours (spec §4.3's
// hourlyMaxDistribution).
func (h *HourlyMaxima) Histogram() Distribution {
	counts := make(map[int]int, len(h.buckets))
	for _, v := range h.buckets {
		counts[v]++
	}
	out := make(Distribution, len(counts))
	total := float64(len(h.buckets))
	if total == 0 {
		return out
	}
	for v, c := range counts {
		out[v] = float64(c) / total * 100
	}
	return out
}
