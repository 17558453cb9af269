package accumulate

import "sort"

// Distribution maps an integer system state (or an hourly-maximum value) to
// accumulated seconds (or a percentage), keyed so every caller can iterate
// in sorted order —
// spec §9's "Aggregation order" note exists precisely so cross-run output is
// byte-identical.
type Distribution map[int]float64

// SortedKeys returns the distribution's keys in ascending order.
func (d Distribution) SortedKeys() []int {
	keys := make([]int, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// StateTimeAccumulator tracks how long an integer-valued system state
// (customers in system, queue length, ...) spends at each value. Engines
// call Transition every time the state changes, and Flush once at the end
// of the run to account for the final interval (spec §4.3).
type StateTimeAccumulator struct {
	acc            Distribution
	lastState      int
	lastTransition float64
}

// NewStateTimeAccumulator starts an accumulator at the given initial state
// and time (normally state 0, time 0).
func NewStateTimeAccumulator(initialState int, startTime float64) *StateTimeAccumulator {
	return &StateTimeAccumulator{
		acc:            make(Distribution),
		lastState:      initialState,
		lastTransition: startTime,
	}
}

// Transition records that the state changed to newState at time t, crediting
// the just-ended interval to the outgoing state.
func (s *StateTimeAccumulator) Transition(t float64, newState int) {
	s.acc[s.lastState] += t - s.lastTransition
	s.lastTransition = t
	s.lastState = newState
}

// CurrentState returns the state since the last transition.
func (s *StateTimeAccumulator) CurrentState() int { return s.lastState }

// LastTransitionTime returns the time of the last recorded transition.
func (s *StateTimeAccumulator) LastTransitionTime() float64 { return s.lastTransition }

// Flush credits the interval [lastTransition, deadline] to the current
// state. Call exactly once, after the run loop ends.
func (s *StateTimeAccumulator) Flush(deadline float64) {
	if deadline > s.lastTransition {
		s.acc[s.lastState] += deadline - s.lastTransition
	}
}

// Distribution returns the accumulated seconds-per-state map.
func (s *StateTimeAccumulator) Distribution() Distribution { return s.acc }

// Percentages converts the accumulated seconds into a percentage-of-duration
// distribution, per spec §4.3's systemStatePercentages.
func (s *StateTimeAccumulator) Percentages(duration float64) Distribution {
	out := make(Distribution, len(s.acc))
	if duration <= 0 {
		return out
	}
	for state, seconds := range s.acc {
		out[state] = seconds / duration * 100
	}
	return out
}
