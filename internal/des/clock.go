package des

import "fmt"

// Clock is the simulation clock. All internal time is seconds (float), per
// spec §6 "Units". It only ever moves forward.
type Clock struct {
	now float64
}

// Now returns the current simulation time.
func (c *Clock) Now() float64 { return c.now }

// Advance moves the clock to t. It panics on a backward move — the
// monotonicity invariant in spec §3 must never be violated by a correctly
// written engine, so a violation here means a real bug, not a recoverable
// condition.
func (c *Clock) Advance(t float64) {
	if t < c.now {
		panic(fmt.Sprintf("des: clock moved backward from %v to %v", c.now, t))
	}
	c.now = t
}
