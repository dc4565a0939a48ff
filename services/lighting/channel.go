package lighting

import "twinkler-go/types"

// Channel is one light output: the last amplitude written to the hardware and
// the direction of its triangle wave.
type Channel struct {
	index int
	out   PwmOutput
	amp   uint16
	dir   types.Direction
}

func (c *Channel) Index() int                 { return c.index }
func (c *Channel) Amplitude() uint16          { return c.amp }
func (c *Channel) Direction() types.Direction { return c.dir }

func (c *Channel) set(amp uint16) {
	c.amp = amp
	c.out.Set(c.index, amp)
}

// Step advances the channel by one unit towards the current extremum, or
// reverses it. A reversal never changes the amplitude, so every extremum is
// held for one extra step.
func (c *Channel) Step(lo, hi uint16) {
	switch {
	case c.dir == types.Raising && c.amp >= hi:
		c.dir = types.Sinking
	case c.dir == types.Sinking && c.amp <= lo:
		c.dir = types.Raising
	case c.dir == types.Raising:
		c.set(c.amp + 1)
	default:
		c.set(c.amp - 1)
	}
}
