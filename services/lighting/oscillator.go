package lighting

import "twinkler-go/types"

// Oscillator steps a fixed set of channels between DutyMin and DutyMax.
type Oscillator struct {
	out      PwmOutput
	channels []Channel
	lo, hi   uint16
}

// NewOscillator allocates count channels on out. It does not touch the
// hardware; call Stagger to load starting amplitudes.
func NewOscillator(out PwmOutput, count int, lo, hi uint16) *Oscillator {
	o := &Oscillator{
		out:      out,
		channels: make([]Channel, count),
		lo:       lo,
		hi:       hi,
	}
	for i := range o.channels {
		o.channels[i] = Channel{index: i, out: out}
	}
	return o
}

func (o *Oscillator) Len() int { return len(o.channels) }

// Channel returns channel i.
func (o *Oscillator) Channel(i int) *Channel { return &o.channels[i] }

// Stagger loads channel i with (hi/count)*(i+1), raising, so the channels
// breathe out of phase.
func (o *Oscillator) Stagger() {
	seg := o.hi / uint16(len(o.channels))
	for i := range o.channels {
		c := &o.channels[i]
		c.dir = types.Raising
		c.set(seg * uint16(i+1))
	}
}

// StepAll steps every channel in index order.
func (o *Oscillator) StepAll() {
	for i := range o.channels {
		o.channels[i].Step(o.lo, o.hi)
	}
}

// Enable ungates the output of every channel.
func (o *Oscillator) Enable() {
	for i := range o.channels {
		o.out.Enable(i)
	}
}

// Disable gates off the output of every channel. Amplitudes are left as-is.
func (o *Oscillator) Disable() {
	for i := range o.channels {
		o.out.Disable(i)
	}
}

// Snapshot copies the channel states.
func (o *Oscillator) Snapshot() []types.ChannelState {
	s := make([]types.ChannelState, len(o.channels))
	for i := range o.channels {
		s[i] = types.ChannelState{Amplitude: o.channels[i].amp, Direction: o.channels[i].dir}
	}
	return s
}
