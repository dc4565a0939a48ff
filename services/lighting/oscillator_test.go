package lighting

import (
	"sync"
	"testing"

	"twinkler-go/types"

	"pgregory.net/rapid"
)

const (
	testMin uint16 = 5
	testMax uint16 = 100
)

// fakePWM records output traffic.
type fakePWM struct {
	mu      sync.Mutex
	level   []uint16
	enabled []bool
	sets    int
	log     []string
}

func newFakePWM(n int) *fakePWM {
	return &fakePWM{level: make([]uint16, n), enabled: make([]bool, n)}
}

func (f *fakePWM) Set(ch int, lvl uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.level[ch] = lvl
	f.sets++
}

func (f *fakePWM) Enable(ch int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled[ch] = true
	f.log = append(f.log, "enable")
}

func (f *fakePWM) Disable(ch int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled[ch] = false
	f.log = append(f.log, "disable")
}

func (f *fakePWM) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func (f *fakePWM) allEnabled(want bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.enabled {
		if e != want {
			return false
		}
	}
	return true
}

func newTestChannel(amp uint16, dir types.Direction) (*Channel, *fakePWM) {
	out := newFakePWM(1)
	return &Channel{out: out, amp: amp, dir: dir}, out
}

func TestStep_DwellThenReverseAtMax(t *testing.T) {
	c, out := newTestChannel(testMax, types.Raising)

	c.Step(testMin, testMax)
	if c.Amplitude() != testMax || c.Direction() != types.Sinking {
		t.Fatalf("after dwell: amp=%d dir=%v", c.Amplitude(), c.Direction())
	}
	if out.Sets() != 0 {
		t.Fatal("reversal must not write the output")
	}

	c.Step(testMin, testMax)
	if c.Amplitude() != testMax-1 || c.Direction() != types.Sinking {
		t.Fatalf("after reverse: amp=%d dir=%v", c.Amplitude(), c.Direction())
	}
	if out.level[0] != testMax-1 {
		t.Fatalf("output = %d, want %d", out.level[0], testMax-1)
	}
}

func TestStep_DwellThenReverseAtMin(t *testing.T) {
	c, _ := newTestChannel(testMin, types.Sinking)

	c.Step(testMin, testMax)
	if c.Amplitude() != testMin || c.Direction() != types.Raising {
		t.Fatalf("after dwell: amp=%d dir=%v", c.Amplitude(), c.Direction())
	}
	c.Step(testMin, testMax)
	if c.Amplitude() != testMin+1 {
		t.Fatalf("after reverse: amp=%d", c.Amplitude())
	}
}

func TestStep_Period(t *testing.T) {
	c, _ := newTestChannel(testMin, types.Raising)
	period := 2*int(testMax-testMin) + 2

	for i := 1; i <= period; i++ {
		c.Step(testMin, testMax)
		back := c.Amplitude() == testMin && c.Direction() == types.Raising
		if back != (i == period) {
			t.Fatalf("step %d: amp=%d dir=%v", i, c.Amplitude(), c.Direction())
		}
	}
}

func TestStagger(t *testing.T) {
	out := newFakePWM(3)
	o := NewOscillator(out, 3, testMin, testMax)
	o.Channel(1).dir = types.Sinking
	o.Stagger()

	want := []uint16{33, 66, 99}
	for i, st := range o.Snapshot() {
		if st.Amplitude != want[i] || st.Direction != types.Raising {
			t.Fatalf("channel %d = %+v, want %d raising", i, st, want[i])
		}
		if out.level[i] != want[i] {
			t.Fatalf("output %d = %d, want %d", i, out.level[i], want[i])
		}
	}
}

func TestStepAll_IndexOrderAndIndependence(t *testing.T) {
	out := newFakePWM(3)
	o := NewOscillator(out, 3, testMin, testMax)
	o.Stagger()
	for i := 0; i < 2; i++ {
		o.StepAll()
	}
	want := []types.ChannelState{
		{Amplitude: 35, Direction: types.Raising},
		{Amplitude: 68, Direction: types.Raising},
		{Amplitude: 100, Direction: types.Sinking},
	}
	for i, st := range o.Snapshot() {
		if st != want[i] {
			t.Fatalf("channel %d = %+v, want %+v", i, st, want[i])
		}
	}
	// Channel 2 hit the top on the first step and dwelled on the second.
	o.StepAll()
	if st := o.Snapshot()[2]; st.Amplitude != 99 || st.Direction != types.Sinking {
		t.Fatalf("channel 2 = %+v, want 99 sinking", st)
	}
}

func TestEnableDisableGatesEveryChannel(t *testing.T) {
	out := newFakePWM(3)
	o := NewOscillator(out, 3, testMin, testMax)
	o.Enable()
	if !out.allEnabled(true) {
		t.Fatal("not all channels enabled")
	}
	o.Stagger()
	o.Disable()
	if !out.allEnabled(false) {
		t.Fatal("not all channels disabled")
	}
	if o.Snapshot()[0].Amplitude != 33 {
		t.Fatal("disable must not touch amplitudes")
	}
}

func TestStep_BoundedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := uint16(rapid.IntRange(1, 50).Draw(t, "min"))
		hi := uint16(rapid.IntRange(int(lo)+1, 255).Draw(t, "max"))
		amp := uint16(rapid.IntRange(int(lo), int(hi)).Draw(t, "amp"))
		dir := types.Direction(rapid.IntRange(0, 1).Draw(t, "dir"))
		steps := rapid.IntRange(0, 2000).Draw(t, "steps")

		c := &Channel{out: newFakePWM(1), amp: amp, dir: dir}
		for i := 0; i < steps; i++ {
			prev, prevDir := c.amp, c.dir
			c.Step(lo, hi)
			if c.amp < lo || c.amp > hi {
				t.Fatalf("step %d: amp %d outside [%d, %d]", i, c.amp, lo, hi)
			}
			if c.dir != prevDir && c.amp != prev {
				t.Fatalf("step %d: reversal changed amplitude %d -> %d", i, prev, c.amp)
			}
			if c.dir == prevDir && absDiff(c.amp, prev) != 1 {
				t.Fatalf("step %d: moved %d -> %d", i, prev, c.amp)
			}
		}
	})
}

func TestStagger_BoundedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, types.MaxChannels).Draw(t, "channels")
		o := NewOscillator(newFakePWM(n), n, testMin, testMax)
		o.Stagger()
		steps := rapid.IntRange(0, 1000).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			o.StepAll()
		}
		for i, st := range o.Snapshot() {
			if st.Amplitude < testMin || st.Amplitude > testMax {
				t.Fatalf("channel %d amp %d out of bounds", i, st.Amplitude)
			}
		}
	})
}

func absDiff(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}
