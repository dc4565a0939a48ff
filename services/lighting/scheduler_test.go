package lighting

import (
	"testing"

	"twinkler-go/types"

	"pgregory.net/rapid"
)

func newTestScheduler(active, sleep uint32) (*Scheduler, *fakePWM) {
	out := newFakePWM(3)
	s := NewScheduler(NewOscillator(out, 3, testMin, testMax), active, sleep)
	s.EnterActive()
	return s, out
}

func TestEnterActive_SideEffects(t *testing.T) {
	s, out := newTestScheduler(15, 5)

	if s.Mode() != types.ModeActive || s.Threshold() != 15 || s.Ticks() != 0 {
		t.Fatalf("state = %+v", s.State())
	}
	if !out.allEnabled(true) {
		t.Fatal("outputs not enabled on ACTIVE entry")
	}
	want := []uint16{33, 66, 99}
	for i, st := range s.osc.Snapshot() {
		if st.Amplitude != want[i] || st.Direction != types.Raising {
			t.Fatalf("channel %d = %+v, want %d raising", i, st, want[i])
		}
	}
}

func TestModeFlipOnThreshold(t *testing.T) {
	s, out := newTestScheduler(15, 5)

	for i := 1; i < 15; i++ {
		if s.HandleTick() {
			t.Fatalf("transition fired on tick %d", i)
		}
		if s.Ticks() != uint32(i) {
			t.Fatalf("ticks = %d after %d ticks", s.Ticks(), i)
		}
	}
	if !s.HandleTick() {
		t.Fatal("no transition on the 15th tick")
	}
	if s.Mode() != types.ModeSleeping || s.Ticks() != 0 || s.Threshold() != 5 {
		t.Fatalf("after flip: %+v", s.State())
	}
	if !out.allEnabled(false) {
		t.Fatal("outputs not disabled on SLEEPING entry")
	}

	for i := 1; i < 5; i++ {
		if s.HandleTick() {
			t.Fatalf("wake fired on sleep tick %d", i)
		}
	}
	if !s.HandleTick() || s.Mode() != types.ModeActive || s.Threshold() != 15 {
		t.Fatalf("no wake on the 5th sleep tick: %+v", s.State())
	}
	if !out.allEnabled(true) {
		t.Fatal("outputs not re-enabled on wake")
	}
}

func TestWakeRestaggers(t *testing.T) {
	s, _ := newTestScheduler(3, 1)
	for i := 0; i < 40; i++ {
		s.osc.StepAll()
	}
	s.HandleTick()
	s.HandleTick()
	s.HandleTick() // -> sleeping
	s.HandleTick() // -> active
	if s.Mode() != types.ModeActive {
		t.Fatalf("mode = %v", s.Mode())
	}
	want := []uint16{33, 66, 99}
	for i, st := range s.osc.Snapshot() {
		if st.Amplitude != want[i] || st.Direction != types.Raising {
			t.Fatalf("channel %d = %+v after wake", i, st)
		}
	}
}

func TestSleepDoesNotTouchAmplitudes(t *testing.T) {
	s, out := newTestScheduler(1, 10)
	before := out.Sets()
	s.HandleTick()
	if s.Mode() != types.ModeSleeping {
		t.Fatal("expected sleeping")
	}
	if out.Sets() != before {
		t.Fatal("SLEEPING entry wrote amplitudes")
	}
}

func TestHandleTick_SaturatesAndFiresOnce(t *testing.T) {
	s, _ := newTestScheduler(15, 5)
	// Force an overshoot, as if ticks had been coalesced.
	s.ticks = 1000
	if !s.HandleTick() {
		t.Fatal("expected a transition")
	}
	if s.Mode() != types.ModeSleeping || s.Ticks() != 0 || s.State().Transitions != 2 {
		t.Fatalf("after overshoot: %+v", s.State())
	}

	s.ticks = ^uint32(0)
	s.HandleTick()
	if s.Mode() != types.ModeActive || s.Ticks() != 0 {
		t.Fatalf("counter at max did not wrap into a missed transition: %+v", s.State())
	}
}

func TestScheduler_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		active := uint32(rapid.IntRange(1, 40).Draw(t, "active"))
		sleep := uint32(rapid.IntRange(1, 40).Draw(t, "sleep"))
		n := rapid.IntRange(0, 400).Draw(t, "ticks")

		s, out := newTestScheduler(active, sleep)
		for i := 0; i < n; i++ {
			prev := s.State()
			fired := s.HandleTick()
			st := s.State()

			if fired != (st.Transitions == prev.Transitions+1) || st.Transitions > prev.Transitions+1 {
				t.Fatalf("tick %d: fired=%v transitions %d -> %d", i, fired, prev.Transitions, st.Transitions)
			}
			if st.Ticks >= st.Threshold {
				t.Fatalf("tick %d: ticks %d >= threshold %d", i, st.Ticks, st.Threshold)
			}
			want := active
			if st.Mode == types.ModeSleeping {
				want = sleep
			}
			if st.Threshold != want {
				t.Fatalf("tick %d: threshold %d in mode %v", i, st.Threshold, st.Mode)
			}
			if !out.allEnabled(st.Mode == types.ModeActive) {
				t.Fatalf("tick %d: output gate disagrees with mode %v", i, st.Mode)
			}
		}
	})
}
