package lighting

import "twinkler-go/types"

// Scheduler is the ACTIVE/SLEEPING state machine. It is not safe for
// concurrent use; the Controller goroutine owns it.
type Scheduler struct {
	osc         *Oscillator
	activeTicks uint32
	sleepTicks  uint32
	mode        types.Mode
	ticks       uint32
	threshold   uint32
	transitions uint32
}

// NewScheduler binds the mode durations to osc. The scheduler starts in no
// particular state; call EnterActive before the first tick.
func NewScheduler(osc *Oscillator, activeTicks, sleepTicks uint32) *Scheduler {
	return &Scheduler{
		osc:         osc,
		activeTicks: activeTicks,
		sleepTicks:  sleepTicks,
	}
}

func (s *Scheduler) Mode() types.Mode  { return s.mode }
func (s *Scheduler) Ticks() uint32     { return s.ticks }
func (s *Scheduler) Threshold() uint32 { return s.threshold }

// EnterActive restaggers the channels, ungates the outputs and starts the
// active period.
func (s *Scheduler) EnterActive() {
	s.osc.Stagger()
	s.osc.Enable()
	s.mode = types.ModeActive
	s.threshold = s.activeTicks
	s.ticks = 0
	s.transitions++
}

// EnterSleeping gates the outputs off and starts the sleep period.
func (s *Scheduler) EnterSleeping() {
	s.osc.Disable()
	s.mode = types.ModeSleeping
	s.threshold = s.sleepTicks
	s.ticks = 0
	s.transitions++
}

// HandleTick counts one tick and fires at most one transition when the
// threshold is reached. The counter saturates at the threshold. Missed ticks
// are not made up.
func (s *Scheduler) HandleTick() bool {
	if s.ticks < s.threshold {
		s.ticks++
	}
	if s.ticks < s.threshold {
		return false
	}
	if s.mode == types.ModeActive {
		s.EnterSleeping()
	} else {
		s.EnterActive()
	}
	return true
}

// State reports the scheduler counters.
func (s *Scheduler) State() types.LightingState {
	return types.LightingState{
		Mode:        s.mode,
		Ticks:       s.ticks,
		Threshold:   s.threshold,
		Transitions: s.transitions,
	}
}
