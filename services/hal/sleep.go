package hal

import (
	"context"
	"sync/atomic"

	"twinkler-go/bus"
)

// Sleeper blocks until the next tick. On TinyGo a goroutine parked on a
// channel lets the scheduler idle the core until the timer interrupt behind
// the heartbeat wakes it.
type Sleeper struct {
	// Enter and Exit, if set, run around the wait (e.g. to gate clocks).
	Enter func()
	Exit  func()

	waits atomic.Uint32
}

// Wait implements lighting.PowerSleep.
func (s *Sleeper) Wait(ctx context.Context, ticks <-chan *bus.Message) (*bus.Message, bool) {
	s.waits.Add(1)
	if s.Enter != nil {
		s.Enter()
	}
	if s.Exit != nil {
		defer s.Exit()
	}
	select {
	case <-ctx.Done():
		return nil, false
	case m, ok := <-ticks:
		return m, ok
	}
}

// Waits returns how many times Wait was entered.
func (s *Sleeper) Waits() uint32 { return s.waits.Load() }
