package lighting

import (
	"context"
	"sync/atomic"
	"time"

	"twinkler-go/types"
	"twinkler-go/x/timex"
)

// Controller runs the foreground cadence loop. It is the only goroutine that
// touches the scheduler and the oscillator; ticks reach it as messages.
type Controller struct {
	osc   *Oscillator
	sched *Scheduler
	sleep PowerSleep
	step  time.Duration

	// OnTransition, if set, is called from the loop after every mode change
	// including the initial entry into ACTIVE.
	OnTransition func(types.LightingState)

	mode  atomic.Uint32
	ticks atomic.Uint32
	steps atomic.Uint32
}

// NewController builds the oscillator and scheduler for cfg on out. cfg must
// already be validated.
func NewController(cfg types.LightingConfig, out PwmOutput, sleep PowerSleep) *Controller {
	osc := NewOscillator(out, cfg.Channels, cfg.DutyMin, cfg.DutyMax)
	return &Controller{
		osc:   osc,
		sched: NewScheduler(osc, cfg.ActiveDuration, cfg.SleepDuration),
		sleep: sleep,
		step:  cfg.StepInterval,
	}
}

// Mode returns the current mode. Safe from any goroutine.
func (c *Controller) Mode() types.Mode { return types.Mode(c.mode.Load()) }

// Ticks returns the tick count in the current mode. Safe from any goroutine.
func (c *Controller) Ticks() uint32 { return c.ticks.Load() }

// Steps returns the number of StepAll batches run so far.
func (c *Controller) Steps() uint32 { return c.steps.Load() }

func (c *Controller) publish(transitioned bool) {
	c.mode.Store(uint32(c.sched.Mode()))
	c.ticks.Store(c.sched.Ticks())
	if transitioned && c.OnTransition != nil {
		st := c.sched.State()
		st.TS = timex.NowMs()
		c.OnTransition(st)
	}
}

// handleTick reports whether the tick put the fixture to sleep.
func (c *Controller) handleTick() bool {
	fired := c.sched.HandleTick()
	c.publish(fired)
	return fired && c.sched.Mode() == types.ModeSleeping
}

// Run enters ACTIVE and loops until ctx is cancelled or ticks is closed.
func (c *Controller) Run(ctx context.Context, ticks TickSource) error {
	src := ticks.Channel()
	timer := timex.StoppedTimer()
	defer timer.Stop()

	c.sched.EnterActive()
	c.publish(true)

	for {
		if c.sched.Mode() == types.ModeSleeping {
			if _, ok := c.sleep.Wait(ctx, src); !ok {
				return ctx.Err()
			}
			c.handleTick()
			continue
		}

		c.osc.StepAll()
		c.steps.Add(1)
		timex.ResetTimer(timer, c.step)

	wait:
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case _, ok := <-src:
				if !ok {
					return nil
				}
				if c.handleTick() {
					break wait
				}
			case <-timer.C:
				break wait
			}
		}
	}
}
