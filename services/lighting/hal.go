package lighting

import (
	"context"

	"twinkler-go/bus"
)

// PwmOutput is the per-channel pulse-width capability supplied by the HAL.
// Amplitudes are in [0, period].
type PwmOutput interface {
	Set(channel int, amplitude uint16)
	Enable(channel int)
	Disable(channel int)
}

// TickSource delivers one message per tick period. *bus.Subscription
// satisfies it.
type TickSource interface {
	Channel() <-chan *bus.Message
}

// PowerSleep blocks the caller in the lowest available power state until the
// next tick arrives on ticks, and returns that tick. It reports false when ctx
// is cancelled or ticks is closed.
type PowerSleep interface {
	Wait(ctx context.Context, ticks <-chan *bus.Message) (*bus.Message, bool)
}
