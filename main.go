package main

import (
	"context"
	"time"

	"twinkler-go/bus"
	"twinkler-go/services/config"
	"twinkler-go/services/hal"
	"twinkler-go/services/heartbeat"
	"twinkler-go/services/lighting"
	"twinkler-go/types"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot, profile", config.DefaultProfile)

	ctx := config.WithProfile(context.Background(), config.DefaultProfile)

	// Park the LED pins dark before anything else runs.
	if p, err := config.Load(config.DefaultProfile); err != nil {
		println("[main] config:", err.Error())
	} else if err := hal.SetupPins(p.Output); err != nil {
		println("[main] pin setup:", err.Error())
	}

	b := bus.NewBus(4)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = heartbeat.New(types.DefaultTickPeriod).Start(ctx, b.NewConnection("heartbeat"))

	sleeper := &hal.Sleeper{}
	outputs := hal.NewOutputs()
	outputs.Sleeper = sleeper
	svc := lighting.NewService(outputs.Build, sleeper)
	_ = svc.Start(ctx, b.NewConnection("lighting"))

	states := b.NewConnection("monitor").Subscribe(lighting.TopicState)
	for m := range states.Channel() {
		if st, ok := m.Payload.(types.LightingState); ok {
			println("[monitor] lighting", st.Mode.String(), "transitions", st.Transitions)
		}
	}
}
