// Command benchsim runs the lighting stack on the host against an in-memory
// PWM and prints the driven levels, so timings can be checked without a board.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"twinkler-go/bus"
	"twinkler-go/services/config"
	"twinkler-go/services/hal"
	"twinkler-go/services/heartbeat"
	"twinkler-go/services/lighting"
	"twinkler-go/types"
)

func main() {
	profile := flag.String("profile", "bench", "embedded config profile")
	every := flag.Duration("every", 250*time.Millisecond, "level print interval")
	runFor := flag.Duration("for", 0, "stop after this long (0 runs until interrupted)")
	trace := flag.Bool("trace", false, "print every level write")
	flag.Parse()

	p, err := config.Load(*profile)
	if err != nil {
		println("[benchsim]", err.Error())
		os.Exit(1)
	}
	if p.Output.Driver != types.DriverHost {
		println("[benchsim] profile", *profile, "drives", p.Output.Driver, "; forcing host output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *runFor)
		defer cancel()
	}
	ctx = config.WithProfile(ctx, *profile)

	b := bus.NewBus(8)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = heartbeat.New(p.Heartbeat.Interval).Start(ctx, b.NewConnection("heartbeat"))

	sleeper := &hal.Sleeper{}
	outputs := &hal.Outputs{Sleeper: sleeper}
	build := func(out types.OutputConfig, cfg types.LightingConfig) (lighting.PwmOutput, error) {
		out.Driver = types.DriverHost
		return outputs.Build(out, cfg)
	}
	svc := lighting.NewService(build, sleeper)
	_ = svc.Start(ctx, b.NewConnection("lighting"))

	var ctrl *lighting.Controller
	select {
	case ctrl = <-svc.Ready():
	case <-ctx.Done():
		println("[benchsim] lighting never started")
		os.Exit(1)
	}
	pwm := outputs.Host
	if *trace {
		pwm.OnSet(func(ch int, level uint16) { println("[benchsim] set ch", ch, level) })
	}

	tk := time.NewTicker(*every)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			println("[benchsim] done after", ctrl.Steps(), "steps")
			return
		case <-tk.C:
			print("[benchsim] ", ctrl.Mode().String(), " t=", ctrl.Ticks())
			for ch := 0; ch < pwm.Len(); ch++ {
				print(" ch", ch, "=", pwm.Output(ch))
			}
			println()
		}
	}
}
