package lighting

import (
	"context"

	"twinkler-go/bus"
	"twinkler-go/errcode"
	"twinkler-go/services/heartbeat"
	"twinkler-go/types"
)

var (
	topicConfigLighting = bus.T("config", "lighting")
	topicConfigOutput   = bus.T("config", "output")
	TopicState          = bus.T("lighting", "state")
)

// OutputFactory brings up the PWM backend described by out for cfg.
type OutputFactory func(out types.OutputConfig, cfg types.LightingConfig) (PwmOutput, error)

// Service waits for its configuration on the bus, brings up the outputs and
// runs the controller.
type Service struct {
	newOutput OutputFactory
	sleep     PowerSleep

	ready chan *Controller
}

func NewService(newOutput OutputFactory, sleep PowerSleep) *Service {
	return &Service{
		newOutput: newOutput,
		sleep:     sleep,
		ready:     make(chan *Controller, 1),
	}
}

// Ready delivers the controller once it is running.
func (s *Service) Ready() <-chan *Controller { return s.ready }

// awaitConfig blocks until both config/lighting and config/output arrived.
// Later updates are ignored: the profile is fixed for the life of the process.
func awaitConfig(ctx context.Context, conn *bus.Connection) (types.LightingConfig, types.OutputConfig, error) {
	lsub := conn.Subscribe(topicConfigLighting)
	osub := conn.Subscribe(topicConfigOutput)
	defer conn.Unsubscribe(lsub)
	defer conn.Unsubscribe(osub)

	var (
		lc           types.LightingConfig
		oc           types.OutputConfig
		haveL, haveO bool
	)
	for !haveL || !haveO {
		select {
		case <-ctx.Done():
			return lc, oc, ctx.Err()
		case m := <-lsub.Channel():
			v, ok := m.Payload.(types.LightingConfig)
			if !ok {
				return lc, oc, errcode.New(errcode.InvalidPayload, "lighting.config", "config/lighting")
			}
			lc, haveL = v, true
		case m := <-osub.Channel():
			v, ok := m.Payload.(types.OutputConfig)
			if !ok {
				return lc, oc, errcode.New(errcode.InvalidPayload, "lighting.config", "config/output")
			}
			oc, haveO = v, true
		}
	}
	if err := lc.Validate(); err != nil {
		return lc, oc, err
	}
	if err := oc.Validate(lc.Channels); err != nil {
		return lc, oc, err
	}
	return lc, oc, nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	lc, oc, err := awaitConfig(ctx, conn)
	if err != nil {
		println("[lighting] config error:", err.Error())
		return
	}
	out, err := s.newOutput(oc, lc)
	if err != nil {
		println("[lighting] output bring-up failed:", err.Error())
		return
	}

	ticks := conn.Subscribe(heartbeat.TopicTick)
	defer conn.Unsubscribe(ticks)

	ctrl := NewController(lc, out, s.sleep)
	ctrl.OnTransition = func(st types.LightingState) {
		println("[lighting] mode", st.Mode.String(), "for", st.Threshold, "ticks")
		conn.Publish(conn.NewMessage(TopicState, st, true))
	}
	s.ready <- ctrl

	println("[lighting] running", lc.Channels, "channels on", oc.Driver)
	if err := ctrl.Run(ctx, ticks); err != nil {
		println("[lighting] stopped:", err.Error())
	}
}

// Start launches the service loop in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
