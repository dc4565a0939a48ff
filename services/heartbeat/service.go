package heartbeat

import (
	"context"
	"time"

	"twinkler-go/bus"
	"twinkler-go/types"
	"twinkler-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	TopicTick            = bus.T("heartbeat", "tick")
)

// Service is the fixture's tick source: one non-retained types.Tick on
// heartbeat/tick per interval. Publishing never blocks; a slow consumer loses
// the oldest queued ticks.
type Service struct {
	interval time.Duration
}

// New returns a heartbeat that ticks every interval until config/heartbeat
// says otherwise. A non-positive interval means types.DefaultTickPeriod.
func New(interval time.Duration) *Service {
	if interval <= 0 {
		interval = types.DefaultTickPeriod
	}
	return &Service{interval: interval}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	var seq uint32
	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			seq++
			conn.Publish(conn.NewMessage(TopicTick, types.Tick{Seq: seq, TS: timex.NowMs()}, false))
		case msg := <-cfgSub.Channel():
			cfg, ok := msg.Payload.(types.HeartbeatConfig)
			if !ok || cfg.Interval <= 0 || cfg.Interval == s.interval {
				continue
			}
			s.interval = cfg.Interval
			tick.Reset(s.interval)
			println("[heartbeat] interval set to", s.interval.String())
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
