package types

import "time"

// ------------------------
// Reference constants
// ------------------------

const (
	// Tick counts are whole heartbeat periods (1 tick ≈ 1 s).
	ProductionActiveTicks uint32 = 21600 // 6 h
	ProductionSleepTicks  uint32 = 64800 // 18 h
	DebugActiveTicks      uint32 = 15
	DebugSleepTicks       uint32 = 5

	DefaultPeriod       uint16 = 100
	DefaultDutyMax      uint16 = DefaultPeriod
	DefaultDutyMin      uint16 = 5
	DefaultChannels            = 3
	MaxChannels                = 4
	DefaultStepInterval        = 15 * time.Millisecond
	DefaultTickPeriod          = time.Second
)

// ------------------------
// Mode / direction
// ------------------------

// Mode is the fixture operating mode.
type Mode uint8

const (
	ModeActive   Mode = iota // lights breathing
	ModeSleeping             // outputs gated off, processor idle
)

func (m Mode) String() string {
	switch m {
	case ModeActive:
		return "active"
	case ModeSleeping:
		return "sleeping"
	default:
		return "unknown"
	}
}

// Direction of a channel's triangle wave.
type Direction uint8

const (
	Raising Direction = iota
	Sinking
)

func (d Direction) String() string {
	if d == Raising {
		return "raising"
	}
	return "sinking"
}

// ------------------------
// Bus payloads
// ------------------------

// Tick is published by the heartbeat once per period.
type Tick struct {
	Seq uint32 `json:"seq"`
	TS  int64  `json:"ts_ms"`
}

// ChannelState is a snapshot of one output channel.
type ChannelState struct {
	Amplitude uint16    `json:"amplitude"`
	Direction Direction `json:"direction"`
}

// LightingState is published retained on lighting/state after every
// mode transition.
type LightingState struct {
	Mode        Mode   `json:"mode"`
	Ticks       uint32 `json:"ticks"`
	Threshold   uint32 `json:"threshold"`
	Transitions uint32 `json:"transitions"`
	TS          int64  `json:"ts_ms"`
}
