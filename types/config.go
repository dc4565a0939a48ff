package types

import (
	"time"

	"twinkler-go/errcode"
	"twinkler-go/x/mathx"
)

// Configuration documents published under config/<key>.

// LightingConfig holds the oscillator bounds and mode durations.
type LightingConfig struct {
	ActiveDuration uint32        `yaml:"active_duration" json:"active_duration"` // ticks
	SleepDuration  uint32        `yaml:"sleep_duration" json:"sleep_duration"`   // ticks
	DutyMin        uint16        `yaml:"duty_min" json:"duty_min"`
	DutyMax        uint16        `yaml:"duty_max" json:"duty_max"`
	Period         uint16        `yaml:"period" json:"period"`
	Channels       int           `yaml:"channels" json:"channels"`
	StepInterval   time.Duration `yaml:"step_interval" json:"step_interval"`
}

// HeartbeatConfig controls the tick source.
type HeartbeatConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// Profile is one complete embedded configuration.
type Profile struct {
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Output    OutputConfig    `yaml:"output"`
}

// ProductionLighting returns the 6 h / 18 h schedule.
func ProductionLighting() LightingConfig {
	return LightingConfig{
		ActiveDuration: ProductionActiveTicks,
		SleepDuration:  ProductionSleepTicks,
		DutyMin:        DefaultDutyMin,
		DutyMax:        DefaultDutyMax,
		Period:         DefaultPeriod,
		Channels:       DefaultChannels,
		StepInterval:   DefaultStepInterval,
	}
}

// DebugLighting returns the 15 s / 5 s bench schedule.
func DebugLighting() LightingConfig {
	c := ProductionLighting()
	c.ActiveDuration = DebugActiveTicks
	c.SleepDuration = DebugSleepTicks
	return c
}

func invalid(field, msg string) error {
	return errcode.New(errcode.InvalidParams, "config."+field, msg)
}

// Validate checks the bounds the oscillator relies on. DutyMin must stay above
// the off level and DutyMax must equal the PWM period.
func (c LightingConfig) Validate() error {
	switch {
	case !mathx.Between(c.Channels, 1, MaxChannels):
		return invalid("channels", "out of range")
	case c.Period == 0:
		return invalid("period", "must be > 0")
	case c.DutyMax != c.Period:
		return invalid("duty_max", "must equal period")
	case c.DutyMin == 0:
		return invalid("duty_min", "must be above off level")
	case c.DutyMin >= c.DutyMax:
		return invalid("duty_min", "must be below duty_max")
	case c.DutyMax/uint16(c.Channels) < c.DutyMin:
		return invalid("duty_min", "above first stagger level")
	case c.ActiveDuration == 0:
		return invalid("active_duration", "must be > 0")
	case c.SleepDuration == 0:
		return invalid("sleep_duration", "must be > 0")
	case c.StepInterval <= 0:
		return invalid("step_interval", "must be > 0")
	}
	return nil
}

// Validate checks the output section against the lighting channel count.
func (c OutputConfig) Validate(channels int) error {
	switch c.Driver {
	case DriverRP2PWM, DriverPCA9632, DriverHost:
	default:
		return invalid("output.driver", "unknown driver "+c.Driver)
	}
	if c.Driver != DriverHost && len(c.Pins) != channels {
		return invalid("output.pins", "one pin per channel required")
	}
	return nil
}

// Validate checks every section and the cross-section constraint that the
// step interval is much shorter than the tick period.
func (p Profile) Validate() error {
	if err := p.Lighting.Validate(); err != nil {
		return err
	}
	if p.Heartbeat.Interval <= 0 {
		return invalid("heartbeat.interval", "must be > 0")
	}
	if p.Lighting.StepInterval >= p.Heartbeat.Interval {
		return invalid("step_interval", "must be shorter than heartbeat interval")
	}
	return p.Output.Validate(p.Lighting.Channels)
}
