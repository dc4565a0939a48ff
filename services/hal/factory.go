package hal

import (
	"twinkler-go/drivers/pca9632"
	"twinkler-go/errcode"
	"twinkler-go/services/lighting"
	"twinkler-go/types"

	"tinygo.org/x/drivers"
)

// I2CBusFactory resolves configured I2C buses by id ("i2c0", "i2c1").
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// Outputs builds PWM backends for the lighting service.
type Outputs struct {
	I2C I2CBusFactory

	// Host receives the recorder built for the host driver, if any.
	Host *HostPWM

	// Sleeper, if set, gets power hooks for backends that have a low-power
	// state. It must be the PowerSleep handed to the lighting service.
	Sleeper *Sleeper
}

// NewOutputs returns a factory over the platform's default I2C buses.
func NewOutputs() *Outputs {
	return &Outputs{I2C: DefaultI2CFactory()}
}

// Build implements lighting.OutputFactory.
func (f *Outputs) Build(out types.OutputConfig, cfg types.LightingConfig) (lighting.PwmOutput, error) {
	switch out.Driver {
	case types.DriverHost:
		f.Host = NewHostPWM(cfg.Channels)
		return f.Host, nil

	case types.DriverPCA9632:
		if f.I2C == nil {
			return nil, errcode.New(errcode.Unsupported, "hal.outputs", "no i2c")
		}
		bus, ok := f.I2C.ByID(out.I2CBus)
		if !ok {
			return nil, errcode.New(errcode.InvalidParams, "hal.outputs", "unknown i2c bus "+out.I2CBus)
		}
		addr := out.Address
		if addr == 0 {
			addr = pca9632.Address
		}
		o, err := NewPCA9632Output(bus, addr, out.Pins, cfg.Period, out.ActiveLow)
		if err != nil {
			return nil, err
		}
		if f.Sleeper != nil {
			f.Sleeper.Enter = func() { o.Sleep(true) }
			f.Sleeper.Exit = func() { o.Sleep(false) }
		}
		return o, nil

	case types.DriverRP2PWM:
		return newRP2Output(out, cfg.Period)

	default:
		return nil, errcode.New(errcode.Unsupported, "hal.outputs", out.Driver)
	}
}
