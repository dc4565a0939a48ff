//go:build rp2040

package hal

import (
	"machine"
	"sync"

	"twinkler-go/errcode"
	"twinkler-go/services/lighting"
	"twinkler-go/types"
	"twinkler-go/x/mathx"
	"twinkler-go/x/timex"

	"tinygo.org/x/drivers"
)

// -----------------------------------------------------------------------------
// I²C
// -----------------------------------------------------------------------------

// DefaultI2CFactory configures i2c0 and i2c1 with board-default pins at 400 kHz.
func DefaultI2CFactory() I2CBusFactory {
	f := &rp2I2CFactory{buses: make(map[string]drivers.I2C)}

	b0 := machine.I2C0
	_ = b0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	f.buses["i2c0"] = b0

	b1 := machine.I2C1
	_ = b1.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C1_SDA_PIN,
		SCL:       machine.I2C1_SCL_PIN,
	})
	f.buses["i2c1"] = b1

	return f
}

type rp2I2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *rp2I2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// -----------------------------------------------------------------------------
// GPIO bring-up
// -----------------------------------------------------------------------------

// SetupPins drives every channel pin as a low output so the LEDs stay dark
// until the PWM slices take the pins over.
func SetupPins(out types.OutputConfig) error {
	if out.Driver != types.DriverRP2PWM {
		return nil
	}
	for _, n := range out.Pins {
		if n < 0 || n > 28 {
			return errcode.UnknownPin
		}
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Set(out.ActiveLow)
	}
	return nil
}

// -----------------------------------------------------------------------------
// PWM (RP2040 slices)
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	SetInverting(channel uint8, inverting bool)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// rp2Chan is one pin's view of its slice.
type rp2Chan struct {
	ctrl    pwmCtrl
	chIdx   uint8
	level   uint16
	enabled bool
}

// rp2Output drives logical channels on native PWM slices. Gating is modelled
// as "drive current level" vs "drive 0"; the stored level survives a gate.
type rp2Output struct {
	mu    sync.Mutex
	chans []rp2Chan
	top   uint16
}

func newRP2Output(out types.OutputConfig, top uint16) (lighting.PwmOutput, error) {
	if top == 0 {
		return nil, errcode.New(errcode.InvalidParams, "rp2.pwm", "top")
	}
	period := timex.PeriodFromHz(mathx.Max(out.FreqHz, 1))
	configured := map[uint8]bool{}
	o := &rp2Output{chans: make([]rp2Chan, len(out.Pins)), top: top}

	for i, n := range out.Pins {
		if n < 0 || n > 28 {
			return nil, errcode.UnknownPin
		}
		slice := uint8(n>>1) & 7
		ctrl := pwmGroupBySlice(slice)
		if !configured[slice] {
			if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
				return nil, errcode.Wrap(errcode.Conflict, "rp2.pwm", err)
			}
			configured[slice] = true
		}
		ch, err := ctrl.Channel(machine.Pin(n))
		if err != nil {
			return nil, errcode.Wrap(errcode.UnknownPin, "rp2.pwm", err)
		}
		ctrl.SetInverting(ch, out.ActiveLow)
		ctrl.Set(ch, 0)
		o.chans[i] = rp2Chan{ctrl: ctrl, chIdx: ch}
	}
	return o, nil
}

// caller holds lock
func (o *rp2Output) setHW(c *rp2Chan) {
	var hw uint32
	if c.enabled {
		// Scale from logical [0..top] to hardware [0..Top()].
		hw = uint32(mathx.Clamp(c.level, 0, o.top)) * c.ctrl.Top() / uint32(o.top)
	}
	c.ctrl.Set(c.chIdx, hw)
}

func (o *rp2Output) Set(ch int, level uint16) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ch < 0 || ch >= len(o.chans) {
		return
	}
	c := &o.chans[ch]
	c.level = level
	if c.enabled {
		o.setHW(c)
	}
}

func (o *rp2Output) Enable(ch int)  { o.gate(ch, true) }
func (o *rp2Output) Disable(ch int) { o.gate(ch, false) }

func (o *rp2Output) gate(ch int, on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ch < 0 || ch >= len(o.chans) {
		return
	}
	c := &o.chans[ch]
	c.enabled = on
	o.setHW(c)
}
