package hal

import (
	"errors"

	"twinkler-go/drivers/pca9632"
	"twinkler-go/errcode"
	"twinkler-go/x/mathx"

	"tinygo.org/x/drivers"
)

// PCA9632Output maps logical channels onto PCA9632 LED outputs. Levels in
// [0, top] are scaled to the chip's 8-bit duty; Enable/Disable switch the
// LEDOUT state between individual PWM and off.
type PCA9632Output struct {
	dev  pca9632.Device
	leds []int
	top  uint16

	// LastErr holds the most recent bus error. The lighting core treats
	// register writes as infallible.
	LastErr error
}

// NewPCA9632Output configures the chip at addr on bus. leds[i] is the LED
// index driven by logical channel i.
func NewPCA9632Output(bus drivers.I2C, addr uint16, leds []int, top uint16, activeLow bool) (*PCA9632Output, error) {
	if top == 0 {
		return nil, errcode.New(errcode.InvalidParams, "pca9632.new", "top")
	}
	for _, l := range leds {
		if l < 0 || l >= pca9632.NumLEDs {
			return nil, errcode.New(errcode.UnknownPin, "pca9632.new", "led index")
		}
	}
	o := &PCA9632Output{
		dev:  pca9632.New(bus),
		leds: append([]int(nil), leds...),
		top:  top,
	}
	if err := o.dev.Configure(pca9632.Config{Address: addr, Invert: activeLow}); err != nil {
		return nil, errcode.Wrap(driverCode(err), "pca9632.configure", err)
	}
	return o, nil
}

func (o *PCA9632Output) scale(level uint16) uint8 {
	return uint8(mathx.MapU16(level, 0, o.top, 0, 255))
}

func (o *PCA9632Output) led(ch int) (int, bool) {
	if ch < 0 || ch >= len(o.leds) {
		return 0, false
	}
	return o.leds[ch], true
}

// driverCode maps PCA9632 driver errors onto error codes.
func driverCode(err error) errcode.Code {
	if errors.Is(err, pca9632.ErrInvalidLED) {
		return errcode.UnknownChannel
	}
	return errcode.Of(err)
}

func (o *PCA9632Output) note(op string, err error) {
	if err != nil {
		o.LastErr = errcode.Wrap(driverCode(err), op, err)
	}
}

func (o *PCA9632Output) Set(ch int, level uint16) {
	if l, ok := o.led(ch); ok {
		o.note("pca9632.set", o.dev.SetPWM(l, o.scale(level)))
	}
}

func (o *PCA9632Output) Enable(ch int) {
	if l, ok := o.led(ch); ok {
		o.note("pca9632.enable", o.dev.SetState(l, pca9632.LEDPWM))
	}
}

func (o *PCA9632Output) Disable(ch int) {
	if l, ok := o.led(ch); ok {
		o.note("pca9632.disable", o.dev.SetState(l, pca9632.LEDOff))
	}
}

// Sleep stops the chip's oscillator. Registers survive, so Sleep(false)
// resumes the previous outputs.
func (o *PCA9632Output) Sleep(on bool) {
	o.note("pca9632.sleep", o.dev.Sleep(on))
}
