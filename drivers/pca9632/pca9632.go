// Package pca9632 drives the NXP PCA9632 4-channel I2C LED controller.
//
// Each LED output has an 8-bit PWM register and a 2-bit driver state in
// LEDOUT (off, fully on, individual PWM, individual+group PWM). The driver
// keeps a shadow of LEDOUT so per-LED state changes are a single register
// write.
package pca9632

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Default I2C address (A0..A1 tied low on the 8-pin package).
const Address = 0x62

// Registers.
const (
	regMode1  = 0x00
	regMode2  = 0x01
	regPWM0   = 0x02
	regLEDOut = 0x08
)

// MODE1/MODE2 bits.
const (
	mode1Sleep   = 0x10
	mode1AllCall = 0x01
	mode2Invert  = 0x10
	mode2OutDrv  = 0x04 // totem pole
)

// LED driver states in LEDOUT.
type LEDState uint8

const (
	LEDOff      LEDState = 0
	LEDOn       LEDState = 1
	LEDPWM      LEDState = 2
	LEDPWMGroup LEDState = 3
)

// Number of LED outputs.
const NumLEDs = 4

var (
	ErrInvalidLED = errors.New("pca9632: led out of range")
)

// Config controls the output stage. All fields are optional.
type Config struct {
	// Address defaults to 0x62 if zero.
	Address uint16
	// Invert output polarity (for LEDs wired to VDD through an external driver).
	Invert bool
	// OpenDrain selects open-drain outputs instead of totem pole.
	OpenDrain bool
}

// Device wraps an I2C connection to a PCA9632.
type Device struct {
	bus     drivers.I2C
	Address uint16

	ledout uint8
	buf    [2]byte
}

// New creates a new PCA9632 connection. The I2C bus must already be
// configured. It does not touch the device.
func New(bus drivers.I2C) Device {
	return Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure wakes the oscillator, sets the output stage and turns every LED
// off.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	if err := d.write(regMode1, mode1AllCall); err != nil {
		return err
	}
	var m2 uint8
	if !cfg.OpenDrain {
		m2 |= mode2OutDrv
	}
	if cfg.Invert {
		m2 |= mode2Invert
	}
	if err := d.write(regMode2, m2); err != nil {
		return err
	}
	d.ledout = 0
	return d.write(regLEDOut, 0)
}

// SetPWM writes the individual duty cycle (0..255) of led.
func (d *Device) SetPWM(led int, duty uint8) error {
	if led < 0 || led >= NumLEDs {
		return ErrInvalidLED
	}
	return d.write(regPWM0+uint8(led), duty)
}

// SetState changes the driver state of led in LEDOUT.
func (d *Device) SetState(led int, st LEDState) error {
	if led < 0 || led >= NumLEDs {
		return ErrInvalidLED
	}
	shift := uint(led) * 2
	v := d.ledout&^(0x3<<shift) | uint8(st&0x3)<<shift
	if v == d.ledout {
		return nil
	}
	if err := d.write(regLEDOut, v); err != nil {
		return err
	}
	d.ledout = v
	return nil
}

// State returns the shadowed driver state of led.
func (d *Device) State(led int) LEDState {
	if led < 0 || led >= NumLEDs {
		return LEDOff
	}
	return LEDState(d.ledout>>(uint(led)*2)) & 0x3
}

// Sleep stops the internal oscillator (outputs off, registers retained).
func (d *Device) Sleep(on bool) error {
	var v uint8 = mode1AllCall
	if on {
		v |= mode1Sleep
	}
	return d.write(regMode1, v)
}

func (d *Device) write(reg, val uint8) error {
	d.buf[0], d.buf[1] = reg, val
	return d.bus.Tx(d.Address, d.buf[:], nil)
}
