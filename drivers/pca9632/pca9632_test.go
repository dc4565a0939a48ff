package pca9632

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*fakeI2C)(nil)

type write struct {
	addr     uint16
	reg, val uint8
}

type fakeI2C struct {
	writes []write
	err    error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if len(w) != 2 || len(r) != 0 {
		return errors.New("unexpected transfer shape")
	}
	f.writes = append(f.writes, write{addr, w[0], w[1]})
	return nil
}

func (f *fakeI2C) last() write { return f.writes[len(f.writes)-1] }

func TestConfigure(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus)
	if err := d.Configure(Config{Address: 0x63, Invert: true}); err != nil {
		t.Fatal(err)
	}
	want := []write{
		{0x63, regMode1, mode1AllCall},
		{0x63, regMode2, mode2OutDrv | mode2Invert},
		{0x63, regLEDOut, 0},
	}
	if len(bus.writes) != len(want) {
		t.Fatalf("got %d writes, want %d: %+v", len(bus.writes), len(want), bus.writes)
	}
	for i := range want {
		if bus.writes[i] != want[i] {
			t.Fatalf("write %d = %+v, want %+v", i, bus.writes[i], want[i])
		}
	}
}

func TestSetPWM(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus)
	if err := d.SetPWM(2, 0x80); err != nil {
		t.Fatal(err)
	}
	if got := bus.last(); got != (write{Address, regPWM0 + 2, 0x80}) {
		t.Fatalf("last write = %+v", got)
	}
	if err := d.SetPWM(4, 1); !errors.Is(err, ErrInvalidLED) {
		t.Fatalf("SetPWM(4) = %v, want ErrInvalidLED", err)
	}
}

func TestSetState_ShadowsLEDOUT(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus)

	if err := d.SetState(0, LEDPWM); err != nil {
		t.Fatal(err)
	}
	if err := d.SetState(2, LEDPWM); err != nil {
		t.Fatal(err)
	}
	if got := bus.last(); got.reg != regLEDOut || got.val != 0b00100010 {
		t.Fatalf("LEDOUT = %08b, want 00100010", got.val)
	}
	if d.State(2) != LEDPWM || d.State(1) != LEDOff {
		t.Fatal("shadow state mismatch")
	}

	n := len(bus.writes)
	if err := d.SetState(2, LEDPWM); err != nil {
		t.Fatal(err)
	}
	if len(bus.writes) != n {
		t.Fatal("unchanged state should not write")
	}

	if err := d.SetState(0, LEDOff); err != nil {
		t.Fatal(err)
	}
	if got := bus.last(); got.val != 0b00100000 {
		t.Fatalf("LEDOUT = %08b, want 00100000", got.val)
	}
}

func TestSetState_ErrorKeepsShadow(t *testing.T) {
	bus := &fakeI2C{err: errors.New("nack")}
	d := New(bus)
	if err := d.SetState(1, LEDOn); err == nil {
		t.Fatal("expected bus error")
	}
	if d.State(1) != LEDOff {
		t.Fatal("shadow updated despite failed write")
	}
}

func TestSleepWake(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus)
	if err := d.Sleep(true); err != nil {
		t.Fatal(err)
	}
	if got := bus.last(); got.reg != regMode1 || got.val != mode1AllCall|mode1Sleep {
		t.Fatalf("sleep wrote %+v", got)
	}
	if err := d.Sleep(false); err != nil {
		t.Fatal(err)
	}
	if got := bus.last(); got.reg != regMode1 || got.val != mode1AllCall {
		t.Fatalf("wake wrote %+v", got)
	}
}
