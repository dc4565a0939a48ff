//go:build !rp2040

package hal

import (
	"sync"

	"twinkler-go/errcode"
	"twinkler-go/services/lighting"
	"twinkler-go/types"

	"tinygo.org/x/drivers"
)

// HostI2C implements tinygo drivers.I2C for host-side tests. It records every
// write transfer.
type HostI2C struct {
	mu     sync.Mutex
	Writes [][]byte
	Err    error
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Err != nil {
		return h.Err
	}
	if len(w) > 0 {
		h.Writes = append(h.Writes, append([]byte(nil), w...))
	}
	return nil
}

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// DefaultI2CFactory creates inert host I²C buses "i2c0" and "i2c1".
func DefaultI2CFactory() I2CBusFactory {
	return &hostI2CFactory{
		buses: map[string]drivers.I2C{
			"i2c0": &HostI2C{},
			"i2c1": &HostI2C{},
		},
	}
}

// SetupPins is a no-op on host builds.
func SetupPins(out types.OutputConfig) error { return nil }

func newRP2Output(types.OutputConfig, uint16) (lighting.PwmOutput, error) {
	return nil, errcode.Unsupported
}
