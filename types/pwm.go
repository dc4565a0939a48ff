package types

// ------------------------
// PWM output
// ------------------------

// Output drivers.
const (
	DriverRP2PWM  = "rp2_pwm" // native PWM slices
	DriverPCA9632 = "pca9632" // I2C LED controller
	DriverHost    = "host"    // in-memory recorder (host builds, bench)
)

// OutputConfig selects and parameterises the PWM backend.
type OutputConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	// Pins are GPIO numbers for rp2_pwm or LED indices (0..3) for pca9632.
	Pins      []int  `yaml:"pins" json:"pins"`
	FreqHz    uint64 `yaml:"freq_hz" json:"freq_hz,omitempty"`
	ActiveLow bool   `yaml:"active_low" json:"active_low"`
	I2CBus    string `yaml:"i2c_bus" json:"i2c_bus,omitempty"`
	Address   uint16 `yaml:"address" json:"address,omitempty"`
}
