package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: profile name (same value placed in ctx under CtxProfileKey)
// Val: raw JSON for that profile
// -----------------------------------------------------------------------------

// Three channels on GP3..GP5, 6 h on / 18 h off.
const cfgProduction = `{
  "heartbeat": {
    "interval": "1s"
  },
  "lighting": {
    "active_duration": 21600,
    "sleep_duration": 64800,
    "duty_min": 5,
    "duty_max": 100,
    "period": 100,
    "channels": 3,
    "step_interval": "15ms"
  },
  "output": {
    "driver": "rp2_pwm",
    "pins": [3, 4, 5],
    "freq_hz": 1000
  }
}`

// Bench timings: 15 s on / 5 s off.
const cfgDebug = `{
  "heartbeat": {
    "interval": "1s"
  },
  "lighting": {
    "active_duration": 15,
    "sleep_duration": 5,
    "duty_min": 5,
    "duty_max": 100,
    "period": 100,
    "channels": 3,
    "step_interval": "15ms"
  },
  "output": {
    "driver": "rp2_pwm",
    "pins": [3, 4, 5],
    "freq_hz": 1000
  }
}`

// Same schedule as production on a PCA9632 at 0x62 (98) on i2c0.
const cfgPCA9632 = `{
  "heartbeat": {
    "interval": "1s"
  },
  "lighting": {
    "active_duration": 21600,
    "sleep_duration": 64800,
    "duty_min": 5,
    "duty_max": 100,
    "period": 100,
    "channels": 3,
    "step_interval": "15ms"
  },
  "output": {
    "driver": "pca9632",
    "pins": [0, 1, 2],
    "i2c_bus": "i2c0",
    "address": 98
  }
}`

var embeddedConfigs = map[string][]byte{
	"production": []byte(cfgProduction),
	"debug":      []byte(cfgDebug),
	"pca9632":    []byte(cfgPCA9632),
}
