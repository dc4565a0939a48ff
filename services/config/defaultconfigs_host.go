//go:build !rp2040

package config

// Host simulation with the debug schedule.
const cfgBench = `
heartbeat:
  interval: 1s
lighting:
  active_duration: 15
  sleep_duration: 5
  duty_min: 5
  duty_max: 100
  period: 100
  channels: 3
  step_interval: 15ms
output:
  driver: host
`

func init() { embeddedConfigs["bench"] = []byte(cfgBench) }
