package hal

import "sync"

// HostPWM is an in-memory PWM output for host builds and tests. It records
// the last level and gate of every channel.
type HostPWM struct {
	mu      sync.Mutex
	level   []uint16
	enabled []bool
	sets    int
	onSet   func(ch int, level uint16)
}

// NewHostPWM returns a recorder for n channels, all gated off at level 0.
func NewHostPWM(n int) *HostPWM {
	return &HostPWM{
		level:   make([]uint16, n),
		enabled: make([]bool, n),
	}
}

// OnSet registers a hook called after every Set.
func (h *HostPWM) OnSet(fn func(ch int, level uint16)) {
	h.mu.Lock()
	h.onSet = fn
	h.mu.Unlock()
}

func (h *HostPWM) Set(ch int, level uint16) {
	h.mu.Lock()
	if ch < 0 || ch >= len(h.level) {
		h.mu.Unlock()
		return
	}
	h.level[ch] = level
	h.sets++
	fn := h.onSet
	h.mu.Unlock()
	if fn != nil {
		fn(ch, level)
	}
}

func (h *HostPWM) Enable(ch int)  { h.gate(ch, true) }
func (h *HostPWM) Disable(ch int) { h.gate(ch, false) }

func (h *HostPWM) gate(ch int, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch < 0 || ch >= len(h.enabled) {
		return
	}
	h.enabled[ch] = on
}

// Level returns the last level written to ch.
func (h *HostPWM) Level(ch int) uint16 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level[ch]
}

// Enabled reports whether ch is ungated.
func (h *HostPWM) Enabled(ch int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enabled[ch]
}

// Output is the level actually driven: the stored level when enabled, else 0.
func (h *HostPWM) Output(ch int) uint16 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.enabled[ch] {
		return 0
	}
	return h.level[ch]
}

// Sets returns the number of Set calls.
func (h *HostPWM) Sets() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sets
}

// Len returns the number of channels.
func (h *HostPWM) Len() int { return len(h.level) }
