package config

import (
	"math"
	"strconv"
	"time"

	"twinkler-go/errcode"
	"twinkler-go/types"

	"github.com/andreyvit/tinyjson"
)

// decodeJSON turns an embedded JSON profile into a types.Profile without
// reflection. Unknown keys are rejected the same way the YAML path does.
func decodeJSON(raw []byte) (p types.Profile, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errcode.New(errcode.InvalidPayload, "config.json", "malformed document")
		}
	}()

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	root := object{path: "profile"}
	if root.m, _ = val.(map[string]any); root.m == nil {
		return p, errcode.New(errcode.InvalidPayload, "config.json", "profile is not an object")
	}

	if hb, ok := root.section("heartbeat"); ok {
		p.Heartbeat.Interval = hb.duration("interval")
		hb.done()
		root.absorb(hb)
	}
	if l, ok := root.section("lighting"); ok {
		p.Lighting.ActiveDuration = uint32(l.num("active_duration", math.MaxUint32))
		p.Lighting.SleepDuration = uint32(l.num("sleep_duration", math.MaxUint32))
		p.Lighting.DutyMin = uint16(l.num("duty_min", math.MaxUint16))
		p.Lighting.DutyMax = uint16(l.num("duty_max", math.MaxUint16))
		p.Lighting.Period = uint16(l.num("period", math.MaxUint16))
		p.Lighting.Channels = int(l.num("channels", math.MaxInt32))
		p.Lighting.StepInterval = l.duration("step_interval")
		l.done()
		root.absorb(l)
	}
	if o, ok := root.section("output"); ok {
		p.Output.Driver = o.str("driver")
		p.Output.Pins = o.ints("pins")
		p.Output.FreqHz = o.num("freq_hz", math.MaxUint32)
		p.Output.ActiveLow = o.flag("active_low")
		p.Output.I2CBus = o.str("i2c_bus")
		p.Output.Address = uint16(o.num("address", 0x7f))
		o.done()
		root.absorb(o)
	}
	root.done()
	return p, root.err
}

// object walks one JSON object, remembering which keys were read and the
// first problem found.
type object struct {
	path string
	m    map[string]any
	seen map[string]bool
	err  error
}

func (o *object) fail(key, msg string) {
	if o.err == nil {
		o.err = errcode.New(errcode.InvalidPayload, "config.json", o.path+"."+key+": "+msg)
	}
}

func (o *object) take(key string) (any, bool) {
	if o.seen == nil {
		o.seen = map[string]bool{}
	}
	o.seen[key] = true
	v, ok := o.m[key]
	return v, ok
}

func (o *object) section(key string) (*object, bool) {
	v, ok := o.take(key)
	if !ok {
		return nil, false
	}
	m, isObj := v.(map[string]any)
	if !isObj {
		o.fail(key, "not an object")
		return nil, false
	}
	return &object{path: key, m: m}, true
}

func (o *object) absorb(child *object) {
	if o.err == nil {
		o.err = child.err
	}
}

// done flags keys nobody asked for.
func (o *object) done() {
	for k := range o.m {
		if !o.seen[k] {
			o.fail(k, "unknown key")
		}
	}
}

func (o *object) num(key string, limit uint64) uint64 {
	v, ok := o.take(key)
	if !ok {
		return 0
	}
	n, isNum := toInt(v)
	if !isNum || n < 0 || uint64(n) > limit {
		o.fail(key, "not an integer in range")
		return 0
	}
	return uint64(n)
}

func (o *object) ints(key string) []int {
	v, ok := o.take(key)
	if !ok {
		return nil
	}
	arr, isArr := v.([]any)
	if !isArr {
		o.fail(key, "not an array")
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, e := range arr {
		n, isNum := toInt(e)
		if !isNum {
			o.fail(key, "not an integer array")
			return nil
		}
		out = append(out, int(n))
	}
	return out
}

func (o *object) str(key string) string {
	v, ok := o.take(key)
	if !ok {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		o.fail(key, "not a string")
	}
	return s
}

func (o *object) flag(key string) bool {
	v, ok := o.take(key)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		o.fail(key, "not a bool")
	}
	return b
}

// duration accepts "15ms"-style strings.
func (o *object) duration(key string) time.Duration {
	s := o.str(key)
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		o.fail(key, "bad duration")
		return 0
	}
	return d
}

// toInt accepts the integral number shapes a JSON decoder may hand back.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return toInt(float64(n))
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		return i, err == nil
	case interface{ String() string }:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		return i, err == nil
	}
	return 0, false
}
