package config

import (
	"context"

	"twinkler-go/bus"
	"twinkler-go/errcode"
	"twinkler-go/types"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
)

type ctxKey string

// CtxProfileKey is the context key holding the profile name to publish.
const CtxProfileKey ctxKey = "profile"

// WithProfile returns a context selecting profile.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, CtxProfileKey, profile)
}

// EmbeddedConfigLookup allows overriding how profiles are resolved.
var EmbeddedConfigLookup = func(profile string) ([]byte, bool) {
	b, ok := embeddedConfigs[profile]
	return b, ok
}

// decodeYAML is installed on host builds only.
var decodeYAML func(raw []byte) (types.Profile, error)

// isJSON reports whether raw starts with an object.
func isJSON(raw []byte) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c == '{'
	}
	return false
}

// Load decodes and validates the named embedded profile. JSON profiles are
// decoded with tinyjson; anything else is YAML. Unknown keys are rejected so
// a typo cannot silently fall back to a zero value.
func Load(profile string) (types.Profile, error) {
	var p types.Profile
	raw, ok := EmbeddedConfigLookup(profile)
	if !ok || len(raw) == 0 {
		return p, errcode.New(errcode.NotConfigured, "config.load", "no embedded profile "+profile)
	}
	var err error
	switch {
	case isJSON(raw):
		p, err = decodeJSON(raw)
	case decodeYAML != nil:
		p, err = decodeYAML(raw)
	default:
		err = errcode.New(errcode.Unsupported, "config.load", "yaml profile "+profile)
	}
	if err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig loads the profile named in ctx and publishes each section as
// a retained message.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	profile, _ := ctx.Value(CtxProfileKey).(string)
	if profile == "" {
		return errcode.New(errcode.InvalidParams, "config.publish", "missing profile in context")
	}
	p, err := Load(profile)
	if err != nil {
		return err
	}

	sections := []struct {
		key string
		val any
	}{
		{"heartbeat", p.Heartbeat},
		{"lighting", p.Lighting},
		{"output", p.Output},
	}
	for _, sec := range sections {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, sec.key), sec.val, true))
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config] publish failed:", err.Error())
		}
	}()
}
