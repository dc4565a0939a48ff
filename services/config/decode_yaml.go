//go:build !rp2040

package config

import (
	"bytes"

	"twinkler-go/errcode"
	"twinkler-go/types"

	"gopkg.in/yaml.v3"
)

// YAML profiles are a host convenience; the firmware image only carries the
// JSON decoder.
func init() { decodeYAML = decodeYAMLProfile }

func decodeYAMLProfile(raw []byte) (types.Profile, error) {
	var p types.Profile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, errcode.Wrap(errcode.InvalidPayload, "config.yaml", err)
	}
	return p, nil
}
