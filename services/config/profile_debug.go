//go:build debug

package config

// DefaultProfile is the profile the firmware publishes at boot.
const DefaultProfile = "debug"
