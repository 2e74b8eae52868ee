package config

import "strings"

// Environment constants
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsProductionLike reports whether env is staging or production. Those
// environments refuse development secrets and localhost brokers.
func IsProductionLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == EnvStaging || env == EnvProduction
}

// IsProductionLike reports whether the server runs in staging or production
func (c *ServerConfig) IsProductionLike() bool {
	return IsProductionLike(c.Environment)
}
