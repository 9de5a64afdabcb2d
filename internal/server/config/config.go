// Package config handles configuration for the server component. Values are
// applied in layers: compiled defaults, then an optional JSON file, then
// environment variables, then command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the authentication server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing tokens (HS256). There is no default;
//     startup fails unless one is supplied.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - HashTimeCost / HashMemoryKiB / HashParallelism / HashKeyLength: argon2id
//     work factor for password hashing.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	HashTimeCost                uint32
	HashMemoryKiB               uint32
	HashParallelism             uint8
	HashKeyLength               uint32
}

// LoadDefaults populates Config with development defaults. SecretKey is left
// empty on purpose: tokens signed with a well-known key are forgeable, so the
// secret must always come from the deployment.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.HashTimeCost = 1
	c.HashMemoryKiB = 64 * 1024
	c.HashParallelism = 4
	c.HashKeyLength = 32
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects configurations that cannot serve safely.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is required (flag -s, env AUTHKEEP_SECRET_KEY, or config file)")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return errors.New("access token validity duration must be positive")
	}
	if c.HashTimeCost == 0 || c.HashMemoryKiB == 0 || c.HashParallelism == 0 || c.HashKeyLength == 0 {
		return errors.New("argon2 parameters must all be positive")
	}
	return nil
}
