package config

import (
	"os"
	"time"
)

// Environment variable names understood by parseEnv.
const (
	envEndpointAddr  = "AUTHKEEP_ADDRESS"
	envSecretKey     = "AUTHKEEP_SECRET_KEY"
	envTokenValidity = "AUTHKEEP_TOKEN_VALIDITY"
)

// parseEnv overlays Config fields from the environment. Values set here can
// still be overridden by command-line flags. AUTHKEEP_TOKEN_VALIDITY accepts
// time.ParseDuration syntax ("1h", "30m"); unparsable values are ignored.
func parseEnv(config *Config) {
	if v := os.Getenv(envEndpointAddr); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv(envSecretKey); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv(envTokenValidity); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
}
