package config

import (
	"encoding/json"
	"os"

	"github.com/authkeep/authkeep/internal/flagx"
	"github.com/authkeep/authkeep/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file. It uses
// timex.Duration for interval fields so files can say "1h" as well as raw
// nanoseconds. After unmarshalling, non-zero fields are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	HashTimeCost                uint32         `json:"hash_time_cost"`
	HashMemoryKiB               uint32         `json:"hash_memory_kib"`
	HashParallelism             uint8          `json:"hash_parallelism"`
	HashKeyLength               uint32         `json:"hash_key_length"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. A missing flag means no file is loaded; an
// unreadable or invalid file panics, since serving with half-applied
// configuration is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.HashTimeCost != 0 {
		config.HashTimeCost = c.HashTimeCost
	}
	if c.HashMemoryKiB != 0 {
		config.HashMemoryKiB = c.HashMemoryKiB
	}
	if c.HashParallelism != 0 {
		config.HashParallelism = c.HashParallelism
	}
	if c.HashKeyLength != 0 {
		config.HashKeyLength = c.HashKeyLength
	}
}
