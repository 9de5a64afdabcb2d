package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "", c.SecretKey, "the signing secret must never have a default")
	assert.Equal(t, 1*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, uint32(1), c.HashTimeCost)
	assert.Equal(t, uint32(64*1024), c.HashMemoryKiB)
	assert.Equal(t, uint8(4), c.HashParallelism)
	assert.Equal(t, uint32(32), c.HashKeyLength)
}

func TestValidate(t *testing.T) {
	newValid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.SecretKey = "k"
		return c
	}

	require.NoError(t, newValid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret", func(c *Config) { c.SecretKey = "" }},
		{"zero validity", func(c *Config) { c.AccessTokenValidityDuration = 0 }},
		{"negative validity", func(c *Config) { c.AccessTokenValidityDuration = -time.Minute }},
		{"zero time cost", func(c *Config) { c.HashTimeCost = 0 }},
		{"zero memory", func(c *Config) { c.HashMemoryKiB = 0 }},
		{"zero parallelism", func(c *Config) { c.HashParallelism = 0 }},
		{"zero key length", func(c *Config) { c.HashKeyLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newValid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
