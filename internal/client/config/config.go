// Package config handles configuration for the client component.
package config

import (
	"flag"
	"os"

	"github.com/authkeep/authkeep/internal/flagx"
)

// Config holds runtime settings for the interactive client.
type Config struct {
	ServerAddr string
}

func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
}

// LoadConfig builds a Config from defaults overlaid with command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

// parseFlags reads the -a flag (server base URL), ignoring flags owned by
// other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
