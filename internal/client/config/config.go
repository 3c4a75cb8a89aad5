// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/avolkov/pdfchat/internal/flagx"
)

type Config struct {
	ServerEndpointAddr string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8000"
}

func parseEnv(c *Config) {
	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok {
		c.ServerEndpointAddr = v
	}
}

func parseFlags(c *Config) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&c.ServerEndpointAddr, "s", c.ServerEndpointAddr, "server base URL")

	args := flagx.FilterArgs(os.Args[1:], []string{"-s"})
	_ = fs.Parse(args)
}

// LoadConfig builds a Config from defaults, environment variables, and
// command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
