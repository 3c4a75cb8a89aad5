package config

import (
	"testing"
	"time"
)

func TestParseFlags_Overrides(t *testing.T) {
	withArgs(t, []string{"server", "-a", ":7777", "-s", "flag-secret", "-t", "5", "-r", "2"})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.EndpointAddrHTTP != ":7777" {
		t.Fatalf("address not overridden: %q", cfg.EndpointAddrHTTP)
	}
	if cfg.SecretKey != "flag-secret" {
		t.Fatalf("secret not overridden: %q", cfg.SecretKey)
	}
	if cfg.AccessTokenValidityDuration != 5*time.Minute {
		t.Fatalf("access validity not overridden: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 2*24*time.Hour {
		t.Fatalf("refresh validity not overridden: %v", cfg.RefreshTokenValidityDuration)
	}
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	withArgs(t, []string{"server", "-c", "somewhere.json", "-a", ":6060"})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.EndpointAddrHTTP != ":6060" {
		t.Fatalf("address not overridden: %q", cfg.EndpointAddrHTTP)
	}
}
