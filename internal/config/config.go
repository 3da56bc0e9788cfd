// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Host string
	Port string

	// Directory served as the site's content root.
	ContentRoot string

	// Expose the Prometheus /metrics endpoint.
	MetricsEnabled bool

	// HTTP server timeouts.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func Load() Config {
	cfg := Config{
		Host: envOr("WTF_HOST", "0.0.0.0"),
		Port: envOr("WTF_PORT", "8080"),

		ContentRoot: envOr("WTF_CONTENT_ROOT", "."),

		MetricsEnabled: envBool("WTF_METRICS", true),

		ReadTimeout:  envDuration("WTF_READ_TIMEOUT", 30*time.Second),
		WriteTimeout: envDuration("WTF_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  envDuration("WTF_IDLE_TIMEOUT", 60*time.Second),
	}

	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 60 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentRoot == "" {
		return fmt.Errorf("content root is required")
	}
	info, err := os.Stat(c.ContentRoot)
	if err != nil {
		return fmt.Errorf("content root %q: %w", c.ContentRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("content root %q is not a directory", c.ContentRoot)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
