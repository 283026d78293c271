// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

// Package config loads the optional YAML configuration file. Command line
// flags override anything set here.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Connection selects how the controller is reached.
type Connection struct {
	// Type is "serial", "tcp" or "websocket".
	Type string `yaml:"type"`

	// Serial settings.
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`

	// TCP settings (serial-over-TCP bridges like ser2net).
	Host    string `yaml:"host"`
	TCPPort int    `yaml:"tcp_port"`

	// WebSocket bridge URL.
	URL string `yaml:"url"`
}

// Config is the top-level configuration.
type Config struct {
	Connection Connection    `yaml:"connection"`
	Timeout    time.Duration `yaml:"timeout"`
	Retries    int           `yaml:"retries"`

	// Firmware pins the register layout and skips the version probe.
	Firmware string `yaml:"firmware"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Connection: Connection{
			Type:    "serial",
			Port:    "/dev/ttyUSB0",
			Baud:    115200,
			TCPPort: 2000,
		},
		Timeout: 2 * time.Second,
		Retries: 3,
	}
}

// Load reads a YAML config file on top of the defaults. A missing path is
// not an error when it is the implicit default location.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Connection.Type {
	case "", "serial", "tcp", "websocket":
	default:
		return fmt.Errorf("unknown connection type %q", c.Connection.Type)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	return nil
}
