// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/internal/config"
	"github.com/konstantinvogel/hass-thz/internal/logging"
)

var (
	// Config file
	configPath string

	// Serial connection flags
	portName string
	baudRate int

	// TCP bridge flags (ser2net and friends)
	tcpHost string
	tcpPort int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Protocol flags
	exchangeTimeout  time.Duration
	exchangeRetries  int
	firmwareOverride string
	logLevel         string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "thzctl",
	Short: "Stiebel Eltron LWZ / Tecalor THZ heat pump control",
	Long: `thzctl - talk to the service port of Stiebel Eltron LWZ and Tecalor THZ
integral heat pumps.

Reads sensor registers, changes writable parameters and monitors the unit
over a direct serial line or a network bridge.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  TCP:       --host ser2net.local [--tcp-port 2000]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the THZ_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version: "1.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlagOverrides(cmd)
		return logging.Initialize(cfg.LogLevel)
	},
}

// applyFlagOverrides lets explicit flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("port") || cfg.Connection.Port == "" {
		cfg.Connection.Port = portName
	}
	if cmd.Flags().Changed("baud") || cfg.Connection.Baud == 0 {
		cfg.Connection.Baud = baudRate
	}
	if cmd.Flags().Changed("host") || cfg.Connection.Host == "" {
		cfg.Connection.Host = tcpHost
	}
	if cmd.Flags().Changed("tcp-port") || cfg.Connection.TCPPort == 0 {
		cfg.Connection.TCPPort = tcpPort
	}
	if cmd.Flags().Changed("url") || cfg.Connection.URL == "" {
		cfg.Connection.URL = wsURL
	}
	if cmd.Flags().Changed("timeout") || cfg.Timeout == 0 {
		cfg.Timeout = exchangeTimeout
	}
	if cmd.Flags().Changed("retries") || cfg.Retries == 0 {
		cfg.Retries = exchangeRetries
	}
	if cmd.Flags().Changed("firmware") || cfg.Firmware == "" {
		cfg.Firmware = firmwareOverride
	}
	if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// TCP bridge flags
	rootCmd.PersistentFlags().StringVar(&tcpHost, "host", "", "TCP bridge host")
	rootCmd.PersistentFlags().IntVar(&tcpPort, "tcp-port", 2000, "TCP bridge port")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Protocol flags
	rootCmd.PersistentFlags().DurationVar(&exchangeTimeout, "timeout", 2*time.Second, "Per-exchange timeout")
	rootCmd.PersistentFlags().IntVar(&exchangeRetries, "retries", 3, "Attempts per exchange")
	rootCmd.PersistentFlags().StringVar(&firmwareOverride, "firmware", "", "Pin firmware version instead of probing (e.g. 5.39)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
