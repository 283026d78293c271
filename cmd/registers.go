// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var (
	registersSettings bool
	registersFirmware string
)

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "List known registers and settings",
	Long: `List the registers and writable settings of a firmware's layout.

Works offline: pass --for-firmware to inspect any supported version without
a connected controller. Without it the flag or config firmware is used,
falling back to the newest supported layout.`,
	RunE: runRegisters,
}

func init() {
	registersCmd.Flags().BoolVar(&registersSettings, "settings", false, "List writable settings only")
	registersCmd.Flags().StringVar(&registersFirmware, "for-firmware", "", "Inspect this firmware version")
	rootCmd.AddCommand(registersCmd)
}

func runRegisters(cmd *cobra.Command, args []string) error {
	version := registersFirmware
	if version == "" {
		version = cfg.Firmware
	}
	if version == "" {
		version = "7.59"
	}

	regs, err := thz.ForVersion(version)
	if err != nil {
		return fmt.Errorf("no layout for firmware %s (supported: %v): %w",
			version, thz.SupportedVersions(), err)
	}

	if registersSettings {
		fmt.Print(thz.FormatSettings(regs))
		return nil
	}

	fmt.Printf("=== Registers (%s) ===\n", regs.Version())
	for _, code := range regs.Codes() {
		reg, _ := regs.Register(code)
		fmt.Printf("  %-8s %-16s %d fields\n", reg.Code, reg.Name, len(reg.Fields))
	}
	fmt.Println()
	fmt.Print(thz.FormatSettings(regs))
	return nil
}
