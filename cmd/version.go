// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Query the controller's firmware version",
	Long: `Read the firmware version register and, if available, the extended
firmware identification (hardware revision, software version, release date).

The reported version selects the register layout used by all other commands.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sess, conn, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer sess.Close()

	fmt.Printf("Firmware: %s\n", sess.Firmware())
	fmt.Printf("Register layout: %s\n", sess.Registers().Version())

	// FE is not answered by all units; treat failure as informational.
	rec, err := sess.ReadRegister(ctx, "FE")
	if err != nil {
		if thz.IsUnknownRegister(err) || thz.IsDeviceError(err) {
			return nil
		}
		return err
	}
	fmt.Print(thz.FormatRecord(rec))
	return nil
}
