// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var (
	readRaw bool
	readAll bool
)

var readCmd = &cobra.Command{
	Use:   "read <register|setting> [...]",
	Short: "Read registers or settings",
	Long: `Read one or more registers by hex code (FB, FC, 0A0176) or writable
settings by name (p01RoomTempDayHC1).

Register reads are decoded against the layout of the connected firmware.
With --raw the undecoded response bytes are printed instead. With --all every
register the firmware's layout knows is read in sequence; registers the unit
rejects are reported and skipped.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if readAllFlag(cmd) {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runRead,
}

func readAllFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("all")
	return v
}

func init() {
	readCmd.Flags().BoolVar(&readRaw, "raw", false, "Print raw response bytes instead of decoded fields")
	readCmd.Flags().BoolVar(&readAll, "all", false, "Read every register in the firmware's layout")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
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

	regs := sess.Registers()
	if readAll {
		for _, code := range regs.Codes() {
			rec, err := sess.ReadRegister(ctx, code)
			if err != nil {
				if thz.IsDeviceError(err) || thz.IsUnknownRegister(err) {
					fmt.Printf("%s: not available (%v)\n", code, err)
					continue
				}
				return fmt.Errorf("read register %s: %w", code, err)
			}
			fmt.Print(thz.FormatRecord(rec))
		}
		return nil
	}

	for _, arg := range args {
		// Setting names start with a parameter prefix, register codes are
		// plain hex.
		if _, ok := regs.Setting(arg); ok {
			value, err := sess.ReadSetting(ctx, arg)
			if err != nil {
				return fmt.Errorf("read setting %s: %w", arg, err)
			}
			s, _ := regs.Setting(arg)
			fmt.Printf("%s: %g %s\n", arg, value, s.Unit)
			continue
		}

		code := strings.ToUpper(arg)
		if readRaw {
			resp, err := sess.ReadRaw(ctx, code)
			if err != nil {
				return fmt.Errorf("read register %s: %w", code, err)
			}
			fmt.Println(thz.FormatTelegram(resp))
			continue
		}

		rec, err := sess.ReadRegister(ctx, code)
		if err != nil {
			return fmt.Errorf("read register %s: %w", code, err)
		}
		fmt.Print(thz.FormatRecord(rec))
	}
	return nil
}
