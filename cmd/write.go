// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var writeYes bool

var writeCmd = &cobra.Command{
	Use:   "write <setting> <value>",
	Short: "Change a writable setting",
	Long: `Write a new value to a named setting, for example:

  thzctl write p04DHWsetTempDay 48.5

The setting must be writable on the connected firmware and the value must
lie inside its allowed range; rejected writes never reach the device. A
confirmation prompt is shown unless --yes is given.

After a successful write the setting is read back and printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().BoolVarP(&writeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name := args[0]
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", args[1])
	}

	sess, conn, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer sess.Close()

	regs := sess.Registers()
	s, ok := regs.Setting(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Setting %q is not writable on firmware %s.\n", name, sess.Firmware())
		fmt.Fprintf(os.Stderr, "Run 'thzctl registers --settings' for the writable set.\n")
		return fmt.Errorf("unknown setting %q", name)
	}
	if value < s.Min || value > s.Max {
		return fmt.Errorf("%s: value %g outside allowed range %g..%g %s", name, value, s.Min, s.Max, s.Unit)
	}

	if !writeYes {
		fmt.Printf("Write %s = %g %s to the controller? [y/N] ", name, value, s.Unit)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := sess.WriteSetting(ctx, name, value); err != nil {
		if thz.IsValueOutOfRange(err) || thz.IsNotWritable(err) {
			return fmt.Errorf("write rejected before transmission: %w", err)
		}
		return fmt.Errorf("write %s: %w", name, err)
	}

	readBack, err := sess.ReadSetting(ctx, name)
	if err != nil {
		fmt.Printf("%s written, read-back failed: %v\n", name, err)
		return nil
	}
	fmt.Printf("%s = %g %s\n", name, readBack, s.Unit)
	return nil
}
