// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var (
	monitorInterval      time.Duration
	monitorRegisters     []string
	monitorStatsInterval int
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously poll and display registers",
	Long: `Poll registers in a loop and print each decoded result.

By default the global status register FB is polled. Additional registers
can be selected with --register (repeatable). Exchange statistics are
printed on exit, or every N polls with --stats-interval N.

Press Ctrl+C to exit.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", 30*time.Second, "Poll interval")
	monitorCmd.Flags().StringArrayVarP(&monitorRegisters, "register", "r", []string{"FB"}, "Register code to poll (repeatable)")
	monitorCmd.Flags().IntVar(&monitorStatsInterval, "stats-interval", 0, "Print statistics every N polls (0 disables)")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, conn, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer sess.Close()

	fmt.Printf("Polling %v every %v, Ctrl+C to exit\n\n", monitorRegisters, monitorInterval)

	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	polls := 0
	for {
		for _, code := range monitorRegisters {
			rec, err := sess.ReadRegister(ctx, code)
			if err != nil {
				if ctx.Err() != nil {
					fmt.Print(sess.Statistics().String())
					return nil
				}
				fmt.Fprintf(os.Stderr, "[ERROR] %s: %v\n", code, err)
				continue
			}
			fmt.Print(thz.FormatRecord(rec))
		}
		polls++
		if monitorStatsInterval > 0 && polls%monitorStatsInterval == 0 {
			fmt.Print(sess.Statistics().String())
		}

		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Print(sess.Statistics().String())
			return nil
		case <-ticker.C:
		}
	}
}
