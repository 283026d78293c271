// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/internal/logging"
	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Passively decode telegrams on the wire",
	Long: `Listen on the connection without sending anything and print every
telegram that frames and checksums correctly.

Useful for watching another client (wall control, home automation bridge)
talk to the unit, or for verifying a serial tap. Handshake bytes and device
NAKs are shown as they occur.`,
	RunE: runSniff,
}

func init() {
	rootCmd.AddCommand(sniffCmd)
}

func runSniff(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("thzctl - Passive Telegram Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	decoder := thz.NewDecoder()
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		for i := 0; i < n; i++ {
			tel, err := decoder.DecodeByte(buf[i])
			if err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			if tel != nil {
				logging.LogExchange(tel.Direction().String(), decoder.RawBytes())
				fmt.Println(thz.FormatTelegram(tel))
			}
		}
	}
}
