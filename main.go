// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel
//
// thzctl - Stiebel Eltron LWZ / Tecalor THZ heat pump control
//
// A CLI tool for reading sensors, changing parameters and monitoring
// integral heat pumps over their serial service port.

package main

import (
	"os"

	"github.com/konstantinvogel/hass-thz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
