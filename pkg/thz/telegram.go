// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"encoding/hex"
	"strings"
	"time"
)

// Telegram is one complete protocol message. Data holds the unescaped,
// checksum-verified register bytes, starting with the register-code echo.
// Telegrams are constructed by the Decoder on receive or by the command
// builders on send, consumed once and never mutated.
type Telegram struct {
	direction Direction
	data      []byte
	timestamp time.Time
}

// NewTelegram creates a telegram for the given direction and register data.
func NewTelegram(direction Direction, data []byte) *Telegram {
	return &Telegram{
		direction: direction,
		data:      data,
		timestamp: time.Now(),
	}
}

// Direction returns the telegram's direction byte.
func (t *Telegram) Direction() Direction {
	return t.direction
}

// Data returns the unescaped register data including the leading code echo.
func (t *Telegram) Data() []byte {
	return t.data
}

// Code returns the hex form of the telegram's first data byte. Multi-byte
// register codes are resolved against a RegisterMap via CodeOf; this
// accessor is the one-byte convention used for logging and matching.
func (t *Telegram) Code() string {
	if len(t.data) == 0 {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(t.data[:1]))
}

// Timestamp returns the telegram's construction time.
func (t *Telegram) Timestamp() time.Time {
	return t.timestamp
}
