// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import "testing"

// ============================================================
// Checksum Tests
// ============================================================

func TestChecksum_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		data      []byte
		expected  byte
	}{
		{
			name:      "firmware version response",
			direction: DirectionGet,
			data:      []byte{0xFD, 0x02, 0xBE},
			expected:  0xBE, // 0x01 + 0x00 + 0xFD + 0x02 + 0xBE mod 256
		},
		{
			name:      "firmware version request",
			direction: DirectionGet,
			data:      []byte{0xFD},
			expected:  0xFE,
		},
		{
			name:      "set direction changes the sum",
			direction: DirectionSet,
			data:      []byte{0xFD},
			expected:  0x7E,
		},
		{
			name:      "global status request",
			direction: DirectionGet,
			data:      []byte{0xFB},
			expected:  0xFC,
		},
		{
			name:      "overflow wraps mod 256",
			direction: DirectionGet,
			data:      []byte{0xFF, 0xFF, 0xFF},
			expected:  0xFE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Checksum(tt.direction, tt.data)
			if got != tt.expected {
				t.Errorf("Checksum mismatch: expected 0x%02X, got 0x%02X", tt.expected, got)
			}
		})
	}
}

func TestChecksum_EmptyData(t *testing.T) {
	// Header byte alone: 0x01 + 0x00
	if got := Checksum(DirectionGet, nil); got != 0x01 {
		t.Errorf("expected 0x01 for empty data, got 0x%02X", got)
	}
}

func TestChecksum_SingleBitSensitivity(t *testing.T) {
	data := []byte{0xFD, 0x02, 0xBE}
	base := Checksum(DirectionGet, data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			flipped := make([]byte, len(data))
			copy(flipped, data)
			flipped[i] ^= 1 << bit
			if Checksum(DirectionGet, flipped) == base {
				t.Errorf("flip of byte %d bit %d not detected", i, bit)
			}
		}
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte{0x0A, 0x01, 0x76, 0x00, 0x10}
	c1 := Checksum(DirectionGet, data)
	c2 := Checksum(DirectionGet, data)
	if c1 != c2 {
		t.Errorf("checksum should be deterministic: 0x%02X != 0x%02X", c1, c2)
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte{0xFD, 0x02, 0xBE}
	want := Checksum(DirectionGet, data)

	if !VerifyChecksum(DirectionGet, data, want) {
		t.Error("correct checksum rejected")
	}
	if VerifyChecksum(DirectionGet, data, want+1) {
		t.Error("wrong checksum accepted")
	}
	if VerifyChecksum(DirectionSet, data, want) {
		t.Error("checksum must cover the direction byte")
	}
}
