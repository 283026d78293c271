// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"bytes"
	"testing"
)

// ============================================================
// Read Request Tests
// ============================================================

func TestBuildReadRequest(t *testing.T) {
	tests := []struct {
		code     string
		expected []byte
	}{
		{"FB", []byte{0xFB}},
		{"fd", []byte{0xFD}},
		{"0A0176", []byte{0x0A, 0x01, 0x76}},
		{" 0a033b ", []byte{0x0A, 0x03, 0x3B}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			tel, err := BuildReadRequest(tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tel.Direction() != DirectionGet {
				t.Errorf("expected get direction, got %v", tel.Direction())
			}
			if !bytes.Equal(tel.Data(), tt.expected) {
				t.Errorf("expected % X, got % X", tt.expected, tel.Data())
			}
		})
	}
}

func TestBuildReadRequest_Malformed(t *testing.T) {
	for _, code := range []string{"", "F", "XYZ", "0A01Z6"} {
		if _, err := BuildReadRequest(code); err == nil {
			t.Errorf("%q: expected error", code)
		}
	}
}

// ============================================================
// Write Tests
// ============================================================

func TestBuildWrite_KnownSetting(t *testing.T) {
	m, _ := ForVersion("5.39")

	tel, err := m.BuildWrite("p99CoolingHC1SetTemp", 25.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tel.Direction() != DirectionSet {
		t.Errorf("expected set direction, got %v", tel.Direction())
	}
	// Command bytes 0B 05 82, value 25.0 -> 250 -> 0x00FA
	expected := []byte{0x0B, 0x05, 0x82, 0x00, 0xFA}
	if !bytes.Equal(tel.Data(), expected) {
		t.Errorf("expected % X, got % X", expected, tel.Data())
	}
}

func TestBuildWrite_CleanEncoding(t *testing.T) {
	m, _ := ForVersion("5.39")

	tel, err := m.BuildWrite("p75PassiveCooling", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []byte{0x0A, 0x05, 0x75, 0x00, 0x02}
	if !bytes.Equal(tel.Data(), expected) {
		t.Errorf("expected % X, got % X", expected, tel.Data())
	}
}

func TestBuildWrite_OutOfRange(t *testing.T) {
	m, _ := ForVersion("5.39")

	tests := []struct {
		name  string
		value float64
	}{
		{"p99CoolingHC1SetTemp", 11.9}, // below min 12
		{"p99CoolingHC1SetTemp", 27.1}, // above max 27
		{"p75PassiveCooling", 3},       // above max 2
		{"p75PassiveCooling", -1},      // below min 0
	}

	for _, tt := range tests {
		tel, err := m.BuildWrite(tt.name, tt.value)
		if err == nil {
			t.Errorf("%s=%g: expected rejection", tt.name, tt.value)
			continue
		}
		if !IsValueOutOfRange(err) {
			t.Errorf("%s=%g: expected out-of-range kind, got %v", tt.name, tt.value, err)
		}
		if tel != nil {
			t.Errorf("%s=%g: rejected write must not produce a telegram", tt.name, tt.value)
		}
	}
}

func TestBuildWrite_BoundariesInclusive(t *testing.T) {
	m, _ := ForVersion("5.39")
	s, _ := m.Setting("p99CoolingHC1SetTemp")

	for _, v := range []float64{s.Min, s.Max} {
		if _, err := m.BuildWrite(s.Name, v); err != nil {
			t.Errorf("boundary value %g rejected: %v", v, err)
		}
	}
}

func TestBuildWrite_UnknownSetting(t *testing.T) {
	m, _ := ForVersion("5.39")
	_, err := m.BuildWrite("pDoesNotExist", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotWritable(err) {
		t.Errorf("expected not-writable kind, got %v", err)
	}
}

func TestBuildWrite_NotWritableOnOldFirmware(t *testing.T) {
	m, _ := ForVersion("2.06")
	_, err := m.BuildWrite("p99CoolingHC1SetTemp", 20)
	if err == nil {
		t.Fatal("expected error on firmware without write support")
	}
	if !IsNotWritable(err) {
		t.Errorf("expected not-writable kind, got %v", err)
	}
}

func TestBuildWrite_SubTenthRejected(t *testing.T) {
	m, _ := ForVersion("5.39")
	// 20.05 cannot be represented in tenths.
	if _, err := m.BuildWrite("p99CoolingHC1SetTemp", 20.05); err == nil {
		t.Error("expected rejection of a value below wire resolution")
	}
}

// ============================================================
// Encode/Decode Round Trip
// ============================================================

func TestSettingValue_RoundTrip(t *testing.T) {
	m, _ := ForVersion("5.39")

	tests := []struct {
		name  string
		value float64
	}{
		{"p99CoolingHC1SetTemp", 12},
		{"p99CoolingHC1SetTemp", 27},
		{"p99CoolingHC1SetTemp", 20.5},
		{"p99CoolingHC1HysterFlowTemp", 0.5},
		{"p75PassiveCooling", 0},
		{"p75PassiveCooling", 2},
		{"p07FanStageDay", 3},
	}

	for _, tt := range tests {
		tel, err := m.BuildWrite(tt.name, tt.value)
		if err != nil {
			t.Errorf("%s=%g: build error: %v", tt.name, tt.value, err)
			continue
		}

		// A read of the same setting echoes the command bytes plus value.
		back, err := m.SettingValue(tt.name, NewTelegram(DirectionGet, tel.Data()))
		if err != nil {
			t.Errorf("%s=%g: decode error: %v", tt.name, tt.value, err)
			continue
		}
		if back != tt.value {
			t.Errorf("%s: wrote %g, read back %g", tt.name, tt.value, back)
		}
	}
}

func TestSettingValue_Truncated(t *testing.T) {
	m, _ := ForVersion("5.39")
	_, err := m.SettingValue("p99CoolingHC1SetTemp", NewTelegram(DirectionGet, []byte{0x0B, 0x05, 0x82}))
	if err == nil {
		t.Error("expected error for response without value bytes")
	}
}
