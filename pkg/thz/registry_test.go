// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import "testing"

// ============================================================
// Version Resolution Tests
// ============================================================

func TestResolveVersion_Exact(t *testing.T) {
	for _, v := range []string{"2.06", "2.14", "2.14j", "4.39", "5.39", "7.02", "7.59"} {
		resolved, err := ResolveVersion(v)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", v, err)
			continue
		}
		if resolved != v {
			t.Errorf("%s: expected exact match, got %s", v, resolved)
		}
	}
}

func TestResolveVersion_FallbackToLower(t *testing.T) {
	tests := []struct {
		reported string
		expected string
	}{
		{"5.40", "5.39"},
		{"6.00", "5.39"},
		{"4.40", "4.39"},
		{"7.03", "7.02"},
		{"7.60", "7.59"},
		{"9.99", "7.59"},
		{"2.07", "2.06"},
		{"2.20", "2.14"},
	}

	for _, tt := range tests {
		t.Run(tt.reported, func(t *testing.T) {
			resolved, err := ResolveVersion(tt.reported)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resolved != tt.expected {
				t.Errorf("expected fallback to %s, got %s", tt.expected, resolved)
			}
		})
	}
}

func TestResolveVersion_NeverHigher(t *testing.T) {
	// 2.05 is below the oldest known layout; guessing a newer layout could
	// misdecode every field, so it must fail instead.
	if _, err := ResolveVersion("2.05"); err == nil {
		t.Fatal("expected error for version below oldest layout")
	} else if !IsUnsupportedFirmware(err) {
		t.Errorf("expected unsupported-firmware kind, got %v", err)
	}
}

func TestResolveVersion_SuffixNotAFallbackAnchor(t *testing.T) {
	// "2.14j" exists as an exact layout but a reported "2.15" must fall back
	// to the plain "2.14", not the variant.
	resolved, err := ResolveVersion("2.15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != "2.14" {
		t.Errorf("expected plain 2.14, got %s", resolved)
	}
}

func TestResolveVersion_Unparseable(t *testing.T) {
	for _, v := range []string{"", "garbage", "7", "7.2.1"} {
		if _, err := ResolveVersion(v); err == nil {
			t.Errorf("%q: expected error", v)
		}
	}
}

func TestSupportedVersions_SortedAscending(t *testing.T) {
	versions := SupportedVersions()
	if len(versions) == 0 {
		t.Fatal("no supported versions")
	}
	if versions[0] != "2.06" {
		t.Errorf("expected oldest version first, got %s", versions[0])
	}
	if versions[len(versions)-1] != "7.59" {
		t.Errorf("expected newest version last, got %s", versions[len(versions)-1])
	}
}

// ============================================================
// Register Map Tests
// ============================================================

func TestForVersion_LayoutContent(t *testing.T) {
	m, err := ForVersion("7.59")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, code := range []string{"FB", "F2", "F3", "F4", "FC", "FD", "FE", "09", "D1", "17", "0A0176"} {
		if _, ok := m.Register(code); !ok {
			t.Errorf("register %s missing from 7.59 layout", code)
		}
	}

	// 5.39-line extras
	for _, code := range []string{"0A033B", "0B0264", "0C0264"} {
		if _, ok := m.Register(code); !ok {
			t.Errorf("register %s missing from 7.59 layout", code)
		}
	}
}

func TestForVersion_OldFirmwareHasNoSettings(t *testing.T) {
	m, err := ForVersion("2.06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names := m.SettingNames(); len(names) != 0 {
		t.Errorf("2.06 must not expose writable settings, got %v", names)
	}

	// The 5.39-only registers must be absent too.
	if _, ok := m.Register("0A033B"); ok {
		t.Error("0A033B must not exist in the 2.06 layout")
	}
}

func TestForVersion_SettingSets(t *testing.T) {
	m439, _ := ForVersion("4.39")
	if _, ok := m439.Setting("p75PassiveCooling"); !ok {
		t.Error("p75PassiveCooling missing from 4.39")
	}
	if _, ok := m439.Setting("p99CoolingHC1SetTemp"); ok {
		t.Error("cooling parameters must not exist before 5.39")
	}

	m539, _ := ForVersion("5.39")
	if _, ok := m539.Setting("p99CoolingHC1SetTemp"); !ok {
		t.Error("p99CoolingHC1SetTemp missing from 5.39")
	}
}

func TestFieldsFor_UnknownCode(t *testing.T) {
	m, _ := ForVersion("7.59")
	if fields := m.FieldsFor("ZZ"); fields != nil {
		t.Errorf("expected nil fields for unknown code, got %v", fields)
	}
}

func TestFieldsFor_CaseInsensitive(t *testing.T) {
	m, _ := ForVersion("7.59")
	if len(m.FieldsFor("fb")) == 0 {
		t.Error("lowercase code lookup failed")
	}
}

func TestCodeOf_LongestPrefixWins(t *testing.T) {
	m, _ := ForVersion("7.59")

	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"one byte code", []byte{0xFB, 0x01, 0x02}, "FB"},
		{"three byte code", []byte{0x0A, 0x01, 0x76, 0x00, 0x00}, "0A0176"},
		{"three byte flow rate", []byte{0x0A, 0x03, 0x3B, 0x01, 0x2C}, "0A033B"},
		{"unknown falls back to first byte", []byte{0x42, 0x01}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.CodeOf(tt.data); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSettingRanges(t *testing.T) {
	m, _ := ForVersion("5.39")

	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{"p01RoomTempDayHC1", 10, 30},
		{"p04DHWsetTempDay", 10, 55},
		{"p07FanStageDay", 0, 3},
		{"p99CoolingHC1SetTemp", 12, 27},
		{"p99CoolingHC1HysterFlowTemp", 0.5, 5},
	}

	for _, tt := range tests {
		s, ok := m.Setting(tt.name)
		if !ok {
			t.Errorf("%s: missing", tt.name)
			continue
		}
		if s.Min != tt.min || s.Max != tt.max {
			t.Errorf("%s: expected range %g..%g, got %g..%g", tt.name, tt.min, tt.max, s.Min, s.Max)
		}
	}
}
