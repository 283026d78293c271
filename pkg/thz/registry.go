// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Register describes one readable register block: its command code, a human
// name and the ordered field descriptors for its payload.
type Register struct {
	Code   string // hex command, e.g. "FB" or "0A0176"
	Name   string
	Fields []Field
}

// RegisterMap is the firmware-version-specific catalog of registers and
// writable settings. Maps are assembled once at package init and are
// read-only from then on.
type RegisterMap struct {
	version   string
	registers map[string]*Register
	settings  map[string]*Setting
	codes     []string // known codes, longest first, for prefix matching
}

// Version returns the firmware version this map was built for.
func (m *RegisterMap) Version() string {
	return m.version
}

// Register returns the register for the given code.
func (m *RegisterMap) Register(code string) (*Register, bool) {
	r, ok := m.registers[strings.ToUpper(code)]
	return r, ok
}

// FieldsFor returns the ordered field descriptors for a register code. The
// result is empty, not an error, for a known register without decodable
// fields.
func (m *RegisterMap) FieldsFor(code string) []Field {
	if r, ok := m.registers[strings.ToUpper(code)]; ok {
		return r.Fields
	}
	return nil
}

// Codes returns all register codes of this map in stable order.
func (m *RegisterMap) Codes() []string {
	out := make([]string, len(m.codes))
	copy(out, m.codes)
	sort.Strings(out)
	return out
}

// Setting returns the writable setting with the given name.
func (m *RegisterMap) Setting(name string) (*Setting, bool) {
	s, ok := m.settings[name]
	return s, ok
}

// SettingNames returns the names of all writable settings in sorted order.
func (m *RegisterMap) SettingNames() []string {
	out := make([]string, 0, len(m.settings))
	for name := range m.settings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CodeOf resolves the register code at the start of decoded register data by
// longest-prefix match against the map's known codes. It returns the hex of
// the first byte when no known code matches, so unknown registers still carry
// an addressable identity.
func (m *RegisterMap) CodeOf(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	hexData := strings.ToUpper(hex.EncodeToString(data))
	for _, code := range m.codes {
		if strings.HasPrefix(hexData, code) {
			return code
		}
	}
	return hexData[:2]
}

// ForVersion selects the register map for a reported firmware version.
// Resolution order: exact match first, else the nearest lower known plain
// version; never a higher one. Returns ErrUnsupportedFirmware when nothing
// matches.
func ForVersion(version string) (*RegisterMap, error) {
	resolved, err := ResolveVersion(version)
	if err != nil {
		return nil, err
	}
	return versionMaps[resolved], nil
}

// ResolveVersion applies the firmware fallback order and returns the version
// key of the map that will serve the reported version.
func ResolveVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if _, ok := versionMaps[version]; ok {
		return version, nil
	}

	want, ok := parseVersion(version)
	if !ok {
		return "", newErrorf(ErrUnsupportedFirmware, "unparseable firmware version %q", version)
	}

	best := ""
	bestNum := -1
	for _, candidate := range plainVersions {
		num, _ := parseVersion(candidate)
		if num <= want && num > bestNum {
			best = candidate
			bestNum = num
		}
	}
	if best == "" {
		return "", newErrorf(ErrUnsupportedFirmware,
			"firmware %s is older than any known layout (oldest: %s)", version, plainVersions[0])
	}
	return best, nil
}

// SupportedVersions returns all firmware versions with a dedicated map.
func SupportedVersions() []string {
	out := make([]string, 0, len(versionMaps))
	for v := range versionMaps {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := parseVersion(out[i])
		b, _ := parseVersion(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}

// parseVersion converts "7.02" to 702. Variant suffixes like "2.14j" parse
// to their numeric base but only ever match exactly, never via fallback.
func parseVersion(version string) (int, bool) {
	base := strings.TrimRight(version, "abcdefghijklmnopqrstuvwxyz")
	parts := strings.SplitN(base, ".", 2)
	if len(parts) != 2 {
		return 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, false
	}
	return major*100 + minor, true
}

// buildMap assembles an immutable RegisterMap from the base tables plus
// version overlays. Overlay registers replace base fields with the same name
// and append new ones, matching how the reference layout tables stack.
func buildMap(version string, overlays []Register, settings []Setting) *RegisterMap {
	m := &RegisterMap{
		version:   version,
		registers: make(map[string]*Register),
		settings:  make(map[string]*Setting),
	}

	for _, r := range baseRegisters {
		reg := r // copy
		reg.Fields = append([]Field(nil), r.Fields...)
		m.registers[reg.Code] = &reg
	}

	for _, o := range overlays {
		overlay := o
		overlay.Fields = append([]Field(nil), o.Fields...)
		existing, ok := m.registers[overlay.Code]
		if !ok {
			m.registers[overlay.Code] = &overlay
			continue
		}
		replaced := make(map[string]bool, len(overlay.Fields))
		for _, f := range overlay.Fields {
			replaced[f.Name] = true
		}
		merged := make([]Field, 0, len(existing.Fields)+len(overlay.Fields))
		for _, f := range existing.Fields {
			if !replaced[f.Name] {
				merged = append(merged, f)
			}
		}
		merged = append(merged, overlay.Fields...)
		existing.Fields = merged
		if overlay.Name != "" {
			existing.Name = overlay.Name
		}
	}

	for _, s := range settings {
		setting := s
		m.settings[setting.Name] = &setting
	}

	m.codes = make([]string, 0, len(m.registers))
	for code := range m.registers {
		m.codes = append(m.codes, code)
	}
	sort.Slice(m.codes, func(i, j int) bool {
		if len(m.codes[i]) != len(m.codes[j]) {
			return len(m.codes[i]) > len(m.codes[j])
		}
		return m.codes[i] < m.codes[j]
	})

	return m
}
