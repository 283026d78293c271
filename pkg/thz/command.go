// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"encoding/hex"
	"strings"
)

// BuildReadRequest builds a get telegram for a register code given as a hex
// string ("FB", "0A0176", case insensitive).
func BuildReadRequest(code string) (*Telegram, error) {
	raw, err := decodeCode(code)
	if err != nil {
		return nil, err
	}
	return NewTelegram(DirectionGet, raw), nil
}

// BuildWrite builds a set telegram for a named setting. The setting must
// exist in this firmware's write table and the value must lie inside its
// allowed range; both are checked before any wire bytes are produced.
func (m *RegisterMap) BuildWrite(name string, value float64) (*Telegram, error) {
	s, ok := m.Setting(name)
	if !ok {
		return nil, newErrorf(ErrNotWritable, "setting %q is not writable on firmware %s", name, m.version)
	}
	if value < s.Min || value > s.Max {
		return nil, newErrorf(ErrValueOutOfRange,
			"%s: value %g outside [%g, %g] %s", name, value, s.Min, s.Max, s.Unit)
	}
	encoded, err := s.encodeValue(value)
	if err != nil {
		return nil, err
	}
	cmd, err := decodeCode(s.Command)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, len(cmd)+len(encoded))
	data = append(data, cmd...)
	data = append(data, encoded...)
	return NewTelegram(DirectionSet, data), nil
}

// BuildSettingRead builds a get telegram that queries the current value of a
// writable setting.
func (m *RegisterMap) BuildSettingRead(name string) (*Telegram, error) {
	s, ok := m.Setting(name)
	if !ok {
		return nil, newErrorf(ErrNotWritable, "setting %q is not known on firmware %s", name, m.version)
	}
	return BuildReadRequest(s.Command)
}

// SettingValue extracts a setting's value from the response to a
// BuildSettingRead exchange.
func (m *RegisterMap) SettingValue(name string, response *Telegram) (float64, error) {
	s, ok := m.Setting(name)
	if !ok {
		return 0, newErrorf(ErrNotWritable, "setting %q is not known on firmware %s", name, m.version)
	}
	cmd, err := decodeCode(s.Command)
	if err != nil {
		return 0, err
	}
	data := response.Data()
	if len(data) < len(cmd)+2 {
		return 0, newErrorf(ErrTruncatedPayload,
			"setting response for %s is %d bytes, need %d", name, len(data), len(cmd)+2)
	}
	return s.decodeValue(data[len(cmd) : len(cmd)+2])
}

func decodeCode(code string) ([]byte, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code)%2 != 0 {
		return nil, newErrorf(ErrUnknownRegister, "malformed register code %q", code)
	}
	raw, err := hex.DecodeString(code)
	if err != nil {
		return nil, wrapErrorf(ErrUnknownRegister, err, "malformed register code %q", code)
	}
	return raw, nil
}
