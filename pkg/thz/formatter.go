// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"fmt"
	"sort"
	"strings"
)

// FormatRecord renders a decoded record as an aligned multi-line block.
func FormatRecord(r *Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s (%s) at %s ===\n", r.Register, r.Code, r.Timestamp.Format("15:04:05"))

	width := 0
	for _, f := range r.Fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}
	for _, f := range r.Fields {
		if f.Err != nil {
			fmt.Fprintf(&b, "  %-*s  <%v>\n", width, f.Name, f.Err)
			continue
		}
		switch v := f.Value.(type) {
		case float64:
			fmt.Fprintf(&b, "  %-*s  %.2f %s\n", width, f.Name, v, f.Unit)
		case bool:
			fmt.Fprintf(&b, "  %-*s  %s\n", width, f.Name, onOff(v))
		default:
			if f.Unit != "" {
				fmt.Fprintf(&b, "  %-*s  %v %s\n", width, f.Name, v, f.Unit)
			} else {
				fmt.Fprintf(&b, "  %-*s  %v\n", width, f.Name, v)
			}
		}
	}
	return b.String()
}

// FormatTelegram renders a telegram as a one-line hex summary.
func FormatTelegram(t *Telegram) string {
	return fmt.Sprintf("[%s] %s % X", t.Direction(), t.Code(), t.Data())
}

// FormatSettings renders a firmware's writable settings table, sorted by
// name.
func FormatSettings(m *RegisterMap) string {
	names := m.SettingNames()
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "=== Writable settings (%s) ===\n", m.Version())
	for _, name := range names {
		s, _ := m.Setting(name)
		unit := s.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(&b, "  %-32s %s  range %g..%g %s\n", name, s.Command, s.Min, s.Max, unit)
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
