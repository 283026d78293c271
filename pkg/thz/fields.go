// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"fmt"
	"math"
	"strings"
)

// FieldKind selects the decode rule for one register field.
type FieldKind int

const (
	// KindUnsigned decodes the nibble range as an unsigned integer, divided
	// by Scale when one is set.
	KindUnsigned FieldKind = iota
	// KindSigned decodes the nibble range as a two's-complement integer of
	// 4*Length bits, divided by Scale when one is set. Temperatures in
	// tenths of a degree use this with Scale 10.
	KindSigned
	// KindBit decodes bit Bit of the nibble range as a flag.
	KindBit
	// KindNBit decodes the inverted bit Bit of the nibble range as a flag.
	KindNBit
	// KindEnum maps the value through the field's name table. Unmapped
	// values decode to "unknown (N)" rather than failing.
	KindEnum
	// KindWeekday maps 1-7 to Monday-Sunday.
	KindWeekday
	// KindYear decodes a two-digit year as 2000+N.
	KindYear
	// KindVersion decodes the firmware version word: N renders as
	// N/100 "." N%100, e.g. 702 -> "7.02".
	KindVersion
	// KindASCII decodes the nibble range as a printable byte string.
	KindASCII
	// KindRaw passes the nibble range through as an uppercase hex string.
	KindRaw
)

// Field describes one named value inside a register payload. Offset and
// Length are in nibbles (4-bit units) counted from the start of the register
// data, code echo included; the reference layout tables address fields at
// nibble granularity because several status flags share a byte.
type Field struct {
	Name   string
	Offset int
	Length int
	Kind   FieldKind
	Bit    int
	Scale  float64
	Unit   string
	Enum   map[uint64]string
}

// nibbleAt returns nibble i of data, high nibble first.
func nibbleAt(data []byte, i int) byte {
	b := data[i/2]
	if i%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

// extractNibbles reads length nibbles starting at offset as a big-endian
// unsigned integer. length is capped at 16 nibbles (64 bits).
func extractNibbles(data []byte, offset, length int) (uint64, error) {
	if length <= 0 || length > 16 {
		return 0, fmt.Errorf("unsupported field width: %d nibbles", length)
	}
	if offset < 0 || (offset+length+1)/2 > len(data) {
		return 0, newErrorf(ErrTruncatedPayload,
			"need nibbles %d-%d, payload has %d bytes", offset, offset+length-1, len(data))
	}
	var v uint64
	for i := 0; i < length; i++ {
		v = v<<4 | uint64(nibbleAt(data, offset+i))
	}
	return v, nil
}

// extractBytes reads length nibbles starting at offset as raw bytes. Used by
// the ASCII and raw hex kinds, which may exceed 64 bits.
func extractBytes(data []byte, offset, length int) ([]byte, error) {
	if offset < 0 || (offset+length+1)/2 > len(data) {
		return nil, newErrorf(ErrTruncatedPayload,
			"need nibbles %d-%d, payload has %d bytes", offset, offset+length-1, len(data))
	}
	out := make([]byte, 0, (length+1)/2)
	for i := 0; i < length; i += 2 {
		b := nibbleAt(data, offset+i) << 4
		if i+1 < length {
			b |= nibbleAt(data, offset+i+1)
		}
		out = append(out, b)
	}
	return out, nil
}

// decodeField applies the field's decode rule to the register data. Values
// come back as float64 (scaled numbers), int64 (unscaled numbers), bool
// (flags) or string (enums, versions, text). Implausible values are passed
// through as decoded; plausibility filtering belongs to the caller.
func decodeField(data []byte, f Field) (interface{}, error) {
	switch f.Kind {
	case KindASCII:
		raw, err := extractBytes(data, f.Offset, f.Length)
		if err != nil {
			return nil, err
		}
		return strings.TrimRight(string(raw), "\x00 "), nil

	case KindRaw:
		raw, err := extractBytes(data, f.Offset, f.Length)
		if err != nil {
			return nil, err
		}
		return strings.ToUpper(fmt.Sprintf("%x", raw)), nil
	}

	v, err := extractNibbles(data, f.Offset, f.Length)
	if err != nil {
		return nil, err
	}

	switch f.Kind {
	case KindUnsigned:
		if f.Scale > 1 {
			return float64(v) / f.Scale, nil
		}
		return int64(v), nil

	case KindSigned:
		bits := uint(4 * f.Length)
		sv := int64(v)
		if bits < 64 && v&(1<<(bits-1)) != 0 {
			sv = int64(v) - int64(1)<<bits
		}
		if f.Scale > 1 {
			return float64(sv) / f.Scale, nil
		}
		return sv, nil

	case KindBit:
		return v&(1<<uint(f.Bit)) != 0, nil

	case KindNBit:
		return v&(1<<uint(f.Bit)) == 0, nil

	case KindEnum:
		if name, ok := f.Enum[v]; ok {
			return name, nil
		}
		return fmt.Sprintf("unknown (%d)", v), nil

	case KindWeekday:
		if name, ok := weekdayNames[v]; ok {
			return name, nil
		}
		return fmt.Sprintf("unknown (%d)", v), nil

	case KindYear:
		return int64(2000 + v), nil

	case KindVersion:
		return FormatVersion(v), nil

	default:
		return nil, fmt.Errorf("unsupported field kind %d", f.Kind)
	}
}

// FormatVersion renders a raw firmware version word the way the controller
// reports it: 702 -> "7.02".
func FormatVersion(raw uint64) string {
	return fmt.Sprintf("%d.%02d", raw/100, raw%100)
}

// 1=Monday .. 7=Sunday, as the controller clock reports it.
var weekdayNames = map[uint64]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// Operating mode of a heating or DHW circuit.
var opModeNames = map[uint64]string{
	1: "normal",
	2: "setback",
	3: "standby",
	4: "restart",
	5: "restart",
}

// Season mode reported by the heating circuit register.
var seasonModeNames = map[uint64]string{
	1: "winter",
	2: "summer",
}

// EncodeKind selects the wire encoding of a writable setting's value.
type EncodeKind int

const (
	// EncodeTemp encodes value*10 as a signed 4-nibble word (tenths of a
	// degree or tenths of a percent).
	EncodeTemp EncodeKind = iota
	// EncodeClean encodes the integral value as an unsigned 4-nibble word.
	EncodeClean
)

// Setting describes one writable parameter: the command bytes that address
// it, its inclusive value range and its wire encoding.
type Setting struct {
	Name    string
	Command string // hex command, e.g. "0B0582"
	Min     float64
	Max     float64
	Unit    string
	Encode  EncodeKind
}

// encodeValue converts a validated setting value to its 2-byte wire form.
func (s *Setting) encodeValue(value float64) ([]byte, error) {
	var raw int64
	switch s.Encode {
	case EncodeTemp:
		scaled := value * 10
		rounded := math.Round(scaled)
		if math.Abs(scaled-rounded) > 1e-9 {
			return nil, newErrorf(ErrValueOutOfRange,
				"%s: %v is not a whole number of tenths", s.Name, value)
		}
		raw = int64(rounded)
	case EncodeClean:
		rounded := math.Round(value)
		if math.Abs(value-rounded) > 1e-9 {
			return nil, newErrorf(ErrValueOutOfRange,
				"%s: %v is not an integer", s.Name, value)
		}
		raw = int64(rounded)
	default:
		return nil, fmt.Errorf("unsupported encode kind %d", s.Encode)
	}
	word := uint16(raw) // two's complement for negative setpoints
	return []byte{byte(word >> 8), byte(word)}, nil
}

// decodeValue is the inverse of encodeValue, used when reading a setting
// back and in round-trip tests.
func (s *Setting) decodeValue(data []byte) (float64, error) {
	if len(data) < 2 {
		return 0, newErrorf(ErrTruncatedPayload, "%s: need 2 value bytes, have %d", s.Name, len(data))
	}
	raw := int64(int16(uint16(data[0])<<8 | uint16(data[1])))
	switch s.Encode {
	case EncodeTemp:
		return float64(raw) / 10, nil
	case EncodeClean:
		return float64(raw), nil
	default:
		return 0, fmt.Errorf("unsupported encode kind %d", s.Encode)
	}
}
