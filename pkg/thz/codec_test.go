// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"bytes"
	"testing"
)

// feedBytes runs a byte slice through a decoder, failing the test on any
// mid-stream error, and returns all completed telegrams.
func feedBytes(t *testing.T, d *Decoder, data []byte) []*Telegram {
	t.Helper()
	var out []*Telegram
	for i, b := range data {
		tel, err := d.DecodeByte(b)
		if err != nil {
			t.Fatalf("unexpected error at byte %d (0x%02X): %v", i, b, err)
		}
		if tel != nil {
			out = append(out, tel)
		}
	}
	return out
}

// ============================================================
// Encoder Tests
// ============================================================

func TestEncodeTelegram_FirmwareRequest(t *testing.T) {
	tel := NewTelegram(DirectionGet, []byte{0xFD})
	wire, err := EncodeTelegram(tel)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	expected := []byte{0x01, 0x00, 0xFE, 0xFD, 0x10, 0x03}
	if !bytes.Equal(wire, expected) {
		t.Errorf("wire mismatch:\nexpected % X\ngot      % X", expected, wire)
	}
}

func TestEncodeTelegram_EscapesBody(t *testing.T) {
	// 0x10 doubles, 0x2B grows a 0x18 tail.
	tel := NewTelegram(DirectionGet, []byte{0x10, 0x2B})
	wire, err := EncodeTelegram(tel)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	// checksum = 0x01 + 0x00 + 0x10 + 0x2B = 0x3C (not escaped itself here)
	expected := []byte{0x01, 0x00, 0x3C, 0x10, 0x10, 0x2B, 0x18, 0x10, 0x03}
	if !bytes.Equal(wire, expected) {
		t.Errorf("wire mismatch:\nexpected % X\ngot      % X", expected, wire)
	}
}

func TestEncodeTelegram_EscapesChecksum(t *testing.T) {
	// Data chosen so the checksum itself lands on 0x10 and must be stuffed:
	// 0x01 + 0x00 + 0x0F = 0x10.
	tel := NewTelegram(DirectionGet, []byte{0x0F})
	wire, err := EncodeTelegram(tel)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	expected := []byte{0x01, 0x00, 0x10, 0x10, 0x0F, 0x10, 0x03}
	if !bytes.Equal(wire, expected) {
		t.Errorf("wire mismatch:\nexpected % X\ngot      % X", expected, wire)
	}
}

func TestEncodeTelegram_EmptyData(t *testing.T) {
	tel := NewTelegram(DirectionGet, nil)
	if _, err := EncodeTelegram(tel); err == nil {
		t.Error("expected error for telegram without register data")
	}
}

func TestEncodeTelegram_Deterministic(t *testing.T) {
	tel := NewTelegram(DirectionSet, []byte{0x0A, 0x05, 0x75, 0x00, 0x02})
	w1, err1 := EncodeTelegram(tel)
	w2, err2 := EncodeTelegram(tel)
	if err1 != nil || err2 != nil {
		t.Fatalf("encode errors: %v, %v", err1, err2)
	}
	if !bytes.Equal(w1, w2) {
		t.Error("encoding the same telegram twice must produce identical bytes")
	}
}

// ============================================================
// Decoder Tests
// ============================================================

func TestDecoder_FirmwareResponse(t *testing.T) {
	d := NewDecoder()
	wire := []byte{0x01, 0x00, 0xBE, 0xFD, 0x02, 0xBE, 0x10, 0x03}

	tels := feedBytes(t, d, wire)
	if len(tels) != 1 {
		t.Fatalf("expected 1 telegram, got %d", len(tels))
	}
	tel := tels[0]
	if tel.Direction() != DirectionGet {
		t.Errorf("expected get direction, got %v", tel.Direction())
	}
	if !bytes.Equal(tel.Data(), []byte{0xFD, 0x02, 0xBE}) {
		t.Errorf("data mismatch: % X", tel.Data())
	}

	raw := uint64(tel.Data()[1])<<8 | uint64(tel.Data()[2])
	if v := FormatVersion(raw); v != "7.02" {
		t.Errorf("expected firmware 7.02, got %s", v)
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		data      []byte
	}{
		{"single code", DirectionGet, []byte{0xFB}},
		{"multi-byte code", DirectionGet, []byte{0x0A, 0x01, 0x76}},
		{"write with value", DirectionSet, []byte{0x0B, 0x05, 0x82, 0x00, 0xFA}},
		{"all reserved bytes", DirectionGet, []byte{0x10, 0x2B, 0x18, 0x10, 0x10, 0x2B}},
		{"footer bytes as data", DirectionGet, []byte{0x10, 0x03, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, err := EncodeTelegram(NewTelegram(tt.direction, tt.data))
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}

			d := NewDecoder()
			tels := feedBytes(t, d, wire)
			if len(tels) != 1 {
				t.Fatalf("expected 1 telegram, got %d", len(tels))
			}
			if tels[0].Direction() != tt.direction {
				t.Errorf("direction mismatch: %v", tels[0].Direction())
			}
			if !bytes.Equal(tels[0].Data(), tt.data) {
				t.Errorf("data mismatch:\nexpected % X\ngot      % X", tt.data, tels[0].Data())
			}
		})
	}
}

func TestDecoder_ChecksumMismatch(t *testing.T) {
	d := NewDecoder()
	// Valid frame with the value byte corrupted after checksum computation.
	wire := []byte{0x01, 0x00, 0xBE, 0xFD, 0x02, 0xBF, 0x10, 0x03}

	var gotErr error
	for _, b := range wire {
		if _, err := d.DecodeByte(b); err != nil {
			gotErr = err
		}
	}
	if gotErr == nil {
		t.Fatal("expected checksum error")
	}
	if !IsChecksumError(gotErr) {
		t.Errorf("expected checksum error kind, got %v", gotErr)
	}
}

func TestDecoder_ResyncAfterGarbage(t *testing.T) {
	d := NewDecoder()

	// Garbage without a header byte is silently discarded.
	garbage := []byte{0xAA, 0x55, 0xFF, 0x00, 0x42}
	for _, b := range garbage {
		tel, err := d.DecodeByte(b)
		if tel != nil || err != nil {
			t.Fatalf("garbage byte 0x%02X produced tel=%v err=%v", b, tel, err)
		}
	}

	// A clean frame decodes right after.
	wire := []byte{0x01, 0x00, 0xBE, 0xFD, 0x02, 0xBE, 0x10, 0x03}
	tels := feedBytes(t, d, wire)
	if len(tels) != 1 {
		t.Fatalf("expected 1 telegram after resync, got %d", len(tels))
	}
}

func TestDecoder_ResyncAfterError(t *testing.T) {
	d := NewDecoder()

	// Broken frame: invalid direction byte.
	if _, err := d.DecodeByte(0x01); err != nil {
		t.Fatalf("header byte: %v", err)
	}
	if _, err := d.DecodeByte(0x42); err == nil {
		t.Fatal("expected framing error for direction byte 0x42")
	}

	// The decoder must recover and decode the next clean frame.
	wire := []byte{0x01, 0x00, 0xBE, 0xFD, 0x02, 0xBE, 0x10, 0x03}
	tels := feedBytes(t, d, wire)
	if len(tels) != 1 {
		t.Fatalf("expected 1 telegram after error, got %d", len(tels))
	}
}

func TestDecoder_DeviceNAK(t *testing.T) {
	tests := []struct {
		name string
		code byte
	}{
		{"timing fault", 0x01},
		{"checksum rejected", 0x02},
		{"unknown command", 0x03},
		{"unknown register", 0x04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder()
			wire := []byte{0x01, tt.code, 0x10, 0x03}

			var gotErr error
			for _, b := range wire {
				tel, err := d.DecodeByte(b)
				if tel != nil {
					t.Fatalf("NAK frame must not produce a telegram")
				}
				if err != nil {
					gotErr = err
				}
			}
			if gotErr == nil {
				t.Fatal("expected device error")
			}
			if !IsDeviceError(gotErr) {
				t.Errorf("expected device error kind, got %v", gotErr)
			}
		})
	}
}

func TestDecoder_BareEscPlusTolerated(t *testing.T) {
	// A 0x2B without its 0x18 tail is accepted as a literal 0x2B.
	data := []byte{0x2B, 0x05}
	cks := Checksum(DirectionGet, data)

	// Hand-build the wire frame without stuffing the 0x2B.
	wire := []byte{0x01, 0x00, cks, 0x2B, 0x05, 0x10, 0x03}
	d := NewDecoder()
	tels := feedBytes(t, d, wire)
	if len(tels) != 1 {
		t.Fatalf("expected 1 telegram, got %d", len(tels))
	}
	if !bytes.Equal(tels[0].Data(), data) {
		t.Errorf("data mismatch: % X", tels[0].Data())
	}
}

func TestDecoder_BackToBackFrames(t *testing.T) {
	w1, _ := EncodeTelegram(NewTelegram(DirectionGet, []byte{0xFD, 0x02, 0xBE}))
	w2, _ := EncodeTelegram(NewTelegram(DirectionGet, []byte{0xFB, 0x01}))

	d := NewDecoder()
	tels := feedBytes(t, d, append(append([]byte{}, w1...), w2...))
	if len(tels) != 2 {
		t.Fatalf("expected 2 telegrams, got %d", len(tels))
	}
	if !bytes.Equal(tels[0].Data(), []byte{0xFD, 0x02, 0xBE}) {
		t.Errorf("first telegram data mismatch: % X", tels[0].Data())
	}
	if !bytes.Equal(tels[1].Data(), []byte{0xFB, 0x01}) {
		t.Errorf("second telegram data mismatch: % X", tels[1].Data())
	}
}

func TestDecoder_RawBytesSurviveCompletion(t *testing.T) {
	d := NewDecoder()
	wire := []byte{0x01, 0x00, 0xBE, 0xFD, 0x02, 0xBE, 0x10, 0x03}

	tels := feedBytes(t, d, wire)
	if len(tels) != 1 {
		t.Fatalf("expected 1 telegram, got %d", len(tels))
	}
	if !bytes.Equal(d.RawBytes(), wire) {
		t.Errorf("raw bytes after completion: expected % X, got % X", wire, d.RawBytes())
	}

	// Mid-frame the raw buffer tracks the frame in progress instead.
	if _, err := d.DecodeByte(0x01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(d.RawBytes(), []byte{0x01}) {
		t.Errorf("raw bytes mid-frame: expected 01, got % X", d.RawBytes())
	}
}

func TestDecoder_RawBytesKeepStuffing(t *testing.T) {
	// Body bytes 0x10 and 0x2B are stuffed on the wire; RawBytes reports
	// the wire form, Data the unescaped form.
	wire, err := EncodeTelegram(NewTelegram(DirectionGet, []byte{0x3C, 0x10, 0x2B}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	d := NewDecoder()
	tels := feedBytes(t, d, wire)
	if len(tels) != 1 {
		t.Fatalf("expected 1 telegram, got %d", len(tels))
	}
	if !bytes.Equal(tels[0].Data(), []byte{0x3C, 0x10, 0x2B}) {
		t.Errorf("data mismatch: % X", tels[0].Data())
	}
	if !bytes.Equal(d.RawBytes(), wire) {
		t.Errorf("raw bytes: expected % X, got % X", wire, d.RawBytes())
	}
}

// ============================================================
// Unescape Tests
// ============================================================

func TestUnescapeBytes(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		expected []byte
	}{
		{"plain", []byte{0x01, 0x02}, []byte{0x01, 0x02}},
		{"doubled DLE", []byte{0x10, 0x10}, []byte{0x10}},
		{"stuffed plus", []byte{0x2B, 0x18}, []byte{0x2B}},
		{"bare plus tolerated", []byte{0x2B, 0x05}, []byte{0x2B, 0x05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := unescapeBytes(tt.in)
			if err != nil {
				t.Fatalf("unescape error: %v", err)
			}
			if !bytes.Equal(out, tt.expected) {
				t.Errorf("expected % X, got % X", tt.expected, out)
			}
		})
	}
}

func TestUnescapeBytes_DanglingDLE(t *testing.T) {
	if _, err := unescapeBytes([]byte{0x01, 0x10}); err == nil {
		t.Error("expected error for dangling DLE")
	}
}

func TestEscapeUnescape_Inverse(t *testing.T) {
	data := []byte{0x00, 0x10, 0x2B, 0x18, 0xFF, 0x10, 0x10, 0x2B}
	out, err := unescapeBytes(escapeBytes(data))
	if err != nil {
		t.Fatalf("unescape error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("round trip mismatch:\nexpected % X\ngot      % X", data, out)
	}
}
