// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import "fmt"

// EncodeTelegram encodes a telegram to wire format: header, direction,
// checksum, escaped register data, DLE ETX. The checksum byte is part of the
// escaped region; the two header bytes and the footer are not escaped.
func EncodeTelegram(t *Telegram) ([]byte, error) {
	if len(t.data) == 0 {
		return nil, newErrorf(ErrFraming, "telegram has no register data")
	}
	if len(t.data) > MaxTelegramSize {
		return nil, newErrorf(ErrFraming, "register data too long: %d bytes (max %d)", len(t.data), MaxTelegramSize)
	}

	body := make([]byte, 0, len(t.data)+1)
	body = append(body, Checksum(t.direction, t.data))
	body = append(body, t.data...)

	out := make([]byte, 0, len(body)*2+4)
	out = append(out, HeaderByte, byte(t.direction))
	out = append(out, escapeBytes(body)...)
	out = append(out, DLE, ETX)
	return out, nil
}

// escapeBytes applies the protocol's byte stuffing: 0x10 is doubled and 0x2B
// is followed by 0x18.
func escapeBytes(data []byte) []byte {
	out := make([]byte, 0, len(data)*2)
	for _, b := range data {
		switch b {
		case DLE:
			out = append(out, DLE, DLE)
		case EscPlus:
			out = append(out, EscPlus, EscTail)
		default:
			out = append(out, b)
		}
	}
	return out
}

// unescapeBytes removes the byte stuffing applied by escapeBytes. It is the
// batch counterpart of the Decoder's incremental unescaping, used on buffers
// captured whole.
func unescapeBytes(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch b {
		case DLE:
			if i+1 >= len(data) || data[i+1] != DLE {
				return nil, fmt.Errorf("dangling DLE at offset %d", i)
			}
			out = append(out, DLE)
			i++
		case EscPlus:
			if i+1 < len(data) && data[i+1] == EscTail {
				out = append(out, EscPlus)
				i++
			} else {
				// A bare 0x2B is passed through; the stuffing rule is
				// applied by the sender but tolerated on receive.
				out = append(out, EscPlus)
			}
		default:
			out = append(out, b)
		}
	}
	return out, nil
}
